package ctest

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nasomail/internal/netx"
)

// Outcome classifies a reachability check.
type Outcome int

const (
	Success Outcome = iota
	Unreachable
	UnexpectedStatus
	BadBody
	EmptyBody
	TokenMismatch
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Unreachable:
		return "unreachable"
	case UnexpectedStatus:
		return "unexpected_status"
	case BadBody:
		return "bad_body"
	case EmptyBody:
		return "empty_body"
	case TokenMismatch:
		return "token_mismatch"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var (
	ErrUnreachable      = errors.New("server unreachable")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrBadBody          = errors.New("unreadable response body")
	ErrEmptyBody        = errors.New("empty verification token")
	ErrTokenMismatch    = errors.New("verification token mismatch")
)

// Result is the classified outcome of one check.
type Result struct {
	Addr    string
	URL     string
	Outcome Outcome
	// Status is the HTTP status code, zero when no response arrived.
	Status int
	// Token is the trimmed response body.
	Token string
	// Expected is the token Verify compared against; empty for Probe.
	Expected string
	// Cause is the transport or body read error, if any.
	Cause error
}

// OK reports whether the check succeeded.
func (r Result) OK() bool {
	return r.Outcome == Success
}

// Err returns nil for a successful check, otherwise an error wrapping the
// sentinel that matches the outcome.
func (r Result) Err() error {
	switch r.Outcome {
	case Success:
		return nil
	case Unreachable:
		return fmt.Errorf("%w: %s (%s): %w", ErrUnreachable, r.Addr, netx.TransportReason(r.Cause), r.Cause)
	case UnexpectedStatus:
		return fmt.Errorf("%w: %s answered %d", ErrUnexpectedStatus, r.Addr, r.Status)
	case BadBody:
		return fmt.Errorf("%w: %s: %w", ErrBadBody, r.Addr, r.Cause)
	case EmptyBody:
		return fmt.Errorf("%w: %s", ErrEmptyBody, r.Addr)
	case TokenMismatch:
		return fmt.Errorf("%w: %s", ErrTokenMismatch, r.Addr)
	default:
		return fmt.Errorf("unknown outcome %s for %s", r.Outcome, r.Addr)
	}
}

// Detail is a short human-readable description of the outcome.
func (r Result) Detail() string {
	switch r.Outcome {
	case Success:
		return "reachable"
	case Unreachable:
		return netx.TransportReason(r.Cause)
	case UnexpectedStatus:
		return fmt.Sprintf("status %d", r.Status)
	case BadBody:
		return "could not read body"
	case EmptyBody:
		return "empty token"
	case TokenMismatch:
		return "token does not match"
	default:
		return r.Outcome.String()
	}
}
