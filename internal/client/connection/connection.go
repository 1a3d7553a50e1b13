// Package connection tracks the one server address the CLI talks to.
//
// Connect writes the address first and probes it second. If the probe fails
// the record is removed again, so after a failed Connect there is no
// registered address. A crash between the two steps leaves the address on
// disk for inspection.
package connection

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/nasomail/internal/common"
	"github.com/dmitrijs2005/nasomail/internal/ctest"
	"github.com/dmitrijs2005/nasomail/internal/netx"
	"github.com/dmitrijs2005/nasomail/internal/records"
)

// ErrRollback marks a failed Connect whose record could not be removed, so
// the address is still on disk.
var ErrRollback = errors.New("failed to roll back connection")

// Store is the persistence the registry needs; *records.Store[string] with
// the text codec satisfies it.
type Store interface {
	Write(ctx context.Context, addr string) error
	Read(ctx context.Context) (string, bool, error)
	Remove(ctx context.Context) (bool, error)
}

// Prober checks a candidate address.
type Prober interface {
	Probe(ctx context.Context, addr string) ctest.Result
}

// ProberFunc adapts a function to Prober.
type ProberFunc func(ctx context.Context, addr string) ctest.Result

func (f ProberFunc) Probe(ctx context.Context, addr string) ctest.Result {
	return f(ctx, addr)
}

// HTTPProber runs ctest.Probe with its client.
type HTTPProber struct {
	Client *http.Client
}

func (p HTTPProber) Probe(ctx context.Context, addr string) ctest.Result {
	return ctest.Probe(ctx, p.Client, addr)
}

// NewFileStore keeps the address as trimmed plain text at path.
func NewFileStore(path string) *records.Store[string] {
	return records.New(path, records.Text())
}

type Registry struct {
	store  Store
	prober Prober
}

func NewRegistry(store Store, prober Prober) *Registry {
	return &Registry{store: store, prober: prober}
}

// Connect registers addr and probes it. On success the record stays and the
// result is returned with a nil error. On any probe failure the record is
// rolled back and the error wraps the matching ctest sentinel; the result
// carries the classification either way. Storage failures are returned
// as-is with a zero Result.
func (r *Registry) Connect(ctx context.Context, addr string) (ctest.Result, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ctest.Result{}, common.ErrorEmptyAddress
	}
	if err := netx.ValidateAddr(addr); err != nil {
		return ctest.Result{}, fmt.Errorf("invalid address %q: %w", addr, err)
	}

	if err := r.store.Write(ctx, addr); err != nil {
		return ctest.Result{}, fmt.Errorf("failed to save connection: %w", err)
	}

	res := r.prober.Probe(ctx, addr)
	if res.OK() {
		return res, nil
	}

	probeErr := res.Err()
	// rollback must happen even when ctx was the reason the probe failed
	if _, err := r.store.Remove(context.WithoutCancel(ctx)); err != nil {
		return res, errors.Join(probeErr, fmt.Errorf("%w: %w", ErrRollback, err))
	}
	return res, probeErr
}

// Disconnect removes the registered address and reports whether there was one.
func (r *Registry) Disconnect(ctx context.Context) (bool, error) {
	removed, err := r.store.Remove(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to remove connection: %w", err)
	}
	return removed, nil
}

// Status returns the registered address; ok is false when there is none.
func (r *Registry) Status(ctx context.Context) (addr string, ok bool, err error) {
	addr, ok, err = r.store.Read(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to read connection: %w", err)
	}
	return addr, ok, nil
}
