// Package netx holds the outbound HTTP plumbing shared by the client probe
// and the server self-test.
package netx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single outbound request when the caller does not
// configure one.
const DefaultTimeout = 5 * time.Second

// NewHTTPClient returns a client with an overall request timeout. A
// non-positive timeout falls back to DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// BaseURL turns a "host:port" address into an http URL. Addresses that
// already carry an http or https scheme are kept; a trailing slash is dropped.
func BaseURL(addr string) string {
	addr = strings.TrimSpace(addr)
	addr = strings.TrimRight(addr, "/")
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	return "http://" + addr
}

// ValidateAddr checks that addr can be turned into a request URL with a host.
// A bare scheme and a host with an empty port are rejected.
func ValidateAddr(addr string) error {
	addr = strings.TrimSpace(addr)
	for _, scheme := range []string{"http://", "https://"} {
		if rest, ok := strings.CutPrefix(addr, scheme); ok && strings.Trim(rest, "/") == "" {
			return errMissingHost
		}
	}

	u, err := url.Parse(BaseURL(addr))
	if err != nil {
		return err
	}
	if u.Hostname() == "" {
		return errMissingHost
	}
	if strings.HasSuffix(u.Host, ":") {
		return errors.New("missing port")
	}
	return nil
}

var errMissingHost = errors.New("missing host")

// TransportReason gives a short human label for a transport-level failure.
func TransportReason(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "name resolution failed"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return "connection failed"
	}
	return "request failed"
}
