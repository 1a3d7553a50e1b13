package ctest

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/nasomail/internal/common"
	"github.com/dmitrijs2005/nasomail/internal/netx"
)

// maxTokenSize caps how much of a response body is read as a token.
const maxTokenSize = 4 << 10

// URL returns the token endpoint URL for addr.
func URL(addr string) string {
	return netx.BaseURL(addr) + common.CTestPath
}

// Check performs the GET and classifies transport, status and body. A nil
// client gets one with netx.DefaultTimeout.
func Check(ctx context.Context, client *http.Client, addr string) Result {
	if client == nil {
		client = netx.NewHTTPClient(0)
	}

	res := Result{Addr: addr, URL: URL(addr)}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, res.URL, nil)
	if err != nil {
		res.Outcome = Unreachable
		res.Cause = err
		return res
	}

	resp, err := client.Do(req)
	if err != nil {
		res.Outcome = Unreachable
		res.Cause = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxTokenSize))
		res.Outcome = UnexpectedStatus
		return res
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenSize))
	if err != nil {
		res.Outcome = BadBody
		res.Cause = err
		return res
	}

	res.Token = strings.TrimSpace(string(body))
	res.Outcome = Success
	return res
}

// Probe checks that something speaking the protocol answers at addr: status
// 200 and a non-empty token. The token value itself is not checked.
func Probe(ctx context.Context, client *http.Client, addr string) Result {
	res := Check(ctx, client, addr)
	if res.OK() && res.Token == "" {
		res.Outcome = EmptyBody
	}
	return res
}

// Verify checks that addr is answered by the holder of expected: status 200
// and a trimmed body equal to the trimmed expected token.
func Verify(ctx context.Context, client *http.Client, addr, expected string) Result {
	res := Check(ctx, client, addr)
	res.Expected = strings.TrimSpace(expected)
	if res.OK() && res.Token != res.Expected {
		res.Outcome = TokenMismatch
	}
	return res
}

// TokenHandler serves the current token as plain text, exactly as returned
// by token.
func TokenHandler(token func() string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, token())
	})
}
