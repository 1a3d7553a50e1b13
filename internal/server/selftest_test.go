package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nasomail/internal/common"
	"github.com/dmitrijs2005/nasomail/internal/ctest"
	"github.com/dmitrijs2005/nasomail/internal/logging"
	"github.com/dmitrijs2005/nasomail/internal/server/appctx"
	"github.com/dmitrijs2005/nasomail/internal/server/config"
	"github.com/dmitrijs2005/nasomail/internal/server/models"
)

type memChecks struct {
	mu   sync.Mutex
	list []models.ReachabilityCheck
	err  error
}

func (m *memChecks) Insert(ctx context.Context, c *models.ReachabilityCheck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.list = append(m.list, *c)
	return nil
}

func (m *memChecks) Latest(ctx context.Context, limit int) ([]models.ReachabilityCheck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ReachabilityCheck, 0, len(m.list))
	for i := len(m.list) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.list[i])
	}
	return out, nil
}

func newState(t *testing.T, pubAddr string) *appctx.AppContext {
	t.Helper()
	var c config.Config
	c.LoadDefaults()
	c.PubAddr = pubAddr
	return appctx.New(nil, c)
}

// publicEndpoint stands in for whatever answers at the public address.
func publicEndpoint(t *testing.T, status int, body func() string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != common.CTestPath {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body())
	}))
	t.Cleanup(srv.Close)
	return srv.Listener.Addr().String()
}

func closedAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestSelfTest(t *testing.T) {
	client := &http.Client{Timeout: 2 * time.Second}

	tests := []struct {
		name    string
		status  int
		body    func(token string) string
		want    ctest.Outcome
		logMsg  string
		logWarn bool
	}{
		{
			name:   "own token",
			status: http.StatusOK,
			body:   func(token string) string { return token },
			want:   ctest.Success,
			logMsg: "self-test succeeded",
		},
		{
			name:   "own token with surrounding whitespace",
			status: http.StatusOK,
			body:   func(token string) string { return "  " + token + "\r\n" },
			want:   ctest.Success,
			logMsg: "self-test succeeded",
		},
		{
			name:    "another process answers",
			status:  http.StatusOK,
			body:    func(string) string { return "0b5d3c1e-stale-process" },
			want:    ctest.TokenMismatch,
			logMsg:  "self-test failed",
			logWarn: true,
		},
		{
			name:    "case differs",
			status:  http.StatusOK,
			body:    func(token string) string { return strings.ToUpper(token) },
			want:    ctest.TokenMismatch,
			logMsg:  "self-test failed",
			logWarn: true,
		},
		{
			name:    "wrong status with right token",
			status:  http.StatusNotFound,
			body:    func(token string) string { return token },
			want:    ctest.UnexpectedStatus,
			logMsg:  "self-test failed",
			logWarn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state *appctx.AppContext
			addr := publicEndpoint(t, tt.status, func() string { return tt.body(state.Token()) })
			state = newState(t, addr)

			var buf bytes.Buffer
			log := logging.NewJSONLogger(&buf, slog.LevelInfo)
			rec := &memChecks{}

			res := SelfTest(context.Background(), state, client, log, rec)

			assert.Equal(t, tt.want, res.Outcome)
			assert.Contains(t, buf.String(), tt.logMsg)
			if tt.logWarn {
				assert.Contains(t, buf.String(), `"level":"WARN"`)
				assert.Contains(t, buf.String(), tt.want.String())
			}

			require.Len(t, rec.list, 1)
			assert.Equal(t, addr, rec.list[0].Target)
			assert.Equal(t, tt.want.String(), rec.list[0].Outcome)
			assert.Equal(t, tt.status, rec.list[0].Status)
		})
	}
}

func TestSelfTest_Unreachable(t *testing.T) {
	addr := closedAddr(t)
	state := newState(t, addr)

	var buf bytes.Buffer
	rec := &memChecks{}

	res := SelfTest(context.Background(), state, &http.Client{Timeout: time.Second}, logging.NewJSONLogger(&buf, slog.LevelInfo), rec)

	assert.Equal(t, ctest.Unreachable, res.Outcome)
	assert.True(t, errors.Is(res.Err(), ctest.ErrUnreachable))
	assert.Contains(t, buf.String(), "unreachable")

	require.Len(t, rec.list, 1)
	assert.Equal(t, 0, rec.list[0].Status)
}

func TestSelfTest_RecordFailureIsOnlyLogged(t *testing.T) {
	state := newState(t, "")
	addr := publicEndpoint(t, http.StatusOK, state.Token)
	require.NoError(t, state.WriteConfig(func(c *config.Config) error {
		c.PubAddr = addr
		return nil
	}))

	var buf bytes.Buffer
	rec := &memChecks{err: errors.New("disk full")}

	res := SelfTest(context.Background(), state, nil, logging.NewJSONLogger(&buf, slog.LevelInfo), rec)

	assert.True(t, res.OK())
	assert.Contains(t, buf.String(), "failed to record self-test")
}

func TestSelfTest_NilRecorder(t *testing.T) {
	state := newState(t, "")
	addr := publicEndpoint(t, http.StatusOK, state.Token)
	require.NoError(t, state.WriteConfig(func(c *config.Config) error {
		c.PubAddr = addr
		return nil
	}))

	res := SelfTest(context.Background(), state, nil, logging.Nop{}, nil)
	assert.True(t, res.OK())
}

func TestSelfTest_WaitsForConfigWriter(t *testing.T) {
	state := newState(t, closedAddr(t))
	addr := publicEndpoint(t, http.StatusOK, state.Token)

	locked := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = state.WriteConfig(func(c *config.Config) error {
			close(locked)
			<-release
			c.PubAddr = addr
			return nil
		})
	}()
	<-locked

	done := make(chan ctest.Result, 1)
	go func() {
		done <- SelfTest(context.Background(), state, nil, logging.Nop{}, nil)
	}()

	select {
	case <-done:
		t.Fatal("self-test ran while the config was being written")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	res := <-done
	assert.True(t, res.OK(), res.Detail())
}
