// Package appctx holds the state shared by every server request handler and
// background task: the database handle, the live configuration and the
// per-process verification token. Each field has its own lock, so readers of
// one never wait on a writer of another.
package appctx

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/nasomail/internal/server/config"
)

// AppContext is constructed once at startup and shared by pointer.
type AppContext struct {
	pool   *Guarded[*sql.DB]
	config *Guarded[config.Config]
	token  *Guarded[string]
}

// New builds the context around an open database and a loaded config and
// generates a fresh verification token. The token is never persisted.
func New(pool *sql.DB, cfg config.Config) *AppContext {
	return &AppContext{
		pool:   NewGuarded(pool),
		config: NewGuarded(cfg),
		token:  NewGuarded(uuid.NewString()),
	}
}

func (a *AppContext) ReadPool(fn func(*sql.DB) error) error {
	return a.pool.Read(fn)
}

func (a *AppContext) WritePool(fn func(**sql.DB) error) error {
	return a.pool.Write(fn)
}

func (a *AppContext) ReadConfig(fn func(config.Config) error) error {
	return a.config.Read(fn)
}

func (a *AppContext) WriteConfig(fn func(*config.Config) error) error {
	return a.config.Write(fn)
}

// ReadToken has no write counterpart: the token is fixed for the process.
func (a *AppContext) ReadToken(fn func(string) error) error {
	return a.token.Read(fn)
}

// Config returns a snapshot of the configuration.
func (a *AppContext) Config() config.Config {
	return a.config.Load()
}

// Token returns the verification token.
func (a *AppContext) Token() string {
	return a.token.Load()
}

// Pool returns the current database handle.
func (a *AppContext) Pool() *sql.DB {
	return a.pool.Load()
}
