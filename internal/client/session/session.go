// Package session keeps the CLI user's credentials on disk.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/nasomail/internal/common"
	"github.com/dmitrijs2005/nasomail/internal/records"
)

// ErrEmptyName is returned when login is attempted without a name.
var ErrEmptyName = errors.New("empty name")

// Store reads and writes the credentials record. The passphrase is stored
// as given; nothing is hashed or validated against a server.
type Store struct {
	rec *records.Store[common.AuthPayload]
}

func NewStore(path string) *Store {
	return &Store{rec: records.New(path, records.JSON[common.AuthPayload]())}
}

// Login stores the credentials, replacing any previous ones.
func (s *Store) Login(ctx context.Context, p common.AuthPayload) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrEmptyName
	}
	return s.rec.Write(ctx, p)
}

// Current returns the stored credentials; ok is false when nobody is logged in.
func (s *Store) Current(ctx context.Context) (p common.AuthPayload, ok bool, err error) {
	return s.rec.Read(ctx)
}

// Logout removes the credentials and reports whether there were any.
func (s *Store) Logout(ctx context.Context) (bool, error) {
	return s.rec.Remove(ctx)
}
