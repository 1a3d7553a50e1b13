// Package checks persists the outcome of every server self-test so operators
// can see when the public address last verified.
package checks

import (
	"context"

	"github.com/dmitrijs2005/nasomail/internal/server/models"
)

// Repository stores and lists reachability checks.
type Repository interface {
	// Insert stores c. An empty ID or zero CheckedAt is filled in and written
	// back to c.
	Insert(ctx context.Context, c *models.ReachabilityCheck) error

	// Latest returns up to limit checks, newest first.
	Latest(ctx context.Context, limit int) ([]models.ReachabilityCheck, error)
}
