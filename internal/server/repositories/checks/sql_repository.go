package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/nasomail/internal/dbx"
	"github.com/dmitrijs2005/nasomail/internal/server/models"
)

// SQLRepository implements Repository over dbx.DBTX (satisfied by *sql.DB or
// *sql.Tx) for both SQLite and PostgreSQL.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
	now     func() time.Time
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect, now: time.Now}
}

func (r *SQLRepository) Insert(ctx context.Context, c *models.ReachabilityCheck) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CheckedAt.IsZero() {
		c.CheckedAt = r.now()
	}
	c.CheckedAt = c.CheckedAt.UTC()

	query := dbx.Rebind(r.dialect, `
		INSERT INTO reachability_checks (id, target, outcome, status, detail, checked_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if _, err := r.db.ExecContext(ctx, query, c.ID, c.Target, c.Outcome, c.Status, c.Detail, c.CheckedAt); err != nil {
		return fmt.Errorf("failed to insert check: %w", err)
	}
	return nil
}

func (r *SQLRepository) Latest(ctx context.Context, limit int) ([]models.ReachabilityCheck, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := dbx.Rebind(r.dialect, `
		SELECT id, target, outcome, status, detail, checked_at
		FROM reachability_checks
		ORDER BY checked_at DESC
		LIMIT ?
	`)
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	var out []models.ReachabilityCheck
	for rows.Next() {
		var c models.ReachabilityCheck
		if err := rows.Scan(&c.ID, &c.Target, &c.Outcome, &c.Status, &c.Detail, &c.CheckedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checks: %w", err)
	}
	return out, nil
}
