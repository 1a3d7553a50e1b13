// Package models defines server-side data models persisted in the database.
package models

import "time"

// ReachabilityCheck is one recorded self-test against the public address.
type ReachabilityCheck struct {
	ID string `db:"id"`
	// Target is the address that was probed.
	Target string `db:"target"`
	// Outcome is the ctest outcome name, e.g. "success" or "unreachable".
	Outcome string `db:"outcome"`
	// Status is the HTTP status, 0 when no response arrived.
	Status    int       `db:"status"`
	Detail    string    `db:"detail"`
	CheckedAt time.Time `db:"checked_at"`
}
