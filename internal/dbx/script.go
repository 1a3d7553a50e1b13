package dbx

import (
	"context"
	"fmt"
	"strings"
)

// SplitStatements splits a schema script on ';' and drops statements that
// are blank or contain only "--" comment lines. Semicolons inside literals
// or trigger bodies are not supported.
func SplitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";") {
		if isBlank(stmt) {
			continue
		}
		out = append(out, strings.TrimSpace(stmt))
	}
	return out
}

func isBlank(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		return false
	}
	return true
}

// ExecScript executes every statement of script in order and stops at the
// first failure, reporting which statement broke.
func ExecScript(ctx context.Context, db DBTX, script string) (int, error) {
	stmts := SplitStatements(script)
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return i, fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	return len(stmts), nil
}
