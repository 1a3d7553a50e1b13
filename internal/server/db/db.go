// Package db opens the server database, applies the operator's schema file
// and runs the embedded goose migrations.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/nasomail/internal/dbx"
	"github.com/dmitrijs2005/nasomail/internal/filex"
	"github.com/dmitrijs2005/nasomail/internal/server/migrations"
)

// ErrSchemaMissing is returned when the schema file does not exist.
var ErrSchemaMissing = errors.New("schema file not found")

// sqlitePragmas are passed in the DSN so every pooled connection gets them.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// Open connects to dsn. A postgres:// URL goes through pgx; anything else is
// an SQLite file path, created together with its parent directories when
// missing.
func Open(ctx context.Context, dsn string) (*sql.DB, dbx.Dialect, error) {
	dialect := dbx.DialectFor(dsn)

	source := dsn
	if dialect == dbx.DialectSQLite {
		if _, err := filex.Touch(sqliteFile(dsn)); err != nil {
			return nil, dialect, fmt.Errorf("failed to create database file: %w", err)
		}
		source = sqliteSource(dsn)
	}

	db, err := sql.Open(dialect.DriverName(), source)
	if err != nil {
		return nil, dialect, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, dialect, fmt.Errorf("db ping error: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		// single writer keeps sqlite from returning SQLITE_BUSY under load
		db.SetMaxOpenConns(1)
	}

	return db, dialect, nil
}

// sqliteFile strips the "file:" prefix and query of an SQLite DSN.
func sqliteFile(dsn string) string {
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	return path
}

// sqliteSource appends the connection pragmas to the DSN query.
func sqliteSource(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqlitePragmas
	}
	return dsn + "?" + sqlitePragmas
}

// ApplySchema executes the statements of the schema file at path inside one
// transaction and returns how many ran. A missing file is ErrSchemaMissing.
func ApplySchema(ctx context.Context, db *sql.DB, path string) (int, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrSchemaMissing, path)
		}
		return 0, fmt.Errorf("failed to read schema: %w", err)
	}

	var n int
	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		n, err = dbx.ExecScript(ctx, tx, string(script))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to apply schema %s: %w", path, err)
	}
	return n, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against db using the dialect's SQL flavour.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}
