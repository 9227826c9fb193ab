package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	_ "modernc.org/sqlite"             // sqlite driver for local runs and tests
)

// Dialect selects the SQL flavour. Queries are written with $n placeholders in
// argument order and rebound to ? for sqlite.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) driver() string {
	if d == SQLite {
		return "sqlite"
	}
	return "pgx"
}

// Open opens and pings the database. The pool is sized for a small web tier.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.driver(), dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if d == SQLite {
		// one writer; also keeps ":memory:" databases on a single connection
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)
	}

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

// Migrate creates the readings table. Safe to call repeatedly.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	schema := postgresSchema
	if d == SQLite {
		schema = sqliteSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const postgresSchema = `
create table if not exists readings (
  id         bigserial primary key,
  created_at timestamptz not null default now(),
  name       text not null,
  phone      text not null,
  email      text,
  reading    text not null
)`

const sqliteSchema = `
create table if not exists readings (
  id         integer primary key autoincrement,
  created_at timestamp not null default current_timestamp,
  name       text not null,
  phone      text not null,
  email      text,
  reading    text not null
)`
