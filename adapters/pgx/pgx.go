// Package pgx adapts a PostgreSQL database to core.AccountRepository.
//
// Expected schema (unique indexes give Create its atomic duplicate signal;
// email and phone are nullable so the constraints stay sparse):
//
//	CREATE TABLE accounts (
//	    id               text PRIMARY KEY,
//	    email            text UNIQUE,
//	    phone            text UNIQUE,
//	    first_name       text NOT NULL DEFAULT '',
//	    last_name        text NOT NULL DEFAULT '',
//	    strategy         text NOT NULL,
//	    password_hash    text NOT NULL DEFAULT '',
//	    provider_subject text NOT NULL DEFAULT '',
//	    biometric_hash   text NOT NULL DEFAULT '',
//	    verified         boolean NOT NULL DEFAULT false,
//	    last_login_at    timestamptz,
//	    avatar           text NOT NULL DEFAULT '',
//	    bio              text NOT NULL DEFAULT '',
//	    location         text NOT NULL DEFAULT '',
//	    website          text NOT NULL DEFAULT '',
//	    created_at       timestamptz NOT NULL,
//	    updated_at       timestamptz NOT NULL
//	);
package pgx

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the subset of pgxpool.Pool the adapter needs. pgxmock satisfies it
// too, which keeps the adapter testable without a database.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Adapter implements core.AccountRepository over PostgreSQL.
type Adapter struct {
	db DB
}

func New(db DB) *Adapter {
	return &Adapter{db: db}
}

// NewWithPool is a convenience for the common case.
func NewWithPool(pool *pgxpool.Pool) *Adapter {
	return &Adapter{db: pool}
}
