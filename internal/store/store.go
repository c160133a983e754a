// Package store is the data-access layer. Every method issues parameterized
// SQL against PostgreSQL and maps rows onto the records in package model.
//
// A Store holds no state besides its connection, so it is safe for
// concurrent use whenever the connection is (pgxpool.Pool is).
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrInvalidReference = errors.New("referenced row does not exist")
)

// SQLSTATE codes the store reacts to.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool DBTX
}

func New(pool DBTX) *Store {
	return &Store{pool: pool}
}

// wrap classifies a driver error and annotates it with op.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, ErrConflict)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, ErrInvalidReference)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
