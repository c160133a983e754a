package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"lightbnb/internal/model"
)

// CreateUser inserts u and fills in its id. The insert is skipped when the
// email is already taken, in which case ErrConflict is returned; the check
// and the insert are one statement, so concurrent registrations cannot both
// succeed.
func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password) VALUES ($1,$2,$3)
		 ON CONFLICT (email) DO NOTHING
		 RETURNING id`,
		u.Name, u.Email, u.Password,
	).Scan(&u.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("create user %q: %w", u.Email, ErrConflict)
	}
	return wrap("create user", err)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, password FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		return nil, wrap("user by email", err)
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, password FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password)
	if err != nil {
		return nil, wrap("user by id", err)
	}
	return u, nil
}
