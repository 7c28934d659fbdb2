package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetOrCreate(ctx context.Context, name string) (User, error) {
	const query = `
INSERT INTO users (name, created_at)
VALUES ($1, now())
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name, email, created_at`
	return scanUser(r.DB.QueryRowContext(ctx, query, name))
}

func (r *PGRepo) GetByName(ctx context.Context, name string) (User, error) {
	const query = `
SELECT id, name, email, created_at
FROM users
WHERE name = $1
LIMIT 1`
	return scanUser(r.DB.QueryRowContext(ctx, query, name))
}

func scanUser(row *sql.Row) (User, error) {
	var user User
	var email sql.NullString
	err := row.Scan(&user.ID, &user.Name, &email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if email.Valid {
		user.Email = email.String
	}
	return user, nil
}
