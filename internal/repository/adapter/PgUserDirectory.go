package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repository "github.com/adityaspaudel/MeroSanjal/internal/repository/port"
)

type PgUserDirectory struct {
	pool *pgxpool.Pool
}

func NewPgUserDirectory(pool *pgxpool.Pool) *PgUserDirectory {
	return &PgUserDirectory{pool: pool}
}

var _ repository.UserDirectory = (*PgUserDirectory)(nil)

func (r *PgUserDirectory) FindUsername(ctx context.Context, userID string) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgUserDirectory: nil pool")
	}
	var username string
	err := r.pool.QueryRow(ctx,
		"SELECT username FROM social.app_user WHERE id = $1",
		userID,
	).Scan(&username)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	return username, nil
}
