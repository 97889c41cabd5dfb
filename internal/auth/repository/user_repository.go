package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/chatter-app/chatter/backend/internal/auth/domain"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	FindByHandle(ctx context.Context, handle string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
	GetPasswordHash(ctx context.Context, handle string) (string, error)
}

type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO users (id, handle, display_name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID,
		user.Handle,
		user.DisplayName,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUsernameAlreadyExists
		}
		return err
	}
	return nil
}

func (r *PgUserRepository) FindByHandle(ctx context.Context, handle string) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, handle, display_name, email, password_hash, created_at
		 FROM users WHERE handle = $1`,
		handle,
	)
	return scanUser(row)
}

func (r *PgUserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, handle, display_name, email, password_hash, created_at
		 FROM users WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

func (r *PgUserRepository) GetPasswordHash(ctx context.Context, handle string) (string, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT password_hash FROM users WHERE handle = $1`,
		handle,
	)

	var hash string
	if err := row.Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	return hash, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Handle,
		&user.DisplayName,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}
