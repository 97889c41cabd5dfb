package repository

import (
	"context"
	"errors"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/chatter-app/chatter/backend/internal/auth/domain"
	"github.com/chatter-app/chatter/backend/internal/common/clock"
	commoncrypto "github.com/chatter-app/chatter/backend/internal/common/crypto"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	// Create allocates a fresh session identifier, persists the row and
	// returns the stored session with its computed expiry.
	Create(ctx context.Context, userID string, duration time.Duration, fingerprint []byte) (domain.Session, error)
	FindByID(ctx context.Context, id string) (domain.Session, error)
}

type PgSessionRepository struct {
	pool        *pgxpool.Pool
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
}

func NewPgSessionRepository(pool *pgxpool.Pool, idGenerator commoncrypto.IDGenerator, clk clock.Clock) *PgSessionRepository {
	return &PgSessionRepository{
		pool:        pool,
		idGenerator: idGenerator,
		clock:       clk,
	}
}

func (r *PgSessionRepository) Create(ctx context.Context, userID string, duration time.Duration, fingerprint []byte) (domain.Session, error) {
	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.Session{}, err
	}

	createdAt := r.clock.Now().UTC()
	session := domain.Session{
		ID:          id,
		UserID:      userID,
		Fingerprint: fingerprint,
		CreatedAt:   createdAt,
		ExpiresAt:   createdAt.Add(duration),
	}

	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO sessions (id, user_id, fingerprint, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		session.ID,
		session.UserID,
		session.Fingerprint,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

func (r *PgSessionRepository) FindByID(ctx context.Context, id string) (domain.Session, error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, user_id, fingerprint, created_at, expires_at
		 FROM sessions WHERE id = $1`,
		id,
	)

	var session domain.Session
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Fingerprint,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, ErrSessionNotFound
		}
		return domain.Session{}, err
	}

	return session, nil
}
