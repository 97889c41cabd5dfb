package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/chatter-app/chatter/backend/internal/auth/domain"
	authrepo "github.com/chatter-app/chatter/backend/internal/auth/repository"
	"github.com/chatter-app/chatter/backend/internal/auth/service"
	"github.com/chatter-app/chatter/backend/internal/common/clock"
	commoncrypto "github.com/chatter-app/chatter/backend/internal/common/crypto"
	"github.com/chatter-app/chatter/backend/internal/common/logger"
)

type mockUserRepo struct {
	createFunc          func(ctx context.Context, user authdomain.User) error
	findByHandleFunc    func(ctx context.Context, handle string) (authdomain.User, error)
	findByIDFunc        func(ctx context.Context, id string) (authdomain.User, error)
	getPasswordHashFunc func(ctx context.Context, handle string) (string, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user authdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByHandle(ctx context.Context, handle string) (authdomain.User, error) {
	if m.findByHandleFunc != nil {
		return m.findByHandleFunc(ctx, handle)
	}
	return authdomain.User{}, authrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (authdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return authdomain.User{}, authrepo.ErrUserNotFound
}

func (m *mockUserRepo) GetPasswordHash(ctx context.Context, handle string) (string, error) {
	if m.getPasswordHashFunc != nil {
		return m.getPasswordHashFunc(ctx, handle)
	}
	return "", authrepo.ErrUserNotFound
}

type mockSessionRepo struct {
	clock      clock.Clock
	createFunc func(ctx context.Context, userID string, duration time.Duration, fingerprint []byte) (authdomain.Session, error)
	findByID   func(ctx context.Context, id string) (authdomain.Session, error)

	created []authdomain.Session
}

func (m *mockSessionRepo) Create(ctx context.Context, userID string, duration time.Duration, fingerprint []byte) (authdomain.Session, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, duration, fingerprint)
	}

	now := m.clock.Now().UTC()
	session := authdomain.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		Fingerprint: fingerprint,
		CreatedAt:   now,
		ExpiresAt:   now.Add(duration),
	}
	m.created = append(m.created, session)
	return session, nil
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id string) (authdomain.Session, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	for _, session := range m.created {
		if session.ID == id {
			return session, nil
		}
	}
	return authdomain.Session{}, authrepo.ErrSessionNotFound
}

// fakeHasher keeps flow tests fast; hashing correctness is covered by
// the crypto package tests.
type fakeHasher struct {
	hashFunc        func(password string) (string, error)
	deserializeFunc func(encoded string) (commoncrypto.ParsedHash, error)
	verifyFunc      func(password string, parsed commoncrypto.ParsedHash) error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashFunc != nil {
		return f.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (f *fakeHasher) Deserialize(encoded string) (commoncrypto.ParsedHash, error) {
	if f.deserializeFunc != nil {
		return f.deserializeFunc(encoded)
	}
	return commoncrypto.ParsedHash{Hash: []byte(encoded)}, nil
}

func (f *fakeHasher) Verify(password string, parsed commoncrypto.ParsedHash) error {
	if f.verifyFunc != nil {
		return f.verifyFunc(password, parsed)
	}
	if "hashed:"+password != string(parsed.Hash) {
		return commoncrypto.ErrPasswordMismatch
	}
	return nil
}

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockSessionRepo, *fakeHasher, *commoncrypto.SigningKeys, *clock.MockClock) {
	t.Helper()

	mockClock := clock.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	userRepo := &mockUserRepo{}
	sessionRepo := &mockSessionRepo{clock: mockClock}
	hasher := &fakeHasher{}

	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	keys, err := commoncrypto.NewSigningKeysFromSeed(seed)
	if err != nil {
		t.Fatalf("failed to build signing keys: %v", err)
	}

	svc, err := service.NewAuthService(
		userRepo,
		sessionRepo,
		hasher,
		keys,
		commoncrypto.NewUUIDGenerator(),
		21*24*time.Hour,
		mockClock,
		logger.NewDiscard(),
	)
	if err != nil {
		t.Fatalf("failed to build auth service: %v", err)
	}

	return svc, userRepo, sessionRepo, hasher, keys, mockClock
}

func storedUser(id, handle, passwordHash string, createdAt time.Time) authdomain.User {
	return authdomain.User{
		ID:           id,
		Handle:       handle,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
}

func mustSessionBytes(t *testing.T, sessionID string) []byte {
	t.Helper()
	parsed, err := uuid.Parse(sessionID)
	if err != nil {
		t.Fatalf("session id %q is not a uuid: %v", sessionID, err)
	}
	return parsed[:]
}
