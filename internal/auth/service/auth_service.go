package service

import (
	"context"
	"crypto/ed25519"
	"errors"
	"time"

	authdomain "github.com/chatter-app/chatter/backend/internal/auth/domain"
	authrepo "github.com/chatter-app/chatter/backend/internal/auth/repository"
	"github.com/chatter-app/chatter/backend/internal/auth/service/mapper"
	"github.com/chatter-app/chatter/backend/internal/common/clock"
	commoncrypto "github.com/chatter-app/chatter/backend/internal/common/crypto"
	commonerrors "github.com/chatter-app/chatter/backend/internal/common/errors"
	"github.com/chatter-app/chatter/backend/internal/common/logger"
	"github.com/chatter-app/chatter/backend/internal/domain"
)

type AuthService struct {
	users           authrepo.UserRepository
	sessions        authrepo.SessionRepository
	hasher          commoncrypto.PasswordHasher
	signingKeys     *commoncrypto.SigningKeys
	idGenerator     commoncrypto.IDGenerator
	sessionDuration time.Duration
	clock           clock.Clock
	log             *logger.Logger

	// referenceHash is verified against on unknown-handle logins so the
	// failure takes as long as a real password mismatch.
	referenceHash commoncrypto.ParsedHash
}

func NewAuthService(
	users authrepo.UserRepository,
	sessions authrepo.SessionRepository,
	hasher commoncrypto.PasswordHasher,
	signingKeys *commoncrypto.SigningKeys,
	idGenerator commoncrypto.IDGenerator,
	sessionDuration time.Duration,
	clk clock.Clock,
	log *logger.Logger,
) (*AuthService, error) {
	reference, err := hasher.Hash("chatter-reference-password")
	if err != nil {
		return nil, err
	}
	parsed, err := hasher.Deserialize(reference)
	if err != nil {
		return nil, err
	}

	return &AuthService{
		users:           users,
		sessions:        sessions,
		hasher:          hasher,
		signingKeys:     signingKeys,
		idGenerator:     idGenerator,
		sessionDuration: sessionDuration,
		clock:           clk,
		log:             log,
		referenceHash:   parsed,
	}, nil
}

func (s *AuthService) SigningPublicKey() ed25519.PublicKey {
	return s.signingKeys.Public()
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type RegisterResult struct {
	UserID           string
	Username         string
	SessionID        string
	SessionSignature string
	SessionExpires   time.Time
}

type LoginResult struct {
	SessionID        string
	SessionExpires   time.Time
	SessionSignature string
	DisplayName      *string
	Email            *string
	ProfileImage     *string
	UserID           string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if verr := validateRegisterInput(input); verr != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", verr)
		return RegisterResult{}, verr
	}

	handle, err := domain.NewHandle(input.Username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return RegisterResult{}, newValidationError(err.Error())
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, commoncrypto.ErrPasswordTooLong) {
			return RegisterResult{}, newValidationError(err.Error())
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return RegisterResult{}, commonerrors.ErrHashingFailed.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return RegisterResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := authdomain.User{
		ID:           id,
		Handle:       handle.String(),
		PasswordHash: hash,
		CreatedAt:    s.clock.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, authrepo.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: already exists")
			return RegisterResult{}, ErrUsernameTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return RegisterResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	session, signature, duration, err := s.IssueSession(ctx, user.ID)
	if err != nil {
		return RegisterResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Handle,
		"user_id":  user.ID,
		"action":   "register_success",
	}).Info("new user created")

	incrementUsersRegistered()

	return RegisterResult{
		UserID:           user.ID,
		Username:         user.Handle,
		SessionID:        session.ID,
		SessionSignature: signature,
		SessionExpires:   s.clock.Now().UTC().Add(duration),
	}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	handle, err := domain.NewHandle(input.Username)
	if err != nil {
		return LoginResult{}, newValidationError(err.Error())
	}

	storedHash, err := s.users.GetPasswordHash(ctx, handle.String())
	if err != nil {
		if errors.Is(err, authrepo.ErrUserNotFound) {
			// Burn the same work a real verification costs so an
			// unknown handle is not observable through latency.
			_ = s.hasher.Verify(input.Password, s.referenceHash)
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_failed",
			}).Warn("login failed: invalid credentials")
			incrementLoginsFailed()
			return LoginResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	parsed, err := s.hasher.Deserialize(storedHash)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_corrupt_hash",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrCorruptPasswordHash.WithCause(err)
	}

	if err := s.hasher.Verify(input.Password, parsed); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_failed",
		}).Warn("login failed: invalid credentials")
		incrementLoginsFailed()
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByHandle(ctx, handle.String())
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_user_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	session, signature, duration, err := s.IssueSession(ctx, user.ID)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Handle,
		"user_id":  user.ID,
		"action":   "login_success",
	}).Info("login success")

	incrementLoginsSucceeded()

	return LoginResult{
		SessionID:        session.ID,
		SessionExpires:   s.clock.Now().UTC().Add(duration),
		SessionSignature: signature,
		DisplayName:      user.DisplayName,
		Email:            user.Email,
		ProfileImage:     nil,
		UserID:           user.ID,
	}, nil
}

// Profile returns the public-safe projection of the user owning id.
func (s *AuthService) Profile(ctx context.Context, userID string) (authdomain.PublicUserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, authrepo.ErrUserNotFound) {
			return authdomain.PublicUserProfile{}, commonerrors.ErrUserNotFound
		}
		return authdomain.PublicUserProfile{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return mapper.ToPublicProfile(user), nil
}
