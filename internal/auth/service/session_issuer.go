package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	authdomain "github.com/chatter-app/chatter/backend/internal/auth/domain"
	commoncrypto "github.com/chatter-app/chatter/backend/internal/common/crypto"
	commonerrors "github.com/chatter-app/chatter/backend/internal/common/errors"
	"github.com/chatter-app/chatter/backend/internal/common/logger"
)

// IssueSession creates and persists a session for userID and signs the
// raw bytes of the allocated session identifier with the process key
// pair. It returns the session, the base64-encoded signature and the
// duration used, so callers can compute an absolute expiry. Storage
// errors propagate unchanged.
func (s *AuthService) IssueSession(ctx context.Context, userID string) (authdomain.Session, string, time.Duration, error) {
	fingerprint := authdomain.EmptyFingerprint()
	duration := s.sessionDuration

	session, err := s.sessions.Create(ctx, userID, duration, fingerprint)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "session_create_failed",
		}).Errorf("session issuance failed: %v", err)
		return authdomain.Session{}, "", 0, err
	}

	sessionID, err := uuid.Parse(session.ID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "session_id_parse_failed",
		}).Errorf("session issuance failed: %v", err)
		return authdomain.Session{}, "", 0, commonerrors.ErrInternalError.WithCause(err)
	}

	signature := s.signingKeys.Sign(sessionID[:])
	encoded := commoncrypto.EncodeSignature(signature)

	incrementSessionsIssued()

	return session, encoded, duration, nil
}
