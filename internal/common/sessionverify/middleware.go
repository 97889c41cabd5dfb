package sessionverify

import (
	"context"
	"crypto/ed25519"
	"errors"
	"net/http"

	"github.com/google/uuid"

	authrepo "github.com/chatter-app/chatter/backend/internal/auth/repository"
	"github.com/chatter-app/chatter/backend/internal/common/clock"
	commoncrypto "github.com/chatter-app/chatter/backend/internal/common/crypto"
	commonhttp "github.com/chatter-app/chatter/backend/internal/common/http"
	"github.com/chatter-app/chatter/backend/internal/common/logger"
	"github.com/chatter-app/chatter/backend/internal/observability/metrics"
)

const (
	sessionIDHeader        = "X-Session-ID"
	sessionSignatureHeader = "X-Session-Signature"
)

// Principal identifies the authenticated caller of a request whose
// session signature verified against the process public key.
type Principal struct {
	UserID    string
	SessionID string
}

type contextKey string

const principalKey contextKey = "session_principal"

// Middleware authenticates requests carrying a session id and its
// signature. The signature must verify against publicKey over the raw
// bytes of the session id, the session must exist, and it must not be
// expired.
func Middleware(
	publicKey ed25519.PublicKey,
	sessions authrepo.SessionRepository,
	clk clock.Clock,
	log *logger.Logger,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get(sessionIDHeader)
			rawSignature := r.Header.Get(sessionSignatureHeader)
			if rawID == "" || rawSignature == "" {
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingSession, "missing session credentials", "")
				return
			}

			metrics.SessionVerificationsTotal.Inc()

			sessionID, err := uuid.Parse(rawID)
			if err != nil {
				rejectSession(w, log, r, "malformed session id")
				return
			}

			signature, err := commoncrypto.DecodeSignature(rawSignature)
			if err != nil {
				rejectSession(w, log, r, "malformed session signature")
				return
			}

			if !commoncrypto.VerifySignature(publicKey, sessionID[:], signature) {
				rejectSession(w, log, r, "signature verification failed")
				return
			}

			session, err := sessions.FindByID(r.Context(), sessionID.String())
			if err != nil {
				if errors.Is(err, authrepo.ErrSessionNotFound) {
					rejectSession(w, log, r, "session not found")
					return
				}
				log.Errorf("session lookup failed path=%s: %v", r.URL.Path, err)
				commonhttp.WriteErrorEnvelope(w, http.StatusInternalServerError, commonhttp.CodeInternalError, "internal server error", "")
				return
			}

			if session.ExpiredAt(clk.Now()) {
				metrics.SessionVerificationsFailed.Inc()
				log.Warnf("session auth failed path=%s: session expired", r.URL.Path)
				commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeSessionExpired, "session expired", "")
				return
			}

			principal := Principal{
				UserID:    session.UserID,
				SessionID: session.ID,
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalKey).(Principal)
	return principal, ok
}

func rejectSession(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string) {
	metrics.SessionVerificationsFailed.Inc()
	log.Warnf("session auth failed path=%s: %s", r.URL.Path, reason)
	commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeInvalidSession, "invalid session", "")
}
