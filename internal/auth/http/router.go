package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	authrepo "github.com/chatter-app/chatter/backend/internal/auth/repository"
	"github.com/chatter-app/chatter/backend/internal/auth/service"
	"github.com/chatter-app/chatter/backend/internal/common/clock"
	commonerrors "github.com/chatter-app/chatter/backend/internal/common/errors"
	commonhttp "github.com/chatter-app/chatter/backend/internal/common/http"
	"github.com/chatter-app/chatter/backend/internal/common/logger"
	"github.com/chatter-app/chatter/backend/internal/common/sessionverify"
)

type createAccountRequest struct {
	Username string `json:"username" validate:"required,max=30"`
	Password string `json:"password" validate:"required,min=8,max=512"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=30"`
	Password string `json:"password" validate:"required,max=512"`
}

type createAccountResponse struct {
	UserID           string    `json:"user_id"`
	Username         string    `json:"username"`
	SessionSignature string    `json:"session_signature"`
	SessionID        string    `json:"session_id"`
	SessionExpires   time.Time `json:"session_expires"`
}

type loginResponse struct {
	SessionID        string    `json:"session_id"`
	SessionExpires   time.Time `json:"session_expires"`
	SessionSignature string    `json:"session_signature"`
	DisplayName      *string   `json:"display_name,omitempty"`
	Email            *string   `json:"email,omitempty"`
	ProfileImage     *string   `json:"profile_image"`
	UserID           string    `json:"user_id"`
}

type Handler struct {
	auth     *service.AuthService
	validate *validator.Validate
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(
	auth *service.AuthService,
	sessions authrepo.SessionRepository,
	clk clock.Clock,
	requestTimeout time.Duration,
	log *logger.Logger,
) http.Handler {
	h := &Handler{
		auth:     auth,
		validate: validator.New(),
		timeout:  requestTimeout,
		log:      log,
	}

	authenticated := sessionverify.Middleware(auth.SigningPublicKey(), sessions, clk, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/api/account/create", h.createAccount)
	mux.HandleFunc("/api/account/login", h.login)
	mux.Handle("/api/account/me", authenticated(http.HandlerFunc(h.me)))
	return mux
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", "")
		return
	}

	var req createAccountRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		if commonhttp.IsRequestTooLarge(err) {
			commonhttp.WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, commonhttp.CodeRequestTooLarge, "request body too large", "")
			return
		}
		h.log.Warnf("create account failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("create account failed: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, "invalid request", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, createAccountResponse{
		UserID:           result.UserID,
		Username:         result.Username,
		SessionSignature: result.SessionSignature,
		SessionID:        result.SessionID,
		SessionExpires:   result.SessionExpires,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", "")
		return
	}

	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		if commonhttp.IsRequestTooLarge(err) {
			commonhttp.WriteErrorEnvelope(w, http.StatusRequestEntityTooLarge, commonhttp.CodeRequestTooLarge, "request body too large", "")
			return
		}
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("login failed: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeValidationFailed, "invalid request", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result, err := h.auth.Login(ctx, service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		SessionID:        result.SessionID,
		SessionExpires:   result.SessionExpires,
		SessionSignature: result.SessionSignature,
		DisplayName:      result.DisplayName,
		Email:            result.Email,
		ProfileImage:     result.ProfileImage,
		UserID:           result.UserID,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		commonhttp.WriteErrorEnvelope(w, http.StatusMethodNotAllowed, commonhttp.CodeMethodNotAllowed, "method not allowed", "")
		return
	}

	principal, ok := sessionverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingSession, "missing session credentials", "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profile, err := h.auth.Profile(ctx, principal.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, profile)
}

// writeError surfaces domain errors with their own status and code;
// everything else collapses into an opaque 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := commonhttp.TraceIDFromContext(r.Context())

	if de, ok := commonerrors.AsDomainError(err); ok {
		switch de.Category() {
		case commonerrors.CategoryInternal, commonerrors.CategoryExternal:
			commonhttp.WriteErrorEnvelope(w, http.StatusInternalServerError, commonhttp.CodeInternalError, "internal error", traceID)
		default:
			commonhttp.WriteErrorEnvelope(w, de.HTTPStatus(), de.Code(), de.Message(), traceID)
		}
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		commonhttp.WriteErrorEnvelope(w, http.StatusGatewayTimeout, commonhttp.CodeInternalError, "request timed out", traceID)
		return
	}

	h.log.Errorf("unhandled error path=%s: %v", r.URL.Path, err)
	commonhttp.WriteErrorEnvelope(w, http.StatusInternalServerError, commonhttp.CodeInternalError, "internal error", traceID)
}
