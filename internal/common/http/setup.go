package http

import (
	"net/http"

	"github.com/chatter-app/chatter/backend/internal/common/constants"
	"github.com/chatter-app/chatter/backend/internal/common/httpmetrics"
	"github.com/chatter-app/chatter/backend/internal/common/logger"
)

func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(metrics.Wrap(handler)))))
}
