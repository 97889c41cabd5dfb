package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chatter-app/chatter/backend/internal/common/logger"
)

func TestTraceIDMiddleware_PropagatesToLogger(t *testing.T) {
	var fromLogger, fromHelper string
	handler := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromLogger = logger.TraceIDFromContext(r.Context())
		fromHelper = TraceIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "trace-42")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if fromLogger != "trace-42" {
		t.Errorf("expected logger to read the stored trace id, got %q", fromLogger)
	}
	if fromHelper != "trace-42" {
		t.Errorf("expected helper to read the stored trace id, got %q", fromHelper)
	}
	if got := rec.Header().Get("X-Trace-ID"); got != "trace-42" {
		t.Errorf("expected trace id echoed in response header, got %q", got)
	}
}

func TestTraceIDMiddleware_GeneratesWhenAbsent(t *testing.T) {
	var traceID string
	handler := TraceIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = TraceIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(traceID) != 32 {
		t.Errorf("expected a generated 16-byte hex trace id, got %q", traceID)
	}
	if rec.Header().Get("X-Trace-ID") != traceID {
		t.Errorf("expected response header to carry the generated trace id")
	}
}
