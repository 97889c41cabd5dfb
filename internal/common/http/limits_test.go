package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// hides the underlying *strings.Reader so httptest.NewRequest leaves
// ContentLength unset and the body is limited while streaming.
type unsizedReader struct {
	r io.Reader
}

func (u *unsizedReader) Read(p []byte) (int, error) {
	return u.r.Read(p)
}

func TestMaxRequestSizeMiddleware_DeclaredLengthRejectedUpFront(t *testing.T) {
	called := false
	handler := MaxRequestSizeMiddleware(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 64)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if called {
		t.Error("expected handler not to run for an oversized declared length")
	}
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}

	var env ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if env.Code != CodeRequestTooLarge {
		t.Errorf("expected %s, got %q", CodeRequestTooLarge, env.Code)
	}
}

func TestMaxRequestSizeMiddleware_StreamedBodySurfacesTooLarge(t *testing.T) {
	var decodeErr error
	handler := MaxRequestSizeMiddleware(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var v map[string]any
		decodeErr = DecodeJSON(r, &v)
	}))

	body := &unsizedReader{r: strings.NewReader(`{"field":"` + strings.Repeat("a", 64) + `"}`)}
	req := httptest.NewRequest(http.MethodPost, "/", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if decodeErr == nil {
		t.Fatal("expected decode to fail on an over-limit body")
	}
	if !IsRequestTooLarge(decodeErr) {
		t.Errorf("expected IsRequestTooLarge to report the limit error, got %v", decodeErr)
	}
}

func TestMaxRequestSizeMiddleware_WithinLimitPasses(t *testing.T) {
	var v map[string]any
	var decodeErr error
	handler := MaxRequestSizeMiddleware(1024)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decodeErr = DecodeJSON(r, &v)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"field":"ok"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if decodeErr != nil {
		t.Fatalf("expected decode to succeed, got %v", decodeErr)
	}
	if v["field"] != "ok" {
		t.Errorf("expected decoded body, got %v", v)
	}
}
