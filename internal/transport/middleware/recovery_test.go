package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vocadrill/backend/pkg/ctxutil"
)

func TestRecovery_PanicBecomesJSON500(t *testing.T) {
	t.Parallel()

	logger, buf := captureLogger()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("selector quota underflow")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/study/session", nil)
	req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-panic"))
	rec := httptest.NewRecorder()

	Recovery(logger)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	if body["error"] != "internal server error" {
		t.Errorf("error body: got %q", body["error"])
	}

	logLine := buf.String()
	if !strings.Contains(logLine, "selector quota underflow") {
		t.Errorf("panic value missing from log: %s", logLine)
	}
	if !strings.Contains(logLine, "req-panic") {
		t.Errorf("request ID missing from log: %s", logLine)
	}
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	t.Parallel()

	logger, buf := captureLogger()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	Recovery(logger)(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want 204", rec.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output: %s", buf.String())
	}
}
