//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/vocadrill/backend/internal/adapter/postgres"
	"github.com/vocadrill/backend/internal/adapter/postgres/leitnerentry"
	"github.com/vocadrill/backend/internal/adapter/postgres/reviewlog"
	"github.com/vocadrill/backend/internal/adapter/postgres/srsentry"
	"github.com/vocadrill/backend/internal/adapter/postgres/srsweights"
	"github.com/vocadrill/backend/internal/adapter/postgres/testhelper"
	"github.com/vocadrill/backend/internal/auth"
	"github.com/vocadrill/backend/internal/config"
	"github.com/vocadrill/backend/internal/service/study"
	"github.com/vocadrill/backend/internal/transport/middleware"
	"github.com/vocadrill/backend/internal/transport/rest"
)

const testJWTSecret = "e2e-test-secret-0123456789abcdef0123456789"

// testServer bundles the running HTTP server with everything a test needs to
// talk to it as an authenticated user.
type testServer struct {
	*httptest.Server
	Pool *pgxpool.Pool
	JWT  *auth.JWTManager
}

// setupTestServer wires the full REST stack over a real database and returns
// a running httptest server. Skips when no container runtime is available.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := study.NewService(
		logger,
		srsentry.New(pool),
		leitnerentry.New(pool),
		reviewlog.New(pool),
		srsweights.New(pool),
		postgres.NewTxManager(pool),
		study.DefaultConfig(),
	)
	require.NoError(t, err)

	jwtManager := auth.NewJWTManager(testJWTSecret, "vocadrill", time.Hour)

	router := rest.NewRouter(
		rest.NewStudyHandler(svc, logger),
		rest.NewHealthHandler(pool, "e2e"),
		rest.RouterConfig{
			Logger: logger,
			CORS:   config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,OPTIONS", AllowedHeaders: "Authorization,Content-Type"},
			Auth:   middleware.Auth(jwtManager),
		},
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testServer{Server: server, Pool: pool, JWT: jwtManager}
}

// tokenFor mints a valid access token for the given user.
func (ts *testServer) tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token, err := ts.JWT.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

// doJSON sends a JSON request with an optional bearer token and decodes the
// JSON response body into a generic map.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}

	return resp.StatusCode, decoded
}
