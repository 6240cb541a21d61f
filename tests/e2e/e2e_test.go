//go:build e2e

package e2e_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_LiveEndpoint verifies the liveness probe returns 200 OK.
func TestE2E_LiveEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health/live")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

// TestE2E_ReadyEndpoint verifies the readiness probe returns 200 OK when the
// database is reachable.
func TestE2E_ReadyEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestE2E_HealthEndpoint verifies the full health check includes version and
// the postgres check result.
func TestE2E_HealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["version"])

	checks, ok := body["checks"].(map[string]any)
	require.True(t, ok, "expected checks object")

	pg, ok := checks["postgres"].(map[string]any)
	require.True(t, ok, "expected postgres check")
	assert.Equal(t, "ok", pg["status"])
}

// TestE2E_StudyEndpointsRejectAnonymous verifies that study operations
// require an authenticated user.
func TestE2E_StudyEndpointsRejectAnonymous(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.doJSON(t, http.MethodPost, "/api/study/review", "", map[string]any{
		"deck": "core", "vocabId": "word-1", "rating": "good",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

// TestE2E_InvalidTokenRejected verifies the auth middleware rejects a
// malformed bearer token before the handler runs.
func TestE2E_InvalidTokenRejected(t *testing.T) {
	ts := setupTestServer(t)

	status, _ := ts.doJSON(t, http.MethodGet, "/api/study/dashboard?deck=core", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
