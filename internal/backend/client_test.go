package backend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emergent-company/dronemcp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectSendsExpectedRequest(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(model.CommandResult{Success: true, Message: "connected"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, nil)
	result, err := c.Connect(t.Context(), "AA")

	require.NoError(t, err)
	assert.Equal(t, "POST", gotMethod)
	assert.Equal(t, "/api/drones/AA/connect", gotPath)
	assert.True(t, result.Success)
}

func TestServerErrorNormalizesToNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{
			"error": true, "error_code": "BACKEND_UNAVAILABLE", "message": "backend overloaded",
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, nil)
	_, err := c.Land(t.Context(), "AA")

	require.Error(t, err)
	netErr, ok := err.(*NetworkError)
	require.True(t, ok)
	assert.Equal(t, 503, netErr.Status)
	assert.True(t, netErr.Retryable())
}

func TestClientErrorIsNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"message": "bad request"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, nil)
	_, err := c.Takeoff(t.Context(), "AA", nil)

	require.Error(t, err)
	netErr, ok := err.(*NetworkError)
	require.True(t, ok)
	assert.False(t, netErr.Retryable())
}

func TestMoveEncodesDirectionAndDistance(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(model.CommandResult{Success: true})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL}, nil)
	_, err := c.Move(t.Context(), "AA", model.DirForward, 200)

	require.NoError(t, err)
	assert.Equal(t, "forward", body["direction"])
	assert.Equal(t, 200.0, body["distance"])
}
