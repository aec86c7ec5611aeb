package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zakhar-Rapitskyi/railbook/internal/models"
	"github.com/Zakhar-Rapitskyi/railbook/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.Store, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	sess := session.NewStore()
	client := New(server.URL, sess)
	return client, sess, server
}

func TestClient_RequestHeaders(t *testing.T) {
	var captured http.Header
	client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		_ = json.NewEncoder(w).Encode([]models.Station{})
	}))
	require.NoError(t, sess.Set("secret-token", nil))

	_, err := client.ListStations(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", captured.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Get("Accept"))
	assert.NotEmpty(t, captured.Get("X-Request-ID"))
}

func TestClient_NoAuthHeaderWhenLoggedOut(t *testing.T) {
	var captured http.Header
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Header.Clone()
		_ = json.NewEncoder(w).Encode([]models.Station{})
	}))

	_, err := client.ListStations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, captured.Get("Authorization"))
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	require.NoError(t, sess.Set("stale-token", &models.User{ID: 7}))

	_, err := client.ListMyTickets(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.Empty(t, sess.Token(), "401 must clear the stored credentials")
	assert.Nil(t, sess.CurrentUser())
}

func TestClient_ForbiddenDoesNotClearSession(t *testing.T) {
	client, sess, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	require.NoError(t, sess.Set("valid-token", nil))

	_, err := client.ListAllTickets(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuth(err))
	assert.Equal(t, "valid-token", sess.Token())
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := New(server.URL, session.NewStore())
	_, err := client.ListStations(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestClient_ServerErrorIsTransport(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.ListStations(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestClient_MalformedResponseBody(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{truncated"))
	}))

	_, err := client.ListStations(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestClient_EmptyBaseURLFallsBack(t *testing.T) {
	client := New("", session.NewStore())
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestClient_ContextCancellation(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListStations(ctx)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestClient_RateLimitZeroDisablesThrottle(t *testing.T) {
	client := New("http://example.invalid", session.NewStore(), WithRateLimit(0, 0))
	assert.Nil(t, client.limiter)

	limited := New("http://example.invalid", session.NewStore(), WithRateLimit(5, 2))
	assert.NotNil(t, limited.limiter)
}
