package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		BaseURL:    server.URL,
		APIKey:     "anon-key",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSignIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "/auth/v1/token", req.URL.Path)
		require.Equal(t, "password", req.URL.Query().Get("grant_type"))
		require.Equal(t, "anon-key", req.Header.Get("apikey"))

		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))

		if body.Password != "correct-horse" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "jwt-token",
			"user":         map[string]string{"id": "uuid-1", "email": body.Email},
		})
	}))
	defer server.Close()

	client := newTestClient(server)

	session, err := client.SignIn(context.Background(), "a@b.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", session.AccessToken)
	assert.Equal(t, "uuid-1", session.UserID)
	assert.Equal(t, "a@b.com", session.Email)

	_, err = client.SignIn(context.Background(), "a@b.com", "wrong")
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestSignIn_EmptySession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	_, err := newTestClient(server).SignIn(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestSignUp(t *testing.T) {
	tests := []struct {
		name     string
		response map[string]any
		wantID   string
	}{
		{
			name:     "top-level user object",
			response: map[string]any{"id": "uuid-2", "email": "a@b.com"},
			wantID:   "uuid-2",
		},
		{
			name:     "session with nested user",
			response: map[string]any{"access_token": "jwt", "user": map[string]string{"id": "uuid-3"}},
			wantID:   "uuid-3",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				require.Equal(t, "/auth/v1/signup", req.URL.Path)
				json.NewEncoder(w).Encode(tc.response)
			}))
			defer server.Close()

			userID, err := newTestClient(server).SignUp(context.Background(), "a@b.com", "pw")
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, userID)
		})
	}
}

func TestSignUp_ProviderRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
	}))
	defer server.Close()

	_, err := newTestClient(server).SignUp(context.Background(), "a@b.com", "pw")
	assert.ErrorIs(t, err, ErrRegistration)
	assert.Contains(t, err.Error(), "User already registered")
}

func TestOAuthAuthorizeURL(t *testing.T) {
	client := &Client{BaseURL: "https://proj.supabase.co"}

	raw, err := client.OAuthAuthorizeURL("google", "http://localhost:3000")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/auth/v1/authorize", u.Path)
	assert.Equal(t, "google", u.Query().Get("provider"))
	assert.Equal(t, "http://localhost:3000", u.Query().Get("redirect_to"))

	_, err = (&Client{}).OAuthAuthorizeURL("google", "")
	assert.Error(t, err)
}
