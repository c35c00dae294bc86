package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/repurposely/repurposely/internal/pkg/env"
)

// Sentinel errors the API layer maps to HTTP statuses. Provider SDK errors
// never cross this package boundary.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrRegistration   = errors.New("registration failed")
)

// Client talks to the Supabase GoTrue auth endpoints. Sign-in and sign-up
// are fully delegated; this service only keeps the provider-assigned user id.
type Client struct {
	BaseURL string
	APIKey  string

	HTTPClient *http.Client
}

// Session is the outcome of a successful password sign-in.
type Session struct {
	AccessToken string
	UserID      string
	Email       string
}

func NewClientFromEnv() *Client {
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(env.GetEnv("SUPABASE_URL", "")), "/"),
		APIKey:  strings.TrimSpace(env.GetEnv("SUPABASE_KEY", "")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges email/password credentials for a session token and the
// provider-assigned user id.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := c.postJSON(ctx, "/auth/v1/token?grant_type=password", credentialsBody{Email: email, Password: password}, ErrAuthentication)
	if err != nil {
		return nil, err
	}

	var raw struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	if strings.TrimSpace(raw.AccessToken) == "" || strings.TrimSpace(raw.User.ID) == "" {
		return nil, fmt.Errorf("%w: provider returned no session", ErrAuthentication)
	}

	return &Session{
		AccessToken: raw.AccessToken,
		UserID:      raw.User.ID,
		Email:       strings.TrimSpace(raw.User.Email),
	}, nil
}

// SignUp registers a new account and returns the provider-assigned user id.
func (c *Client) SignUp(ctx context.Context, email, password string) (string, error) {
	body, err := c.postJSON(ctx, "/auth/v1/signup", credentialsBody{Email: email, Password: password}, ErrRegistration)
	if err != nil {
		return "", err
	}

	// GoTrue returns the user object at the top level when email confirmation
	// is on, nested under "user" when a session is issued immediately.
	var raw struct {
		ID   string `json:"id"`
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRegistration, err)
	}
	userID := strings.TrimSpace(raw.ID)
	if userID == "" {
		userID = strings.TrimSpace(raw.User.ID)
	}
	if userID == "" {
		return "", fmt.Errorf("%w: provider returned no user", ErrRegistration)
	}
	return userID, nil
}

// OAuthAuthorizeURL builds the provider redirect for an OAuth sign-in. The
// OAuth callback itself is completed on the frontend, not here.
func (c *Client) OAuthAuthorizeURL(provider, redirectTo string) (string, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("SUPABASE_URL is not configured")
	}
	u, err := url.Parse(c.BaseURL + "/auth/v1/authorize")
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("provider", provider)
	if strings.TrimSpace(redirectTo) != "" {
		q.Set("redirect_to", redirectTo)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, kind error) ([]byte, error) {
	if strings.TrimSpace(c.BaseURL) == "" || strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("SUPABASE_URL/SUPABASE_KEY are not configured")
	}

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kind, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", kind, providerErrorMessage(body, resp.StatusCode))
	}
	return body, nil
}

// providerErrorMessage extracts a human-readable detail from a GoTrue error
// body, falling back to the HTTP status.
func providerErrorMessage(body []byte, status int) string {
	var raw struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &raw); err == nil {
		for _, m := range []string{raw.ErrorDescription, raw.Msg, raw.Message} {
			if strings.TrimSpace(m) != "" {
				return strings.TrimSpace(m)
			}
		}
	}
	return fmt.Sprintf("provider returned status %d", status)
}
