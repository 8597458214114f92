package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the pepperauth service. It covers the unauthenticated
// endpoints and creates Sessions for the authenticated ones.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a client with a 10 second request timeout.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// RegisterLocal creates a password account.
func (c *SDKClient) RegisterLocal(ctx context.Context, req RegisterLocalRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.postJSON(ctx, "/v1/auth/local/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginLocal exchanges an email and password for a token pair.
func (c *SDKClient) LoginLocal(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	req := LoginLocalRequest{Email: email, Password: password}
	if err := c.postJSON(ctx, "/v1/auth/local/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterGoogle creates an account from a Google ID token.
func (c *SDKClient) RegisterGoogle(ctx context.Context, idToken string) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.postJSON(ctx, "/v1/auth/google/register", GoogleRequest{IDToken: idToken}, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginGoogle exchanges a Google ID token for a token pair.
func (c *SDKClient) LoginGoogle(ctx context.Context, idToken string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/google/login", GoogleRequest{IDToken: idToken}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh consumes refreshToken and returns a new pair. The old refresh
// token must not be used again.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.postJSON(ctx, "/v1/auth/refresh", RefreshRequest{RefreshToken: refreshToken}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes refreshToken. Revoking an unknown token succeeds.
func (c *SDKClient) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/logout", RefreshRequest{RefreshToken: refreshToken}, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// UserInfo returns the identity carried by accessToken.
func (c *SDKClient) UserInfo(ctx context.Context, accessToken string) (*UserInfoResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/auth/userinfo", nil, map[string]string{
		"Authorization": "Bearer " + accessToken,
	})
	if err != nil {
		return nil, err
	}

	var out UserInfoResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AuthenticateWithPassword logs in and wraps the tokens in a Session.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, error) {
	tokens, err := c.LoginLocal(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokens), nil
}

// AuthenticateWithGoogle logs in with a Google ID token and wraps the tokens
// in a Session.
func (c *SDKClient) AuthenticateWithGoogle(ctx context.Context, idToken string) (*Session, error) {
	tokens, err := c.LoginGoogle(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokens), nil
}

// NewSessionFromTokens resumes a session from tokens obtained earlier.
func (c *SDKClient) NewSessionFromTokens(tokens *TokenResponse) *Session {
	return newSession(c, tokens)
}
