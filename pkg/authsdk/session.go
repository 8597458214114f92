package authsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// refreshSkew refreshes the access token slightly before it expires.
const refreshSkew = 30 * time.Second

// Session holds a token pair and refreshes the access token when it is
// about to expire. Refresh tokens are single use, so a Session must not be
// shared with anything else that refreshes the same pair.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *SDKClient, tokens *TokenResponse) *Session {
	s := &Session{client: client}
	s.update(tokens)
	return s
}

func (s *Session) update(tokens *TokenResponse) {
	expiresAt := tokens.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(time.Duration(tokens.ExpiresIn) * time.Second)
	}
	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.expiresAt = expiresAt.Add(-refreshSkew)
}

// getValidToken returns a valid access token, automatically refreshing if expired.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock (another goroutine may have refreshed)
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", errors.New("access token expired and no refresh token available")
	}

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}
	s.update(tokens)
	return s.accessToken, nil
}

// GetUserInfo returns the session's identity, refreshing first if needed.
func (s *Session) GetUserInfo(ctx context.Context) (*UserInfoResponse, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	info, err := s.client.UserInfo(ctx, token)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		// The server rejected a token we thought was live; force one refresh.
		s.mu.Lock()
		s.expiresAt = time.Time{}
		s.mu.Unlock()
		if token, err = s.getValidToken(ctx); err != nil {
			return nil, err
		}
		return s.client.UserInfo(ctx, token)
	}
	return info, err
}

// Logout revokes the session's refresh token.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	refreshToken := s.refreshToken
	s.refreshToken = ""
	s.mu.Unlock()

	if refreshToken == "" {
		return errors.New("no refresh token to revoke")
	}
	return s.client.Logout(ctx, refreshToken)
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}
