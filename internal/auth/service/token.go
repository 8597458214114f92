package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/pepperauth/internal/auth/domain"
	"github.com/aussiebroadwan/pepperauth/internal/auth/store"
	"github.com/aussiebroadwan/pepperauth/pkg/cryptox"
	"github.com/aussiebroadwan/pepperauth/pkg/jwtx"
	"github.com/aussiebroadwan/pepperauth/pkg/slogx"
)

var (
	ErrSigningFailed = errors.New("signing_failed")
	// ErrStorageFailed wraps the token store error that caused it.
	ErrStorageFailed         = errors.New("storage_failed")
	ErrRefreshNotFound       = errors.New("refresh_token_not_found")
	ErrRefreshExpired        = errors.New("refresh_token_expired")
	ErrMalformedStoredRecord = errors.New("malformed_stored_record")
)

// TokenService issues access/refresh pairs and rotates refresh records.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier *jwtx.HS256Verifier
	Tokens   store.TokenStore

	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// IssueTokens mints an access token for userID and stores a fresh refresh
// record alongside it.
func (s *TokenService) IssueTokens(ctx context.Context, email, userID string) (domain.TokenIssuingResult, error) {
	now := s.now()
	l := slogx.FromContext(ctx)

	// 1. Sign the access token
	claims := jwtx.NewAccessClaims(
		userID,      // subject
		email,       // email
		s.AccessTTL, // token lifetime, clamped to >= 0
		s.Issuer,    // issuer
		s.Audience,  // audience
		now,         // current time
	)
	access, err := s.Signer.Sign(claims)
	if err != nil {
		l.Error("failed to sign access token", slog.String("user_id", userID), slog.Any("error", err))
		return domain.TokenIssuingResult{}, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}

	// 2. Build the refresh record around it
	refreshID, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenIssuingResult{}, err
	}
	rt := domain.RefreshToken{
		ID:          refreshID,
		AccessToken: access,
		CreatedAt:   now,
		ExpiresAt:   now.Add(max(s.RefreshTTL, 0)),
	}

	// 3. Persist it
	if err := s.Tokens.Store(ctx, rt); err != nil {
		l.Error("failed to store refresh token",
			slog.String("refresh_fp", cryptox.FingerprintToken(refreshID)),
			slog.Any("error", err),
		)
		return domain.TokenIssuingResult{}, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	l.Info("issued tokens",
		slog.String("user_id", userID),
		slog.String("refresh_fp", cryptox.FingerprintToken(refreshID)),
	)

	return domain.TokenIssuingResult{
		AccessToken:          access,
		AccessTokenExpiresAt: claims.ExpiresAt.Time,
		RefreshToken:         rt,
	}, nil
}

// RefreshTokens consumes oldID and issues a new pair for the same identity.
//
// The new pair is stored before the old record is removed. Until that
// removal completes the old id is still accepted, so two concurrent refreshes
// of the same id can both succeed. A failed issue leaves the old record in
// place so the client can retry.
func (s *TokenService) RefreshTokens(ctx context.Context, oldID string) (domain.TokenIssuingResult, error) {
	now := s.now()
	fp := cryptox.FingerprintToken(oldID)
	l := slogx.FromContext(ctx).With(slog.String("refresh_fp", fp))

	// 1. Lookup the stored record
	rt, err := s.Tokens.Get(ctx, oldID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.TokenIssuingResult{}, ErrRefreshNotFound
	case errors.Is(err, store.ErrDeserialize), errors.Is(err, store.ErrCorrupt):
		l.Warn("stored refresh record is unreadable", slog.Any("error", err))
		return domain.TokenIssuingResult{}, fmt.Errorf("%w: %w", ErrMalformedStoredRecord, err)
	case err != nil:
		return domain.TokenIssuingResult{}, fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}

	// 2. Expired records are deleted on first access
	if rt.Expired(now) {
		if err := s.Tokens.Remove(ctx, oldID); err != nil {
			l.Warn("failed to remove expired refresh token", slog.Any("error", err))
		}
		return domain.TokenIssuingResult{}, ErrRefreshExpired
	}

	// 3. Recover the identity; the access token itself may have expired
	claims, err := s.Verifier.Parse(rt.AccessToken)
	if err != nil {
		l.Warn("stored access token failed validation", slog.Any("error", err))
		return domain.TokenIssuingResult{}, fmt.Errorf("%w: %w", ErrMalformedStoredRecord, err)
	}
	if claims.Subject == "" {
		return domain.TokenIssuingResult{}, fmt.Errorf("%w: access token has no subject", ErrMalformedStoredRecord)
	}

	// 4. Issue the new pair
	res, err := s.IssueTokens(ctx, claims.Email, claims.Subject)
	if err != nil {
		return domain.TokenIssuingResult{}, err
	}

	// 5. Consume the old record. The old id stays replayable until it expires if this fails.
	if err := s.Tokens.Remove(ctx, oldID); err != nil {
		l.Warn("failed to remove consumed refresh token", slog.Any("error", err))
	}

	l.Info("refreshed tokens", slog.String("user_id", claims.Subject))
	return res, nil
}

// RevokeRefreshToken removes a refresh record. Unknown ids are not an error.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, id string) error {
	if err := s.Tokens.Remove(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFailed, err)
	}
	slogx.FromContext(ctx).Info("revoked refresh token",
		slog.String("refresh_fp", cryptox.FingerprintToken(id)),
	)
	return nil
}

// ExtractValidatedClaims returns the token's claims keyed by claim name, or
// an empty map if the token does not validate. Lifetime is only checked when
// validateLifetime is set. Use jwtx.HS256Verifier.Verify to learn why a token
// was rejected.
func (s *TokenService) ExtractValidatedClaims(ctx context.Context, token string, validateLifetime bool) map[string]string {
	var (
		claims jwtx.Claims
		err    error
	)
	if validateLifetime {
		claims, err = s.Verifier.Verify(token)
	} else {
		claims, err = s.Verifier.Parse(token)
	}
	if err != nil {
		slogx.FromContext(ctx).Warn("access token rejected", slog.Any("error", err))
		return map[string]string{}
	}
	return claimsMap(claims)
}

func claimsMap(c jwtx.Claims) map[string]string {
	out := map[string]string{}
	put := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	put("sub", c.Subject)
	put("email", c.Email)
	put("iss", c.Issuer)
	put("aud", strings.Join(c.Audience, " "))
	put("jti", c.ID)
	if c.IssuedAt != nil {
		put("iat", strconv.FormatInt(c.IssuedAt.Unix(), 10))
	}
	if c.NotBefore != nil {
		put("nbf", strconv.FormatInt(c.NotBefore.Unix(), 10))
	}
	if c.ExpiresAt != nil {
		put("exp", strconv.FormatInt(c.ExpiresAt.Unix(), 10))
	}
	return out
}
