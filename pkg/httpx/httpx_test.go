package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/pepperauth/pkg/httpx"
	"github.com/aussiebroadwan/pepperauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mark("first"), mark("second"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"first", "second"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, "iss", []string{"aud"})
	require.NoError(t, err)

	now := time.Now()
	valid, err := signer.Sign(jwtx.NewAccessClaims("user-1", "a@b.com", time.Minute, "iss", []string{"aud"}, now))
	require.NoError(t, err)
	expired, err := signer.Sign(jwtx.NewAccessClaims("user-1", "a@b.com", time.Minute, "iss", []string{"aud"}, now.Add(-time.Hour)))
	require.NoError(t, err)

	h := httpx.AuthnMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"sub":   httpx.UserIDFromContext(r.Context()),
			"email": claims.Email,
		})
	}))

	call := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token", func(t *testing.T) {
		rec := call("Bearer " + valid)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.Equal(t, "user-1", body["sub"])
		require.Equal(t, "a@b.com", body["email"])
	})

	t.Run("missing token", func(t *testing.T) {
		rec := call("")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "missing bearer token")
	})

	t.Run("expired token", func(t *testing.T) {
		rec := call("Bearer " + expired)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "token expired")
	})

	t.Run("tampered token", func(t *testing.T) {
		rec := call("Bearer " + valid + "x")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "token verification failed")
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer abc")
	tok, ok := httpx.BearerToken(req)
	require.True(t, ok)
	require.Equal(t, "abc", tok)

	req.Header.Set("Authorization", "Basic abc")
	_, ok = httpx.BearerToken(req)
	require.False(t, ok)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Email string `json:"email"`
	}
	decode := func(s string) (body, error) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(s))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
		return b, err
	}

	b, err := decode(`{"email":"a@b.com"}`)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", b.Email)

	_, err = decode(`{"email":"a@b.com","admin":true}`)
	require.Error(t, err)

	_, err = decode(`{"email":"a@b.com"}{}`)
	require.Error(t, err)

	_, err = decode(``)
	require.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"n":1}`, rec.Body.String())
}
