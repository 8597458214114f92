//go:build e2e

package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/pepperauth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestInvalidCredentials verifies that login with wrong password is rejected.
func TestInvalidCredentials(t *testing.T) {
	client := authsdk.NewSDKClient(setupAuthContainer(t))
	_, _ = registerAndLogin(t, client)

	_, err := client.LoginLocal(t.Context(), testEmail, "wrong-password")
	require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)

	_, err = client.LoginLocal(t.Context(), "nobody@example.com", testPassword)
	require.ErrorIs(t, err, authsdk.ErrUserNotFound)
}

// TestInvalidAccessToken verifies that userinfo endpoint rejects invalid tokens.
func TestInvalidAccessToken(t *testing.T) {
	client := authsdk.NewSDKClient(setupAuthContainer(t))

	_, err := client.UserInfo(t.Context(), "invalid-token-12345")
	require.ErrorIs(t, err, authsdk.ErrInvalidToken)
}

// TestGoogleDisabled verifies the Google endpoints are absent without a client id.
func TestGoogleDisabled(t *testing.T) {
	client := authsdk.NewSDKClient(setupAuthContainer(t))

	_, err := client.LoginGoogle(t.Context(), "some-id-token")
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 404, apiErr.StatusCode)
}
