/*
Package authsdk is the Go client for the pepperauth service. The request and
response types in this package are also the server's wire format.

# SDKClient vs Session

SDKClient wraps every endpoint one call at a time:

	client := authsdk.NewSDKClient("https://auth.example.com")

	_, err := client.RegisterLocal(ctx, authsdk.RegisterLocalRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
	})

	tokens, err := client.LoginLocal(ctx, "alice@example.com", "correct horse battery staple")
	tokens, err = client.Refresh(ctx, tokens.RefreshToken)
	err = client.Logout(ctx, tokens.RefreshToken)

Session keeps a token pair and refreshes the access token before it expires:

	session, err := client.AuthenticateWithPassword(ctx, email, password)
	info, err := session.GetUserInfo(ctx)
	err = session.Logout(ctx)

Google accounts use an ID token obtained by the caller:

	_, err := client.RegisterGoogle(ctx, idToken)
	session, err := client.AuthenticateWithGoogle(ctx, idToken)

# Refresh tokens

Refresh tokens are single use. Every Refresh returns a new refresh token and
the old one is rejected afterwards, so store the new value each time.

# Errors

Failed requests return *APIError. Compare against the predefined errors with
errors.Is:

	_, err := client.LoginLocal(ctx, email, "wrong")
	if errors.Is(err, authsdk.ErrInvalidCredentials) {
		// ask again
	}
*/
package authsdk
