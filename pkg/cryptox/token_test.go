package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
		{"custom size", 24, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)

			raw, err := base64.RawURLEncoding.DecodeString(token)
			require.NoError(t, err)
			require.Len(t, raw, tt.size)
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
	require.Panics(t, func() { MustGenerateToken(0) })
}

func TestGenerateToken_NoRepeats(t *testing.T) {
	const count = 100
	seen := make(map[string]struct{}, count)

	for range count {
		token := MustGenerateToken(TokenSize256)
		require.NotContains(t, seen, token, "duplicate token generated")
		seen[token] = struct{}{}
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("refresh-1")
	fp1b := FingerprintToken("refresh-1")
	fp2 := FingerprintToken("refresh-2")

	require.Equal(t, fp1a, fp1b)
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43)
	require.NotContains(t, fp1a, "refresh-1")
}
