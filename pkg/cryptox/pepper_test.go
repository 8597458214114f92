package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPepperSpace(t *testing.T) {
	tests := []struct {
		name     string
		alphabet string
		length   int
		wantSize int
		wantErr  error
	}{
		{"hex length 3", "0123456789abcdef", 3, 4096, nil},
		{"single letter", "a", 5, 1, nil},
		{"unicode letters", "αβγ", 2, 9, nil},
		{"at the limit", "ab", 20, 1 << 20, nil},
		{"empty alphabet", "", 2, 0, ErrEmptyAlphabet},
		{"zero length", "ab", 0, 0, ErrInvalidPepperLen},
		{"negative length", "ab", -1, 0, ErrInvalidPepperLen},
		{"duplicate letters", "aba", 2, 0, ErrDuplicateLetter},
		{"over the limit", "ab", 21, 0, ErrPepperSpaceTooBig},
		{"would overflow", "x0123456789", 64, 0, ErrPepperSpaceTooBig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewPepperSpace(tt.alphabet, tt.length)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantSize, s.Size())
			require.Equal(t, tt.length, s.Length())
			require.Equal(t, tt.alphabet, s.Alphabet())
		})
	}
}

func TestPepperSpace_Order(t *testing.T) {
	s := MustPepperSpace("ab", 2)

	var walked []string
	stopped := s.Each(func(p string) bool {
		walked = append(walked, p)
		return false
	})
	require.False(t, stopped)
	require.Equal(t, []string{"aa", "ab", "ba", "bb"}, walked)

	for i, want := range walked {
		require.Equal(t, want, s.Candidate(i))
	}
}

func TestPepperSpace_EachMatchesCandidate(t *testing.T) {
	s := MustPepperSpace("xyz", 3)

	i := 0
	s.Each(func(p string) bool {
		require.Equal(t, s.Candidate(i), p)
		i++
		return false
	})
	require.Equal(t, s.Size(), i)
	require.Equal(t, "xxx", s.Candidate(0))
	require.Equal(t, "zzz", s.Candidate(s.Size()-1))
}

func TestPepperSpace_EachStopsEarly(t *testing.T) {
	s := MustPepperSpace("abc", 2)

	calls := 0
	stopped := s.Each(func(p string) bool {
		calls++
		return p == "ba"
	})
	require.True(t, stopped)
	require.Equal(t, 4, calls)
}

func TestPepperSpace_Generate(t *testing.T) {
	s := MustPepperSpace("ab", 1)

	// Both letters must be reachable, including the last one.
	seen := map[string]bool{}
	for range 200 {
		p, err := s.Generate()
		require.NoError(t, err)
		require.Len(t, p, 1)
		seen[p] = true
	}
	require.True(t, seen["a"])
	require.True(t, seen["b"])

	hex := MustPepperSpace("0123456789abcdef", 4)
	p, err := hex.Generate()
	require.NoError(t, err)
	require.Len(t, []rune(p), 4)
	for _, r := range p {
		require.Contains(t, hex.Alphabet(), string(r))
	}
}

func TestMustPepperSpace_Panics(t *testing.T) {
	require.Panics(t, func() { MustPepperSpace("", 1) })
}
