package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// MaxPepperCandidates bounds the size of a pepper space. Verification walks
// the whole space in the worst case, so anything larger stops being a
// latency trade-off and becomes an outage.
const MaxPepperCandidates = 1 << 20

var (
	ErrEmptyAlphabet     = errors.New("cryptox: pepper alphabet is empty")
	ErrInvalidPepperLen  = errors.New("cryptox: pepper length must be positive")
	ErrDuplicateLetter   = errors.New("cryptox: pepper alphabet has duplicate letters")
	ErrPepperSpaceTooBig = errors.New("cryptox: pepper space too large")
)

// PepperSpace is the set of every pepper the system may have mixed into a
// password: all strings of Length letters drawn from Alphabet. The pepper
// itself is never stored, verification searches this space instead.
type PepperSpace struct {
	alphabet []rune
	length   int
	size     int
}

// NewPepperSpace validates the alphabet and length and returns the space.
func NewPepperSpace(alphabet string, length int) (PepperSpace, error) {
	letters := []rune(alphabet)
	if len(letters) == 0 {
		return PepperSpace{}, ErrEmptyAlphabet
	}
	if length <= 0 {
		return PepperSpace{}, ErrInvalidPepperLen
	}

	seen := make(map[rune]struct{}, len(letters))
	for _, r := range letters {
		if _, ok := seen[r]; ok {
			return PepperSpace{}, fmt.Errorf("%w: %q", ErrDuplicateLetter, r)
		}
		seen[r] = struct{}{}
	}

	size := 1
	for range length {
		if size > MaxPepperCandidates/len(letters) {
			return PepperSpace{}, fmt.Errorf("%w: %d^%d exceeds %d",
				ErrPepperSpaceTooBig, len(letters), length, MaxPepperCandidates)
		}
		size *= len(letters)
	}

	return PepperSpace{alphabet: letters, length: length, size: size}, nil
}

// MustPepperSpace is like NewPepperSpace but panics on error. Intended for
// tests and hard-coded defaults.
func MustPepperSpace(alphabet string, length int) PepperSpace {
	s, err := NewPepperSpace(alphabet, length)
	if err != nil {
		panic(err)
	}
	return s
}

// Size is the number of candidates, |alphabet|^length.
func (s PepperSpace) Size() int { return s.size }

// Length is the fixed number of letters in every pepper.
func (s PepperSpace) Length() int { return s.length }

// Alphabet returns the ordered letters of the space.
func (s PepperSpace) Alphabet() string { return string(s.alphabet) }

// Candidate returns the i-th pepper in lexicographic order. The pepper is
// read as a base-|alphabet| number of Length digits, most significant digit
// first, where digit 0 is the first letter of the alphabet.
func (s PepperSpace) Candidate(i int) string {
	base := len(s.alphabet)
	out := make([]rune, s.length)
	for pos := s.length - 1; pos >= 0; pos-- {
		out[pos] = s.alphabet[i%base]
		i /= base
	}
	return string(out)
}

// Each calls fn with every candidate in lexicographic order until fn returns
// true. It reports whether fn stopped the walk early.
func (s PepperSpace) Each(fn func(pepper string) bool) bool {
	base := len(s.alphabet)
	digits := make([]int, s.length)
	buf := make([]rune, s.length)
	for i := range buf {
		buf[i] = s.alphabet[0]
	}

	for range s.size {
		if fn(string(buf)) {
			return true
		}

		// Increment the odometer from the least significant digit.
		for pos := s.length - 1; pos >= 0; pos-- {
			digits[pos]++
			if digits[pos] < base {
				buf[pos] = s.alphabet[digits[pos]]
				break
			}
			digits[pos] = 0
			buf[pos] = s.alphabet[0]
		}
	}
	return false
}

// Generate draws a random pepper from the space. Every position is chosen
// uniformly over the whole alphabet with crypto/rand.
func (s PepperSpace) Generate() (string, error) {
	var b strings.Builder
	max := big.NewInt(int64(len(s.alphabet)))
	for range s.length {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("cryptox: generate pepper: %w", err)
		}
		b.WriteRune(s.alphabet[n.Int64()])
	}
	return b.String(), nil
}
