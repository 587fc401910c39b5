// Package roomcode generates the short codes players type to join a room.
package roomcode

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// Alphabet omits visually ambiguous characters (I, L, O, 0, 1) so codes
// survive being read off a screen or spoken aloud.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	// DefaultLength is the standard room-code length.
	DefaultLength = 4

	// FallbackLength is used after repeated collisions at the default
	// length.
	FallbackLength = 7
)

// RandSource is the randomness needed by a Generator, satisfied by
// *rand.Rand and by test stubs.
type RandSource interface {
	IntN(n int) int
}

// Generator produces room codes with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. A nil RandSource falls back to the
// global math/rand/v2 source.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a code of the given length from Alphabet.
func (g *Generator) Generate(length int) string {
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(Alphabet[g.intN(len(Alphabet))])
	}
	return b.String()
}

func (g *Generator) intN(n int) int {
	if g.randSource != nil {
		return g.randSource.IntN(n)
	}
	return rand.IntN(n)
}

// Validate checks that a code has a plausible length and only uses the
// code alphabet.
func Validate(code string) error {
	if len(code) < DefaultLength || len(code) > FallbackLength {
		return fmt.Errorf("room code must be %d-%d characters, got %d", DefaultLength, FallbackLength, len(code))
	}
	for i := 0; i < len(code); i++ {
		if !strings.ContainsRune(Alphabet, rune(code[i])) {
			return fmt.Errorf("invalid character %c at position %d", code[i], i)
		}
	}
	return nil
}
