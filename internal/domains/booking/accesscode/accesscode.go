// Package accesscode issues the short codes guests type at the room keypad.
package accesscode

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet leaves out 0, O, 1 and I so a code read aloud or off a screen is not misentered.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const Length = 6

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// Generate returns a new code of Length characters drawn uniformly from Alphabet.
func Generate() (string, error) {
	var sb strings.Builder

	sb.Grow(Length)

	for range Length {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to generate access code: %w", err)
		}

		sb.WriteByte(Alphabet[n.Int64()])
	}

	return sb.String(), nil
}

// Normalize upper-cases and trims a code typed by a person.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code has the issued format.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}

	for i := range len(code) {
		if strings.IndexByte(Alphabet, code[i]) < 0 {
			return false
		}
	}

	return true
}
