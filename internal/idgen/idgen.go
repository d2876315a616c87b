package idgen

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// DefaultCodeLength is the number of characters in a short code.
const DefaultCodeLength = 7

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// largest multiple of len(alphabet) that fits in a byte; bytes above it are
// rejected so every character is equally likely.
const maxByte = 256 - 256%len(alphabet)

// Generator produces link identifiers. Results are random, not unique:
// callers must not assume two calls never collide.
type Generator interface {
	NewID() (string, error)
	NewShortCode() (string, error)
}

// Random draws identifiers from a cryptographically secure source.
type Random struct {
	CodeLength int
	// Source defaults to crypto/rand.Reader.
	Source io.Reader
}

var _ Generator = Random{}

func NewRandom() Random {
	return Random{CodeLength: DefaultCodeLength}
}

// NewID returns a random (version 4) UUID string.
func (g Random) NewID() (string, error) {
	id, err := uuid.NewRandomFromReader(g.source())
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}

// NewShortCode returns CodeLength base62 characters.
func (g Random) NewShortCode() (string, error) {
	n := g.CodeLength
	if n <= 0 {
		n = DefaultCodeLength
	}

	code := make([]byte, 0, n)
	buf := make([]byte, n*2)
	for len(code) < n {
		if _, err := io.ReadFull(g.source(), buf); err != nil {
			return "", fmt.Errorf("generate short code: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			code = append(code, alphabet[int(b)%len(alphabet)])
			if len(code) == n {
				break
			}
		}
	}
	return string(code), nil
}

func (g Random) source() io.Reader {
	if g.Source != nil {
		return g.Source
	}
	return rand.Reader
}
