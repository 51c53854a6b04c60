// Package gameid generates sortable identifiers for simulated games.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random part of an ID. *rand.Rand from
// math/rand/v2 satisfies it, so a game's own RNG keeps IDs reproducible.
type RandSource interface {
	IntN(n int) int
}

// Generator builds UUIDv7 identifiers encoded as 26 base32 characters
type Generator struct {
	randSource RandSource
	clock      quartz.Clock
}

// NewGenerator creates a generator. A nil randSource falls back to
// crypto/rand; a nil clock uses the real clock.
func NewGenerator(randSource RandSource, clock quartz.Clock) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{randSource: randSource, clock: clock}
}

// Generate creates a new game ID from crypto/rand and the wall clock
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new game ID
func (g *Generator) Generate() string {
	return encodeBase32(g.uuidV7())
}

func (g *Generator) uuidV7() [16]byte {
	var uuid [16]byte

	// 48-bit millisecond timestamp, then version, variant and random bits
	now := g.clock.Now().UnixMilli()
	for i := range 6 {
		uuid[i] = byte(now >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return uuid
}

// encodeBase32 encodes the 128 bits as 26 characters, 5 bits at a time
func encodeBase32(data [16]byte) string {
	result := make([]byte, 26)

	for i := range result {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= data[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}

		result[i] = alphabet[value]
	}

	return string(result)
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("game ID must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
