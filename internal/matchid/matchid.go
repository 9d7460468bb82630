// Package matchid generates sortable match identifiers: a UUIDv7 encoded as
// a 26-character Crockford base32 string. The timestamp prefix keeps IDs
// ordered by creation time, which makes log output and simulator reports
// easy to correlate.
package matchid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// Crockford's base32 alphabet (no i, l, o, u).
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource supplies the random tail of an ID. Injecting one makes
// generation deterministic in tests; a nil source falls back to crypto/rand.
type RandSource interface {
	Intn(n int) int
}

// Generator produces match IDs from a configurable randomness source.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. randSource may be nil.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a match ID from the default crypto/rand-backed generator.
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a match ID using the generator's RandSource.
func (g *Generator) Generate() string {
	return encodeBase32(g.newUUIDv7())
}

// newUUIDv7 builds a 128-bit UUIDv7: 48-bit millisecond timestamp, then
// random bits with the version (7) and variant (10) fields set.
func (g *Generator) newUUIDv7() [16]byte {
	var uuid [16]byte

	now := time.Now().UnixMilli()
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.Intn(256))
		}
	} else {
		if _, err := rand.Read(uuid[6:]); err != nil {
			panic("matchid: reading random bytes: " + err.Error())
		}
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return uuid
}

// encodeBase32 renders 128 bits as 26 base32 characters, big-endian 5-bit
// groups with the final group zero-padded.
func encodeBase32(data [16]byte) string {
	var out [26]byte
	var acc uint32
	bits, n := 0, 0
	for _, b := range data {
		acc = acc<<8 | uint32(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[n] = alphabet[(acc>>bits)&0x1f]
			n++
		}
	}
	// 128 = 25*5 + 3: three bits remain for the last character.
	out[25] = alphabet[(acc<<(5-bits))&0x1f]
	return string(out[:])
}

// Validate reports whether id is a well-formed match ID.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("match ID must be exactly 26 characters, got %d", len(id))
	}

	// The first character encodes the top of the 48-bit millisecond
	// timestamp, which keeps it in 0-7 for any realistic clock.
	if id[0] > '7' {
		return fmt.Errorf("match ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}
