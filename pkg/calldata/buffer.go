// Package calldata implements the word reader and heuristic probes the
// inferencer builds its search on: reading 32-byte big-endian words from
// an arbitrary offset, and judging whether a word plausibly looks like
// an offset or a length prefix.
package calldata

import "math/big"

// safeBound is 2^53 - 1, the largest integer downstream arithmetic can
// hold exactly without losing precision.
var safeBound = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 53), big.NewInt(1))

// Buffer is a read-only view over a calldata argument tuple, grouping
// the word reader and probes as methods; it carries no semantic weight
// over a bare []byte.
type Buffer struct {
	bytes []byte
}

func NewBuffer(b []byte) Buffer {
	return Buffer{bytes: b}
}

func (b Buffer) Len() int { return len(b.bytes) }

func (b Buffer) Bytes() []byte { return b.bytes }

// Slice returns the half-open byte range [from, to), clamped to the
// buffer's bounds. Callers are expected to only request in-range
// slices; this never panics on an out-of-range request.
func (b Buffer) Slice(from, to int) []byte {
	if from < 0 {
		from = 0
	}
	if to > len(b.bytes) {
		to = len(b.bytes)
	}
	if from >= to {
		return nil
	}
	return b.bytes[from:to]
}

// ReadWord returns the unsigned big-endian integer at buf[pos:pos+32].
// The second return value is false if the word does not fully fit in
// the buffer.
func (b Buffer) ReadWord(pos int) (*big.Int, bool) {
	if pos < 0 || pos+32 > len(b.bytes) {
		return nil, false
	}
	return new(big.Int).SetBytes(b.bytes[pos : pos+32]), true
}

// IsSafe reports whether a word's value is strictly less than 2^53-1,
// the point past which downstream arithmetic stops being exact.
func IsSafe(word *big.Int) bool {
	return word.Cmp(safeBound) < 0
}
