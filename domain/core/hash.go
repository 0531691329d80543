package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, for display
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// InputHasher builds a fingerprint over named nullable numeric columns.
// Missing cells hash differently from any number, including NaN.
type InputHasher struct {
	buf []byte
}

// NewInputHasher creates an empty hasher
func NewInputHasher() *InputHasher {
	return &InputHasher{}
}

// WriteName appends a length-prefixed string
func (h *InputHasher) WriteName(name string) {
	h.buf = binary.BigEndian.AppendUint32(h.buf, uint32(len(name)))
	h.buf = append(h.buf, name...)
}

// WriteCell appends one cell
func (h *InputHasher) WriteCell(v float64, present bool) {
	if !present {
		h.buf = append(h.buf, 0)
		return
	}
	h.buf = append(h.buf, 1)
	h.buf = binary.BigEndian.AppendUint64(h.buf, math.Float64bits(v))
}

// Sum returns the fingerprint of everything written so far
func (h *InputHasher) Sum() Hash {
	return NewHash(h.buf)
}
