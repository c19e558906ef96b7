// Package random provides cryptographic entropy helpers.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// Reader is the entropy source. Tests may replace it.
var Reader io.Reader = crand.Reader

// NewEntropy returns 64 bits of entropy read from Reader.
func NewEntropy() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(Reader, b[:]); err != nil {
		return 0, fmt.Errorf("read entropy: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// NewToken returns a 128-bit hex token read from Reader.
func NewToken() (string, error) {
	var b [16]byte
	if _, err := io.ReadFull(Reader, b[:]); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return fmt.Sprintf("%x", b[:]), nil
}
