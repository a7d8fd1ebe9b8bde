// Package fingerprint derives stable, non-reversible references for personal
// identifiers so they can appear in logs and tokens.
package fingerprint

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

const size = 16

type Fingerprinter struct {
	key []byte
}

// New returns a Fingerprinter keyed with key. blake2b accepts keys of at most
// 64 bytes; longer keys are hashed down first.
func New(key []byte) *Fingerprinter {
	if len(key) > blake2b.Size {
		sum := blake2b.Sum512(key)
		key = sum[:]
	}
	k := make([]byte, len(key))
	copy(k, key)
	return &Fingerprinter{key: k}
}

// Of returns a 32-character hex fingerprint of value.
func (f *Fingerprinter) Of(value string) string {
	h, err := blake2b.New(size, f.key)
	if err != nil {
		// Only reachable with an oversized key, which New prevents.
		panic(err)
	}
	h.Write([]byte(value))
	return hex.EncodeToString(h.Sum(nil))
}
