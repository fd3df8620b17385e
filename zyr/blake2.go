package zyr

import (
	"encoding/binary"

	"github.com/glycerine/blake2b"
)

// Blake2bUint64 returns an 8 byte BLAKE2b cryptographic
// hash of the raw.
//
// reference: https://blake2.net/
// reference: https://tools.ietf.org/html/rfc7693
func Blake2bUint64(raw []byte) uint64 {
	cfg := &blake2b.Config{Size: 8}
	h, err := blake2b.New(cfg)
	panicOn(err)
	h.Write(raw)
	by := h.Sum(nil)
	return binary.LittleEndian.Uint64(by[:8])
}

// Fingerprint hashes the canonical one-line form of expr, so two
// trees have the same fingerprint exactly when they print alike,
// whatever spacing or comments they were typed with.
func Fingerprint(expr Sexp) uint64 {
	return Blake2bUint64([]byte(SexpString(expr)))
}
