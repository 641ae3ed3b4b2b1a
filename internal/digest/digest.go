// Package digest wraps the SHA-2 family behind a name-based lookup and
// streams arbitrary byte sources into lowercase hex digests.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"

	"github.com/shastore/shastore/internal/common"
)

// chunkSize bounds memory while digesting large inputs.
const chunkSize = 4 * 1024 * 1024

// hexLengths maps an algorithm name to the length of its hex digest.
var hexLengths = map[string]int{
	"sha224": sha256.Size224 * 2,
	"sha256": sha256.Size * 2,
	"sha384": sha512.Size384 * 2,
	"sha512": sha512.Size * 2,
}

// newHash returns a fresh hash.Hash for the named algorithm, or
// common.ErrUnsupportedAlgorithm for anything outside the SHA-2 set.
func newHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case "sha224":
		return sha256.New224(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha384":
		return sha512.New384(), nil
	case "sha512":
		return sha512.New(), nil
	default:
		return nil, common.ErrUnsupportedAlgorithm
	}
}

// Supported reports whether algorithm names a digest this package can compute.
func Supported(algorithm string) bool {
	_, ok := hexLengths[algorithm]
	return ok
}

// HexLength returns the hex digest length for the named algorithm
// (56/64/96/128) and false if the algorithm is not supported.
func HexLength(algorithm string) (int, bool) {
	n, ok := hexLengths[algorithm]
	return n, ok
}

// Compute streams r through the named algorithm and returns the lowercase
// hex digest. The reader is consumed to EOF.
func Compute(algorithm string, r io.Reader) (string, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return "", err
	}

	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// ComputeSeeker digests rs like Compute and then rewinds it to the start,
// so the same upload can be read again by a later consumer.
func ComputeSeeker(algorithm string, rs io.ReadSeeker) (string, error) {
	sum, err := Compute(algorithm, rs)
	if err != nil {
		return "", err
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewinding input: %w", err)
	}
	return sum, nil
}
