// Package crypto provides the Keccak-256 hashing primitives the processor
// uses to compute block hashes and derived fingerprints.
package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/chainproc/chainproc/common"
)

// Keccak256 computes the Keccak-256 hash of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash computes the Keccak-256 hash and wraps it in a common.Hash.
func Keccak256Hash(data ...[]byte) common.Hash {
	return common.BytesToHash(Keccak256(data...))
}
