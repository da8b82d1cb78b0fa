// Package common holds the small fixed-size value types shared by every
// other package in the module: account addresses, hashes, and the bloom
// filter used in block headers and receipts.
package common

import (
	"encoding/hex"
	"sync"

	"golang.org/x/crypto/sha3"
)

// HashLength is the expected length of a Keccak-256 hash in bytes.
const HashLength = 32

// AddressLength is the expected length of an account address in bytes.
const AddressLength = 20

// Hash represents the 32 byte output of a Keccak-256 hash.
type Hash [HashLength]byte

// BytesToHash sets h to the value of b, left-padding if b is short and
// truncating from the left if b is long.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Bytes returns the byte representation of h.
func (h Hash) Bytes() []byte { return h[:] }

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool { return h == Hash{} }

// String implements fmt.Stringer.
func (h Hash) String() string { return "0x" + hex.EncodeToString(h[:]) }

// Address represents a 20 byte account address.
type Address [AddressLength]byte

// BytesToAddress sets a to the value of b, left-padding if b is short and
// truncating from the left if b is long.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// Bytes returns the byte representation of a.
func (a Address) Bytes() []byte { return a[:] }

// String implements fmt.Stringer.
func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }

// BloomByteLength is the number of bytes in a logs bloom filter.
const BloomByteLength = 256

// Bloom is a 2048-bit logs bloom filter.
type Bloom [BloomByteLength]byte

// Add ORs the given hash-derived positions into the bloom filter.
func (b *Bloom) Add(data []byte) {
	h := keccak256(data)
	for i := 0; i < 6; i += 2 {
		bit := (uint(h[i+1]) + (uint(h[i]) << 8)) & 2047
		b[BloomByteLength-1-bit/8] |= 1 << (bit % 8)
	}
}

// Test reports whether data's positions are all set in the bloom filter.
// A positive result is probabilistic; a negative result is certain.
func (b Bloom) Test(data []byte) bool {
	var want Bloom
	want.Add(data)
	for i := range want {
		if want[i]&b[i] != want[i] {
			return false
		}
	}
	return true
}

// bloomHasherPool avoids a common/crypto import cycle: the bloom filter
// only ever needs Keccak-256 of short byte strings, so it keeps its own
// hasher rather than depending on the crypto package.
var bloomHasherPool = sync.Pool{
	New: func() any { return sha3.NewLegacyKeccak256() },
}

func keccak256(data []byte) []byte {
	d := bloomHasherPool.Get().(interface {
		Write([]byte) (int, error)
		Sum([]byte) []byte
		Reset()
	})
	defer bloomHasherPool.Put(d)
	d.Reset()
	d.Write(data)
	return d.Sum(nil)
}
