// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import (
	"crypto/sha256"
	"errors"
	"math"
)

const (
	// PublicKeyLen is the length of a compressed BLS public key.
	PublicKeyLen = 48

	// SignatureLen is the length of a BLS signature.
	SignatureLen = 96
)

// AddUint64 adds two uint64 values and errors on overflow.
func AddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.New("addition would overflow")
	}
	return a + b, nil
}

// ComputeHash256 computes the SHA256 hash of data.
func ComputeHash256(data []byte) []byte {
	hash := sha256.Sum256(data)
	return hash[:]
}

// ComputeHash256Array computes the SHA256 hash of data as a fixed array.
func ComputeHash256Array(data []byte) [32]byte {
	return sha256.Sum256(data)
}
