// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import (
	"github.com/luxfi/geth/rlp"
)

// CodecImpl serializes and deserializes ledger entities.
type CodecImpl struct{}

// Codec is the default codec instance.
var Codec = &CodecImpl{}

// Marshal serializes the value.
func (c *CodecImpl) Marshal(v interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(v)
}

// Unmarshal deserializes the bytes.
func (c *CodecImpl) Unmarshal(b []byte, v interface{}) error {
	return rlp.DecodeBytes(b, v)
}
