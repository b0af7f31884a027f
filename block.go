// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import (
	"fmt"
)

var _ Entity = (*Block)(nil)

// Block is a proposer-signed batch of validated transactions extending the
// chain at PreviousBlockID.
type Block struct {
	// PreviousBlockID identifies the parent block; the snapshot at that
	// block is the reference state for validating this block.
	PreviousBlockID Identifier

	// Proposer is the account identifier of the proposing node.
	Proposer Identifier

	// Height is the chain height of this block, exactly one above the
	// parent's height.
	Height uint64

	// Transactions are the validated transactions included in the block.
	Transactions []*ValidatedTransaction

	// Signature is the proposer's BLS signature over SignableBytes.
	Signature []byte
}

// NewBlock creates an unsigned block.
func NewBlock(previousBlockID, proposer Identifier, height uint64, txs []*ValidatedTransaction) *Block {
	return &Block{
		PreviousBlockID: previousBlockID,
		Proposer:        proposer,
		Height:          height,
		Transactions:    txs,
	}
}

// Type returns EntityTypeBlock.
func (b *Block) Type() EntityType {
	return EntityTypeBlock
}

// SignableBytes returns the canonical serialization of the block content
// excluding the proposer signature. This is what the proposer signs.
func (b *Block) SignableBytes() []byte {
	enc, _ := Codec.Marshal(struct {
		PreviousBlockID Identifier
		Proposer        Identifier
		Height          uint64
		Transactions    []*ValidatedTransaction
	}{
		PreviousBlockID: b.PreviousBlockID,
		Proposer:        b.Proposer,
		Height:          b.Height,
		Transactions:    b.Transactions,
	})
	return enc
}

// Bytes returns the canonical serialization of the full block.
func (b *Block) Bytes() []byte {
	enc, _ := Codec.Marshal(b)
	return enc
}

// ID returns the content hash of the block.
func (b *Block) ID() Identifier {
	return Identifier(ComputeHash256Array(b.Bytes()))
}

// ParseBlock parses a block from its canonical serialization.
func ParseBlock(enc []byte) (*Block, error) {
	b := &Block{}
	if err := Codec.Unmarshal(enc, b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal block: %w", err)
	}
	return b, nil
}
