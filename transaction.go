// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import (
	"fmt"

	"github.com/holiman/uint256"
)

var _ Entity = (*Transaction)(nil)

// Transaction is a transfer of funds between two accounts, valid relative
// to the snapshot at its reference block.
type Transaction struct {
	// ReferenceBlockID identifies the snapshot this transaction was made
	// against.
	ReferenceBlockID Identifier

	// Sender is the account paying the amount.
	Sender Identifier

	// Receiver is the account receiving the amount.
	Receiver Identifier

	// Amount is the number of tokens transferred.
	Amount *uint256.Int

	// Signature is the sender's BLS signature over SignableBytes.
	Signature []byte
}

// NewTransaction creates an unsigned transaction.
func NewTransaction(referenceBlockID, sender, receiver Identifier, amount *uint256.Int) *Transaction {
	return &Transaction{
		ReferenceBlockID: referenceBlockID,
		Sender:           sender,
		Receiver:         receiver,
		Amount:           amount,
	}
}

// Type returns EntityTypeTransaction.
func (tx *Transaction) Type() EntityType {
	return EntityTypeTransaction
}

// SignableBytes returns the canonical serialization of the transaction
// content excluding the signature. This is what the sender signs.
func (tx *Transaction) SignableBytes() []byte {
	b, _ := Codec.Marshal(struct {
		ReferenceBlockID Identifier
		Sender           Identifier
		Receiver         Identifier
		Amount           *uint256.Int
	}{
		ReferenceBlockID: tx.ReferenceBlockID,
		Sender:           tx.Sender,
		Receiver:         tx.Receiver,
		Amount:           tx.Amount,
	})
	return b
}

// Bytes returns the canonical serialization of the full transaction.
func (tx *Transaction) Bytes() []byte {
	b, _ := Codec.Marshal(tx)
	return b
}

// ID returns the content hash of the transaction.
func (tx *Transaction) ID() Identifier {
	return Identifier(ComputeHash256Array(tx.Bytes()))
}

// ParseTransaction parses a transaction from its canonical serialization.
func ParseTransaction(b []byte) (*Transaction, error) {
	tx := &Transaction{}
	if err := Codec.Unmarshal(b, tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}
	return tx, nil
}

var _ Entity = (*ValidatedTransaction)(nil)

// ValidatedTransaction is a transaction that has accumulated certificates
// from its validation committee. It becomes eligible for inclusion in a
// block once it carries at least the signature-threshold distinct valid
// certificates.
type ValidatedTransaction struct {
	Transaction

	// Certificates are the committee members' signatures over the
	// transaction identifier.
	Certificates []*Certificate
}

// Type returns EntityTypeValidatedTransaction.
func (vtx *ValidatedTransaction) Type() EntityType {
	return EntityTypeValidatedTransaction
}

// Bytes returns the canonical serialization of the validated transaction.
func (vtx *ValidatedTransaction) Bytes() []byte {
	b, _ := Codec.Marshal(vtx)
	return b
}

// ID returns the content hash of the underlying transaction, so a
// transaction keeps its identity as certificates accumulate.
func (vtx *ValidatedTransaction) ID() Identifier {
	return vtx.Transaction.ID()
}
