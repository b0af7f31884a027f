// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import (
	"github.com/holiman/uint256"
)

// Account is a stake-holding account as recorded in a ledger snapshot.
// Accounts are mutated only through block finalization; a snapshot exposes
// them read-only.
type Account struct {
	// ID is the account identifier.
	ID Identifier

	// PublicKey is the compressed BLS public key of the account holder.
	PublicKey []byte

	// Stake is the economic weight of the account. It drives committee
	// eligibility and sampling probability.
	Stake uint64

	// Balance is the spendable balance of the account.
	Balance *uint256.Int

	// LastBlockID identifies the block at which this account was last
	// updated.
	LastBlockID Identifier
}

// NewAccount creates an account with the given identity and funds.
func NewAccount(id Identifier, publicKey []byte, stake uint64, balance *uint256.Int, lastBlockID Identifier) *Account {
	return &Account{
		ID:          id,
		PublicKey:   publicKey,
		Stake:       stake,
		Balance:     balance,
		LastBlockID: lastBlockID,
	}
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	cp := &Account{
		ID:          a.ID,
		PublicKey:   make([]byte, len(a.PublicKey)),
		Stake:       a.Stake,
		LastBlockID: a.LastBlockID,
	}
	copy(cp.PublicKey, a.PublicKey)
	if a.Balance != nil {
		cp.Balance = new(uint256.Int).Set(a.Balance)
	}
	return cp
}
