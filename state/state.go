// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state exposes read-only views of the ledger as of finalized
// blocks. A Snapshot is immutable once created, which is what makes
// committee assignment reproducible across nodes.
package state

import (
	"github.com/lightchain-network/lightchain"
)

// Snapshot is a read-only view of all accounts as of one reference block.
type Snapshot interface {
	// ReferenceBlockID returns the identifier of the block this snapshot
	// was taken at.
	ReferenceBlockID() lightchain.Identifier

	// ReferenceBlockHeight returns the height of the reference block.
	ReferenceBlockHeight() uint64

	// Account looks up an account by identifier. Returns
	// lightchain.ErrUnknownAccount when absent.
	Account(id lightchain.Identifier) (*lightchain.Account, error)

	// All returns every account in the snapshot in canonical order
	// (ascending identifier bytes). The returned slice must not be
	// mutated.
	All() []*lightchain.Account
}

// State provides access to snapshots of the ledger.
type State interface {
	// AtBlockID returns the snapshot taken at the given finalized block.
	// Returns lightchain.ErrUnknownBlock for unknown identifiers.
	AtBlockID(id lightchain.Identifier) (Snapshot, error)

	// Last returns the snapshot of the latest finalized block.
	Last() Snapshot
}
