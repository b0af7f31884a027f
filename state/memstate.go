// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/lightchain-network/lightchain"
)

var (
	_ Snapshot = (*MemSnapshot)(nil)
	_ State    = (*MemState)(nil)
)

// MemSnapshot is an immutable in-memory snapshot. Accounts are deep-copied
// at construction and held in canonical order.
type MemSnapshot struct {
	referenceBlockID     lightchain.Identifier
	referenceBlockHeight uint64
	accounts             []*lightchain.Account
	byID                 map[lightchain.Identifier]*lightchain.Account
}

// NewSnapshot creates a snapshot of the given accounts as of the given
// reference block.
func NewSnapshot(referenceBlockID lightchain.Identifier, height uint64, accounts []*lightchain.Account) *MemSnapshot {
	sorted := make([]*lightchain.Account, 0, len(accounts))
	byID := make(map[lightchain.Identifier]*lightchain.Account, len(accounts))
	for _, account := range accounts {
		cp := account.Copy()
		sorted = append(sorted, cp)
		byID[cp.ID] = cp
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].ID[:], sorted[j].ID[:]) < 0
	})
	return &MemSnapshot{
		referenceBlockID:     referenceBlockID,
		referenceBlockHeight: height,
		accounts:             sorted,
		byID:                 byID,
	}
}

// ReferenceBlockID returns the identifier of the reference block.
func (s *MemSnapshot) ReferenceBlockID() lightchain.Identifier {
	return s.referenceBlockID
}

// ReferenceBlockHeight returns the height of the reference block.
func (s *MemSnapshot) ReferenceBlockHeight() uint64 {
	return s.referenceBlockHeight
}

// Account looks up an account by identifier.
func (s *MemSnapshot) Account(id lightchain.Identifier) (*lightchain.Account, error) {
	account, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", lightchain.ErrUnknownAccount, id)
	}
	return account, nil
}

// All returns every account in canonical order.
func (s *MemSnapshot) All() []*lightchain.Account {
	return s.accounts
}

// MemState is an in-memory State keyed by finalized block identifier. It
// backs tests and local test networks; production nodes persist snapshots
// in the storage layer outside this core.
type MemState struct {
	mu        sync.RWMutex
	snapshots map[lightchain.Identifier]Snapshot
	last      Snapshot
}

// NewMemState creates a state holding only the genesis snapshot.
func NewMemState(genesis Snapshot) *MemState {
	return &MemState{
		snapshots: map[lightchain.Identifier]Snapshot{
			genesis.ReferenceBlockID(): genesis,
		},
		last: genesis,
	}
}

// AtBlockID returns the snapshot taken at the given block.
func (s *MemState) AtBlockID(id lightchain.Identifier) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", lightchain.ErrUnknownBlock, id)
	}
	return snapshot, nil
}

// Last returns the latest committed snapshot.
func (s *MemState) Last() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.last
}

// Commit records the snapshot of a newly finalized block and makes it the
// latest. Committing a snapshot for an already known block is an error,
// since snapshots never change after creation.
func (s *MemState) Commit(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := snapshot.ReferenceBlockID()
	if _, ok := s.snapshots[id]; ok {
		return fmt.Errorf("snapshot already committed for block %s", id)
	}
	s.snapshots[id] = snapshot
	s.last = snapshot
	return nil
}
