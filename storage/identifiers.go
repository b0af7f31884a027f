// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

// Package storage holds the engine-local stores. The only store this core
// owns is the seen-entities dedup ledger; block and state persistence live
// outside the validation core.
package storage

import (
	"sync"

	"github.com/luxfi/math/set"

	"github.com/lightchain-network/lightchain"
)

// Identifiers is a monotonically growing set of processed entity
// identifiers. It exists purely for idempotence, never for validity.
type Identifiers interface {
	// Has reports whether id was already recorded.
	Has(id lightchain.Identifier) bool

	// Add records id. Returns false when it was already present.
	Add(id lightchain.Identifier) bool
}

var _ Identifiers = (*MemIdentifiers)(nil)

// MemIdentifiers is an in-memory Identifiers implementation.
type MemIdentifiers struct {
	mu  sync.RWMutex
	ids set.Set[lightchain.Identifier]
}

// NewIdentifiers creates an empty identifier set.
func NewIdentifiers() *MemIdentifiers {
	return &MemIdentifiers{
		ids: set.NewSet[lightchain.Identifier](16),
	}
}

// Has reports whether id was already recorded.
func (m *MemIdentifiers) Has(id lightchain.Identifier) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.ids.Contains(id)
}

// Add records id, returning false when it was already present.
func (m *MemIdentifiers) Add(id lightchain.Identifier) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ids.Contains(id) {
		return false
	}
	m.ids.Add(id)
	return true
}

// Len returns the number of recorded identifiers.
func (m *MemIdentifiers) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.ids.Len()
}
