// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/lightchain-network/lightchain"
)

var _ State = (*CachedState)(nil)

// CachedState caches AtBlockID lookups in front of a slower State.
// Snapshots are immutable and reference blocks repeat heavily in an
// inbound transaction stream, so entries never need invalidation.
type CachedState struct {
	inner State
	cache *lru.Cache
}

// NewCachedState wraps inner with an LRU cache of the given size.
func NewCachedState(inner State, size int) (*CachedState, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedState{
		inner: inner,
		cache: cache,
	}, nil
}

// AtBlockID returns the snapshot at the given block, from cache when
// possible. Lookup misses are not cached.
func (s *CachedState) AtBlockID(id lightchain.Identifier) (Snapshot, error) {
	if cached, ok := s.cache.Get(id); ok {
		return cached.(Snapshot), nil
	}

	snapshot, err := s.inner.AtBlockID(id)
	if err != nil {
		return nil, err
	}
	s.cache.Add(id, snapshot)
	return snapshot, nil
}

// Last returns the latest snapshot from the underlying state.
func (s *CachedState) Last() Snapshot {
	return s.inner.Last()
}
