// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lightchain-network/lightchain"
)

func TestIdentifiersAddHas(t *testing.T) {
	ids := NewIdentifiers()
	id := lightchain.Identifier{0x01}

	require.False(t, ids.Has(id))
	require.True(t, ids.Add(id))
	require.True(t, ids.Has(id))
	require.False(t, ids.Add(id))
	require.Equal(t, 1, ids.Len())
}

func TestIdentifiersConcurrentAdd(t *testing.T) {
	ids := NewIdentifiers()
	id := lightchain.Identifier{0x01}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ids.Add(id) {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Exactly one concurrent Add wins.
	require.Equal(t, 1, added)
	require.Equal(t, 1, ids.Len())
}
