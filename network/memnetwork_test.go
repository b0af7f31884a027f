// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/lightchain-network/lightchain"
)

type captureEngine struct {
	entities []lightchain.Entity
}

func (c *captureEngine) Process(e lightchain.Entity) error {
	c.entities = append(c.entities, e)
	return nil
}

func TestHubUnicast(t *testing.T) {
	hub := NewHub()
	alice := lightchain.Identifier{0x0A}
	bob := lightchain.Identifier{0x0B}

	received := &captureEngine{}
	_, err := hub.NetworkOf(bob).Register(received, ChannelProposedTransactions)
	require.NoError(t, err)

	conduit, err := hub.NetworkOf(alice).Register(&captureEngine{}, ChannelProposedTransactions)
	require.NoError(t, err)

	tx := lightchain.NewTransaction(lightchain.Identifier{}, alice, bob, uint256.NewInt(1))
	require.NoError(t, conduit.Unicast(tx, bob))
	require.Len(t, received.entities, 1)
	require.Equal(t, tx, received.entities[0])
}

func TestHubUnknownTarget(t *testing.T) {
	hub := NewHub()
	alice := lightchain.Identifier{0x0A}

	conduit, err := hub.NetworkOf(alice).Register(&captureEngine{}, ChannelProposedTransactions)
	require.NoError(t, err)

	tx := lightchain.NewTransaction(lightchain.Identifier{}, alice, alice, uint256.NewInt(1))
	err = conduit.Unicast(tx, lightchain.Identifier{0xBD})
	require.ErrorIs(t, err, ErrUnknownTarget)
}

func TestHubChannelsAreIsolated(t *testing.T) {
	hub := NewHub()
	alice := lightchain.Identifier{0x0A}
	bob := lightchain.Identifier{0x0B}

	blocksInbox := &captureEngine{}
	_, err := hub.NetworkOf(bob).Register(blocksInbox, ChannelProposedBlocks)
	require.NoError(t, err)

	txConduit, err := hub.NetworkOf(alice).Register(&captureEngine{}, ChannelProposedTransactions)
	require.NoError(t, err)

	// Bob listens on the blocks channel only.
	tx := lightchain.NewTransaction(lightchain.Identifier{}, alice, bob, uint256.NewInt(1))
	err = txConduit.Unicast(tx, bob)
	require.ErrorIs(t, err, ErrUnknownTarget)
	require.Empty(t, blocksInbox.entities)
}

func TestHubDoubleRegistration(t *testing.T) {
	hub := NewHub()
	alice := lightchain.Identifier{0x0A}

	net := hub.NetworkOf(alice)
	_, err := net.Register(&captureEngine{}, ChannelProposedTransactions)
	require.NoError(t, err)

	_, err = net.Register(&captureEngine{}, ChannelProposedTransactions)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
}
