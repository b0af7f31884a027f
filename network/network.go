// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

// Package network defines the narrow transport surface the validation
// core depends on. The core never owns a wire format; it registers
// engines on logical channels and unicasts entities to single peers.
package network

import (
	"errors"

	"github.com/lightchain-network/lightchain"
)

// Logical channels the validation core is registered on.
const (
	ChannelProposedBlocks       = "proposed-blocks"
	ChannelProposedTransactions = "proposed-transactions"
)

var (
	// ErrUnknownChannel is returned when registering on or sending to a
	// channel nobody knows.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrUnknownTarget is returned when a unicast target is not reachable.
	ErrUnknownTarget = errors.New("unknown unicast target")

	// ErrAlreadyRegistered is returned when a second engine registers on
	// the same channel of one network instance.
	ErrAlreadyRegistered = errors.New("engine already registered on channel")
)

// Engine consumes entities delivered from the network, one per call.
type Engine interface {
	// Process handles one inbound entity.
	Process(e lightchain.Entity) error
}

// Conduit is a registered engine's handle for sending on its channel.
type Conduit interface {
	// Unicast sends the entity to exactly one peer identified by its
	// account identifier. May fail with a networking error.
	Unicast(e lightchain.Entity, target lightchain.Identifier) error
}

// Network registers engines against logical channels.
type Network interface {
	// Register subscribes the engine to the channel and returns the
	// conduit for sending on it.
	Register(engine Engine, channel string) (Conduit, error)
}
