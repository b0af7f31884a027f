// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"fmt"
	"sync"

	"github.com/lightchain-network/lightchain"
)

// Hub connects the in-memory networks of a local test net. Delivery is
// synchronous: Unicast runs the target engine's Process on the caller's
// goroutine.
type Hub struct {
	mu sync.RWMutex

	// engines[channel][node] is the engine node registered on channel.
	engines map[string]map[lightchain.Identifier]Engine
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		engines: make(map[string]map[lightchain.Identifier]Engine),
	}
}

// NetworkOf returns the network of the node with the given identifier.
func (h *Hub) NetworkOf(node lightchain.Identifier) *MemNetwork {
	return &MemNetwork{
		hub:  h,
		node: node,
	}
}

func (h *Hub) register(node lightchain.Identifier, channel string, engine Engine) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	byNode, ok := h.engines[channel]
	if !ok {
		byNode = make(map[lightchain.Identifier]Engine)
		h.engines[channel] = byNode
	}
	if _, ok := byNode[node]; ok {
		return fmt.Errorf("%w: node %s channel %s", ErrAlreadyRegistered, node, channel)
	}
	byNode[node] = engine
	return nil
}

func (h *Hub) unicast(channel string, e lightchain.Entity, target lightchain.Identifier) error {
	h.mu.RLock()
	engine, ok := h.engines[channel][target]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: node %s channel %s", ErrUnknownTarget, target, channel)
	}
	return engine.Process(e)
}

var _ Network = (*MemNetwork)(nil)

// MemNetwork is one node's view of a Hub.
type MemNetwork struct {
	hub  *Hub
	node lightchain.Identifier
}

// Register subscribes the engine to the channel on the hub.
func (n *MemNetwork) Register(engine Engine, channel string) (Conduit, error) {
	if err := n.hub.register(n.node, channel, engine); err != nil {
		return nil, err
	}
	return &memConduit{
		hub:     n.hub,
		channel: channel,
	}, nil
}

type memConduit struct {
	hub     *Hub
	channel string
}

func (c *memConduit) Unicast(e lightchain.Entity, target lightchain.Identifier) error {
	return c.hub.unicast(c.channel, e, target)
}
