// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package network

import (
	"context"
	"fmt"
	"sync"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"
	"github.com/luxfi/p2p"

	"github.com/lightchain-network/lightchain"
)

// NodeResolver maps an account identifier to the peer-to-peer node id of
// the node holding that account. Peer discovery lives outside this core.
type NodeResolver func(lightchain.Identifier) (ids.NodeID, error)

// envelope is the wire frame for entities sent between nodes.
type envelope struct {
	Channel string
	Kind    uint8
	Payload []byte
}

var _ Network = (*P2PNetwork)(nil)

// P2PNetwork sends entities through a p2p client. Inbound frames are fed
// in by the surrounding node via HandleInbound; the transport's request
// plumbing is a collaborator concern.
type P2PNetwork struct {
	log     log.Logger
	client  *p2p.Client
	resolve NodeResolver

	mu      sync.RWMutex
	engines map[string]Engine
}

// NewP2PNetwork creates a network sending through client and resolving
// unicast targets with resolve.
func NewP2PNetwork(logger log.Logger, client *p2p.Client, resolve NodeResolver) *P2PNetwork {
	return &P2PNetwork{
		log:     logger,
		client:  client,
		resolve: resolve,
		engines: make(map[string]Engine),
	}
}

// Register subscribes the engine to the channel.
func (n *P2PNetwork) Register(engine Engine, channel string) (Conduit, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.engines[channel]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRegistered, channel)
	}
	n.engines[channel] = engine
	return &p2pConduit{
		network: n,
		channel: channel,
	}, nil
}

// HandleInbound decodes one wire frame and hands the entity to the engine
// registered on the frame's channel.
func (n *P2PNetwork) HandleInbound(frame []byte) error {
	var env envelope
	if err := lightchain.Codec.Unmarshal(frame, &env); err != nil {
		return fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	n.mu.RLock()
	engine, ok := n.engines[env.Channel]
	n.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownChannel, env.Channel)
	}

	entity, err := decodeEntity(lightchain.EntityType(env.Kind), env.Payload)
	if err != nil {
		return err
	}
	return engine.Process(entity)
}

func decodeEntity(kind lightchain.EntityType, payload []byte) (lightchain.Entity, error) {
	switch kind {
	case lightchain.EntityTypeTransaction:
		return lightchain.ParseTransaction(payload)
	case lightchain.EntityTypeBlock:
		return lightchain.ParseBlock(payload)
	case lightchain.EntityTypeCertificate:
		return lightchain.ParseCertificate(payload)
	default:
		return nil, fmt.Errorf("%w: %s", lightchain.ErrUnexpectedEntityType, kind)
	}
}

type p2pConduit struct {
	network *P2PNetwork
	channel string
}

// Unicast frames the entity and sends it to the node holding the target
// account. Delivery is fire-and-forget: a response, if any, is only
// logged.
func (c *p2pConduit) Unicast(e lightchain.Entity, target lightchain.Identifier) error {
	nodeID, err := c.network.resolve(target)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	frame, err := lightchain.Codec.Marshal(envelope{
		Channel: c.channel,
		Kind:    uint8(e.Type()),
		Payload: e.Bytes(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	onResponse := func(_ context.Context, nodeID ids.NodeID, _ []byte, err error) {
		if err != nil {
			c.network.log.Debug(
				"unicast response failed",
				log.Stringer("nodeID", nodeID),
				log.Err(err),
			)
		}
	}
	return c.network.client.Request(context.Background(), set.Of(nodeID), frame, onResponse)
}
