// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import (
	"github.com/luxfi/ids"
)

// Identifier is the 32-byte content hash used as the primary key for
// accounts, transactions, blocks, and entities generally.
type Identifier = ids.ID

// EntityType tags the concrete type of an entity on the wire.
type EntityType uint8

const (
	EntityTypeUnknown EntityType = iota
	EntityTypeTransaction
	EntityTypeBlock
	EntityTypeValidatedTransaction
	EntityTypeCertificate
)

// String returns the human-readable name of the entity type.
func (t EntityType) String() string {
	switch t {
	case EntityTypeTransaction:
		return "transaction"
	case EntityTypeBlock:
		return "block"
	case EntityTypeValidatedTransaction:
		return "validated-transaction"
	case EntityTypeCertificate:
		return "certificate"
	default:
		return "unknown"
	}
}

// Entity is anything addressable by a content-derived identifier.
type Entity interface {
	// Type returns the concrete entity type.
	Type() EntityType

	// ID returns the content hash of the entity. Two entities are the same
	// entity exactly when their IDs are equal.
	ID() Identifier

	// Bytes returns the canonical serialization of the entity.
	Bytes() []byte
}
