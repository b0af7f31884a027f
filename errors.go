// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import "errors"

var (
	// ErrUnexpectedEntityType is returned when an entity is neither a
	// transaction nor a block.
	ErrUnexpectedEntityType = errors.New("unexpected entity type")

	// ErrUnknownBlock is returned when no snapshot exists for a block id.
	ErrUnknownBlock = errors.New("unknown block")

	// ErrUnknownAccount is returned when an account lookup misses.
	ErrUnknownAccount = errors.New("unknown account")

	// ErrInvalidSignature is returned when a signature fails verification.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInsufficientAccounts is returned when a committee cannot be drawn
	// because the snapshot holds fewer eligible accounts than the threshold.
	ErrInsufficientAccounts = errors.New("insufficient eligible accounts")
)
