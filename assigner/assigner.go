// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

// Package assigner draws the validation committee of an entity from a
// ledger snapshot. Assignment is a pure function of the entity identifier,
// the snapshot content, and the threshold, so every node holding the same
// snapshot derives the same committee without coordination.
package assigner

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/luxfi/math/set"

	"github.com/lightchain-network/lightchain"
	"github.com/lightchain-network/lightchain/state"
)

// Assignment is the committee of one (entity, snapshot) pair.
type Assignment struct {
	members set.Set[lightchain.Identifier]
	sorted  []lightchain.Identifier
}

// Has reports whether id is an assigned committee member.
func (a *Assignment) Has(id lightchain.Identifier) bool {
	return a.members.Contains(id)
}

// Members returns the committee in canonical order. The returned slice
// must not be mutated.
func (a *Assignment) Members() []lightchain.Identifier {
	return a.sorted
}

// Size returns the number of committee members.
func (a *Assignment) Size() int {
	return len(a.sorted)
}

// Assigner samples committees with a fixed minimum-stake eligibility
// filter.
type Assigner struct {
	minimumStake uint64
}

// New creates an assigner that only samples accounts with at least
// minimumStake.
func New(minimumStake uint64) *Assigner {
	return &Assigner{
		minimumStake: minimumStake,
	}
}

// Assign returns the committee of threshold distinct accounts obligated to
// validate the entity, drawn from the snapshot.
//
// Sampling is stake-proportional without replacement: the seed is the
// SHA256 of the entity identifier, each draw hashes seed||drawIndex into a
// uint64 reduced modulo the remaining eligible stake, and the drawn
// account is located by walking the eligible accounts in canonical order
// accumulating stake. The walk order is the snapshot's canonical account
// order, so the result is independent of process, machine, and call order.
func (a *Assigner) Assign(
	entityID lightchain.Identifier,
	snapshot state.Snapshot,
	threshold int,
) (*Assignment, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot", lightchain.ErrInsufficientAccounts)
	}
	if threshold < 1 {
		return nil, fmt.Errorf("%w: threshold %d is not positive", lightchain.ErrInsufficientAccounts, threshold)
	}

	eligible := make([]*lightchain.Account, 0, len(snapshot.All()))
	var remainingStake uint64
	for _, account := range snapshot.All() {
		// Zero stake can never win a stake-proportional draw.
		if account.Stake == 0 || account.Stake < a.minimumStake {
			continue
		}
		newStake, err := lightchain.AddUint64(remainingStake, account.Stake)
		if err != nil {
			return nil, fmt.Errorf("total eligible stake overflow: %w", err)
		}
		remainingStake = newStake
		eligible = append(eligible, account)
	}

	if threshold > len(eligible) {
		return nil, fmt.Errorf(
			"%w: threshold %d exceeds %d eligible accounts",
			lightchain.ErrInsufficientAccounts,
			threshold,
			len(eligible),
		)
	}

	seed := sha256.Sum256(entityID[:])

	members := set.NewSet[lightchain.Identifier](threshold)
	sorted := make([]lightchain.Identifier, 0, threshold)
	for draw := 0; draw < threshold; draw++ {
		target := drawUint64(seed, uint64(draw)) % remainingStake

		// Locate the account whose cumulative stake interval covers target.
		idx := 0
		var cumulative uint64
		for i, account := range eligible {
			cumulative += account.Stake
			if target < cumulative {
				idx = i
				break
			}
		}

		selected := eligible[idx]
		members.Add(selected.ID)
		remainingStake -= selected.Stake
		eligible = append(eligible[:idx], eligible[idx+1:]...)
		sorted = insertSorted(sorted, selected.ID)
	}

	return &Assignment{
		members: members,
		sorted:  sorted,
	}, nil
}

// drawUint64 derives the draw-th pseudo-random value from the seed. The
// hash construction is part of the protocol; changing it changes every
// committee.
func drawUint64(seed [32]byte, draw uint64) uint64 {
	var buf [40]byte
	copy(buf[:32], seed[:])
	binary.BigEndian.PutUint64(buf[32:], draw)
	digest := sha256.Sum256(buf[:])
	return binary.BigEndian.Uint64(digest[:8])
}

func insertSorted(ids []lightchain.Identifier, id lightchain.Identifier) []lightchain.Identifier {
	pos := len(ids)
	for i := range ids {
		if id.Compare(ids[i]) < 0 {
			pos = i
			break
		}
	}
	ids = append(ids, lightchain.Identifier{})
	copy(ids[pos+1:], ids[pos:])
	ids[pos] = id
	return ids
}
