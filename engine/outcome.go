// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

// Outcome is the terminal state of processing one entity. Only usage
// errors and (policy permitting) dispatch failures are surfaced to the
// caller; drops are silent externally and auditable internally through
// this type.
type Outcome uint8

const (
	// OutcomeDispatched: the entity was validated and its certificate was
	// sent to the origin.
	OutcomeDispatched Outcome = iota

	// OutcomeDroppedSeen: the entity was already processed.
	OutcomeDroppedSeen

	// OutcomeDroppedNotAssigned: the local node is not on the entity's
	// committee, or the committee could not be drawn at all.
	OutcomeDroppedNotAssigned

	// OutcomeDroppedInvalid: at least one validation rule failed.
	OutcomeDroppedInvalid

	// OutcomeDispatchFailed: the entity earned a certificate but the
	// certificate could not be delivered.
	OutcomeDispatchFailed
)

// String returns the human-readable name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeDispatched:
		return "dispatched"
	case OutcomeDroppedSeen:
		return "dropped-seen"
	case OutcomeDroppedNotAssigned:
		return "dropped-not-assigned"
	case OutcomeDroppedInvalid:
		return "dropped-invalid"
	case OutcomeDispatchFailed:
		return "dispatch-failed"
	default:
		return "unknown"
	}
}
