// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

// Package validator evaluates the deterministic validation rule-sets for
// transactions and blocks. Every predicate is pure, side-effect free, and
// re-evaluable; lookups that fail make the predicate false instead of
// propagating an error, so a malformed entity can never crash validation.
package validator

import (
	"github.com/lightchain-network/lightchain"
	"github.com/lightchain-network/lightchain/config"
	"github.com/lightchain-network/lightchain/local"
	"github.com/lightchain-network/lightchain/state"
)

// TransactionReport records the outcome of every transaction rule for one
// evaluation. Each predicate is computed exactly once per report, and all
// rules are evaluated even after one fails so failure reasons stay
// observable.
type TransactionReport struct {
	Correct       bool
	Sound         bool
	Authenticated bool
	EnoughBalance bool
}

// Validated reports whether every rule passed.
func (r TransactionReport) Validated() bool {
	return r.Correct && r.Sound && r.Authenticated && r.EnoughBalance
}

// Failures lists the names of the failed rules.
func (r TransactionReport) Failures() []string {
	var failures []string
	if !r.Correct {
		failures = append(failures, "correct")
	}
	if !r.Sound {
		failures = append(failures, "sound")
	}
	if !r.Authenticated {
		failures = append(failures, "authenticated")
	}
	if !r.EnoughBalance {
		failures = append(failures, "enough-balance")
	}
	return failures
}

// TransactionValidator evaluates the transaction rule-set against ledger
// snapshots.
type TransactionValidator struct {
	state  state.State
	params config.Parameters
}

// NewTransactionValidator creates a transaction validator reading from the
// given state.
func NewTransactionValidator(st state.State, params config.Parameters) *TransactionValidator {
	return &TransactionValidator{
		state:  st,
		params: params,
	}
}

// IsCorrect checks structural well-formedness: sender and receiver are
// distinct existing accounts in the reference snapshot, and the amount is
// strictly positive.
func (v *TransactionValidator) IsCorrect(tx *lightchain.Transaction) bool {
	if tx.Sender == tx.Receiver {
		return false
	}
	if tx.Amount == nil || tx.Amount.IsZero() {
		return false
	}

	snapshot, err := v.state.AtBlockID(tx.ReferenceBlockID)
	if err != nil {
		return false
	}
	if _, err := snapshot.Account(tx.Sender); err != nil {
		return false
	}
	if _, err := snapshot.Account(tx.Receiver); err != nil {
		return false
	}
	return true
}

// IsSound checks that the transaction's reference snapshot is at least as
// recent as the snapshot last recorded against the sender's account.
// Referencing an older state could hide a double-spend.
func (v *TransactionValidator) IsSound(tx *lightchain.Transaction) bool {
	reference, err := v.state.AtBlockID(tx.ReferenceBlockID)
	if err != nil {
		return false
	}
	sender, err := reference.Account(tx.Sender)
	if err != nil {
		return false
	}
	lastSeen, err := v.state.AtBlockID(sender.LastBlockID)
	if err != nil {
		return false
	}
	return reference.ReferenceBlockHeight() >= lastSeen.ReferenceBlockHeight()
}

// IsAuthenticated checks the sender's signature over the transaction's
// signable content against the sender's public key in the reference
// snapshot.
func (v *TransactionValidator) IsAuthenticated(tx *lightchain.Transaction) bool {
	snapshot, err := v.state.AtBlockID(tx.ReferenceBlockID)
	if err != nil {
		return false
	}
	sender, err := snapshot.Account(tx.Sender)
	if err != nil {
		return false
	}
	return local.Verify(sender.PublicKey, tx.SignableBytes(), tx.Signature)
}

// SenderHasEnoughBalance checks the sender's balance in the reference
// snapshot covers the amount.
func (v *TransactionValidator) SenderHasEnoughBalance(tx *lightchain.Transaction) bool {
	snapshot, err := v.state.AtBlockID(tx.ReferenceBlockID)
	if err != nil {
		return false
	}
	sender, err := snapshot.Account(tx.Sender)
	if err != nil {
		return false
	}
	if sender.Balance == nil || tx.Amount == nil {
		return false
	}
	return sender.Balance.Cmp(tx.Amount) >= 0
}

// Report evaluates every rule once and returns the per-rule outcome.
func (v *TransactionValidator) Report(tx *lightchain.Transaction) TransactionReport {
	return TransactionReport{
		Correct:       v.IsCorrect(tx),
		Sound:         v.IsSound(tx),
		Authenticated: v.IsAuthenticated(tx),
		EnoughBalance: v.SenderHasEnoughBalance(tx),
	}
}

// IsValidated reports whether the transaction passes the full rule-set.
func (v *TransactionValidator) IsValidated(tx *lightchain.Transaction) bool {
	return v.Report(tx).Validated()
}
