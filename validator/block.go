// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package validator

import (
	"github.com/luxfi/math/set"

	"github.com/lightchain-network/lightchain"
	"github.com/lightchain-network/lightchain/assigner"
	"github.com/lightchain-network/lightchain/config"
	"github.com/lightchain-network/lightchain/local"
	"github.com/lightchain-network/lightchain/state"
)

// BlockReport records the outcome of every block rule for one evaluation.
type BlockReport struct {
	Correct               bool
	TransactionsSound     bool
	TransactionsValidated bool
	Authenticated         bool
	Consistent            bool
	NoDuplicateSender     bool
	ProposerEnoughStake   bool
}

// Validated reports whether every rule passed.
func (r BlockReport) Validated() bool {
	return r.Correct &&
		r.TransactionsSound &&
		r.TransactionsValidated &&
		r.Authenticated &&
		r.Consistent &&
		r.NoDuplicateSender &&
		r.ProposerEnoughStake
}

// Failures lists the names of the failed rules.
func (r BlockReport) Failures() []string {
	var failures []string
	if !r.Correct {
		failures = append(failures, "correct")
	}
	if !r.TransactionsSound {
		failures = append(failures, "transactions-sound")
	}
	if !r.TransactionsValidated {
		failures = append(failures, "transactions-validated")
	}
	if !r.Authenticated {
		failures = append(failures, "authenticated")
	}
	if !r.Consistent {
		failures = append(failures, "consistent")
	}
	if !r.NoDuplicateSender {
		failures = append(failures, "no-duplicate-sender")
	}
	if !r.ProposerEnoughStake {
		failures = append(failures, "proposer-enough-stake")
	}
	return failures
}

// BlockValidator evaluates the block rule-set against ledger snapshots.
type BlockValidator struct {
	state    state.State
	assigner *assigner.Assigner
	txs      *TransactionValidator
	params   config.Parameters
}

// NewBlockValidator creates a block validator reading from the given
// state. The assigner must use the same minimum stake as the rest of the
// protocol, since certificate counting recomputes each transaction's
// committee.
func NewBlockValidator(st state.State, asg *assigner.Assigner, params config.Parameters) *BlockValidator {
	return &BlockValidator{
		state:    st,
		assigner: asg,
		txs:      NewTransactionValidator(st, params),
		params:   params,
	}
}

// IsCorrect checks structural well-formedness: the parent snapshot exists,
// the proposer is an account in it, the height extends the parent by
// exactly one, and the block carries at least the minimum transaction
// count.
func (v *BlockValidator) IsCorrect(b *lightchain.Block) bool {
	parent, err := v.state.AtBlockID(b.PreviousBlockID)
	if err != nil {
		return false
	}
	if _, err := parent.Account(b.Proposer); err != nil {
		return false
	}
	if b.Height != parent.ReferenceBlockHeight()+1 {
		return false
	}
	return len(b.Transactions) >= v.params.MinimumTransactionsPerBlock
}

// AllTransactionsSound checks every embedded transaction independently
// satisfies transaction soundness.
func (v *BlockValidator) AllTransactionsSound(b *lightchain.Block) bool {
	for _, vtx := range b.Transactions {
		if !v.txs.IsSound(&vtx.Transaction) {
			return false
		}
	}
	return true
}

// AllTransactionsValidated checks every embedded transaction carries at
// least the signature-threshold distinct valid certificates from its own
// validation committee.
func (v *BlockValidator) AllTransactionsValidated(b *lightchain.Block) bool {
	for _, vtx := range b.Transactions {
		if !v.transactionValidated(vtx) {
			return false
		}
	}
	return true
}

func (v *BlockValidator) transactionValidated(vtx *lightchain.ValidatedTransaction) bool {
	snapshot, err := v.state.AtBlockID(vtx.ReferenceBlockID)
	if err != nil {
		return false
	}
	committee, err := v.assigner.Assign(vtx.ID(), snapshot, v.params.ValidatorThreshold)
	if err != nil {
		return false
	}

	txID := vtx.ID()
	signers := set.NewSet[lightchain.Identifier](len(vtx.Certificates))
	for _, cert := range vtx.Certificates {
		if cert == nil || cert.EntityID != txID {
			continue
		}
		if !committee.Has(cert.Signer) {
			continue
		}
		// Distinct signers only; a validator certifying twice counts once.
		if signers.Contains(cert.Signer) {
			continue
		}
		signer, err := snapshot.Account(cert.Signer)
		if err != nil {
			continue
		}
		if !local.VerifyCertificate(signer, cert) {
			continue
		}
		signers.Add(cert.Signer)
	}
	return signers.Len() >= v.params.SignatureThreshold
}

// IsAuthenticated checks the proposer's signature over the block's
// signable content against the proposer's public key in the parent
// snapshot.
func (v *BlockValidator) IsAuthenticated(b *lightchain.Block) bool {
	parent, err := v.state.AtBlockID(b.PreviousBlockID)
	if err != nil {
		return false
	}
	proposer, err := parent.Account(b.Proposer)
	if err != nil {
		return false
	}
	return local.Verify(proposer.PublicKey, b.SignableBytes(), b.Signature)
}

// IsConsistent checks the block's references resolve against the local
// ledger: the parent block is known, and every embedded transaction
// references a known snapshot no newer than the parent.
func (v *BlockValidator) IsConsistent(b *lightchain.Block) bool {
	parent, err := v.state.AtBlockID(b.PreviousBlockID)
	if err != nil {
		return false
	}
	for _, vtx := range b.Transactions {
		reference, err := v.state.AtBlockID(vtx.ReferenceBlockID)
		if err != nil {
			return false
		}
		if reference.ReferenceBlockHeight() > parent.ReferenceBlockHeight() {
			return false
		}
	}
	return true
}

// NoDuplicateSender checks no account appears as sender in more than one
// embedded transaction, preventing intra-block double-spends.
func (v *BlockValidator) NoDuplicateSender(b *lightchain.Block) bool {
	senders := set.NewSet[lightchain.Identifier](len(b.Transactions))
	for _, vtx := range b.Transactions {
		if senders.Contains(vtx.Sender) {
			return false
		}
		senders.Add(vtx.Sender)
	}
	return true
}

// ProposerHasEnoughStake checks the proposer's stake in the parent
// snapshot meets the minimum stake.
func (v *BlockValidator) ProposerHasEnoughStake(b *lightchain.Block) bool {
	parent, err := v.state.AtBlockID(b.PreviousBlockID)
	if err != nil {
		return false
	}
	proposer, err := parent.Account(b.Proposer)
	if err != nil {
		return false
	}
	return proposer.Stake >= v.params.MinimumStake
}

// Report evaluates every rule once and returns the per-rule outcome.
func (v *BlockValidator) Report(b *lightchain.Block) BlockReport {
	return BlockReport{
		Correct:               v.IsCorrect(b),
		TransactionsSound:     v.AllTransactionsSound(b),
		TransactionsValidated: v.AllTransactionsValidated(b),
		Authenticated:         v.IsAuthenticated(b),
		Consistent:            v.IsConsistent(b),
		NoDuplicateSender:     v.NoDuplicateSender(b),
		ProposerEnoughStake:   v.ProposerHasEnoughStake(b),
	}
}

// IsValidated reports whether the block passes the full rule-set.
func (v *BlockValidator) IsValidated(b *lightchain.Block) bool {
	return v.Report(b).Validated()
}
