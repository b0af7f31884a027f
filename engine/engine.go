// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine runs per-entity committee validation: it decides whether
// this node is obligated to validate an inbound transaction or block,
// applies the validation rule-set, and returns a signed certificate to the
// entity's origin.
package engine

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/luxfi/log"

	"github.com/lightchain-network/lightchain"
	"github.com/lightchain-network/lightchain/assigner"
	"github.com/lightchain-network/lightchain/config"
	"github.com/lightchain-network/lightchain/local"
	"github.com/lightchain-network/lightchain/network"
	"github.com/lightchain-network/lightchain/state"
	"github.com/lightchain-network/lightchain/storage"
	"github.com/lightchain-network/lightchain/validator"
)

// DispatchFailurePolicy selects what happens when a certificate cannot be
// delivered. Losing an earned certificate silently could stall consensus
// invisibly, so no policy demotes the failure to a silent drop.
type DispatchFailurePolicy uint8

const (
	// DispatchCrash logs the failure and terminates the process.
	DispatchCrash DispatchFailurePolicy = iota

	// DispatchPropagate returns the networking error to the caller.
	DispatchPropagate

	// DispatchRetry retries with exponential backoff for a bounded time,
	// then propagates.
	DispatchRetry
)

// ParseDispatchPolicy maps a configuration string to a policy.
func ParseDispatchPolicy(s string) (DispatchFailurePolicy, error) {
	switch s {
	case config.DispatchPolicyCrash:
		return DispatchCrash, nil
	case config.DispatchPolicyPropagate:
		return DispatchPropagate, nil
	case config.DispatchPolicyRetry:
		return DispatchRetry, nil
	default:
		return DispatchCrash, fmt.Errorf("unknown dispatch policy %q", s)
	}
}

const defaultRetryTimeout = 30 * time.Second

var _ network.Engine = (*ValidatorEngine)(nil)

// ValidatorEngine consumes proposed transactions and blocks from the
// network and certifies the ones this node is assigned to and that pass
// validation.
//
// A single lock serializes the whole seen-assign-validate-sign-dispatch-
// record sequence, which makes processing of any one identifier at most
// once even under concurrent duplicate delivery.
type ValidatorEngine struct {
	log     log.Logger
	local   *local.Local
	state   state.State
	seen    storage.Identifiers
	params  config.Parameters
	metrics *Metrics

	assigner *assigner.Assigner
	txRules  *validator.TransactionValidator
	blkRules *validator.BlockValidator

	blockConduit network.Conduit
	txConduit    network.Conduit

	policy       DispatchFailurePolicy
	retryTimeout time.Duration
	exit         func(int)

	mu sync.Mutex
}

// Option configures a ValidatorEngine.
type Option func(*ValidatorEngine)

// WithDispatchPolicy sets the dispatch failure policy.
func WithDispatchPolicy(policy DispatchFailurePolicy) Option {
	return func(e *ValidatorEngine) {
		e.policy = policy
	}
}

// WithRetryTimeout bounds the total retry time of the retry policy.
func WithRetryTimeout(timeout time.Duration) Option {
	return func(e *ValidatorEngine) {
		e.retryTimeout = timeout
	}
}

// WithMetrics attaches engine metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(e *ValidatorEngine) {
		e.metrics = metrics
	}
}

// New creates a validator engine and registers it on the proposed-blocks
// and proposed-transactions channels.
func New(
	logger log.Logger,
	net network.Network,
	loc *local.Local,
	st state.State,
	seen storage.Identifiers,
	params config.Parameters,
	opts ...Option,
) (*ValidatorEngine, error) {
	asg := assigner.New(params.MinimumStake)
	e := &ValidatorEngine{
		log:          logger,
		local:        loc,
		state:        st,
		seen:         seen,
		params:       params,
		assigner:     asg,
		txRules:      validator.NewTransactionValidator(st, params),
		blkRules:     validator.NewBlockValidator(st, asg, params),
		policy:       DispatchCrash,
		retryTimeout: defaultRetryTimeout,
		exit:         os.Exit,
	}
	for _, opt := range opts {
		opt(e)
	}

	blockConduit, err := net.Register(e, network.ChannelProposedBlocks)
	if err != nil {
		return nil, fmt.Errorf("failed to register on %s: %w", network.ChannelProposedBlocks, err)
	}
	txConduit, err := net.Register(e, network.ChannelProposedTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to register on %s: %w", network.ChannelProposedTransactions, err)
	}
	e.blockConduit = blockConduit
	e.txConduit = txConduit

	return e, nil
}

// Process handles one inbound entity, which must be a transaction or a
// block. The only synchronously surfaced failures are the usage error for
// any other entity type and, under the propagate policy, a failed
// certificate dispatch; every other rejection is a silent drop.
func (e *ValidatorEngine) Process(entity lightchain.Entity) error {
	_, err := e.process(entity)
	return err
}

// process runs the full sequence under the engine lock and reports the
// terminal outcome for the entity.
func (e *ValidatorEngine) process(entity lightchain.Entity) (Outcome, error) {
	var (
		outcome Outcome
		err     error
	)
	switch entity := entity.(type) {
	case *lightchain.Transaction:
		outcome, err = e.processTransaction(entity)
	case *lightchain.Block:
		outcome, err = e.processBlock(entity)
	default:
		return OutcomeDroppedInvalid, fmt.Errorf(
			"%w: entity is neither a block nor a transaction: %s",
			lightchain.ErrUnexpectedEntityType,
			entity.Type(),
		)
	}
	e.metrics.observe(entity.Type().String(), outcome)
	return outcome, err
}

func (e *ValidatorEngine) processTransaction(tx *lightchain.Transaction) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	txID := tx.ID()
	if e.seen.Has(txID) {
		return OutcomeDroppedSeen, nil
	}

	snapshot, err := e.state.AtBlockID(tx.ReferenceBlockID)
	if err != nil {
		// Indistinguishable from not-assigned by design.
		e.log.Debug(
			"dropping transaction with unknown reference block",
			log.Stringer("transaction", txID),
			log.Err(err),
		)
		return OutcomeDroppedNotAssigned, nil
	}

	committee, err := e.assigner.Assign(txID, snapshot, e.params.ValidatorThreshold)
	if err != nil {
		e.log.Debug(
			"dropping transaction without committee",
			log.Stringer("transaction", txID),
			log.Err(err),
		)
		return OutcomeDroppedNotAssigned, nil
	}
	if !committee.Has(e.local.MyID()) {
		return OutcomeDroppedNotAssigned, nil
	}

	report := e.txRules.Report(tx)
	if !report.Validated() {
		e.log.Debug(
			"dropping invalid transaction",
			log.Stringer("transaction", txID),
			log.String("failed_rules", strings.Join(report.Failures(), ",")),
		)
		return OutcomeDroppedInvalid, nil
	}

	return e.certify(e.txConduit, txID, tx.Sender, tx.Type())
}

func (e *ValidatorEngine) processBlock(b *lightchain.Block) (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	blockID := b.ID()
	if e.seen.Has(blockID) {
		return OutcomeDroppedSeen, nil
	}

	snapshot, err := e.state.AtBlockID(b.PreviousBlockID)
	if err != nil {
		e.log.Debug(
			"dropping block with unknown parent",
			log.Stringer("block", blockID),
			log.Err(err),
		)
		return OutcomeDroppedNotAssigned, nil
	}

	committee, err := e.assigner.Assign(blockID, snapshot, e.params.ValidatorThreshold)
	if err != nil {
		e.log.Debug(
			"dropping block without committee",
			log.Stringer("block", blockID),
			log.Err(err),
		)
		return OutcomeDroppedNotAssigned, nil
	}
	if !committee.Has(e.local.MyID()) {
		return OutcomeDroppedNotAssigned, nil
	}

	report := e.blkRules.Report(b)
	if !report.Validated() {
		e.log.Debug(
			"dropping invalid block",
			log.Stringer("block", blockID),
			log.String("failed_rules", strings.Join(report.Failures(), ",")),
		)
		return OutcomeDroppedInvalid, nil
	}

	return e.certify(e.blockConduit, blockID, b.Proposer, b.Type())
}

// certify signs the entity identifier, unicasts the certificate to the
// entity's origin, and records the identifier as seen. The identifier is
// recorded only after a successful dispatch so a failed dispatch never
// suppresses a later redelivery.
func (e *ValidatorEngine) certify(
	conduit network.Conduit,
	entityID lightchain.Identifier,
	origin lightchain.Identifier,
	entityType lightchain.EntityType,
) (Outcome, error) {
	certificate, err := e.local.SignEntityID(entityID)
	if err != nil {
		return e.dispatchFailure(entityID, fmt.Errorf("failed to sign entity: %w", err))
	}

	if err := e.unicast(conduit, certificate, origin); err != nil {
		return e.dispatchFailure(entityID, fmt.Errorf("failed to unicast certificate: %w", err))
	}

	e.seen.Add(entityID)
	e.log.Info(
		"certificate dispatched",
		log.Stringer("entity", entityID),
		log.String("entity_type", entityType.String()),
		log.Stringer("origin", origin),
	)
	return OutcomeDispatched, nil
}

func (e *ValidatorEngine) unicast(
	conduit network.Conduit,
	certificate *lightchain.Certificate,
	origin lightchain.Identifier,
) error {
	err := conduit.Unicast(certificate, origin)
	if err == nil || e.policy != DispatchRetry {
		return err
	}

	operation := func() error {
		return conduit.Unicast(certificate, origin)
	}
	expBackOff := backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(e.retryTimeout),
	)
	notify := func(err error, _ time.Duration) {
		e.log.Warn(
			"certificate dispatch failed, retrying",
			log.Stringer("origin", origin),
			log.Err(err),
		)
	}
	return backoff.RetryNotify(operation, expBackOff, notify)
}

// dispatchFailure applies the dispatch failure policy. An earned
// certificate that cannot be delivered is never silently dropped.
func (e *ValidatorEngine) dispatchFailure(entityID lightchain.Identifier, err error) (Outcome, error) {
	e.log.Error(
		"could not dispatch certificate",
		log.Stringer("entity", entityID),
		log.Err(err),
	)
	if e.policy == DispatchCrash {
		e.exit(1)
	}
	return OutcomeDispatchFailed, err
}
