// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/lightchain-network/lightchain"
	"github.com/lightchain-network/lightchain/config"
	"github.com/lightchain-network/lightchain/local"
	"github.com/lightchain-network/lightchain/network"
	"github.com/lightchain-network/lightchain/state"
	"github.com/lightchain-network/lightchain/storage"
)

// recorder collects every entity delivered to a node.
type recorder struct {
	mu       sync.Mutex
	entities []lightchain.Entity
}

func (r *recorder) Process(e lightchain.Entity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entities = append(r.entities, e)
	return nil
}

func (r *recorder) received() []lightchain.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]lightchain.Entity(nil), r.entities...)
}

// fixture wires a two-validator ledger in which the engine's node and the
// client are the only staked accounts. With the validator threshold equal
// to the eligible account count, the node sits on every committee.
type fixture struct {
	engine *ValidatorEngine
	seen   *storage.MemIdentifiers
	inbox  *recorder

	genesisID lightchain.Identifier
	node      *lightchain.Account
	client    *lightchain.Account
	clientSK  *bls.SecretKey
	receiver  *lightchain.Account
	nodeLocal *local.Local
	clientSig func(t *testing.T, msg []byte) []byte
}

func keyedAccount(t *testing.T, stake, balance uint64, lastBlockID lightchain.Identifier) (*lightchain.Account, *bls.SecretKey) {
	t.Helper()

	sk, err := bls.NewSecretKey()
	require.NoError(t, err)
	pk := bls.PublicKeyToCompressedBytes(bls.PublicFromSecretKey(sk))
	id := lightchain.Identifier(lightchain.ComputeHash256Array(pk))
	return lightchain.NewAccount(id, pk, stake, uint256.NewInt(balance), lastBlockID), sk
}

func testParams() config.Parameters {
	return config.Parameters{
		ValidatorThreshold:          2,
		SignatureThreshold:          1,
		MinimumStake:                5,
		MinimumTransactionsPerBlock: 1,
	}
}

// newFixture builds the engine. nodeStake below the minimum keeps the
// local node off every committee.
func newFixture(t *testing.T, nodeStake uint64, opts ...Option) *fixture {
	t.Helper()

	genesisID := lightchain.Identifier{}
	node, nodeSK := keyedAccount(t, nodeStake, 0, genesisID)
	client, clientSK := keyedAccount(t, 10, 100, genesisID)
	receiver, _ := keyedAccount(t, 0, 0, genesisID)

	st := state.NewMemState(state.NewSnapshot(genesisID, 0, []*lightchain.Account{
		node, client, receiver,
	}))

	params := testParams()
	if nodeStake < params.MinimumStake {
		// Only the client is eligible.
		params.ValidatorThreshold = 1
	}

	hub := network.NewHub()
	inbox := &recorder{}
	clientNet := hub.NetworkOf(client.ID)
	_, err := clientNet.Register(inbox, network.ChannelProposedTransactions)
	require.NoError(t, err)
	_, err = clientNet.Register(inbox, network.ChannelProposedBlocks)
	require.NoError(t, err)

	seen := storage.NewIdentifiers()
	nodeLocal := local.New(node.ID, nodeSK)
	e, err := New(log.NoLog{}, hub.NetworkOf(node.ID), nodeLocal, st, seen, params, opts...)
	require.NoError(t, err)

	return &fixture{
		engine:    e,
		seen:      seen,
		inbox:     inbox,
		genesisID: genesisID,
		node:      node,
		client:    client,
		clientSK:  clientSK,
		receiver:  receiver,
		nodeLocal: nodeLocal,
		clientSig: func(t *testing.T, msg []byte) []byte {
			t.Helper()
			sig, err := clientSK.Sign(msg)
			require.NoError(t, err)
			return bls.SignatureToBytes(sig)
		},
	}
}

func (f *fixture) signedTransaction(t *testing.T, amount uint64) *lightchain.Transaction {
	t.Helper()

	tx := lightchain.NewTransaction(f.genesisID, f.client.ID, f.receiver.ID, uint256.NewInt(amount))
	tx.Signature = f.clientSig(t, tx.SignableBytes())
	return tx
}

// signedBlock builds a block proposed by the client, carrying one
// transaction certified by the engine's node.
func (f *fixture) signedBlock(t *testing.T) *lightchain.Block {
	t.Helper()

	tx := f.signedTransaction(t, 10)
	cert, err := f.nodeLocal.SignEntityID(tx.ID())
	require.NoError(t, err)
	vtx := &lightchain.ValidatedTransaction{
		Transaction:  *tx,
		Certificates: []*lightchain.Certificate{cert},
	}
	b := lightchain.NewBlock(f.genesisID, f.client.ID, 1, []*lightchain.ValidatedTransaction{vtx})
	b.Signature = f.clientSig(t, b.SignableBytes())
	return b
}

func requireCertificate(t *testing.T, e lightchain.Entity, entityID, signer lightchain.Identifier) {
	t.Helper()

	cert, ok := e.(*lightchain.Certificate)
	require.True(t, ok)
	require.Equal(t, entityID, cert.EntityID)
	require.Equal(t, signer, cert.Signer)
}

func TestProcessTransactionDispatchesCertificate(t *testing.T) {
	f := newFixture(t, 10)
	tx := f.signedTransaction(t, 10)

	outcome, err := f.engine.process(tx)
	require.NoError(t, err)
	require.Equal(t, OutcomeDispatched, outcome)

	received := f.inbox.received()
	require.Len(t, received, 1)
	requireCertificate(t, received[0], tx.ID(), f.node.ID)
	require.Equal(t, 1, f.seen.Len())
	require.True(t, f.seen.Has(tx.ID()))
}

func TestProcessBlockDispatchesCertificate(t *testing.T) {
	f := newFixture(t, 10)
	b := f.signedBlock(t)

	outcome, err := f.engine.process(b)
	require.NoError(t, err)
	require.Equal(t, OutcomeDispatched, outcome)

	received := f.inbox.received()
	require.Len(t, received, 1)
	requireCertificate(t, received[0], b.ID(), f.node.ID)
	require.True(t, f.seen.Has(b.ID()))
}

func TestProcessDuplicateDropped(t *testing.T) {
	f := newFixture(t, 10)
	tx := f.signedTransaction(t, 10)

	require.NoError(t, f.engine.Process(tx))
	outcome, err := f.engine.process(tx)
	require.NoError(t, err)
	require.Equal(t, OutcomeDroppedSeen, outcome)

	require.Len(t, f.inbox.received(), 1)
	require.Equal(t, 1, f.seen.Len())
}

func TestProcessConcurrentDuplicates(t *testing.T) {
	f := newFixture(t, 10)
	tx := f.signedTransaction(t, 10)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, f.engine.Process(tx))
		}()
	}
	wg.Wait()

	// Exactly one certificate regardless of delivery concurrency.
	require.Len(t, f.inbox.received(), 1)
	require.Equal(t, 1, f.seen.Len())
}

func TestProcessNotAssigned(t *testing.T) {
	// Node stake below the minimum keeps it off every committee.
	f := newFixture(t, 0)
	tx := f.signedTransaction(t, 10)

	outcome, err := f.engine.process(tx)
	require.NoError(t, err)
	require.Equal(t, OutcomeDroppedNotAssigned, outcome)

	require.Empty(t, f.inbox.received())
	require.Equal(t, 0, f.seen.Len())
}

func TestProcessUnknownReferenceBlock(t *testing.T) {
	f := newFixture(t, 10)
	tx := f.signedTransaction(t, 10)
	tx.ReferenceBlockID = lightchain.Identifier{0xBD}

	outcome, err := f.engine.process(tx)
	require.NoError(t, err)
	require.Equal(t, OutcomeDroppedNotAssigned, outcome)
	require.Empty(t, f.inbox.received())
}

func TestProcessInvalidTransactionDropped(t *testing.T) {
	f := newFixture(t, 10)
	tx := f.signedTransaction(t, 1000) // exceeds the client's balance

	outcome, err := f.engine.process(tx)
	require.NoError(t, err)
	require.Equal(t, OutcomeDroppedInvalid, outcome)

	require.Empty(t, f.inbox.received())
	// Invalid entities are not recorded, a corrected redelivery is a new
	// entity anyway.
	require.Equal(t, 0, f.seen.Len())
}

func TestProcessRejectsOtherEntityTypes(t *testing.T) {
	f := newFixture(t, 10)

	cert, err := f.nodeLocal.SignEntityID(lightchain.Identifier{0x01})
	require.NoError(t, err)

	err = f.engine.Process(cert)
	require.ErrorIs(t, err, lightchain.ErrUnexpectedEntityType)
	require.Empty(t, f.inbox.received())
}

// stubNetwork hands out a fixed conduit, used to exercise dispatch
// failure policies.
type stubNetwork struct {
	conduit network.Conduit
}

func (n *stubNetwork) Register(network.Engine, string) (network.Conduit, error) {
	return n.conduit, nil
}

type flakyConduit struct {
	mu       sync.Mutex
	failures int
	sent     []lightchain.Entity
}

func (c *flakyConduit) Unicast(e lightchain.Entity, _ lightchain.Identifier) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failures > 0 {
		c.failures--
		return errors.New("transient network failure")
	}
	c.sent = append(c.sent, e)
	return nil
}

func newConduitFixture(t *testing.T, conduit network.Conduit, opts ...Option) *fixture {
	t.Helper()

	genesisID := lightchain.Identifier{}
	node, nodeSK := keyedAccount(t, 10, 0, genesisID)
	client, clientSK := keyedAccount(t, 10, 100, genesisID)
	receiver, _ := keyedAccount(t, 0, 0, genesisID)

	st := state.NewMemState(state.NewSnapshot(genesisID, 0, []*lightchain.Account{
		node, client, receiver,
	}))

	seen := storage.NewIdentifiers()
	nodeLocal := local.New(node.ID, nodeSK)
	e, err := New(log.NoLog{}, &stubNetwork{conduit: conduit}, nodeLocal, st, seen, testParams(), opts...)
	require.NoError(t, err)

	return &fixture{
		engine:    e,
		seen:      seen,
		genesisID: genesisID,
		node:      node,
		client:    client,
		clientSK:  clientSK,
		receiver:  receiver,
		nodeLocal: nodeLocal,
		clientSig: func(t *testing.T, msg []byte) []byte {
			t.Helper()
			sig, err := clientSK.Sign(msg)
			require.NoError(t, err)
			return bls.SignatureToBytes(sig)
		},
	}
}

func TestDispatchFailurePropagate(t *testing.T) {
	conduit := &flakyConduit{failures: 1}
	f := newConduitFixture(t, conduit, WithDispatchPolicy(DispatchPropagate))
	tx := f.signedTransaction(t, 10)

	outcome, err := f.engine.process(tx)
	require.Error(t, err)
	require.Equal(t, OutcomeDispatchFailed, outcome)

	// A failed dispatch never suppresses a redelivery.
	require.Equal(t, 0, f.seen.Len())
	outcome, err = f.engine.process(tx)
	require.NoError(t, err)
	require.Equal(t, OutcomeDispatched, outcome)
	require.Len(t, conduit.sent, 1)
	require.True(t, f.seen.Has(tx.ID()))
}

func TestDispatchFailureCrash(t *testing.T) {
	conduit := &flakyConduit{failures: 1}
	f := newConduitFixture(t, conduit, WithDispatchPolicy(DispatchCrash))

	exitCode := -1
	f.engine.exit = func(code int) {
		exitCode = code
	}

	_, _ = f.engine.process(f.signedTransaction(t, 10))
	require.Equal(t, 1, exitCode)
}

func TestDispatchFailureRetry(t *testing.T) {
	conduit := &flakyConduit{failures: 2}
	f := newConduitFixture(t, conduit,
		WithDispatchPolicy(DispatchRetry),
		WithRetryTimeout(10*time.Second),
	)
	tx := f.signedTransaction(t, 10)

	outcome, err := f.engine.process(tx)
	require.NoError(t, err)
	require.Equal(t, OutcomeDispatched, outcome)
	require.Len(t, conduit.sent, 1)
	require.True(t, f.seen.Has(tx.ID()))
}

func TestParseDispatchPolicy(t *testing.T) {
	policy, err := ParseDispatchPolicy(config.DispatchPolicyCrash)
	require.NoError(t, err)
	require.Equal(t, DispatchCrash, policy)

	policy, err = ParseDispatchPolicy(config.DispatchPolicyPropagate)
	require.NoError(t, err)
	require.Equal(t, DispatchPropagate, policy)

	policy, err = ParseDispatchPolicy(config.DispatchPolicyRetry)
	require.NoError(t, err)
	require.Equal(t, DispatchRetry, policy)

	_, err = ParseDispatchPolicy("panic")
	require.Error(t, err)
}
