// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestTransactionIdentity(t *testing.T) {
	tx := NewTransaction(Identifier{0x01}, Identifier{0x02}, Identifier{0x03}, uint256.NewInt(7))
	tx.Signature = []byte{0xAA}

	// Identity is derived from content.
	require.Equal(t, tx.ID(), tx.ID())

	other := NewTransaction(Identifier{0x01}, Identifier{0x02}, Identifier{0x03}, uint256.NewInt(8))
	other.Signature = []byte{0xAA}
	require.NotEqual(t, tx.ID(), other.ID())
}

func TestTransactionSignableBytesExcludeSignature(t *testing.T) {
	tx := NewTransaction(Identifier{0x01}, Identifier{0x02}, Identifier{0x03}, uint256.NewInt(7))
	unsigned := tx.SignableBytes()

	tx.Signature = []byte{0xAA, 0xBB}
	require.Equal(t, unsigned, tx.SignableBytes())
	require.NotEqual(t, unsigned, tx.Bytes())
}

func TestParseTransaction(t *testing.T) {
	tx := NewTransaction(Identifier{0x01}, Identifier{0x02}, Identifier{0x03}, uint256.NewInt(7))
	tx.Signature = []byte{0xAA}

	parsed, err := ParseTransaction(tx.Bytes())
	require.NoError(t, err)
	require.Equal(t, tx, parsed)
	require.Equal(t, tx.ID(), parsed.ID())

	_, err = ParseTransaction([]byte{0xDE, 0xAD})
	require.Error(t, err)
}

func TestValidatedTransactionKeepsIdentity(t *testing.T) {
	tx := NewTransaction(Identifier{0x01}, Identifier{0x02}, Identifier{0x03}, uint256.NewInt(7))
	tx.Signature = []byte{0xAA}

	vtx := &ValidatedTransaction{Transaction: *tx}
	require.Equal(t, tx.ID(), vtx.ID())

	// Accumulating certificates does not change the transaction identity.
	vtx.Certificates = append(vtx.Certificates, NewCertificate(tx.ID(), Identifier{0x04}, []byte{0xBB}))
	require.Equal(t, tx.ID(), vtx.ID())
}

func TestBlockIdentity(t *testing.T) {
	b := NewBlock(Identifier{0x01}, Identifier{0x02}, 1, nil)

	unsigned := b.SignableBytes()
	b.Signature = []byte{0xAA}
	require.Equal(t, unsigned, b.SignableBytes())

	parsed, err := ParseBlock(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, b.ID(), parsed.ID())
}

func TestParseCertificate(t *testing.T) {
	cert := NewCertificate(Identifier{0x01}, Identifier{0x02}, []byte{0xAA})

	parsed, err := ParseCertificate(cert.Bytes())
	require.NoError(t, err)
	require.Equal(t, cert, parsed)
}

func TestEntityTypes(t *testing.T) {
	tx := &Transaction{}
	require.Equal(t, EntityTypeTransaction, tx.Type())
	require.Equal(t, EntityTypeValidatedTransaction, (&ValidatedTransaction{}).Type())
	require.Equal(t, EntityTypeBlock, (&Block{}).Type())
	require.Equal(t, EntityTypeCertificate, (&Certificate{}).Type())

	require.Equal(t, "transaction", EntityTypeTransaction.String())
	require.Equal(t, "unknown", EntityTypeUnknown.String())
}

func TestAccountCopy(t *testing.T) {
	account := NewAccount(Identifier{0x01}, []byte{0x02}, 10, uint256.NewInt(50), Identifier{0x03})
	cp := account.Copy()
	require.Equal(t, account, cp)

	cp.PublicKey[0] = 0xFF
	cp.Balance.SetUint64(0)
	require.Equal(t, []byte{0x02}, account.PublicKey)
	require.Equal(t, uint64(50), account.Balance.Uint64())
}

func TestAddUint64(t *testing.T) {
	sum, err := AddUint64(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), sum)

	_, err = AddUint64(^uint64(0), 1)
	require.Error(t, err)
}
