// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package local

import (
	"errors"

	"github.com/luxfi/crypto/bls"

	"github.com/lightchain-network/lightchain"
)

var ErrNoSecretKey = errors.New("no secret key configured")

// Local holds the identity of this node: its account identifier and the
// BLS secret key it certifies entities with.
type Local struct {
	id lightchain.Identifier
	sk *bls.SecretKey
}

// New creates a Local identity from an account identifier and secret key.
func New(id lightchain.Identifier, sk *bls.SecretKey) *Local {
	return &Local{
		id: id,
		sk: sk,
	}
}

// MyID returns the account identifier of this node.
func (l *Local) MyID() lightchain.Identifier {
	return l.id
}

// PublicKey returns the BLS public key of this node.
func (l *Local) PublicKey() *bls.PublicKey {
	return bls.PublicFromSecretKey(l.sk)
}

// PublicKeyBytes returns the compressed public key of this node.
func (l *Local) PublicKeyBytes() []byte {
	return bls.PublicKeyToCompressedBytes(l.PublicKey())
}

// Sign signs an arbitrary message with the node's secret key.
func (l *Local) Sign(msg []byte) ([]byte, error) {
	if l.sk == nil {
		return nil, ErrNoSecretKey
	}
	sig, err := l.sk.Sign(msg)
	if err != nil {
		return nil, err
	}
	return bls.SignatureToBytes(sig), nil
}

// SignEntityID produces a certificate over the given entity identifier,
// signed by this node.
func (l *Local) SignEntityID(entityID lightchain.Identifier) (*lightchain.Certificate, error) {
	sig, err := l.Sign(entityID[:])
	if err != nil {
		return nil, err
	}
	return lightchain.NewCertificate(entityID, l.id, sig), nil
}

// Verify checks a BLS signature over msg against a compressed public key.
// Any malformed input makes it false rather than an error, since callers
// treat verification failure and malformed signatures the same way.
func Verify(publicKeyBytes, msg, sig []byte) bool {
	pk, err := bls.PublicKeyFromCompressedBytes(publicKeyBytes)
	if err != nil {
		return false
	}
	blsSig, err := bls.SignatureFromBytes(sig)
	if err != nil {
		return false
	}
	return bls.Verify(pk, blsSig, msg)
}

// VerifyCertificate checks that cert carries a valid signature by the
// given account over cert.EntityID.
func VerifyCertificate(account *lightchain.Account, cert *lightchain.Certificate) bool {
	if account == nil || cert == nil {
		return false
	}
	if account.ID != cert.Signer {
		return false
	}
	return Verify(account.PublicKey, cert.EntityID[:], cert.Signature)
}
