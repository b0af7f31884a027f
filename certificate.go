// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package lightchain

import (
	"fmt"
)

var _ Entity = (*Certificate)(nil)

// Certificate is one assigned validator's BLS signature over an entity's
// identifier, proving that validator inspected and approved the entity.
type Certificate struct {
	// EntityID is the identifier of the certified transaction or block.
	EntityID Identifier

	// Signer is the account identifier of the certifying validator.
	Signer Identifier

	// Signature is the signer's BLS signature over EntityID.
	Signature []byte
}

// NewCertificate creates a certificate over entityID by signer.
func NewCertificate(entityID, signer Identifier, signature []byte) *Certificate {
	return &Certificate{
		EntityID:  entityID,
		Signer:    signer,
		Signature: signature,
	}
}

// Type returns EntityTypeCertificate.
func (c *Certificate) Type() EntityType {
	return EntityTypeCertificate
}

// Bytes returns the canonical serialization of the certificate.
func (c *Certificate) Bytes() []byte {
	b, _ := Codec.Marshal(c)
	return b
}

// ID returns the content hash of the certificate.
func (c *Certificate) ID() Identifier {
	return Identifier(ComputeHash256Array(c.Bytes()))
}

// ParseCertificate parses a certificate from its canonical serialization.
func ParseCertificate(b []byte) (*Certificate, error) {
	c := &Certificate{}
	if err := Codec.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certificate: %w", err)
	}
	return c, nil
}
