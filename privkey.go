// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// PrivateKey provides facilities for working with secp256k1 private keys
// within this package and includes functionality such as serializing and
// parsing them as well as computing their associated public keys.
type PrivateKey struct {
	// Key is the secret scalar.  A valid key is in the range [1, N), where
	// N is the group order, and callers are expected to check validity with
	// IsValid before using keys that were constructed directly.
	Key big.Int
}

// NewPrivateKey instantiates a new private key from the provided scalar.  The
// scalar is copied, so the caller may continue to use it.
func NewPrivateKey(key *big.Int) *PrivateKey {
	var privKey PrivateKey
	privKey.Key.Set(key)
	return &privKey
}

// PrivKeyFromBytes returns a private key based on the provided byte slice
// which is interpreted as an unsigned 256-bit big-endian integer.
//
// WARNING: This means passing a slice with more than 32 bytes is truncated
// and that truncated value is reduced modulo N.  Further, 0 is not a valid
// private key.  It is up to the caller to provide a value in the appropriate
// range of [1, N-1].
func PrivKeyFromBytes(privKeyBytes []byte) *PrivateKey {
	if len(privKeyBytes) > 32 {
		privKeyBytes = privKeyBytes[:32]
	}
	var privKey PrivateKey
	privKey.Key.SetBytes(privKeyBytes)
	privKey.Key.Mod(&privKey.Key, curveParams.N)
	return &privKey
}

// GeneratePrivateKey generates and returns a new cryptographically secure
// private key that is suitable for use with secp256k1.
func GeneratePrivateKey() (*PrivateKey, error) {
	return GeneratePrivateKeyFromRand(rand.Reader)
}

// GeneratePrivateKeyFromRand generates a private key that is suitable for use
// with secp256k1 using the provided reader as a source of entropy.
//
// Candidate scalars outside the valid range [1, N) are rejected and new ones
// drawn until one is accepted, so the result is uniform over the valid keys.
// An error with kind ErrRandomnessUnavailable is returned when the provided
// reader fails to supply entropy.  The function does not retry failed reads,
// so any retry or timeout policy belongs to the caller.
func GeneratePrivateKeyFromRand(rand io.Reader) (*PrivateKey, error) {
	var buf [32]byte
	for {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			str := fmt.Sprintf("entropy source failure: %v", err)
			return nil, makeError(ErrRandomnessUnavailable, str)
		}

		var privKey PrivateKey
		privKey.Key.SetBytes(buf[:])
		if privKey.IsValid() {
			return &privKey, nil
		}
	}
}

// IsValid returns whether or not the private key scalar is in the valid range
// [1, N), where N is the group order.
func (p *PrivateKey) IsValid() bool {
	return p.Key.Sign() != 0 && p.Key.Cmp(curveParams.N) < 0
}

// PubKey computes and returns the public key corresponding to this private
// key.  An error with kind ErrPrivateKeyInvalid is returned when the secret
// scalar is zero or not less than the group order since no valid public key
// exists for such scalars.
func (p *PrivateKey) PubKey() (*PublicKey, error) {
	if !p.IsValid() {
		str := "private key scalar is zero or >= group order"
		return nil, makeError(ErrPrivateKeyInvalid, str)
	}

	var result JacobianPoint
	ScalarBaseMultNonConst(&p.Key, &result)
	affine := result.ToAffine()
	return NewPublicKey(&affine.X, &affine.Y), nil
}

// Serialize returns the private key as a 256-bit big-endian binary-encoded
// number, padded to a length of 32 bytes.
func (p *PrivateKey) Serialize() []byte {
	var privKeyBytes [32]byte
	p.Key.FillBytes(privKeyBytes[:])
	return privKeyBytes[:]
}

// ToECDSA returns the private key as a crypto/ecdsa private key on the S256
// curve so it can be used with standard library packages that accept the
// generic elliptic curve interfaces.
func (p *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	var result JacobianPoint
	ScalarBaseMultNonConst(&p.Key, &result)
	affine := result.ToAffine()
	return &ecdsa.PrivateKey{
		PublicKey: ecdsa.PublicKey{
			Curve: S256(),
			X:     new(big.Int).Set(&affine.X),
			Y:     new(big.Int).Set(&affine.Y),
		},
		D: new(big.Int).Set(&p.Key),
	}
}

// Zero manually clears the memory associated with the private key.  This can
// be used to explicitly clear key material from memory for enhanced security
// against memory scraping.
func (p *PrivateKey) Zero() {
	p.Key.SetInt64(0)
}
