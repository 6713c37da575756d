// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto"
	"io"
)

// SignOptions can be passed to the crypto.Signer implementation to specify
// which hash was used to produce the digest being signed.
type SignOptions struct {
	Hash crypto.Hash
}

// HashFunc returns the hash configured in the options.
func (s *SignOptions) HashFunc() crypto.Hash {
	return s.Hash
}

// Public returns the public key corresponding to the private key as a
// crypto/ecdsa public key on the S256 curve.
//
// This is part of the crypto.Signer interface implementation.
func (privkey *PrivateKey) Public() crypto.PublicKey {
	return privkey.ToECDSA().Public()
}

// Sign signs the provided digest deterministically and returns the resulting
// signature in the DER format.  The rand parameter is ignored since the
// signature nonce is derived deterministically from the key and digest.
// [SignOptions] can be used to pass options.
//
// This is part of the crypto.Signer interface implementation.
func (privkey *PrivateKey) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	sig, err := Sign(privkey, digest)
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil // DER
}
