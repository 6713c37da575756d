// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/sha256"
	"fmt"
	"math/big"
)

const (
	// SchnorrSignatureLen is the length of a serialized Schnorr signature,
	// which consists of the 33-byte compressed commitment point followed by
	// the 32-byte big-endian signature scalar.
	SchnorrSignatureLen = 65
)

// rfc6979SchnorrVersion is the 16-byte version string fed into the RFC6979
// nonce derivation for Schnorr signing.  It domain separates the Schnorr
// nonce stream from the ECDSA one, so signing the same message with both
// schemes never reuses a nonce.
var rfc6979SchnorrVersion = []byte("Schnorr+SHA256v0")

// SchnorrSignature is a type representing a Schnorr signature, which consists
// of the commitment point produced from the signing nonce along with the
// signature scalar binding it to the message and public key.
//
// Signatures are immutable values and are never mutated in place.
type SchnorrSignature struct {
	s          big.Int
	commitment Point
}

// NewSchnorrSignature instantiates a new Schnorr signature given the
// signature scalar and commitment point.
func NewSchnorrSignature(s *big.Int, commitment *Point) *SchnorrSignature {
	var sig SchnorrSignature
	sig.s.Set(s)
	sig.commitment = MakePoint(&commitment.X, &commitment.Y)
	return &sig
}

// S returns a copy of the signature scalar.
func (sig *SchnorrSignature) S() *big.Int {
	return new(big.Int).Set(&sig.s)
}

// Commitment returns the commitment point of the signature.
func (sig *SchnorrSignature) Commitment() Point {
	return MakePoint(&sig.commitment.X, &sig.commitment.Y)
}

// IsEqual compares this signature instance to the one passed, returning true
// if both signatures are equivalent, meaning they have the same signature
// scalar and commitment point.
func (sig *SchnorrSignature) IsEqual(otherSig *SchnorrSignature) bool {
	return sig.s.Cmp(&otherSig.s) == 0 &&
		sig.commitment.IsEqual(&otherSig.commitment)
}

// IsMalleable returns whether or not the signature is in the non-canonical
// form with an odd commitment y coordinate.  A signature and its negation
// counterpart, produced by negating the nonce, both satisfy the verification
// equation, so only the even-y form is ever produced by SignSchnorr or
// accepted by Verify.
func (sig *SchnorrSignature) IsMalleable() bool {
	return sig.commitment.YParity() == 1
}

// Serialize returns the Schnorr signature in the 65-byte format which
// consists of the compressed serialization of the commitment point followed
// by the signature scalar as a 32-byte big-endian value.
func (sig *SchnorrSignature) Serialize() []byte {
	var b [SchnorrSignatureLen]byte
	copy(b[0:33], serializeCompressed(&sig.commitment.X, &sig.commitment.Y))
	sig.s.FillBytes(b[33:])
	return b[:]
}

// ParseSchnorrSignature parses a Schnorr signature in the 65-byte format.
// The commitment point must be a valid curve point in the canonical even-y
// form and the signature scalar must be less than the group order.
func ParseSchnorrSignature(serialized []byte) (*SchnorrSignature, error) {
	if len(serialized) != SchnorrSignatureLen {
		str := fmt.Sprintf("malformed signature: invalid length: %d != %d",
			len(serialized), SchnorrSignatureLen)
		return nil, signatureError(ErrSigInvalidLen, str)
	}

	// The commitment is serialized compressed and parsing it also ensures it
	// is a valid point on the curve.  The canonical form uses an even y
	// coordinate, which is enforced via the compressed format prefix so a
	// signature and its negation counterpart never both parse.
	if serialized[0] != pubKeyFormatCompressedEven {
		str := fmt.Sprintf("invalid signature: commitment is not in the "+
			"canonical even-y form: prefix %#x", serialized[0])
		return nil, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	commitmentKey, err := ParsePubKey(serialized[0:33])
	if err != nil {
		return nil, err
	}
	commitment := commitmentKey.AsPoint()

	s := new(big.Int).SetBytes(serialized[33:])
	if s.Cmp(curveParams.N) >= 0 {
		str := "invalid signature: S >= group order"
		return nil, signatureError(ErrSigSTooBig, str)
	}
	return NewSchnorrSignature(s, &commitment), nil
}

// schnorrChallenge computes the challenge scalar that binds the commitment
// point, public key, and message together:
//
//	e = SHA-256(compressed R || compressed P || m) mod N
func schnorrChallenge(commitment *Point, pubKey *PublicKey, message []byte) *big.Int {
	hasher := sha256.New()
	hasher.Write(serializeCompressed(&commitment.X, &commitment.Y))
	hasher.Write(pubKey.SerializeCompressed())
	hasher.Write(message)
	e := new(big.Int).SetBytes(hasher.Sum(nil))
	return e.Mod(e, curveParams.N)
}

// SignSchnorr generates a Schnorr signature over the secp256k1 curve for the
// provided message using the given private key.  The message may be of any
// length since it is bound into the challenge hash directly.
//
// The signing nonce is derived deterministically via RFC6979 with a Schnorr
// specific version tag, so identical inputs always produce bit-identical
// signatures and the nonce stream never collides with ECDSA signing.  The
// nonce is negated whenever its commitment point has an odd y coordinate,
// which makes the even-y form the canonical one and prevents producing a
// signature together with its negation counterpart.
//
// An error with kind ErrPrivateKeyInvalid is returned when the private key
// scalar is zero or not less than the group order.
func SignSchnorr(privKey *PrivateKey, message []byte) (*SchnorrSignature, error) {
	if !privKey.IsValid() {
		str := "private key scalar is zero or >= group order"
		return nil, makeError(ErrPrivateKeyInvalid, str)
	}

	// The public key is part of the challenge hash, so compute it up front.
	var pubJacobian JacobianPoint
	ScalarBaseMultNonConst(&privKey.Key, &pubJacobian)
	pubAffine := pubJacobian.ToAffine()
	pubKey := NewPublicKey(&pubAffine.X, &pubAffine.Y)

	privKeyBytes := privKey.Serialize()
	msgDigest := sha256.Sum256(message)
	for iteration := uint32(0); ; iteration++ {
		// k = deterministic nonce in [1, N-1]
		k := NonceRFC6979(privKeyBytes, msgDigest[:], nil,
			rfc6979SchnorrVersion, iteration)

		// R = kG, negating k when R has an odd y coordinate so the published
		// commitment is always the canonical even-y one.
		var kG JacobianPoint
		ScalarBaseMultNonConst(k, &kG)
		commitment := kG.ToAffine()
		if commitment.YParity() == 1 {
			k.Sub(curveParams.N, k)
			commitment = commitment.Negate()
		}

		// e = SHA-256(R || P || m) mod N
		e := schnorrChallenge(&commitment, pubKey, message)

		// s = k + e*d mod N
		s := new(big.Int).Mul(e, &privKey.Key)
		s.Add(s, k)
		s.Mod(s, curveParams.N)
		if s.Sign() == 0 {
			continue
		}

		return NewSchnorrSignature(s, &commitment), nil
	}
}

// Verify returns whether or not the signature is valid for the provided
// message and secp256k1 public key by checking the group equation
//
//	sG == R + eP
//
// where e is the challenge recomputed exactly as during signing.
//
// A structurally invalid public key produces an error with kind
// ErrPubKeyNotOnCurve.  Signatures with out-of-range components, commitments
// in the non-canonical odd-y form, and signatures by a different key are
// ordinary negative results and return false without an error.
func (sig *SchnorrSignature) Verify(message []byte, pubKey *PublicKey) (bool, error) {
	if pubKey == nil || !pubKey.IsOnCurve() {
		str := "public key is not a point on the secp256k1 curve"
		return false, makeError(ErrPubKeyNotOnCurve, str)
	}

	// Only the canonical even-y commitment form is accepted; the odd-y
	// negation counterpart verifies algebraically but is rejected to keep
	// exactly one accepted representation per (message, key) pair.
	if sig.commitment.IsInfinity() || sig.commitment.IsZero() ||
		!sig.commitment.IsOnCurve() {

		return false, nil
	}
	if sig.IsMalleable() {
		return false, nil
	}
	if sig.s.Sign() == 0 || sig.s.Cmp(curveParams.N) >= 0 {
		return false, nil
	}

	// e = SHA-256(R || P || m) mod N
	e := schnorrChallenge(&sig.commitment, pubKey, message)

	// sG == R + eP
	var sG, eP, rPlusEP, pubJacobian, commitmentJacobian JacobianPoint
	ScalarBaseMultNonConst(&sig.s, &sG)
	pubKey.AsJacobian(&pubJacobian)
	ScalarMultNonConst(e, &pubJacobian, &eP)
	sig.commitment.AsJacobian(&commitmentJacobian)
	AddNonConst(&commitmentJacobian, &eP, &rPlusEP)

	lhs := sG.ToAffine()
	rhs := rPlusEP.ToAffine()
	return lhs.IsEqual(&rhs), nil
}

// VerifySchnorr returns whether or not the signature is valid for the
// provided message and secp256k1 public key.  See the Verify method for the
// details of the accepted forms.
func VerifySchnorr(sig *SchnorrSignature, message []byte, pubKey *PublicKey) (bool, error) {
	return sig.Verify(message, pubKey)
}
