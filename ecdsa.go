// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2020 The Decred developers
// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
	"math/big"
)

// References:
//   [GECC]: Guide to Elliptic Curve Cryptography (Hankerson, Menezes, Vanstone)
//
//   [ISO/IEC 8825-1]: Information technology - ASN.1 encoding rules:
//     Specification of Basic Encoding Rules (BER), Canonical Encoding Rules
//     (CER) and Distinguished Encoding Rules (DER)
//
//   [SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//     https://www.secg.org/sec1-v2.pdf

const (
	// asn1SequenceID is the ASN.1 identifier for a sequence and is used when
	// parsing and serializing signatures encoded with the Distinguished
	// Encoding Rules (DER) format per section 10 of [ISO/IEC 8825-1].
	asn1SequenceID = 0x30

	// asn1IntegerID is the ASN.1 identifier for an integer and is used when
	// parsing and serializing signatures encoded with the Distinguished
	// Encoding Rules (DER) format per section 10 of [ISO/IEC 8825-1].
	asn1IntegerID = 0x02

	// standardSigLen is the size of a standard signature.  It consists of the
	// R and S components serialized as 32-byte big-endian values followed by
	// a single public key recovery byte.  32*2+1 = 65.
	standardSigLen = 65

	// compactSigLen is the size of a compact signature.  It consists of the R
	// component serialized as a 32-byte big-endian value followed by the S
	// component with the y parity of the random point packed into its top
	// bit.  32*2 = 64.
	compactSigLen = 64

	// standardSigMagicOffset is the value added to the public key recovery
	// parity to produce the recovery byte of a standard signature.  It is
	// inherited from Bitcoin and has no meaning beyond compatibility, so the
	// valid recovery bytes are 27 for an even y and 28 for an odd y.
	standardSigMagicOffset = 27
)

// Signature is a type representing an ECDSA signature along with the y parity
// of the random point produced while signing, which allows the public key of
// the signer to be recovered from the signature and message digest.
//
// Signatures are immutable values.  Operations that need a different form,
// such as malleability normalization, return a new signature instead of
// modifying the receiver.
type Signature struct {
	r big.Int
	s big.Int

	// oddY is the y parity of the random point R generated while signing and
	// serves as the public key recovery indicator.  hasParity tracks whether
	// the indicator is known since signatures parsed from DER do not carry
	// one.
	oddY      bool
	hasParity bool
}

// NewSignature instantiates a new signature given some r and s values.  The
// resulting signature carries no public key recovery indicator, so it can be
// verified, but the signer cannot be recovered from it directly.
func NewSignature(r, s *big.Int) *Signature {
	var sig Signature
	sig.r.Set(r)
	sig.s.Set(s)
	return &sig
}

// NewRecoverableSignature instantiates a new signature given some r and s
// values along with the y parity of the random point generated while signing.
func NewRecoverableSignature(r, s *big.Int, oddY bool) *Signature {
	sig := NewSignature(r, s)
	sig.oddY = oddY
	sig.hasParity = true
	return sig
}

// R returns a copy of the r value of the signature.
func (sig *Signature) R() *big.Int {
	return new(big.Int).Set(&sig.r)
}

// S returns a copy of the s value of the signature.
func (sig *Signature) S() *big.Int {
	return new(big.Int).Set(&sig.s)
}

// RecoveryParity returns the y parity of the random point generated while
// signing, 0 for even and 1 for odd, along with whether or not the signature
// carries the indicator at all.  Signatures parsed from DER do not.
func (sig *Signature) RecoveryParity() (byte, bool) {
	if !sig.hasParity {
		return 0, false
	}
	if sig.oddY {
		return 1, true
	}
	return 0, true
}

// IsEqual compares this signature instance to the one passed, returning true
// if both signatures are equivalent.  A signature is equivalent to another if
// they both have the same scalar value for r and s, and agree on the recovery
// indicator when both carry one.
func (sig *Signature) IsEqual(otherSig *Signature) bool {
	if sig.r.Cmp(&otherSig.r) != 0 || sig.s.Cmp(&otherSig.s) != 0 {
		return false
	}
	if sig.hasParity && otherSig.hasParity {
		return sig.oddY == otherSig.oddY
	}
	return sig.hasParity == otherSig.hasParity
}

// IsMalleable returns whether or not the signature is in the malleable form,
// meaning its s value is greater than half the group order.  Both s and its
// negation modulo the group order satisfy the verification equation, so only
// signatures in the canonical low-s form are ever accepted by Verify.
func (sig *Signature) IsMalleable() bool {
	return sig.s.Cmp(halfOrder) > 0
}

// Normalize returns the canonical non-malleable form of the signature.  When
// the s value is greater than half the group order it is replaced by its
// negation modulo the group order and the recovery indicator is flipped,
// otherwise the signature is returned unchanged.  The receiver is never
// modified.
func (sig *Signature) Normalize() *Signature {
	if !sig.IsMalleable() {
		return sig
	}
	normalized := &Signature{oddY: !sig.oddY, hasParity: sig.hasParity}
	normalized.r.Set(&sig.r)
	normalized.s.Sub(curveParams.N, &sig.s)
	return normalized
}

// isZeroDigest returns whether or not the provided message digest consists of
// all zero bytes, which includes the degenerate empty digest.
func isZeroDigest(hash []byte) bool {
	for _, b := range hash {
		if b != 0 {
			return false
		}
	}
	return true
}

// Sign generates an ECDSA signature over the secp256k1 curve for the provided
// hash (which should be the result of hashing a larger message) using the
// given private key.  The produced signature is deterministic (same message,
// same key yield the same signature) and canonical in accordance with RFC6979
// and BIP0062.
//
// An error with kind ErrPrivateKeyInvalid is returned when the private key
// scalar is zero or not less than the group order, and an error with kind
// ErrDigestZero is returned when the hash consists of all zero bytes.
func Sign(privKey *PrivateKey, hash []byte) (*Signature, error) {
	// The algorithm for producing an ECDSA signature is given as algorithm
	// 4.29 in [GECC].
	//
	// The following is a paraphrased version for reference:
	//
	// G = curve generator
	// N = curve order
	// d = private key
	// m = message
	// r, s = signature
	//
	// 1. Select random nonce k in [1, N-1]
	// 2. Compute kG
	// 3. r = kG.x mod N (kG.x is the x coordinate of the point kG)
	//    Repeat from step 1 if r = 0
	// 4. e = H(m)
	// 5. s = k^-1(e + dr) mod N
	//    Repeat from step 1 if s = 0
	// 6. Return (r,s)
	//
	// This is slightly modified here to conform to RFC6979 and BIP 62 as
	// follows:
	//
	// A. Instead of selecting a random nonce in step 1, use RFC6979 to
	//    generate a deterministic nonce in [1, N-1] parameterized by the
	//    private key, message being signed, and an iteration count for the
	//    repeat cases
	// B. Repeat from step 1 if kG.x >= N so the x coordinate never needs to
	//    be reduced and the recovery indicator is always the plain y parity
	// C. Negate s calculated in step 5 if it is > N/2 and flip the recovery
	//    indicator accordingly
	//    This is done because both s and its negation are valid signatures
	//    modulo the curve order N, so it forces a consistent choice to reduce
	//    signature malleability
	if !privKey.IsValid() {
		str := "private key scalar is zero or >= group order"
		return nil, makeError(ErrPrivateKeyInvalid, str)
	}
	if isZeroDigest(hash) {
		str := "message digest consists of all zero bytes"
		return nil, makeError(ErrDigestZero, str)
	}

	privKeyBytes := privKey.Serialize()
	e := new(big.Int).SetBytes(hash)
	e.Mod(e, curveParams.N)
	for iteration := uint32(0); ; iteration++ {
		// Step 1 with modification A.
		//
		// Generate a deterministic nonce in [1, N-1] parameterized by the
		// private key, message being signed, and iteration count.
		k := NonceRFC6979(privKeyBytes, hash, nil, nil, iteration)

		// Step 2.
		//
		// Compute kG
		//
		// Note that the point must be in affine coordinates.
		var kG JacobianPoint
		ScalarBaseMultNonConst(k, &kG)
		capR := kG.ToAffine()

		// Step 3 with modification B.
		//
		// r = kG.x
		// Repeat from step 1 if r = 0 or kG.x >= N
		//
		// By Hasse's theorem an x coordinate >= N occurs for roughly 1 in
		// 2^128 points, so requesting the next deterministic nonce instead of
		// reducing keeps the two-value recovery byte of the standard encoding
		// sufficient for every produced signature.
		if capR.X.Cmp(curveParams.N) >= 0 {
			continue
		}
		r := new(big.Int).Set(&capR.X)
		if r.Sign() == 0 {
			continue
		}
		oddY := capR.YParity() == 1

		// Step 4.
		//
		// e = H(m) mod N (computed above since it does not vary per
		// iteration)

		// Step 5 with modification C.
		//
		// s = k^-1(e + dr) mod N
		// Repeat from step 1 if s = 0
		// s = -s if s > N/2
		kInv := fermatInverse(k, curveParams.N)
		s := new(big.Int).Mul(&privKey.Key, r)
		s.Add(s, e)
		s.Mul(s, kInv)
		s.Mod(s, curveParams.N)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(halfOrder) > 0 {
			s.Sub(curveParams.N, s)

			// Negating s corresponds to the random point that would have
			// been generated by -k (mod N), which necessarily has the
			// opposite y parity since N is prime, thus flip the recovery
			// indicator accordingly.
			oddY = !oddY
		}

		// Step 6.
		//
		// Return (r,s)
		return NewRecoverableSignature(r, s, oddY), nil
	}
}

// recoverCandidate recovers the public key candidate determined by the
// provided signature components, message digest, and y parity of the random
// point via the public key recovery equation Q = r^-1(sR - eG) described by
// section 4.1.6 of [SEC1].  The r and s components must already be in the
// range [1, N-1] and the digest must already be reduced modulo N by the
// caller as needed.
func recoverCandidate(hash []byte, r, s *big.Int, oddY bool) (*PublicKey, error) {
	// The x coordinate of the random point is r itself since signing rejects
	// nonces whose x coordinate overflows the group order.  Compute the y
	// coordinate with the requested parity; failure means the signature could
	// not have been produced by a valid random point.
	y, valid := decompressY(r, oddY)
	if !valid {
		str := fmt.Sprintf("signature r value %x is not the x coordinate of "+
			"a curve point", r)
		return nil, signatureError(ErrPointNotOnCurve, str)
	}
	var capR JacobianPoint
	capR.X.Set(r)
	capR.Y.Set(y)
	capR.Z.SetInt64(1)

	// e = H(m) mod N
	e := new(big.Int).SetBytes(hash)
	e.Mod(e, curveParams.N)

	// w = r^-1 mod N
	//
	// The r component is public, so the variable-time extended Euclidean
	// inverse is fine here.
	w, err := ModInverse(r, curveParams.N)
	if err != nil {
		return nil, err
	}

	// u1 = -(e * w) mod N
	// u2 = s * w mod N
	u1 := new(big.Int).Mul(e, w)
	u1.Mod(u1, curveParams.N)
	if u1.Sign() != 0 {
		u1.Sub(curveParams.N, u1)
	}
	u2 := new(big.Int).Mul(s, w)
	u2.Mod(u2, curveParams.N)

	// Q = u1G + u2R
	var u1G, u2R, result JacobianPoint
	ScalarBaseMultNonConst(u1, &u1G)
	ScalarMultNonConst(u2, &capR, &u2R)
	AddNonConst(&u1G, &u2R, &result)
	if result.IsInfinity() {
		str := "recovered public key is the point at infinity"
		return nil, signatureError(ErrPubKeyAtInfinity, str)
	}

	affine := result.ToAffine()
	return NewPublicKey(&affine.X, &affine.Y), nil
}

// Verify returns whether or not the signature is valid for the provided hash
// and secp256k1 public key by recovering the signing public key from the
// signature and comparing it against the expected one.
//
// Structurally invalid inputs produce errors: an error with kind
// ErrPubKeyNotOnCurve when the public key is not a valid curve point and an
// error with kind ErrDigestZero when the hash consists of all zero bytes.
// Signatures with out-of-range components, signatures in the malleable high-s
// form, and signatures by a different key are ordinary negative results and
// return false without an error.
//
// Signatures parsed from DER carry no recovery indicator, so both candidate
// parities of the random point are tried for them.
func (sig *Signature) Verify(hash []byte, pubKey *PublicKey) (bool, error) {
	if pubKey == nil || !pubKey.IsOnCurve() {
		str := "public key is not a point on the secp256k1 curve"
		return false, makeError(ErrPubKeyNotOnCurve, str)
	}
	if isZeroDigest(hash) {
		str := "message digest consists of all zero bytes"
		return false, makeError(ErrDigestZero, str)
	}

	// Reject r and s outside [1, N-1] and the malleable high-s counterpart
	// form.  These are negative verification results rather than errors.
	if sig.r.Sign() == 0 || sig.r.Cmp(curveParams.N) >= 0 {
		return false, nil
	}
	if sig.s.Sign() == 0 || sig.s.Cmp(curveParams.N) >= 0 {
		return false, nil
	}
	if sig.IsMalleable() {
		return false, nil
	}

	parities := []bool{false, true}
	if sig.hasParity {
		parities = []bool{sig.oddY}
	}
	for _, oddY := range parities {
		candidate, err := recoverCandidate(hash, &sig.r, &sig.s, oddY)
		if err != nil {
			continue
		}
		if candidate.IsEqual(pubKey) {
			return true, nil
		}
	}
	return false, nil
}

// RecoverPublicKey attempts to recover the secp256k1 public key of the signer
// from the provided signature and message hash.  The signature must carry a
// public key recovery indicator, meaning it must have been produced by Sign
// or parsed from the standard or compact encodings; an error with kind
// ErrSigInvalidRecoveryCode is returned otherwise.
func RecoverPublicKey(hash []byte, sig *Signature) (*PublicKey, error) {
	if isZeroDigest(hash) {
		str := "message digest consists of all zero bytes"
		return nil, makeError(ErrDigestZero, str)
	}
	if !sig.hasParity {
		str := "signature does not carry a public key recovery indicator"
		return nil, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	if sig.r.Sign() == 0 {
		str := "invalid signature: R is 0"
		return nil, signatureError(ErrSigRIsZero, str)
	}
	if sig.r.Cmp(curveParams.N) >= 0 {
		str := "invalid signature: R >= group order"
		return nil, signatureError(ErrSigRTooBig, str)
	}
	if sig.s.Sign() == 0 {
		str := "invalid signature: S is 0"
		return nil, signatureError(ErrSigSIsZero, str)
	}
	if sig.s.Cmp(curveParams.N) >= 0 {
		str := "invalid signature: S >= group order"
		return nil, signatureError(ErrSigSTooBig, str)
	}
	return recoverCandidate(hash, &sig.r, &sig.s, sig.oddY)
}

// SerializeStandard returns the signature in the standard 65-byte format
// which consists of the R and S components serialized as 32-byte big-endian
// values followed by a single recovery byte that is 27 when the y coordinate
// of the random point is even and 28 when it is odd.
//
// The signature is normalized to the canonical low-s form before serializing,
// so the result never encodes the malleable counterpart.  An error with kind
// ErrSigInvalidRecoveryCode is returned when the signature does not carry a
// recovery indicator.
func (sig *Signature) SerializeStandard() ([]byte, error) {
	if !sig.hasParity {
		str := "signature does not carry a public key recovery indicator"
		return nil, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	normalized := sig.Normalize()

	var b [standardSigLen]byte
	normalized.r.FillBytes(b[0:32])
	normalized.s.FillBytes(b[32:64])
	b[64] = standardSigMagicOffset
	if normalized.oddY {
		b[64]++
	}
	return b[:], nil
}

// ParseStandardSignature parses a signature in the standard 65-byte format.
// The recovery byte must be 27 or 28 and the R and S components must be in
// the range [1, N-1], where N is the group order.
func ParseStandardSignature(serialized []byte) (*Signature, error) {
	if len(serialized) != standardSigLen {
		str := fmt.Sprintf("malformed signature: invalid length: %d != %d",
			len(serialized), standardSigLen)
		return nil, signatureError(ErrSigInvalidLen, str)
	}

	recoveryByte := serialized[64]
	if recoveryByte != standardSigMagicOffset &&
		recoveryByte != standardSigMagicOffset+1 {

		str := fmt.Sprintf("invalid signature: unsupported recovery byte: %d",
			recoveryByte)
		return nil, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	oddY := recoveryByte == standardSigMagicOffset+1

	r, s, err := parseSigComponents(serialized[0:32], serialized[32:64])
	if err != nil {
		return nil, err
	}
	return NewRecoverableSignature(r, s, oddY), nil
}

// SerializeCompact returns the signature in the compact 64-byte format which
// consists of the R component serialized as a 32-byte big-endian value
// followed by the S component with the y parity of the random point packed
// into the top bit of its first byte.
//
// The signature is normalized to the canonical low-s form before serializing.
// The canonical s never occupies more than 255 bits, so the packed bit is
// unambiguous.  An error with kind ErrSigInvalidRecoveryCode is returned when
// the signature does not carry a recovery indicator.
func (sig *Signature) SerializeCompact() ([]byte, error) {
	if !sig.hasParity {
		str := "signature does not carry a public key recovery indicator"
		return nil, signatureError(ErrSigInvalidRecoveryCode, str)
	}
	normalized := sig.Normalize()

	var b [compactSigLen]byte
	normalized.r.FillBytes(b[0:32])
	normalized.s.FillBytes(b[32:64])
	if normalized.oddY {
		b[32] |= 0x80
	}
	return b[:], nil
}

// ParseCompactSignature parses a signature in the compact 64-byte format.
// The y parity of the random point is unpacked from the top bit of the S
// field and the R and S components must be in the range [1, N-1], where N is
// the group order.
func ParseCompactSignature(serialized []byte) (*Signature, error) {
	if len(serialized) != compactSigLen {
		str := fmt.Sprintf("malformed signature: invalid length: %d != %d",
			len(serialized), compactSigLen)
		return nil, signatureError(ErrSigInvalidLen, str)
	}

	oddY := serialized[32]&0x80 != 0
	var sBytes [32]byte
	copy(sBytes[:], serialized[32:])
	sBytes[0] &^= 0x80

	r, s, err := parseSigComponents(serialized[0:32], sBytes[:])
	if err != nil {
		return nil, err
	}
	return NewRecoverableSignature(r, s, oddY), nil
}

// parseSigComponents interprets the provided big-endian byte slices as the R
// and S components of a signature and ensures both are in the range [1, N-1],
// where N is the group order.
func parseSigComponents(rBytes, sBytes []byte) (*big.Int, *big.Int, error) {
	r := new(big.Int).SetBytes(rBytes)
	if r.Sign() == 0 {
		str := "invalid signature: R is 0"
		return nil, nil, signatureError(ErrSigRIsZero, str)
	}
	if r.Cmp(curveParams.N) >= 0 {
		str := "invalid signature: R >= group order"
		return nil, nil, signatureError(ErrSigRTooBig, str)
	}
	s := new(big.Int).SetBytes(sBytes)
	if s.Sign() == 0 {
		str := "invalid signature: S is 0"
		return nil, nil, signatureError(ErrSigSIsZero, str)
	}
	if s.Cmp(curveParams.N) >= 0 {
		str := "invalid signature: S >= group order"
		return nil, nil, signatureError(ErrSigSTooBig, str)
	}
	return r, s, nil
}

// Serialize returns the ECDSA signature in the Distinguished Encoding Rules
// (DER) format per section 10 of [ISO/IEC 8825-1] and such that the S
// component of the signature is less than or equal to the half order of the
// group.  The recovery indicator is not representable in DER, so it is not
// part of the result.
func (sig *Signature) Serialize() []byte {
	// The format of a DER encoded signature is as follows:
	//
	// 0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
	//   - 0x30 is the ASN.1 identifier for a sequence.
	//   - Total length is 1 byte and specifies length of all remaining data.
	//   - 0x02 is the ASN.1 identifier that specifies an integer follows.
	//   - Length of R is 1 byte and specifies how many bytes R occupies.
	//   - R is the arbitrary length big-endian encoded number which
	//     represents the R value of the signature.  DER encoding dictates
	//     that the value must be encoded using the minimum possible number
	//     of bytes.  This implies the first byte can only be null if the
	//     highest bit of the next byte is set in order to prevent it from
	//     being interpreted as a negative number.
	//   - 0x02 is once again the ASN.1 integer identifier.
	//   - Length of S is 1 byte and specifies how many bytes S occupies.
	//   - S is the arbitrary length big-endian encoded number which
	//     represents the S value of the signature.  The encoding rules are
	//     identical as those for R.

	// Ensure the S component of the signature is less than or equal to the
	// half order of the group because both S and its negation are valid
	// signatures modulo the order, so this forces a consistent choice to
	// reduce signature malleability.
	normalized := sig.Normalize()

	// Serialize the R and S components of the signature into their fixed
	// 32-byte big-endian encoding.
	var rBytes, sBytes [32]byte
	normalized.r.FillBytes(rBytes[:])
	normalized.s.FillBytes(sBytes[:])

	// Ensure the encoded bytes for the R and S components are canonical per
	// DER by trimming all leading zero bytes so long as the next byte does
	// not have the high bit set and it's not the final byte.
	var rBuf, sBuf [33]byte
	copy(rBuf[1:], rBytes[:])
	copy(sBuf[1:], sBytes[:])
	canonR, canonS := rBuf[:], sBuf[:]
	for len(canonR) > 1 && canonR[0] == 0x00 && canonR[1]&0x80 == 0 {
		canonR = canonR[1:]
	}
	for len(canonS) > 1 && canonS[0] == 0x00 && canonS[1]&0x80 == 0 {
		canonS = canonS[1:]
	}

	// Total length of returned signature is 1 byte for each magic and length
	// (6 total), plus lengths of R and S.
	totalLen := 6 + len(canonR) + len(canonS)
	b := make([]byte, 0, totalLen)
	b = append(b, asn1SequenceID)
	b = append(b, byte(totalLen-2))
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonR)))
	b = append(b, canonR...)
	b = append(b, asn1IntegerID)
	b = append(b, byte(len(canonS)))
	b = append(b, canonS...)
	return b
}

// ParseDERSignature parses a signature in the Distinguished Encoding Rules
// (DER) format per section 10 of [ISO/IEC 8825-1] and enforces the following
// additional restrictions specific to secp256k1:
//
// - The R and S values must be in the valid range for secp256k1 scalars:
//   - Negative values are rejected
//   - Zero is rejected
//   - Values greater than or equal to the secp256k1 group order are rejected
//
// Note that DER does not encode a public key recovery indicator, so the
// returned signature does not carry one.
func ParseDERSignature(sig []byte) (*Signature, error) {
	// The format of a DER encoded signature for secp256k1 is as follows:
	//
	// 0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
	//   - 0x30 is the ASN.1 identifier for a sequence
	//   - Total length is 1 byte and specifies length of all remaining data
	//   - 0x02 is the ASN.1 identifier that specifies an integer follows
	//   - Length of R is 1 byte and specifies how many bytes R occupies
	//   - R is the arbitrary length big-endian encoded number which
	//     represents the R value of the signature.  DER encoding dictates
	//     that the value must be encoded using the minimum possible number
	//     of bytes.  This implies the first byte can only be null if the
	//     highest bit of the next byte is set in order to prevent it from
	//     being interpreted as a negative number.
	//   - 0x02 is once again the ASN.1 integer identifier
	//   - Length of S is 1 byte and specifies how many bytes S occupies
	//   - S is the arbitrary length big-endian encoded number which
	//     represents the S value of the signature.  The encoding rules are
	//     identical as those for R.
	//
	// NOTE: The DER specification supports specifying lengths that can occupy
	// more than 1 byte, however, since this is specific to secp256k1
	// signatures, all lengths will be a single byte.
	const (
		// minSigLen is the minimum length of a DER encoded signature and is
		// when both R and S are 1 byte each.
		//
		// 0x30 + <1-byte> + 0x02 + 0x01 + <byte> + 0x2 + 0x01 + <byte>
		minSigLen = 8

		// maxSigLen is the maximum length of a DER encoded signature and is
		// when both R and S are 33 bytes each.  It is 33 bytes because a
		// 256-bit integer requires 32 bytes and an additional leading null
		// byte might be required if the high bit is set in the value.
		//
		// 0x30 + <1-byte> + 0x02 + 0x21 + <33 bytes> + 0x2 + 0x21 + <33 bytes>
		maxSigLen = 72

		// sequenceOffset is the byte offset within the signature of the
		// expected ASN.1 sequence identifier.
		sequenceOffset = 0

		// dataLenOffset is the byte offset within the signature of the
		// expected total length of all remaining data in the signature.
		dataLenOffset = 1

		// rTypeOffset is the byte offset within the signature of the ASN.1
		// identifier for R and is expected to indicate an ASN.1 integer.
		rTypeOffset = 2

		// rLenOffset is the byte offset within the signature of the length of
		// R.
		rLenOffset = 3

		// rOffset is the byte offset within the signature of R.
		rOffset = 4
	)

	// The signature must adhere to the minimum and maximum allowed length.
	sigLen := len(sig)
	if sigLen < minSigLen {
		str := fmt.Sprintf("malformed signature: too short: %d < %d", sigLen,
			minSigLen)
		return nil, signatureError(ErrSigTooShort, str)
	}
	if sigLen > maxSigLen {
		str := fmt.Sprintf("malformed signature: too long: %d > %d", sigLen,
			maxSigLen)
		return nil, signatureError(ErrSigTooLong, str)
	}

	// The signature must start with the ASN.1 sequence identifier.
	if sig[sequenceOffset] != asn1SequenceID {
		str := fmt.Sprintf("malformed signature: format has wrong type: %#x",
			sig[sequenceOffset])
		return nil, signatureError(ErrSigInvalidSeqID, str)
	}

	// The signature must indicate the correct amount of data for all elements
	// related to R and S.
	if int(sig[dataLenOffset]) != sigLen-2 {
		str := fmt.Sprintf("malformed signature: bad length: %d != %d",
			sig[dataLenOffset], sigLen-2)
		return nil, signatureError(ErrSigInvalidDataLen, str)
	}

	// Calculate the offsets of the elements related to S and ensure S is
	// inside the signature.
	//
	// rLen specifies the length of the big-endian encoded number which
	// represents the R value of the signature.
	//
	// sTypeOffset is the offset of the ASN.1 identifier for S and, like its R
	// counterpart, is expected to indicate an ASN.1 integer.
	//
	// sLenOffset and sOffset are the byte offsets within the signature of the
	// length of S and S itself, respectively.
	rLen := int(sig[rLenOffset])
	sTypeOffset := rOffset + rLen
	sLenOffset := sTypeOffset + 1
	if sTypeOffset >= sigLen {
		str := "malformed signature: S type indicator missing"
		return nil, signatureError(ErrSigMissingSTypeID, str)
	}
	if sLenOffset >= sigLen {
		str := "malformed signature: S length missing"
		return nil, signatureError(ErrSigMissingSLen, str)
	}

	// The lengths of R and S must match the overall length of the signature.
	//
	// sLen specifies the length of the big-endian encoded number which
	// represents the S value of the signature.
	sOffset := sLenOffset + 1
	sLen := int(sig[sLenOffset])
	if sOffset+sLen != sigLen {
		str := "malformed signature: invalid S length"
		return nil, signatureError(ErrSigInvalidSLen, str)
	}

	// R elements must be ASN.1 integers.
	if sig[rTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: R integer marker: %#x != %#x",
			sig[rTypeOffset], asn1IntegerID)
		return nil, signatureError(ErrSigInvalidRIntID, str)
	}

	// Zero-length integers are not allowed for R.
	if rLen == 0 {
		str := "malformed signature: R length is zero"
		return nil, signatureError(ErrSigZeroRLen, str)
	}

	// R must not be negative.
	if sig[rOffset]&0x80 != 0 {
		str := "malformed signature: R is negative"
		return nil, signatureError(ErrSigNegativeR, str)
	}

	// Null bytes at the start of R are not allowed, unless R would otherwise
	// be interpreted as a negative number.
	if rLen > 1 && sig[rOffset] == 0x00 && sig[rOffset+1]&0x80 == 0 {
		str := "malformed signature: R value has too much padding"
		return nil, signatureError(ErrSigTooMuchRPadding, str)
	}

	// S elements must be ASN.1 integers.
	if sig[sTypeOffset] != asn1IntegerID {
		str := fmt.Sprintf("malformed signature: S integer marker: %#x != %#x",
			sig[sTypeOffset], asn1IntegerID)
		return nil, signatureError(ErrSigInvalidSIntID, str)
	}

	// Zero-length integers are not allowed for S.
	if sLen == 0 {
		str := "malformed signature: S length is zero"
		return nil, signatureError(ErrSigZeroSLen, str)
	}

	// S must not be negative.
	if sig[sOffset]&0x80 != 0 {
		str := "malformed signature: S is negative"
		return nil, signatureError(ErrSigNegativeS, str)
	}

	// Null bytes at the start of S are not allowed, unless S would otherwise
	// be interpreted as a negative number.
	if sLen > 1 && sig[sOffset] == 0x00 && sig[sOffset+1]&0x80 == 0 {
		str := "malformed signature: S value has too much padding"
		return nil, signatureError(ErrSigTooMuchSPadding, str)
	}

	// The signature is validly encoded per DER at this point, however,
	// enforce additional restrictions to ensure R and S are in the range
	// [1, N-1] since valid ECDSA signatures are required to be in that range
	// per spec.
	r := new(big.Int).SetBytes(sig[rOffset : rOffset+rLen])
	if r.Cmp(curveParams.N) >= 0 {
		str := "invalid signature: R >= group order"
		return nil, signatureError(ErrSigRTooBig, str)
	}
	if r.Sign() == 0 {
		str := "invalid signature: R is 0"
		return nil, signatureError(ErrSigRIsZero, str)
	}
	s := new(big.Int).SetBytes(sig[sOffset : sOffset+sLen])
	if s.Cmp(curveParams.N) >= 0 {
		str := "invalid signature: S >= group order"
		return nil, signatureError(ErrSigSTooBig, str)
	}
	if s.Sign() == 0 {
		str := "invalid signature: S is 0"
		return nil, signatureError(ErrSigSIsZero, str)
	}

	return NewSignature(r, s), nil
}
