// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// References:
//   [SEC1]: Elliptic Curve Cryptography (May 31, 2009, Version 2.0)
//     https://www.secg.org/sec1-v2.pdf
//
//   [SEC2]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf
//
//   [ANSI X9.62-1998]: Public Key Cryptography For The Financial Services
//     Industry: The Elliptic Curve Digital Signature Algorithm (ECDSA)

const (
	// PubKeyBytesLenRaw is the length of a serialized raw public key, which
	// consists of the 32-byte big-endian x and y coordinates without any
	// format prefix.
	PubKeyBytesLenRaw = 64

	// PubKeyBytesLenCompressed is the length of a serialized compressed
	// public key.
	PubKeyBytesLenCompressed = 33

	// PubKeyBytesLenUncompressed is the length of a serialized uncompressed
	// public key.
	PubKeyBytesLenUncompressed = 65

	// IdentifierLen is the length of an account identifier derived from a
	// public key.
	IdentifierLen = 20
)

const (
	// pubKeyFormatCompressedEven is the identifier prefix byte for a public
	// key whose Y coordinate is even when serialized in the compressed
	// format per section 2.3.4 of [SEC1].
	pubKeyFormatCompressedEven byte = 0x02

	// pubKeyFormatCompressedOdd is the identifier prefix byte for a public
	// key whose Y coordinate is odd when serialized in the compressed format
	// per section 2.3.4 of [SEC1].
	pubKeyFormatCompressedOdd byte = 0x03

	// pubKeyFormatUncompressed is the identifier prefix byte for a public key
	// when serialized according in the uncompressed format per section 2.3.3
	// of [SEC1].
	pubKeyFormatUncompressed byte = 0x04

	// pubKeyFormatHybridEven is the identifier prefix byte for a public key
	// whose Y coordinate is even when serialized according to the hybrid
	// format per section 4.3.6 of [ANSI X9.62-1998].
	//
	// NOTE: This format makes little sense in practice and therefore this
	// package will not produce public keys serialized in this format.
	// However, it will parse them since they exist in the wild.
	pubKeyFormatHybridEven byte = 0x06

	// pubKeyFormatHybridOdd is the identifier prefix byte for a public key
	// whose Y coordinate is odd when serialized according to the hybrid
	// format per section 4.3.6 of [ANSI X9.62-1998].
	pubKeyFormatHybridOdd byte = 0x07
)

// PublicKey provides facilities for working with secp256k1 public keys within
// this package and includes functionality such as serializing and parsing
// them as well as computing an associated account identifier.
type PublicKey struct {
	x big.Int
	y big.Int
}

// NewPublicKey instantiates a new public key with the given x and y
// coordinates.  The coordinates are copied.
//
// It should be noted that, unlike ParsePubKey, since this accepts arbitrary
// coordinates, it allows creation of public keys that are not valid points on
// the secp256k1 curve.  The IsOnCurve method of the returned instance can be
// used to determine validity.
func NewPublicKey(x, y *big.Int) *PublicKey {
	var pubKey PublicKey
	pubKey.x.Set(x)
	pubKey.y.Set(y)
	return &pubKey
}

// ParsePubKey parses a serialized secp256k1 public key into a PublicKey
// instance and ensures it is valid since it requires it to be on the curve.
//
// It supports the following public key formats:
//
//   - Compressed (33 bytes): <format byte = 0x02/0x03><32-byte X coordinate>
//   - Uncompressed (65 bytes): <format byte = 0x04><32-byte X><32-byte Y>
//   - Hybrid (65 bytes): <format byte = 0x06/0x07><32-byte X><32-byte Y>
//
// NOTE: The hybrid format makes little sense in practice an therefore this
// package will not produce public keys serialized in this format.  However,
// this function will properly parse them since they exist in the wild.
func ParsePubKey(serialized []byte) (*PublicKey, error) {
	var x, y big.Int
	switch len(serialized) {
	case PubKeyBytesLenUncompressed:
		// Reject unsupported public key formats for the given length.
		format := serialized[0]
		switch format {
		case pubKeyFormatUncompressed:
		case pubKeyFormatHybridEven, pubKeyFormatHybridOdd:
		default:
			str := fmt.Sprintf("invalid public key: unsupported format: %x",
				format)
			return nil, makeError(ErrPubKeyInvalidFormat, str)
		}

		// Parse the x and y coordinates while ensuring that they are in the
		// allowed range.
		x.SetBytes(serialized[1:33])
		if x.Cmp(curveParams.P) >= 0 {
			str := fmt.Sprintf("invalid public key: x >= field prime: %x", &x)
			return nil, makeError(ErrPubKeyXTooBig, str)
		}
		y.SetBytes(serialized[33:])
		if y.Cmp(curveParams.P) >= 0 {
			str := fmt.Sprintf("invalid public key: y >= field prime: %x", &y)
			return nil, makeError(ErrPubKeyYTooBig, str)
		}

		// Ensure the oddness of the y coordinate matches the specified format
		// for hybrid public keys.
		if format == pubKeyFormatHybridEven || format == pubKeyFormatHybridOdd {
			wantOddY := format == pubKeyFormatHybridOdd
			if wantOddY != (y.Bit(0) == 1) {
				str := fmt.Sprintf("invalid public key: y oddness does not "+
					"match specified value of %v", wantOddY)
				return nil, makeError(ErrPubKeyMismatchedOddness, str)
			}
		}

		// Reject public keys that are not on the secp256k1 curve.
		pt := MakePoint(&x, &y)
		if pt.IsZero() || !pt.IsOnCurve() {
			str := fmt.Sprintf("invalid public key: [%x,%x] not on secp256k1 "+
				"curve", &x, &y)
			return nil, makeError(ErrPubKeyNotOnCurve, str)
		}

	case PubKeyBytesLenCompressed:
		// Reject unsupported public key formats for the given length.
		format := serialized[0]
		switch format {
		case pubKeyFormatCompressedEven, pubKeyFormatCompressedOdd:
		default:
			str := fmt.Sprintf("invalid public key: unsupported format: %x",
				format)
			return nil, makeError(ErrPubKeyInvalidFormat, str)
		}

		// Parse the x coordinate while ensuring that it is in the allowed
		// range.
		x.SetBytes(serialized[1:])
		if x.Cmp(curveParams.P) >= 0 {
			str := fmt.Sprintf("invalid public key: x >= field prime: %x", &x)
			return nil, makeError(ErrPubKeyXTooBig, str)
		}

		// Attempt to calculate the y coordinate for the given x coordinate
		// such that the result pair is a point on the secp256k1 curve and the
		// solution with desired oddness is chosen.
		wantOddY := format == pubKeyFormatCompressedOdd
		yVal, valid := decompressY(&x, wantOddY)
		if !valid {
			str := fmt.Sprintf("invalid public key: x coordinate %x is not on "+
				"the secp256k1 curve", &x)
			return nil, makeError(ErrPubKeyNotOnCurve, str)
		}
		y.Set(yVal)

	default:
		str := fmt.Sprintf("malformed public key: invalid length: %d",
			len(serialized))
		return nil, makeError(ErrPubKeyInvalidLen, str)
	}

	return NewPublicKey(&x, &y), nil
}

// ParseRawPubKey parses a public key serialized as the raw concatenation of
// the 32-byte big-endian x and y coordinates and ensures the result is a
// valid point on the secp256k1 curve.
func ParseRawPubKey(serialized []byte) (*PublicKey, error) {
	if len(serialized) != PubKeyBytesLenRaw {
		str := fmt.Sprintf("malformed public key: invalid length: %d",
			len(serialized))
		return nil, makeError(ErrPubKeyInvalidLen, str)
	}

	var x, y big.Int
	x.SetBytes(serialized[:32])
	if x.Cmp(curveParams.P) >= 0 {
		str := fmt.Sprintf("invalid public key: x >= field prime: %x", &x)
		return nil, makeError(ErrPubKeyXTooBig, str)
	}
	y.SetBytes(serialized[32:])
	if y.Cmp(curveParams.P) >= 0 {
		str := fmt.Sprintf("invalid public key: y >= field prime: %x", &y)
		return nil, makeError(ErrPubKeyYTooBig, str)
	}

	pt := MakePoint(&x, &y)
	if pt.IsZero() || !pt.IsOnCurve() {
		str := fmt.Sprintf("invalid public key: [%x,%x] not on secp256k1 "+
			"curve", &x, &y)
		return nil, makeError(ErrPubKeyNotOnCurve, str)
	}
	return NewPublicKey(&x, &y), nil
}

// X returns the x coordinate of the public key.
func (p *PublicKey) X() *big.Int {
	return &p.x
}

// Y returns the y coordinate of the public key.
func (p *PublicKey) Y() *big.Int {
	return &p.y
}

// SerializeRaw serializes a public key in the 64-byte raw format which
// consists of the 32-byte big-endian x and y coordinates without a format
// prefix.
func (p *PublicKey) SerializeRaw() []byte {
	var serialized [PubKeyBytesLenRaw]byte
	p.x.FillBytes(serialized[:32])
	p.y.FillBytes(serialized[32:])
	return serialized[:]
}

// SerializeUncompressed serializes a public key in the 65-byte uncompressed
// format.
func (p *PublicKey) SerializeUncompressed() []byte {
	// 0x04 || 32-byte x coordinate || 32-byte y coordinate
	var serialized [PubKeyBytesLenUncompressed]byte
	serialized[0] = pubKeyFormatUncompressed
	p.x.FillBytes(serialized[1:33])
	p.y.FillBytes(serialized[33:])
	return serialized[:]
}

// SerializeCompressed serializes a public key in the 33-byte compressed
// format.
func (p *PublicKey) SerializeCompressed() []byte {
	return serializeCompressed(&p.x, &p.y)
}

// serializeCompressed returns the 33-byte compressed serialization for the
// affine coordinate pair (x, y).
func serializeCompressed(x, y *big.Int) []byte {
	// (0x02 or 0x03 depending on oddness) || 32-byte x coordinate
	format := pubKeyFormatCompressedEven
	if y.Bit(0) == 1 {
		format = pubKeyFormatCompressedOdd
	}
	var serialized [PubKeyBytesLenCompressed]byte
	serialized[0] = format
	x.FillBytes(serialized[1:])
	return serialized[:]
}

// IsEqual compares this public key instance to the one passed, returning true
// if both public keys are equivalent.  A public key is equivalent to another,
// if they both have the same X and Y coordinates.
func (p *PublicKey) IsEqual(otherPubKey *PublicKey) bool {
	return p.x.Cmp(&otherPubKey.x) == 0 && p.y.Cmp(&otherPubKey.y) == 0
}

// IsOnCurve returns whether or not the public key is a valid point on the
// secp256k1 curve.  Note that the zero coordinate pair is not a valid public
// key even though it would satisfy nothing here since it is rejected
// explicitly as the placeholder value.
func (p *PublicKey) IsOnCurve() bool {
	pt := MakePoint(&p.x, &p.y)
	return !pt.IsZero() && pt.IsOnCurve()
}

// AsJacobian converts the public key into a Jacobian point with Z=1 and
// stores the result in the provided result param.
func (p *PublicKey) AsJacobian(result *JacobianPoint) {
	result.X.Set(&p.x)
	result.Y.Set(&p.y)
	result.Z.SetInt64(1)
}

// AsPoint returns the public key as an affine point.
func (p *PublicKey) AsPoint() Point {
	return MakePoint(&p.x, &p.y)
}

// ToECDSA returns the public key as a crypto/ecdsa public key on the S256
// curve.
func (p *PublicKey) ToECDSA() *ecdsa.PublicKey {
	return &ecdsa.PublicKey{
		Curve: S256(),
		X:     new(big.Int).Set(&p.x),
		Y:     new(big.Int).Set(&p.y),
	}
}

// Identifier returns the 20-byte account identifier associated with the
// public key.  It is derived by hashing the raw serialization of the point
// with Keccak-256 and keeping the final 20 bytes, which is the usual
// hash-derived address construction for account-based systems.
func (p *PublicKey) Identifier() [IdentifierLen]byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(p.SerializeRaw())
	digest := hasher.Sum(nil)

	var id [IdentifierLen]byte
	copy(id[:], digest[len(digest)-IdentifierLen:])
	return id
}
