// Copyright (c) 2020 The Decred developers
// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrPrivateKeyInvalid is returned when a private key scalar is zero or
	// greater than or equal to the group order.
	ErrPrivateKeyInvalid = ErrorKind("ErrPrivateKeyInvalid")

	// ErrPubKeyInvalidLen is returned when a public key is not one of the
	// allowed serialization lengths.
	ErrPubKeyInvalidLen = ErrorKind("ErrPubKeyInvalidLen")

	// ErrPubKeyInvalidFormat is returned when a public key does not have one
	// of the supported serialization formats.
	ErrPubKeyInvalidFormat = ErrorKind("ErrPubKeyInvalidFormat")

	// ErrPubKeyXTooBig is returned when a public key has an x coordinate that
	// is greater than or equal to the field prime.
	ErrPubKeyXTooBig = ErrorKind("ErrPubKeyXTooBig")

	// ErrPubKeyYTooBig is returned when a public key has a y coordinate that
	// is greater than or equal to the field prime.
	ErrPubKeyYTooBig = ErrorKind("ErrPubKeyYTooBig")

	// ErrPubKeyNotOnCurve is returned when a public key is not a point on the
	// secp256k1 curve.
	ErrPubKeyNotOnCurve = ErrorKind("ErrPubKeyNotOnCurve")

	// ErrPubKeyMismatchedOddness is returned when a hybrid public key has an
	// oddness indicator that does not match the oddness of the provided y
	// coordinate.
	ErrPubKeyMismatchedOddness = ErrorKind("ErrPubKeyMismatchedOddness")

	// ErrPubKeyAtInfinity is returned when an operation would produce the
	// point at infinity where an actual public key is required, such as
	// recovering a public key from a signature.
	ErrPubKeyAtInfinity = ErrorKind("ErrPubKeyAtInfinity")

	// ErrNotAFieldElement is returned when a modular arithmetic operation is
	// given an operand that is negative or not reduced modulo the relevant
	// modulus.
	ErrNotAFieldElement = ErrorKind("ErrNotAFieldElement")

	// ErrUndefinedInverse is returned when a modular inverse does not exist
	// for the given operand, such as inverting zero.
	ErrUndefinedInverse = ErrorKind("ErrUndefinedInverse")

	// ErrDigestZero is returned when signing, verifying, or recovering with a
	// message digest consisting of all zero bytes.
	ErrDigestZero = ErrorKind("ErrDigestZero")

	// ErrRandomnessUnavailable is returned when generating a private key and
	// the source of cryptographically secure randomness fails.
	ErrRandomnessUnavailable = ErrorKind("ErrRandomnessUnavailable")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to public key cryptography using a
// sec256k1 curve. It has full support for errors.Is and errors.As, so the
// caller can ascertain the specific reason for the error by checking
// the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
