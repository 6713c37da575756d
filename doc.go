// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package secp256k1 implements elliptic curve cryptography operations over the
secp256k1 curve in pure Go, along with data structures and functions for
working with public and private secp256k1 keys.  See
https://www.secg.org/sec2-v2.pdf for details on the standard.

An overview of the features provided by this package are as follows:

  - Private key generation, serialization, and parsing
  - Public key generation, serialization and parsing per ANSI X9.62-1998
  - Parses uncompressed, compressed, and hybrid public keys
  - Serializes uncompressed and compressed public keys as well as the raw
    64-byte coordinate form
  - Hash-derived 20-byte account identifiers for public keys
  - Modular arithmetic over the field prime and the group order, including
    modular inverses via the extended Euclidean algorithm and Fermat's little
    theorem
  - Elliptic curve operations in Jacobian projective coordinates
  - Point addition
  - Point doubling
  - Scalar multiplication with an arbitrary point
  - Scalar multiplication with the base point (group generator)
  - Point decompression from a given x coordinate
  - Nonce generation via RFC6979 with support for extra data and version
    information that can be used to prevent nonce reuse between signing
    algorithms

This package also provides data structures and functions necessary to produce
and verify deterministic canonical ECDSA signatures in accordance with RFC6979
and BIP0062, as defined in FIPS 186-3.  Signatures carry a public key recovery
indicator, so the signing public key can be recovered from a signature and
message digest, and verification itself works by recovering the signer and
comparing it to the expected key.  Three serialization formats are supported:
the standard 65-byte format with a trailing recovery byte, a compact 64-byte
format that packs the recovery indicator into the top bit of the S component,
and the stricter Distinguished Encoding Rules (DER) of ISO/IEC 8825-1 with
some additional restrictions specific to secp256k1.

A deterministic Schnorr signature scheme over the same curve is provided as
well.  Schnorr signatures consist of a commitment point and a signature scalar
and use a canonical even-y commitment form, so a signature and its negation
counterpart are never both accepted.

Diffie-Hellman shared secret derivation per RFC 5903 is available for
protocols that need to agree on keys, and the stealth sub package builds a
receiver-unlinkable one-time address scheme on top of it.  The hdkeys sub
package provides hierarchical key derivation in the style of BIP32.

It also provides an implementation of the Go standard library crypto/elliptic
Curve interface via the S256 function so that it may be used with other
packages in the standard library such as crypto/tls, crypto/x509, and
crypto/ecdsa.  However, in the case of ECDSA, it is highly recommended to use
the Sign and Verify functions of this package instead since they are
specialized for secp256k1 and enforce the canonical signature forms described
above.

Finally, a comprehensive suite of tests is provided to provide a high level of
quality assurance.

# Use of secp256k1 in cryptocurrencies

At the time of this writing, the primary public use of this curve is in
account based cryptocurrencies where a hash of the serialized public key is
used as the account identifier.  The Identifier method implements that
derivation.
*/
package secp256k1
