// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"crypto/ecdsa"
	"errors"
	"io"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

// errReader is an io.Reader that always fails, for exercising entropy failure
// paths.
type errReader struct{}

func (errReader) Read(p []byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

// TestGeneratePrivateKey ensures randomly generated private keys are valid
// scalars with a usable public key.
func TestGeneratePrivateKey(t *testing.T) {
	privKey, err := GeneratePrivateKey()
	if err != nil {
		t.Fatalf("failed to generate private key: %v", err)
	}
	if !privKey.IsValid() {
		t.Fatal("generated private key is invalid")
	}

	pubKey, err := privKey.PubKey()
	if err != nil {
		t.Fatalf("failed to derive pubkey: %v", err)
	}
	if !pubKey.IsOnCurve() {
		t.Fatal("derived pubkey is not on the curve")
	}
}

// TestGeneratePrivateKeyFromRand ensures generation from a caller-provided
// entropy source is deterministic for a deterministic source and surfaces
// read failures with the expected error kind.
func TestGeneratePrivateKeyFromRand(t *testing.T) {
	privKey, err := GeneratePrivateKeyFromRand(bytes.NewReader(bytes.Repeat(
		[]byte{0x5a}, 32)))
	if err != nil {
		t.Fatalf("failed to generate private key: %v", err)
	}
	privKey2, err := GeneratePrivateKeyFromRand(bytes.NewReader(bytes.Repeat(
		[]byte{0x5a}, 32)))
	if err != nil {
		t.Fatalf("failed to generate private key: %v", err)
	}
	if !bytes.Equal(privKey.Serialize(), privKey2.Serialize()) {
		t.Fatal("same entropy produced different keys")
	}

	_, err = GeneratePrivateKeyFromRand(errReader{})
	if !errors.Is(err, ErrRandomnessUnavailable) {
		t.Fatalf("mismatched error -- got %v, want %v", err,
			ErrRandomnessUnavailable)
	}

	// An exhausted source also surfaces the entropy failure.
	_, err = GeneratePrivateKeyFromRand(bytes.NewReader(nil))
	if !errors.Is(err, ErrRandomnessUnavailable) {
		t.Fatalf("mismatched error -- got %v, want %v", err,
			ErrRandomnessUnavailable)
	}
}

// TestPrivKeyFromBytes ensures private keys instantiated from raw bytes are
// reduced into the group order as documented.
func TestPrivKeyFromBytes(t *testing.T) {
	tests := []struct {
		name string
		key  string // hex encoded input bytes
		want string // hex encoded expected scalar
	}{{
		name: "in range",
		key:  "0000000000000000000000000000000000000000000000000000000000000001",
		want: "0000000000000000000000000000000000000000000000000000000000000001",
	}, {
		name: "group order reduces to zero",
		key:  "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141",
		want: "0000000000000000000000000000000000000000000000000000000000000000",
	}, {
		name: "group order + 1 reduces to 1",
		key:  "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364142",
		want: "0000000000000000000000000000000000000000000000000000000000000001",
	}, {
		name: "short input",
		key:  "6e",
		want: "000000000000000000000000000000000000000000000000000000000000006e",
	}}

	for _, test := range tests {
		privKey := PrivKeyFromBytes(hexToBytes(test.key))
		if !bytes.Equal(privKey.Serialize(), hexToBytes(test.want)) {
			t.Errorf("%s: mismatched key -- got %x, want %s", test.name,
				privKey.Serialize(), test.want)
		}
	}
}

// TestPrivateKeyIsValid ensures the private key range check accepts exactly
// the scalars in [1, N-1].
func TestPrivateKeyIsValid(t *testing.T) {
	tests := []struct {
		name string
		key  *big.Int
		want bool
	}{{
		name: "zero",
		key:  new(big.Int),
		want: false,
	}, {
		name: "one",
		key:  big.NewInt(1),
		want: true,
	}, {
		name: "group order - 1",
		key:  new(big.Int).Sub(curveParams.N, big.NewInt(1)),
		want: true,
	}, {
		name: "group order",
		key:  new(big.Int).Set(curveParams.N),
		want: false,
	}}

	for _, test := range tests {
		privKey := NewPrivateKey(test.key)
		if got := privKey.IsValid(); got != test.want {
			t.Errorf("%s: mismatched validity -- got %v, want %v", test.name,
				got, test.want)
		}
		if _, err := privKey.PubKey(); (err == nil) != test.want {
			t.Errorf("%s: unexpected pubkey error state", test.name)
		}
	}
}

// TestPrivateKeyPubKeyOracle ensures the derived public key matches an
// independent implementation for random keys.
func TestPrivateKeyPubKeyOracle(t *testing.T) {
	rng := newTestRand(t)
	for i := 0; i < 10; i++ {
		privKey := NewPrivateKey(randScalar(t, rng))
		pubKey, err := privKey.PubKey()
		if err != nil {
			t.Fatalf("#%d: failed to derive pubkey: %v", i, err)
		}

		_, refPub := btcec.PrivKeyFromBytes(privKey.Serialize())
		if !bytes.Equal(pubKey.SerializeCompressed(),
			refPub.SerializeCompressed()) {

			t.Fatalf("#%d: mismatched pubkey -- got %x, want %x", i,
				pubKey.SerializeCompressed(), refPub.SerializeCompressed())
		}
	}
}

// TestPrivateKeyToECDSA ensures conversion to the stdlib type carries the
// scalar and both public key coordinates.
func TestPrivateKeyToECDSA(t *testing.T) {
	rng := newTestRand(t)
	privKey := NewPrivateKey(randScalar(t, rng))
	pubKey, err := privKey.PubKey()
	if err != nil {
		t.Fatalf("failed to derive pubkey: %v", err)
	}

	ecdsaKey := privKey.ToECDSA()
	if ecdsaKey.D.Cmp(&privKey.Key) != 0 {
		t.Error("mismatched scalar")
	}
	if ecdsaKey.Curve != S256() {
		t.Error("mismatched curve")
	}
	if ecdsaKey.X.Cmp(pubKey.X()) != 0 || ecdsaKey.Y.Cmp(pubKey.Y()) != 0 {
		t.Error("mismatched public key coordinates")
	}
}

// TestPrivateKeyZero ensures zeroing a private key clears the scalar.
func TestPrivateKeyZero(t *testing.T) {
	rng := newTestRand(t)
	privKey := NewPrivateKey(randScalar(t, rng))
	privKey.Zero()
	if privKey.Key.Sign() != 0 {
		t.Error("key scalar not cleared")
	}
	if privKey.IsValid() {
		t.Error("zeroed key reports valid")
	}
}

// TestCryptoSigner ensures the stdlib crypto.Signer implementation produces
// DER signatures that verify under the corresponding public key.
func TestCryptoSigner(t *testing.T) {
	rng := newTestRand(t)
	privKey := NewPrivateKey(randScalar(t, rng))
	pubKey, err := privKey.PubKey()
	if err != nil {
		t.Fatalf("failed to derive pubkey: %v", err)
	}

	var digest [32]byte
	if _, err := rng.Read(digest[:]); err != nil {
		t.Fatalf("failed to read random digest: %v", err)
	}

	serialized, err := privKey.Sign(nil, digest[:], nil)
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}
	sig, err := ParseDERSignature(serialized)
	if err != nil {
		t.Fatalf("failed to parse produced signature: %v", err)
	}
	valid, err := sig.Verify(digest[:], pubKey)
	if err != nil {
		t.Fatalf("failed to verify: %v", err)
	}
	if !valid {
		t.Error("signature does not verify")
	}

	ecdsaPub, ok := privKey.Public().(*ecdsa.PublicKey)
	if !ok {
		t.Fatalf("unexpected public key type %T", privKey.Public())
	}
	if ecdsaPub.X.Cmp(pubKey.X()) != 0 || ecdsaPub.Y.Cmp(pubKey.Y()) != 0 {
		t.Error("mismatched signer public key")
	}
}
