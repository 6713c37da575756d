package hdkeys

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/veilchain/secp256k1"
)

// testSeed returns a deterministic seed for derivation tests.
func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	if err != nil {
		t.Fatalf("failed to decode seed: %s", err)
	}
	return seed
}

func TestFromSeed(t *testing.T) {
	master, err := FromSeed(testSeed(t), []byte("Bitcoin seed"))
	if err != nil {
		t.Fatalf("failed to derive master key: %s", err)
	}

	if !master.IsPrivate() {
		t.Fatal("master key is not private")
	}
	if master.Depth != 0 {
		t.Errorf("master depth: got %d, want 0", master.Depth)
	}
	if master.ChildNumber != 0 {
		t.Errorf("master child number: got %d, want 0", master.ChildNumber)
	}
	if len(master.KeyData) != 32 {
		t.Errorf("master key data length: got %d, want 32", len(master.KeyData))
	}
	if len(master.ChainCode) != 32 {
		t.Errorf("master chain code length: got %d, want 32", len(master.ChainCode))
	}

	// BIP32 test vector 1 master key.
	want := "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"
	if got := master.String(); got != want {
		t.Errorf("master key mismatch: got %s, want %s", got, want)
	}
}

func TestChildDerivation(t *testing.T) {
	master, err := FromSeed(testSeed(t), []byte("Bitcoin seed"))
	if err != nil {
		t.Fatalf("failed to derive master key: %s", err)
	}

	tests := []struct {
		name string
		path []uint32
		want string
	}{{
		name: "hardened child m/0'",
		path: []uint32{HardenedBit},
		want: "xprv9uHRZZhk6KAJC1avXpDAp4MDc3sQKNxDiPvvkX8Br5ngLNv1TxvUxt4cV1rGL5hj6KCesnDYUhd7oWgT11eZG7XnxHrnYeSvkzY7d2bhkJ7",
	}, {
		name: "non-hardened chain m/0'/1",
		path: []uint32{HardenedBit, 1},
		want: "xprv9wTYmMFdV23N2TdNG573QoEsfRrWKQgWeibmLntzniatZvR9BmLnvSxqu53Kw1UmYPxLgboyZQaXwTCg8MSY3H2EU4pWcQDnRnrVA1xe8fs",
	}}

	for _, test := range tests {
		child, err := master.Derive(test.path)
		if err != nil {
			t.Errorf("%s: derive failed: %s", test.name, err)
			continue
		}
		if got := child.String(); got != test.want {
			t.Errorf("%s: got %s, want %s", test.name, got, test.want)
		}
		if child.Depth != uint8(len(test.path)) {
			t.Errorf("%s: depth: got %d, want %d", test.name, child.Depth,
				len(test.path))
		}
	}
}

// TestPublicDerivationCommutes ensures that converting to a public key and
// then deriving a non-hardened child produces the same key as deriving the
// child first and then converting.
func TestPublicDerivationCommutes(t *testing.T) {
	master, err := FromSeed(testSeed(t), []byte("Bitcoin seed"))
	if err != nil {
		t.Fatalf("failed to derive master key: %s", err)
	}

	path := []uint32{0, 5, 12}

	privChild, err := master.Derive(path)
	if err != nil {
		t.Fatalf("private derivation failed: %s", err)
	}
	pubOfPriv, err := privChild.Public()
	if err != nil {
		t.Fatalf("failed to neuter child: %s", err)
	}

	masterPub, err := master.Public()
	if err != nil {
		t.Fatalf("failed to neuter master: %s", err)
	}
	pubChild, err := masterPub.Derive(path)
	if err != nil {
		t.Fatalf("public derivation failed: %s", err)
	}

	if pubOfPriv.String() != pubChild.String() {
		t.Errorf("derivation does not commute: %s != %s", pubOfPriv, pubChild)
	}
}

func TestHardenedFromPublic(t *testing.T) {
	master, err := FromSeed(testSeed(t), []byte("Bitcoin seed"))
	if err != nil {
		t.Fatalf("failed to derive master key: %s", err)
	}
	masterPub, err := master.Public()
	if err != nil {
		t.Fatalf("failed to neuter master: %s", err)
	}

	if _, err := masterPub.Child(HardenedBit); err != ErrDerivingHardenedFromPublic {
		t.Errorf("unexpected error: got %v, want %v", err,
			ErrDerivingHardenedFromPublic)
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	master, err := FromSeed(testSeed(t), []byte("Bitcoin seed"))
	if err != nil {
		t.Fatalf("failed to derive master key: %s", err)
	}
	child, err := master.Derive([]uint32{HardenedBit + 44, 0, 1})
	if err != nil {
		t.Fatalf("failed to derive child: %s", err)
	}
	childPub, err := child.Public()
	if err != nil {
		t.Fatalf("failed to neuter child: %s", err)
	}

	for _, key := range []*ExtendedKey{master, child, childPub} {
		decoded, err := FromString(key.String())
		if err != nil {
			t.Errorf("failed to decode %s: %s", key, err)
			continue
		}
		if decoded.String() != key.String() {
			t.Errorf("round trip mismatch: got %s, want %s", decoded, key)
		}
		if decoded.IsPrivate() != key.IsPrivate() {
			t.Errorf("round trip privacy mismatch for %s", key)
		}
		if !bytes.Equal(decoded.ChainCode, key.ChainCode) {
			t.Errorf("round trip chain code mismatch for %s", key)
		}
	}
}

func TestUnmarshalBadChecksum(t *testing.T) {
	master, err := FromSeed(testSeed(t), []byte("Bitcoin seed"))
	if err != nil {
		t.Fatalf("failed to derive master key: %s", err)
	}
	serialized, err := master.MarshalBinary()
	if err != nil {
		t.Fatalf("failed to serialize: %s", err)
	}
	serialized[len(serialized)-1] ^= 0x01

	var decoded ExtendedKey
	if err := decoded.UnmarshalBinary(serialized); err != ErrBadChecksum {
		t.Errorf("unexpected error: got %v, want %v", err, ErrBadChecksum)
	}

	if err := decoded.UnmarshalBinary(serialized[:10]); err != ErrInvalidKeyLen {
		t.Errorf("unexpected error: got %v, want %v", err, ErrInvalidKeyLen)
	}
}

// TestDeriveWithIL ensures the accumulated tweak relates the starting and
// derived public keys by tweak*G.
func TestDeriveWithIL(t *testing.T) {
	master, err := FromSeed(testSeed(t), []byte("Bitcoin seed"))
	if err != nil {
		t.Fatalf("failed to derive master key: %s", err)
	}
	masterPub, err := master.Public()
	if err != nil {
		t.Fatalf("failed to neuter master: %s", err)
	}

	path := []uint32{1, 2, 3, 4}
	tweak, derived, err := masterPub.DeriveWithIL(path)
	if err != nil {
		t.Fatalf("failed to derive with IL: %s", err)
	}

	// The same path must produce the same key with or without the tweak.
	plain, err := masterPub.Derive(path)
	if err != nil {
		t.Fatalf("failed to derive: %s", err)
	}
	if derived.String() != plain.String() {
		t.Errorf("derived key mismatch: got %s, want %s", derived, plain)
	}

	// derivedPub = masterPub + tweak*G.
	startKey, err := secp256k1.ParsePubKey(masterPub.KeyData)
	if err != nil {
		t.Fatalf("failed to parse start key: %s", err)
	}
	tweakBytes := make([]byte, 32)
	tweak.FillBytes(tweakBytes)
	tx, ty := secp256k1.S256().ScalarBaseMult(tweakBytes)
	wantX, wantY := secp256k1.S256().Add(startKey.X(), startKey.Y(), tx, ty)
	want := secp256k1.NewPublicKey(wantX, wantY)

	if !bytes.Equal(derived.KeyData, want.SerializeCompressed()) {
		t.Errorf("tweak does not reproduce derived key")
	}

	if tweak.Sign() <= 0 || tweak.Cmp(secp256k1.Params().N) >= 0 {
		t.Errorf("tweak out of range: %v", tweak)
	}
}

func TestImportedKeys(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %s", err)
	}
	chainCode := make([]byte, 32)

	ek, err := FromPrivateKey(priv.ToECDSA(), chainCode)
	if err != nil {
		t.Fatalf("failed to import private key: %s", err)
	}
	if !ek.IsPrivate() {
		t.Fatal("imported key is not private")
	}
	got, err := ek.PrivateKey()
	if err != nil {
		t.Fatalf("failed to extract private key: %s", err)
	}
	if !bytes.Equal(got.Serialize(), priv.Serialize()) {
		t.Error("imported private key mismatch")
	}

	pub, err := priv.PubKey()
	if err != nil {
		t.Fatalf("failed to derive pubkey: %s", err)
	}
	ekPub, err := FromPublicKey(pub.ToECDSA(), chainCode)
	if err != nil {
		t.Fatalf("failed to import public key: %s", err)
	}
	if ekPub.IsPrivate() {
		t.Fatal("imported public key claims to be private")
	}
	if _, err := ekPub.PrivateKey(); err != ErrNotPrivateKey {
		t.Errorf("unexpected error: got %v, want %v", err, ErrNotPrivateKey)
	}

	neutered, err := ek.Public()
	if err != nil {
		t.Fatalf("failed to neuter imported key: %s", err)
	}
	if !bytes.Equal(neutered.KeyData, ekPub.KeyData) {
		t.Error("neutered key does not match imported public key")
	}

	// A truncated chain code must be rejected.
	if _, err := FromPrivateKey(priv.ToECDSA(), chainCode[:16]); err != ErrInvalidKey {
		t.Errorf("unexpected error: got %v, want %v", err, ErrInvalidKey)
	}
}

func TestMaxDepth(t *testing.T) {
	master, err := FromSeed(testSeed(t), []byte("Bitcoin seed"))
	if err != nil {
		t.Fatalf("failed to derive master key: %s", err)
	}
	master.Depth = 0xff

	if _, err := master.Child(0); err != ErrMaxDepthExceeded {
		t.Errorf("unexpected error: got %v, want %v", err, ErrMaxDepthExceeded)
	}
}

// TestDeriveWithILFromImported mirrors deriving from an externally imported
// public key with a null chain code.
func TestDeriveWithILFromImported(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("failed to generate key: %s", err)
	}
	pub, err := priv.PubKey()
	if err != nil {
		t.Fatalf("failed to derive pubkey: %s", err)
	}

	ek, err := FromPublicKey(pub.ToECDSA(), make([]byte, 32))
	if err != nil {
		t.Fatalf("failed to import public key: %s", err)
	}

	tweak, derived, err := ek.DeriveWithIL([]uint32{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("failed to derive: %s", err)
	}

	// Tweaking the private key by the accumulated IL must yield the derived
	// public key.
	tweaked := new(big.Int).Add(&priv.Key, tweak)
	tweaked.Mod(tweaked, secp256k1.Params().N)
	tweakedBytes := make([]byte, 32)
	tweaked.FillBytes(tweakedBytes)
	wantX, wantY := secp256k1.S256().ScalarBaseMult(tweakedBytes)
	want := secp256k1.NewPublicKey(wantX, wantY)

	if !bytes.Equal(derived.KeyData, want.SerializeCompressed()) {
		t.Error("accumulated IL does not reproduce derived key")
	}
}
