// Package hdkeys implements BIP32-style hierarchical deterministic key
// derivation over the secp256k1 curve.
package hdkeys

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/binary"
	"math/big"

	"github.com/ModChain/base58"
	"github.com/veilchain/secp256k1"
)

const (
	// HardenedBit is the child index bit that marks a derivation as
	// hardened.  Hardened children can only be derived from private keys.
	HardenedBit uint32 = 0x80000000

	// serializedKeyLen is the length of a serialized extended key without
	// the trailing checksum: version (4) || depth (1) || fingerprint (4) ||
	// child num (4) || chain code (32) || key data (33).
	serializedKeyLen = 78
)

type ExtendedKey struct {
	Version     KeyVersion
	Depth       uint8
	Fingerprint [4]byte
	ChildNumber uint32 // ser32(i) for i in xi = xpar/i, with xi the key being serialized. (0x00000000 if master key)
	KeyData     []byte // 32 bytes of private key data or 33 bytes of compressed public key data
	ChainCode   []byte // 32 bytes, the chain code
}

// FromSeed returns a master node derived from the provided seed with the
// given master secret as the HMAC salt.
func FromSeed(seed, masterSecret []byte) (*ExtendedKey, error) {
	key, chainCode, err := hmacCKD(seed, masterSecret)
	if err != nil {
		return nil, err
	}

	res := &ExtendedKey{
		Version:     MainnetPrivate,
		Depth:       0,
		Fingerprint: [4]byte{0, 0, 0, 0},
		ChildNumber: 0,
		KeyData:     key,
		ChainCode:   chainCode,
	}
	return res, nil
}

// FromPrivateKey imports an existing private key together with a chain code
// as a depth zero extended private key.
func FromPrivateKey(priv *ecdsa.PrivateKey, chainCode []byte) (*ExtendedKey, error) {
	if len(chainCode) != 32 {
		return nil, ErrInvalidKey
	}
	keyNum := priv.D
	if keyNum.Sign() == 0 || keyNum.Cmp(secp256k1.Params().N) >= 0 {
		return nil, ErrInvalidKey
	}

	keyData := make([]byte, 32)
	keyNum.FillBytes(keyData)
	return &ExtendedKey{
		Version:   MainnetPrivate,
		KeyData:   keyData,
		ChainCode: append([]byte(nil), chainCode...),
	}, nil
}

// FromPublicKey imports an existing public key together with a chain code as
// a depth zero extended public key.  Only non-hardened children can be
// derived from the result.
func FromPublicKey(pub *ecdsa.PublicKey, chainCode []byte) (*ExtendedKey, error) {
	if len(chainCode) != 32 {
		return nil, ErrInvalidKey
	}
	pubKey := secp256k1.NewPublicKey(pub.X, pub.Y)
	if !pubKey.IsOnCurve() {
		return nil, ErrInvalidKey
	}

	return &ExtendedKey{
		Version:   MainnetPublic,
		KeyData:   pubKey.SerializeCompressed(),
		ChainCode: append([]byte(nil), chainCode...),
	}, nil
}

// FromString decodes an extended key from its base58 string encoding.
func FromString(str string) (*ExtendedKey, error) {
	bin, err := base58.Bitcoin.Decode(str)
	if err != nil {
		return nil, err
	}

	e := &ExtendedKey{}
	return e, e.UnmarshalBinary(bin)
}

func (k *ExtendedKey) IsPrivate() bool {
	return k.Version.IsPrivate()
}

// Child derives extended key at a given index i.
// If parent is private, then derived key is also private. If parent is
// public, then derived is public.
//
// If i >= HardenedBit, then a hardened key is generated.
// You can only generate hardened keys from private parent keys.
// If you try generating a hardened key from a public parent key,
// ErrDerivingHardenedFromPublic is returned.
//
// There are four CKD (child key derivation) scenarios:
// 1) Private extended key -> Hardened child private extended key
// 2) Private extended key -> Non-hardened child private extended key
// 3) Public extended key -> Non-hardened child public extended key
// 4) Public extended key -> Hardened child public extended key (INVALID!)
func (k *ExtendedKey) Child(i uint32) (*ExtendedKey, error) {
	child, _, err := k.childWithIL(i)
	return child, err
}

// childWithIL derives the child at index i and additionally returns the
// intermediate IL tweak scalar produced by the derivation.
func (k *ExtendedKey) childWithIL(i uint32) (*ExtendedKey, *big.Int, error) {
	if k.Depth == 0xff {
		return nil, nil, ErrMaxDepthExceeded
	}

	// A hardened child may not be created from a public extended key
	// (Case #4).
	isChildHardened := i&HardenedBit == HardenedBit
	if !k.IsPrivate() && isChildHardened {
		return nil, nil, ErrDerivingHardenedFromPublic
	}

	keyLen := 33
	seed := make([]byte, keyLen+4)
	if isChildHardened {
		// Case #1: 0x00 || ser256(parentKey) || ser32(i)
		copy(seed[1:], k.KeyData) // 0x00 || ser256(parentKey)
	} else {
		// Case #2 and #3: serP(parentPubKey) || ser32(i)
		copy(seed, k.pubKeyBytes())
	}
	binary.BigEndian.PutUint32(seed[keyLen:], i)

	secretKey, chainCode, err := hmacCKD(seed, k.ChainCode)
	if err != nil {
		return nil, nil, err
	}
	il := new(big.Int).SetBytes(secretKey)

	child := &ExtendedKey{
		ChainCode:   chainCode,
		Depth:       k.Depth + 1,
		ChildNumber: i,
		// The fingerprint for the derived child is the first 4 bytes of the
		// hash of the parent's public key.
	}
	copy(child.Fingerprint[:], rmd160sha256(k.pubKeyBytes()))

	if k.IsPrivate() {
		// Case #1 or #2: childKey = parse256(IL) + parentKey
		parentKey := new(big.Int).SetBytes(k.KeyData)
		childKey := new(big.Int).Add(il, parentKey)
		childKey.Mod(childKey, secp256k1.Params().N)
		if childKey.Sign() == 0 {
			return nil, nil, ErrInvalidKey
		}

		// The key data must always occupy the full 32 bytes even when the
		// value is representable with fewer.  Child derivation hashes a seed
		// of 0x00 || ser256(key) || ser32(i), so an unpadded key would shift
		// within that window and derive a different subtree.
		keyData := make([]byte, 32)
		childKey.FillBytes(keyData)

		child.KeyData = keyData
		child.Version = k.Version
	} else {
		// Case #3: childKey = serP(point(parse256(IL)) + parentKey)

		// Calculate the corresponding intermediate public key for the
		// intermediate private key.
		keyx, keyy := secp256k1.S256().ScalarBaseMult(secretKey)
		if keyx.Sign() == 0 || keyy.Sign() == 0 {
			return nil, nil, ErrInvalidKey
		}

		// Convert the serialized compressed parent public key into X and Y
		// coordinates so it can be added to the intermediate public key.
		pubKey, err := secp256k1.ParsePubKey(k.KeyData)
		if err != nil {
			return nil, nil, err
		}

		// childKey = serP(point(parse256(IL)) + parentKey)
		childX, childY := secp256k1.S256().Add(keyx, keyy, pubKey.X(), pubKey.Y())
		if childX.Sign() == 0 && childY.Sign() == 0 {
			return nil, nil, ErrInvalidKey
		}
		pk := secp256k1.NewPublicKey(childX, childY)
		child.KeyData = pk.SerializeCompressed()
		child.Version = k.Version.ToPublic()
	}
	return child, il, nil
}

// Derive returns a derived child key at a given path
func (k *ExtendedKey) Derive(path []uint32) (*ExtendedKey, error) {
	var err error
	extKey := k
	for _, i := range path {
		extKey, err = extKey.Child(i)
		if err != nil {
			return nil, ErrDerivingChild
		}
	}

	return extKey, nil
}

// DeriveWithIL returns a derived child key at a given path along with the
// accumulated IL tweak for the whole path, which is the sum modulo the group
// order of the per-step tweak scalars.  The derived public key equals the
// starting public key plus tweak*G, so callers can apply the same derivation
// to a key held elsewhere.
func (k *ExtendedKey) DeriveWithIL(path []uint32) (*big.Int, *ExtendedKey, error) {
	tweak := new(big.Int)
	extKey := k
	for _, i := range path {
		child, il, err := extKey.childWithIL(i)
		if err != nil {
			return nil, nil, ErrDerivingChild
		}
		tweak.Add(tweak, il)
		tweak.Mod(tweak, secp256k1.Params().N)
		extKey = child
	}

	return tweak, extKey, nil
}

// Public returns a new extended public key from a give extended private key.
// If the input extended key is already public, it will be returned unaltered.
func (k *ExtendedKey) Public() (*ExtendedKey, error) {
	// Already an extended public key.
	if !k.IsPrivate() {
		return k, nil
	}

	// Convert it to an extended public key.  The key for the new extended
	// key will simply be the pubkey of the current extended private key.
	return &ExtendedKey{
		Version:     k.Version.ToPublic(),
		KeyData:     k.pubKeyBytes(),
		ChainCode:   k.ChainCode,
		Fingerprint: k.Fingerprint,
		Depth:       k.Depth,
		ChildNumber: k.ChildNumber,
	}, nil
}

// MarshalBinary encodes the key in standard format that can be base58 encoded
// for humans
func (k *ExtendedKey) MarshalBinary() ([]byte, error) {
	var childNumBytes [4]byte
	binary.BigEndian.PutUint32(childNumBytes[:], k.ChildNumber)

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)
	serializedBytes := make([]byte, 0, serializedKeyLen+4)
	serializedBytes = append(serializedBytes, k.Version[:]...)
	serializedBytes = append(serializedBytes, k.Depth)
	serializedBytes = append(serializedBytes, k.Fingerprint[:]...)
	serializedBytes = append(serializedBytes, childNumBytes[:]...)
	serializedBytes = append(serializedBytes, k.ChainCode...)
	if k.IsPrivate() {
		serializedBytes = append(serializedBytes, 0x00)
		serializedBytes = paddedAppend(32, serializedBytes, k.KeyData)
	} else {
		serializedBytes = append(serializedBytes, k.pubKeyBytes()...)
	}

	checkSum := doubleSha256(serializedBytes)[:4]
	serializedBytes = append(serializedBytes, checkSum...)
	return serializedBytes, nil
}

func (k *ExtendedKey) String() string {
	bin, _ := k.MarshalBinary()
	return base58.Bitcoin.Encode(bin)
}

// pubKeyBytes returns bytes for the serialized compressed public key
// associated with this extended key.
//
// When the extended key is already a public key, the key is simply returned
// as is since it's already in the correct form.  However, when the extended
// key is a private key, the public key is calculated from the key data.
func (k *ExtendedKey) pubKeyBytes() []byte {
	// Just return the key if it's already an extended public key.
	if !k.IsPrivate() {
		return k.KeyData
	}

	pkx, pky := secp256k1.S256().ScalarBaseMult(k.KeyData)
	pubKey := secp256k1.NewPublicKey(pkx, pky)
	return pubKey.SerializeCompressed()
}

// PrivateKey returns the key data as a secp256k1 private key.  It fails with
// ErrNotPrivateKey when called on an extended public key.
func (k *ExtendedKey) PrivateKey() (*secp256k1.PrivateKey, error) {
	if !k.IsPrivate() {
		return nil, ErrNotPrivateKey
	}
	return secp256k1.PrivKeyFromBytes(k.KeyData), nil
}

// ToECDSA returns the key data as ecdsa.PrivateKey
func (k *ExtendedKey) ToECDSA() *ecdsa.PrivateKey {
	privKey := secp256k1.PrivKeyFromBytes(k.KeyData)
	return privKey.ToECDSA()
}

func (k *ExtendedKey) UnmarshalBinary(data []byte) error {
	if len(data) != serializedKeyLen+4 {
		return ErrInvalidKeyLen
	}

	// The serialized format is:
	//   version (4) || depth (1) || parent fingerprint (4)) ||
	//   child num (4) || chain code (32) || key data (33) || checksum (4)

	// Split the payload and checksum up and ensure the checksum matches.
	payload := data[:len(data)-4]
	checkSum := data[len(data)-4:]
	expectedCheckSum := doubleSha256(payload)[:4]
	if !bytes.Equal(checkSum, expectedCheckSum) {
		return ErrBadChecksum
	}

	// Deserialize each of the payload fields.
	var version KeyVersion
	copy(version[:], payload[:4])
	depth := payload[4:5][0]
	var fingerprint [4]byte
	copy(fingerprint[:], payload[5:9])
	childNumber := binary.BigEndian.Uint32(payload[9:13])
	chainCode := payload[13:45]
	keyData := payload[45:78]

	// The key data is a private key if it starts with 0x00.  Serialized
	// compressed pubkeys either start with 0x02 or 0x03.
	isPrivate := keyData[0] == 0x00
	if isPrivate != version.IsPrivate() {
		return ErrInvalidPrivateFlag
	}

	if isPrivate {
		// Ensure the private key is valid.  It must be within the range
		// of the order of the secp256k1 curve and not be 0.
		keyData = keyData[1:]
		keyNum := new(big.Int).SetBytes(keyData)
		if keyNum.Cmp(secp256k1.Params().N) >= 0 || keyNum.Sign() == 0 {
			return ErrInvalidSeed
		}
	} else {
		// Ensure the public key parses correctly and is actually on the
		// secp256k1 curve.
		_, err := secp256k1.ParsePubKey(keyData)
		if err != nil {
			return err
		}
	}

	k.Version = version
	k.KeyData = keyData
	k.ChainCode = chainCode
	k.Fingerprint = fingerprint
	k.Depth = depth
	k.ChildNumber = childNumber
	return nil
}
