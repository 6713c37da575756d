// Package stealth implements a dual-key stealth address protocol over
// secp256k1.
//
// A recipient publishes a meta-address holding two public keys: a spend key
// and a view key.  For every payment the sender draws a fresh ephemeral key
// pair, combines the ephemeral secret with the view key into a shared scalar
// and derives a one-time stealth key the recipient alone can spend:
//
//	sharedSk = Keccak-256(compressed(ephSk*viewPk)) mod N
//	stealthPk = spendPk + sharedSk*G
//
// The recipient detects payments with only the view secret, so scanning can
// be delegated without granting the ability to spend.  A single-byte view
// tag derived from the shared scalar lets a scanner discard nearly all
// foreign announcements with one cheap comparison before the full identifier
// check.
package stealth

import (
	"io"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/veilchain/secp256k1"
)

// MetaAddress is the public half of a stealth recipient: the published spend
// and view keys that senders derive one-time addresses from.
type MetaAddress struct {
	SpendKey *secp256k1.PublicKey
	ViewKey  *secp256k1.PublicKey
}

// Address is a one-time stealth address announcement.  The identifier names
// the derived stealth key, the ephemeral key lets the recipient recompute
// the shared scalar, and the view tag supports fast scan rejection.
type Address struct {
	Identifier   [secp256k1.IdentifierLen]byte
	EphemeralKey *secp256k1.PublicKey
	ViewTag      byte
}

// keccak256 returns the legacy Keccak-256 digest of the concatenated inputs.
func keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// sharedScalar computes the shared secret scalar between a secret key and a
// public key: Keccak-256 of the compressed Diffie-Hellman point, reduced mod
// the group order.  Both sides of the protocol arrive at the same scalar
// since ephSk*viewPk == viewSk*ephPk.
func sharedScalar(priv *secp256k1.PrivateKey, pub *secp256k1.PublicKey) (*big.Int, error) {
	var point, result secp256k1.JacobianPoint
	pub.AsJacobian(&point)
	secp256k1.ScalarMultNonConst(&priv.Key, &point, &result)
	affine := result.ToAffine()

	shared := secp256k1.NewPublicKey(&affine.X, &affine.Y)
	scalar := new(big.Int).SetBytes(keccak256(shared.SerializeCompressed()))
	scalar.Mod(scalar, secp256k1.Params().N)
	if scalar.Sign() == 0 {
		return nil, ErrSharedSecretZero
	}
	return scalar, nil
}

// viewTag returns the most significant byte of the 32-byte big-endian
// encoding of the shared scalar.
func viewTag(scalar *big.Int) byte {
	var buf [32]byte
	scalar.FillBytes(buf[:])
	return buf[0]
}

// stealthPubKey derives the one-time public key spendPk + sharedSk*G.
func stealthPubKey(spendPub *secp256k1.PublicKey, sharedSk *big.Int) *secp256k1.PublicKey {
	var spend, tweak, sum secp256k1.JacobianPoint
	spendPub.AsJacobian(&spend)
	secp256k1.ScalarBaseMultNonConst(sharedSk, &tweak)
	secp256k1.AddNonConst(&spend, &tweak, &sum)
	affine := sum.ToAffine()
	return secp256k1.NewPublicKey(&affine.X, &affine.Y)
}

// Generate derives a one-time stealth address for the given meta-address
// using a fresh ephemeral key drawn from the provided entropy source.
func Generate(meta *MetaAddress, rand io.Reader) (*Address, error) {
	ephemeralPriv, err := secp256k1.GeneratePrivateKeyFromRand(rand)
	if err != nil {
		return nil, err
	}
	return GenerateWithKey(meta, ephemeralPriv)
}

// GenerateWithKey derives a one-time stealth address for the given
// meta-address using a caller-supplied ephemeral private key.  The ephemeral
// public key is embedded in the returned address and must be published
// alongside it.
func GenerateWithKey(meta *MetaAddress, ephemeralPriv *secp256k1.PrivateKey) (*Address, error) {
	sharedSk, err := sharedScalar(ephemeralPriv, meta.ViewKey)
	if err != nil {
		return nil, err
	}

	ephemeralPub, err := ephemeralPriv.PubKey()
	if err != nil {
		return nil, err
	}

	stealthPub := stealthPubKey(meta.SpendKey, sharedSk)
	return &Address{
		Identifier:   stealthPub.Identifier(),
		EphemeralKey: ephemeralPub,
		ViewTag:      viewTag(sharedSk),
	}, nil
}

// Check reports whether the given stealth address belongs to the recipient
// identified by the view secret and spend public key.  The view tag is
// compared first so mismatched announcements are rejected after a single
// scalar multiplication and one byte comparison.
func Check(viewPriv *secp256k1.PrivateKey, spendPub *secp256k1.PublicKey, addr *Address) (bool, error) {
	if addr.EphemeralKey == nil {
		return false, ErrInvalidAddress
	}

	sharedSk, err := sharedScalar(viewPriv, addr.EphemeralKey)
	if err != nil {
		return false, err
	}
	if viewTag(sharedSk) != addr.ViewTag {
		return false, nil
	}

	stealthPub := stealthPubKey(spendPub, sharedSk)
	return stealthPub.Identifier() == addr.Identifier, nil
}

// ComputeKey derives the one-time private key spendSk + sharedSk mod N for a
// stealth address addressed to the holder of the given spend and view
// secrets.  The caller should confirm ownership with Check first.
func ComputeKey(spendPriv, viewPriv *secp256k1.PrivateKey, addr *Address) (*secp256k1.PrivateKey, error) {
	if addr.EphemeralKey == nil {
		return nil, ErrInvalidAddress
	}

	sharedSk, err := sharedScalar(viewPriv, addr.EphemeralKey)
	if err != nil {
		return nil, err
	}

	stealthSk := new(big.Int).Add(&spendPriv.Key, sharedSk)
	stealthSk.Mod(stealthSk, secp256k1.Params().N)
	if stealthSk.Sign() == 0 {
		return nil, ErrSharedSecretZero
	}
	return secp256k1.NewPrivateKey(stealthSk), nil
}
