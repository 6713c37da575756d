package stealth

import (
	"github.com/veilchain/secp256k1"
	"github.com/veilchain/secp256k1/hdkeys"
)

// masterSecret salts the HMAC that turns a wallet seed into the stealth key
// hierarchy root.
var masterSecret = []byte("Stealth address seed")

// Spend and view keys live at fixed hardened paths under purpose 5564'.
var (
	spendKeyPath = []uint32{hdkeys.HardenedBit + 5564, hdkeys.HardenedBit, 0}
	viewKeyPath  = []uint32{hdkeys.HardenedBit + 5564, hdkeys.HardenedBit, 1}
)

// KeysFromSeed deterministically derives the spend and view secrets for a
// stealth recipient from a wallet seed, at the paths m/5564'/0'/0 and
// m/5564'/0'/1.
func KeysFromSeed(seed []byte) (spendPriv, viewPriv *secp256k1.PrivateKey, err error) {
	master, err := hdkeys.FromSeed(seed, masterSecret)
	if err != nil {
		return nil, nil, err
	}

	spendKey, err := master.Derive(spendKeyPath)
	if err != nil {
		return nil, nil, err
	}
	spendPriv, err = spendKey.PrivateKey()
	if err != nil {
		return nil, nil, err
	}

	viewKey, err := master.Derive(viewKeyPath)
	if err != nil {
		return nil, nil, err
	}
	viewPriv, err = viewKey.PrivateKey()
	if err != nil {
		return nil, nil, err
	}
	return spendPriv, viewPriv, nil
}

// MetaAddressFromSeed derives the publishable meta-address for a wallet
// seed.  Ownership of the seed is sufficient to detect and spend every
// payment addressed through the result.
func MetaAddressFromSeed(seed []byte) (*MetaAddress, error) {
	spendPriv, viewPriv, err := KeysFromSeed(seed)
	if err != nil {
		return nil, err
	}

	spendPub, err := spendPriv.PubKey()
	if err != nil {
		return nil, err
	}
	viewPub, err := viewPriv.PubKey()
	if err != nil {
		return nil, err
	}
	return &MetaAddress{SpendKey: spendPub, ViewKey: viewPub}, nil
}
