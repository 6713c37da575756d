package stealth

import (
	"context"
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veilchain/secp256k1"
)

// newTestRecipient returns a fresh meta-address along with its spend and
// view secrets.
func newTestRecipient(t *testing.T) (*MetaAddress, *secp256k1.PrivateKey, *secp256k1.PrivateKey) {
	t.Helper()

	spendPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	viewPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	spendPub, err := spendPriv.PubKey()
	require.NoError(t, err)
	viewPub, err := viewPriv.PubKey()
	require.NoError(t, err)

	return &MetaAddress{SpendKey: spendPub, ViewKey: viewPub}, spendPriv, viewPriv
}

func TestGenerateCheckComputeKey(t *testing.T) {
	meta, spendPriv, viewPriv := newTestRecipient(t)

	addr, err := Generate(meta, rand.Reader)
	require.NoError(t, err)
	require.NotNil(t, addr.EphemeralKey)

	// The recipient must detect the payment.
	ok, err := Check(viewPriv, meta.SpendKey, addr)
	require.NoError(t, err)
	require.True(t, ok)

	// The recovered one-time key must map to the announced identifier.
	stealthPriv, err := ComputeKey(spendPriv, viewPriv, addr)
	require.NoError(t, err)
	stealthPub, err := stealthPriv.PubKey()
	require.NoError(t, err)
	require.Equal(t, addr.Identifier, stealthPub.Identifier())
}

func TestCheckRejectsForeignAddress(t *testing.T) {
	meta, _, _ := newTestRecipient(t)
	otherMeta, _, otherViewPriv := newTestRecipient(t)

	addr, err := Generate(meta, rand.Reader)
	require.NoError(t, err)

	// A different recipient must not detect the payment.
	ok, err := Check(otherViewPriv, otherMeta.SpendKey, addr)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckViewTagMismatch(t *testing.T) {
	meta, _, viewPriv := newTestRecipient(t)

	addr, err := Generate(meta, rand.Reader)
	require.NoError(t, err)

	// Corrupting the view tag must reject even though the identifier still
	// matches.
	addr.ViewTag ^= 0xff
	ok, err := Check(viewPriv, meta.SpendKey, addr)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckIdentifierMismatch(t *testing.T) {
	meta, _, viewPriv := newTestRecipient(t)

	addr, err := Generate(meta, rand.Reader)
	require.NoError(t, err)

	// A matching view tag with a corrupted identifier must reject.
	addr.Identifier[0] ^= 0x01
	ok, err := Check(viewPriv, meta.SpendKey, addr)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCheckMissingEphemeralKey(t *testing.T) {
	meta, spendPriv, viewPriv := newTestRecipient(t)

	addr := &Address{}
	_, err := Check(viewPriv, meta.SpendKey, addr)
	require.ErrorIs(t, err, ErrInvalidAddress)

	_, err = ComputeKey(spendPriv, viewPriv, addr)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestGenerateWithKeyDeterministic(t *testing.T) {
	meta, _, _ := newTestRecipient(t)

	ephemeralPriv := secp256k1.PrivKeyFromBytes([]byte{0x2b, 0x5a, 0xd5})
	addr1, err := GenerateWithKey(meta, ephemeralPriv)
	require.NoError(t, err)
	addr2, err := GenerateWithKey(meta, ephemeralPriv)
	require.NoError(t, err)

	require.Equal(t, addr1.Identifier, addr2.Identifier)
	require.Equal(t, addr1.ViewTag, addr2.ViewTag)
	require.True(t, addr1.EphemeralKey.IsEqual(addr2.EphemeralKey))
}

func TestMetaAddressEncoding(t *testing.T) {
	meta, _, _ := newTestRecipient(t)

	encoded := EncodeMetaAddress(meta, "eth")
	decoded, label, err := ParseMetaAddress(encoded)
	require.NoError(t, err)
	require.Equal(t, "eth", label)
	require.True(t, decoded.SpendKey.IsEqual(meta.SpendKey))
	require.True(t, decoded.ViewKey.IsEqual(meta.ViewKey))
}

func TestParseMetaAddressErrors(t *testing.T) {
	meta, _, _ := newTestRecipient(t)
	valid := EncodeMetaAddress(meta, "eth")

	tests := []struct {
		name string
		addr string
	}{{
		name: "empty",
		addr: "",
	}, {
		name: "wrong scheme",
		addr: "xx" + valid[2:],
	}, {
		name: "missing label separator",
		addr: "st:" + valid[7:],
	}, {
		name: "missing hex prefix",
		addr: "st:eth:" + valid[9:],
	}, {
		name: "odd hex",
		addr: valid[:len(valid)-1],
	}, {
		name: "truncated keys",
		addr: valid[:len(valid)-2],
	}, {
		name: "bad key format",
		addr: valid[:9] + "05" + valid[11:],
	}}

	for _, test := range tests {
		_, _, err := ParseMetaAddress(test.addr)
		require.ErrorIs(t, err, ErrInvalidMetaAddress, test.name)
	}
}

func TestScanAddresses(t *testing.T) {
	meta, _, viewPriv := newTestRecipient(t)
	otherMeta, _, _ := newTestRecipient(t)

	// Mix announcements for the recipient with foreign ones at known
	// positions.
	rng := mrand.New(mrand.NewSource(1))
	var addrs []*Address
	var want []int
	for i := 0; i < 50; i++ {
		target := otherMeta
		if rng.Intn(3) == 0 {
			target = meta
			want = append(want, i)
		}
		addr, err := Generate(target, rand.Reader)
		require.NoError(t, err)
		addrs = append(addrs, addr)
	}

	got, err := ScanAddresses(context.Background(), viewPriv, meta.SpendKey, addrs, 4)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// A non-positive worker count still scans.
	got, err = ScanAddresses(context.Background(), viewPriv, meta.SpendKey, addrs, 0)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestScanAddressesCancelled(t *testing.T) {
	meta, _, viewPriv := newTestRecipient(t)

	addr, err := Generate(meta, rand.Reader)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ScanAddresses(ctx, viewPriv, meta.SpendKey, []*Address{addr}, 2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSeedDerivation(t *testing.T) {
	seed := []byte("stealth wallet seed for testing")

	spendPriv, viewPriv, err := KeysFromSeed(seed)
	require.NoError(t, err)
	require.True(t, spendPriv.IsValid())
	require.True(t, viewPriv.IsValid())
	require.NotEqual(t, spendPriv.Serialize(), viewPriv.Serialize())

	// The same seed must yield the same keys.
	spendPriv2, viewPriv2, err := KeysFromSeed(seed)
	require.NoError(t, err)
	require.Equal(t, spendPriv.Serialize(), spendPriv2.Serialize())
	require.Equal(t, viewPriv.Serialize(), viewPriv2.Serialize())

	// The meta-address must publish exactly the derived public keys.
	meta, err := MetaAddressFromSeed(seed)
	require.NoError(t, err)
	spendPub, err := spendPriv.PubKey()
	require.NoError(t, err)
	viewPub, err := viewPriv.PubKey()
	require.NoError(t, err)
	require.True(t, meta.SpendKey.IsEqual(spendPub))
	require.True(t, meta.ViewKey.IsEqual(viewPub))

	// End to end: seed recipient detects and spends a payment.
	addr, err := Generate(meta, rand.Reader)
	require.NoError(t, err)
	ok, err := Check(viewPriv, meta.SpendKey, addr)
	require.NoError(t, err)
	require.True(t, ok)

	stealthPriv, err := ComputeKey(spendPriv, viewPriv, addr)
	require.NoError(t, err)
	stealthPub, err := stealthPriv.PubKey()
	require.NoError(t, err)
	require.Equal(t, addr.Identifier, stealthPub.Identifier())
}

// TestSharedScalarSymmetry ensures both protocol sides derive the same
// scalar.
func TestSharedScalarSymmetry(t *testing.T) {
	meta, _, viewPriv := newTestRecipient(t)

	ephemeralPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	ephemeralPub, err := ephemeralPriv.PubKey()
	require.NoError(t, err)

	senderScalar, err := sharedScalar(ephemeralPriv, meta.ViewKey)
	require.NoError(t, err)
	recipientScalar, err := sharedScalar(viewPriv, ephemeralPub)
	require.NoError(t, err)

	require.Zero(t, senderScalar.Cmp(recipientScalar))
	require.Positive(t, senderScalar.Sign())
	require.Negative(t, senderScalar.Cmp(secp256k1.Params().N))
}

// TestViewTag pins the tag to the top byte of the scalar encoding.
func TestViewTag(t *testing.T) {
	require.EqualValues(t, 0, viewTag(big.NewInt(1)))
	require.EqualValues(t, 0xab, viewTag(new(big.Int).Lsh(big.NewInt(0xab), 248)))
}
