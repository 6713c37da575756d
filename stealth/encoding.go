package stealth

import (
	"encoding/hex"
	"strings"

	"github.com/veilchain/secp256k1"
)

// metaAddressScheme is the URI-style scheme prefix of a textual meta-address.
const metaAddressScheme = "st"

// EncodeMetaAddress returns the textual form of a meta-address:
//
//	st:<chainLabel>:0x<compressed spend key><compressed view key>
//
// with both keys hex encoded.
func EncodeMetaAddress(meta *MetaAddress, chainLabel string) string {
	var sb strings.Builder
	sb.WriteString(metaAddressScheme)
	sb.WriteString(":")
	sb.WriteString(chainLabel)
	sb.WriteString(":0x")
	sb.WriteString(hex.EncodeToString(meta.SpendKey.SerializeCompressed()))
	sb.WriteString(hex.EncodeToString(meta.ViewKey.SerializeCompressed()))
	return sb.String()
}

// ParseMetaAddress decodes a textual meta-address produced by
// EncodeMetaAddress and returns the meta-address together with its chain
// label.
func ParseMetaAddress(addr string) (*MetaAddress, string, error) {
	parts := strings.Split(addr, ":")
	if len(parts) != 3 || parts[0] != metaAddressScheme {
		return nil, "", ErrInvalidMetaAddress
	}
	chainLabel := parts[1]

	payload, ok := strings.CutPrefix(parts[2], "0x")
	if !ok {
		return nil, "", ErrInvalidMetaAddress
	}
	keys, err := hex.DecodeString(payload)
	if err != nil || len(keys) != 2*secp256k1.PubKeyBytesLenCompressed {
		return nil, "", ErrInvalidMetaAddress
	}

	spendKey, err := secp256k1.ParsePubKey(keys[:secp256k1.PubKeyBytesLenCompressed])
	if err != nil {
		return nil, "", ErrInvalidMetaAddress
	}
	viewKey, err := secp256k1.ParsePubKey(keys[secp256k1.PubKeyBytesLenCompressed:])
	if err != nil {
		return nil, "", ErrInvalidMetaAddress
	}

	return &MetaAddress{SpendKey: spendKey, ViewKey: viewKey}, chainLabel, nil
}
