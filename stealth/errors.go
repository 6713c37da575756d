package stealth

import (
	"errors"
)

var (
	// ErrSharedSecretZero is returned when the hashed Diffie-Hellman secret
	// reduces to zero modulo the group order.  The probability of this for
	// honestly generated keys is negligible.
	ErrSharedSecretZero = errors.New("shared secret scalar is zero")

	// ErrInvalidMetaAddress is returned when a textual meta-address does not
	// follow the st:<label>:0x<spend><view> format or its keys do not parse.
	ErrInvalidMetaAddress = errors.New("meta-address is invalid")

	// ErrInvalidAddress is returned when a stealth address is missing its
	// ephemeral key.
	ErrInvalidAddress = errors.New("stealth address is invalid")
)
