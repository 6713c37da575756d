// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"fmt"
	"math/big"
)

// ModExp returns base^exponent modulo modulus using a left-to-right binary
// square-and-multiply ladder.  The exponent must not be negative and the
// modulus must be positive.
func ModExp(base, exponent, modulus *big.Int) *big.Int {
	// Start from one reduced by the modulus so a modulus of one yields zero.
	result := new(big.Int).SetInt64(1)
	result.Mod(result, modulus)
	b := new(big.Int).Mod(base, modulus)
	for i := exponent.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, modulus)
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
	}
	return result
}

// ModInverse returns the multiplicative inverse of x modulo m computed with
// the extended Euclidean algorithm, so the result y satisfies x*y ≡ 1 (mod m).
//
// The operand must already be reduced, meaning it must be in the range [0, m).
// An error with kind ErrNotAFieldElement is returned when it is not, and an
// error with kind ErrUndefinedInverse is returned when no inverse exists,
// which is the case for zero as well as for operands that share a common
// factor with the modulus.
func ModInverse(x, m *big.Int) (*big.Int, error) {
	if x.Sign() < 0 || x.Cmp(m) >= 0 {
		str := fmt.Sprintf("operand %x is not reduced modulo %x", x, m)
		return nil, makeError(ErrNotAFieldElement, str)
	}
	if x.Sign() == 0 {
		return nil, makeError(ErrUndefinedInverse, "zero has no multiplicative "+
			"inverse")
	}

	// Iterate the division steps while maintaining the Bezout coefficient of
	// x, so once the remainder reaches zero, r0 holds gcd(x, m) and t0 holds
	// the candidate inverse.
	r0 := new(big.Int).Set(m)
	r1 := new(big.Int).Set(x)
	t0 := new(big.Int)
	t1 := new(big.Int).SetInt64(1)
	q := new(big.Int)
	tmp := new(big.Int)
	for r1.Sign() != 0 {
		q.Quo(r0, r1)

		tmp.Mul(q, r1)
		r0.Sub(r0, tmp)
		r0, r1 = r1, r0

		tmp.Mul(q, t1)
		t0.Sub(t0, tmp)
		t0, t1 = t1, t0
	}
	if r0.Cmp(big.NewInt(1)) != 0 {
		str := fmt.Sprintf("operand %x has no inverse modulo %x", x, m)
		return nil, makeError(ErrUndefinedInverse, str)
	}

	// The coefficient is in the range (-m, m), so a single conditional
	// addition canonicalizes it.
	if t0.Sign() < 0 {
		t0.Add(t0, m)
	}
	return t0, nil
}

// fermatInverse returns the inverse of k modulo the prime p by raising k to
// the power p-2.  Unlike the extended Euclidean algorithm, the multiplication
// sequence it performs does not depend on the value of k, which makes it the
// preferred inverse for secret scalars such as nonces.  The caller must
// ensure k is in the range [1, p).
func fermatInverse(k, p *big.Int) *big.Int {
	pMinus2 := new(big.Int).Sub(p, big.NewInt(2))
	return ModExp(k, pMinus2, p)
}
