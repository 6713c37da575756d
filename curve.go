// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// References:
//   [SECG]: Recommended Elliptic Curve Domain Parameters
//     https://www.secg.org/sec2-v2.pdf
//
//   [BRID]: On Binary Representations of Integers with Digits -1, 0, 1
//           (Prodinger, Helmut)

// fromHex converts the passed hex string into a big integer and will panic if
// there is an error.  This is only provided for the hard-coded constants so
// errors in the source code can be detected.  It will only (and must only) be
// called with hard-coded values.
func fromHex(s string) *big.Int {
	r, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("invalid hex in source file: " + s)
	}
	return r
}

// CurveParams contains the parameters for the secp256k1 curve.
type CurveParams struct {
	// P is the prime of the underlying finite field.
	P *big.Int

	// N is the order of the group generated by the base point.
	N *big.Int

	// Gx and Gy are the coordinates of the base point.
	Gx *big.Int
	Gy *big.Int

	// B is the constant term of the curve equation y^2 = x^3 + b.
	B *big.Int

	// BitSize is the size of the underlying field in bits.
	BitSize int

	// H is the cofactor of the curve.
	H int
}

// curveParams houses the parameters of the curve per [SECG].  Code in this
// package treats them as read only.
var curveParams = CurveParams{
	P:       fromHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"),
	N:       fromHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
	Gx:      fromHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
	Gy:      fromHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"),
	B:       fromHex("7"),
	BitSize: 256,
	H:       1,
}

// Params returns the secp256k1 curve parameters.  The returned instance is
// shared, so callers must not modify it.
func Params() *CurveParams {
	return &curveParams
}

var (
	// halfOrder is half the group order, the boundary between the canonical
	// signature S values and their malleable counterparts.
	halfOrder = new(big.Int).Rsh(curveParams.N, 1)

	// sqrtExp is (P+1)/4, the exponent that computes square roots modulo the
	// field prime since the prime is congruent to 3 mod 4.
	sqrtExp = new(big.Int).Div(new(big.Int).Add(curveParams.P, big.NewInt(1)),
		big.NewInt(4))
)

// curvePolynomial returns x^3 + 7 modulo the field prime, the right hand side
// of the curve equation.
func curvePolynomial(x *big.Int) *big.Int {
	result := new(big.Int).Mul(x, x)
	result.Mod(result, curveParams.P)
	result.Mul(result, x)
	result.Add(result, curveParams.B)
	result.Mod(result, curveParams.P)
	return result
}

// decompressY attempts to calculate the y coordinate for the given x
// coordinate such that the result pair is a point on the secp256k1 curve.  It
// adjusts y for the desired oddness and returns whether or not it was
// successful since not all x coordinates are valid.
//
// The provided x coordinate must be reduced modulo the field prime.
func decompressY(x *big.Int, odd bool) (*big.Int, bool) {
	// The candidate root of y^2 = x^3 + 7 is computed by raising the right
	// hand side to (P+1)/4 and is only an actual root when squaring it
	// produces the right hand side again.
	rhs := curvePolynomial(x)
	y := ModExp(rhs, sqrtExp, curveParams.P)
	check := new(big.Int).Mul(y, y)
	check.Mod(check, curveParams.P)
	if check.Cmp(rhs) != 0 {
		return nil, false
	}

	if odd != (y.Bit(0) == 1) {
		if y.Sign() == 0 {
			return nil, false
		}
		y.Sub(curveParams.P, y)
	}
	return y, true
}

// JacobianPoint is an element of the group formed by the secp256k1 curve in
// Jacobian projective coordinates and thus represents a curve point as
// (X, Y, Z) where the corresponding affine point is (X/Z^2, Y/Z^3).  The
// point at infinity is encoded with a Z coordinate of zero.
type JacobianPoint struct {
	X big.Int
	Y big.Int
	Z big.Int
}

// MakeJacobianPoint returns a Jacobian point with the provided X, Y, and Z
// coordinates.  The coordinates are copied.
func MakeJacobianPoint(x, y, z *big.Int) JacobianPoint {
	var p JacobianPoint
	p.X.Set(x)
	p.Y.Set(y)
	p.Z.Set(z)
	return p
}

// Set sets the point to the provided point.
func (p *JacobianPoint) Set(other *JacobianPoint) {
	p.X.Set(&other.X)
	p.Y.Set(&other.Y)
	p.Z.Set(&other.Z)
}

// SetInfinity sets the point to the point at infinity.
func (p *JacobianPoint) SetInfinity() {
	p.X.SetInt64(0)
	p.Y.SetInt64(1)
	p.Z.SetInt64(0)
}

// IsInfinity returns whether or not the point is the point at infinity.
func (p *JacobianPoint) IsInfinity() bool {
	return p.Z.Sign() == 0
}

// ToAffine returns the affine point corresponding to the Jacobian point.  The
// receiver is left unchanged.  The point at infinity converts to the affine
// point at infinity.
func (p *JacobianPoint) ToAffine() Point {
	z := new(big.Int).Mod(&p.Z, curveParams.P)
	if z.Sign() == 0 {
		return InfinityPoint()
	}

	// The affine coordinates are x = X/Z^2 and y = Y/Z^3.
	zInv := fermatInverse(z, curveParams.P)
	zInvSq := new(big.Int).Mul(zInv, zInv)
	zInvSq.Mod(zInvSq, curveParams.P)

	x := new(big.Int).Mul(&p.X, zInvSq)
	x.Mod(x, curveParams.P)
	zInvSq.Mul(zInvSq, zInv)
	zInvSq.Mod(zInvSq, curveParams.P)
	y := new(big.Int).Mul(&p.Y, zInvSq)
	y.Mod(y, curveParams.P)

	return MakePoint(x, y)
}

// AddNonConst adds the passed Jacobian points together and stores the result
// in the provided result param in Jacobian form.  The result param may alias
// either of the operands.
//
// The formulas are the add-2007-bl set from the explicit formulas database
// with the special cases for the identity element, doubling, and inverse
// operands dispatched explicitly, so the addition is complete for all group
// elements.
func AddNonConst(p1, p2, result *JacobianPoint) {
	// The point at infinity is the identity element.
	if p1.IsInfinity() {
		result.Set(p2)
		return
	}
	if p2.IsInfinity() {
		result.Set(p1)
		return
	}

	p := curveParams.P

	z1z1 := new(big.Int).Mul(&p1.Z, &p1.Z)
	z1z1.Mod(z1z1, p)
	z2z2 := new(big.Int).Mul(&p2.Z, &p2.Z)
	z2z2.Mod(z2z2, p)

	u1 := new(big.Int).Mul(&p1.X, z2z2)
	u1.Mod(u1, p)
	u2 := new(big.Int).Mul(&p2.X, z1z1)
	u2.Mod(u2, p)

	s1 := new(big.Int).Mul(&p1.Y, &p2.Z)
	s1.Mul(s1, z2z2)
	s1.Mod(s1, p)
	s2 := new(big.Int).Mul(&p2.Y, &p1.Z)
	s2.Mul(s2, z1z1)
	s2.Mod(s2, p)

	// Matching x coordinates mean the operands are either the same point,
	// which must be handled by doubling, or negations of each other, which
	// sum to the point at infinity.
	if u1.Cmp(u2) == 0 {
		if s1.Cmp(s2) == 0 {
			DoubleNonConst(p1, result)
			return
		}
		result.SetInfinity()
		return
	}

	h := new(big.Int).Sub(u2, u1) // H = U2-U1
	h.Mod(h, p)
	i := new(big.Int).Lsh(h, 1) // I = (2*H)^2
	i.Mul(i, i)
	i.Mod(i, p)
	j := new(big.Int).Mul(h, i) // J = H*I
	j.Mod(j, p)
	r := new(big.Int).Sub(s2, s1) // r = 2*(S2-S1)
	r.Mod(r, p)
	r.Lsh(r, 1)
	v := new(big.Int).Mul(u1, i) // V = U1*I
	v.Mod(v, p)

	x3 := new(big.Int).Mul(r, r) // X3 = r^2-J-2*V
	x3.Sub(x3, j)
	x3.Sub(x3, v)
	x3.Sub(x3, v)
	x3.Mod(x3, p)

	y3 := new(big.Int).Sub(v, x3) // Y3 = r*(V-X3)-2*S1*J
	y3.Mul(r, y3)
	s1.Mul(s1, j)
	s1.Lsh(s1, 1)
	y3.Sub(y3, s1)
	y3.Mod(y3, p)

	z3 := new(big.Int).Add(&p1.Z, &p2.Z) // Z3 = ((Z1+Z2)^2-Z1Z1-Z2Z2)*H
	z3.Mul(z3, z3)
	z3.Sub(z3, z1z1)
	z3.Sub(z3, z2z2)
	z3.Mul(z3, h)
	z3.Mod(z3, p)

	result.X.Set(x3)
	result.Y.Set(y3)
	result.Z.Set(z3)
}

// DoubleNonConst doubles the passed Jacobian point and stores the result in
// the provided result param in Jacobian form.  The result param may alias the
// operand.
//
// The formulas are the dbl-2009-l set from the explicit formulas database,
// which are valid since the secp256k1 curve has no x term.
func DoubleNonConst(p1, result *JacobianPoint) {
	// Doubling the point at infinity, or any point with a y coordinate of
	// zero, yields the point at infinity.
	if p1.IsInfinity() || p1.Y.Sign() == 0 {
		result.SetInfinity()
		return
	}

	p := curveParams.P

	a := new(big.Int).Mul(&p1.X, &p1.X) // A = X1^2
	a.Mod(a, p)
	b := new(big.Int).Mul(&p1.Y, &p1.Y) // B = Y1^2
	b.Mod(b, p)
	c := new(big.Int).Mul(b, b) // C = B^2
	c.Mod(c, p)

	d := new(big.Int).Add(&p1.X, b) // D = 2*((X1+B)^2-A-C)
	d.Mul(d, d)
	d.Sub(d, a)
	d.Sub(d, c)
	d.Lsh(d, 1)
	d.Mod(d, p)

	e := new(big.Int).Lsh(a, 1) // E = 3*A
	e.Add(e, a)
	e.Mod(e, p)
	f := new(big.Int).Mul(e, e) // F = E^2
	f.Mod(f, p)

	x3 := new(big.Int).Lsh(d, 1) // X3 = F-2*D
	x3.Sub(f, x3)
	x3.Mod(x3, p)

	y3 := new(big.Int).Sub(d, x3) // Y3 = E*(D-X3)-8*C
	y3.Mul(e, y3)
	c.Lsh(c, 3)
	y3.Sub(y3, c)
	y3.Mod(y3, p)

	z3 := new(big.Int).Mul(&p1.Y, &p1.Z) // Z3 = 2*Y1*Z1
	z3.Lsh(z3, 1)
	z3.Mod(z3, p)

	result.X.Set(x3)
	result.Y.Set(y3)
	result.Z.Set(z3)
}

// ScalarMultNonConst multiplies k*P where k is a scalar interpreted as a
// non-negative integer and P is the provided Jacobian point.  It stores the
// result in the provided result param, which may alias the point param.
//
// The multiplication walks a fixed double-and-add sequence of at least 256
// bits, computing the addition on every iteration regardless of the bit
// value, so the shape of the computation does not vary with the bits of
// secret scalars.  The underlying big integer arithmetic is still not
// constant time, hence the name.
func ScalarMultNonConst(k *big.Int, point, result *JacobianPoint) {
	numBits := k.BitLen()
	if numBits < 256 {
		numBits = 256
	}

	var q, sum JacobianPoint
	q.SetInfinity()
	for i := numBits - 1; i >= 0; i-- {
		DoubleNonConst(&q, &q)
		AddNonConst(&q, point, &sum)
		if k.Bit(i) == 1 {
			q.Set(&sum)
		}
	}
	result.Set(&q)
}

// ScalarBaseMultNonConst multiplies k*G where k is a scalar interpreted as a
// non-negative integer and G is the base point of the curve.  It stores the
// result in the provided result param.
func ScalarBaseMultNonConst(k *big.Int, result *JacobianPoint) {
	var g JacobianPoint
	g.X.Set(curveParams.Gx)
	g.Y.Set(curveParams.Gy)
	g.Z.SetInt64(1)
	ScalarMultNonConst(k, &g, result)
}
