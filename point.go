// Copyright (c) 2025 The Veilchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// Point represents an affine point on the secp256k1 curve or the point at
// infinity, which serves as the identity element of the group.
//
// The zero value of the struct is the zero point, a placeholder with both
// coordinates set to zero.  The zero point is not on the curve, so it never
// compares equal to any point produced by the group operations, and it is
// distinct from the point at infinity.
type Point struct {
	// X and Y are the affine coordinates of the point.  They are only
	// meaningful when the point is not the point at infinity.
	X big.Int
	Y big.Int

	// infinity distinguishes the point at infinity from affine points since
	// the identity element has no affine representation.
	infinity bool
}

// MakePoint returns an affine point with the given coordinates.  The
// coordinates are copied, so the caller may continue to use them.
func MakePoint(x, y *big.Int) Point {
	var p Point
	p.X.Set(x)
	p.Y.Set(y)
	return p
}

// InfinityPoint returns the point at infinity.
func InfinityPoint() Point {
	return Point{infinity: true}
}

// IsInfinity returns whether or not the point is the point at infinity.
func (p *Point) IsInfinity() bool {
	return p.infinity
}

// IsZero returns whether or not the point is the zero placeholder with both
// coordinates set to zero.
func (p *Point) IsZero() bool {
	return !p.infinity && p.X.Sign() == 0 && p.Y.Sign() == 0
}

// IsOnCurve returns whether or not the point satisfies the curve equation
// y^2 = x^3 + 7 with both coordinates reduced modulo the field prime.  The
// point at infinity is considered to be on the curve.
func (p *Point) IsOnCurve() bool {
	if p.infinity {
		return true
	}
	if p.X.Sign() < 0 || p.X.Cmp(curveParams.P) >= 0 ||
		p.Y.Sign() < 0 || p.Y.Cmp(curveParams.P) >= 0 {
		return false
	}
	y2 := new(big.Int).Mul(&p.Y, &p.Y)
	y2.Mod(y2, curveParams.P)
	return y2.Cmp(curvePolynomial(&p.X)) == 0
}

// YParity returns the parity of the y coordinate, 0 for even and 1 for odd.
// It is only meaningful for points that are not the point at infinity.
func (p *Point) YParity() byte {
	return byte(p.Y.Bit(0))
}

// IsEqual returns whether or not the two points represent the same group
// element, meaning either both are the point at infinity or both have the
// same affine coordinates.
func (p *Point) IsEqual(other *Point) bool {
	if p.infinity || other.infinity {
		return p.infinity == other.infinity
	}
	return p.X.Cmp(&other.X) == 0 && p.Y.Cmp(&other.Y) == 0
}

// Negate returns the additive inverse of the point, which is its reflection
// over the x axis.  The point at infinity is its own inverse.
func (p *Point) Negate() Point {
	if p.infinity {
		return InfinityPoint()
	}
	result := MakePoint(&p.X, &p.Y)
	if result.Y.Sign() != 0 {
		result.Y.Sub(curveParams.P, &result.Y)
	}
	return result
}

// AsJacobian sets the passed Jacobian point to the affine point, using a z
// coordinate of one for affine points and zero for the point at infinity.
func (p *Point) AsJacobian(result *JacobianPoint) {
	if p.infinity {
		result.X.SetInt64(0)
		result.Y.SetInt64(1)
		result.Z.SetInt64(0)
		return
	}
	result.X.Set(&p.X)
	result.Y.Set(&p.Y)
	result.Z.SetInt64(1)
}
