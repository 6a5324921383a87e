// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sphere provides geometric operations
// on the surface of a unit sphere.
package sphere

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// A GeometryError is an error produced
// by a degenerate geometric operation,
// such as the radial normalization of a zero vector,
// or a tangent frame anchored on a reference axis.
type GeometryError struct {
	Point r3.Vec
	Msg   string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("at point (%.6f, %.6f, %.6f): %s", e.Point.X, e.Point.Y, e.Point.Z, e.Msg)
}

// Normalize projects a point radially
// onto the surface of the unit sphere,
// keeping its direction
// and forcing its magnitude to one.
func Normalize(v r3.Vec) (r3.Vec, error) {
	n := r3.Norm(v)
	if n < 1e-12 {
		return r3.Vec{}, &GeometryError{Point: v, Msg: "unable to normalize a zero vector"}
	}
	return r3.Scale(1/n, v), nil
}

// A Frame is an orthonormal coordinate frame
// anchored at a point on the unit sphere.
// U and V span the tangent plane at the anchor,
// and Normal is the outward radial direction.
type Frame struct {
	U, V   r3.Vec
	Normal r3.Vec
}

// FrameOpts are the references used
// to orient a tangent frame.
// The zero value is replaced by the defaults:
// the primary reference is the +Z axis,
// the fallback reference is the +X axis,
// and a reference is rejected when the norm
// of its component orthogonal to the anchor
// is below MinSin
// (i.e., when it is nearly parallel to the anchor).
type FrameOpts struct {
	Ref    r3.Vec
	AltRef r3.Vec
	MinSin float64
}

func (o FrameOpts) withDefaults() FrameOpts {
	if o.Ref == (r3.Vec{}) {
		o.Ref = r3.Vec{Z: 1}
	}
	if o.AltRef == (r3.Vec{}) {
		o.AltRef = r3.Vec{X: 1}
	}
	if o.MinSin == 0 {
		o.MinSin = 1e-6
	}
	return o
}

// NewFrame builds a tangent frame
// at the given anchor point
// by Gram-Schmidt orthogonalization
// of a reference axis against the anchor direction.
// If the anchor is nearly parallel
// to the primary reference
// the fallback reference is used instead;
// if both references are degenerate,
// a GeometryError is returned.
func NewFrame(anchor r3.Vec, opts FrameOpts) (Frame, error) {
	opts = opts.withDefaults()

	n, err := Normalize(anchor)
	if err != nil {
		return Frame{}, err
	}

	for _, ref := range []r3.Vec{opts.Ref, opts.AltRef} {
		u := r3.Sub(ref, r3.Scale(r3.Dot(ref, n), n))
		if r3.Norm(u) < opts.MinSin*r3.Norm(ref) {
			continue
		}
		u = r3.Unit(u)
		v := r3.Cross(n, u)
		return Frame{U: u, V: v, Normal: n}, nil
	}
	return Frame{}, &GeometryError{Point: anchor, Msg: "anchor parallel to all reference axes"}
}

// Lift maps tangent plane coordinates
// onto the surface of the unit sphere:
// the tangent components are kept unchanged
// and the radial component is set
// so that the resulting point has unit norm.
// The point must be inside the unit disc
// of the tangent plane.
func (f Frame) Lift(x, y float64) (r3.Vec, error) {
	r2 := x*x + y*y
	if r2 >= 1 {
		p := r3.Add(r3.Scale(x, f.U), r3.Scale(y, f.V))
		return r3.Vec{}, &GeometryError{Point: p, Msg: "tangent point outside the unit disc"}
	}
	h := math.Sqrt(1 - r2)
	return r3.Add(r3.Add(r3.Scale(h, f.Normal), r3.Scale(x, f.U)), r3.Scale(y, f.V)), nil
}
