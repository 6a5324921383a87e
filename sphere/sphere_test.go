// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sphere_test

import (
	"errors"
	"math"
	"testing"

	"github.com/js-arias/phylosphere/sphere"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNormalize(t *testing.T) {
	vecs := []r3.Vec{
		{X: 1},
		{X: 3, Y: -4},
		{X: 0.001, Y: 0.002, Z: -0.003},
		{X: -100, Y: 250, Z: 75},
	}
	for _, v := range vecs {
		n, err := sphere.Normalize(v)
		if err != nil {
			t.Fatalf("vector %v: unexpected error: %v", v, err)
		}
		if got := r3.Norm(n); math.Abs(got-1) > 1e-9 {
			t.Errorf("vector %v: norm: got %.12f, want 1", v, got)
		}
		// direction unchanged
		if got := r3.Dot(n, v); math.Abs(got-r3.Norm(v)) > 1e-9 {
			t.Errorf("vector %v: direction changed", v)
		}
	}
}

func TestNormalizeZero(t *testing.T) {
	_, err := sphere.Normalize(r3.Vec{})
	if err == nil {
		t.Fatalf("expecting error for the zero vector")
	}
	var gErr *sphere.GeometryError
	if !errors.As(err, &gErr) {
		t.Fatalf("got error %q, want GeometryError", err)
	}
}

func testFrame(t testing.TB, f sphere.Frame) {
	t.Helper()

	axes := map[string]r3.Vec{
		"u":      f.U,
		"v":      f.V,
		"normal": f.Normal,
	}
	for name, a := range axes {
		if got := r3.Norm(a); math.Abs(got-1) > 1e-9 {
			t.Errorf("axis %s: norm: got %.12f, want 1", name, got)
		}
	}
	pairs := [][2]r3.Vec{
		{f.U, f.V},
		{f.U, f.Normal},
		{f.V, f.Normal},
	}
	for _, p := range pairs {
		if got := r3.Dot(p[0], p[1]); math.Abs(got) > 1e-9 {
			t.Errorf("axes not orthogonal: dot product %.12f", got)
		}
	}
}

func TestNewFrame(t *testing.T) {
	anchors := []r3.Vec{
		{X: 1},
		{X: 1, Y: 1, Z: 1},
		{X: -2, Y: 0.5, Z: -1},
	}
	for _, a := range anchors {
		f, err := sphere.NewFrame(a, sphere.FrameOpts{})
		if err != nil {
			t.Fatalf("anchor %v: unexpected error: %v", a, err)
		}
		testFrame(t, f)
	}
}

func TestNewFramePole(t *testing.T) {
	// anchor parallel to the primary reference:
	// the fallback reference must be used
	f, err := sphere.NewFrame(r3.Vec{Z: 1}, sphere.FrameOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testFrame(t, f)

	// both references parallel to the anchor
	_, err = sphere.NewFrame(r3.Vec{Z: 1}, sphere.FrameOpts{
		Ref:    r3.Vec{Z: 1},
		AltRef: r3.Vec{Z: -1},
	})
	if err == nil {
		t.Fatalf("expecting error for a degenerate frame")
	}
	var gErr *sphere.GeometryError
	if !errors.As(err, &gErr) {
		t.Fatalf("got error %q, want GeometryError", err)
	}
}

func TestLift(t *testing.T) {
	f, err := sphere.NewFrame(r3.Vec{X: 1, Y: -1, Z: 0.5}, sphere.FrameOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	coords := [][2]float64{
		{0, 0},
		{0.1, 0},
		{-0.05, 0.15},
		{0.5, -0.5},
	}
	for _, c := range coords {
		p, err := f.Lift(c[0], c[1])
		if err != nil {
			t.Fatalf("coordinates %v: unexpected error: %v", c, err)
		}
		if got := r3.Norm(p); math.Abs(got-1) > 1e-9 {
			t.Errorf("coordinates %v: norm: got %.12f, want 1", c, got)
		}
		// tangent components are preserved exactly
		if got := r3.Dot(p, f.U); math.Abs(got-c[0]) > 1e-9 {
			t.Errorf("coordinates %v: u component: got %.12f, want %.6f", c, got, c[0])
		}
		if got := r3.Dot(p, f.V); math.Abs(got-c[1]) > 1e-9 {
			t.Errorf("coordinates %v: v component: got %.12f, want %.6f", c, got, c[1])
		}
	}

	if _, err := f.Lift(1, 1); err == nil {
		t.Errorf("expecting error for a point outside the unit disc")
	}
}
