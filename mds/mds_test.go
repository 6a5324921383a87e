// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mds_test

import (
	"errors"
	"math"
	"testing"

	"github.com/js-arias/phylosphere/mds"
	"gonum.org/v1/gonum/mat"
)

func distMatrix(pts [][]float64) *mat.SymDense {
	n := len(pts)
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var sum float64
			for k := range pts[i] {
				df := pts[i][k] - pts[j][k]
				sum += df * df
			}
			d.SetSym(i, j, math.Sqrt(sum))
		}
	}
	return d
}

// The scaling is defined up to sign and rotation,
// so the tests compare pairwise distances,
// never coordinates.
func testConfig(t testing.TB, c *mat.Dense, d mat.Symmetric, tol float64) {
	t.Helper()

	n := d.SymmetricDim()
	_, dims := c.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var sum float64
			for k := 0; k < dims; k++ {
				df := c.At(i, k) - c.At(j, k)
				sum += df * df
			}
			got := math.Sqrt(sum)
			if want := d.At(i, j); math.Abs(got-want) > tol {
				t.Errorf("distance %d-%d: got %.6f, want %.6f", i, j, got, want)
			}
		}
	}
}

func TestScalePlanar(t *testing.T) {
	// a unit square
	pts := [][]float64{
		{0, 0},
		{1, 0},
		{1, 1},
		{0, 1},
	}
	d := distMatrix(pts)

	c, err := mds.Scale(d, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testConfig(t, c, d, 1e-9)
}

func TestScaleSpatial(t *testing.T) {
	pts := [][]float64{
		{0, 0, 0},
		{2, 0, 0},
		{0, 3, 0},
		{0, 0, 4},
		{1, 1, 1},
	}
	d := distMatrix(pts)

	c, err := mds.Scale(d, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testConfig(t, c, d, 1e-9)
}

func TestScaleDegenerate(t *testing.T) {
	// three points span at most a plane,
	// so a 3D scaling must keep the distances
	// and leave the last axis empty
	pts := [][]float64{
		{0, 0},
		{3, 0},
		{0, 4},
	}
	d := distMatrix(pts)

	c, err := mds.Scale(d, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testConfig(t, c, d, 1e-9)
}

func TestScaleInsufficientData(t *testing.T) {
	d := mat.NewSymDense(1, nil)
	_, err := mds.Scale(d, 3)
	if err == nil {
		t.Fatalf("expecting error for a single point")
	}
	var ins *mds.InsufficientDataError
	if !errors.As(err, &ins) {
		t.Fatalf("got error %q, want InsufficientDataError", err)
	}
	if ins.Points != 1 {
		t.Errorf("points: got %d, want %d", ins.Points, 1)
	}
}
