// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mds implements classical
// (distance based)
// multidimensional scaling.
//
// The scaling is based on an eigendecomposition,
// so the sign of each axis,
// and the overall rotation of the configuration,
// are undetermined:
// two runs on equivalent inputs are guaranteed to agree
// only on the pairwise distances of the resulting points,
// never on absolute coordinates.
package mds

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// An InsufficientDataError is an error produced
// when a distance matrix is too small
// to be scaled.
type InsufficientDataError struct {
	Points int // points in the matrix
	Dims   int // requested dimensions
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("unable to scale %d points into %d dimensions", e.Points, e.Dims)
}

// Scale returns a configuration of points
// in the indicated number of dimensions,
// one row per point,
// whose pairwise distances approximate
// the given distance matrix
// as well as possible in the least squares sense
// (the Torgerson scaling).
//
// The squared distances are double centered
// and eigendecomposed;
// the coordinates are the top eigenvectors
// scaled by the square root of their eigenvalues.
// Axes associated with null or negative eigenvalues
// are set to zero,
// so a configuration can be degenerate
// (e.g., three points are always coplanar,
// whatever the number of requested dimensions).
func Scale(d mat.Symmetric, dims int) (*mat.Dense, error) {
	n := d.SymmetricDim()
	if n < 2 || dims < 1 {
		return nil, &InsufficientDataError{Points: n, Dims: dims}
	}

	// double centering of the squared distances:
	// b = -J d² J / 2
	sq := make([][]float64, n)
	rowMean := make([]float64, n)
	var mean float64
	for i := range sq {
		sq[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v := d.At(i, j)
			sq[i][j] = v * v
			rowMean[i] += sq[i][j]
		}
		rowMean[i] /= float64(n)
		mean += rowMean[i]
	}
	mean /= float64(n)

	b := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			b.SetSym(i, j, -(sq[i][j]-rowMean[i]-rowMean[j]+mean)/2)
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(b, true) {
		return nil, fmt.Errorf("eigendecomposition failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	// eigenvalues are reported in ascending order
	c := mat.NewDense(n, dims, nil)
	for k := 0; k < dims && k < n; k++ {
		col := n - 1 - k
		ev := vals[col]
		if ev <= 0 {
			continue
		}
		s := math.Sqrt(ev)
		for i := 0; i < n; i++ {
			c.Set(i, k, vecs.At(i, col)*s)
		}
	}
	return c, nil
}
