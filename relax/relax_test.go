// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package relax_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/relax"
	"gonum.org/v1/gonum/spatial/r3"
)

func testPoints() points.List {
	top := r3.Vec{X: 0, Y: 0, Z: 1}
	return points.List{
		// two coincident species
		{ID: "Danaus plexippus", Group: "Lepidoptera", Kind: points.Leaf, Coord: top},
		{ID: "Catocala nupta", Group: "Lepidoptera", Kind: points.Leaf, Coord: top},
		// two isolated species
		{ID: "Bembix rostrata", Group: "Hymenoptera", Kind: points.Leaf, Coord: r3.Vec{X: 1, Y: 0, Z: 0}},
		{ID: "Aleiodes gastritor", Group: "Hymenoptera2", Kind: points.Leaf, Coord: r3.Vec{X: 0, Y: 1, Z: 0}},
		// a scaffold node
		{ID: "node-0", Kind: points.Internal, Coord: r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}},
	}
}

func TestRun(t *testing.T) {
	pts := testPoints()
	params := relax.Params{
		MinDist: 0.05,
		MaxDisp: 0.05,
		Seed:    42,
	}

	cs, err := relax.Run(pts, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) != 1 {
		t.Fatalf("candidates: got %d, want %d", len(cs), 1)
	}
	c := cs[0]
	if c.Seed != 42 {
		t.Errorf("seed: got %d, want %d", c.Seed, 42)
	}
	if len(c.Points) != len(pts) {
		t.Fatalf("points: got %d, want %d", len(c.Points), len(pts))
	}

	for i, p := range c.Points {
		if p.ID != pts[i].ID {
			t.Errorf("point %d: got %q, want %q", i, p.ID, pts[i].ID)
		}
		if p.Kind != points.Leaf {
			continue
		}
		if got := r3.Norm(p.Coord); math.Abs(got-1) > 1e-9 {
			t.Errorf("point %q: norm: got %.12f, want 1", p.ID, got)
		}
	}

	// coincident points must be pushed apart
	if d := r3.Norm(c.Points[0].Coord.Sub(c.Points[1].Coord)); d < params.MinDist {
		t.Errorf("overlapped pair: distance: got %.6f, want >= %.6f", d, params.MinDist)
	}

	// points without close neighbors stay near their origin
	for _, i := range []int{2, 3} {
		if d := r3.Norm(c.Points[i].Coord.Sub(pts[i].Coord)); d > params.MaxDisp {
			t.Errorf("point %q: displacement: got %.6f, want <= %.6f", pts[i].ID, d, params.MaxDisp)
		}
	}

	// moved points keep their displacement leash
	for _, i := range []int{0, 1} {
		if d := r3.Norm(c.Points[i].Coord.Sub(pts[i].Coord)); d > params.MaxDisp+0.01 {
			t.Errorf("point %q: displacement: got %.6f, want <= %.6f", pts[i].ID, d, params.MaxDisp)
		}
	}

	// scaffold nodes never move
	if c.Points[4].Coord != pts[4].Coord {
		t.Errorf("point %q: moved to %v", pts[4].ID, c.Points[4].Coord)
	}
}

func TestRunCandidates(t *testing.T) {
	pts := testPoints()
	params := relax.Params{
		MinDist:    0.05,
		MaxDisp:    0.05,
		Seed:       42,
		Candidates: 4,
		CPU:        2,
	}

	cs, err := relax.Run(pts, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) != 4 {
		t.Fatalf("candidates: got %d, want %d", len(cs), 4)
	}
	for i, c := range cs {
		if c.Seed != 42+int64(i) {
			t.Errorf("candidate %d: seed: got %d, want %d", i, c.Seed, 42+int64(i))
		}
		if len(c.Points) != len(pts) {
			t.Errorf("candidate %d: points: got %d, want %d", i, len(c.Points), len(pts))
		}
	}

	// a replayed seed gives the same solution
	params.Candidates = 1
	rep, err := relax.Run(pts, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rep[0], cs[0]) {
		t.Errorf("candidate with seed %d is not reproducible", params.Seed)
	}
}

func TestRunInvalidParams(t *testing.T) {
	pts := testPoints()

	if _, err := relax.Run(pts, relax.Params{Step: 2}); err == nil {
		t.Errorf("expecting error for an invalid step")
	}
	if _, err := relax.Run(pts, relax.Params{MinDist: -1}); err == nil {
		t.Errorf("expecting error for a negative distance")
	}
}
