// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package relax implements a heuristic procedure
// to reduce point overlap
// on the surface of the unit sphere.
//
// Pairs of points closer than a minimum distance
// are pushed apart,
// displaced points are pulled back
// towards their grafted positions,
// and all points are re-projected
// onto the sphere,
// for a fixed number of iterations.
// The procedure is stochastic,
// so several candidate solutions
// can be produced from derived seeds
// and compared by eye.
package relax

import (
	"fmt"
	"math/rand/v2"
	"runtime"

	"github.com/js-arias/phylosphere/points"
	"gonum.org/v1/gonum/spatial/r3"
)

// Default parameter values.
const (
	DefIterations = 100
	DefStep       = 0.5
	DefMinDist    = 0.01
	DefMaxDisp    = 0.05
	DefPull       = 1.0
	DefProjection = 1.0
)

// Overshoot of the pair separation,
// so a corrected pair ends up
// slightly beyond the minimum distance
// even after the re-projection.
const overshoot = 1.05

// Params are the parameters of a relaxation run.
// Zero values are replaced by the package defaults.
type Params struct {
	// Iterations is the number of relaxation sweeps.
	Iterations int

	// Step is the fraction of the required correction
	// applied on each sweep.
	Step float64

	// MinDist is the distance below which
	// two points are considered overlapped.
	MinDist float64

	// MaxDisp is the maximum displacement of a point
	// from its grafted position.
	MaxDisp float64

	// Pull is the fraction of the excess displacement
	// removed on each sweep.
	Pull float64

	// Projection is the strength of the re-projection
	// onto the sphere surface:
	// one projects every point exactly onto the sphere
	// on each sweep,
	// smaller values only move the points
	// towards the surface.
	Projection float64

	// Seed of the first candidate;
	// candidate i uses Seed+i.
	// If zero,
	// a seed is drawn from the global generator.
	Seed int64

	// Candidates is the number of candidate solutions.
	Candidates int

	// CPU is the number of process
	// used to run the candidates.
	// The default (zero) uses all available CPU.
	CPU int
}

func (p Params) withDefaults() Params {
	if p.Iterations == 0 {
		p.Iterations = DefIterations
	}
	if p.Step == 0 {
		p.Step = DefStep
	}
	if p.MinDist == 0 {
		p.MinDist = DefMinDist
	}
	if p.MaxDisp == 0 {
		p.MaxDisp = DefMaxDisp
	}
	if p.Pull == 0 {
		p.Pull = DefPull
	}
	if p.Projection == 0 {
		p.Projection = DefProjection
	}
	if p.Seed == 0 {
		p.Seed = rand.Int64()
	}
	if p.Candidates == 0 {
		p.Candidates = 1
	}
	if p.CPU == 0 {
		p.CPU = runtime.NumCPU()
	}
	return p
}

// A Candidate is a relaxed copy of the input points,
// together with the seed that produced it,
// so it can be replayed.
type Candidate struct {
	Seed   int64
	Points points.List
}

// Run produces one or more relaxed candidates
// from a list of points.
// Only leaf points are moved;
// the internal points of the scaffold
// pass through unchanged.
// Candidates run concurrently.
//
// Each returned candidate keeps the points
// in the same order as the input list.
func Run(pts points.List, p Params) ([]Candidate, error) {
	p = p.withDefaults()
	if p.Step < 0 || p.Step > 1 {
		return nil, fmt.Errorf("invalid relax step %.6f", p.Step)
	}
	if p.MinDist < 0 || p.MaxDisp < 0 || p.Pull < 0 {
		return nil, fmt.Errorf("invalid relax parameters")
	}
	if p.Projection < 0 || p.Projection > 1 {
		return nil, fmt.Errorf("invalid relax projection %.6f", p.Projection)
	}

	cpu := p.CPU
	if cpu > p.Candidates {
		cpu = p.Candidates
	}

	type answer struct {
		i int
		c Candidate
	}
	jobChan := make(chan int, cpu*2)
	ansChan := make(chan answer, cpu*2)
	for range cpu {
		go func() {
			for i := range jobChan {
				seed := p.Seed + int64(i)
				ansChan <- answer{
					i: i,
					c: Candidate{
						Seed:   seed,
						Points: relaxCopy(pts, p, seed),
					},
				}
			}
		}()
	}
	go func() {
		for i := range p.Candidates {
			jobChan <- i
		}
		close(jobChan)
	}()

	cs := make([]Candidate, p.Candidates)
	for range p.Candidates {
		a := <-ansChan
		cs[a.i] = a.c
	}
	return cs, nil
}

func relaxCopy(pts points.List, p Params, seed int64) points.List {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	out := make(points.List, len(pts))
	copy(out, pts)

	// indexes of the movable points
	var leaves []int
	for i, pt := range out {
		if pt.Kind == points.Leaf {
			leaves = append(leaves, i)
		}
	}
	orig := make([]r3.Vec, len(out))
	for _, i := range leaves {
		orig[i] = out[i].Coord
	}

	for range p.Iterations {
		// push overlapped pairs apart
		for x := 0; x < len(leaves); x++ {
			i := leaves[x]
			for y := x + 1; y < len(leaves); y++ {
				j := leaves[y]
				dv := r3.Sub(out[i].Coord, out[j].Coord)
				d := r3.Norm(dv)
				if d >= p.MinDist {
					continue
				}
				var dir r3.Vec
				if d < 1e-12 {
					dir = randDir(rng)
				} else {
					dir = r3.Scale(1/d, dv)
				}
				shift := p.Step * (p.MinDist*overshoot - d) / 2
				out[i].Coord = r3.Add(out[i].Coord, r3.Scale(shift, dir))
				out[j].Coord = r3.Sub(out[j].Coord, r3.Scale(shift, dir))
			}
		}

		// pull back the points displaced too far
		for _, i := range leaves {
			dv := r3.Sub(out[i].Coord, orig[i])
			d := r3.Norm(dv)
			if d <= p.MaxDisp {
				continue
			}
			back := p.Pull * (d - p.MaxDisp)
			out[i].Coord = r3.Sub(out[i].Coord, r3.Scale(back/d, dv))
		}

		// back to the sphere
		for _, i := range leaves {
			n := r3.Norm(out[i].Coord)
			if n < 1e-12 {
				continue
			}
			s := p.Projection/n + (1 - p.Projection)
			out[i].Coord = r3.Scale(s, out[i].Coord)
		}
	}
	return out
}

// RandDir returns a random unit vector,
// drawn uniformly on the sphere
// by rejection sampling.
func randDir(rng *rand.Rand) r3.Vec {
	for {
		v := r3.Vec{
			X: rng.Float64()*2 - 1,
			Y: rng.Float64()*2 - 1,
			Z: rng.Float64()*2 - 1,
		}
		n := r3.Norm(v)
		if n < 1e-6 || n > 1 {
			continue
		}
		return r3.Scale(1/n, v)
	}
}
