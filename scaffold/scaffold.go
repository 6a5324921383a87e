// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package scaffold builds the coarse skeleton
// of a tree embedding:
// a single representative terminal is picked per group,
// the distances among the representatives
// are scaled into three dimensions,
// and the resulting points are projected
// onto the surface of a unit sphere,
// where they serve as the anchors
// for the per group layouts.
package scaffold

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/js-arias/phylosphere/dmatrix"
	"github.com/js-arias/phylosphere/mds"
	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/sphere"
	"github.com/js-arias/phylosphere/taxonomy"
	"github.com/js-arias/timetree"
	"gonum.org/v1/gonum/spatial/r3"
)

// An InsufficientDataError is an error produced
// when there are too few groups
// to build a scaffold.
type InsufficientDataError struct {
	Groups int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("unable to build a scaffold with %d groups", e.Groups)
}

// Options are the configuration parameters
// of a scaffold build.
type Options struct {
	// Seed for the random selection
	// of the group representatives.
	// If zero,
	// a seed is drawn from the global generator;
	// the seed actually used is reported
	// by the Seed method,
	// so any run can be replayed.
	Seed int64
}

// A Scaffold is a one-representative-per-group skeleton
// embedded on the surface of a unit sphere.
type Scaffold struct {
	seed   int64
	groups []string
	reps   map[string]string // group -> representative terminal
	anchor map[string]r3.Vec
	pts    points.List
	segs   []points.Segment
}

// Build creates a scaffold
// from a tree,
// its distance matrix,
// and the group assignments of its terminals.
//
// At least two groups are required.
// Note that with two or three groups
// the scaling is degenerate
// (the anchors will be, at best, coplanar);
// four or more groups are required
// for a full 3D structure.
//
// With a fixed seed the scaffold is reproducible:
// two builds on the same inputs
// produce identical anchors.
func Build(t *timetree.Tree, dm *dmatrix.Matrix, tax *taxonomy.Taxonomy, opts Options) (*Scaffold, error) {
	members := make(map[string][]string)
	for _, tn := range dm.Taxa() {
		g := tax.Group(tn)
		if g == "" {
			return nil, &taxonomy.ValidationError{Taxon: tn, Msg: "taxon without a taxonomy record"}
		}
		members[g] = append(members[g], tn)
	}

	groups := make([]string, 0, len(members))
	for g := range members {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	if len(groups) < 2 {
		return nil, &InsufficientDataError{Groups: len(groups)}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Int64()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	reps := make(map[string]string, len(groups))
	groupOf := make(map[string]string, len(groups))
	repTaxa := make([]string, 0, len(groups))
	for _, g := range groups {
		ms := members[g]
		rep := ms[rng.IntN(len(ms))]
		reps[g] = rep
		groupOf[rep] = g
		repTaxa = append(repTaxa, rep)
	}

	sub, err := dm.Sub(repTaxa)
	if err != nil {
		return nil, err
	}
	c, err := mds.Scale(sub.Sym(), 3)
	if err != nil {
		return nil, err
	}

	s := &Scaffold{
		seed:   seed,
		groups: groups,
		reps:   reps,
		anchor: make(map[string]r3.Vec, len(groups)),
	}
	for i, tn := range sub.Taxa() {
		v := r3.Vec{X: c.At(i, 0), Y: c.At(i, 1), Z: c.At(i, 2)}
		n, err := sphere.Normalize(v)
		if err != nil {
			return nil, fmt.Errorf("group %q: %v", groupOf[tn], err)
		}
		s.anchor[groupOf[tn]] = n
	}

	for _, g := range groups {
		s.pts = append(s.pts, points.Point{
			ID:    reps[g],
			Group: g,
			Kind:  points.Leaf,
			Coord: s.anchor[g],
		})
	}
	s.branches(t, groupOf)

	return s, nil
}

// FromPoints rebuilds a scaffold
// from a stored point table
// and its branch segments.
// Only anchors and geometry are recovered;
// the seed of the original build is not stored
// in the point table,
// so Seed will return zero.
func FromPoints(pts points.List, segs []points.Segment) (*Scaffold, error) {
	s := &Scaffold{
		reps:   make(map[string]string),
		anchor: make(map[string]r3.Vec),
		pts:    slices.Clone(pts),
		segs:   slices.Clone(segs),
	}
	for _, p := range pts {
		if p.Kind != points.Leaf {
			continue
		}
		if p.Group == "" {
			return nil, fmt.Errorf("point %q: anchor without a group", p.ID)
		}
		if _, dup := s.anchor[p.Group]; dup {
			return nil, fmt.Errorf("group %q: repeated anchor", p.Group)
		}
		s.groups = append(s.groups, p.Group)
		s.reps[p.Group] = p.ID
		s.anchor[p.Group] = p.Coord
	}
	if len(s.groups) < 2 {
		return nil, &InsufficientDataError{Groups: len(s.groups)}
	}
	slices.Sort(s.groups)
	return s, nil
}

// Seed returns the seed used
// for the representative selection.
func (s *Scaffold) Seed() int64 {
	return s.seed
}

// Groups returns the groups of the scaffold,
// sorted alphabetically.
func (s *Scaffold) Groups() []string {
	return slices.Clone(s.groups)
}

// Rep returns the representative terminal of a group.
func (s *Scaffold) Rep(group string) string {
	return s.reps[group]
}

// Anchor returns the location of a group anchor
// on the surface of the unit sphere.
func (s *Scaffold) Anchor(group string) (r3.Vec, bool) {
	v, ok := s.anchor[group]
	return v, ok
}

// Points returns the anchors
// and the internal nodes of the scaffold
// as a point list.
func (s *Scaffold) Points() points.List {
	return slices.Clone(s.pts)
}

// Segments returns the branches of the scaffold tree
// as a list of 3D segments.
func (s *Scaffold) Segments() []points.Segment {
	return slices.Clone(s.segs)
}

// An rNode is a node of the reduced tree,
// i.e., the original tree
// restricted to the representative terminals,
// with unary nodes suppressed.
type rNode struct {
	pos  r3.Vec
	age  int64
	kids []*rNode
}

// Branches locates the internal nodes of the reduced tree
// and stores its branches as segments.
// The position of an internal node
// is the average of its child positions,
// weighted by the inverse of the branch length,
// so short branches keep nodes close to their descendants.
// Internal positions are for rendering only:
// they are not constrained to the sphere.
func (s *Scaffold) branches(t *timetree.Tree, groupOf map[string]string) {
	root := s.reduce(t, t.Root(), groupOf)
	if root == nil || len(root.kids) == 0 {
		return
	}

	nodes := []*rNode{root}
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		s.pts = append(s.pts, points.Point{
			ID:    fmt.Sprintf("node-%d", i),
			Kind:  points.Internal,
			Coord: n.pos,
		})
		for _, k := range n.kids {
			s.segs = append(s.segs, points.Segment{
				ID:    len(s.segs),
				Start: n.pos,
				End:   k.pos,
			})
			if len(k.kids) > 0 {
				nodes = append(nodes, k)
			}
		}
	}
}

func (s *Scaffold) reduce(t *timetree.Tree, n int, groupOf map[string]string) *rNode {
	if t.IsTerm(n) {
		g, ok := groupOf[t.Taxon(n)]
		if !ok {
			return nil
		}
		return &rNode{pos: s.anchor[g], age: t.Age(n)}
	}

	var kids []*rNode
	for _, c := range t.Children(n) {
		if k := s.reduce(t, c, groupOf); k != nil {
			kids = append(kids, k)
		}
	}
	if len(kids) == 0 {
		return nil
	}
	if len(kids) == 1 {
		return kids[0]
	}

	var sum r3.Vec
	var wt float64
	for _, k := range kids {
		w := 1 / (1 + float64(t.Age(n)-k.age)/dmatrix.MillionYears)
		sum = r3.Add(sum, r3.Scale(w, k.pos))
		wt += w
	}
	return &rNode{
		pos:  r3.Scale(1/wt, sum),
		age:  t.Age(n),
		kids: kids,
	}
}
