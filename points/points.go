// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package points provides the point
// and branch segment tables
// exchanged between the stages
// of the embedding pipeline.
package points

import (
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Kind is the kind of a point.
type Kind string

// Valid point kinds.
const (
	// A terminal of the tree
	// (i.e., a species).
	Leaf Kind = "leaf"

	// An internal node of the scaffold tree,
	// kept only to render branch segments.
	Internal Kind = "internal"
)

// A Point is a location in 3D space
// associated with a taxon or a scaffold node.
type Point struct {
	ID    string
	Group string
	Kind  Kind
	Coord r3.Vec
}

// A List is a collection of points.
type List []Point

// Groups returns the groups present in the list,
// sorted alphabetically.
func (ls List) Groups() []string {
	gs := make(map[string]bool)
	for _, p := range ls {
		if p.Group == "" {
			continue
		}
		gs[p.Group] = true
	}
	groups := make([]string, 0, len(gs))
	for g := range gs {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// Group returns the points assigned to a group.
func (ls List) Group(g string) List {
	var pts List
	for _, p := range ls {
		if p.Group == g {
			pts = append(pts, p)
		}
	}
	return pts
}

// Sort sorts a list by group,
// and by ID inside a group.
func (ls List) Sort() {
	slices.SortFunc(ls, func(a, b Point) int {
		if c := strings.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

// A Segment is a branch of the scaffold tree
// expressed as a pair of 3D locations.
type Segment struct {
	ID         int
	Start, End r3.Vec
}
