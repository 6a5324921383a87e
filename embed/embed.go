// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package embed defines the contract
// for the per group 2D embedders,
// and provides a default implementation
// based on classical multidimensional scaling.
package embed

import (
	"fmt"
	"runtime"
	"slices"

	"github.com/js-arias/phylosphere/dmatrix"
	"github.com/js-arias/phylosphere/mds"
	"github.com/js-arias/phylosphere/taxonomy"
)

// A Point is the location of a taxon
// in a 2D group layout.
type Point struct {
	Taxon string
	X, Y  float64
}

// A Layout is the planar arrangement
// of the members of a group.
type Layout []Point

// An Embedder produces a 2D layout
// for a set of taxa,
// using their distances in the given matrix.
//
// The returned layout must contain
// one point per input taxon.
// The scale and orientation of the layout
// are up to the implementation,
// as the grafting step will re-center
// and re-scale the layout anyway.
type Embedder interface {
	Embed(taxa []string, dm *dmatrix.Matrix) (Layout, error)
}

// An InsufficientDataError is an error produced
// when a group is too small to be embedded.
type InsufficientDataError struct {
	Group   string
	Members int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("group %q: unable to embed %d members", e.Group, e.Members)
}

// MDS returns the default embedder,
// which scales the patristic distances of the group
// into two dimensions.
func MDS() Embedder {
	return mdsEmbedder{}
}

type mdsEmbedder struct{}

func (mdsEmbedder) Embed(taxa []string, dm *dmatrix.Matrix) (Layout, error) {
	sub, err := dm.Sub(taxa)
	if err != nil {
		return nil, err
	}
	c, err := mds.Scale(sub.Sym(), 2)
	if err != nil {
		return nil, err
	}

	sorted := sub.Taxa()
	l := make(Layout, 0, len(sorted))
	for i, tn := range sorted {
		l = append(l, Point{
			Taxon: tn,
			X:     c.At(i, 0),
			Y:     c.At(i, 1),
		})
	}
	return l, nil
}

// AllGroups embeds every group of the matrix taxa
// and returns the layouts indexed by group.
// Groups are embedded concurrently;
// use cpu to define the number of process used,
// the default (zero) uses all available CPU.
//
// Every taxon of the matrix must have
// a taxonomy record,
// and every group must have at least three members.
// If any group fails,
// no layout is returned.
func AllGroups(dm *dmatrix.Matrix, tax *taxonomy.Taxonomy, e Embedder, cpu int) (map[string]Layout, error) {
	if cpu == 0 {
		cpu = runtime.NumCPU()
	}

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
	for _, g := range groups {
		if len(members[g]) < 3 {
			return nil, &InsufficientDataError{Group: g, Members: len(members[g])}
		}
	}

	type answer struct {
		group  string
		layout Layout
		err    error
	}
	jobChan := make(chan string, cpu*2)
	ansChan := make(chan answer, cpu*2)
	for range cpu {
		go func() {
			for g := range jobChan {
				l, err := e.Embed(members[g], dm)
				ansChan <- answer{group: g, layout: l, err: err}
			}
		}()
	}
	go func() {
		for _, g := range groups {
			jobChan <- g
		}
		close(jobChan)
	}()

	layouts := make(map[string]Layout, len(groups))
	var err error
	for range groups {
		a := <-ansChan
		if a.err != nil {
			if err == nil {
				err = fmt.Errorf("group %q: %v", a.group, a.err)
			}
			continue
		}
		layouts[a.group] = a.layout
	}
	if err != nil {
		return nil, err
	}
	return layouts, nil
}
