// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/phylosphere/dmatrix"
	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/taxonomy"
	"github.com/js-arias/timetree"
)

// Distances reads the patristic distance matrix file
// as defined in a project.
func (p *Project) Distances() (*dmatrix.Matrix, error) {
	name := p.Path(Distances)
	if name == "" {
		return nil, fmt.Errorf("distances not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dm, err := dmatrix.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return dm, nil
}

// Points reads the 3D point table
// of a given dataset,
// either the final points
// or the scaffold points.
func (p *Project) Points(set Dataset) (points.List, error) {
	name := p.Path(set)
	if name == "" {
		return nil, fmt.Errorf("dataset %q not defined in project %q", set, p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ls, err := points.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return ls, nil
}

// Segments reads the branch segments
// of the scaffold tree
// as defined in a project.
func (p *Project) Segments() ([]points.Segment, error) {
	name := p.Path(ScaffoldBranches)
	if name == "" {
		return nil, fmt.Errorf("scaffold branches not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	segs, err := points.ReadSegmentTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return segs, nil
}

// Taxonomy reads the group assignments file
// as defined in a project.
func (p *Project) Taxonomy() (*taxonomy.Taxonomy, error) {
	name := p.Path(Taxonomy)
	if name == "" {
		return nil, fmt.Errorf("taxonomy not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tx, err := taxonomy.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading %q: %v", name, err)
	}
	return tx, nil
}

// Trees reads a tree collection file
// as defined in a project.
func (p *Project) Trees() (*timetree.Collection, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}
