// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/dmatrix"
	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/project"
	"github.com/js-arias/phylosphere/taxonomy"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a PhyloSphere project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if tF := p.Path(project.Trees); tF != "" {
		if err := readTrees(c.Stdout(), tF); err != nil {
			return err
		}
	}

	if txF := p.Path(project.Taxonomy); txF != "" {
		if err := readTaxonomy(c.Stdout(), txF); err != nil {
			return err
		}
	}

	if dF := p.Path(project.Distances); dF != "" {
		if err := readDistances(c.Stdout(), dF); err != nil {
			return err
		}
	}

	if sF := p.Path(project.ScaffoldPoints); sF != "" {
		if err := readPoints(c.Stdout(), sF, "Scaffold points"); err != nil {
			return err
		}
	}

	if ptF := p.Path(project.Points); ptF != "" {
		if err := readPoints(c.Stdout(), ptF, "Embedded points"); err != nil {
			return err
		}
	}

	return nil
}

func readTrees(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("while reading file %q: %v", name, err)
	}

	fmt.Fprintf(w, "Trees:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)

	terms := make(map[string]bool)
	min := math.MaxFloat64
	var max float64
	for _, tn := range c.Names() {
		t := c.Tree(tn)
		if t == nil {
			continue
		}
		ra := float64(t.Age(t.Root())) / dmatrix.MillionYears
		if ra > max {
			max = ra
		}

		for _, tax := range t.Terms() {
			terms[tax] = true
			id, ok := t.TaxNode(tax)
			if !ok {
				continue
			}
			ta := float64(t.Age(id)) / dmatrix.MillionYears
			if ta < min {
				min = ta
			}
		}
	}
	fmt.Fprintf(w, "\ttrees: %d\n", len(c.Names()))
	fmt.Fprintf(w, "\tterminals: %d\n", len(terms))
	fmt.Fprintf(w, "\tage range: %.3f-%.3f Ma\n", min, max)
	fmt.Fprintf(w, "\n")

	return nil
}

func readTaxonomy(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	tx, err := taxonomy.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("when reading %q: %v", name, err)
	}

	fmt.Fprintf(w, "Taxonomy:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\ttaxa: %d\n", len(tx.Taxa()))
	fmt.Fprintf(w, "\tgroups: %d\n", len(tx.Groups()))
	fmt.Fprintf(w, "\n")

	return nil
}

func readDistances(w io.Writer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	dm, err := dmatrix.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("when reading %q: %v", name, err)
	}

	var max float64
	taxa := dm.Taxa()
	for i, a := range taxa {
		for _, b := range taxa[i+1:] {
			if d := dm.Distance(a, b); d > max {
				max = d
			}
		}
	}

	fmt.Fprintf(w, "Distances:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\ttaxa: %d\n", dm.Len())
	fmt.Fprintf(w, "\tmax distance: %.3f My\n", max)
	fmt.Fprintf(w, "\n")

	return nil
}

func readPoints(w io.Writer, name, header string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	ls, err := points.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("when reading %q: %v", name, err)
	}

	var leaves int
	for _, p := range ls {
		if p.Kind == points.Leaf {
			leaves++
		}
	}

	fmt.Fprintf(w, "%s:\n", header)
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\tpoints: %d (%d terminals)\n", len(ls), leaves)
	fmt.Fprintf(w, "\tgroups: %d\n", len(ls.Groups()))
	fmt.Fprintf(w, "\n")

	return nil
}
