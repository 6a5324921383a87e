// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package scaffoldcmd implements a command to build
// the spherical scaffold of a PhyloSphere project.
package scaffoldcmd

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/project"
	"github.com/js-arias/phylosphere/scaffold"
)

var Command = &command.Command{
	Usage: `scaffold [--seed <value>]
	[--tree <tree-name>]
	[-o|--output <file-prefix>]
	<project-file>`,
	Short: "build the spherical scaffold of a project",
	Long: `
Command scaffold picks a random representative terminal for each group of a
PhyloSphere project, scales the patristic distances among the representatives
into three dimensions, and projects the resulting points onto the surface of
a unit sphere, where they act as the anchors for the group layouts. The
branches connecting the representatives in the tree are stored as line
segments for rendering.

The argument of the command is the name of the project file.

By default the first tree of the project will be used. A different tree can
be selected with the flag --tree.

The representative of each group is picked at random. Use the flag --seed to
set the seed of the random number generator and make the selection
reproducible. If no seed is given (or the seed is zero), a new seed will be
chosen and printed in the standard output, so any run can be replayed.

The anchor points will be stored in the file '<prefix>-points.tab', and the
branch segments in the file '<prefix>-branches.tab'. The default prefix is
'scaffold'; use the flag --output, or -o, to set a different prefix.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var seed int64
var treeName string
var output string

func setFlags(c *command.Command) {
	c.Flags().Int64Var(&seed, "seed", 0, "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&output, "output", "scaffold", "")
	c.Flags().StringVar(&output, "o", "scaffold", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tc, err := p.Trees()
	if err != nil {
		return err
	}
	if treeName == "" {
		treeName = tc.Names()[0]
	}
	t := tc.Tree(treeName)
	if t == nil {
		return fmt.Errorf("tree %q not in project %q", treeName, args[0])
	}

	dm, err := p.Distances()
	if err != nil {
		return err
	}
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}

	s, err := scaffold.Build(t, dm, tx, scaffold.Options{Seed: seed})
	if err != nil {
		return fmt.Errorf("on tree %q: %v", treeName, err)
	}
	fmt.Fprintf(c.Stdout(), "seed: %d\n", s.Seed())

	ptFile := output + "-points.tab"
	if err := writePoints(ptFile, s.Points()); err != nil {
		return err
	}
	brFile := output + "-branches.tab"
	if err := writeSegments(brFile, s.Segments()); err != nil {
		return err
	}

	p.Add(project.ScaffoldPoints, ptFile)
	p.Add(project.ScaffoldBranches, brFile)
	if err := p.Write(); err != nil {
		return err
	}

	return nil
}

func writePoints(name string, pts points.List) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := pts.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func writeSegments(name string, segs []points.Segment) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := points.SegmentTSV(f, segs); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
