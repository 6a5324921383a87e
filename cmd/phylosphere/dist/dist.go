// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dist implements a command to build
// the patristic distance matrix of a tree.
package dist

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/dmatrix"
	"github.com/js-arias/phylosphere/project"
)

var Command = &command.Command{
	Usage: `dist [-f|--file <distance-file>]
	[--tree <tree-name>]
	<project-file>`,
	Short: "build the patristic distance matrix of a tree",
	Long: `
Command dist reads a tree from a PhyloSphere project, calculates the
patristic distance (i.e., the sum of the branch lengths in the path) between
every pair of terminals, and stores the resulting matrix in the project.
Distances are in million years.

The argument of the command is the name of the project file.

By default the first tree of the project will be used. A different tree can
be selected with the flag --tree.

By default the matrix will be stored in the distance file currently defined
for the project, or in the file 'distances.tab'. A different file name can be
defined with the flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var distFile string
var treeName string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&distFile, "file", "", "")
	c.Flags().StringVar(&distFile, "f", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
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

	dm, err := dmatrix.New(t)
	if err != nil {
		return fmt.Errorf("on tree %q: %v", treeName, err)
	}

	if distFile == "" {
		distFile = p.Path(project.Distances)
		if distFile == "" {
			distFile = "distances.tab"
		}
	}

	if err := writeMatrix(dm); err != nil {
		return err
	}
	p.Add(project.Distances, distFile)
	if err := p.Write(); err != nil {
		return err
	}

	return nil
}

func writeMatrix(dm *dmatrix.Matrix) (err error) {
	f, err := os.Create(distFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := dm.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", distFile, err)
	}
	return nil
}
