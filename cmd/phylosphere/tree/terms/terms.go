// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the trees
// of a PhyloSphere project.
package terms

import (
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/project"
	"github.com/js-arias/phylosphere/taxonomy"
)

var Command = &command.Command{
	Usage: "terms [--tree <tree-name>] [--groups] <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the trees from a PhyloSphere project and print the name of
the terminals in the standard output.

The argument of the command is the name of the project file.

By default all terminals will be printed. If the flag --tree is set, only the
terminals of the indicated tree will be printed.

If the flag --groups is set, and the project has a defined taxonomy, the group
of each terminal will be printed after its name. Terminals without an assigned
group will be marked as "NA".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var groupsFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&groupsFlag, "groups", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if p.Path(project.Trees) == "" {
		return nil
	}
	ls, err := makeTermList(p)
	if err != nil {
		return err
	}

	var tx *taxonomy.Taxonomy
	if groupsFlag && p.Path(project.Taxonomy) != "" {
		tx, err = p.Taxonomy()
		if err != nil {
			return err
		}
	}

	for _, term := range ls {
		if tx == nil {
			fmt.Fprintf(c.Stdout(), "%s\n", term)
			continue
		}
		g := tx.Group(term)
		if g == "" {
			g = "NA"
		}
		fmt.Fprintf(c.Stdout(), "%s\t%s\n", term, g)
	}

	return nil
}

func makeTermList(p *project.Project) ([]string, error) {
	c, err := p.Trees()
	if err != nil {
		return nil, err
	}

	var ls []string
	if treeName != "" {
		ls = append(ls, treeName)
	} else {
		ls = c.Names()
	}

	terms := make(map[string]bool)
	for _, tn := range ls {
		t := c.Tree(tn)
		if t == nil {
			continue
		}
		for _, tax := range t.Terms() {
			terms[tax] = true
		}
	}

	termList := make([]string, 0, len(terms))
	for tax := range terms {
		termList = append(termList, tax)
	}
	slices.Sort(termList)

	return termList, nil
}
