// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the group assignments of a PhyloSphere project.
package list

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/project"
)

var Command = &command.Command{
	Usage: "list [--group <name>] [--groups] <project-file>",
	Short: "print the taxa of a project",
	Long: `
Command list reads the taxonomy of a PhyloSphere project and print the taxa
and their group assignments in the standard output.

The argument of the command is the name of the project file.

If the flag --groups is set, only the group names will be printed. If the
flag --group is set with a group name, only the members of that group will
be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var groupName string
var groupsFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&groupName, "group", "", "")
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

	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}

	if groupsFlag {
		for _, g := range tx.Groups() {
			fmt.Fprintf(c.Stdout(), "%s\n", g)
		}
		return nil
	}

	if groupName != "" {
		for _, tn := range tx.Members(groupName) {
			fmt.Fprintf(c.Stdout(), "%s\n", tn)
		}
		return nil
	}

	for _, tn := range tx.Taxa() {
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%s\n", tn, tx.Group(tn), tx.SubGroup(tn))
	}
	return nil
}
