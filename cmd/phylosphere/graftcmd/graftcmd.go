// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package graftcmd implements a command to embed
// the groups of a PhyloSphere project
// and graft the layouts onto the scaffold.
package graftcmd

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/embed"
	"github.com/js-arias/phylosphere/graft"
	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/project"
	"github.com/js-arias/phylosphere/scaffold"
)

var Command = &command.Command{
	Usage: `graft [--cpu <number>] [--radius <value>]
	[--layouts <layout-file>]
	[-o|--output <point-file>]
	<project-file>`,
	Short: "embed the groups and graft them onto the scaffold",
	Long: `
Command graft builds a 2D layout for each group of a PhyloSphere project,
using the patristic distances of the group members, and maps each layout onto
the surface of the unit sphere around the scaffold anchor of the group. The
result is a 3D point table with one point per tree terminal.

The argument of the command is the name of the project file.

Each layout is centered at its centroid, and scaled so its farthest point
lies at a fixed distance in the tangent plane of the anchor. By default this
distance is 0.15; use the flag --radius to set a different value (it must be
smaller than 1, the radius of the sphere).

The groups are embedded in parallel. Use the flag --cpu to set the number of
processes; the default uses all available processors.

If the flag --layouts is set with a file name, the intermediate 2D layouts
will be stored in that file.

The point table will be stored in the file given with the flag --output, or
-o ('points.tab' by default).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var numCPU int
var radius float64
var layoutFile string
var output string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().Float64Var(&radius, "radius", 0, "")
	c.Flags().StringVar(&layoutFile, "layouts", "", "")
	c.Flags().StringVar(&output, "output", "points.tab", "")
	c.Flags().StringVar(&output, "o", "points.tab", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	dm, err := p.Distances()
	if err != nil {
		return err
	}
	tx, err := p.Taxonomy()
	if err != nil {
		return err
	}
	sp, err := p.Points(project.ScaffoldPoints)
	if err != nil {
		return err
	}
	segs, err := p.Segments()
	if err != nil {
		return err
	}
	sc, err := scaffold.FromPoints(sp, segs)
	if err != nil {
		return err
	}

	layouts, err := embed.AllGroups(dm, tx, embed.MDS(), numCPU)
	if err != nil {
		return err
	}
	if layoutFile != "" {
		if err := writeLayouts(layouts); err != nil {
			return err
		}
	}

	pts, err := graft.Graft(sc, layouts, graft.Options{Radius: radius})
	if err != nil {
		return err
	}

	if err := writePoints(pts); err != nil {
		return err
	}
	p.Add(project.Points, output)
	if err := p.Write(); err != nil {
		return err
	}

	return nil
}

func writeLayouts(layouts map[string]embed.Layout) (err error) {
	f, err := os.Create(layoutFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := embed.TSV(f, layouts); err != nil {
		return fmt.Errorf("while writing to %q: %v", layoutFile, err)
	}
	return nil
}

func writePoints(pts points.List) (err error) {
	f, err := os.Create(output)
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
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}
