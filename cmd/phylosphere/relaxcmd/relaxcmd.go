// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package relaxcmd implements a command to reduce
// the point overlap of a PhyloSphere embedding.
package relaxcmd

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/project"
	"github.com/js-arias/phylosphere/relax"
)

var Command = &command.Command{
	Usage: `relax [--candidates <number>] [--iterations <number>]
	[--step <value>] [--mindist <value>] [--maxdisp <value>]
	[--projection <value>]
	[--seed <value>] [--cpu <number>]
	[--set <number>]
	[-o|--output <file-prefix>]
	<project-file>`,
	Short: "reduce the point overlap of an embedding",
	Long: `
Command relax reads the point table of a PhyloSphere project and iteratively
pushes apart the points that are too close to each other, keeping each point
near its grafted position, and on the surface of the unit sphere. The
procedure is a heuristic: it reduces overlap, but it does not guarantee a
minimum distance between all points.

The argument of the command is the name of the project file.

The flag --mindist sets the distance below which two points are considered
overlapped (0.01 by default). The flag --maxdisp sets the maximum
displacement of a point from its original position (0.05 by default). The
flags --iterations and --step control the number of sweeps (100 by default)
and the fraction of the correction applied on each sweep (0.5 by default).
The flag --projection sets the strength of the re-projection onto the sphere
surface (1 by default, i.e., points are kept exactly on the sphere).

As the procedure is stochastic, several candidate solutions can be produced
with the flag --candidates; candidate i uses seed+i as its seed. Use the
flag --seed to make the run reproducible; if no seed is given, a new seed
will be chosen and reported. Candidates run in parallel; use the flag --cpu
to set the number of processes.

Each candidate will be stored in the file '<prefix>-candidate-<N>.tab'. The
default prefix is 'relaxed'; use the flag --output, or -o, to set a
different prefix. Use the flag --set with a candidate number to define that
candidate as the point table of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var candidates int
var iterations int
var step float64
var minDist float64
var maxDisp float64
var projection float64
var seed int64
var numCPU int
var setFlag int
var output string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&candidates, "candidates", 1, "")
	c.Flags().IntVar(&iterations, "iterations", 0, "")
	c.Flags().Float64Var(&step, "step", 0, "")
	c.Flags().Float64Var(&minDist, "mindist", 0, "")
	c.Flags().Float64Var(&maxDisp, "maxdisp", 0, "")
	c.Flags().Float64Var(&projection, "projection", 0, "")
	c.Flags().Int64Var(&seed, "seed", 0, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().IntVar(&setFlag, "set", -1, "")
	c.Flags().StringVar(&output, "output", "relaxed", "")
	c.Flags().StringVar(&output, "o", "relaxed", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	pts, err := p.Points(project.Points)
	if err != nil {
		return err
	}

	cs, err := relax.Run(pts, relax.Params{
		Iterations: iterations,
		Step:       step,
		MinDist:    minDist,
		MaxDisp:    maxDisp,
		Projection: projection,
		Seed:       seed,
		Candidates: candidates,
		CPU:        numCPU,
	})
	if err != nil {
		return err
	}
	if setFlag >= len(cs) {
		return fmt.Errorf("candidate %d not produced (%d candidates)", setFlag, len(cs))
	}

	for i, cand := range cs {
		name := fmt.Sprintf("%s-candidate-%d.tab", output, i)
		if err := writePoints(name, cand.Points); err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "candidate %d: seed %d: %s\n", i, cand.Seed, name)
		if i == setFlag {
			p.Add(project.Points, name)
		}
	}

	if setFlag >= 0 {
		if err := p.Write(); err != nil {
			return err
		}
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
