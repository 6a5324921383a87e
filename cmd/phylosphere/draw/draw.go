// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// the embedded points of a PhyloSphere project
// as an orthographic projection.
package draw

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/js-arias/blind"
	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/project"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var Command = &command.Command{
	Usage: `draw [--scaffold]
	[--size <value>]
	[-o|--output <image-file>]
	<project-file>`,
	Short: "draw the embedded points of a project",
	Long: `
Command draw reads the point table of a PhyloSphere project and draws an
orthographic projection of the sphere (the X-Y plane, viewed from the
positive Z axis) into an image file. Each group is drawn with its own color;
points on the far hemisphere are drawn smaller.

The argument of the command is the name of the project file.

If the flag --scaffold is set, the branch segments of the scaffold tree will
be drawn as gray lines under the points.

The image format is defined by the extension of the output file (PNG by
default; SVG and PDF are also supported). Use the flag --output, or -o, to
set the image file name ('points.png' by default). The flag --size sets the
image side in inches (6 by default).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var scaffoldFlag bool
var size float64
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&scaffoldFlag, "scaffold", false, "")
	c.Flags().Float64Var(&size, "size", 6, "")
	c.Flags().StringVar(&output, "output", "points.png", "")
	c.Flags().StringVar(&output, "o", "points.png", "")
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

	var segs []points.Segment
	if scaffoldFlag {
		segs, err = p.Segments()
		if err != nil {
			return err
		}
	}

	sp := &spherePlot{
		pts:    pts,
		segs:   segs,
		colors: groupColors(pts.Groups()),
	}

	plt := plot.New()
	plt.HideAxes()
	plt.Add(sp)

	if err := plt.Save(vg.Length(size)*vg.Inch, vg.Length(size)*vg.Inch, output); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}

func groupColors(groups []string) map[string]color.Color {
	cols := make(map[string]color.Color, len(groups))
	for i, g := range groups {
		cols[g] = blind.Sequential(blind.Iridescent, float64(i+1)/float64(len(groups)+1))
	}
	return cols
}

// A spherePlot draws the orthographic projection
// of a point table
// on the X-Y plane.
type spherePlot struct {
	pts    points.List
	segs   []points.Segment
	colors map[string]color.Color
}

// DataRange implements the plot.DataRanger interface.
func (sp *spherePlot) DataRange() (xMin, xMax, yMin, yMax float64) {
	return -1.05, 1.05, -1.05, 1.05
}

// Plot implements the plot.Plotter interface.
func (sp *spherePlot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	// sphere outline
	sty := plotter.DefaultLineStyle
	sty.Color = color.Gray{Y: 128}
	c.SetLineStyle(sty)
	var outline vg.Path
	for i := 0; i <= 360; i++ {
		a := float64(i) * math.Pi / 180
		p := vg.Point{X: trX(math.Cos(a)), Y: trY(math.Sin(a))}
		if i == 0 {
			outline.Move(p)
			continue
		}
		outline.Line(p)
	}
	c.Stroke(outline)

	for _, s := range sp.segs {
		var p vg.Path
		p.Move(vg.Point{X: trX(s.Start.X), Y: trY(s.Start.Y)})
		p.Line(vg.Point{X: trX(s.End.X), Y: trY(s.End.Y)})
		c.Stroke(p)
	}

	// far hemisphere first,
	// so near points are drawn on top
	ids := make([]int, 0, len(sp.pts))
	for i := range sp.pts {
		ids = append(ids, i)
	}
	slices.SortFunc(ids, func(a, b int) int {
		if sp.pts[a].Coord.Z < sp.pts[b].Coord.Z {
			return -1
		}
		if sp.pts[a].Coord.Z > sp.pts[b].Coord.Z {
			return 1
		}
		return 0
	})

	for _, i := range ids {
		pt := sp.pts[i]
		col := sp.colors[pt.Group]
		if pt.Kind == points.Internal {
			col = color.Gray{64}
		}
		r := vg.Points(3)
		if pt.Coord.Z < 0 {
			r = vg.Points(1.5)
		}

		var p vg.Path
		p.Arc(vg.Point{X: trX(pt.Coord.X), Y: trY(pt.Coord.Y)}, r, 0, 2*math.Pi)
		p.Close()
		c.SetColor(col)
		c.Fill(p)
	}
}
