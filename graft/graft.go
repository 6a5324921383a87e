// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package graft maps the 2D layout of each group
// onto the surface of the unit sphere,
// around the scaffold anchor of the group.
//
// Each layout is centered at its centroid,
// scaled so its farthest point
// lies at a fixed tangent radius,
// and lifted through the tangent frame of the anchor,
// so the points of the group
// form a small spherical cap around it.
package graft

import (
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/phylosphere/embed"
	"github.com/js-arias/phylosphere/points"
	"github.com/js-arias/phylosphere/scaffold"
	"github.com/js-arias/phylosphere/sphere"
)

// DefRadius is the default tangent radius
// of a grafted group.
const DefRadius = 0.15

// Options are the configuration parameters
// of a grafting.
type Options struct {
	// Radius is the maximum tangent radius
	// of a grafted layout.
	// If zero,
	// DefRadius will be used.
	// It must be smaller than one
	// (the radius of the sphere).
	Radius float64

	// Frame is the configuration
	// used to build the tangent frames
	// of the anchors.
	Frame sphere.FrameOpts
}

// Graft maps a set of 2D group layouts
// onto the sphere of a scaffold.
// Every group in the layouts
// must have an anchor in the scaffold.
//
// The returned list contains one leaf point
// per layout point,
// keeping the relative distances inside each group
// up to a single per group scale factor.
func Graft(sc *scaffold.Scaffold, layouts map[string]embed.Layout, opts Options) (points.List, error) {
	if opts.Radius == 0 {
		opts.Radius = DefRadius
	}
	if opts.Radius < 0 || opts.Radius >= 1 {
		return nil, fmt.Errorf("invalid graft radius %.6f", opts.Radius)
	}

	groups := make([]string, 0, len(layouts))
	for g := range layouts {
		groups = append(groups, g)
	}
	slices.Sort(groups)

	var pts points.List
	for _, g := range groups {
		a, ok := sc.Anchor(g)
		if !ok {
			return nil, fmt.Errorf("group %q: not in scaffold", g)
		}
		f, err := sphere.NewFrame(a, opts.Frame)
		if err != nil {
			return nil, fmt.Errorf("group %q: %v", g, err)
		}

		l := layouts[g]
		cx, cy := centroid(l)
		scale := opts.Radius / maxRadius(l, cx, cy)
		for _, p := range l {
			v, err := f.Lift((p.X-cx)*scale, (p.Y-cy)*scale)
			if err != nil {
				return nil, fmt.Errorf("group %q: taxon %q: %v", g, p.Taxon, err)
			}
			pts = append(pts, points.Point{
				ID:    p.Taxon,
				Group: g,
				Kind:  points.Leaf,
				Coord: v,
			})
		}
	}
	return pts, nil
}

func centroid(l embed.Layout) (x, y float64) {
	for _, p := range l {
		x += p.X
		y += p.Y
	}
	n := float64(len(l))
	return x / n, y / n
}

// MaxRadius returns the distance
// from the centroid
// to the farthest point of a layout.
// For a zero extent layout
// (a single point,
// or several identical points)
// it returns one,
// so all points collapse to the anchor.
func maxRadius(l embed.Layout, cx, cy float64) float64 {
	var far float64
	for _, p := range l {
		dx := p.X - cx
		dy := p.Y - cy
		if r2 := dx*dx + dy*dy; r2 > far {
			far = r2
		}
	}
	if far == 0 {
		return 1
	}
	return math.Sqrt(far)
}
