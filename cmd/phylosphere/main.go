// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyloSphere is a tool to embed phylogenetic trees
// on the surface of a sphere.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/cmd/phylosphere/dist"
	"github.com/js-arias/phylosphere/cmd/phylosphere/draw"
	"github.com/js-arias/phylosphere/cmd/phylosphere/graftcmd"
	"github.com/js-arias/phylosphere/cmd/phylosphere/prj"
	"github.com/js-arias/phylosphere/cmd/phylosphere/relaxcmd"
	"github.com/js-arias/phylosphere/cmd/phylosphere/scaffoldcmd"
	"github.com/js-arias/phylosphere/cmd/phylosphere/taxa"
	"github.com/js-arias/phylosphere/cmd/phylosphere/tree"
)

var app = &command.Command{
	Usage: "phylosphere <command> [<argument>...]",
	Short: "a tool to embed phylogenetic trees on a sphere",
}

func init() {
	app.Add(dist.Command)
	app.Add(draw.Command)
	app.Add(graftcmd.Command)
	app.Add(prj.Command)
	app.Add(relaxcmd.Command)
	app.Add(scaffoldcmd.Command)
	app.Add(taxa.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
