// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxa is a metapackage for commands
// that dealt with the group assignments
// of the tree terminals.
package taxa

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/cmd/phylosphere/taxa/add"
	"github.com/js-arias/phylosphere/cmd/phylosphere/taxa/list"
)

var Command = &command.Command{
	Usage: "taxa <command> [<argument>...]",
	Short: "commands for the taxonomy of the tree terminals",
}

func init() {
	Command.Add(add.Command)
	Command.Add(list.Command)
}
