// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add
// group assignments to a PhyloSphere project.
package add

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phylosphere/project"
	"github.com/js-arias/phylosphere/taxonomy"
	"github.com/js-arias/phylosphere/taxonomy/taxdb"
)

var Command = &command.Command{
	Usage: `add [-f|--file <taxonomy-file>]
	[--db <database-file>]
	<project-file> [<taxonomy-file>...]`,
	Short: "add group assignments to a PhyloSphere project",
	Long: `
Command add reads one or more taxonomy files, with the group assignments of
the tree terminals, and add them to a PhyloSphere project.

The first argument of the command is the name of the project file.

One or more taxonomy files can be given as arguments. If no file is given the
assignments will be read from the standard input. A taxonomy file is a
tab-delimited file with the fields "species", "group", and "subgroup".

If the flag --db is set with a taxonomy database file (an SQLite file with
the genus-group assignments), any tree terminal without an assigned group
will be searched in the database by its genus name, and its assignment added
to the project taxonomy. Terminals with a genus not found in the database
will be reported, and must be assigned by hand.

By default the assignments will be stored in the taxonomy file currently
defined for the project. If the project does not have a taxonomy file, a new
one will be created with the name 'taxonomy.tab'. A different file name can
be defined with the flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var taxFile string
var dbFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&taxFile, "file", "", "")
	c.Flags().StringVar(&taxFile, "f", "", "")
	c.Flags().StringVar(&dbFile, "db", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := openProject(args[0])
	if err != nil {
		return err
	}

	tx := taxonomy.New()
	if tf := p.Path(project.Taxonomy); tf != "" {
		tx, err = readTaxonomy(nil, tf)
		if err != nil {
			return fmt.Errorf("on project %q: %v", tf, err)
		}
	}

	args = args[1:]
	if len(args) == 0 && dbFile == "" {
		args = append(args, "-")
	}
	for _, a := range args {
		fn := a
		if fn == "-" {
			fn = ""
			a = "stdin"
		}
		nt, err := readTaxonomy(c.Stdin(), fn)
		if err != nil {
			return err
		}
		for _, tn := range nt.Taxa() {
			if err := tx.Add(tn, nt.Group(tn), nt.SubGroup(tn)); err != nil {
				return fmt.Errorf("when adding taxa from %q: %v", a, err)
			}
		}
	}

	if dbFile != "" {
		if err := fillFromDB(c.Stderr(), p, tx); err != nil {
			return err
		}
	}

	if taxFile == "" {
		taxFile = p.Path(project.Taxonomy)
		if taxFile == "" {
			taxFile = "taxonomy.tab"
		}
	}

	if err := writeTaxonomy(tx); err != nil {
		return err
	}
	p.Add(project.Taxonomy, taxFile)
	if err := p.Write(); err != nil {
		return err
	}

	return nil
}

// FillFromDB searches the genus of every tree terminal
// without an assigned group
// in a taxonomy database,
// and adds the found assignments.
func fillFromDB(w io.Writer, p *project.Project, tx *taxonomy.Taxonomy) error {
	tc, err := p.Trees()
	if err != nil {
		return err
	}

	db, err := taxdb.Open(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, tn := range tc.Names() {
		t := tc.Tree(tn)
		if t == nil {
			continue
		}
		for _, tax := range t.Terms() {
			if tx.Group(tax) != "" {
				continue
			}
			g, sg, err := db.Genus(taxonomy.Genus(tax))
			if errors.Is(err, taxdb.ErrNotInDB) {
				fmt.Fprintf(w, "genus not in database: %s\n", tax)
				continue
			}
			if err != nil {
				return fmt.Errorf("on database %q: %v", dbFile, err)
			}
			if err := tx.Add(tax, g, sg); err != nil {
				return err
			}
		}
	}
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func readTaxonomy(r io.Reader, name string) (*taxonomy.Taxonomy, error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	tx, err := taxonomy.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return tx, nil
}

func writeTaxonomy(tx *taxonomy.Taxonomy) (err error) {
	f, err := os.Create(taxFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tx.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", taxFile, err)
	}
	return nil
}
