// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

var header = []string{"species", "group", "subgroup"}

// ReadTSV reads a taxonomy from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - species, the name of the taxon
//   - group, the name of its group (e.g. the taxonomic order)
//   - subgroup, the name of its sub-group (e.g. the family)
//
// Here is an example file:
//
//	species	group	subgroup
//	Danaus plexippus	Lepidoptera	Nymphalidae
//	Catocala nupta	Lepidoptera	Erebidae
//	Bembix rostrata	Hymenoptera	Crabronidae
func ReadTSV(r io.Reader) (*Taxonomy, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[Canon(h)] = i
	}
	for _, h := range header {
		if _, ok := fields[Canon(h)]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	tx := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		sp := row[fields[Canon("species")]]
		g := row[fields[Canon("group")]]
		sg := row[fields[Canon("subgroup")]]
		if err := tx.Add(sp, g, sg); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return tx, nil
}

// TSV writes a taxonomy to a TSV file,
// with the taxa in alphabetical order.
func (tx *Taxonomy) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, tax := range tx.Taxa() {
		row := []string{
			tax,
			tx.Group(tax),
			tx.SubGroup(tax),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
