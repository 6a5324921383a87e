// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package embed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
)

var layoutHeader = []string{"id", "group", "x", "y"}

// ReadTSV reads a set of 2D group layouts
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - id, the taxon name
//   - group, the group of the taxon
//   - x, y, the coordinates of the taxon
//     in the layout of its group
//
// Here is an example file:
//
//	id	group	x	y
//	Danaus plexippus	Lepidoptera	0.581088	-0.100323
//	Catocala nupta	Lepidoptera	-0.210221	0.423918
func ReadTSV(r io.Reader) (map[string]Layout, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[h] = i
	}
	for _, h := range layoutHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	layouts := make(map[string]Layout)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		g := row[fields["group"]]
		if g == "" {
			return nil, fmt.Errorf("on row %d: expecting group name", ln)
		}
		p := Point{Taxon: row[fields["id"]]}
		if p.X, err = strconv.ParseFloat(row[fields["x"]], 64); err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "x", err)
		}
		if p.Y, err = strconv.ParseFloat(row[fields["y"]], 64); err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "y", err)
		}
		layouts[g] = append(layouts[g], p)
	}
	return layouts, nil
}

// TSV writes a set of 2D group layouts
// to a TSV file,
// sorted by group.
func TSV(w io.Writer, layouts map[string]Layout) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(layoutHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	groups := make([]string, 0, len(layouts))
	for g := range layouts {
		groups = append(groups, g)
	}
	slices.Sort(groups)

	for _, g := range groups {
		for _, p := range layouts[g] {
			row := []string{
				p.Taxon,
				g,
				strconv.FormatFloat(p.X, 'f', 6, 64),
				strconv.FormatFloat(p.Y, 'f', 6, 64),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
