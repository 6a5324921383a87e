// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dmatrix

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
)

// ReadTSV reads a distance matrix from a TSV file.
//
// The file is a square table:
// the first column,
// named "taxon",
// contains the terminal names,
// and there is one additional column per terminal.
// Here is an example file:
//
//	taxon	Canis lupus	Felis catus	Ursus arctos
//	Canis lupus	0.000000	110.000000	92.000000
//	Felis catus	110.000000	0.000000	110.000000
//	Ursus arctos	92.000000	110.000000	0.000000
func ReadTSV(r io.Reader) (*Matrix, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	if len(head) < 3 {
		return nil, fmt.Errorf("expecting at least two terminals, got %d", len(head)-1)
	}
	if !strings.EqualFold(head[0], "taxon") {
		return nil, fmt.Errorf("expecting field %q", "taxon")
	}

	cols := make(map[string]int, len(head)-1)
	taxa := make([]string, 0, len(head)-1)
	for i, h := range head[1:] {
		if _, dup := cols[h]; dup {
			return nil, fmt.Errorf("taxon %q: repeated column", h)
		}
		cols[h] = i + 1
		taxa = append(taxa, h)
	}
	slices.Sort(taxa)

	m := newMatrix(taxa)
	rows := 0
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		tax := row[0]
		i, ok := m.ids[tax]
		if !ok {
			return nil, fmt.Errorf("on row %d: taxon %q: not in header", ln, tax)
		}
		for _, other := range taxa {
			v, err := strconv.ParseFloat(row[cols[other]], 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: taxon %q: %v", ln, other, err)
			}
			if v < 0 {
				return nil, fmt.Errorf("on row %d: taxon %q: negative distance", ln, other)
			}
			m.m[i][m.ids[other]] = v
		}
		rows++
	}
	if rows != len(taxa) {
		return nil, fmt.Errorf("got %d rows, want %d", rows, len(taxa))
	}

	for i := range taxa {
		if m.m[i][i] != 0 {
			return nil, fmt.Errorf("taxon %q: non-zero self distance", taxa[i])
		}
		for j := i + 1; j < len(taxa); j++ {
			if math.Abs(m.m[i][j]-m.m[j][i]) > 1e-6 {
				return nil, fmt.Errorf("taxa %q, %q: asymmetric distances", taxa[i], taxa[j])
			}
		}
	}
	return m, nil
}

// TSV writes a distance matrix to a TSV file,
// as a square table with the terminals
// in alphabetical order.
func (m *Matrix) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := append([]string{"taxon"}, m.taxa...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	row := make([]string, len(m.taxa)+1)
	for i, tax := range m.taxa {
		row[0] = tax
		for j := range m.taxa {
			row[j+1] = strconv.FormatFloat(m.m[i][j], 'f', 6, 64)
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
