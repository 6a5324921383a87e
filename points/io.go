// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package points

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

var pointHeader = []string{"id", "group", "kind", "x", "y", "z"}

// ReadTSV reads a list of 3D points from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - id, the taxon name, or a scaffold node identifier
//   - group, the group of the point
//   - kind, either "leaf" or "internal"
//   - x, y, z, the coordinates of the point
//
// Here is an example file:
//
//	id	group	kind	x	y	z
//	Danaus plexippus	Lepidoptera	leaf	0.581088	-0.100323	0.807631
//	node-3	Lepidoptera	internal	0.320002	-0.210221	0.423918
func ReadTSV(r io.Reader) (List, error) {
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
	for _, h := range pointHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var ls List
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		p := Point{
			ID:    row[fields["id"]],
			Group: row[fields["group"]],
		}
		switch k := Kind(row[fields["kind"]]); k {
		case Leaf, Internal:
			p.Kind = k
		default:
			return nil, fmt.Errorf("on row %d: invalid point kind %q", ln, k)
		}
		p.Coord, err = readVec(row, fields, "x", "y", "z")
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		ls = append(ls, p)
	}
	return ls, nil
}

// TSV writes a list of 3D points to a TSV file.
func (ls List) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(pointHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, p := range ls {
		row := []string{
			p.ID,
			p.Group,
			string(p.Kind),
			strconv.FormatFloat(p.Coord.X, 'f', 6, 64),
			strconv.FormatFloat(p.Coord.Y, 'f', 6, 64),
			strconv.FormatFloat(p.Coord.Z, 'f', 6, 64),
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

var segmentHeader = []string{"segment", "start_x", "start_y", "start_z", "end_x", "end_y", "end_z"}

// ReadSegmentTSV reads a list of branch segments
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - segment, an integer segment identifier
//   - start_x, start_y, start_z, the start of the segment
//   - end_x, end_y, end_z, the end of the segment
func ReadSegmentTSV(r io.Reader) ([]Segment, error) {
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
	for _, h := range segmentHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var segs []Segment
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		id, err := strconv.Atoi(row[fields["segment"]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "segment", err)
		}
		s := Segment{ID: id}
		s.Start, err = readVec(row, fields, "start_x", "start_y", "start_z")
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		s.End, err = readVec(row, fields, "end_x", "end_y", "end_z")
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		segs = append(segs, s)
	}
	return segs, nil
}

// SegmentTSV writes a list of branch segments
// to a TSV file.
func SegmentTSV(w io.Writer, segs []Segment) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(segmentHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, s := range segs {
		row := []string{
			strconv.Itoa(s.ID),
			strconv.FormatFloat(s.Start.X, 'f', 6, 64),
			strconv.FormatFloat(s.Start.Y, 'f', 6, 64),
			strconv.FormatFloat(s.Start.Z, 'f', 6, 64),
			strconv.FormatFloat(s.End.X, 'f', 6, 64),
			strconv.FormatFloat(s.End.Y, 'f', 6, 64),
			strconv.FormatFloat(s.End.Z, 'f', 6, 64),
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

func readVec(row []string, fields map[string]int, fx, fy, fz string) (r3.Vec, error) {
	var v r3.Vec
	var err error
	if v.X, err = strconv.ParseFloat(row[fields[fx]], 64); err != nil {
		return r3.Vec{}, fmt.Errorf("field %q: %v", fx, err)
	}
	if v.Y, err = strconv.ParseFloat(row[fields[fy]], 64); err != nil {
		return r3.Vec{}, fmt.Errorf("field %q: %v", fy, err)
	}
	if v.Z, err = strconv.ParseFloat(row[fields[fz]], 64); err != nil {
		return r3.Vec{}, fmt.Errorf("field %q: %v", fz, err)
	}
	return v, nil
}
