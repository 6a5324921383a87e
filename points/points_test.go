// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package points_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/js-arias/phylosphere/points"
	"gonum.org/v1/gonum/spatial/r3"
)

var testPoints = points.List{
	{ID: "Danaus plexippus", Group: "Lepidoptera", Kind: points.Leaf, Coord: r3.Vec{X: 0.581088, Y: -0.100323, Z: 0.807631}},
	{ID: "Catocala nupta", Group: "Lepidoptera", Kind: points.Leaf, Coord: r3.Vec{X: 0.601088, Y: -0.090323, Z: 0.793631}},
	{ID: "Bembix rostrata", Group: "Hymenoptera", Kind: points.Leaf, Coord: r3.Vec{X: -0.30012, Y: 0.70442, Z: -0.643174}},
	{ID: "node-1", Group: "", Kind: points.Internal, Coord: r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}},
}

func TestList(t *testing.T) {
	ls := make(points.List, len(testPoints))
	copy(ls, testPoints)

	want := []string{"Hymenoptera", "Lepidoptera"}
	if got := ls.Groups(); !reflect.DeepEqual(got, want) {
		t.Errorf("groups: got %v, want %v", got, want)
	}

	leps := ls.Group("Lepidoptera")
	if len(leps) != 2 {
		t.Errorf("group points: got %d, want %d", len(leps), 2)
	}

	ls.Sort()
	if ls[0].ID != "node-1" {
		t.Errorf("sort: first point %q", ls[0].ID)
	}
	if ls[1].ID != "Bembix rostrata" {
		t.Errorf("sort: second point %q", ls[1].ID)
	}
}

func TestTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := testPoints.TSV(&buf); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}

	ls, err := points.ReadTSV(&buf)
	if err != nil {
		t.Logf("input data:\n%s\n", buf.String())
		t.Fatalf("unable to read data: %v", err)
	}

	if len(ls) != len(testPoints) {
		t.Fatalf("points: got %d, want %d", len(ls), len(testPoints))
	}
	for i, p := range ls {
		w := testPoints[i]
		if p.ID != w.ID || p.Group != w.Group || p.Kind != w.Kind {
			t.Errorf("point %d: got %+v, want %+v", i, p, w)
		}
		if d := r3.Norm(p.Coord.Sub(w.Coord)); d > 1e-6 {
			t.Errorf("point %q: coordinates: got %v, want %v", p.ID, p.Coord, w.Coord)
		}
	}
}

func TestSegmentTSV(t *testing.T) {
	segs := []points.Segment{
		{ID: 0, Start: r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}, End: r3.Vec{X: 0.581088, Y: -0.100323, Z: 0.807631}},
		{ID: 1, Start: r3.Vec{X: 0.1, Y: 0.2, Z: 0.3}, End: r3.Vec{X: -0.30012, Y: 0.70442, Z: -0.643174}},
	}

	var buf bytes.Buffer
	if err := points.SegmentTSV(&buf, segs); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}

	got, err := points.ReadSegmentTSV(&buf)
	if err != nil {
		t.Logf("input data:\n%s\n", buf.String())
		t.Fatalf("unable to read data: %v", err)
	}

	if len(got) != len(segs) {
		t.Fatalf("segments: got %d, want %d", len(got), len(segs))
	}
	for i, s := range got {
		w := segs[i]
		if s.ID != w.ID {
			t.Errorf("segment %d: ID: got %d, want %d", i, s.ID, w.ID)
		}
		if d := r3.Norm(s.Start.Sub(w.Start)); d > 1e-6 {
			t.Errorf("segment %d: start: got %v, want %v", i, s.Start, w.Start)
		}
		if d := r3.Norm(s.End.Sub(w.End)); d > 1e-6 {
			t.Errorf("segment %d: end: got %v, want %v", i, s.End, w.End)
		}
	}
}

func TestReadTSVInvalidKind(t *testing.T) {
	data := "id\tgroup\tkind\tx\ty\tz\nfoo\tbar\tbranch\t0\t0\t1\n"
	if _, err := points.ReadTSV(bytes.NewBufferString(data)); err == nil {
		t.Errorf("expecting error for an invalid point kind")
	}
}
