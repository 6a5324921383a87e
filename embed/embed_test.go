// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package embed_test

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phylosphere/dmatrix"
	"github.com/js-arias/phylosphere/embed"
	"github.com/js-arias/phylosphere/taxonomy"
	"github.com/js-arias/timetree"
)

const threeGroups = "((((Aleiodes alba:1,Aleiodes bella:1):1,(Aleiodes casta:1,Aleiodes dura:1):1):2," +
	"(((Bembix alba:1,Bembix bella:1):1,(Bembix casta:1,Bembix dura:1):1):2)):1," +
	"(((Catocala alba:1,Catocala bella:1):1,(Catocala casta:1,Catocala dura:1):1):3);"

func testData(t testing.TB) (*dmatrix.Matrix, *taxonomy.Taxonomy) {
	t.Helper()

	c, err := timetree.Newick(strings.NewReader(threeGroups), "test", 0)
	if err != nil {
		t.Fatalf("unable to read newick tree: %v", err)
	}
	tt := c.Tree(c.Names()[0])

	dm, err := dmatrix.New(tt)
	if err != nil {
		t.Fatalf("unable to build distance matrix: %v", err)
	}

	tx := taxonomy.New()
	groups := map[string]string{
		"Aleiodes": "Hymenoptera",
		"Bembix":   "Hymenoptera2",
		"Catocala": "Lepidoptera",
	}
	for _, tn := range tt.Terms() {
		g := groups[taxonomy.Genus(tn)]
		if err := tx.Add(tn, g, taxonomy.Genus(tn)); err != nil {
			t.Fatalf("unable to add taxonomy of %q: %v", tn, err)
		}
	}
	return dm, tx
}

func layoutDist(l embed.Layout, a, b string) float64 {
	var pa, pb embed.Point
	for _, p := range l {
		if p.Taxon == a {
			pa = p
		}
		if p.Taxon == b {
			pb = p
		}
	}
	return math.Hypot(pa.X-pb.X, pa.Y-pb.Y)
}

func TestMDS(t *testing.T) {
	dm, tx := testData(t)

	taxa := tx.Members("Lepidoptera")
	l, err := embed.MDS().Embed(taxa, dm)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(l) != len(taxa) {
		t.Fatalf("points: got %d, want %d", len(l), len(taxa))
	}
	in := make(map[string]bool, len(l))
	for _, p := range l {
		in[p.Taxon] = true
	}
	for _, tn := range taxa {
		if !in[tn] {
			t.Errorf("taxon %q: not in layout", tn)
		}
	}

	// sister species must stay closer
	// than species of the other sub-clade
	near := layoutDist(l, "Catocala alba", "Catocala bella")
	for _, tn := range []string{"Catocala casta", "Catocala dura"} {
		if d := layoutDist(l, "Catocala alba", tn); d <= near {
			t.Errorf("layout distances unordered: d(alba,%s) = %.6f <= %.6f", tn, d, near)
		}
	}
}

func TestAllGroups(t *testing.T) {
	dm, tx := testData(t)

	seq, err := embed.AllGroups(dm, tx, embed.MDS(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seq) != 3 {
		t.Fatalf("layouts: got %d, want %d", len(seq), 3)
	}
	for g, l := range seq {
		if len(l) != 4 {
			t.Errorf("group %q: points: got %d, want %d", g, len(l), 4)
		}
	}

	par, err := embed.AllGroups(dm, tx, embed.MDS(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(par, seq) {
		t.Errorf("parallel and sequential layouts differ")
	}
}

func TestAllGroupsSmallGroup(t *testing.T) {
	dm, _ := testData(t)

	tx := taxonomy.New()
	for i, tn := range dm.Taxa() {
		g := "Big"
		if i < 2 {
			g = "Small"
		}
		if err := tx.Add(tn, g, ""); err != nil {
			t.Fatalf("unable to add taxonomy of %q: %v", tn, err)
		}
	}

	_, err := embed.AllGroups(dm, tx, embed.MDS(), 1)
	if err == nil {
		t.Fatalf("expecting error for a two member group")
	}
	var ins *embed.InsufficientDataError
	if !errors.As(err, &ins) {
		t.Fatalf("got error %q, want InsufficientDataError", err)
	}
	if ins.Group != "Small" {
		t.Errorf("group: got %q, want %q", ins.Group, "Small")
	}
	if ins.Members != 2 {
		t.Errorf("members: got %d, want %d", ins.Members, 2)
	}
}

func TestAllGroupsMissingTaxonomy(t *testing.T) {
	dm, _ := testData(t)

	_, err := embed.AllGroups(dm, taxonomy.New(), embed.MDS(), 1)
	if err == nil {
		t.Fatalf("expecting error for terminals without taxonomy")
	}
	var vErr *taxonomy.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("got error %q, want ValidationError", err)
	}
}

func TestTSV(t *testing.T) {
	dm, tx := testData(t)

	layouts, err := embed.AllGroups(dm, tx, embed.MDS(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := embed.TSV(&buf, layouts); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}

	got, err := embed.ReadTSV(&buf)
	if err != nil {
		t.Logf("input data:\n%s\n", buf.String())
		t.Fatalf("unable to read data: %v", err)
	}

	if len(got) != len(layouts) {
		t.Fatalf("layouts: got %d, want %d", len(got), len(layouts))
	}
	for g, l := range layouts {
		rt := got[g]
		if len(rt) != len(l) {
			t.Fatalf("group %q: points: got %d, want %d", g, len(rt), len(l))
		}
		for i, p := range rt {
			w := l[i]
			if p.Taxon != w.Taxon {
				t.Errorf("group %q: point %d: got %q, want %q", g, i, p.Taxon, w.Taxon)
			}
			if math.Abs(p.X-w.X) > 1e-6 || math.Abs(p.Y-w.Y) > 1e-6 {
				t.Errorf("group %q: point %q: got (%.6f, %.6f), want (%.6f, %.6f)", g, p.Taxon, p.X, p.Y, w.X, w.Y)
			}
		}
	}
}
