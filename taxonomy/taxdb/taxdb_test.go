// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxdb_test

import (
	"errors"
	"testing"

	"github.com/js-arias/phylosphere/taxonomy/taxdb"
)

func TestDB(t *testing.T) {
	db, err := taxdb.Open(":memory:")
	if err != nil {
		t.Fatalf("unable to open database: %v", err)
	}
	defer db.Close()

	if err := db.Add("Danaus", "Lepidoptera", "Nymphalidae"); err != nil {
		t.Fatalf("unable to add genus: %v", err)
	}
	if err := db.Add("Bembix", "Hymenoptera", "Crabronidae"); err != nil {
		t.Fatalf("unable to add genus: %v", err)
	}

	g, sg, err := db.Genus("Danaus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g != "Lepidoptera" || sg != "Nymphalidae" {
		t.Errorf("genus Danaus: got %q, %q, want %q, %q", g, sg, "Lepidoptera", "Nymphalidae")
	}

	// names are canonized
	if _, _, err := db.Genus("DANAUS"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// a genus already stored is left untouched
	if err := db.Add("Danaus", "Hymenoptera", "Apidae"); err != nil {
		t.Fatalf("unable to re-add genus: %v", err)
	}
	g, _, err = db.Genus("Danaus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g != "Lepidoptera" {
		t.Errorf("genus Danaus: got %q, want %q", g, "Lepidoptera")
	}

	_, _, err = db.Genus("Vanessa")
	if !errors.Is(err, taxdb.ErrNotInDB) {
		t.Errorf("got error %q, want %q", err, taxdb.ErrNotInDB)
	}

	if err := db.Remove("Danaus"); err != nil {
		t.Fatalf("unable to remove genus: %v", err)
	}
	if _, _, err := db.Genus("Danaus"); !errors.Is(err, taxdb.ErrNotInDB) {
		t.Errorf("got error %q, want %q", err, taxdb.ErrNotInDB)
	}
}
