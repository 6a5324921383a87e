// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy provides the taxonomic group assignments
// (order and family in most usage)
// for the terminals of a phylogenetic tree.
package taxonomy

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/js-arias/timetree"
)

// A ValidationError is an error produced
// by a malformed taxonomy,
// such as a terminal without a group,
// or a taxon assigned to two different groups.
type ValidationError struct {
	Taxon string
	Group string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("taxon %q: group %q: %s", e.Taxon, e.Group, e.Msg)
	}
	return fmt.Sprintf("taxon %q: %s", e.Taxon, e.Msg)
}

type record struct {
	group    string
	subGroup string
}

// A Taxonomy is a collection of group assignments,
// one per taxon.
type Taxonomy struct {
	recs map[string]record
}

// New creates a new empty taxonomy.
func New() *Taxonomy {
	return &Taxonomy{
		recs: make(map[string]record),
	}
}

// Add adds the group
// (and optionally the sub-group)
// of a taxon.
// Adding a taxon a second time is valid
// only if the assignment is identical.
func (tx *Taxonomy) Add(taxon, group, subGroup string) error {
	taxon = Canon(taxon)
	if taxon == "" {
		return &ValidationError{Msg: "empty taxon name"}
	}
	group = Canon(group)
	if group == "" {
		return &ValidationError{Taxon: taxon, Msg: "taxon without group"}
	}
	subGroup = Canon(subGroup)

	if prev, dup := tx.recs[taxon]; dup {
		if prev.group != group || prev.subGroup != subGroup {
			return &ValidationError{Taxon: taxon, Group: group, Msg: "conflicting group assignment"}
		}
		return nil
	}
	tx.recs[taxon] = record{group: group, subGroup: subGroup}
	return nil
}

// Group returns the group assigned to a taxon,
// or an empty string if the taxon is not in the taxonomy.
func (tx *Taxonomy) Group(taxon string) string {
	return tx.recs[Canon(taxon)].group
}

// SubGroup returns the sub-group assigned to a taxon.
func (tx *Taxonomy) SubGroup(taxon string) string {
	return tx.recs[Canon(taxon)].subGroup
}

// Taxa returns the taxa in the taxonomy,
// sorted alphabetically.
func (tx *Taxonomy) Taxa() []string {
	taxa := make([]string, 0, len(tx.recs))
	for tax := range tx.recs {
		taxa = append(taxa, tax)
	}
	slices.Sort(taxa)
	return taxa
}

// Groups returns the groups defined in the taxonomy,
// sorted alphabetically.
func (tx *Taxonomy) Groups() []string {
	gs := make(map[string]bool)
	for _, r := range tx.recs {
		gs[r.group] = true
	}
	groups := make([]string, 0, len(gs))
	for g := range gs {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// Members returns the taxa assigned to a group,
// sorted alphabetically.
func (tx *Taxonomy) Members(group string) []string {
	group = Canon(group)
	var taxa []string
	for tax, r := range tx.recs {
		if r.group == group {
			taxa = append(taxa, tax)
		}
	}
	slices.Sort(taxa)
	return taxa
}

// Validate checks that every terminal of a tree
// has a group assignment in the taxonomy.
func (tx *Taxonomy) Validate(t *timetree.Tree) error {
	for _, term := range t.Terms() {
		if _, ok := tx.recs[Canon(term)]; !ok {
			return &ValidationError{Taxon: term, Msg: "terminal without a taxonomy record"}
		}
	}
	return nil
}

// Canon returns a name in its canonical form:
// spaces collapsed,
// the first rune in upper case,
// the rest of the name in lower case.
func Canon(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[n:]
}

// Genus returns the genus of a binomial species name,
// i.e., its first name.
func Genus(name string) string {
	name = Canon(name)
	if i := strings.Index(name, " "); i > 0 {
		return name[:i]
	}
	return name
}
