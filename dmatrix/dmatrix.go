// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dmatrix provides a patristic distance matrix
// for the terminals of a phylogenetic tree.
//
// The patristic distance between two terminals
// is the sum of the branch lengths
// along the unique path that connects them.
// As branch lengths are additive,
// the resulting matrix is a metric.
package dmatrix

import (
	"fmt"
	"slices"

	"github.com/js-arias/timetree"
	"gonum.org/v1/gonum/mat"
)

// MillionYears is the unit used for distances,
// as tree ages are defined in years.
const MillionYears = 1_000_000

// A ValidationError is an error produced
// by a malformed tree,
// such as a negative branch length
// or a duplicated terminal name.
type ValidationError struct {
	Tree  string // name of the offending tree
	Taxon string // name of the offending taxon, if any
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Taxon != "" {
		return fmt.Sprintf("tree %q: taxon %q: %s", e.Tree, e.Taxon, e.Msg)
	}
	return fmt.Sprintf("tree %q: %s", e.Tree, e.Msg)
}

// A Matrix is a symmetric matrix
// of pairwise patristic distances,
// indexed by terminal name.
type Matrix struct {
	taxa []string
	ids  map[string]int
	m    [][]float64
}

// New creates a distance matrix
// from the terminals of a tree.
//
// The tree is validated before any distance is calculated:
// it must have at least two terminals,
// and all branch lengths must be non-negative
// (i.e., no node can be older than its parent).
func New(t *timetree.Tree) (*Matrix, error) {
	if err := validate(t); err != nil {
		return nil, err
	}

	terms := t.Terms()
	slices.Sort(terms)

	m := newMatrix(terms)

	// ancestor chains, from each terminal to the root
	chains := make(map[string][]int, len(terms))
	for _, tax := range terms {
		id, ok := t.TaxNode(tax)
		if !ok {
			return nil, &ValidationError{
				Tree:  t.Name(),
				Taxon: tax,
				Msg:   "terminal without a node",
			}
		}
		chain := []int{id}
		for n := id; !t.IsRoot(n); {
			n = t.Parent(n)
			chain = append(chain, n)
		}
		chains[tax] = chain
	}

	onChain := make(map[int]bool, len(chains[terms[0]]))
	for i, tax := range terms {
		clear(onChain)
		for _, n := range chains[tax] {
			onChain[n] = true
		}
		for j := i + 1; j < len(terms); j++ {
			mrca := -1
			for _, n := range chains[terms[j]] {
				if onChain[n] {
					mrca = n
					break
				}
			}
			if mrca < 0 {
				return nil, &ValidationError{
					Tree:  t.Name(),
					Taxon: terms[j],
					Msg:   "node disconnected from the root",
				}
			}

			a := t.Age(chains[tax][0])
			b := t.Age(chains[terms[j]][0])
			d := float64(2*t.Age(mrca)-a-b) / MillionYears
			m.m[i][j] = d
			m.m[j][i] = d
		}
	}
	return m, nil
}

func validate(t *timetree.Tree) error {
	terms := t.Terms()
	if len(terms) < 2 {
		return &ValidationError{
			Tree: t.Name(),
			Msg:  "expecting at least two terminals",
		}
	}

	for _, n := range t.Nodes() {
		if t.Age(n) < 0 {
			return &ValidationError{
				Tree:  t.Name(),
				Taxon: t.Taxon(n),
				Msg:   "negative node age",
			}
		}
		if t.IsRoot(n) {
			continue
		}
		if t.Age(t.Parent(n)) < t.Age(n) {
			return &ValidationError{
				Tree:  t.Name(),
				Taxon: t.Taxon(n),
				Msg:   "negative branch length",
			}
		}
	}
	return nil
}

func newMatrix(taxa []string) *Matrix {
	ids := make(map[string]int, len(taxa))
	m := make([][]float64, len(taxa))
	for i, tax := range taxa {
		ids[tax] = i
		m[i] = make([]float64, len(taxa))
	}
	return &Matrix{
		taxa: taxa,
		ids:  ids,
		m:    m,
	}
}

// Distance returns the patristic distance
// between two terminals,
// in million years.
// Unknown terminals have a zero distance.
func (m *Matrix) Distance(a, b string) float64 {
	i, ok := m.ids[a]
	if !ok {
		return 0
	}
	j, ok := m.ids[b]
	if !ok {
		return 0
	}
	return m.m[i][j]
}

// Len returns the number of terminals in the matrix.
func (m *Matrix) Len() int {
	return len(m.taxa)
}

// Taxa returns the terminal names of the matrix,
// sorted alphabetically.
func (m *Matrix) Taxa() []string {
	return slices.Clone(m.taxa)
}

// Sub returns a new matrix
// restricted to the indicated terminals.
func (m *Matrix) Sub(taxa []string) (*Matrix, error) {
	tx := slices.Clone(taxa)
	slices.Sort(tx)

	s := newMatrix(tx)
	for i, a := range tx {
		ia, ok := m.ids[a]
		if !ok {
			return nil, fmt.Errorf("taxon %q: not in matrix", a)
		}
		for j := i + 1; j < len(tx); j++ {
			jb, ok := m.ids[tx[j]]
			if !ok {
				return nil, fmt.Errorf("taxon %q: not in matrix", tx[j])
			}
			d := m.m[ia][jb]
			s.m[i][j] = d
			s.m[j][i] = d
		}
	}
	return s, nil
}

// Sym returns the matrix
// as a gonum symmetric matrix,
// with rows and columns following the order
// given by Taxa.
func (m *Matrix) Sym() *mat.SymDense {
	s := mat.NewSymDense(len(m.taxa), nil)
	for i := range m.taxa {
		for j := i; j < len(m.taxa); j++ {
			s.SetSym(i, j, m.m[i][j])
		}
	}
	return s
}
