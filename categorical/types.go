// SPDX-License-Identifier: MIT

package categorical

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/katalvlaran/lvfactor/factor"
)

// Entry is one explicit row of a table: an assignment (ordered as the
// factor's scope) and its value.
type Entry struct {
	Assignment factor.Assignment
	Value      float64
}

// SparseCategorical is a log-probability table over discrete variables in
// which only non-default assignments are stored.
//
// The zero value is not usable; build factors with New, NewFromProbs or a
// Template. A SparseCategorical is immutable after construction: every
// operation returns a fresh factor, so one instance may be shared between
// goroutines.
type SparseCategorical struct {
	varNames       []string
	cards          []int          // cards[i] is the cardinality of varNames[i]
	index          map[string]int // variable name -> position in varNames
	table          map[string]float64
	defaultLogProb float64
	eng            engine
}

// compile-time check
var _ factor.Discrete = (*SparseCategorical)(nil)

// New builds a factor from explicit log-probabilities.
//
// varNames must be unique and match cardinalities in length; every
// cardinality must be positive; every entry must have one in-range component
// per variable, and no assignment may appear twice. Assignments not listed
// take the default log-probability (see WithDefaultLogProb).
//
// Complexity: O(V + E·V) for V variables and E entries.
func New(varNames []string, cardinalities []int, logProbs []Entry, opts ...Option) (*SparseCategorical, error) {
	o := gatherOptions(opts...)
	f, err := newValidated(varNames, cardinalities, o)
	if err != nil {
		return nil, categoricalErrorf("new", err)
	}
	for _, e := range logProbs {
		if err = validateAssignment(e.Assignment, f.cards); err != nil {
			return nil, categoricalErrorf("new", err)
		}
		k := pack(e.Assignment)
		if _, dup := f.table[k]; dup {
			return nil, categoricalErrorf("new", fmt.Errorf("%v: %w", e.Assignment, ErrDuplicateAssignment))
		}
		f.table[k] = e.Value
	}
	return f, nil
}

// NewFromProbs builds a factor from probabilities rather than
// log-probabilities. Zero probabilities become explicit -Inf entries.
func NewFromProbs(varNames []string, cardinalities []int, probs []Entry, opts ...Option) (*SparseCategorical, error) {
	logProbs := make([]Entry, len(probs))
	for i, e := range probs {
		logProbs[i] = Entry{Assignment: e.Assignment, Value: math.Log(e.Value)}
	}
	return New(varNames, cardinalities, logProbs, opts...)
}

// newValidated checks the scope and returns an empty factor over it.
func newValidated(varNames []string, cardinalities []int, o Options) (*SparseCategorical, error) {
	if len(varNames) != len(cardinalities) {
		return nil, fmt.Errorf("%d names, %d cardinalities: %w", len(varNames), len(cardinalities), ErrShape)
	}
	index := make(map[string]int, len(varNames))
	for i, v := range varNames {
		if _, dup := index[v]; dup {
			return nil, fmt.Errorf("%q: %w", v, factor.ErrDuplicateVariable)
		}
		if cardinalities[i] <= 0 {
			return nil, fmt.Errorf("%q has cardinality %d: %w", v, cardinalities[i], ErrBadCardinality)
		}
		index[v] = i
	}
	return &SparseCategorical{
		varNames:       slices.Clone(varNames),
		cards:          slices.Clone(cardinalities),
		index:          index,
		table:          make(map[string]float64),
		defaultLogProb: o.defaultLogProb,
		eng:            o.engine(),
	}, nil
}

// newRaw wraps already-validated parts without copying them. The caller
// hands over ownership of every argument.
func newRaw(varNames []string, cards []int, table map[string]float64, def float64, eng engine) *SparseCategorical {
	index := make(map[string]int, len(varNames))
	for i, v := range varNames {
		index[v] = i
	}
	if varNames == nil {
		varNames = []string{}
		cards = []int{}
	}
	return &SparseCategorical{
		varNames:       varNames,
		cards:          cards,
		index:          index,
		table:          table,
		defaultLogProb: def,
		eng:            eng,
	}
}

// VarNames returns a copy of the ordered scope.
func (f *SparseCategorical) VarNames() []string { return slices.Clone(f.varNames) }

// Cardinalities returns a copy of the cardinalities, ordered as VarNames.
func (f *SparseCategorical) Cardinalities() []int { return slices.Clone(f.cards) }

// Cardinality returns the number of states of name, and whether name is in scope.
func (f *SparseCategorical) Cardinality(name string) (int, bool) {
	i, ok := f.index[name]
	if !ok {
		return 0, false
	}
	return f.cards[i], true
}

// DefaultLogProb returns the implicit value of unlisted assignments.
func (f *SparseCategorical) DefaultLogProb() float64 { return f.defaultLogProb }

// Len returns the number of explicit entries.
func (f *SparseCategorical) Len() int { return len(f.table) }

// IsDense reports whether every possible assignment is explicit.
func (f *SparseCategorical) IsDense() bool {
	n, ok := spaceSize(f.cards)
	return ok && len(f.table) == n
}

// LogProb returns the value at assignment, explicit or default.
func (f *SparseCategorical) LogProb(assignment factor.Assignment) (float64, error) {
	if err := validateAssignment(assignment, f.cards); err != nil {
		return 0, categoricalErrorf("log prob", err)
	}
	if v, ok := f.table[pack(assignment)]; ok {
		return v, nil
	}
	return f.defaultLogProb, nil
}

// Entries returns the explicit entries in ascending lexicographic order of
// their assignments.
func (f *SparseCategorical) Entries() []Entry {
	out := make([]Entry, 0, len(f.table))
	for k, v := range f.table {
		out = append(out, Entry{Assignment: unpack(k, len(f.varNames)), Value: v})
	}
	slices.SortFunc(out, func(a, b Entry) int { return slices.Compare(a.Assignment, b.Assignment) })
	return out
}

// Copy returns a deep copy with an independent table.
func (f *SparseCategorical) Copy() factor.Factor { return f.clone() }

func (f *SparseCategorical) clone() *SparseCategorical {
	return newRaw(slices.Clone(f.varNames), slices.Clone(f.cards), maps.Clone(f.table), f.defaultLogProb, f.eng)
}

// cardsOf returns the cardinalities of names, which must be in scope.
func (f *SparseCategorical) cardsOf(names []string) []int {
	out := make([]int, len(names))
	for i, v := range names {
		out[i] = f.cards[f.index[v]]
	}
	return out
}

// asCategorical narrows a partner factor to the sparse kind.
func asCategorical(tag string, other factor.Factor) (*SparseCategorical, error) {
	g, ok := other.(*SparseCategorical)
	if !ok || g == nil {
		return nil, categoricalErrorf(tag, fmt.Errorf("got %T: %w", other, factor.ErrTypeMismatch))
	}
	return g, nil
}
