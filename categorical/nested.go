// SPDX-License-Identifier: MIT

package categorical

import (
	"fmt"
	"maps"

	"github.com/katalvlaran/lvfactor/factor"
)

// nestedTable is a two-level view of a table: outer key -> inner key -> value.
// Both keys are packed assignments over the outer and inner variable lists.
type nestedTable map[string]map[string]float64

// nest regroups table, whose keys are ordered as order, into a nestedTable
// keyed first by the projection onto outer and then by the projection onto
// inner. outer and inner must partition order. Values are moved unchanged;
// the pass is O(E·V) over E explicit entries.
//
// Example (order [a b c], outer [b], inner [a c]):
//
//	(0,0,0): p1          (0): {(0,0): p1, (1,1): p3}
//	(0,1,0): p2    ->    (1): {(0,0): p2, (1,1): p4}
//	(1,0,1): p3
//	(1,1,1): p4
func nest(order []string, table map[string]float64, outer, inner []string) (nestedTable, error) {
	if len(outer)+len(inner) != len(order) {
		return nil, fmt.Errorf("nest %v|%v over %v: %w", outer, inner, order, factor.ErrUnknownVariable)
	}
	outerPos, err := positions(order, outer)
	if err != nil {
		return nil, err
	}
	innerPos, err := positions(order, inner)
	if err != nil {
		return nil, err
	}

	out := make(nestedTable)
	for k, v := range table {
		a := unpack(k, len(order))
		ko := project(a, outerPos)
		sub, ok := out[ko]
		if !ok {
			sub = make(map[string]float64)
			out[ko] = sub
		}
		sub[project(a, innerPos)] = v
	}
	return out, nil
}

// flatten joins a nestedTable back into a flat table keyed by outer+inner.
func flatten(ntd nestedTable) map[string]float64 {
	out := make(map[string]float64)
	for ko, sub := range ntd {
		for ki, v := range sub {
			out[ko+ki] = v
		}
	}
	return out
}

// reorder permutes the keys of table from order to newOrder.
func reorder(order []string, table map[string]float64, newOrder []string) (map[string]float64, error) {
	pos, err := positions(order, newOrder)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(table))
	for k, v := range table {
		out[project(unpack(k, len(order)), pos)] = v
	}
	return out, nil
}

// Reorder returns the factor with its variables permuted to newOrder, which
// must name every variable in scope exactly once. Values and the default are
// unchanged.
func (f *SparseCategorical) Reorder(newOrder []string) (*SparseCategorical, error) {
	if len(newOrder) != len(f.varNames) || !factor.SameScope(f.varNames, newOrder) {
		return nil, categoricalErrorf("reorder", fmt.Errorf("%v vs scope %v: %w", newOrder, f.varNames, factor.ErrUnknownVariable))
	}
	if _, err := factor.MarginalVars(f.varNames, newOrder, true); err != nil {
		return nil, categoricalErrorf("reorder", err)
	}
	table, err := reorder(f.varNames, f.table, newOrder)
	if err != nil {
		return nil, categoricalErrorf("reorder", err)
	}
	names := make([]string, len(newOrder))
	copy(names, newOrder)
	return newRaw(names, f.cardsOf(names), table, f.defaultLogProb, f.eng), nil
}

func copyNested(ntd nestedTable) nestedTable {
	out := make(nestedTable, len(ntd))
	for k, sub := range ntd {
		out[k] = maps.Clone(sub)
	}
	return out
}
