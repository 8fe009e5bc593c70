// SPDX-License-Identifier: MIT

package categorical

// Test bridge (white-box) for the nested-table and densification helpers.
//
// Purpose:
//   - Expose unexported kernels to categorical_test without widening the API.
//   - Keys are rendered as fmt.Sprint(assignment), e.g. "[0 1]", so tests can
//     write expected tables literally.

import (
	"fmt"

	"github.com/katalvlaran/lvfactor/factor"
)

// OptionsSnapshot is a read-only view of a factor's engine settings.
type OptionsSnapshot struct {
	Workers        int
	MaxEnumeration int
	HasLogger      bool
}

// EngineSnapshot_TestOnly returns the engine settings f carries.
func EngineSnapshot_TestOnly(f *SparseCategorical) OptionsSnapshot {
	return OptionsSnapshot{
		Workers:        f.eng.workers,
		MaxEnumeration: f.eng.maxEnumeration,
		HasLogger:      f.eng.logger != nil,
	}
}

// GatherOptions_TestOnly applies opts over the defaults.
func GatherOptions_TestOnly(opts ...Option) (def float64, snap OptionsSnapshot) {
	o := gatherOptions(opts...)
	return o.defaultLogProb, OptionsSnapshot{Workers: o.workers, MaxEnumeration: o.maxEnumeration, HasLogger: o.logger != nil}
}

func render(key string, n int) string { return fmt.Sprint(unpack(key, n)) }

// Nest_TestOnly runs the reorderer over f and renders both key levels.
func Nest_TestOnly(f *SparseCategorical, outer, inner []string) (map[string]map[string]float64, error) {
	ntd, err := nest(f.varNames, f.table, outer, inner)
	if err != nil {
		return nil, err
	}
	return renderNested(ntd, len(outer), len(inner)), nil
}

// Flatten_TestOnly nests f and flattens it again.
func Flatten_TestOnly(f *SparseCategorical, outer, inner []string) (map[string]float64, error) {
	ntd, err := nest(f.varNames, f.table, outer, inner)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for k, v := range flatten(ntd) {
		out[render(k, len(outer)+len(inner))] = v
	}
	return out, nil
}

// DenseDefaultTable_TestOnly renders denseDefaultTable.
func DenseDefaultTable_TestOnly(cards []int, def float64) map[string]float64 {
	out := make(map[string]float64)
	for k, v := range denseDefaultTable(cards, def) {
		out[render(k, len(cards))] = v
	}
	return out
}

// MakeInnerDense_TestOnly nests f, densifies the inner level and renders it.
// It also reports whether the nested input was left untouched.
func MakeInnerDense_TestOnly(f *SparseCategorical, outer, inner []string) (map[string]map[string]float64, bool, error) {
	ntd, err := nest(f.varNames, f.table, outer, inner)
	if err != nil {
		return nil, false, err
	}
	before := 0
	for _, sub := range ntd {
		before += len(sub)
	}
	dense := makeInnerDense(ntd, f.cardsOf(inner), f.defaultLogProb)
	after := 0
	for _, sub := range ntd {
		after += len(sub)
	}
	return renderNested(dense, len(outer), len(inner)), before == after, nil
}

func renderNested(ntd nestedTable, nOuter, nInner int) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(ntd))
	for ko, sub := range ntd {
		rs := make(map[string]float64, len(sub))
		for ki, v := range sub {
			rs[render(ki, nInner)] = v
		}
		out[render(ko, nOuter)] = rs
	}
	return out
}

// Combine_TestOnly runs the binary engine with an arbitrary operator and policy.
func Combine_TestOnly(f, g *SparseCategorical, op func(a, b float64) float64, policy Policy) (*SparseCategorical, error) {
	return f.combine("test", g, op, policy)
}

// ForEachAssignment_TestOnly collects the enumeration order over cards.
func ForEachAssignment_TestOnly(cards []int) []factor.Assignment {
	var out []factor.Assignment
	forEachAssignment(cards, func(a factor.Assignment) {
		out = append(out, append(factor.Assignment(nil), a...))
	})
	return out
}

// PackRoundTrip_TestOnly packs and unpacks a.
func PackRoundTrip_TestOnly(a factor.Assignment) factor.Assignment {
	return unpack(pack(a), len(a))
}

// SpaceSize_TestOnly exposes spaceSize.
var SpaceSize_TestOnly = spaceSize
