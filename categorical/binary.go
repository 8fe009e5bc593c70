// SPDX-License-Identifier: MIT
// Package categorical: binary operation engine.
//
// Purpose:
//   - Combine two factors whose scopes are identical, disjoint or partially
//     overlapping, without materializing default cells unless the operator's
//     Policy requires it.
//
// Design:
//   - Variables split into shared (sorted) and exclusive-to-each-side.
//     Each side is nested as exclusive-outer -> shared-inner.
//   - For every visited pair of outer keys the two shared sub-tables are
//     combined cell by cell; cells equal to op(default, default) are dropped.
//   - The visited pairs depend on the Policy (see policy.go).
//   - Pairs are independent and write disjoint output keys, so the loop fans
//     out over errgroup workers and fans in by slot index.
//
// Determinism:
//   - Shared variables are sorted, exclusive ones keep each side's order, so
//     the result scope is exclusiveA + exclusiveB + shared for any input.

package categorical

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// elementwise combines one cell of each operand.
type elementwise func(a, b float64) float64

// outerPair names one outer key of each operand.
type outerPair struct{ a, b string }

func logAdd(a, b float64) float64 { return a + b }

func logSub(a, b float64) float64 { return a - b }

// cancelSub is logSub with zero/zero defined as zero.
func cancelSub(a, b float64) float64 {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return math.Inf(-1)
	}
	return a - b
}

// kldTerm is p·(log p - log q) in log space; p = 0 contributes 0.
func kldTerm(logP, logQ float64) float64 {
	if math.IsInf(logP, -1) {
		return 0
	}
	return math.Exp(logP) * (logP - logQ)
}

// sameValue is == with NaN equal to NaN.
func sameValue(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

// combine applies op to f and g under policy and returns a fresh factor
// carrying f's engine settings. The operands must share one default.
func (f *SparseCategorical) combine(tag string, g *SparseCategorical, op elementwise, policy Policy) (*SparseCategorical, error) {
	if !sameValue(f.defaultLogProb, g.defaultLogProb) {
		return nil, categoricalErrorf(tag, fmt.Errorf("%g vs %g: %w", f.defaultLogProb, g.defaultLogProb, ErrDefaultMismatch))
	}
	return f.merge(tag, g, op, policy)
}

// merge is combine without the shared-default requirement. Only Exhaustive
// is meaningful for differing defaults: it densifies each side with its own
// default before any cell is read.
func (f *SparseCategorical) merge(tag string, g *SparseCategorical, op elementwise, policy Policy) (*SparseCategorical, error) {
	for i, v := range f.varNames {
		if c, ok := g.Cardinality(v); ok && c != f.cards[i] {
			return nil, categoricalErrorf(tag, fmt.Errorf("%q: %d vs %d: %w", v, f.cards[i], c, ErrCardinalityConflict))
		}
	}
	defA, defB := f.defaultLogProb, g.defaultLogProb

	var shared, exclA, exclB []string
	for _, v := range f.varNames {
		if _, ok := g.index[v]; ok {
			shared = append(shared, v)
		} else {
			exclA = append(exclA, v)
		}
	}
	slices.Sort(shared)
	for _, v := range g.varNames {
		if _, ok := f.index[v]; !ok {
			exclB = append(exclB, v)
		}
	}

	ntdA, err := nest(f.varNames, f.table, exclA, shared)
	if err != nil {
		return nil, categoricalErrorf(tag, err)
	}
	ntdB, err := nest(g.varNames, g.table, exclB, shared)
	if err != nil {
		return nil, categoricalErrorf(tag, err)
	}
	outerA, outerB, sharedCards := f.cardsOf(exclA), g.cardsOf(exclB), f.cardsOf(shared)

	var pairs []outerPair
	// fills stand in for a missing outer key: all default
	fillA, fillB := map[string]float64{}, map[string]float64{}
	switch policy {
	case Absorbing:
		pairs = absorbingPairs(ntdA, ntdB)
	case Conservative:
		if pairs, err = conservativePairs(ntdA, ntdB, outerA, outerB); err != nil {
			return nil, categoricalErrorf(tag, err)
		}
	case Exhaustive:
		if err = f.eng.checkBudget(slices.Concat(outerA, outerB, sharedCards)); err != nil {
			return nil, categoricalErrorf(tag, err)
		}
		pairs = crossPairs(allKeys(outerA), allKeys(outerB))
		ntdA = makeInnerDense(ntdA, sharedCards, defA)
		ntdB = makeInnerDense(ntdB, sharedCards, defB)
		fillA = denseDefaultTable(sharedCards, defA)
		fillB = denseDefaultTable(sharedCards, defB)
	default:
		return nil, categoricalErrorf(tag, fmt.Errorf("unknown policy %v", policy))
	}

	resultDef := op(defA, defB)
	f.eng.logger.Debug("binary operation",
		zap.String("op", tag),
		zap.Stringer("policy", policy),
		zap.Int("shared", len(shared)),
		zap.Int("exclusive_a", len(exclA)),
		zap.Int("exclusive_b", len(exclB)),
		zap.Int("pairs", len(pairs)),
		zap.Int("workers", f.eng.workers))

	result := f.eng.applyPairs(pairs, side{ntdA, fillA, defA}, side{ntdB, fillB, defB}, op, resultDef)
	names := slices.Concat(exclA, exclB, shared)
	cards := slices.Concat(outerA, outerB, sharedCards)
	return newRaw(names, cards, flatten(result), resultDef, f.eng), nil
}

// checkBudget rejects an enumeration over cards that does not fit in an int
// or exceeds the configured budget.
func (e engine) checkBudget(cards []int) error {
	n, ok := spaceSize(cards)
	if !ok {
		return fmt.Errorf("space over %v overflows: %w", cards, ErrEnumerationBudget)
	}
	if e.maxEnumeration > 0 && n > e.maxEnumeration {
		return fmt.Errorf("%d cells > %d: %w", n, e.maxEnumeration, ErrEnumerationBudget)
	}
	return nil
}

func absorbingPairs(ntdA, ntdB nestedTable) []outerPair {
	pairs := make([]outerPair, 0, len(ntdA)*len(ntdB))
	for ka := range ntdA {
		for kb := range ntdB {
			pairs = append(pairs, outerPair{ka, kb})
		}
	}
	return pairs
}

// conservativePairs returns explicitA x allB ∪ allA x explicitB.
func conservativePairs(ntdA, ntdB nestedTable, outerA, outerB []int) ([]outerPair, error) {
	if _, ok := spaceSize(outerA); !ok {
		return nil, fmt.Errorf("space over %v overflows: %w", outerA, ErrEnumerationBudget)
	}
	if _, ok := spaceSize(outerB); !ok {
		return nil, fmt.Errorf("space over %v overflows: %w", outerB, ErrEnumerationBudget)
	}
	seen := make(map[outerPair]struct{})
	pairs := make([]outerPair, 0)
	add := func(p outerPair) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
	}
	if len(ntdA) > 0 {
		for _, kb := range allKeys(outerB) {
			for ka := range ntdA {
				add(outerPair{ka, kb})
			}
		}
	}
	if len(ntdB) > 0 {
		for _, ka := range allKeys(outerA) {
			for kb := range ntdB {
				add(outerPair{ka, kb})
			}
		}
	}
	return pairs, nil
}

func crossPairs(keysA, keysB []string) []outerPair {
	pairs := make([]outerPair, 0, len(keysA)*len(keysB))
	for _, ka := range keysA {
		for _, kb := range keysB {
			pairs = append(pairs, outerPair{ka, kb})
		}
	}
	return pairs
}

// side is one operand as the pair loop sees it.
type side struct {
	ntd  nestedTable
	fill map[string]float64
	def  float64
}

func (s side) sub(key string) map[string]float64 {
	if sub, ok := s.ntd[key]; ok {
		return sub
	}
	return s.fill
}

// applyPairs combines the shared sub-tables of every pair. A pair missing on
// one side uses that side's fill.
func (e engine) applyPairs(pairs []outerPair, a, b side, op elementwise, resultDef float64) nestedTable {
	slots := make([]map[string]float64, len(pairs))
	run := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			slots[i] = sameScopeOp(a.sub(pairs[i].a), b.sub(pairs[i].b), op, a.def, b.def, resultDef)
		}
	}

	w := min(e.workers, len(pairs))
	if w <= 1 {
		run(0, len(pairs))
	} else {
		chunk := (len(pairs) + w - 1) / w
		var g errgroup.Group
		for lo := 0; lo < len(pairs); lo += chunk {
			hi := min(lo+chunk, len(pairs))
			g.Go(func() error {
				run(lo, hi)
				return nil
			})
		}
		_ = g.Wait() // workers never fail
	}

	out := make(nestedTable)
	for i, sub := range slots {
		if len(sub) > 0 {
			out[pairs[i].a+pairs[i].b] = sub
		}
	}
	return out
}

// sameScopeOp combines two sub-tables over the same variables. Keys missing
// on one side read as that side's default; results equal to resultDef are
// dropped.
func sameScopeOp(ta, tb map[string]float64, op elementwise, defA, defB, resultDef float64) map[string]float64 {
	out := make(map[string]float64)
	for k, a := range ta {
		b, ok := tb[k]
		if !ok {
			b = defB
		}
		if r := op(a, b); !sameValue(r, resultDef) {
			out[k] = r
		}
	}
	for k, b := range tb {
		if _, ok := ta[k]; ok {
			continue
		}
		if r := op(defA, b); !sameValue(r, resultDef) {
			out[k] = r
		}
	}
	return out
}
