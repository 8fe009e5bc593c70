// SPDX-License-Identifier: MIT

package categorical

import (
	"math"
	"math/bits"

	"github.com/katalvlaran/lvfactor/factor"
)

// The helpers below materialize implicit default cells. They are
// O(product of cardinalities) and only the exhaustive policy calls them.

// spaceSize returns the number of assignments over cards, and false when it
// does not fit in an int. The empty scope has exactly one (empty) assignment.
func spaceSize(cards []int) (int, bool) {
	n := uint64(1)
	for _, c := range cards {
		hi, lo := bits.Mul64(n, uint64(c))
		if hi != 0 || lo > math.MaxInt {
			return 0, false
		}
		n = lo
	}
	return int(n), true
}

// spaceFloat returns the number of assignments over cards as a float64,
// exact whenever it fits in an int.
func spaceFloat(cards []int) float64 {
	if n, ok := spaceSize(cards); ok {
		return float64(n)
	}
	return math.Exp(logSpaceSize(cards))
}

// logSpaceSize returns log(product of cards) without overflow.
func logSpaceSize(cards []int) float64 {
	s := 0.0
	for _, c := range cards {
		s += math.Log(float64(c))
	}
	return s
}

// forEachAssignment calls fn for every assignment over cards in ascending
// lexicographic order. fn must not retain its argument.
func forEachAssignment(cards []int, fn func(factor.Assignment)) {
	for _, c := range cards {
		if c <= 0 {
			return
		}
	}
	a := make(factor.Assignment, len(cards))
	for {
		fn(a)
		i := len(a) - 1
		for ; i >= 0; i-- {
			a[i]++
			if a[i] < cards[i] {
				break
			}
			a[i] = 0
		}
		if i < 0 {
			return
		}
	}
}

// allKeys returns the packed key of every assignment over cards.
func allKeys(cards []int) []string {
	n, _ := spaceSize(cards)
	out := make([]string, 0, n)
	forEachAssignment(cards, func(a factor.Assignment) { out = append(out, pack(a)) })
	return out
}

// denseDefaultTable maps every assignment over cards to def.
func denseDefaultTable(cards []int, def float64) map[string]float64 {
	keys := allKeys(cards)
	out := make(map[string]float64, len(keys))
	for _, k := range keys {
		out[k] = def
	}
	return out
}

// makeInnerDense returns a copy of ntd in which every inner sub-table lists
// all assignments over innerCards, missing ones set to def.
func makeInnerDense(ntd nestedTable, innerCards []int, def float64) nestedTable {
	out := copyNested(ntd)
	keys := allKeys(innerCards)
	for _, sub := range out {
		for _, k := range keys {
			if _, ok := sub[k]; !ok {
				sub[k] = def
			}
		}
	}
	return out
}

// Dense returns a copy in which every assignment is explicit; implicit cells
// take the default value. The result satisfies IsDense.
func (f *SparseCategorical) Dense() (*SparseCategorical, error) {
	n, ok := spaceSize(f.cards)
	if !ok || (f.eng.maxEnumeration > 0 && n > f.eng.maxEnumeration) {
		return nil, categoricalErrorf("dense", ErrEnumerationBudget)
	}
	out := f.clone()
	forEachAssignment(f.cards, func(a factor.Assignment) {
		k := pack(a)
		if _, ok := out.table[k]; !ok {
			out.table[k] = f.defaultLogProb
		}
	})
	return out, nil
}
