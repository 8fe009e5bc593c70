// SPDX-License-Identifier: MIT

package categorical

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfactor/factor"
)

// absorbingUnlessFinite returns Absorbing when the default is -Inf, the case
// in which a default operand of + or cancelSub forces a default result, and
// Exhaustive otherwise.
func absorbingUnlessFinite(def float64) Policy {
	if math.IsInf(def, -1) {
		return Absorbing
	}
	return Exhaustive
}

// Multiply returns the factor product (log-domain addition). The result scope
// is f's exclusive variables, then other's, then the shared ones sorted.
func (f *SparseCategorical) Multiply(other factor.Factor) (factor.Factor, error) {
	g, err := asCategorical("multiply", other)
	if err != nil {
		return nil, err
	}
	r, err := f.combine("multiply", g, logAdd, absorbingUnlessFinite(f.defaultLogProb))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Divide returns the factor quotient (log-domain subtraction). Every cell is
// computed, so zero/zero cells become NaN, which is also the result default.
func (f *SparseCategorical) Divide(other factor.Factor) (factor.Factor, error) {
	g, err := asCategorical("divide", other)
	if err != nil {
		return nil, err
	}
	r, err := f.combine("divide", g, logSub, Exhaustive)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Cancel divides like Divide, except that zero/zero is zero. It is the
// division used when removing a previous message from a belief.
func (f *SparseCategorical) Cancel(other factor.Factor) (factor.Factor, error) {
	g, err := asCategorical("cancel", other)
	if err != nil {
		return nil, err
	}
	r, err := f.combine("cancel", g, cancelSub, absorbingUnlessFinite(f.defaultLogProb))
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Marginalize sums variables out with log-sum-exp. With keep=true vars are
// the survivors (in the given order); with keep=false they are eliminated.
//
// Implicit cells are accounted for exactly: under each surviving assignment,
// the eliminated cells without an entry add default + log(count) to the sum,
// and the result default is default + log(|eliminated space|). With the usual
// -Inf default both terms vanish.
func (f *SparseCategorical) Marginalize(vars []string, keep bool) (factor.Factor, error) {
	r, err := f.marginalize(vars, keep)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (f *SparseCategorical) marginalize(vars []string, keep bool) (*SparseCategorical, error) {
	keepVars, err := factor.MarginalVars(f.varNames, vars, keep)
	if err != nil {
		return nil, categoricalErrorf("marginalize", err)
	}
	elim, _ := factor.MarginalVars(f.varNames, keepVars, false)
	ntd, err := nest(f.varNames, f.table, keepVars, elim)
	if err != nil {
		return nil, categoricalErrorf("marginalize", err)
	}

	def := f.defaultLogProb
	elimCards := f.cardsOf(elim)
	elimSpace := spaceFloat(elimCards)
	implicit := !math.IsInf(def, -1)

	out := make(map[string]float64, len(ntd))
	vals := make([]float64, 0)
	for ko, sub := range ntd {
		vals = vals[:0]
		for _, v := range sub {
			vals = append(vals, v)
		}
		if missing := elimSpace - float64(len(sub)); implicit && missing > 0 {
			vals = append(vals, def+math.Log(missing))
		}
		out[ko] = floats.LogSumExp(vals)
	}
	return newRaw(keepVars, f.cardsOf(keepVars), out, def+logSpaceSize(elimCards), f.eng), nil
}

// Reduce conditions on vars taking values and returns a factor over the
// remaining variables (in scope order). An observation with no explicit
// entries yields the all-default factor rather than an error.
func (f *SparseCategorical) Reduce(vars []string, values factor.Assignment) (factor.Factor, error) {
	r, err := f.reduce(vars, values)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (f *SparseCategorical) reduce(vars []string, values factor.Assignment) (*SparseCategorical, error) {
	if len(vars) != len(values) {
		return nil, categoricalErrorf("reduce", fmt.Errorf("%d vars, %d values: %w", len(vars), len(values), ErrAssignmentLength))
	}
	free, err := factor.MarginalVars(f.varNames, vars, false)
	if err != nil {
		return nil, categoricalErrorf("reduce", err)
	}
	if err = validateAssignment(values, f.cardsOf(vars)); err != nil {
		return nil, categoricalErrorf("reduce", err)
	}
	ntd, err := nest(f.varNames, f.table, vars, free)
	if err != nil {
		return nil, categoricalErrorf("reduce", err)
	}
	sub, ok := ntd[pack(values)]
	if !ok {
		sub = make(map[string]float64)
	}
	return newRaw(free, f.cardsOf(free), sub, f.defaultLogProb, f.eng), nil
}

// Normalize subtracts the log-partition from every value, default included.
// The partition counts implicit cells as well; with the usual -Inf default
// they carry no mass and the default stays -Inf.
func (f *SparseCategorical) Normalize() (factor.Factor, error) {
	r, err := f.normalize()
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (f *SparseCategorical) normalize() (*SparseCategorical, error) {
	logZ := f.logPartition()
	if math.IsInf(logZ, -1) || math.IsNaN(logZ) {
		return nil, categoricalErrorf("normalize", fmt.Errorf("log partition %g: %w", logZ, ErrZeroMass))
	}
	out := make(map[string]float64, len(f.table))
	for k, v := range f.table {
		out[k] = v - logZ
	}
	return newRaw(slices.Clone(f.varNames), slices.Clone(f.cards), out, f.defaultLogProb-logZ, f.eng), nil
}

// logPartition returns log of the total mass, implicit cells included.
func (f *SparseCategorical) logPartition() float64 {
	vals := make([]float64, 0, len(f.table)+1)
	for _, v := range f.table {
		vals = append(vals, v)
	}
	if !math.IsInf(f.defaultLogProb, -1) {
		if missing := spaceFloat(f.cards) - float64(len(f.table)); missing > 0 {
			vals = append(vals, f.defaultLogProb+math.Log(missing))
		}
	}
	if len(vals) == 0 {
		return math.Inf(-1)
	}
	return floats.LogSumExp(vals)
}
