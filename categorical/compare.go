// SPDX-License-Identifier: MIT

package categorical

import (
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/lvfactor/factor"
)

// closeTo is scalar.EqualWithinAbsOrRel with NaN equal to NaN.
func closeTo(a, b, relTol, absTol float64) bool {
	return sameValue(a, b) || scalar.EqualWithinAbsOrRel(a, b, absTol, relTol)
}

// Equals reports whether f and other hold the same values within tolerance.
//
// The variable sets must match (order may differ) and so must every
// cardinality. Each explicit entry on either side is compared with the other
// side's value there, explicit or default. When neither factor is dense the
// defaults are compared too, since some assignment is then implicit on both
// sides.
func (f *SparseCategorical) Equals(other factor.Factor, relTol, absTol float64) (bool, error) {
	g, err := asCategorical("equals", other)
	if err != nil {
		return false, err
	}
	if !factor.SameScope(f.varNames, g.varNames) {
		return false, nil
	}
	for i, v := range f.varNames {
		if c, _ := g.Cardinality(v); c != f.cards[i] {
			return false, nil
		}
	}
	if !slices.Equal(f.varNames, g.varNames) {
		if g, err = g.Reorder(f.varNames); err != nil {
			return false, categoricalErrorf("equals", err)
		}
	}

	if !f.explicitMatch(g, relTol, absTol) || !g.explicitMatch(f, relTol, absTol) {
		return false, nil
	}
	if !f.IsDense() && !g.IsDense() && !closeTo(f.defaultLogProb, g.defaultLogProb, relTol, absTol) {
		return false, nil
	}
	return true, nil
}

// explicitMatch checks every explicit entry of f against g (same order).
func (f *SparseCategorical) explicitMatch(g *SparseCategorical, relTol, absTol float64) bool {
	for k, v := range f.table {
		w, ok := g.table[k]
		if !ok {
			w = g.defaultLogProb
		}
		if !closeTo(v, w, relTol, absTol) {
			return false
		}
	}
	return true
}

// KLDivergence returns D_KL(P || Q) where P is f normalized and Q is other,
// normalized first when normalizeOther is set.
//
// The sum runs over every cell through the exhaustive engine; cells where P
// is zero contribute zero. Results in [-KLDClampTol, 0) are rounding error
// and clamp to 0; anything lower fails with ErrNegativeDivergence.
func (f *SparseCategorical) KLDivergence(other factor.Factor, normalizeOther bool) (float64, error) {
	g, err := asCategorical("kl divergence", other)
	if err != nil {
		return 0, err
	}
	return f.klDivergence(g, normalizeOther)
}

func (f *SparseCategorical) klDivergence(g *SparseCategorical, normalizeOther bool) (float64, error) {
	p, err := f.normalize()
	if err != nil {
		return 0, categoricalErrorf("kl divergence", err)
	}
	q := g
	if normalizeOther {
		if q, err = g.normalize(); err != nil {
			return 0, categoricalErrorf("kl divergence", err)
		}
	}
	// normalizing shifts a finite default, so the sides may disagree on it
	terms, err := p.merge("kl divergence", q, kldTerm, Exhaustive)
	if err != nil {
		return 0, err
	}

	kld := 0.0
	for _, k := range slices.Sorted(maps.Keys(terms.table)) {
		kld += terms.table[k]
	}
	// cells whose term equals the result default were dropped by the merge
	if implicit := spaceFloat(terms.cards) - float64(len(terms.table)); implicit > 0 && terms.defaultLogProb != 0 {
		kld += terms.defaultLogProb * implicit
	}
	if kld < 0 {
		if kld >= -KLDClampTol {
			f.eng.logger.Debug("clamping negative kl divergence", zap.Float64("kld", kld))
			return 0, nil
		}
		return 0, categoricalErrorf("kl divergence", fmt.Errorf("%g\nP:\n%v\nQ:\n%v: %w", kld, p, q, ErrNegativeDivergence))
	}
	return kld, nil
}

// DistanceFromVacuous returns the KL divergence between f and the uniform
// factor over the same scope.
func (f *SparseCategorical) DistanceFromVacuous() (float64, error) {
	uniform := f.clone()
	u := -logSpaceSize(f.cards)
	for k := range uniform.table {
		uniform.table[k] = u
	}
	uniform.defaultLogProb = u
	return f.klDivergence(uniform, false)
}
