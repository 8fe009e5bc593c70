// SPDX-License-Identifier: MIT

package categorical

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvfactor/factor"
)

// Argmax returns the explicit assignment with the greatest log-probability.
// Ties go to the lexicographically smallest assignment.
//
// Only explicit entries are scanned. If the factor is sparse and its default
// exceeds every explicit value, some implicit assignment is the true maximum;
// that case is logged as a warning and the best explicit assignment is still
// returned.
func (f *SparseCategorical) Argmax() (factor.Assignment, error) {
	if len(f.table) == 0 {
		return nil, categoricalErrorf("argmax", ErrEmptyFactor)
	}
	var best factor.Assignment
	bestVal := math.Inf(-1)
	for i, e := range f.Entries() {
		if i == 0 || e.Value > bestVal {
			best, bestVal = e.Assignment, e.Value
		}
	}
	if !f.IsDense() && f.defaultLogProb > bestVal {
		f.eng.logger.Warn("argmax: default exceeds every explicit value",
			zap.Float64("default", f.defaultLogProb),
			zap.Float64("best_explicit", bestVal),
			zap.Strings("vars", f.varNames))
	}
	return best, nil
}

// Potential returns exp(value) at assignment, whose components are ordered
// as vars. vars must name exactly the factor's scope. Assignments without an
// explicit entry fail with ErrMissingAssignment; use LogProb for the
// explicit-or-default value.
func (f *SparseCategorical) Potential(vars []string, assignment factor.Assignment) (float64, error) {
	if len(vars) != len(f.varNames) || !factor.SameScope(vars, f.varNames) {
		return 0, categoricalErrorf("potential", fmt.Errorf("%v vs scope %v: %w", vars, f.varNames, factor.ErrUnknownVariable))
	}
	if len(assignment) != len(vars) {
		return 0, categoricalErrorf("potential", fmt.Errorf("%d values for %d vars: %w", len(assignment), len(vars), ErrAssignmentLength))
	}
	if _, err := factor.MarginalVars(f.varNames, vars, true); err != nil {
		return 0, categoricalErrorf("potential", err)
	}
	pos, err := positions(vars, f.varNames)
	if err != nil {
		return 0, categoricalErrorf("potential", err)
	}
	internal := make(factor.Assignment, len(pos))
	for i, p := range pos {
		internal[i] = assignment[p]
	}
	if err = validateAssignment(internal, f.cards); err != nil {
		return 0, categoricalErrorf("potential", err)
	}
	v, ok := f.table[pack(internal)]
	if !ok {
		return 0, categoricalErrorf("potential", fmt.Errorf("%v over %v: %w", assignment, vars, ErrMissingAssignment))
	}
	return math.Exp(v), nil
}
