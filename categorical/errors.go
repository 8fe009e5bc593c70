// SPDX-License-Identifier: MIT
// Package categorical: sentinel error set.
// All operations return these sentinels (or the shared ones from package
// factor) wrapped with the operation name; tests match them via errors.Is.
// No operation panics on user-triggered conditions.

package categorical

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "categorical: ". Operations wrap the sentinel
// as "<op>: <sentinel>" through categoricalErrorf.
var (
	// ErrShape indicates that variable names and cardinalities differ in length.
	ErrShape = errors.New("categorical: names and cardinalities differ in length")

	// ErrBadCardinality indicates a non-positive cardinality.
	ErrBadCardinality = errors.New("categorical: cardinality must be > 0")

	// ErrCardinalityConflict indicates that two factors share a variable name
	// but disagree on its cardinality.
	ErrCardinalityConflict = errors.New("categorical: conflicting cardinality for shared variable")

	// ErrDefaultMismatch indicates that two factors with different default
	// log-probabilities were combined. No combination rule exists for that case.
	ErrDefaultMismatch = errors.New("categorical: default log-probabilities differ")

	// ErrAssignmentLength indicates an assignment whose length differs from the scope.
	ErrAssignmentLength = errors.New("categorical: assignment length does not match scope")

	// ErrAssignmentRange indicates an assignment component outside [0, cardinality).
	ErrAssignmentRange = errors.New("categorical: assignment component out of range")

	// ErrDuplicateAssignment indicates that an input table lists an assignment twice.
	ErrDuplicateAssignment = errors.New("categorical: duplicate assignment")

	// ErrMissingAssignment indicates a query for an assignment with no explicit entry.
	ErrMissingAssignment = errors.New("categorical: assignment has no explicit entry")

	// ErrEmptyFactor indicates a query that needs at least one explicit entry.
	ErrEmptyFactor = errors.New("categorical: factor has no explicit entries")

	// ErrZeroMass indicates normalization of a factor whose total mass is zero.
	ErrZeroMass = errors.New("categorical: factor has zero total mass")

	// ErrNegativeDivergence indicates a KL divergence below -KLDClampTol. It
	// signals an internal inconsistency, never a valid distance.
	ErrNegativeDivergence = errors.New("categorical: negative KL divergence")

	// ErrEnumerationBudget indicates that an exhaustive combination would
	// enumerate more cells than WithMaxEnumeration allows (or than fit in an int).
	ErrEnumerationBudget = errors.New("categorical: enumeration budget exceeded")

	// ErrTemplateNames indicates a template instantiated with the wrong naming form
	// (placeholders requested but none defined, or a name count mismatch).
	ErrTemplateNames = errors.New("categorical: template names do not match")

	// ErrTemplateFormat indicates a placeholder that could not be filled.
	ErrTemplateFormat = errors.New("categorical: template placeholder cannot be formatted")
)

func categoricalErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
