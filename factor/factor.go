// SPDX-License-Identifier: MIT

package factor

import "errors"

// Sentinel errors shared by all factor kinds.
var (
	// ErrTypeMismatch indicates that a binary operation received a partner of a
	// different factor kind. It is returned before any computation starts.
	ErrTypeMismatch = errors.New("factor: partner is not the same factor kind")

	// ErrUnknownVariable indicates that a variable name is not in the factor's scope.
	ErrUnknownVariable = errors.New("factor: variable not in scope")

	// ErrDuplicateVariable indicates that a variable list names the same variable twice.
	ErrDuplicateVariable = errors.New("factor: duplicate variable")
)

// Assignment is an ordered vector of discrete states, one per variable in a
// scope. Component i must lie in [0, cardinality of variable i).
type Assignment []int

// Factor is the operation set every factor kind exposes to an inference engine.
//
// Results are returned as Factor so that kinds can be mixed in one container;
// callers holding a concrete kind type-assert the result back.
type Factor interface {
	// VarNames returns a copy of the ordered scope.
	VarNames() []string

	// Multiply returns the factor product.
	Multiply(other Factor) (Factor, error)
	// Divide returns the factor quotient.
	Divide(other Factor) (Factor, error)
	// Cancel divides like Divide but maps zero/zero to zero.
	Cancel(other Factor) (Factor, error)

	// Marginalize keeps vars (keep=true) or sums them out (keep=false).
	Marginalize(vars []string, keep bool) (Factor, error)
	// Reduce conditions on vars taking values and drops them from the scope.
	Reduce(vars []string, values Assignment) (Factor, error)
	// Normalize rescales the factor to unit mass.
	Normalize() (Factor, error)

	// Equals compares two factors over the same variable set within tolerance.
	Equals(other Factor, relTol, absTol float64) (bool, error)
	// Copy returns a deep, independently owned copy.
	Copy() Factor

	// KLDivergence returns D_KL(normalized self || other).
	KLDivergence(other Factor, normalizeOther bool) (float64, error)
	// DistanceFromVacuous returns the KL divergence from the uniform factor
	// over the same scope.
	DistanceFromVacuous() (float64, error)
}

// Discrete is a Factor over categorical variables, which additionally
// supports assignment-level queries.
type Discrete interface {
	Factor

	// Argmax returns the assignment with the greatest value.
	Argmax() (Assignment, error)
	// Potential returns exp(log value) at assignment, where assignment is
	// ordered as vars.
	Potential(vars []string, assignment Assignment) (float64, error)
}

// Template stamps out concrete factors that share one table shape.
// Exactly one naming form is used per call: placeholders filled from a
// format map, or concrete names.
type Template interface {
	MakeFactor(format map[string]string) (Factor, error)
	MakeFactorWithNames(names []string) (Factor, error)
}
