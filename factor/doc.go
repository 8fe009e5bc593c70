// SPDX-License-Identifier: MIT

// Package factor defines the algebraic contract shared by every factor kind
// consumed by an inference engine (sum-product, variable elimination, cluster
// graphs).
//
// A factor is a function from the joint assignments of a set of variables to
// a log-probability-like value. Concrete kinds (the sparse discrete table in
// package categorical, continuous kinds elsewhere) implement Factor so that a
// factor graph can hold them in one container without knowing their layout.
//
// Contract:
//   - Every operation is pure: inputs are never mutated, results are fresh
//     and independently owned. Distinct factors may therefore be used from
//     many goroutines without locking.
//   - Binary operations require a partner of the same concrete kind and fail
//     fast with ErrTypeMismatch otherwise.
//   - Errors are sentinels matched with errors.Is; none are retryable.
//
// Scope helpers (MarginalVars, SameScope) are shared by all kinds so that the
// keep/eliminate convention of Marginalize is identical everywhere.
package factor
