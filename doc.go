// Package lvfactor is an in-memory algebra for sparse discrete factors: the
// log-probability tables that sum-product and variable elimination engines
// multiply, divide, marginalize and compare.
//
// 🚀 What is lvfactor?
//
//	A small library that brings together:
//		• The Factor contract: one algebraic interface for every factor kind
//		• Sparse categorical factors: only non-default assignments are stored
//		• A binary engine that skips default cells unless the operator needs them
//		• Templates: one table shape stamped out under many variable names
//		• YAML factor documents and a command-line calculator
//
// ✨ Why choose lvfactor?
//
//   - Sparse by default: memory follows the support, not the joint space
//   - Pure operations: factors are immutable and safe to share across goroutines
//   - Predictable: deterministic variable order, sentinel errors, opt-in logging
//   - Bounded: exhaustive enumeration can be capped with WithMaxEnumeration
//
// Under the hood, everything is organized under these packages:
//
//	factor/          the Factor, Discrete and Template interfaces + scope helpers
//	categorical/     SparseCategorical, the binary engine, templates, options
//	factorfile/      YAML documents for factors and templates
//	cmd/factorcalc/  a cobra CLI over factorfile documents
//
// Quick example (rain -> slip):
//
//	P(rain) x P(slip | rain)  ->  P(slip, rain)  --sum rain-->  P(slip)
//
//	go get github.com/katalvlaran/lvfactor/categorical
package lvfactor
