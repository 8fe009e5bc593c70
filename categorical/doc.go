// Package categorical implements sparse discrete factors: log-probability
// tables over categorical variables in which only non-default assignments
// are stored.
//
// 🚀 What is a sparse categorical factor?
//
//	A table from joint assignments of discrete variables to log-probabilities.
//	Any assignment that is not listed takes one scalar default, conventionally
//	-Inf (probability zero), so factors with large scopes but little support
//	stay small. It is the data type consumed by sum-product and variable
//	elimination engines.
//
// ✨ Operations (all pure, all returning fresh factors):
//   - Multiply, Divide, Cancel: binary operations over identical, disjoint or
//     partially overlapping scopes
//   - Marginalize, Reduce, Normalize: single-factor operations
//   - Equals, KLDivergence, DistanceFromVacuous: comparisons
//   - Argmax, Potential, LogProb: assignment queries
//   - Reorder, Dense, Entries, String: layout helpers
//   - Template: stamps out factors that share one table shape
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/lvfactor/categorical"
//
//	rain, _ := categorical.NewFromProbs([]string{"rain"}, []int{2},
//	  []categorical.Entry{{Assignment: factor.Assignment{0}, Value: 0.8},
//	                      {Assignment: factor.Assignment{1}, Value: 0.2}})
//	joint, err := rain.Multiply(slipGivenRain)
//	marginal, err := joint.Marginalize([]string{"slip"}, true)
//
// How binary operations avoid the default space:
//
//	Both operands are split into exclusive (outer) and shared (inner)
//	variables and nested as outer -> inner sub-table. The operator's Policy
//	decides which outer pairs must be visited:
//	  • Absorbing   : a default on either side gives a default result;
//	                   only explicit x explicit pairs (Multiply, Cancel).
//	  • Conservative: the result is default only if both sides are;
//	                   explicit x all ∪ all x explicit.
//	  • Exhaustive  : no guarantee; every pair and every inner cell
//	                   (Divide, KLDivergence). Bounded by WithMaxEnumeration.
//
// Concurrency:
//
//	Factors are immutable, so distinct goroutines may share them freely.
//	WithWorkers(n) splits the engine's outer-pair loop across n goroutines.
//
// Performance:
//
//   - Time:   O(E) per reorder, O(|pairs| · |shared sub-table|) per binary op
//   - Memory: O(E) for E explicit entries; Exhaustive is O(full space)
package categorical
