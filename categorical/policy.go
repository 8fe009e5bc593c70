// SPDX-License-Identifier: MIT

package categorical

import "fmt"

// Policy tells the binary engine which combinations of explicit and default
// operands can be skipped because their result is known to be the default.
// Each operator picks its policy once, at its call site.
type Policy int

const (
	// Exhaustive assumes nothing: every outer pair and every inner cell is
	// enumerated. Always correct, and the only choice for subtraction.
	Exhaustive Policy = iota
	// Absorbing holds when a default on either side forces a default result
	// (log-domain addition with a -Inf default). Only pairs of explicit outer
	// keys are visited.
	Absorbing
	// Conservative holds when the result is default only if both sides are.
	// Pairs with at least one explicit outer key are visited. No built-in
	// operator has that shape; it is kept for engine clients that do.
	Conservative
)

var policyNames = [...]string{
	Exhaustive:   "exhaustive",
	Absorbing:    "absorbing",
	Conservative: "conservative",
}

func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}
