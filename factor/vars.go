// SPDX-License-Identifier: MIT

package factor

import "fmt"

// MarginalVars resolves the variables that survive a marginalization.
//
// With keep=true the result is vars itself (in the given order); with
// keep=false it is scope minus vars, in scope order. Every name in vars must
// belong to scope and appear once.
//
// Complexity: O(len(scope) + len(vars)).
func MarginalVars(scope, vars []string, keep bool) ([]string, error) {
	inScope := make(map[string]struct{}, len(scope))
	for _, v := range scope {
		inScope[v] = struct{}{}
	}
	seen := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		if _, ok := inScope[v]; !ok {
			return nil, fmt.Errorf("marginal vars %q: %w", v, ErrUnknownVariable)
		}
		if _, dup := seen[v]; dup {
			return nil, fmt.Errorf("marginal vars %q: %w", v, ErrDuplicateVariable)
		}
		seen[v] = struct{}{}
	}

	if keep {
		out := make([]string, len(vars))
		copy(out, vars)
		return out, nil
	}
	out := make([]string, 0, len(scope)-len(vars))
	for _, v := range scope {
		if _, drop := seen[v]; !drop {
			out = append(out, v)
		}
	}
	return out, nil
}

// SameScope reports whether a and b contain the same variable set,
// regardless of order.
func SameScope(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[v]; !ok {
			return false
		}
	}
	return true
}
