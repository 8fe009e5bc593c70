// SPDX-License-Identifier: MIT

package categorical

import (
	"encoding/binary"
	"fmt"

	"github.com/katalvlaran/lvfactor/factor"
)

// Assignments are stored as packed keys: the uvarint encoding of every
// component, in scope order. Uvarint is self-delimiting, so the key of a
// concatenated assignment is the concatenation of the keys, which lets the
// engine join outer and inner keys without decoding them.

// pack encodes an assignment into a map key. Components must be >= 0.
func pack(a factor.Assignment) string {
	buf := make([]byte, 0, len(a)+2)
	for _, s := range a {
		buf = binary.AppendUvarint(buf, uint64(s))
	}
	return string(buf)
}

// unpack decodes a key of n components.
func unpack(key string, n int) factor.Assignment {
	out := make(factor.Assignment, n)
	b := []byte(key)
	for i := 0; i < n; i++ {
		v, w := binary.Uvarint(b)
		out[i] = int(v)
		b = b[w:]
	}
	return out
}

// project picks a[pos[0]], a[pos[1]], ... into a fresh key.
func project(a factor.Assignment, pos []int) string {
	buf := make([]byte, 0, len(pos)+2)
	for _, p := range pos {
		buf = binary.AppendUvarint(buf, uint64(a[p]))
	}
	return string(buf)
}

// positions maps every name to its index in order.
func positions(order, names []string) ([]int, error) {
	idx := make(map[string]int, len(order))
	for i, v := range order {
		idx[v] = i
	}
	out := make([]int, len(names))
	for i, v := range names {
		p, ok := idx[v]
		if !ok {
			return nil, fmt.Errorf("%q: %w", v, factor.ErrUnknownVariable)
		}
		out[i] = p
	}
	return out, nil
}

// validateAssignment checks length and per-component bounds against cards.
func validateAssignment(a factor.Assignment, cards []int) error {
	if len(a) != len(cards) {
		return fmt.Errorf("%v over %d variables: %w", a, len(cards), ErrAssignmentLength)
	}
	for i, s := range a {
		if s < 0 || s >= cards[i] {
			return fmt.Errorf("%v component %d not in [0,%d): %w", a, i, cards[i], ErrAssignmentRange)
		}
	}
	return nil
}
