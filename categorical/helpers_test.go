// SPDX-License-Identifier: MIT
// Package categorical_test contains shared fixtures and assertions.
//
// Purpose:
//   - Build small, deterministic factors with one call.
//   - Compare factors and tables with explicit tolerances.

package categorical_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfactor/categorical"
	"github.com/katalvlaran/lvfactor/factor"
)

const (
	relTol = 1e-9
	absTol = 1e-12
)

var negInf = math.Inf(-1)

// row is shorthand for a table entry.
func row(v float64, states ...int) categorical.Entry {
	return categorical.Entry{Assignment: factor.Assignment(states), Value: v}
}

// mustNew builds a log-probability factor or fails the test.
func mustNew(t testing.TB, names []string, cards []int, rows []categorical.Entry, opts ...categorical.Option) *categorical.SparseCategorical {
	t.Helper()
	f, err := categorical.New(names, cards, rows, opts...)
	require.NoError(t, err)
	return f
}

// mustProbs builds a factor from probabilities or fails the test.
func mustProbs(t testing.TB, names []string, cards []int, rows []categorical.Entry, opts ...categorical.Option) *categorical.SparseCategorical {
	t.Helper()
	f, err := categorical.NewFromProbs(names, cards, rows, opts...)
	require.NoError(t, err)
	return f
}

// cat returns a function that narrows an operation result to the sparse
// kind, failing on error: cat(t)(f.Multiply(g)).
func cat(t testing.TB) func(factor.Factor, error) *categorical.SparseCategorical {
	return func(f factor.Factor, err error) *categorical.SparseCategorical {
		t.Helper()
		require.NoError(t, err)
		sc, ok := f.(*categorical.SparseCategorical)
		require.True(t, ok, "result has type %T", f)
		return sc
	}
}

// requireEquals asserts factor equality within the test tolerances.
func requireEquals(t testing.TB, want, got *categorical.SparseCategorical) {
	t.Helper()
	ok, err := want.Equals(got, relTol, absTol)
	require.NoError(t, err)
	require.True(t, ok, "factors differ\nwant:\n%v(default %g)\ngot:\n%v(default %g)",
		want, want.DefaultLogProb(), got, got.DefaultLogProb())
}

// requireEntries compares explicit entries with go-cmp.
func requireEntries(t testing.TB, want []categorical.Entry, got *categorical.SparseCategorical) {
	t.Helper()
	if diff := cmp.Diff(want, got.Entries(), cmpopts.EquateApprox(relTol, absTol), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

// rainSlip is a dense two-variable factor over {rain:2, slip:2}.
func rainSlip(t testing.TB, opts ...categorical.Option) *categorical.SparseCategorical {
	return mustProbs(t, []string{"rain", "slip"}, []int{2, 2}, []categorical.Entry{
		row(0.8, 0, 0), row(0.2, 0, 1),
		row(0.4, 1, 0), row(0.6, 1, 1),
	}, opts...)
}

// sparseABC is a sparse factor over {a:2, b:3, c:2}.
func sparseABC(t testing.TB, opts ...categorical.Option) *categorical.SparseCategorical {
	return mustProbs(t, []string{"a", "b", "c"}, []int{2, 3, 2}, []categorical.Entry{
		row(0.1, 0, 0, 0), row(0.3, 0, 2, 1),
		row(0.2, 1, 1, 0), row(0.4, 1, 2, 1),
	}, opts...)
}

// sparseCD is a sparse factor over {c:2, d:2} sharing c with sparseABC.
func sparseCD(t testing.TB, opts ...categorical.Option) *categorical.SparseCategorical {
	return mustProbs(t, []string{"c", "d"}, []int{2, 2}, []categorical.Entry{
		row(0.5, 0, 1), row(0.7, 1, 0), row(0.9, 1, 1),
	}, opts...)
}

// sparseE is a one-variable factor disjoint from the others.
func sparseE(t testing.TB, opts ...categorical.Option) *categorical.SparseCategorical {
	return mustProbs(t, []string{"e"}, []int{3}, []categorical.Entry{
		row(0.25, 0), row(0.75, 2),
	}, opts...)
}

// otherKind is a Factor that is not a SparseCategorical.
type otherKind struct{ factor.Factor }
