// SPDX-License-Identifier: MIT

package categorical_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvfactor/categorical"
	"github.com/katalvlaran/lvfactor/factor"
)

func TestArgmax(t *testing.T) {
	got, err := rainSlip(t).Argmax()
	require.NoError(t, err)
	assert.Equal(t, factor.Assignment{0, 0}, got)

	got, err = sparseABC(t).Argmax()
	require.NoError(t, err)
	assert.Equal(t, factor.Assignment{1, 2, 1}, got)
}

// TestArgmax_Ties picks the lexicographically smallest of equal maxima.
func TestArgmax_Ties(t *testing.T) {
	f := mustProbs(t, []string{"a"}, []int{3}, []categorical.Entry{row(0.4, 2), row(0.2, 0), row(0.4, 1)})

	got, err := f.Argmax()
	require.NoError(t, err)
	assert.Equal(t, factor.Assignment{1}, got)
}

func TestArgmax_Empty(t *testing.T) {
	_, err := mustNew(t, []string{"a"}, []int{3}, nil).Argmax()
	assert.ErrorIs(t, err, categorical.ErrEmptyFactor)
}

// TestArgmax_DominatingDefault warns when an implicit cell beats every entry.
func TestArgmax_DominatingDefault(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	f := mustNew(t, []string{"a"}, []int{3}, []categorical.Entry{row(math.Log(0.1), 0)},
		categorical.WithDefaultLogProb(math.Log(0.45)), categorical.WithLogger(zap.New(core)))

	got, err := f.Argmax()
	require.NoError(t, err)
	assert.Equal(t, factor.Assignment{0}, got)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)

	// a dense factor has no implicit cells to warn about
	dense, err := f.Dense()
	require.NoError(t, err)
	_, err = dense.Argmax()
	require.NoError(t, err)
	assert.Equal(t, 1, logs.Len())
}

// TestPotential_VariableOrder reads the assignment in the order vars are given.
func TestPotential_VariableOrder(t *testing.T) {
	f := sparseABC(t)

	p, err := f.Potential([]string{"a", "b", "c"}, factor.Assignment{0, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, p, 1e-12)

	p, err = f.Potential([]string{"c", "a", "b"}, factor.Assignment{1, 0, 2})
	require.NoError(t, err)
	assert.InDelta(t, 0.3, p, 1e-12)
}

func TestPotential_Errors(t *testing.T) {
	f := sparseABC(t)
	tests := []struct {
		name       string
		vars       []string
		assignment factor.Assignment
		want       error
	}{
		{"missing", []string{"a", "b", "c"}, factor.Assignment{1, 0, 0}, categorical.ErrMissingAssignment},
		{"partial scope", []string{"a", "b"}, factor.Assignment{0, 0}, factor.ErrUnknownVariable},
		{"foreign variable", []string{"a", "b", "z"}, factor.Assignment{0, 0, 0}, factor.ErrUnknownVariable},
		{"duplicate variable", []string{"a", "a", "b"}, factor.Assignment{0, 0, 0}, factor.ErrUnknownVariable},
		{"length", []string{"a", "b", "c"}, factor.Assignment{0, 0}, categorical.ErrAssignmentLength},
		{"range", []string{"a", "b", "c"}, factor.Assignment{0, 3, 0}, categorical.ErrAssignmentRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Potential(tt.vars, tt.assignment)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
