// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	priorYAML = `variables: [rain]
cardinalities: [2]
probs:
  - {assignment: [0], value: 0.8}
  - {assignment: [1], value: 0.2}
`
	slipGivenRainYAML = `variables: [rain, slip]
cardinalities: [2, 2]
probs:
  - {assignment: [0, 0], value: 0.8}
  - {assignment: [0, 1], value: 0.2}
  - {assignment: [1, 0], value: 0.4}
  - {assignment: [1, 1], value: 0.6}
`
	templateYAML = `var_templates: ["x_{t}", "x_{next}"]
cardinalities: [2, 2]
probs:
  - {assignment: [0, 0], value: 0.9}
  - {assignment: [1, 1], value: 0.8}
`
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes the command tree with a silent logger and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(zap.NewNop())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMultiplyAndMarginalize(t *testing.T) {
	prior := writeFile(t, "prior.yaml", priorYAML)
	cond := writeFile(t, "cond.yaml", slipGivenRainYAML)

	joint, err := run(t, "", "multiply", prior, cond, "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, joint, "variables: [slip, rain]")

	out, err := run(t, joint, "marginalize", "-", "--vars", "slip")
	require.NoError(t, err)
	assert.Equal(t, "slip  prob\n0     0.72\n1     0.28\n", out)

	out, err = run(t, joint, "marginalize", "-", "--vars", "slip", "--sum-out")
	require.NoError(t, err)
	assert.Equal(t, "rain  prob\n0     0.8\n1     0.2\n", out)
}

func TestReduceNormalizeArgmax(t *testing.T) {
	cond := writeFile(t, "cond.yaml", slipGivenRainYAML)

	reduced, err := run(t, "", "reduce", cond, "--observe", "slip=1", "-o", "yaml")
	require.NoError(t, err)

	out, err := run(t, reduced, "normalize", "-")
	require.NoError(t, err)
	assert.Equal(t, "rain  prob\n0     0.25\n1     0.75\n", out)

	out, err = run(t, "", "argmax", cond)
	require.NoError(t, err)
	assert.Equal(t, "rain=0 slip=0\n", out)

	_, err = run(t, "", "reduce", cond)
	assert.Error(t, err)
}

func TestDivideCancelKL(t *testing.T) {
	cond := writeFile(t, "cond.yaml", slipGivenRainYAML)

	out, err := run(t, "", "divide", cond, cond)
	require.NoError(t, err)
	assert.Contains(t, out, "rain  slip  prob")

	// 0/0 defaults cannot be written as a document; cancel's can
	_, err = run(t, "", "divide", cond, cond, "-o", "yaml")
	assert.ErrorContains(t, err, "NaN default")
	quotient, err := run(t, "", "cancel", cond, cond, "-o", "yaml")
	require.NoError(t, err)
	out, err = run(t, quotient, "show", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "rain  slip  prob")

	_, err = run(t, "", "cancel", cond)
	assert.ErrorContains(t, err, "expected 2 factors, read 1")

	// the conditional table sums to 2, so Q must be normalized like P
	out, err = run(t, "", "kl", cond, cond, "--normalize-q")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
	_, err = run(t, "", "kl", cond, cond)
	assert.ErrorContains(t, err, "negative KL divergence")

	prior := writeFile(t, "prior.yaml", priorYAML)
	out, err = run(t, "", "vacuous", prior)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0.19274"), out) // 0.8 ln 1.6 + 0.2 ln 0.4
}

func TestTemplateAndShow(t *testing.T) {
	tpl := writeFile(t, "tpl.yaml", templateYAML)

	out, err := run(t, "", "template", tpl, "--set", "t=1,next=2")
	require.NoError(t, err)
	assert.Equal(t, "x_1  x_2  prob\n0    0    0.9\n1    1    0.8\n", out)

	out, err = run(t, "", "template", tpl, "--names", "a,b", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "variables: [a, b]")

	both := writeFile(t, "both.yaml", priorYAML+"---\n"+slipGivenRainYAML)
	out, err = run(t, "", "show", both)
	require.NoError(t, err)
	assert.Contains(t, out, "rain  prob\n")
	assert.Contains(t, out, "rain  slip  prob\n")
}

func TestGlobalFlagValidation(t *testing.T) {
	prior := writeFile(t, "prior.yaml", priorYAML)

	_, err := run(t, "", "show", prior, "--workers", "0")
	assert.ErrorContains(t, err, "--workers")
	_, err = run(t, "", "show", prior, "--max-enumeration", "-1")
	assert.ErrorContains(t, err, "--max-enumeration")
	_, err = run(t, "", "show", prior, "-o", "json")
	assert.ErrorContains(t, err, "--output")

	// an exhaustive operation over budget fails with the engine's error
	cond := writeFile(t, "cond.yaml", slipGivenRainYAML)
	_, err = run(t, "", "divide", cond, cond, "--max-enumeration", "2")
	assert.ErrorContains(t, err, "enumeration budget")
}
