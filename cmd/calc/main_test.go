package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCalc(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--no-color"))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvalPrintsDisplay(t *testing.T) {
	out, err := runCalc(t, "", "eval", "4", "+", "2")
	require.NoError(t, err)
	assert.Equal(t, "4 + 2\n6\n", out)
}

func TestEvalDivideByZero(t *testing.T) {
	out, err := runCalc(t, "", "eval", "10", "divide", "0")
	require.NoError(t, err)
	assert.Equal(t, "10 / 0\n+Inf\n", out)
}

func TestEvalMalformedOperand(t *testing.T) {
	out, err := runCalc(t, "", "eval", "abc", "*", "3")
	require.NoError(t, err)
	assert.Equal(t, "0 * 3\n0\n", out)
}

func TestEvalRejectsUnknownOperator(t *testing.T) {
	_, err := runCalc(t, "", "eval", "1", "^", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown operator")
}

func TestReplReadsStdin(t *testing.T) {
	out, err := runCalc(t, "a 5\nb 3\n-\nquit\n", "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "calc: type help for commands")
	assert.Contains(t, out, "5 - 3\n2\n")
}

func TestEvalAcceptsNegativeOperands(t *testing.T) {
	out, err := runCalc(t, "", "eval", "-3", "+", "2")
	require.NoError(t, err)
	assert.Equal(t, "-3 + 2\n-1\n", out)

	out, err = runCalc(t, "", "eval", "-3", "-", "-2")
	require.NoError(t, err)
	assert.Equal(t, "-3 - -2\n-1\n", out)
}

func TestEvalRejectsWrongArity(t *testing.T) {
	_, err := runCalc(t, "", "eval", "1", "+")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected <first> <op> <second>")
}

func TestEvalErrorIsNotPrintedByCobra(t *testing.T) {
	out, err := runCalc(t, "", "eval", "1", "^", "2")
	require.Error(t, err)
	assert.NotContains(t, out, "Error:")
	assert.NotContains(t, out, "Usage:")
}

func TestSplitEvalArgs(t *testing.T) {
	operands, flags, help := splitEvalArgs([]string{"--debug", "-3", "*", "--", "--no-color"})

	assert.Equal(t, []string{"-3", "*", "--no-color"}, operands)
	assert.True(t, flags.Debug)
	assert.False(t, flags.NoColor)
	assert.False(t, help)
}
