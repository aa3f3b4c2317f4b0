package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootfind/internal/solver"
)

// execute запускает CLI со сброшенными флагами
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	tol, maxIter, tiny = solver.DefaultTol, solver.DefaultMaxIter, solver.DefaultTiny
	timeout, csvPath, quiet = 0, "", false
	derivExpr, numericDeriv = "", false
	logLevel = "error"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBisectCommand(t *testing.T) {
	out, err := execute(t, "bisect", "--f", "x**3 - 2*x - 5", "--a", "2", "--b", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Корень: x = 2.09455")
	assert.Contains(t, out, "|b-a|")
}

func TestBisectCommand_BracketInvalid(t *testing.T) {
	out, err := execute(t, "bisect", "--f", "x**2 + 1", "--a", "-1", "--b", "1")
	assert.ErrorIs(t, err, solver.ErrBracketInvalid)
	assert.Contains(t, out, "Корень не найден: BracketInvalid")
}

func TestSecantCommand_Quiet(t *testing.T) {
	out, err := execute(t, "secant", "--f", "x**3 - 2*x - 5", "--a", "2", "--b", "3", "-q")
	require.NoError(t, err)
	assert.NotContains(t, out, "|b-a|")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNewtonCommand(t *testing.T) {
	out, err := execute(t, "newton", "--f", "x**2 - 4*x + 3", "--df", "2*x - 4", "--x0", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Корень: x = 3")

	out, err = execute(t, "newton", "--f", "cos(x) - x", "--numeric-deriv", "--x0", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Корень: x = 0.73908513")

	_, err = execute(t, "newton", "--f", "x**2 - 2", "--x0", "1")
	assert.Error(t, err, "derivative is required")

	out, err = execute(t, "newton", "--f", "x**2 - 1", "--df", "2*x", "--x0", "0")
	assert.ErrorIs(t, err, solver.ErrDerivativeTooSmall)
	assert.Contains(t, out, "DerivativeTooSmall")
}

func TestNewtonCommand_NonConverged(t *testing.T) {
	out, err := execute(t, "newton", "--f", "x**2 + 1", "--df", "2*x", "--x0", "0.5", "--max-iter", "5")
	require.NoError(t, err, "hitting the cap is not a failure")
	assert.Contains(t, out, "Точность не достигнута за 5 итераций")
}

func TestCommand_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	_, err := execute(t, "bisect", "--f", "x**2 - 2", "--a", "0", "--b", "2", "--csv", path, "-q")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(rows), 1)
	assert.Equal(t, []string{"k", "a", "b", "mid", "f(mid)", "b-a"}, rows[0])
}

func TestCommand_BadInput(t *testing.T) {
	_, err := execute(t, "bisect", "--f", "x + (", "--a", "0", "--b", "1")
	assert.Error(t, err)

	_, err = execute(t, "secant", "--f", "x", "--a", "0", "--b", "1", "--tol", "-1")
	assert.ErrorIs(t, err, solver.ErrBadConfig)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "rootfind version "+version+"\n", out)
}
