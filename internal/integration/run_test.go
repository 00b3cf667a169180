package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nx-lang/nx/internal/diagnostics"
	"github.com/nx-lang/nx/internal/interp"
)

type result struct {
	stdout    string
	stderr    string
	collector *diagnostics.Collector
	err       error
}

func runFile(t *testing.T, path string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	collector := diagnostics.NewWithWriter(&stderr)
	err := interp.New(collector, interp.WithStdout(&stdout)).RunFile(path)
	return result{stdout: stdout.String(), stderr: stderr.String(), collector: collector, err: err}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		file     string
		expected string
	}{
		{"hello.nx", "hello\n"},
		{"answer.nx", "answer=42\n"},
		{"square.nx", "81\n"},
		{"branch.nx", "yes\n"},
		{"concat.nx", "ab\n"},
	}

	for _, test := range tests {
		t.Run(test.file, func(t *testing.T) {
			t.Parallel()

			res := runFile(t, filepath.Join("testdata", test.file))
			require.NoError(t, res.err, res.stderr)
			assert.Empty(t, res.collector.Diags)
			assert.Equal(t, test.expected, res.stdout)
		})
	}
}

func TestMissingMain(t *testing.T) {
	res := runFile(t, filepath.Join("testdata", "no_main.nx"))
	require.ErrorIs(t, res.err, interp.ErrMainNotFound)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "Main function not found")
}

func TestCalculator(t *testing.T) {
	expected, err := os.ReadFile(filepath.Join("testdata", "calculator.out"))
	require.NoError(t, err)

	res := runFile(t, filepath.Join("testdata", "calculator.nx"))
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, string(expected), res.stdout)
}

func TestModuleFromFile(t *testing.T) {
	res := runFile(t, filepath.Join("testdata", "project", "main.nx"))
	require.NoError(t, res.err, res.stderr)
	assert.Equal(t, "hello, nx\n", res.stdout)
}

func TestImportErrorDoesNotStopExecution(t *testing.T) {
	res := runFile(t, filepath.Join("testdata", "not_imported.nx"))
	require.NoError(t, res.err, res.stderr)

	// The rejected call yields "". An identifier bound to "" evaluates to
	// its own name.
	assert.Equal(t, "call=[]\nx=[x]\n", res.stdout)

	require.Len(t, res.collector.Diags, 2)
	for _, diag := range res.collector.Diags {
		assert.Equal(t, diagnostics.IMPORT, diag.Kind)
		assert.Equal(t, "module 'foo' not imported", diag.Message)
	}
	assert.Equal(t, 5, res.collector.Diags[0].Pos.Line)
	assert.Equal(t, 6, res.collector.Diags[1].Pos.Line)
	assert.False(t, res.collector.HasErrors())
}

func TestErrors(t *testing.T) {
	tests := []struct {
		file    string
		kind    diagnostics.Kind
		line    int
		message string
	}{
		{"bad_syntax.nx", diagnostics.SYNTAX, 4, "Missing semicolon at end of statement"},
		{"lexical.nx", diagnostics.LEXICAL, 4, "unterminated string literal"},
	}

	for _, test := range tests {
		t.Run(test.file, func(t *testing.T) {
			res := runFile(t, filepath.Join("testdata", "errors", test.file))
			require.ErrorIs(t, res.err, diagnostics.ErrCompilerErrorFound)
			assert.Empty(t, res.stdout, "nothing runs after a parse failure")

			require.NotEmpty(t, res.collector.Diags)
			first := res.collector.Diags[0]
			assert.Equal(t, test.kind, first.Kind)
			assert.Equal(t, test.line, first.Pos.Line)
			assert.True(t, strings.Contains(first.Message, test.message), first.Message)
			assert.Contains(t, res.stderr, "Error at line")
		})
	}
}
