package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ipedro/lcovify/internal/convert"
	"github.com/ipedro/lcovify/internal/logger"
	"github.com/ipedro/lcovify/internal/xccov"
)

const sampleXccov = `{
  "targets": [
    {
      "files": [
        {
          "path": "A.swift",
          "executableLines": 10,
          "coveredLines": 7,
          "functions": [
            {"name": "f()", "lineNumber": 3, "executionCount": 2},
            {"name": "g()", "lineNumber": 8, "executionCount": 0}
          ]
        }
      ]
    }
  ]
}`

const sampleLcov = "TN:\n" +
	"SF:A.swift\n" +
	"FN:3,f()\n" +
	"FNDA:2,f()\n" +
	"FN:8,g()\n" +
	"FNDA:0,g()\n" +
	"FNF:2\n" +
	"FNH:1\n" +
	"DA:3,2\n" +
	"DA:8,0\n" +
	"LF:10\n" +
	"LH:7\n" +
	"end_of_record\n"

// runCommand executes the root command with the given arguments and
// returns its captured stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := NewLcovifyCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// isolateConfig keeps the command from picking up a real lcovify.yaml.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLcovifyCommand(t *testing.T) {
	t.Run("should convert an xccov report end to end", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		input := filepath.Join(dir, "coverage.json")
		output := filepath.Join(dir, "coverage.lcov")
		require.NoError(t, os.WriteFile(input, []byte(sampleXccov), 0644))

		stdout, _, err := runCommand(t, input, output)
		require.NoError(t, err)

		got, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, sampleLcov, string(got))
		assert.Contains(t, stdout, "Converted "+input+" to "+output)
	})

	t.Run("should convert a go cover profile with --format gocover", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		input := filepath.Join(dir, "cover.out")
		output := filepath.Join(dir, "coverage.lcov")
		require.NoError(t, os.WriteFile(input, []byte("mode: set\nexample.com/pkg/a.go:3.10,4.2 1 1\n"), 0644))

		_, _, err := runCommand(t, "--format", "gocover", input, output)
		require.NoError(t, err)

		got, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(got), "SF:example.com/pkg/a.go\n")
	})

	t.Run("should emit plain debug logs with --log-level and --no-color", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		input := filepath.Join(dir, "coverage.json")
		output := filepath.Join(dir, "coverage.lcov")
		require.NoError(t, os.WriteFile(input, []byte(sampleXccov), 0644))

		var logBuf bytes.Buffer
		logger.SetOutput(&logBuf)
		t.Cleanup(func() { logger.SetOutput(os.Stderr) })

		_, _, err := runCommand(t, "--log-level", "debug", "--no-color", input, output)
		require.NoError(t, err)

		logs := logBuf.String()
		assert.Contains(t, logs, "[DEBUG] Parsing xccov report from "+input)
		assert.Contains(t, logs, "[DEBUG] Writing LCOV records to "+output)
		assert.NotContains(t, logs, "\033[", "ANSI escapes must be absent with --no-color")
	})

	t.Run("should print usage on a wrong argument count", func(t *testing.T) {
		isolateConfig(t)

		stdout, stderr, err := runCommand(t, "only-one-arg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "accepts 2 arg(s)")
		assert.Contains(t, stdout+stderr, "Usage:")
	})

	t.Run("should fail without usage noise when the input is missing", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()

		stdout, stderr, err := runCommand(t, filepath.Join(dir, "nope.json"), filepath.Join(dir, "out.lcov"))
		require.Error(t, err)

		var inputErr *convert.InputError
		assert.True(t, errors.As(err, &inputErr), "expected *convert.InputError, got %T", err)
		assert.NotContains(t, stdout+stderr, "Usage:")
	})

	t.Run("should surface schema violations", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		input := filepath.Join(dir, "coverage.json")
		require.NoError(t, os.WriteFile(input,
			[]byte(`{"targets": [{"files": [{"path": "A.swift", "executableLines": 3}]}]}`), 0644))

		_, _, err := runCommand(t, input, filepath.Join(dir, "out.lcov"))
		require.Error(t, err)

		var schemaErr *xccov.SchemaError
		require.True(t, errors.As(err, &schemaErr), "expected *xccov.SchemaError, got %T", err)
		assert.Equal(t, "coveredLines", schemaErr.Field)
	})

	t.Run("should reject an unknown format", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()
		input := filepath.Join(dir, "coverage.json")
		require.NoError(t, os.WriteFile(input, []byte(sampleXccov), 0644))

		_, _, err := runCommand(t, "--format", "cobertura", input, filepath.Join(dir, "out.lcov"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown input format")
	})

	t.Run("should read the default format from the config file", func(t *testing.T) {
		isolateConfig(t)
		dir := t.TempDir()

		oldWd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { os.Chdir(oldWd) })

		configContent := "convert:\n  format: \"gocover\"\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "lcovify.yaml"), []byte(configContent), 0644))

		input := filepath.Join(dir, "cover.out")
		output := filepath.Join(dir, "coverage.lcov")
		require.NoError(t, os.WriteFile(input, []byte("mode: set\nexample.com/pkg/a.go:3.10,4.2 1 1\n"), 0644))

		_, _, err = runCommand(t, input, output)
		require.NoError(t, err)

		got, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(got), "SF:example.com/pkg/a.go\n")
	})
}
