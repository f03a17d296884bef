package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/fixturegen/internal/cli"
	"github.com/rshade/fixturegen/internal/config"
)

// setupCLITest quiets logging, moves into a fresh working directory and
// registers cleanup for global state. It returns the working directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvConfigPath, "")
	t.Cleanup(config.ResetGlobalConfigForTest)

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// makeOutputDir creates the default output directory under the working directory.
func makeOutputDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join("test-data", "user-data")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	return dir
}

// executeCLI runs the root command with args and returns stdout and stderr.
func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
