package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fixturegen/internal/cli"
	"github.com/rshade/fixturegen/internal/config"
)

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := cli.NewRootCmd("1.2.3")
	assert.Equal(t, "fixturegen", root.Use)
	assert.Equal(t, "1.2.3", root.Version)

	for _, path := range [][]string{{"generate"}, {"check"}, {"config", "init"}, {"config", "show"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestNewRootCmdWithEnv_ConfigFromEnv(t *testing.T) {
	setupCLITest(t)
	makeOutputDir(t)

	env := map[string]string{
		config.EnvCoins:     "BTC",
		config.EnvLogLevel:  "error",
		config.EnvOutputDir: "test-data/user-data",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	var stdout bytes.Buffer
	root := cli.NewRootCmdWithEnv("test", lookup)
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"generate", "1", "1"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "coins len: 1\n")
}

func TestDebugFlag_LogsToStderr(t *testing.T) {
	setupCLITest(t)
	makeOutputDir(t)
	t.Setenv(config.EnvCoins, "BTC")

	stdout, stderr, err := executeCLI(t, "--debug", "generate", "1", "1")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "batch written", "logs never go to stdout")
	assert.Contains(t, stderr, "batch written")
	assert.Contains(t, stderr, "command started")
}
