// Package cli wires the fixturegen cobra commands.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/fixturegen/internal/config"
	"github.com/rshade/fixturegen/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the fixturegen CLI.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configFlag string
	)

	cmd := &cobra.Command{
		Use:          "fixturegen",
		Short:        "Generate synthetic user account fixtures",
		Long:         "fixturegen: generate and verify JSON user account documents with randomized coin balances",
		Version:      ver,
		Example:      rootCmdExample,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolveConfigPath(configFlag, lookupEnv)
			if err := config.InitGlobalConfig(path, lookupEnv); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"path to a YAML config file (overrides "+config.EnvConfigPath+")")
	cmd.AddCommand(NewGenerateCmd(), NewCheckCmd(), newConfigCmd())

	// cobra skips post-run hooks when RunE fails, so failing commands close
	// the log file themselves.
	closeLogOnError(cmd, func() error { return cleanupLogging(logResult) })

	return cmd
}

// closeLogOnError wraps the RunE of every command below cmd so closeLog runs
// when it returns an error.
func closeLogOnError(cmd *cobra.Command, closeLog func() error) {
	for _, sub := range cmd.Commands() {
		closeLogOnError(sub, closeLog)

		run := sub.RunE
		if run == nil {
			continue
		}
		sub.RunE = func(c *cobra.Command, args []string) error {
			err := run(c, args)
			if err != nil {
				_ = closeLog()
			}
			return err
		}
	}
}

// runWithRootHooks runs fn between the root command's persistent pre- and
// post-run hooks. It serves code paths that end before cobra reaches RunE,
// such as flag error handlers.
func runWithRootHooks(cmd *cobra.Command, fn func() error) error {
	root := cmd.Root()
	if root.PersistentPreRunE != nil {
		if err := root.PersistentPreRunE(cmd, nil); err != nil {
			return err
		}
	}

	err := fn()
	if root.PersistentPostRunE != nil {
		if postErr := root.PersistentPostRunE(cmd, nil); err == nil {
			err = postErr
		}
	}
	return err
}

const rootCmdExample = `  # Write 4 documents of 1024 accounts each to test-data/user-data/
  fixturegen generate 4 1024

  # Use a smaller coin list from a config file
  fixturegen --config fixturegen.yaml generate 2 16

  # Verify the generated documents
  fixturegen check --dir test-data/user-data

  # Write a default configuration file
  fixturegen config init`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
