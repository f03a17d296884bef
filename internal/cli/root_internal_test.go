package cli

import (
	"errors"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseLogOnError(t *testing.T) {
	boom := errors.New("boom")
	root := &cobra.Command{Use: "root"}
	group := &cobra.Command{Use: "group"}
	failing := &cobra.Command{Use: "fail", RunE: func(*cobra.Command, []string) error { return boom }}
	passing := &cobra.Command{Use: "pass", RunE: func(*cobra.Command, []string) error { return nil }}
	group.AddCommand(failing)
	root.AddCommand(group, passing)

	var closed int
	closeLogOnError(root, func() error {
		closed++
		return nil
	})

	require.ErrorIs(t, failing.RunE(failing, nil), boom)
	assert.Equal(t, 1, closed)

	require.NoError(t, passing.RunE(passing, nil))
	assert.Equal(t, 1, closed, "successful commands close through the post-run hook")
	assert.Nil(t, group.RunE)
}

func TestRunWithRootHooks(t *testing.T) {
	var calls []string
	root := &cobra.Command{
		Use: "root",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			calls = append(calls, "pre")
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			calls = append(calls, "post")
			return nil
		},
	}
	child := &cobra.Command{Use: "child"}
	root.AddCommand(child)

	boom := errors.New("boom")
	err := runWithRootHooks(child, func() error {
		calls = append(calls, "fn")
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"pre", "fn", "post"}, calls)
}

func TestRunWithRootHooks_PreRunFailure(t *testing.T) {
	boom := errors.New("bad config")
	root := &cobra.Command{
		Use:               "root",
		PersistentPreRunE: func(*cobra.Command, []string) error { return boom },
	}
	child := &cobra.Command{Use: "child"}
	root.AddCommand(child)

	ran := false
	err := runWithRootHooks(child, func() error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.False(t, ran)
}

func TestIsUnknownFlagError(t *testing.T) {
	parse := func(args ...string) error {
		fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
		fs.SetOutput(io.Discard)
		fs.Uint64("seed", 0, "")
		return fs.Parse(args)
	}

	assert.True(t, isUnknownFlagError(parse("2", "-1")))
	assert.True(t, isUnknownFlagError(parse("-abc", "2")))
	assert.True(t, isUnknownFlagError(parse("--nope")))
	assert.False(t, isUnknownFlagError(parse("--seed", "abc")))
}
