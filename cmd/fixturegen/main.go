// Command fixturegen generates and verifies synthetic user account fixtures.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/fixturegen/internal/cli"
	"github.com/rshade/fixturegen/pkg/version"
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// exitCode maps a run error to the process exit status. cobra has already
// printed the error.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode(err))
}
