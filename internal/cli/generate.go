package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rshade/fixturegen/internal/config"
	"github.com/rshade/fixturegen/internal/engine/batch"
	"github.com/rshade/fixturegen/internal/generator"
	"github.com/rshade/fixturegen/internal/logging"
)

const (
	generateUsage  = "Usage: fixturegen generate <num_of_docs> <accounts_per_doc>"
	integerArgsMsg = "Please provide integer arguments only."
)

// NewGenerateCmd creates the generate command, which writes num_of_docs batch
// files of accounts_per_doc records each.
func NewGenerateCmd() *cobra.Command {
	var (
		outputDir string
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "generate <num_of_docs> <accounts_per_doc>",
		Short: "Write batch files of random user accounts",
		Long: `Writes <num_of_docs> JSON documents named batch<i>.json into the output
directory, each holding <accounts_per_doc> accounts with a random 64-character
hex id and one string-encoded balance per configured coin.

The output directory must already exist.`,
		Example: `  # Two documents of 1024 accounts in test-data/user-data/
  fixturegen generate 2 1024

  # Reproducible balances in a custom directory
  fixturegen generate 2 16 --output-dir /tmp/fixtures --seed 42`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			list, err := cfg.CoinList()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "coins len: %d\n", list.Len())

			if len(args) < 2 { //nolint:mnd // two positional arguments
				_, _ = fmt.Fprintln(out, generateUsage)
				return nil
			}

			nums, ok := parseCounts(args)
			if !ok {
				_, _ = fmt.Fprintln(out, integerArgsMsg)
				return nil
			}
			numDocs, perDoc := nums[0], nums[1]

			_, _ = fmt.Fprintf(out, "generate user for %d docs, with %d accounts per doc\n", numDocs, perDoc)

			ctx := cmd.Context()
			log := logging.ComponentLogger(*logging.FromContext(ctx), "generator")

			opts := []generator.Option{
				generator.WithOutputDir(cfg.Generator.OutputDir),
				generator.WithIDLength(cfg.Generator.IDLength),
				generator.WithLogger(log),
			}
			if cmd.Flags().Changed("output-dir") {
				opts = append(opts, generator.WithOutputDir(outputDir))
			}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, generator.WithBalanceSampler(generator.NewSeededBalanceSampler(seed)))
			}

			gen, err := generator.New(list, opts...)
			if err != nil {
				return err
			}

			if numDocs == 0 {
				return nil
			}

			indexes := make([]int, numDocs)
			for i := range indexes {
				indexes[i] = i
			}

			proc, err := batch.NewProcessor[int](1)
			if err != nil {
				return err
			}
			proc.WithProgressCallback(func(p *batch.Progress) {
				snap := p.Snapshot()
				log.Debug().
					Int("docs_done", snap.ProcessedItems).
					Int("docs_total", snap.TotalItems).
					Dur("elapsed", snap.ElapsedTime).
					Msg("generate progress")
			})

			return proc.Process(ctx, indexes, func(ctx context.Context, idx []int, _ int) error {
				_, _ = fmt.Fprintf(out, "generate user for %d-th doc\n", idx[0])
				_, genErr := gen.GenerateBatch(ctx, idx[0], perDoc)
				return genErr
			})
		},
	}

	// Arguments such as "-1" or "-abc" reach pflag as unknown shorthand flags
	// and are answered like any other non-integer argument.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		if !isUnknownFlagError(err) {
			return err
		}
		return runWithRootHooks(c, func() error {
			list, listErr := config.GetGlobalConfig().CoinList()
			if listErr != nil {
				return listErr
			}
			out := c.OutOrStdout()
			_, _ = fmt.Fprintf(out, "coins len: %d\n", list.Len())
			_, _ = fmt.Fprintln(out, integerArgsMsg)
			return nil
		})
	})

	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory batch files are written to (default from config)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed the balance generator for reproducible balances (ids stay random)")

	return cmd
}

// isUnknownFlagError reports whether err is pflag's rejection of an
// unregistered flag.
func isUnknownFlagError(err error) bool {
	var notExist *pflag.NotExistError
	return errors.As(err, &notExist)
}

// parseCounts converts every argument to a non-negative integer. Arguments
// beyond the first two are parsed but otherwise ignored.
func parseCounts(args []string) ([]int, bool) {
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return nil, false
		}
		nums[i] = n
	}
	return nums, true
}
