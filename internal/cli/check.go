package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/fixturegen/internal/config"
	"github.com/rshade/fixturegen/internal/fixture"
	"github.com/rshade/fixturegen/internal/logging"
)

// NewCheckCmd creates the check command, which verifies generated documents.
func NewCheckCmd() *cobra.Command {
	var (
		dir       string
		workers   int
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify generated user account documents",
		Long: `Reads every *.json document under the fixture directory and verifies that
each account has a well-formed id, a balance for every configured coin, and
equity at least equal to its debt. Prints a summary of the documents found and
how the accounts split into proving batches.`,
		Example: `  # Check the default output directory
  fixturegen check

  # Check another directory with 8 readers
  fixturegen check --dir /tmp/fixtures --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			list, err := cfg.CoinList()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("dir") {
				dir = cfg.Generator.OutputDir
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Check.Workers
			}
			if !cmd.Flags().Changed("batch-size") {
				batchSize = cfg.Check.BatchSize
			}

			ctx := cmd.Context()
			log := logging.ComponentLogger(*logging.FromContext(ctx), "check")

			checker, err := fixture.NewChecker(list,
				fixture.WithBatchSize(batchSize),
				fixture.WithWorkers(workers),
				fixture.WithIDLength(cfg.Generator.IDLength),
				fixture.WithCheckerLogger(log),
			)
			if err != nil {
				return err
			}

			report, err := checker.Check(ctx, dir)
			if err != nil {
				return err
			}

			log.Info().
				Str("dir", report.Dir).
				Int("documents", report.Documents).
				Int("accounts", report.Accounts).
				Dur("elapsed", report.Progress.ElapsedTime).
				Msg("fixtures verified")

			return renderCheckReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the documents (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "documents read concurrently (default from config)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "proving batch size used for the layout report (default from config)")

	return cmd
}

// renderCheckReport writes the summary as a bordered box on a terminal and as
// plain lines otherwise.
func renderCheckReport(w io.Writer, report fixture.Report) error {
	lines := checkReportLines(report)
	if isWriterTerminal(w) {
		return renderStyledCheckReport(w, lines)
	}
	return renderPlainCheckReport(w, lines)
}

func checkReportLines(report fixture.Report) []string {
	p := message.NewPrinter(language.English)
	aligned := "yes"
	if !report.Aligned {
		aligned = "no"
	}
	return []string{
		p.Sprintf("Directory: %s", report.Dir),
		p.Sprintf("Documents: %d", report.Documents),
		p.Sprintf("Accounts: %d", report.Accounts),
		p.Sprintf("Accounts per document: %d", report.AccountsPerDocument),
		p.Sprintf("Batch size: %d", report.BatchSize),
		p.Sprintf("Batches: %d", report.Batches),
		p.Sprintf("Layout aligned: %s", aligned),
	}
}

func renderStyledCheckReport(w io.Writer, lines []string) error {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	var content strings.Builder
	content.WriteString(titleStyle.Render("FIXTURE CHECK PASSED"))
	content.WriteString("\n\n")
	content.WriteString(strings.Join(lines, "\n"))

	_, err := fmt.Fprintln(w, boxStyle.Render(content.String()))
	return err
}

func renderPlainCheckReport(w io.Writer, lines []string) error {
	if _, err := fmt.Fprintln(w, "FIXTURE CHECK PASSED"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "===================="); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// isWriterTerminal reports whether w is an *os.File attached to a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}
