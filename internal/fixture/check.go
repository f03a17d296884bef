package fixture

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/fixturegen/internal/coins"
	"github.com/rshade/fixturegen/internal/engine/batch"
	"github.com/rshade/fixturegen/internal/generator"
)

// Check errors.
var (
	ErrInvalidID        = errors.New("invalid account id")
	ErrNegativeNetValue = errors.New("account debt exceeds equity")
)

// Report summarizes a successful check.
type Report struct {
	Dir       string
	Documents int
	Accounts  int

	// BatchSize is the proving batch size the layout was checked against and
	// Batches the number of batches the accounts split into.
	BatchSize int
	Batches   int

	// AccountsPerDocument is the size of the first document.
	AccountsPerDocument int

	// Aligned is true when every document but the last holds the same number
	// of accounts, that number is a multiple of BatchSize, and the last
	// document is no larger than the first.
	Aligned bool

	Progress batch.ProgressSnapshot
}

// Checker verifies fixture documents against a coin list.
type Checker struct {
	coins     coins.List
	idLength  int
	batchSize int
	workers   int
	logger    zerolog.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithBatchSize sets the batch size used for the layout report.
func WithBatchSize(n int) CheckerOption {
	return func(c *Checker) { c.batchSize = n }
}

// WithWorkers sets how many documents are read concurrently.
func WithWorkers(n int) CheckerOption {
	return func(c *Checker) { c.workers = n }
}

// WithIDLength sets the expected number of hex characters per id.
func WithIDLength(n int) CheckerOption {
	return func(c *Checker) { c.idLength = n }
}

// WithCheckerLogger sets the logger used for per-document diagnostics.
func WithCheckerLogger(l zerolog.Logger) CheckerOption {
	return func(c *Checker) { c.logger = l }
}

// NewChecker creates a Checker for list.
func NewChecker(list coins.List, opts ...CheckerOption) (*Checker, error) {
	if list.Len() == 0 {
		return nil, coins.ErrEmptyList
	}

	c := &Checker{
		coins:     list,
		idLength:  generator.DefaultIDLength,
		batchSize: batch.DefaultBatchSize,
		workers:   1,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.batchSize < 1 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", generator.ErrInvalidArgument, c.batchSize)
	}
	if c.idLength < 1 {
		return nil, fmt.Errorf("%w: id length must be positive, got %d", generator.ErrInvalidArgument, c.idLength)
	}
	return c, nil
}

// VerifyAccount checks the id format and that equity covers debt.
func (c *Checker) VerifyAccount(a Account) error {
	if !isLowerHex(a.ID, c.idLength) {
		return fmt.Errorf("%w: %q", ErrInvalidID, a.ID)
	}
	equity, debt := a.TotalEquity(), a.TotalDebt()
	if equity.Cmp(debt) < 0 {
		return fmt.Errorf("%w: equity %s, debt %s", ErrNegativeNetValue, equity, debt)
	}
	return nil
}

// Check reads and verifies every document under dir. It stops at the first
// invalid document.
func (c *Checker) Check(ctx context.Context, dir string) (Report, error) {
	docs, err := ListDocuments(dir)
	if err != nil {
		return Report{}, err
	}

	counts := make([]int, len(docs))
	proc, err := batch.NewProcessor[string](1)
	if err != nil {
		return Report{}, err
	}

	var last batch.ProgressSnapshot
	proc.WithProgressCallback(func(p *batch.Progress) {
		last = p.Snapshot()
		c.logger.Debug().
			Int("documents_done", last.ProcessedItems).
			Int("documents_total", last.TotalItems).
			Msg("check progress")
	})

	err = proc.ProcessConcurrent(ctx, docs, func(_ context.Context, paths []string, idx int) error {
		n, verifyErr := c.checkDocument(paths[0])
		if verifyErr != nil {
			return verifyErr
		}
		counts[idx] = n
		return nil
	}, c.workers)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Dir:                 dir,
		Documents:           len(docs),
		BatchSize:           c.batchSize,
		AccountsPerDocument: counts[0],
		Progress:            last,
	}
	for _, n := range counts {
		report.Accounts += n
	}
	report.Batches = batch.CountBatches(report.Accounts, c.batchSize)
	report.Aligned = aligned(counts, c.batchSize)

	return report, nil
}

func (c *Checker) checkDocument(path string) (int, error) {
	accounts, err := ReadDocument(path, c.coins)
	if err != nil {
		return 0, err
	}
	for i, a := range accounts {
		if verifyErr := c.VerifyAccount(a); verifyErr != nil {
			return 0, fmt.Errorf("%s: account %d: %w", path, i, verifyErr)
		}
	}

	c.logger.Debug().Str("path", path).Int("accounts", len(accounts)).Msg("document verified")
	return len(accounts), nil
}

// isLowerHex reports whether id is exactly length lowercase hex characters.
func isLowerHex(id string, length int) bool {
	if len(id) != length {
		return false
	}
	for i := range len(id) {
		ch := id[i]
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') {
			return false
		}
	}
	return true
}

func aligned(counts []int, batchSize int) bool {
	if len(counts) <= 1 {
		return true
	}
	first := counts[0]
	if first%batchSize != 0 {
		return false
	}
	for _, n := range counts[1 : len(counts)-1] {
		if n != first {
			return false
		}
	}
	return counts[len(counts)-1] <= first
}
