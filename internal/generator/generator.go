package generator

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/rshade/fixturegen/internal/coins"
)

// Default generation settings.
const (
	// DefaultIDLength is the number of hex characters in a generated id.
	DefaultIDLength = 64

	// DefaultOutputDir is where batch files are written, relative to the working directory.
	DefaultOutputDir = "test-data/user-data"
)

// Generator errors.
var (
	ErrEmptyCoinList   = errors.New("coin list cannot be empty")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Generator builds account records for a fixed coin list and writes them out
// in batches. A Generator is not safe for concurrent use when configured with
// a seeded BalanceSampler.
type Generator struct {
	coins     coins.List
	idLength  int
	outputDir string
	balances  BalanceSampler
	ids       IDSampler
	logger    zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithOutputDir sets the directory batch files are written to.
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithIDLength sets the number of hex characters per id.
func WithIDLength(n int) Option {
	return func(g *Generator) {
		g.idLength = n
	}
}

// WithBalanceSampler replaces the balance source.
func WithBalanceSampler(s BalanceSampler) Option {
	return func(g *Generator) {
		g.balances = s
	}
}

// WithIDSampler replaces the id byte source.
func WithIDSampler(s IDSampler) Option {
	return func(g *Generator) {
		g.ids = s
	}
}

// WithLogger sets the logger used for per-batch diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// New creates a Generator for list. It fails with ErrEmptyCoinList when list
// has no symbols, since the list length divides every balance.
func New(list coins.List, opts ...Option) (*Generator, error) {
	if list.Len() == 0 {
		return nil, ErrEmptyCoinList
	}

	g := &Generator{
		coins:     list,
		idLength:  DefaultIDLength,
		outputDir: DefaultOutputDir,
		balances:  DefaultBalanceSampler(),
		ids:       DefaultIDSampler(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.idLength < 1 {
		return nil, fmt.Errorf("%w: id length must be positive, got %d", ErrInvalidArgument, g.idLength)
	}
	if g.balances == nil || g.ids == nil {
		return nil, fmt.Errorf("%w: samplers cannot be nil", ErrInvalidArgument)
	}

	return g, nil
}

// Coins returns the generator's coin list.
func (g *Generator) Coins() coins.List {
	return g.coins
}

// OutputDir returns the directory batch files are written to.
func (g *Generator) OutputDir() string {
	return g.outputDir
}

// NewRecord builds a single account record.
func (g *Generator) NewRecord() (Record, error) {
	id, err := RandomHex(g.ids, g.idLength)
	if err != nil {
		return Record{}, fmt.Errorf("generating account id: %w", err)
	}

	n := g.coins.Len()
	balances := make([]string, n)
	for i := range balances {
		balances[i] = strconv.FormatUint(Balance(g.balances.Uint32(), n), 10)
	}

	return Record{ID: id, Balances: balances, coins: g.coins}, nil
}

// Records builds n records in generation order. n = 0 yields an empty,
// non-nil slice so it serializes as [].
func (g *Generator) Records(ctx context.Context, n int) ([]Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: batch size must be >= 0, got %d", ErrInvalidArgument, n)
	}

	records := make([]Record, 0, n)
	for range n {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := g.NewRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// GenerateBatch builds size records and writes them to the batch file for
// index, returning the path written. The file is truncated if it exists.
func (g *Generator) GenerateBatch(ctx context.Context, index, size int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: batch index must be >= 0, got %d", ErrInvalidArgument, index)
	}

	records, err := g.Records(ctx, size)
	if err != nil {
		return "", err
	}

	path := BatchPath(g.outputDir, index)
	if err = writeFile(path, records); err != nil {
		return "", err
	}

	g.logger.Debug().
		Int("batch_index", index).
		Int("records", len(records)).
		Str("path", path).
		Msg("batch written")

	return path, nil
}

// WriteBatch encodes records as a JSON array to w.
func WriteBatch(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	return json.NewEncoder(w).Encode(records)
}

// BatchPath returns the file path for batch index under dir.
func BatchPath(dir string, index int) string {
	return filepath.Join(dir, "batch"+strconv.Itoa(index)+".json")
}

// writeFile creates path without creating parent directories, so a missing
// output directory surfaces as an fs.ErrNotExist error.
func writeFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating batch file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err = WriteBatch(bw, records); err != nil {
		_ = f.Close()
		return fmt.Errorf("encoding batch file %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing batch file %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing batch file %s: %w", path, err)
	}
	return nil
}
