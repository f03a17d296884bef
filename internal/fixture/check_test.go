package fixture_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fixturegen/internal/coins"
	"github.com/rshade/fixturegen/internal/fixture"
	"github.com/rshade/fixturegen/internal/generator"
)

func generateDocs(t *testing.T, dir string, list coins.List, sizes ...int) {
	t.Helper()
	g, err := generator.New(list, generator.WithOutputDir(dir))
	require.NoError(t, err)
	for i, n := range sizes {
		_, err = g.GenerateBatch(context.Background(), i, n)
		require.NoError(t, err)
	}
}

func TestChecker_GeneratedFixtures(t *testing.T) {
	dir := t.TempDir()
	list := coins.MustNew([]string{"BTC", "ETH", "USDT"})
	generateDocs(t, dir, list, 8, 8, 3)

	c, err := fixture.NewChecker(list, fixture.WithBatchSize(4), fixture.WithWorkers(2))
	require.NoError(t, err)

	report, err := c.Check(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, dir, report.Dir)
	assert.Equal(t, 3, report.Documents)
	assert.Equal(t, 19, report.Accounts)
	assert.Equal(t, 5, report.Batches)
	assert.Equal(t, 8, report.AccountsPerDocument)
	assert.True(t, report.Aligned)
	assert.Equal(t, 3, report.Progress.ProcessedItems)
}

func TestChecker_Misaligned(t *testing.T) {
	dir := t.TempDir()
	list := coins.MustNew([]string{"BTC"})
	generateDocs(t, dir, list, 5, 5)

	c, err := fixture.NewChecker(list, fixture.WithBatchSize(4))
	require.NoError(t, err)

	report, err := c.Check(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, report.Aligned)
	assert.Equal(t, 3, report.Batches)
}

func TestChecker_CoinMismatch(t *testing.T) {
	dir := t.TempDir()
	generateDocs(t, dir, coins.MustNew([]string{"BTC"}), 2)

	c, err := fixture.NewChecker(coins.MustNew([]string{"BTC", "ETH"}))
	require.NoError(t, err)

	_, err = c.Check(context.Background(), dir)
	require.ErrorIs(t, err, fixture.ErrMissingCoin)
	assert.Contains(t, err.Error(), "batch0.json")
}

func TestChecker_InvalidID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "batch0.json"), `[{"id":"NOT-HEX","BTC":"1"}]`)

	c, err := fixture.NewChecker(coins.MustNew([]string{"BTC"}))
	require.NoError(t, err)

	_, err = c.Check(context.Background(), dir)
	require.ErrorIs(t, err, fixture.ErrInvalidID)
}

func TestChecker_VerifyAccount(t *testing.T) {
	c, err := fixture.NewChecker(coins.MustNew([]string{"BTC", "ETH"}), fixture.WithIDLength(4))
	require.NoError(t, err)

	ok := fixture.Account{ID: "abcd", Equity: []uint64{5, 5}, Debt: []uint64{10, 0}}
	require.NoError(t, c.VerifyAccount(ok))

	underwater := fixture.Account{ID: "abcd", Equity: []uint64{1, 0}, Debt: []uint64{0, 2}}
	require.ErrorIs(t, c.VerifyAccount(underwater), fixture.ErrNegativeNetValue)

	badID := fixture.Account{ID: sampleID, Equity: []uint64{0, 0}, Debt: []uint64{0, 0}}
	require.ErrorIs(t, c.VerifyAccount(badID), fixture.ErrInvalidID)

	upper := fixture.Account{ID: "ABCD", Equity: []uint64{0, 0}, Debt: []uint64{0, 0}}
	require.ErrorIs(t, c.VerifyAccount(upper), fixture.ErrInvalidID)
}

func TestChecker_LongIDLength(t *testing.T) {
	id := strings.Repeat("ab", 1024)
	c, err := fixture.NewChecker(coins.MustNew([]string{"BTC"}), fixture.WithIDLength(len(id)))
	require.NoError(t, err)
	require.NoError(t, c.VerifyAccount(fixture.Account{ID: id, Equity: []uint64{1}, Debt: []uint64{0}}))
}

func TestNewChecker_Errors(t *testing.T) {
	_, err := fixture.NewChecker(coins.List{})
	require.ErrorIs(t, err, coins.ErrEmptyList)

	_, err = fixture.NewChecker(coins.MustNew([]string{"BTC"}), fixture.WithBatchSize(0))
	require.ErrorIs(t, err, generator.ErrInvalidArgument)

	for _, n := range []int{0, -1} {
		assert.NotPanics(t, func() {
			_, err = fixture.NewChecker(coins.MustNew([]string{"BTC"}), fixture.WithIDLength(n))
		})
		require.ErrorIs(t, err, generator.ErrInvalidArgument, "id length %d", n)
	}
}

func TestChecker_MissingDir(t *testing.T) {
	c, err := fixture.NewChecker(coins.MustNew([]string{"BTC"}))
	require.NoError(t, err)

	_, err = c.Check(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, fixture.ErrDirNotFound)
}
