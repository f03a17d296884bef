package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fixturegen/internal/config"
	"github.com/rshade/fixturegen/internal/fixture"
)

func TestCheck_GeneratedFixtures(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvCoins, "BTC,ETH")
	makeOutputDir(t)

	_, _, err := executeCLI(t, "generate", "3", "4")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "check", "--batch-size", "2", "--workers", "2")
	require.NoError(t, err)

	assert.Contains(t, stdout, "FIXTURE CHECK PASSED")
	assert.Contains(t, stdout, "Documents: 3\n")
	assert.Contains(t, stdout, "Accounts: 12\n")
	assert.Contains(t, stdout, "Accounts per document: 4\n")
	assert.Contains(t, stdout, "Batches: 6\n")
	assert.Contains(t, stdout, "Layout aligned: yes\n")
}

func TestCheck_ThousandSeparators(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvCoins, "BTC")
	makeOutputDir(t)

	_, _, err := executeCLI(t, "generate", "1", "1500")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "check")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Accounts: 1,500\n")
	assert.Contains(t, stdout, "Batch size: 1,024\n")
}

func TestCheck_DirFlag(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvCoins, "BTC,ETH")

	dir := t.TempDir()
	_, _, err := executeCLI(t, "generate", "1", "2", "--output-dir", dir)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "check", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Directory: "+dir+"\n")
	assert.Contains(t, stdout, "Accounts: 2\n")
}

func TestCheck_CoinMismatch(t *testing.T) {
	setupCLITest(t)
	t.Setenv(config.EnvCoins, "BTC,ETH")
	makeOutputDir(t)

	_, _, err := executeCLI(t, "generate", "1", "2")
	require.NoError(t, err)

	t.Setenv(config.EnvCoins, "BTC,ETH,SOL")
	_, _, err = executeCLI(t, "check")
	require.ErrorIs(t, err, fixture.ErrMissingCoin)
}

func TestCheck_MissingDir(t *testing.T) {
	setupCLITest(t)

	_, _, err := executeCLI(t, "check", "--dir", filepath.Join(t.TempDir(), "absent"))
	require.ErrorIs(t, err, fixture.ErrDirNotFound)
}

func TestCheck_EmptyDir(t *testing.T) {
	setupCLITest(t)
	outDir := makeOutputDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "notes.txt"), []byte("x"), 0o600))

	_, _, err := executeCLI(t, "check")
	require.ErrorIs(t, err, fixture.ErrNoDocuments)
}
