package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/fixturegen/internal/config"
)

// writeOverlay is a test helper that writes YAML content to a temp file
// and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestShallowMergeYAML_SingleSection(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, `
check:
  workers: 8
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 8, target.Check.Workers)
	// Fields absent from the section keep their defaults.
	assert.Equal(t, config.DefaultCheckBatchSize, target.Check.BatchSize)
	// Other sections are untouched.
	assert.Equal(t, "info", target.Logging.Level)
	assert.Len(t, target.Generator.Coins, 220)
}

func TestShallowMergeYAML_CoinsReplacedWholesale(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, `
generator:
  coins: [BTC, ETH]
  output_dir: out
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, []string{"BTC", "ETH"}, target.Generator.Coins)
	assert.Equal(t, "out", target.Generator.OutputDir)
	assert.Equal(t, 64, target.Generator.IDLength)
}

func TestShallowMergeYAML_GeneratorWithoutCoinsKeepsDefaults(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, `
generator:
  id_length: 32
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))

	assert.Equal(t, 32, target.Generator.IDLength)
	assert.Len(t, target.Generator.Coins, 220)
}

func TestShallowMergeYAML_UnknownKeysIgnored(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, `
unknown:
  foo: bar
logging:
  level: debug
`)

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, "debug", target.Logging.Level)
}

func TestShallowMergeYAML_EmptyFile(t *testing.T) {
	target := config.New()
	overlay := writeOverlay(t, "# comments only\n")

	require.NoError(t, config.ShallowMergeYAML(target, overlay))
	assert.Equal(t, config.New(), target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	t.Run("nil target", func(t *testing.T) {
		require.Error(t, config.ShallowMergeYAML(nil, "x.yaml"))
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.ShallowMergeYAML(config.New(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		overlay := writeOverlay(t, "generator: [unclosed\n")
		err := config.ShallowMergeYAML(config.New(), overlay)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("wrong section type", func(t *testing.T) {
		overlay := writeOverlay(t, "check:\n  workers: many\n")
		err := config.ShallowMergeYAML(config.New(), overlay)
		require.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}
