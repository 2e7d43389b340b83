package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/miajio/abbrev/pkg/config"
	"github.com/miajio/abbrev/pkg/prefixmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "abbrev_db", cfg.Store.Path)
	assert.Equal(t, "dict", cfg.Store.Namespace)
	assert.Equal(t, 5*time.Minute, cfg.Store.GCInterval)
	assert.Equal(t, 0.5, cfg.Store.GCDiscardRatio)
	assert.Equal(t, "trie", cfg.Lookup.Engine)
	assert.True(t, cfg.Segmenter.HMM)
	assert.Equal(t, 1000.0, cfg.Segmenter.LearnFrequency)
	assert.Equal(t, "nz", cfg.Segmenter.LearnPos)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())

	kind, err := cfg.EngineKind()
	require.NoError(t, err)
	assert.Equal(t, prefixmap.KindTrie, kind)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  in_memory: true
  namespace: commands
  gc_interval: 30s
lookup:
  engine: so
segmenter:
  dict_files: [a.txt, b.txt]
log:
  level: debug
  console: false
`), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Store.InMemory)
	assert.Equal(t, "commands", cfg.Store.Namespace)
	assert.Equal(t, 30*time.Second, cfg.Store.GCInterval)
	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Segmenter.DictFiles)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Console)

	kind, err := cfg.EngineKind()
	require.NoError(t, err)
	assert.Equal(t, prefixmap.KindSorted, kind)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("ABBREV_LOOKUP_ENGINE", "sorted")
	t.Setenv("ABBREV_STORE_NAMESPACE", "env")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sorted", cfg.Lookup.Engine)
	assert.Equal(t, "env", cfg.Store.Namespace)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		cfg, err := config.LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"empty path", func(c *config.Config) { c.Store.Path = "" }},
		{"empty namespace", func(c *config.Config) { c.Store.Namespace = "" }},
		{"bad ratio", func(c *config.Config) { c.Store.GCDiscardRatio = 1.5 }},
		{"unknown engine", func(c *config.Config) { c.Lookup.Engine = "btree" }},
		{"ambiguous engine", func(c *config.Config) { c.Lookup.Engine = "" }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := valid()
	cfg.Store.Path = ""
	cfg.Store.InMemory = true
	assert.NoError(t, cfg.Validate())
}

func TestEngines(t *testing.T) {
	engines := config.Engines()
	assert.Equal(t, []string{"sorted", "trie"}, engines.Names())

	kind, err := engines.Parse("t")
	require.NoError(t, err)
	assert.Equal(t, prefixmap.KindTrie, kind)

	_, err = engines.Parse("x")
	assert.ErrorIs(t, err, prefixmap.ErrValueNotFound)
}
