package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gnolang/loopx/extract"
	"github.com/gnolang/loopx/formatter"
)

const absSource = `int abs(int x) {
    if (x < 0) {
        return -x;
    }
    return x;
}

int zero(void) {
    return 0;
}
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInitConfigurationFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), extract.DefaultConfigFile)
	require.NoError(t, initConfigurationFile(path, false))

	config, err := extract.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, extract.DefaultConfig(), config)

	err = initConfigurationFile(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(path, []byte("format: json\n"), 0o644))
	require.NoError(t, initConfigurationFile(path, true))
	config, err = extract.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "text", config.Format)
}

func newTestViper(path string) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("LOOPX")
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.TempDir(), "loopx-no-such-dir"))
		v.SetConfigName(".loopx")
		v.SetConfigType("yaml")
	}
	return v
}

func TestReadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		config, err := readConfig(newTestViper(""), false)
		require.NoError(t, err)
		assert.Equal(t, extract.DefaultConfig(), config)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := writeTemp(t, ".loopx.yaml", `format: yaml
functions: [main, helper]
cache:
  enabled: false
  max_age: 10m
`)
		config, err := readConfig(newTestViper(path), true)
		require.NoError(t, err)
		assert.Equal(t, "yaml", config.Format)
		assert.Equal(t, []string{"main", "helper"}, config.Functions)
		assert.False(t, config.Cache.Enabled)
		assert.Equal(t, ".loopx_cache", config.Cache.Dir)
		assert.Equal(t, 10*time.Minute, config.Cache.MaxAge)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeTemp(t, ".loopx.yaml", "format: yaml\njobs: 2\n")
		t.Setenv("LOOPX_FORMAT", "json")

		config, err := readConfig(newTestViper(path), true)
		require.NoError(t, err)
		assert.Equal(t, "json", config.Format)
		assert.Equal(t, 2, config.Jobs)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := readConfig(newTestViper(filepath.Join(t.TempDir(), "none.yaml")), true)
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeTemp(t, ".loopx.yaml", "format: html\n")
		_, err := readConfig(newTestViper(path), true)
		assert.ErrorIs(t, err, extract.ErrInvalidConfig)
	})
}

func TestWriteDocuments(t *testing.T) {
	t.Parallel()

	docs := []*formatter.Document{{File: "a.c", Program: "a.c"}}

	var buf bytes.Buffer
	require.NoError(t, writeDocuments(extract.Config{Format: "json"}, docs, &buf))
	assert.Contains(t, buf.String(), `"file": "a.c"`)

	out := filepath.Join(t.TempDir(), "out.yaml")
	buf.Reset()
	require.NoError(t, writeDocuments(extract.Config{Format: "yaml", Output: out}, docs, &buf))
	assert.Empty(t, buf.String())
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file: a.c")

	assert.Error(t, writeDocuments(extract.Config{Format: "xml"}, docs, &buf))
}

func TestShowFunction(t *testing.T) {
	logger = zap.NewNop()
	path := writeTemp(t, "abs.c", absSource)

	doc, err := showFunction(context.Background(), path, "abs")
	require.NoError(t, err)
	require.Len(t, doc.Functions, 1)
	assert.Equal(t, "abs", doc.Functions[0].Name)
	assert.Len(t, doc.Functions[0].Paths, 2)

	_, err = showFunction(context.Background(), path, "missing")
	assert.EqualError(t, err, "function not found: missing")

	_, err = showFunction(context.Background(), path, "")
	assert.Error(t, err)
}

func TestExtractCommand(t *testing.T) {
	source := writeTemp(t, "abs.c", absSource)
	cfgPath := writeTemp(t, ".loopx.yaml", "format: json\ncache:\n  enabled: false\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"extract", "--config", cfgPath, "--func", "zero", source})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	var docs []formatter.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, source, docs[0].File)
	require.Len(t, docs[0].Functions, 1)
	assert.Equal(t, "zero", docs[0].Functions[0].Name)
}
