package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gnolang/loopx/formatter"
)

const (
	DefaultConfigFile = ".loopx.yaml"
	defaultCacheDir   = ".loopx_cache"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the extraction configuration. It is read from .loopx.yaml and
// may be overridden by environment variables and flags.
type Config struct {
	Name        string      `yaml:"name" mapstructure:"name"`
	Format      string      `yaml:"format" mapstructure:"format"`
	Output      string      `yaml:"output,omitempty" mapstructure:"output"`
	IgnorePaths []string    `yaml:"ignore_paths,omitempty" mapstructure:"ignore_paths"`
	Functions   []string    `yaml:"functions,omitempty" mapstructure:"functions"`
	Cache       CacheConfig `yaml:"cache" mapstructure:"cache"`
	// Jobs is the number of files extracted in parallel. Zero uses one
	// worker per CPU.
	Jobs int `yaml:"jobs" mapstructure:"jobs"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	MaxAge  time.Duration `yaml:"max_age" mapstructure:"max_age"`
}

func DefaultConfig() Config {
	return Config{
		Name:   "loopx",
		Format: string(formatter.FormatText),
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCacheDir,
			MaxAge:  24 * time.Hour,
		},
	}
}

// Validate checks the values that cannot be checked by decoding alone.
func (c Config) Validate() error {
	if _, err := formatter.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidConfig, c.Jobs)
	}
	if c.Cache.Enabled && c.Cache.Dir == "" {
		return fmt.Errorf("%w: cache.dir is required when the cache is enabled", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads a configuration file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error decoding %s: %w", path, err)
	}
	return config, config.Validate()
}

// WriteConfig writes config as YAML.
func WriteConfig(w io.Writer, config Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("error encoding configuration: %w", err)
	}
	return enc.Close()
}
