// Package config loads compiler settings from defaults, an optional
// authorkit.yaml, AUTHORKIT_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"authoring-kit/internal/analyze"
	"authoring-kit/internal/compile"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/render"
)

// Environment variable prefix for configuration.
const envPrefix = "AUTHORKIT"

// FileName is the config file searched in the working directory.
const FileName = "authorkit"

// Config holds the settings of one run.
type Config struct {
	Format     string   `mapstructure:"format"`
	Verbose    bool     `mapstructure:"verbose"`
	Strict     bool     `mapstructure:"strict"`
	TagKey     string   `mapstructure:"tag_key"`
	NamePrefix string   `mapstructure:"name_prefix"`
	Output     string   `mapstructure:"output"`
	Scopes     []string `mapstructure:"scopes"`
	MaxDepth   int      `mapstructure:"max_depth"`
}

// keys lists every setting, for env binding.
var keys = []string{"format", "verbose", "strict", "tag_key", "name_prefix", "output", "scopes", "max_depth"}

// Default returns the built-in settings.
func Default() *Config {
	c := compile.DefaultConfig()

	return &Config{
		Format:     string(render.FormatYAML),
		TagKey:     analyze.DefaultTagKey,
		NamePrefix: c.NamePrefix,
		MaxDepth:   c.MaxDepth,
	}
}

// Merge layers the non-zero values of other over c.
func (c *Config) Merge(other *Config) error {
	if other == nil {
		return nil
	}

	if err := mergo.Merge(c, other, mergo.WithOverride); err != nil {
		return fmt.Errorf("merging config: %w", err)
	}

	return nil
}

// Validate checks the format and scope names.
func (c *Config) Validate() error {
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}

	var errs []error

	for _, s := range c.Scopes {
		if !isScope(s) {
			errs = append(errs, fmt.Errorf("unknown scope %q", s))
		}
	}

	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}

	return errors.Join(errs...)
}

func isScope(s string) bool {
	for _, scope := range kinds.Scopes {
		if scope == s {
			return true
		}
	}

	return false
}

// CompileConfig returns the compiler settings.
func (c *Config) CompileConfig() compile.Config {
	return compile.Config{
		NamePrefix: c.NamePrefix,
		Scopes:     c.Scopes,
		StrictMode: c.Strict,
		MaxDepth:   c.MaxDepth,
	}
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	return &Loader{v: v}
}

// BindFlags binds the flags of fs named after settings; "tag-key" binds
// tag_key.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, key := range keys {
		f := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}

		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", f.Name, err)
		}
	}

	return nil
}

// Load reads configFile, or authorkit.yaml in the working directory when
// empty, and layers file, environment and flag values over Default.
// A missing default file is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(FileName)
		l.v.AddConfigPath(".")
	}

	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && (configFile != "" || !os.IsNotExist(err)) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var loaded Config
	if err := l.v.Unmarshal(&loaded); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg := Default()
	if err := cfg.Merge(&loaded); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ConfigFileUsed returns the file read by Load, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
