package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/strokestat-cli/internal/utils"
)

// DirName is the per-user config directory under $HOME.
const DirName = ".strokestat"

// Global configuration structure.
type Global struct {
	DataPath      string `mapstructure:"data_path" yaml:"data_path"`
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`
	ExportFormat  string `mapstructure:"export_format" yaml:"export_format"`
	ExportEnabled bool   `mapstructure:"export_enabled" yaml:"export_enabled"`
	RenderFormat  string `mapstructure:"render_format" yaml:"render_format"`
	// Diagnostics logs dropped rows and skipped values.
	Diagnostics    bool   `mapstructure:"diagnostics" yaml:"diagnostics"`
	DefaultFeature string `mapstructure:"default_feature" yaml:"default_feature"`
	Parallelism    int    `mapstructure:"parallelism" yaml:"parallelism"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"data_path",
	"output_dir",
	"export_format",
	"export_enabled",
	"render_format",
	"diagnostics",
	"default_feature",
	"parallelism",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_path", "stroke_data.csv")
	v.SetDefault("output_dir", ".")
	v.SetDefault("export_format", "csv")
	v.SetDefault("export_enabled", true)
	v.SetDefault("render_format", "text")
	v.SetDefault("diagnostics", false)
	v.SetDefault("default_feature", "Age")
	v.SetDefault("parallelism", 4)
}

// Path returns the config file location, cfgFile when set.
func Path(cfgFile string) (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, DirName, "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.strokestat/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path, err := Path(cfgFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("STROKESTAT")
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, DirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// a missing file falls back to env and defaults; a broken one is an error
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks enumerated keys and bounds.
func (c *Global) Validate() error {
	switch strings.ToLower(c.ExportFormat) {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("invalid export_format: %s (use csv or xlsx)", c.ExportFormat)
	}
	switch strings.ToLower(c.RenderFormat) {
	case "text", "markdown", "md", "html", "json", "yaml", "yml":
	default:
		return fmt.Errorf("invalid render_format: %s", c.RenderFormat)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("invalid parallelism: %d (must be at least 1)", c.Parallelism)
	}
	if strings.TrimSpace(c.DataPath) == "" {
		return fmt.Errorf("data_path must not be empty")
	}
	return nil
}

// Default returns the built-in defaults without reading env or files.
func Default() *Global {
	v := viper.New()
	setDefaults(v)
	var c Global
	_ = v.Unmarshal(&c)
	return &c
}
