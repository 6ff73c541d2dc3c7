package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".euler-offline"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .euler-offline configuration file.
// Every field is optional; a set field overrides the corresponding default,
// and CLI flags override both.
type File struct {
	// BaseURL overrides the site root.
	BaseURL string `yaml:"baseUrl,omitempty"`

	// Output overrides the output directory.
	Output string `yaml:"output,omitempty"`

	// CacheDir overrides the cache directory.
	CacheDir string `yaml:"cacheDir,omitempty"`

	// Engine overrides the LaTeX engine.
	Engine string `yaml:"engine,omitempty"`

	// Template overrides the embedded document template.
	Template string `yaml:"template,omitempty"`

	// SourceMods is the directory of per-problem .tex overrides.
	SourceMods string `yaml:"sourceMods,omitempty"`

	// Problems is a problem selection expression (e.g. "1,5-10").
	Problems string `yaml:"problems,omitempty"`
}

// LoadConfigFile loads overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the config file path was explicitly
// specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .euler-offline in the current directory
// 3. Look for .euler-offline in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply copies the set fields of the file onto the config.
// CLI flag handling calls this before applying explicit flags, giving the
// precedence order: defaults < config file < flags.
func (cf *File) Apply(cfg *Config) {
	if cf.BaseURL != "" {
		cfg.BaseURL = cf.BaseURL
	}
	if cf.Output != "" {
		cfg.OutputDir = cf.Output
	}
	if cf.CacheDir != "" {
		cfg.CacheDir = cf.CacheDir
	}
	if cf.Engine != "" {
		cfg.Engine = cf.Engine
	}
	if cf.Template != "" {
		cfg.TemplatePath = cf.Template
	}
	if cf.SourceMods != "" {
		cfg.SourceModsDir = cf.SourceMods
	}
	if cf.Problems != "" {
		cfg.Problems = cf.Problems
	}
}
