// Package wikiconfig loads the engine's configuration. The core treats
// Config as an immutable, externally supplied value; this
// package is the concrete local/CLI loader that produces one.
package wikiconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"wikigen/internal/wikierr"
)

// Config holds every key the core consumes
type Config struct {
	ParallelLimitLocal int    `json:"parallelLimitLocal" mapstructure:"parallelLimitLocal"`
	ParallelLimitCloud int    `json:"parallelLimitCloud" mapstructure:"parallelLimitCloud"`
	MaxFileSizeKB      int    `json:"maxFileSizeKb" mapstructure:"maxFileSizeKb"`
	WikiDir            string `json:"wikiDir" mapstructure:"wikiDir"`
	StagingDir         string `json:"stagingDir" mapstructure:"stagingDir"`

	LayerValidation LayerValidationConfig `json:"layerValidation" mapstructure:"layerValidation"`
	Logging         LoggingConfig         `json:"logging" mapstructure:"logging"`
	DeadCode        DeadCodeConfig        `json:"deadCode" mapstructure:"deadCode"`

	// PatternsFile points at the TOML declaration of decorator/entry-point
	// patterns consumed by C1. Relative to RepoRoot.
	PatternsFile string `json:"patternsFile" mapstructure:"patternsFile"`

	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`
}

// LayerValidationConfig carries the default layer coercion target and the
// enumerated valid values backing FileSummary invariant.
type LayerValidationConfig struct {
	ValidLayers  []string `json:"validLayers" mapstructure:"validLayers"`
	DefaultLayer string   `json:"defaultLayer" mapstructure:"defaultLayer"`
}

// LoggingConfig mirrors wikilog.Config's Format/Level as plain strings so it
// round-trips through JSON/viper without importing wikilog here.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DeadCodeConfig configures the code-health page's dead-code analysis.
type DeadCodeConfig struct {
	ExcludedNames     []string `json:"excludedNames" mapstructure:"excludedNames"`
	IncludeUnexported bool     `json:"includeUnexported" mapstructure:"includeUnexported"`
}

// DefaultConfig returns the engine's built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ParallelLimitLocal: 2,
		ParallelLimitCloud: 8,
		MaxFileSizeKB:      512,
		WikiDir:            ".wikigen",
		StagingDir:         ".wikigen-building",
		LayerValidation: LayerValidationConfig{
			ValidLayers:  []string{"api", "domain", "infrastructure", "utility", "config", "test"},
			DefaultLayer: "utility",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
		PatternsFile: ".wikigen/patterns.toml",
		RepoRoot:     ".",
	}
}

// envVarMappings follows the base codebase's dotted-path override table,
// renamed to this project's own prefix.
var envVarMappings = map[string]struct {
	path    string
	varType string
}{
	"WIKIGEN_LOG_LEVEL":            {"logging.level", "string"},
	"WIKIGEN_LOG_FORMAT":           {"logging.format", "string"},
	"WIKIGEN_PARALLEL_LIMIT_LOCAL": {"parallelLimitLocal", "int"},
	"WIKIGEN_PARALLEL_LIMIT_CLOUD": {"parallelLimitCloud", "int"},
	"WIKIGEN_MAX_FILE_SIZE_KB":     {"maxFileSizeKb", "int"},
	"WIKIGEN_WIKI_DIR":             {"wikiDir", "string"},
	"WIKIGEN_STAGING_DIR":          {"stagingDir", "string"},
}

// Load reads configuration from <repoRoot>/.wikigen/config.json, falling
// back to DefaultConfig() if absent, then applies WIKIGEN_* environment
// overrides. Any failure here is a wikierr.ConfigError, which is fatal at
// startup and never surfaces mid-build.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".wikigen"))

	var cfg *Config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg = DefaultConfig()
		} else {
			return nil, wikierr.Wrap(wikierr.ConfigError, "failed to read config", err)
		}
	} else {
		cfg = DefaultConfig()
		if err := v.Unmarshal(cfg); err != nil {
			return nil, wikierr.Wrap(wikierr.ConfigError, "failed to parse config", err)
		}
	}
	cfg.RepoRoot = repoRoot

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	for envVar, def := range envVarMappings {
		raw := os.Getenv(envVar)
		if raw == "" {
			continue
		}
		switch def.varType {
		case "string":
			setStringField(cfg, def.path, raw)
		case "int":
			if n, err := strconv.Atoi(raw); err == nil {
				setIntField(cfg, def.path, n)
			}
		}
	}
}

func setStringField(cfg *Config, path, value string) {
	switch path {
	case "logging.level":
		cfg.Logging.Level = value
	case "logging.format":
		cfg.Logging.Format = value
	case "wikiDir":
		cfg.WikiDir = value
	case "stagingDir":
		cfg.StagingDir = value
	}
}

func setIntField(cfg *Config, path string, value int) {
	switch path {
	case "parallelLimitLocal":
		cfg.ParallelLimitLocal = value
	case "parallelLimitCloud":
		cfg.ParallelLimitCloud = value
	case "maxFileSizeKb":
		cfg.MaxFileSizeKB = value
	}
}

// Validate checks structural invariants the rest of the engine relies on.
func (c *Config) Validate() error {
	if c.ParallelLimitLocal < 1 || c.ParallelLimitCloud < 1 {
		return wikierr.New(wikierr.ConfigError, "parallel limits must be >= 1")
	}
	if c.StagingDir == "" || c.StagingDir == c.WikiDir {
		return wikierr.New(wikierr.ConfigError, "stagingDir must be set and differ from wikiDir")
	}
	if len(c.LayerValidation.ValidLayers) == 0 {
		return wikierr.New(wikierr.ConfigError, "layerValidation.validLayers must not be empty")
	}
	return nil
}

// Save writes the configuration back to <repoRoot>/.wikigen/config.json,
// mirroring the base codebase's Save() convention for round-tripping a
// loaded-then-edited config.
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".wikigen")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wikierr.Wrap(wikierr.ConfigError, "failed to create config dir", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return wikierr.Wrap(wikierr.ConfigError, "failed to marshal config", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o644); err != nil {
		return wikierr.Wrap(wikierr.ConfigError, "failed to write config", err)
	}
	return nil
}

// IsValidLayer reports whether layer is one of the configured valid values.
func (c *Config) IsValidLayer(layer string) bool {
	for _, l := range c.LayerValidation.ValidLayers {
		if l == layer {
			return true
		}
	}
	return false
}
