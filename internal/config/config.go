// Package config implements apisan's configuration loading (spec.md §7.4,
// SPEC_FULL.md §3.3): a Config struct populated from a YAML or JSON file
// named by the APISAN_CONF environment variable (default "apisan.yaml"),
// falling back to built-in defaults when the file is absent. Grounded on
// lci's internal/config (Load/Validator shape) generalized to
// original_source/analyzer/apisan/lib/config.py's key set.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cogumbreiro/apisan/internal/errs"
)

// DefaultConfigPath is used when APISAN_CONF is unset.
const DefaultConfigPath = "apisan.yaml"

// Config mirrors original_source's lib/config.py settings (spec.md §7.4):
// Threshold and Reference drive the anomaly-scoring algorithm, MaxScore
// is accepted but unused by any scoring code (documented Open Question,
// see DESIGN.md), SkipCache disables internal/cache entirely, and
// IgnoredLogLevels feeds internal/dbg.Quiet.
type Config struct {
	Threshold        float64  `yaml:"threshold" json:"threshold"`
	Reference        int      `yaml:"reference" json:"reference"`
	MaxScore         float64  `yaml:"max_score" json:"max_score"`
	SkipCache        bool     `yaml:"skip_cache" json:"skip_cache"`
	IgnoredLogLevels []string `yaml:"ignored_log_levels" json:"ignored_log_levels"`
}

// Default returns the built-in configuration, used whenever the config
// file is missing.
func Default() Config {
	return Config{
		Threshold:        0.8,
		Reference:        3,
		MaxScore:         100,
		SkipCache:        false,
		IgnoredLogLevels: []string{"debug"},
	}
}

// Load reads the config file named by the APISAN_CONF environment
// variable (DefaultConfigPath if unset). A missing file yields Default()
// silently; an unsupported extension is a fatal *errs.Error
// (errs.Config, per spec.md §7.4) since that's a usage mistake, not a
// transient condition. Once loaded, the result passes through Validator
// before being returned.
func Load() (Config, error) {
	path := os.Getenv("APISAN_CONF")
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errs.New(errs.Config, "read "+path, err)
	}

	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errs.New(errs.Config, "parse "+path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, errs.New(errs.Config, "parse "+path, err)
		}
	default:
		return Config{}, errs.New(errs.Config, "unsupported config extension for "+path, nil)
	}

	if err := (Validator{}).Validate(cfg); err != nil {
		return Config{}, errs.New(errs.Config, "validate "+path, err)
	}
	return cfg, nil
}
