// Package config loads the compiler's configuration from a YAML file,
// environment variables and command line flag overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Stages the dump command can stop after.
const (
	StageParse    = "parse"
	StageIdentify = "identify"
	StageDesugar  = "desugar"
	StageLift     = "lift"
)

// ValidDumpStage reports whether s names a dumpable stage.
func ValidDumpStage(s string) bool {
	switch s {
	case StageParse, StageIdentify, StageDesugar, StageLift:
		return true
	default:
		return false
	}
}

// TraceConfig controls per-pass tracing output.
type TraceConfig struct {
	Passes bool `yaml:"passes" mapstructure:"passes"`
}

// OutputConfig controls what the compile command prints.
type OutputConfig struct {
	Listing bool `yaml:"listing" mapstructure:"listing"` // disassemble emitted bytecode
}

// Config holds all compiler settings. Struct tags control how Viper and
// the YAML file map onto the fields.
type Config struct {
	Silent       bool `yaml:"silent" mapstructure:"silent"`
	DebugMode    bool `yaml:"debug_mode" mapstructure:"debug_mode"`
	AbortOnError bool `yaml:"abort_on_error" mapstructure:"abort_on_error"`

	// File handling
	SourceExtensions []string `yaml:"source_extensions" mapstructure:"source_extensions"`
	IncludePaths     []string `yaml:"include_paths" mapstructure:"include_paths"`

	Trace  TraceConfig  `yaml:"trace" mapstructure:"trace"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

var (
	// Testing suppresses informational output in tests.
	Testing bool
)

// PrintInfo prints an informational message unless suppressed.
func PrintInfo(format string, args ...interface{}) {
	if !Testing {
		fmt.Printf(format, args...)
	}
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Silent:           false,
		DebugMode:        false,
		AbortOnError:     true,
		SourceExtensions: []string{"kst"},
		IncludePaths:     []string{"."},
		Trace:            TraceConfig{Passes: false},
		Output:           OutputConfig{Listing: false},
	}
}

// LoadConfig reads configuration from a YAML file and the KESTREL_*
// environment variables. An empty path means the default "kestrel.yaml",
// which may be absent.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := configPath != ""
	if configPath == "" {
		configPath = "kestrel.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error unmarshalling config file %s: %w", configPath, err)
		}
		if !cfg.Silent {
			PrintInfo("Info: Loaded configuration from %s\n", configPath)
		}
	} else if os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("specified config file not found: %s", configPath)
		}
	} else {
		return nil, fmt.Errorf("error checking config file %s: %w", configPath, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// SaveConfig writes the default configuration to a file.
func SaveConfig(configPath string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshalling default config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", configPath, err)
	}
	PrintInfo("Info: Saved default configuration to %s\n", configPath)
	return nil
}

// applyEnv overlays KESTREL_* environment variables onto the config.
func applyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix("KESTREL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"silent", "debug_mode", "abort_on_error", "trace.passes", "output.listing"} {
		bindEnv(v, key)
	}
	if v.IsSet("silent") {
		cfg.Silent = v.GetBool("silent")
	}
	if v.IsSet("debug_mode") {
		cfg.DebugMode = v.GetBool("debug_mode")
	}
	if v.IsSet("abort_on_error") {
		cfg.AbortOnError = v.GetBool("abort_on_error")
	}
	if v.IsSet("trace.passes") {
		cfg.Trace.Passes = v.GetBool("trace.passes")
	}
	if v.IsSet("output.listing") {
		cfg.Output.Listing = v.GetBool("output.listing")
	}
}

func bindEnv(v *viper.Viper, key string) {
	envKey := strings.ToUpper(strings.ReplaceAll(strings.ReplaceAll(key, ".", "_"), "-", "_"))
	_ = v.BindEnv(key, "KESTREL_"+envKey)
}

// Debugf prints a debug message when debug mode is active.
func (c *Config) Debugf(format string, args ...interface{}) {
	if c.DebugMode && !Testing {
		fmt.Printf("DEBUG: "+format, args...)
	}
}
