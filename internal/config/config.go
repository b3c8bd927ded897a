// Package config provides configuration types, defaults, and persistence for charcode.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/charcode/internal/charcode"
	"github.com/zjrosen/charcode/internal/document"
	"github.com/zjrosen/charcode/internal/log"
	"github.com/zjrosen/charcode/internal/ui/styles"
)

// Config holds all charcode configuration.
type Config struct {
	Encoding      string        `mapstructure:"encoding"`
	InputEncoding string        `mapstructure:"input_encoding"`
	Watch         bool          `mapstructure:"watch"`
	UI            UIConfig      `mapstructure:"ui"`
	Theme         ThemeConfig   `mapstructure:"theme"`
	Cache         CacheConfig   `mapstructure:"cache"`
	Tracing       TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration.
type UIConfig struct {
	ShowStatusBar    bool   `mapstructure:"show_status_bar"`
	RememberEncoding bool   `mapstructure:"remember_encoding"` // write picker selections back to the config file
	MarkdownStyle    string `mapstructure:"markdown_style"`    // "dark" (default) or "light"
}

// ThemeConfig holds theme and color customization.
type ThemeConfig struct {
	// Preset is a built-in theme name ("default", "high-contrast", "nord").
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens. Both nested YAML and quoted
	// dot notation are accepted:
	//   colors:
	//     statusbar:
	//       code: "#FF0000"
	//     "caret": "#00FF00"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// StylesTheme converts the theme into the form styles.ApplyTheme expects.
func (t ThemeConfig) StylesTheme() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// CacheConfig controls the status text cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/charcode/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for the "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns ~/.config/charcode/traces/traces.jsonl, or an
// empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "charcode", "traces", "traces.jsonl")
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Encoding:      string(charcode.DefaultEncoding),
		InputEncoding: string(document.InputUTF8),
		Watch:         true,
		UI: UIConfig{
			ShowStatusBar:    true,
			RememberEncoding: false,
			MarkdownStyle:    "dark",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // derived at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Validate checks the whole configuration.
func Validate(cfg Config) error {
	if _, err := charcode.ParseEncoding(cfg.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	if _, err := document.ParseInputEncoding(cfg.InputEncoding); err != nil {
		return fmt.Errorf("input_encoding: %w", err)
	}
	switch cfg.UI.MarkdownStyle {
	case "", "dark", "light":
	default:
		return fmt.Errorf("ui.markdown_style must be \"dark\" or \"light\", got %q", cfg.UI.MarkdownStyle)
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", cfg.Cache.TTL)
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTheme checks the preset name and every color override.
func ValidateTheme(theme ThemeConfig) error {
	if theme.Preset != "" {
		if _, ok := styles.Presets[theme.Preset]; !ok {
			return fmt.Errorf("theme.preset: unknown preset %q", theme.Preset)
		}
	}
	for key, value := range theme.FlattenedColors() {
		if err := styles.ValidateColor(key, value); err != nil {
			return fmt.Errorf("theme.colors: %w", err)
		}
	}
	return nil
}

// ValidateTracing checks exporter names, sample rate and exporter requirements.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# charcode configuration

# Encoding shown in the status bar: UNICODE, UTF8, SJIS or EUCJP
encoding: UNICODE

# Byte encoding of the files you open: utf8, sjis or eucjp
input_encoding: utf8

# Reload the open file when it changes on disk
watch: true

# UI settings
ui:
  show_status_bar: true
  remember_encoding: false  # Save picker selections back to this file
  # markdown_style: dark    # "dark" (default) or "light"

# Theme
# theme:
#   preset: nord
#   colors:
#     statusbar.code: "#FECA57"

# Status text cache
cache:
  enabled: true
  ttl: 10m

# Tracing
# tracing:
#   enabled: true
#   exporter: file
#   file_path: ~/.config/charcode/traces/traces.jsonl
#
# Example: send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments, creating the parent directory when needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
