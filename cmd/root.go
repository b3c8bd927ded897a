// Package cmd implements the charcode command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/charcode/internal/app"
	"github.com/zjrosen/charcode/internal/config"
	"github.com/zjrosen/charcode/internal/document"
	"github.com/zjrosen/charcode/internal/log"
	"github.com/zjrosen/charcode/internal/status"
	"github.com/zjrosen/charcode/internal/tracing"
	"github.com/zjrosen/charcode/internal/ui/styles"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise
	// the OSC 11 reply can race the input loop and show up as key presses.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".charcode/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "charcode <file>",
	Short: "Show the character code under the caret",
	Long: `charcode opens a file in a terminal viewer and shows the code of the
character under the caret in the status bar, as UNICODE code units or as
UTF8, SJIS or EUCJP bytes.

Press tab to cycle encodings, e to pick one, ? for help.`,
	Version:      version,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .charcode/config.yaml or ~/.config/charcode/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs to debug.log (or $CHARCODE_LOG)")
	rootCmd.PersistentFlags().StringP("encoding", "e", "",
		"target encoding: UNICODE, UTF8, SJIS or EUCJP")
	rootCmd.Flags().String("input-encoding", "",
		"encoding of the file contents: utf8, sjis or eucjp")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the file when it changes on disk")

	_ = viper.BindPFlag("encoding", rootCmd.PersistentFlags().Lookup("encoding"))
	_ = viper.BindPFlag("input_encoding", rootCmd.Flags().Lookup("input-encoding"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("encoding", defaults.Encoding)
	viper.SetDefault("input_encoding", defaults.InputEncoding)
	viper.SetDefault("watch", defaults.Watch)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.remember_encoding", defaults.UI.RememberEncoding)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .charcode/config.yaml (current directory)
		// 2. ~/.config/charcode/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			viper.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "charcode"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Nothing found anywhere: write the commented default and use it.
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				viper.SetConfigFile(defaultConfigPath)
				_ = viper.ReadInConfig()
			}
		} else {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil && configErr == nil {
		configErr = fmt.Errorf("decoding config: %w", err)
	}
}

// setupLogging installs the file logger when debugging, otherwise an
// in-memory logger that only feeds the log overlay.
func setupLogging() (func(), error) {
	if os.Getenv("CHARCODE_DEBUG") == "" && !debugFlag {
		log.InitWriter(nil)
		return func() {}, nil
	}

	logPath := os.Getenv("CHARCODE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "charcode starting", "version", version, "logPath", logPath)
	return cleanup, nil
}

// loadedConfig validates the decoded config and applies the theme.
func loadedConfig() (config.Config, error) {
	if configErr != nil {
		return cfg, configErr
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(cfg.Theme.StylesTheme()); err != nil {
		return cfg, fmt.Errorf("applying theme: %w", err)
	}
	return cfg, nil
}

func newTracingProvider(tc config.TracingConfig) (*tracing.Provider, error) {
	filePath := tc.FilePath
	if filePath == "" && tc.Exporter == "file" {
		filePath = config.DefaultTracesFilePath()
	}

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:      tc.Enabled,
		Exporter:     tc.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: tc.OTLPEndpoint,
		SampleRate:   tc.SampleRate,
		ServiceName:  tracing.DefaultServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("creating tracing provider: %w", err)
	}
	if provider.Enabled() {
		log.Debug(log.CatTrace, "Tracing provider created", "exporter", tc.Exporter, "instance", provider.InstanceID())
	}
	return provider, nil
}

func newStatusService(c config.Config, tracer trace.Tracer) *status.Service {
	ttl := c.Cache.TTL
	if !c.Cache.Enabled {
		ttl = 0
	}
	return status.NewDefaultService(ttl, tracer)
}

func loadDocument(ctx context.Context, tracer trace.Tracer, path string, enc document.InputEncoding) (*document.Document, error) {
	_, span := tracer.Start(ctx, tracing.SpanDocumentLoad, trace.WithAttributes(
		attribute.String(tracing.AttrDocumentPath, path),
		attribute.String(tracing.AttrInputEncoding, string(enc)),
	))
	defer span.End()

	doc, err := document.Load(path, enc)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int(tracing.AttrDocumentLines, doc.LineCount()))
	return doc, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	cleanup, err := setupLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	c, err := loadedConfig()
	if err != nil {
		return err
	}

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		c.Watch = false
	}

	inputEncoding, err := document.ParseInputEncoding(c.InputEncoding)
	if err != nil {
		return err
	}

	provider, err := newTracingProvider(c.Tracing)
	if err != nil {
		return err
	}

	path := args[0]
	doc, err := loadDocument(cmd.Context(), provider.Tracer(), path, inputEncoding)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return fmt.Errorf("opening %s: %w", path, err)
	}

	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = defaultConfigPath
	}

	model := app.New(app.Options{
		Config:        c,
		ConfigPath:    configFilePath,
		Document:      doc,
		FilePath:      path,
		InputEncoding: inputEncoding,
		Status:        newStatusService(c, provider.Tracer()),
		Tracing:       provider,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Stops the watcher and flushes traces.
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
