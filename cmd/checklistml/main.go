// Package main provides the checklistml binary entry point.
// Checklistml converts ENA sample-checklist XML files into
// DataHarmonizer-compatible LinkML YAML schemas.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seqschema/checklistml/config"
	"github.com/seqschema/checklistml/convert"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "checklistml"
)

// defaultConfigFile is loaded when present and no --config is given.
const defaultConfigFile = "checklistml.yaml"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	inputDir   string
	outputDir  string
	baseURI    string
	watch      bool
	logLevel   string
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   appName + " [files]",
		Short: "Convert ENA checklist XML to LinkML YAML schemas",
		Long: `Checklistml converts ENA sample-checklist XML files into
DataHarmonizer-compatible LinkML YAML schemas.

Files may be given explicitly (glob patterns are supported); otherwise
every *.xml file in the input directory is converted. Each checklist
produces one <accession>.yaml schema in the output directory.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&opts.inputDir, "input-dir", "i", "", "Directory containing checklist XML files (default assets/ena_schema)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for generated LinkML schemas (default schemas)")
	cmd.Flags().StringVar(&opts.baseURI, "base-uri", "", "Base URI for schema ids")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Watch the input directory and reconvert on changes")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(opts options, args []string) error {
	// Configure logging
	level := slog.LevelInfo
	switch strings.ToLower(opts.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Flags override file values
	cfg.Merge(&config.Config{
		Input:  config.InputConfig{Dir: opts.inputDir},
		Output: config.OutputConfig{Dir: opts.outputDir},
		Schema: config.SchemaConfig{BaseURI: opts.baseURI},
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	files, err := convert.ResolveInputs(args, cfg.Input.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 && !opts.watch {
		logger.Info("No checklist XML files found", "dir", cfg.Input.Dir)
		return nil
	}

	converter := convert.New(cfg, logger)

	results, failed := converter.ConvertAll(files)
	logger.Info("Conversion complete",
		"processed", len(results),
		"failed", failed)

	if !opts.watch {
		return nil
	}

	watcher, err := convert.NewWatcher(converter, cfg.Input.Dir, cfg.Watch.GetDebounceDelay(), logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watcher.Run(ctx)
}

// loadConfig loads the configuration file when one is given or the
// default file exists, falling back to built-in defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return config.LoadFromFile(defaultConfigFile)
	}
	return config.DefaultConfig(), nil
}
