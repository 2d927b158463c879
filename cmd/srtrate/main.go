package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"

	"srtrate/internal/app"
	"srtrate/internal/config"
	"srtrate/internal/logger"
)

const version = "1.0.0"

// args holds the command line; flags left at their zero value keep the configured setting
type args struct {
	Paths         []string `arg:"positional" placeholder:"FILE" help:"SubRip files to analyze"`
	Config        string   `arg:"-c,--config" help:"YAML config file (default: $CONFIG_PATH, then SRTRATE_* environment)"`
	Format        string   `arg:"-f,--format" help:"report format: text, json or yaml"`
	FlushTrailing bool     `arg:"--flush-trailing" help:"keep a final caption that is not followed by a blank line"`
	Encode        bool     `arg:"-e,--encode" help:"write the parsed captions back as SubRip instead of a report"`
	Workers       int      `arg:"-w,--workers" help:"files parsed concurrently"`
	Debug         bool     `arg:"--debug" help:"enable debug logging"`
}

func (args) Description() string {
	return "srtrate - words per second for every caption of a SubRip subtitle file"
}

func (args) Version() string {
	return "srtrate " + version
}

// main is the application entry point
func main() {
	var cli args
	parser, err := arg.NewParser(arg.Config{Program: "srtrate"}, &cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}

	switch err := parser.Parse(os.Args[1:]); {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	case errors.Is(err, arg.ErrVersion):
		fmt.Println(cli.Version())
		os.Exit(0)
	case err != nil:
		parser.Fail(err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runApplication(ctx, cli, os.Stdout); err != nil {
		if errors.Is(err, app.ErrNoInput) {
			parser.WriteUsage(os.Stderr)
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

// runApplication contains the core application logic that can be tested
func runApplication(ctx context.Context, cli args, stdout io.Writer) error {
	if len(cli.Paths) == 0 {
		return app.ErrNoInput
	}

	cfg, err := app.LoadConfiguration(cli.Config)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, cli); err != nil {
		return err
	}

	zapLogger, err := logger.NewLoggerFromSettings(cfg.GetLogLevel(), cfg.GetDebugMode())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zapLogger.Sync()

	zapLogger.Debug("srtrate starting up",
		zap.String("component", "main"),
		zap.String("version", version))

	application, err := app.NewApplication(cfg, zapLogger, stdout)
	if err != nil {
		zapLogger.Error("Failed to create application",
			zap.Error(err),
			zap.String("component", "main"))
		return fmt.Errorf("failed to create application: %w", err)
	}

	return application.Run(ctx, cli.Paths)
}

// applyFlags overrides configured settings with flags given on the command line
func applyFlags(cfg *config.Configuration, cli args) error {
	if cli.Format != "" {
		cfg.SetOutputFormat(cli.Format)
	}
	if cli.FlushTrailing {
		cfg.SetFlushTrailing(true)
	}
	if cli.Encode {
		cfg.SetEncode(true)
	}
	if cli.Workers != 0 {
		cfg.SetWorkers(cli.Workers)
	}
	if cli.Debug {
		cfg.SetDebugMode(true)
	}
	return cfg.Validate()
}
