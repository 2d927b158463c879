package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"srtrate/internal/config"
	"srtrate/internal/performance"
	"srtrate/internal/rate"
	"srtrate/internal/report"
	"srtrate/internal/srt"
)

// ErrNoInput is returned when no subtitle file was given
var ErrNoInput = errors.New("no input files given")

// Application parses subtitle files and reports their speech rate
type Application struct {
	config  *config.Configuration
	logger  *zap.Logger
	parser  *srt.Parser
	monitor *performance.Monitor
	stdout  io.Writer
}

// LoadConfiguration reads configPath if set, then CONFIG_PATH, and otherwise the environment
func LoadConfiguration(configPath string) (*config.Configuration, error) {
	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}

	if configPath != "" {
		cfg, err := config.NewConfigurationFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.NewConfigurationFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	return cfg, nil
}

// NewApplication creates a new application writing reports to stdout
func NewApplication(cfg *config.Configuration, logger *zap.Logger, stdout io.Writer) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	parser := srt.NewParserWithLogger(srt.ParserOptions{
		FlushTrailing: cfg.GetFlushTrailing(),
	}, logger.With(zap.String("component", "parser")))

	return &Application{
		config:  cfg,
		logger:  logger,
		parser:  parser,
		monitor: performance.NewMonitor(logger.With(zap.String("component", "performance"))),
		stdout:  stdout,
	}, nil
}

// Run processes every path, at most the configured number at a time, and
// writes the results in input order. The first failing file aborts the run
// and nothing is written.
func (app *Application) Run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return ErrNoInput
	}

	app.logger.Info("processing subtitle files",
		zap.Int("files", len(paths)),
		zap.Int("workers", app.config.GetWorkers()),
		zap.Bool("flush_trailing", app.config.GetFlushTrailing()))

	results := make([]report.FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(app.config.GetWorkers())

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := app.ProcessFile(path)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		app.logger.Error("processing failed", zap.Error(err))
		return err
	}

	if err := app.writeResults(results); err != nil {
		return err
	}

	app.monitor.LogCurrentMetrics()
	app.logger.Debug(app.monitor.GetSummary())
	return nil
}

// ProcessFile reads, parses and analyzes a single file
func (app *Application) ProcessFile(path string) (report.FileResult, error) {
	timer := app.monitor.StartFile(path)

	file, err := os.Open(path)
	if err != nil {
		return report.FileResult{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := app.parser.Parse(file)
	if err != nil {
		return report.FileResult{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	result := report.FileResult{Path: path, Document: doc}
	if app.config.GetEncode() {
		app.monitor.EndFile(timer, doc.Len(), 0, 0)
		return result, nil
	}

	docRate, err := rate.Analyze(doc)
	if err != nil {
		return report.FileResult{}, fmt.Errorf("failed to analyze %s: %w", path, err)
	}
	result.Rate = docRate

	app.monitor.EndFile(timer, doc.Len(), docRate.Summary.TotalWords, docRate.Summary.SpeechTime)
	return result, nil
}

func (app *Application) writeResults(results []report.FileResult) error {
	out, err := report.NewOutput(app.stdout, app.config.GetOutputFormat(), app.logger.With(zap.String("component", "report")))
	if err != nil {
		return err
	}

	for _, result := range results {
		if app.config.GetEncode() {
			err = out.WriteDocument(result)
		} else {
			err = out.WriteResult(result)
		}
		if err != nil {
			return err
		}
	}

	return out.Close()
}
