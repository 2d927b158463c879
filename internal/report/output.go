// Package report writes speech-rate results for parsed subtitle files.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"srtrate/internal/config"
	"srtrate/internal/rate"
	"srtrate/internal/srt"
)

// FileResult is the parsed document of one file together with its rates
type FileResult struct {
	Path     string
	Document *srt.Document
	Rate     *rate.DocumentRate
}

// CaptionReport is the serialized form of one caption's rate
type CaptionReport struct {
	Number          uint64  `json:"number" yaml:"number"`
	Start           string  `json:"start" yaml:"start"`
	End             string  `json:"end" yaml:"end"`
	DurationSeconds float64 `json:"duration_seconds" yaml:"duration_seconds"`
	WordCount       int     `json:"word_count" yaml:"word_count"`
	WordsPerSecond  float64 `json:"words_per_second" yaml:"words_per_second"`
}

// FileReport is the serialized form of one file's results
type FileReport struct {
	Path              string          `json:"path" yaml:"path"`
	Captions          []CaptionReport `json:"captions" yaml:"captions"`
	TotalWords        int             `json:"total_words" yaml:"total_words"`
	SpeechTimeSeconds float64         `json:"speech_time_seconds" yaml:"speech_time_seconds"`
	WordsPerSecond    float64         `json:"words_per_second" yaml:"words_per_second"`
	FastestCaption    *uint64         `json:"fastest_caption,omitempty" yaml:"fastest_caption,omitempty"`
}

// NewFileReport pairs each caption with its rate
func NewFileReport(result FileResult) FileReport {
	captions := make([]CaptionReport, 0, len(result.Rate.Captions))
	for i, r := range result.Rate.Captions {
		c := result.Document.Captions[i]
		captions = append(captions, CaptionReport{
			Number:          r.Number,
			Start:           srt.EncodeTimestamp(c.Start),
			End:             srt.EncodeTimestamp(c.End),
			DurationSeconds: r.Duration.Seconds(),
			WordCount:       r.WordCount,
			WordsPerSecond:  r.WordsPerSecond,
		})
	}

	summary := result.Rate.Summary
	fr := FileReport{
		Path:              result.Path,
		Captions:          captions,
		TotalWords:        summary.TotalWords,
		SpeechTimeSeconds: summary.SpeechTime.Seconds(),
		WordsPerSecond:    summary.WordsPerSecond,
	}
	if summary.Fastest != nil {
		number := summary.Fastest.Number
		fr.FastestCaption = &number
	}
	return fr
}

// Output writes file results to a writer in one of the configured formats
type Output struct {
	writer      io.Writer
	format      string
	logger      *zap.Logger
	yamlEncoder *yaml.Encoder
}

// NewOutput creates a new Output instance
func NewOutput(writer io.Writer, format string, logger *zap.Logger) (*Output, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	out := &Output{
		writer: writer,
		format: strings.ToLower(format),
		logger: logger,
	}

	switch out.format {
	case config.FormatText, config.FormatJSON, config.FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}

	return out, nil
}

// WriteResult writes the rate report of one file
func (o *Output) WriteResult(result FileResult) error {
	if result.Document == nil || result.Rate == nil {
		return fmt.Errorf("incomplete result for %s", result.Path)
	}

	var err error
	switch o.format {
	case config.FormatJSON:
		err = o.writeJSON(NewFileReport(result))
	case config.FormatYAML:
		err = o.writeYAML(NewFileReport(result))
	default:
		err = o.writeText(result)
	}
	if err != nil {
		o.logger.Error("failed to write report", zap.String("path", result.Path), zap.Error(err))
		return fmt.Errorf("failed to write report for %s: %w", result.Path, err)
	}

	o.logger.Debug("report written",
		zap.String("path", result.Path),
		zap.String("format", o.format),
		zap.Int("captions", result.Document.Len()))
	return nil
}

// WriteDocument writes the document re-encoded as SubRip
func (o *Output) WriteDocument(result FileResult) error {
	if _, err := result.Document.WriteTo(o.writer); err != nil {
		o.logger.Error("failed to write document", zap.String("path", result.Path), zap.Error(err))
		return fmt.Errorf("failed to write document for %s: %w", result.Path, err)
	}
	return nil
}

func (o *Output) writeJSON(report FileReport) error {
	jsonBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	_, err = fmt.Fprintf(o.writer, "%s\n", jsonBytes)
	return err
}

// writeYAML opens the YAML stream on the first report
func (o *Output) writeYAML(report FileReport) error {
	if o.yamlEncoder == nil {
		o.yamlEncoder = yaml.NewEncoder(o.writer)
		o.yamlEncoder.SetIndent(2)
	}
	return o.yamlEncoder.Encode(report)
}

func (o *Output) writeText(result FileResult) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", result.Path)
	for _, r := range result.Rate.Captions {
		fmt.Fprintf(&sb, "  caption %d: duration %v, word_count %d, words_per_second %.3f\n",
			r.Number, r.Duration, r.WordCount, r.WordsPerSecond)
	}

	summary := result.Rate.Summary
	fmt.Fprintf(&sb, "  total: captions %d, words %d, speech %v, words_per_second %.3f\n",
		summary.Captions, summary.TotalWords, summary.SpeechTime, summary.WordsPerSecond)

	_, err := io.WriteString(o.writer, sb.String())
	return err
}

// Close ends the YAML stream if one was started
func (o *Output) Close() error {
	o.logger.Debug("closing report output")
	if o.yamlEncoder != nil {
		return o.yamlEncoder.Close()
	}
	return nil
}
