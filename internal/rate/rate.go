// Package rate derives speech-rate metrics from parsed captions.
package rate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"srtrate/internal/srt"
)

var (
	// ErrNegativeDuration is returned when a caption ends before it starts
	ErrNegativeDuration = srt.ErrNegativeDuration

	// ErrZeroDuration is returned when a caption starts and ends at the same time
	ErrZeroDuration = errors.New("zero caption duration")
)

// CaptionRate is the speech rate of a single caption
type CaptionRate struct {
	Number         uint64        `json:"number" yaml:"number"`
	Duration       time.Duration `json:"duration" yaml:"duration"`
	WordCount      int           `json:"word_count" yaml:"word_count"`
	WordsPerSecond float64       `json:"words_per_second" yaml:"words_per_second"`
}

// Summary aggregates the rates of every caption in a document
type Summary struct {
	Captions       int           `json:"captions" yaml:"captions"`
	TotalWords     int           `json:"total_words" yaml:"total_words"`
	SpeechTime     time.Duration `json:"speech_time" yaml:"speech_time"`
	WordsPerSecond float64       `json:"words_per_second" yaml:"words_per_second"`
	Fastest        *CaptionRate  `json:"fastest,omitempty" yaml:"fastest,omitempty"`
}

// DocumentRate holds per-caption rates in document order plus their summary
type DocumentRate struct {
	Captions []CaptionRate `json:"captions" yaml:"captions"`
	Summary  Summary       `json:"summary" yaml:"summary"`
}

// CountWords returns the number of whitespace-separated words in text
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// AnalyzeCaption computes the rate of one caption
func AnalyzeCaption(c srt.Caption) (CaptionRate, error) {
	if err := c.Validate(); err != nil {
		return CaptionRate{}, fmt.Errorf("caption number %d: %w", c.Number, err)
	}
	duration := c.Duration()
	if duration == 0 {
		return CaptionRate{}, fmt.Errorf("caption number %d: %w", c.Number, ErrZeroDuration)
	}

	words := CountWords(c.Text)
	return CaptionRate{
		Number:         c.Number,
		Duration:       duration,
		WordCount:      words,
		WordsPerSecond: float64(words) / duration.Seconds(),
	}, nil
}

// Analyze computes the rate of every caption in doc, stopping at the first invalid caption
func Analyze(doc *srt.Document) (*DocumentRate, error) {
	rates := make([]CaptionRate, 0, doc.Len())
	for _, c := range doc.Captions {
		r, err := AnalyzeCaption(c)
		if err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}

	return &DocumentRate{
		Captions: rates,
		Summary:  Summarize(rates),
	}, nil
}

// Summarize aggregates caption rates; the overall rate is total words over total speech time
func Summarize(rates []CaptionRate) Summary {
	if len(rates) == 0 {
		return Summary{}
	}

	totalWords := lo.Reduce(rates, func(sum int, r CaptionRate, _ int) int {
		return sum + r.WordCount
	}, 0)
	speechTime := lo.Reduce(rates, func(sum time.Duration, r CaptionRate, _ int) time.Duration {
		return sum + r.Duration
	}, 0)
	fastest := lo.MaxBy(rates, func(a, b CaptionRate) bool {
		return a.WordsPerSecond > b.WordsPerSecond
	})

	return Summary{
		Captions:       len(rates),
		TotalWords:     totalWords,
		SpeechTime:     speechTime,
		WordsPerSecond: float64(totalWords) / speechTime.Seconds(),
		Fastest:        &fastest,
	}
}
