package performance

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ParseMetrics tracks totals across every subtitle file processed in a run
type ParseMetrics struct {
	TotalFiles     int64
	TotalCaptions  int64
	TotalWords     int64
	TotalSpeech    time.Duration
	TotalParseTime time.Duration
	MinParseTime   time.Duration
	MaxParseTime   time.Duration
	AvgParseTime   time.Duration
	LastFile       string
	LastTimestamp  time.Time
}

// ParseTimer tracks timing for one file
type ParseTimer struct {
	Path      string
	StartTime time.Time
	Elapsed   time.Duration
}

// Monitor accumulates parse metrics; safe for concurrent use
type Monitor struct {
	logger  *zap.Logger
	metrics ParseMetrics
	mu      sync.RWMutex
}

// NewMonitor creates a new parse metrics monitor
func NewMonitor(logger *zap.Logger) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		logger: logger,
		metrics: ParseMetrics{
			MinParseTime:  time.Hour, // Initialize to large value
			LastTimestamp: time.Now(),
		},
	}
}

// StartFile begins timing the parse of path
func (m *Monitor) StartFile(path string) *ParseTimer {
	return &ParseTimer{
		Path:      path,
		StartTime: time.Now(),
	}
}

// EndFile completes timing and records the file's caption, word and speech totals
func (m *Monitor) EndFile(timer *ParseTimer, captions, words int, speech time.Duration) {
	timer.Elapsed = time.Since(timer.StartTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.metrics.TotalFiles++
	m.metrics.TotalCaptions += int64(captions)
	m.metrics.TotalWords += int64(words)
	m.metrics.TotalSpeech += speech
	m.metrics.TotalParseTime += timer.Elapsed
	m.metrics.LastFile = timer.Path
	m.metrics.LastTimestamp = time.Now()

	if timer.Elapsed < m.metrics.MinParseTime {
		m.metrics.MinParseTime = timer.Elapsed
	}
	if timer.Elapsed > m.metrics.MaxParseTime {
		m.metrics.MaxParseTime = timer.Elapsed
	}
	m.metrics.AvgParseTime = time.Duration(int64(m.metrics.TotalParseTime) / m.metrics.TotalFiles)

	m.logger.Debug("file processed",
		zap.String("path", timer.Path),
		zap.Int("captions", captions),
		zap.Int("words", words),
		zap.Duration("parse_time", timer.Elapsed))
}

// GetMetrics returns a copy of current metrics
func (m *Monitor) GetMetrics() ParseMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.metrics
}

// GetSummary returns a formatted summary of the run
func (m *Monitor) GetSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.metrics.TotalFiles == 0 {
		return "No files processed"
	}

	wordsPerSecond := 0.0
	if m.metrics.TotalSpeech > 0 {
		wordsPerSecond = float64(m.metrics.TotalWords) / m.metrics.TotalSpeech.Seconds()
	}

	return fmt.Sprintf(
		"Run Summary:\n"+
			"  Files: %d\n"+
			"  Captions: %d\n"+
			"  Words: %d\n"+
			"  Speech Time: %v\n"+
			"  Words Per Second: %.3f\n"+
			"  Avg Parse Time: %v\n"+
			"  Min/Max Parse Time: %v / %v\n",
		m.metrics.TotalFiles,
		m.metrics.TotalCaptions,
		m.metrics.TotalWords,
		m.metrics.TotalSpeech,
		wordsPerSecond,
		m.metrics.AvgParseTime,
		m.metrics.MinParseTime,
		m.metrics.MaxParseTime,
	)
}

// LogCurrentMetrics logs the current run metrics
func (m *Monitor) LogCurrentMetrics() {
	metrics := m.GetMetrics()

	m.logger.Info("run metrics",
		zap.Int64("files", metrics.TotalFiles),
		zap.Int64("captions", metrics.TotalCaptions),
		zap.Int64("words", metrics.TotalWords),
		zap.Duration("speech_time", metrics.TotalSpeech),
		zap.Duration("avg_parse_time", metrics.AvgParseTime),
		zap.Duration("max_parse_time", metrics.MaxParseTime))
}
