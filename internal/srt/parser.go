package srt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	timingSeparator = "-->"
	byteOrderMark   = "\uFEFF"
)

// ParserState is the position of the parser within the current caption record
type ParserState int

const (
	// AwaitingNumber expects the caption number line that opens a record
	AwaitingNumber ParserState = iota
	// AwaitingTimestamps expects the "start --> end" timing line
	AwaitingTimestamps
	// AccumulatingText collects text lines until the next blank line
	AccumulatingText
)

func (s ParserState) String() string {
	switch s {
	case AwaitingNumber:
		return "awaiting_number"
	case AwaitingTimestamps:
		return "awaiting_timestamps"
	case AccumulatingText:
		return "accumulating_text"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ParserOptions controls end-of-input handling
type ParserOptions struct {
	// FlushTrailing builds a record left open at end of input instead of dropping it
	FlushTrailing bool
}

// Parser turns subtitle lines into a Document
type Parser struct {
	options ParserOptions
	logger  *zap.Logger
}

// NewParser creates a new Parser with default options
func NewParser() *Parser {
	return &Parser{
		logger: zap.NewNop(), // Default to no-op logger
	}
}

// NewParserWithLogger creates a new Parser with the given options and logger
func NewParserWithLogger(options ParserOptions, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		options: options,
		logger:  logger,
	}
}

// ParseLines parses lines with a default Parser
func ParseLines(lines []string) (*Document, error) {
	return NewParser().ParseLines(lines)
}

// Parse reads all lines from r, then parses them
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return p.ParseLines(lines)
}

// ParseLines runs the caption state machine over lines. Blank lines close
// records; the first malformed record aborts the parse with a *ParseError.
func (p *Parser) ParseLines(lines []string) (*Document, error) {
	doc := &Document{Captions: make([]Caption, 0)}
	builder := &CaptionBuilder{}
	state := AwaitingNumber

	for i, line := range lines {
		lineNo := i + 1

		if line == "" {
			caption, err := builder.Build()
			if err != nil {
				return nil, &ParseError{Line: lineNo, Err: err}
			}
			doc.append(caption)
			p.logger.Debug("caption assembled",
				zap.Uint64("number", caption.Number),
				zap.Duration("start", caption.Start),
				zap.Duration("end", caption.End),
				zap.Int("line", lineNo))

			builder = &CaptionBuilder{}
			state = AwaitingNumber
			continue
		}

		next, err := p.step(state, builder, line)
		if err != nil {
			p.logger.Debug("caption parse failed",
				zap.Int("line", lineNo),
				zap.Stringer("state", state),
				zap.Error(err))
			return nil, &ParseError{Line: lineNo, Err: err}
		}
		state = next
	}

	if !builder.IsEmpty() {
		if !p.options.FlushTrailing {
			p.logger.Debug("dropping unterminated trailing caption",
				zap.Stringer("state", state),
				zap.Int("lines", len(lines)))
			return doc, nil
		}

		caption, err := builder.Build()
		if err != nil {
			return nil, &ParseError{Line: len(lines), Err: err}
		}
		doc.append(caption)
	}

	return doc, nil
}

// step applies one non-blank line to the builder and returns the next state
func (p *Parser) step(state ParserState, builder *CaptionBuilder, line string) (ParserState, error) {
	switch state {
	case AwaitingNumber:
		n, err := parseUnsigned(line, 64)
		if err != nil {
			return state, numericError("caption number", line, err)
		}
		builder.SetNumber(n)
		return AwaitingTimestamps, nil

	case AwaitingTimestamps:
		start, end, err := decodeTiming(line)
		if err != nil {
			return state, err
		}
		builder.SetTimes(start, end)
		return AccumulatingText, nil

	default:
		builder.AppendText(line)
		return AccumulatingText, nil
	}
}

func decodeTiming(line string) (start, end time.Duration, err error) {
	parts := strings.Split(line, timingSeparator)

	start, err = DecodeTimestamp(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}

	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMissingEndTime, line)
	}

	end, err = DecodeTimestamp(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}

	return start, end, nil
}

// ReadLines reads r to the end and splits it into lines. Line endings
// (including \r\n) and a leading byte order mark are removed; blank lines are kept.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make([]string, 0)
	for scanner.Scan() {
		line := scanner.Text()
		if len(lines) == 0 {
			line = strings.TrimPrefix(line, byteOrderMark)
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read subtitle lines: %w", err)
	}

	return lines, nil
}
