package srt

import (
	"errors"
	"fmt"
)

var (
	// ErrTimestampParsing is returned when a timestamp token is missing a component
	ErrTimestampParsing = errors.New("timestamp parsing error")

	// ErrMissingEndTime is returned when a timing line carries no end timestamp
	ErrMissingEndTime = fmt.Errorf("%w: missing end time", ErrTimestampParsing)

	// ErrTimestampRange is returned when a timestamp does not fit in a time.Duration
	ErrTimestampRange = fmt.Errorf("%w: out of range", ErrTimestampParsing)

	// ErrNumericParse is returned when a caption number or timestamp component is not an unsigned integer
	ErrNumericParse = errors.New("numeric parse error")

	// ErrEmptyText is returned by Validate for a caption without text
	ErrEmptyText = errors.New("caption text cannot be empty")

	// ErrNegativeDuration is returned by Validate when a caption ends before it starts
	ErrNegativeDuration = errors.New("negative caption duration")

	// ErrCaptionBuilder is returned when a record boundary is reached before every required field was set
	ErrCaptionBuilder = errors.New("caption builder error")
)

// ParseError records the input line on which parsing stopped
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func numericError(field, token string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrNumericParse, field, token, err)
}
