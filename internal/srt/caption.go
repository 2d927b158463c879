package srt

import (
	"fmt"
	"time"
)

// Caption represents a single timestamped subtitle entry as declared in the source file
type Caption struct {
	Number uint64        `json:"number" yaml:"number"`
	Start  time.Duration `json:"start" yaml:"start"`
	End    time.Duration `json:"end" yaml:"end"`
	Text   string        `json:"text" yaml:"text"`
}

// Duration returns the time the caption stays on screen
func (c Caption) Duration() time.Duration {
	return c.End - c.Start
}

// Validate checks if the Caption has usable values
func (c Caption) Validate() error {
	if c.Text == "" {
		return ErrEmptyText
	}

	if c.End < c.Start {
		return fmt.Errorf("%w: end %v is before start %v", ErrNegativeDuration, c.End, c.Start)
	}

	return nil
}

// CaptionBuilder accumulates the fields of one caption while its lines are read
type CaptionBuilder struct {
	number    uint64
	start     time.Duration
	end       time.Duration
	text      string
	hasNumber bool
	hasStart  bool
	hasEnd    bool
	hasText   bool
}

// SetNumber records the caption's sequence number
func (b *CaptionBuilder) SetNumber(n uint64) {
	b.number = n
	b.hasNumber = true
}

// SetTimes records the caption's start and end times
func (b *CaptionBuilder) SetTimes(start, end time.Duration) {
	b.start = start
	b.end = end
	b.hasStart = true
	b.hasEnd = true
}

// AppendText adds a text line, joining it to earlier lines with a line break
func (b *CaptionBuilder) AppendText(line string) {
	if b.hasText {
		b.text += "\n" + line
		return
	}
	b.text = line
	b.hasText = true
}

// IsEmpty reports whether no field has been set yet
func (b *CaptionBuilder) IsEmpty() bool {
	return !b.hasNumber && !b.hasStart && !b.hasEnd && !b.hasText
}

// Build returns the assembled Caption, or ErrCaptionBuilder naming the first missing field
func (b *CaptionBuilder) Build() (Caption, error) {
	switch {
	case !b.hasNumber:
		return Caption{}, fmt.Errorf("%w: number not set", ErrCaptionBuilder)
	case !b.hasStart:
		return Caption{}, fmt.Errorf("%w: start time not set", ErrCaptionBuilder)
	case !b.hasEnd:
		return Caption{}, fmt.Errorf("%w: end time not set", ErrCaptionBuilder)
	case !b.hasText:
		return Caption{}, fmt.Errorf("%w: text not set", ErrCaptionBuilder)
	}

	return Caption{
		Number: b.number,
		Start:  b.start,
		End:    b.end,
		Text:   b.text,
	}, nil
}

// Document is the ordered set of captions read from one subtitle file
type Document struct {
	Captions []Caption `json:"captions" yaml:"captions"`
}

// Len returns the number of captions in the document
func (d *Document) Len() int {
	return len(d.Captions)
}

func (d *Document) append(c Caption) {
	d.Captions = append(d.Captions, c)
}
