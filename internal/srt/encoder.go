package srt

import (
	"io"
	"strconv"
	"strings"
)

// Encode renders the document back to SubRip text. Every caption, including
// the last, is followed by a blank line so the output parses to the same captions.
func (d *Document) Encode() string {
	var sb strings.Builder
	for _, c := range d.Captions {
		writeCaption(&sb, c)
	}
	return sb.String()
}

// WriteTo writes the encoded document to w
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.Encode())
	return int64(n), err
}

func writeCaption(sb *strings.Builder, c Caption) {
	sb.WriteString(strconv.FormatUint(c.Number, 10))
	sb.WriteString("\n")
	sb.WriteString(EncodeTimestamp(c.Start))
	sb.WriteString(" " + timingSeparator + " ")
	sb.WriteString(EncodeTimestamp(c.End))
	sb.WriteString("\n")
	sb.WriteString(c.Text)
	sb.WriteString("\n\n")
}
