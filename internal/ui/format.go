package ui

import (
	"regexp"

	"github.com/five82/lantern/internal/config"
	"github.com/five82/lantern/internal/term"
)

// logPattern matches "[HH:MM:SS] [source/SEVERITY]: message".
var logPattern = regexp.MustCompile(`^\[(\d\d:\d\d:\d\d)] \[([^/]+)/([A-Z]+)]: (.*)$`)

// Span is a run of text drawn in one style.
type Span struct {
	Text  string
	Style term.Style
}

// Tokenize splits a log line into styled spans: time, severity and
// message, joined by separators in the default style. The source name is
// not shown. A line that does not match the server's format is a single
// span in the text color.
func Tokenize(line string, colors config.Colors) []Span {
	m := logPattern.FindStringSubmatch(line)
	if m == nil {
		return []Span{{Text: line, Style: colors.Text}}
	}
	return []Span{
		{Text: m[1], Style: colors.Time},
		{Text: " "},
		{Text: m[3], Style: severityStyle(m[3], colors)},
		{Text: ": "},
		{Text: m[4], Style: colors.Text},
	}
}

func severityStyle(severity string, colors config.Colors) term.Style {
	switch severity {
	case "INFO":
		return colors.Info
	case "WARN":
		return colors.Warn
	case "ERROR":
		return colors.Error
	case "SEVERE":
		return colors.Severe
	case "FATAL":
		return colors.Fatal
	default:
		return colors.Other
	}
}
