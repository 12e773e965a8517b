// Package entry defines the log entries that flow from the live feed and the
// history loader into the console's scroll buffer.
package entry

import "strings"

// tabWidth is the number of spaces a tab expands to.
const tabWidth = 4

// Kind distinguishes plain log lines from file section headers.
type Kind int

const (
	// KindLine is a single decoded log line.
	KindLine Kind = iota
	// KindHeader marks the boundary between the content of two files.
	KindHeader
)

// Entry is an immutable log entry. For KindLine, Text is the tab-expanded
// line; for KindHeader, Text is the label of the file whose content follows
// the header in the buffer.
type Entry struct {
	Kind Kind
	Text string
}

// NewLine builds a line entry, expanding tabs so rendering never depends on
// terminal tab stops.
func NewLine(raw string) Entry {
	return Entry{Kind: KindLine, Text: ExpandTabs(raw)}
}

// NewHeader builds a section header naming a source file.
func NewHeader(label string) Entry {
	return Entry{Kind: KindHeader, Text: label}
}

// IsHeader reports whether e is a section header.
func (e Entry) IsHeader() bool {
	return e.Kind == KindHeader
}

// ExpandTabs replaces every tab with four spaces.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
