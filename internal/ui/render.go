package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/five82/lantern/internal/term"
)

const (
	headerPrefix = " --> "
	promptPrefix = " > "
)

func (c *Console) drawAll() {
	c.drawLogs()
	c.drawInput()
	c.drawStatus()
}

// drawLogs repaints the log rows from the buffer window at view.Scroll.
func (c *Console) drawLogs() {
	window := c.buffer.Slice(c.view.Scroll, c.view.Scroll+c.rows())
	for y := 0; y < c.rows(); y++ {
		if y >= len(window) {
			c.printLine(0, y, nil)
			continue
		}
		switch e := window[y]; {
		case e.IsHeader():
			label := runewidth.Truncate(e.Text, max(0, c.width-6), "")
			c.printLine(0, y, []Span{{Text: headerPrefix + label, Style: c.cfg.Colors.FileHeader}})
		default:
			c.printLine(-c.view.HScroll, y, Tokenize(e.Text, c.cfg.Colors))
		}
	}
}

// printLine paints spans starting at column x, which is negative when the
// line is scrolled horizontally, pads the rest of the row and marks the
// sides that were cut.
func (c *Console) printLine(x, y int, spans []Span) {
	start := x
	for _, s := range spans {
		c.print(x, y, s.Text, s.Style)
		x += runewidth.StringWidth(s.Text)
	}

	remaining := c.width - max(x, 0)
	if remaining > 0 {
		c.print(max(x, 0), y, strings.Repeat(" ", remaining), term.Style{})
	}

	if start < 0 && x > start {
		c.print(0, y, c.cfg.TruncateLeft, c.cfg.Colors.Truncate)
	}
	if x > c.width {
		w := runewidth.StringWidth(c.cfg.TruncateRight)
		c.print(c.width-w, y, c.cfg.TruncateRight, c.cfg.Colors.Truncate)
	}
}

// print paints s at column x, dropping the cells left of column 0.
func (c *Console) print(x, y int, s string, style term.Style) {
	for x < 0 && s != "" {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		x += runewidth.RuneWidth(r)
	}
	if s == "" {
		return
	}
	c.surface.Print(x, y, s, style)
}

// drawInput repaints the prompt row. When the input is wider than the row,
// its tail is shown so the cursor stays on screen.
func (c *Console) drawInput() {
	y := c.height - 2
	if y < 0 {
		return
	}
	prefix := runewidth.StringWidth(promptPrefix)
	text := tailWidth(string(c.input), max(0, c.width-prefix-1))
	w := runewidth.StringWidth(text)

	c.print(0, y, promptPrefix, c.cfg.Colors.Prompt)
	c.print(prefix, y, text, c.cfg.Colors.Command)
	if pad := c.width - prefix - w; pad > 0 {
		c.print(prefix+w, y, strings.Repeat(" ", pad), c.cfg.Colors.Prompt)
	}
	c.surface.SetCursor(min(prefix+w, max(0, c.width-1)), y)
}

func (c *Console) drawStatus() {
	y := c.height - 1
	if y < 0 {
		return
	}
	text := runewidth.FillRight(runewidth.Truncate(c.status, max(0, c.width-2), ""), max(0, c.width-2))
	c.print(0, y, " "+text+" ", c.cfg.Colors.Status)
}

// tailWidth returns the longest suffix of s no wider than width cells.
func tailWidth(s string, width int) string {
	w := 0
	i := len(s)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:i])
		rw := runewidth.RuneWidth(r)
		if w+rw > width {
			break
		}
		w += rw
		i -= size
	}
	return s[i:]
}
