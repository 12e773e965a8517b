package config

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/five82/lantern/internal/term"
)

const maxColor = 256

// ParseStyle parses a "FG BG STYLE" color string. Parts are positional and
// each may be omitted from the right: FG and BG are 0 (terminal default) or
// 1..256 (palette entry n-1), and STYLE combines b (bold), u (underline)
// and r (reverse).
func ParseStyle(s string) (term.Style, error) {
	var style term.Style
	fields := strings.Fields(s)
	if len(fields) > 3 {
		return term.Style{}, errors.Errorf("too many fields in %q", s)
	}

	if len(fields) > 0 {
		fg, err := parseColor(fields[0])
		if err != nil {
			return term.Style{}, errors.Wrap(err, "fg")
		}
		style.Fg = fg
	}
	if len(fields) > 1 {
		bg, err := parseColor(fields[1])
		if err != nil {
			return term.Style{}, errors.Wrap(err, "bg")
		}
		style.Bg = bg
	}
	if len(fields) > 2 {
		for _, r := range fields[2] {
			switch r {
			case 'b':
				style.Bold = true
			case 'u':
				style.Underline = true
			case 'r':
				style.Reverse = true
			default:
				return term.Style{}, errors.Errorf("invalid style character %q", string(r))
			}
		}
	}
	return style, nil
}

func parseColor(text string) (uint16, error) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 || n > maxColor {
		return 0, errors.Errorf("invalid color or out of range: %q", text)
	}
	return uint16(n), nil
}
