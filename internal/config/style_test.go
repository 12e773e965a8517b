package config

import (
	"testing"

	"github.com/five82/lantern/internal/term"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in   string
		want term.Style
	}{
		{"", term.Style{}},
		{"   ", term.Style{}},
		{"3", term.Style{Fg: 3}},
		{"3 5", term.Style{Fg: 3, Bg: 5}},
		{"0 0 b", term.Style{Bold: true}},
		{"256 1 bur", term.Style{Fg: 256, Bg: 1, Bold: true, Underline: true, Reverse: true}},
		{"  2   4  r ", term.Style{Fg: 2, Bg: 4, Reverse: true}},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if err != nil {
			t.Fatalf("ParseStyle(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseStyle(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseStyleErrors(t *testing.T) {
	for _, in := range []string{"257", "-1", "red", "1 x", "1 2 bx", "1 2 b extra"} {
		if _, err := ParseStyle(in); err == nil {
			t.Fatalf("ParseStyle(%q) returned nil error", in)
		}
	}
}
