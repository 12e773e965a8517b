package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/five82/lantern/internal/term"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultFile)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	base := t.TempDir()

	cfg, err := Load("", base)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogDir != filepath.Join(base, "logs") {
		t.Fatalf("LogDir = %q", cfg.LogDir)
	}
	if cfg.LiveLog != filepath.Join(base, "logs", "latest.log") {
		t.Fatalf("LiveLog = %q", cfg.LiveLog)
	}
	if cfg.Transcript != filepath.Join(base, "console") {
		t.Fatalf("Transcript = %q", cfg.Transcript)
	}
	if cfg.DebugLog != "" {
		t.Fatalf("DebugLog = %q, want empty", cfg.DebugLog)
	}
	if cfg.VerticalStep != 1 || cfg.HorizontalStep != 16 {
		t.Fatalf("steps = %d/%d, want 1/16", cfg.VerticalStep, cfg.HorizontalStep)
	}
	if cfg.TruncateLeft != "<" || cfg.TruncateRight != ">" {
		t.Fatalf("truncate markers = %q %q", cfg.TruncateLeft, cfg.TruncateRight)
	}
	if !reflect.DeepEqual(cfg.FollowCommand, []string{"tail", "-n0", "-F"}) {
		t.Fatalf("FollowCommand = %v", cfg.FollowCommand)
	}
	if cfg.Backend != term.BackendTcell {
		t.Fatalf("Backend = %q", cfg.Backend)
	}
	if !cfg.Colors.Command.Bold || !cfg.Colors.Prompt.Reverse || !cfg.Colors.Truncate.Reverse || !cfg.Colors.Status.Bold {
		t.Fatalf("default colors = %+v", cfg.Colors)
	}
	if cfg.Colors.Text != (term.Style{}) {
		t.Fatalf("text color = %+v, want plain", cfg.Colors.Text)
	}
}

func TestLoad_ParsesConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	base := t.TempDir()

	path := writeConfig(t, base, `
log_dir = "  server/logs  "
transcript = "~/pipes/console"
debug_log = "/tmp/lantern.log"
follow_command = ["tail", "-F"]
backend = "bubbletea"
vertical_step = 3
horizontal_step = 8
truncate_left = "«"
truncate_right = ""
status = "  hello  "

[colors]
warn = "4 0 b"
time = "3"
prompt = "0 0 ru"
`)

	cfg, err := Load(path, base)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogDir != filepath.Join(base, "server", "logs") {
		t.Fatalf("LogDir = %q", cfg.LogDir)
	}
	if cfg.LiveLog != filepath.Join(base, "server", "logs", "latest.log") {
		t.Fatalf("LiveLog = %q, want it to follow log_dir", cfg.LiveLog)
	}
	if !strings.HasPrefix(cfg.Transcript, home) {
		t.Fatalf("Transcript = %q, want it under HOME %q", cfg.Transcript, home)
	}
	if cfg.DebugLog != "/tmp/lantern.log" {
		t.Fatalf("DebugLog = %q", cfg.DebugLog)
	}
	if !reflect.DeepEqual(cfg.FollowCommand, []string{"tail", "-F"}) {
		t.Fatalf("FollowCommand = %v", cfg.FollowCommand)
	}
	if cfg.Backend != term.BackendBubbletea {
		t.Fatalf("Backend = %q", cfg.Backend)
	}
	if cfg.VerticalStep != 3 || cfg.HorizontalStep != 8 {
		t.Fatalf("steps = %d/%d", cfg.VerticalStep, cfg.HorizontalStep)
	}
	if cfg.TruncateLeft != "«" || cfg.TruncateRight != "" {
		t.Fatalf("truncate markers = %q %q", cfg.TruncateLeft, cfg.TruncateRight)
	}
	if cfg.Status != "hello" {
		t.Fatalf("Status = %q", cfg.Status)
	}
	if cfg.Colors.Warn != (term.Style{Fg: 4, Bold: true}) {
		t.Fatalf("warn = %+v", cfg.Colors.Warn)
	}
	if cfg.Colors.Time != (term.Style{Fg: 3}) {
		t.Fatalf("time = %+v", cfg.Colors.Time)
	}
	if cfg.Colors.Prompt != (term.Style{Reverse: true, Underline: true}) {
		t.Fatalf("prompt = %+v", cfg.Colors.Prompt)
	}
	if !cfg.Colors.Command.Bold {
		t.Fatalf("unset command color lost its default: %+v", cfg.Colors.Command)
	}
}

func TestLoad_ExplicitLiveLogWins(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, base, `
log_dir = "logs"
live_log = "/var/log/server.log"
`)
	cfg, err := Load(path, base)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LiveLog != "/var/log/server.log" {
		t.Fatalf("LiveLog = %q", cfg.LiveLog)
	}
}

func TestLoad_ZeroStepsUseDefaults(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, base, "vertical_step = 0\nhorizontal_step = 0\n")
	cfg, err := Load(path, base)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.VerticalStep != 1 || cfg.HorizontalStep != 16 {
		t.Fatalf("steps = %d/%d, want 1/16", cfg.VerticalStep, cfg.HorizontalStep)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "log_dir = ", "parse config"},
		{"negative vertical", "vertical_step = -1", "vertical_step"},
		{"negative horizontal", "horizontal_step = -4", "horizontal_step"},
		{"bad color", "[colors]\nwarn = \"300\"", "colors.warn"},
		{"bad style", "[colors]\ninfo = \"1 2 x\"", "colors.info"},
		{"bad backend", `backend = "curses"`, "unknown backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			_, err := Load(writeConfig(t, base, tt.body), base)
			if err == nil {
				t.Fatalf("Load returned nil error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad_UnreadableConfigIsFatal(t *testing.T) {
	base := t.TempDir()
	// A directory where the file should be cannot be read.
	dir := filepath.Join(base, DefaultFile)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	_, err := Load("", base)
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("Load error = %v, want read config error", err)
	}
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	base := t.TempDir()

	tests := []struct {
		in   string
		want string
	}{
		{"rel/file", filepath.Join(base, "rel", "file")},
		{"/abs/file", "/abs/file"},
		{"~/x", filepath.Join(home, "x")},
	}
	for _, tt := range tests {
		got, err := ResolvePath(tt.in, base)
		if err != nil {
			t.Fatalf("ResolvePath(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ResolvePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := ResolvePath("   ", base); err == nil {
		t.Fatalf("empty path should fail")
	}
}
