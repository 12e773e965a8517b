package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/five82/lantern/internal/term"
)

// Config is the console configuration after defaults, the TOML file and
// path resolution have been applied.
type Config struct {
	Colors Colors

	TruncateLeft  string
	TruncateRight string
	Status        string

	VerticalStep   int
	HorizontalStep int

	LogDir     string
	LiveLog    string
	Transcript string
	DebugLog   string

	FollowCommand []string
	Backend       string
}

// Colors holds one style per rendered element.
type Colors struct {
	Command    term.Style
	FileHeader term.Style
	Time       term.Style
	Info       term.Style
	Warn       term.Style
	Error      term.Style
	Severe     term.Style
	Fatal      term.Style
	Other      term.Style
	Text       term.Style
	Truncate   term.Style
	Prompt     term.Style
	Status     term.Style
}

const (
	// DefaultFile is the config file name looked up in the base directory.
	DefaultFile = "console.toml"

	defaultLogDir         = "logs"
	defaultLiveLog        = "latest.log"
	defaultTranscript     = "console"
	defaultVerticalStep   = 1
	defaultHorizontalStep = 16
)

var defaultFollowCommand = []string{"tail", "-n0", "-F"}

// Default returns the built-in configuration with paths under baseDir.
func Default(baseDir string) Config {
	cfg := Config{
		Colors: Colors{
			Command:    term.Style{Bold: true},
			FileHeader: term.Style{Bold: true},
			Truncate:   term.Style{Reverse: true},
			Prompt:     term.Style{Reverse: true},
			Status:     term.Style{Bold: true},
		},
		TruncateLeft:   "<",
		TruncateRight:  ">",
		VerticalStep:   defaultVerticalStep,
		HorizontalStep: defaultHorizontalStep,
		LogDir:         mustExpand(defaultLogDir, baseDir),
		Transcript:     mustExpand(defaultTranscript, baseDir),
		FollowCommand:  append([]string(nil), defaultFollowCommand...),
		Backend:        term.BackendTcell,
	}
	cfg.LiveLog = filepath.Join(cfg.LogDir, defaultLiveLog)
	return cfg
}

type rawColors struct {
	Command    *string `toml:"command"`
	FileHeader *string `toml:"file_header"`
	Time       *string `toml:"time"`
	Info       *string `toml:"info"`
	Warn       *string `toml:"warn"`
	Error      *string `toml:"error"`
	Severe     *string `toml:"severe"`
	Fatal      *string `toml:"fatal"`
	Other      *string `toml:"other"`
	Text       *string `toml:"text"`
	Truncate   *string `toml:"truncate"`
	Prompt     *string `toml:"prompt"`
	Status     *string `toml:"status"`
}

type rawConfig struct {
	Colors         rawColors `toml:"colors"`
	TruncateLeft   *string   `toml:"truncate_left"`
	TruncateRight  *string   `toml:"truncate_right"`
	Status         string    `toml:"status"`
	VerticalStep   int       `toml:"vertical_step"`
	HorizontalStep int       `toml:"horizontal_step"`
	LogDir         string    `toml:"log_dir"`
	LiveLog        string    `toml:"live_log"`
	Transcript     string    `toml:"transcript"`
	DebugLog       string    `toml:"debug_log"`
	FollowCommand  []string  `toml:"follow_command"`
	Backend        string    `toml:"backend"`
}

// Load reads the TOML file at path and overlays it on Default(baseDir).
// A missing file yields the defaults. An empty path means
// <baseDir>/console.toml.
func Load(path, baseDir string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		path = filepath.Join(baseDir, DefaultFile)
	}
	resolved, err := expandPath(path, "")
	if err != nil {
		return Config{}, err
	}

	cfg := Default(baseDir)

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, errors.Wrap(err, "read config")
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := raw.apply(&cfg, baseDir); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

func (raw rawConfig) apply(cfg *Config, baseDir string) error {
	if err := raw.Colors.apply(&cfg.Colors); err != nil {
		return err
	}

	if raw.TruncateLeft != nil {
		cfg.TruncateLeft = *raw.TruncateLeft
	}
	if raw.TruncateRight != nil {
		cfg.TruncateRight = *raw.TruncateRight
	}
	cfg.Status = strings.TrimSpace(raw.Status)

	switch {
	case raw.VerticalStep < 0:
		return errors.Errorf("vertical_step must not be negative, got %d", raw.VerticalStep)
	case raw.VerticalStep > 0:
		cfg.VerticalStep = raw.VerticalStep
	}
	switch {
	case raw.HorizontalStep < 0:
		return errors.Errorf("horizontal_step must not be negative, got %d", raw.HorizontalStep)
	case raw.HorizontalStep > 0:
		cfg.HorizontalStep = raw.HorizontalStep
	}

	var err error
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		if cfg.LogDir, err = expandPath(dir, baseDir); err != nil {
			return err
		}
		cfg.LiveLog = filepath.Join(cfg.LogDir, defaultLiveLog)
	}
	if live := strings.TrimSpace(raw.LiveLog); live != "" {
		if cfg.LiveLog, err = expandPath(live, baseDir); err != nil {
			return err
		}
	}
	if transcript := strings.TrimSpace(raw.Transcript); transcript != "" {
		if cfg.Transcript, err = expandPath(transcript, baseDir); err != nil {
			return err
		}
	}
	if debugLog := strings.TrimSpace(raw.DebugLog); debugLog != "" {
		if cfg.DebugLog, err = expandPath(debugLog, baseDir); err != nil {
			return err
		}
	}

	if len(raw.FollowCommand) > 0 {
		cfg.FollowCommand = raw.FollowCommand
	}
	if backend := strings.TrimSpace(raw.Backend); backend != "" {
		cfg.Backend = backend
	}
	return ValidateBackend(cfg.Backend)
}

func (raw rawColors) apply(c *Colors) error {
	fields := []struct {
		key string
		src *string
		dst *term.Style
	}{
		{"command", raw.Command, &c.Command},
		{"file_header", raw.FileHeader, &c.FileHeader},
		{"time", raw.Time, &c.Time},
		{"info", raw.Info, &c.Info},
		{"warn", raw.Warn, &c.Warn},
		{"error", raw.Error, &c.Error},
		{"severe", raw.Severe, &c.Severe},
		{"fatal", raw.Fatal, &c.Fatal},
		{"other", raw.Other, &c.Other},
		{"text", raw.Text, &c.Text},
		{"truncate", raw.Truncate, &c.Truncate},
		{"prompt", raw.Prompt, &c.Prompt},
		{"status", raw.Status, &c.Status},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		style, err := ParseStyle(*f.src)
		if err != nil {
			return errors.Wrapf(err, "colors.%s", f.key)
		}
		*f.dst = style
	}
	return nil
}

// ValidateBackend rejects terminal backends term.Open does not know.
func ValidateBackend(name string) error {
	switch name {
	case term.BackendTcell, term.BackendBubbletea:
		return nil
	default:
		return errors.Errorf("unknown backend %q (want %q or %q)", name, term.BackendTcell, term.BackendBubbletea)
	}
}

// ResolvePath expands ~ and makes path absolute relative to baseDir.
func ResolvePath(path, baseDir string) (string, error) {
	return expandPath(path, baseDir)
}

func mustExpand(path, baseDir string) string {
	expanded, err := expandPath(path, baseDir)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path, baseDir string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	if !filepath.IsAbs(trimmed) && baseDir != "" {
		trimmed = filepath.Join(baseDir, trimmed)
	}
	return filepath.Abs(trimmed)
}
