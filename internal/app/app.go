package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/five82/lantern/internal/config"
	"github.com/five82/lantern/internal/entry"
	"github.com/five82/lantern/internal/history"
	"github.com/five82/lantern/internal/logtail"
	"github.com/five82/lantern/internal/relay"
	"github.com/five82/lantern/internal/term"
	"github.com/five82/lantern/internal/transcript"
	"github.com/five82/lantern/internal/ui"
)

// Channel capacities. Events and acknowledgements are unbuffered.
const (
	liveBuffer    = 16
	historyBuffer = 16
	commandBuffer = 16
)

// slowJoin is how long shutdown waits on a worker before logging that it
// is still waiting.
const slowJoin = 2 * time.Second

// Options configure the console.
type Options struct {
	BaseDir    string // empty uses the working directory
	ConfigPath string // empty uses <BaseDir>/console.toml
	DebugLog   string // overrides debug_log
	Debug      bool
	Backend    string // overrides backend
}

// StartupError is returned by Run when the console could not start. No
// component was running when it occurred.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string {
	return e.Err.Error()
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

func startupError(err error, msg string) error {
	return &StartupError{Err: errors.Wrap(err, msg)}
}

var openSurface = term.Open

// Run starts the console and blocks until the operator quits or ctx is
// cancelled, then shuts every component down in order. It returns a
// *StartupError if startup failed and otherwise the first error any
// component reported.
func Run(ctx context.Context, opts Options) error {
	baseDir := strings.TrimSpace(opts.BaseDir)
	if baseDir == "" {
		baseDir = "."
	}
	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return startupError(err, "resolve base directory")
	}

	cfg, err := config.Load(opts.ConfigPath, baseDir)
	if err != nil {
		return startupError(err, "load config")
	}
	if opts.DebugLog != "" {
		if cfg.DebugLog, err = config.ResolvePath(opts.DebugLog, baseDir); err != nil {
			return startupError(err, "debug log")
		}
	}
	if opts.Backend != "" {
		if err := config.ValidateBackend(opts.Backend); err != nil {
			return startupError(err, "backend")
		}
		cfg.Backend = opts.Backend
	}

	closeLog, err := setupLogging(cfg.DebugLog, opts.Debug)
	if err != nil {
		return startupError(err, "debug log")
	}
	defer closeLog()
	log.WithFields(log.Fields{
		"base":       baseDir,
		"live":       cfg.LiveLog,
		"transcript": cfg.Transcript,
		"backend":    cfg.Backend,
	}).Info("starting console")

	follower, err := logtail.Spawn(cfg.FollowCommand, cfg.LiveLog)
	if err != nil {
		return startupError(err, "follow live log")
	}
	surface, err := openSurface(cfg.Backend)
	if err != nil {
		if kerr := follower.Kill(); kerr != nil {
			log.WithError(kerr).Warn("kill follower")
		}
		_ = follower.Wait()
		return startupError(err, "open terminal")
	}

	p := &pipeline{
		surface:       surface,
		follower:      follower,
		feedStop:      make(chan struct{}),
		historyCancel: make(chan struct{}),
		commands:      make(chan string, commandBuffer),
		acks:          make(chan struct{}),
	}

	live := make(chan entry.Entry, liveBuffer)
	p.feed = logtail.StartFeed(follower.Stdout(), p.feedStop, live)

	older := make(chan entry.Entry, historyBuffer)
	p.loader = history.Start(history.Options{
		LogDir:  cfg.LogDir,
		LiveLog: cfg.LiveLog,
		BaseDir: baseDir,
	}, p.historyCancel, older)

	p.sink = transcript.Start(cfg.Transcript, p.commands)

	events := make(chan term.Event)
	p.poller = StartPoller(surface, p.acks, events)

	console := ui.New(ui.Options{
		Config:   cfg,
		Surface:  surface,
		History:  older,
		Live:     live,
		Events:   events,
		Acks:     p.acks,
		Commands: p.commands,
	})
	if err := console.Run(ctx); err != nil {
		log.WithError(err).Error("console failed")
	}
	return p.shutdown()
}

// pipeline holds what shutdown has to stop.
type pipeline struct {
	surface  term.Surface
	follower *logtail.Follower

	feedStop      chan struct{}
	historyCancel chan struct{}
	commands      chan string
	acks          chan struct{}

	poller *relay.Worker
	sink   *relay.Worker
	loader *relay.Worker
	feed   *relay.Worker
}

// shutdown stops the components in an order where every blocking step has
// already been released by an earlier one, then restores the terminal.
func (p *pipeline) shutdown() error {
	var errs []error
	join := func(w *relay.Worker) {
		select {
		case <-w.Done():
		case <-time.After(slowJoin):
			log.WithField("worker", w.Name()).Warn("waiting for worker to stop")
		}
		err := w.Wait()
		if err != nil {
			log.WithError(err).WithField("worker", w.Name()).Error("worker failed")
			errs = append(errs, err)
			return
		}
		log.WithField("worker", w.Name()).Debug("worker stopped")
	}

	// Stop acknowledging events and wake the pending poll.
	close(p.acks)
	p.surface.Interrupt()
	join(p.poller)

	// Only the console sent commands, and it has returned.
	close(p.commands)
	join(p.sink)

	close(p.historyCancel)
	join(p.loader)

	close(p.feedStop)
	if err := p.follower.Kill(); err != nil {
		log.WithError(err).Warn("kill follower")
	}
	join(p.feed)
	if err := p.follower.Wait(); err != nil {
		log.WithError(err).Warn("follower exited abnormally")
	}

	if err := p.surface.Fini(); err != nil {
		log.WithError(err).Error("terminal failed")
		errs = append(errs, errors.Wrap(err, "terminal"))
	}

	if len(errs) == 0 {
		log.Info("console stopped")
		return nil
	}
	for _, err := range errs[1:] {
		log.WithError(err).Warn("additional error during shutdown")
	}
	return errs[0]
}

// setupLogging points the global logger at path, or discards output when
// path is empty; the terminal belongs to the console while it runs.
func setupLogging(path string, debug bool) (func(), error) {
	log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "open debug log")
	}
	log.SetOutput(file)
	return func() {
		log.SetOutput(io.Discard)
		_ = file.Close()
	}, nil
}
