package history

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/five82/lantern/internal/entry"
	"github.com/five82/lantern/internal/logtail"
	"github.com/five82/lantern/internal/relay"
)

var archivePattern = regexp.MustCompile(`^(\d{4}-\d\d-\d\d)-(\d+)\.log\.gz$`)

// Options locates the files the loader reads.
type Options struct {
	// LogDir holds the rotated archives.
	LogDir string
	// LiveLog is the file the server is currently writing.
	LiveLog string
	// BaseDir, when set, shortens header labels to paths relative to it.
	BaseDir string
}

// Start launches the loader. It sends entries newest-first on out and
// closes out when history is exhausted, when cancel is closed or on error.
func Start(opts Options, cancel <-chan struct{}, out chan<- entry.Entry) *relay.Worker {
	return relay.Go("history", func() error {
		defer close(out)
		l := loader{opts: opts, cancel: cancel, out: out, logger: log.WithField("component", "history")}
		err := l.run()
		switch {
		case errors.Is(err, errCancelled):
			l.logger.WithField("entries", l.sent).Debug("history cancelled")
			return nil
		case err != nil && cancelled(cancel):
			l.logger.WithError(err).Warn("history failed during shutdown")
			return nil
		case err != nil:
			return err
		}
		l.logger.WithField("entries", l.sent).Debug("history exhausted")
		return nil
	})
}

var errCancelled = errors.New("history cancelled")

type loader struct {
	opts   Options
	cancel <-chan struct{}
	out    chan<- entry.Entry
	logger *log.Entry
	sent   int
}

func (l *loader) run() error {
	archives, err := Archives(l.opts.LogDir)
	if err != nil {
		return err
	}
	l.logger.WithField("archives", len(archives)).Debug("archives discovered")

	lines, ok, err := logtail.ReadFile(l.opts.LiveLog)
	if err != nil {
		return errors.Wrap(err, "read live log")
	}
	if !ok {
		l.logger.WithField("path", l.opts.LiveLog).Warn("live log not found, replaying archives only")
	}
	// The live header is sent even for a missing file so the seam above the
	// archives stays visible.
	if err := l.replay(lines, l.label(l.opts.LiveLog)); err != nil {
		return err
	}

	for i := len(archives) - 1; i >= 0; i-- {
		lines, err := readArchive(archives[i])
		if err != nil {
			return err
		}
		if err := l.replay(lines, l.label(archives[i])); err != nil {
			return err
		}
	}
	return nil
}

// replay sends lines newest-first, then the header for their file.
func (l *loader) replay(lines []string, label string) error {
	for i := len(lines) - 1; i >= 0; i-- {
		if err := l.send(entry.NewLine(lines[i])); err != nil {
			return err
		}
	}
	return l.send(entry.NewHeader(label))
}

func (l *loader) send(e entry.Entry) error {
	if !relay.Send(l.cancel, l.out, e) {
		return errCancelled
	}
	l.sent++
	return nil
}

func (l *loader) label(path string) string {
	if l.opts.BaseDir == "" {
		return path
	}
	rel, err := filepath.Rel(l.opts.BaseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func readArchive(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open archive")
	}
	defer file.Close()

	zr, err := gzip.NewReader(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decompress %s", filepath.Base(path))
	}
	defer zr.Close()

	lines, err := logtail.ReadLines(zr)
	if err != nil {
		return nil, errors.Wrapf(err, "read archive %s", filepath.Base(path))
	}
	return lines, nil
}

// Archives lists the rotated archives in dir, oldest first. Names that do
// not look like YYYY-MM-DD-N.log.gz are skipped. A missing directory has
// no archives.
func Archives(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "list log directory")
	}

	type archive struct {
		path string
		date string
		seq  uint64
	}
	var found []archive
	for _, ent := range ents {
		if ent.IsDir() {
			continue
		}
		m := archivePattern.FindStringSubmatch(ent.Name())
		if m == nil {
			continue
		}
		seq, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			continue
		}
		found = append(found, archive{path: filepath.Join(dir, ent.Name()), date: m[1], seq: seq})
	}

	slices.SortFunc(found, func(a, b archive) int {
		if c := strings.Compare(a.date, b.date); c != 0 {
			return c
		}
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return strings.Compare(a.path, b.path)
	})

	paths := make([]string, len(found))
	for i, a := range found {
		paths[i] = a.path
	}
	return paths, nil
}

func cancelled(cancel <-chan struct{}) bool {
	select {
	case _, ok := <-cancel:
		return !ok
	default:
		return false
	}
}
