// Package transcript appends submitted console commands to a file, one per
// line, off the console goroutine.
package transcript

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/five82/lantern/internal/relay"
)

// Start opens path for appending, creating it if absent, and writes every
// command received on in as one line, flushed immediately.
//
// The path may be a FIFO, whose open blocks until the server opens its
// read end. Commands received while that open is pending are held and
// written once it succeeds. If in is closed first the held commands are
// dropped with a warning and the worker returns nil.
//
// The worker returns when in is closed. After the first error it keeps
// draining in so senders never block, and returns that error.
func Start(path string, in <-chan string) *relay.Worker {
	return relay.Go("transcript", func() error {
		logger := log.WithFields(log.Fields{"component": "transcript", "path": path})

		file, pending, err := open(path, in, logger)
		if err != nil {
			discard(in, logger, err)
			return err
		}
		if file == nil {
			return nil
		}
		defer file.Close()

		w := bufio.NewWriter(file)
		written := 0
		write := func(cmd string) error {
			if _, err := w.WriteString(cmd + "\n"); err != nil {
				return errors.Wrap(err, "write transcript")
			}
			if err := w.Flush(); err != nil {
				return errors.Wrap(err, "flush transcript")
			}
			written++
			logger.WithField("command", cmd).Debug("command recorded")
			return nil
		}
		for _, cmd := range pending {
			if err := write(cmd); err != nil {
				discard(in, logger, err)
				return err
			}
		}
		for cmd := range in {
			if err := write(cmd); err != nil {
				discard(in, logger, err)
				return err
			}
		}

		if err := file.Close(); err != nil {
			return errors.Wrap(err, "close transcript")
		}
		logger.WithField("commands", written).Debug("transcript closed")
		return nil
	})
}

const flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND

type openResult struct {
	file *os.File
	err  error
}

// open opens path. A FIFO is opened on a helper goroutine while the
// commands that arrive meanwhile are held; if in is closed before the open
// finishes, open returns a nil file and nil error.
func open(path string, in <-chan string, logger *log.Entry) (*os.File, []string, error) {
	info, err := os.Stat(path)
	if err != nil || info.Mode()&os.ModeNamedPipe == 0 {
		file, err := os.OpenFile(path, flags, 0o644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "open transcript")
		}
		return file, nil, nil
	}

	logger.Debug("waiting for transcript reader")
	result := make(chan openResult, 1)
	go func() {
		file, err := os.OpenFile(path, flags, 0o644)
		result <- openResult{file: file, err: err}
	}()

	var pending []string
	for {
		select {
		case r := <-result:
			if r.err != nil {
				return nil, nil, errors.Wrap(r.err, "open transcript")
			}
			return r.file, pending, nil
		case cmd, ok := <-in:
			if ok {
				pending = append(pending, cmd)
				continue
			}
			select {
			case r := <-result:
				if r.err != nil {
					return nil, nil, errors.Wrap(r.err, "open transcript")
				}
				return r.file, pending, nil
			default:
			}
			logger.WithField("dropped", len(pending)).Warn("transcript reader never opened, commands not recorded")
			go func() {
				if r := <-result; r.file != nil {
					_ = r.file.Close()
				}
			}()
			return nil, nil, nil
		}
	}
}

func discard(in <-chan string, logger *log.Entry, cause error) {
	logger.WithError(cause).Error("transcript failed, discarding further commands")
	dropped := 0
	for range in {
		dropped++
	}
	if dropped > 0 {
		logger.WithField("dropped", dropped).Warn("commands not recorded")
	}
}
