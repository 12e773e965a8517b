package logtail

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/five82/lantern/internal/entry"
	"github.com/five82/lantern/internal/relay"
)

// StartFeed turns each line read from r into an entry on out, closing out
// when r ends. Delivery gives up once stop is closed. A read error is the
// worker's result unless stop was already closed, in which case the error
// is the expected fallout of shutdown and is only logged.
func StartFeed(r io.Reader, stop <-chan struct{}, out chan<- entry.Entry) *relay.Worker {
	return relay.Go("live feed", func() error {
		defer close(out)
		logger := log.WithField("component", "live feed")

		scanner := NewScanner(r)
		lines := 0
		for scanner.Scan() {
			if !relay.Send(stop, out, entry.NewLine(scanner.Text())) {
				logger.WithField("lines", lines).Debug("live feed cancelled")
				return nil
			}
			lines++
		}

		err := scanner.Err()
		if err == nil || errors.Is(err, os.ErrClosed) {
			logger.WithField("lines", lines).Debug("live feed reached end of stream")
			return nil
		}
		if stopped(stop) {
			logger.WithError(err).Warn("live feed read failed during shutdown")
			return nil
		}
		return errors.Wrap(err, "read live log")
	})
}

func stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}
