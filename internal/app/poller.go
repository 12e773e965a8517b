package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/five82/lantern/internal/relay"
	"github.com/five82/lantern/internal/term"
)

// EventPoller is the part of a terminal surface the poller drives.
type EventPoller interface {
	PollEvent() term.Event
}

// StartPoller forwards terminal events to out, one at a time: after each
// delivery it waits for a value on acks before polling again, so there is
// never more than one outstanding poll. It stops when acks is closed or the
// surface reports it is closed, and closes out on return.
//
// Closing acks does not interrupt a poll in progress; wake it with the
// surface's Interrupt.
func StartPoller(surface EventPoller, acks <-chan struct{}, out chan<- term.Event) *relay.Worker {
	return relay.Go("events", func() error {
		defer close(out)
		logger := log.WithField("component", "events")
		for {
			ev := surface.PollEvent()
			if ev.Kind == term.EventClosed {
				logger.Debug("terminal closed")
				return nil
			}
			if !relay.Send(acks, out, ev) {
				logger.WithField("event", ev.Kind).Debug("event dropped at shutdown")
				return nil
			}
			if _, ok := <-acks; !ok {
				logger.Debug("acknowledgements stopped")
				return nil
			}
		}
	})
}
