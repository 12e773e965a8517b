package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	log "github.com/sirupsen/logrus"

	"github.com/five82/lantern/internal/config"
	"github.com/five82/lantern/internal/entry"
	"github.com/five82/lantern/internal/state"
	"github.com/five82/lantern/internal/term"
)

// Options wires a Console to its surface and channels.
type Options struct {
	Config  config.Config
	Surface term.Surface

	// History yields older entries, newest first, and is closed when
	// history is exhausted.
	History <-chan entry.Entry
	// Live yields entries appended to the live log.
	Live <-chan entry.Entry
	// Events yields terminal events. The sender waits on Acks after each.
	Events <-chan term.Event
	Acks   chan<- struct{}
	// Commands receives each submitted input line.
	Commands chan<- string
}

// Console is the single owner of the scroll buffer, the scroll position,
// the input line and all drawing.
type Console struct {
	cfg    config.Config
	keys   keyMap
	status string

	surface  term.Surface
	history  <-chan entry.Entry
	live     <-chan entry.Entry
	events   <-chan term.Event
	acks     chan<- struct{}
	commands chan<- string

	buffer  *state.Buffer
	view    state.View
	input   []rune
	width   int
	height  int
	exiting bool
}

// New returns a console sized to the surface.
func New(opts Options) *Console {
	keys := defaultKeyMap()
	status := opts.Config.Status
	if status == "" {
		status = helpText(keys.ShortHelp())
	}
	c := &Console{
		cfg:      opts.Config,
		keys:     keys,
		status:   status,
		surface:  opts.Surface,
		history:  opts.History,
		live:     opts.Live,
		events:   opts.Events,
		acks:     opts.Acks,
		commands: opts.Commands,
		buffer:   state.NewBuffer(),
	}
	c.width, c.height = opts.Surface.Size()
	return c
}

// Run fills the screen, then handles live entries and terminal events until
// the quit key, a closed event channel or ctx ends it. Run never closes
// the channels it was given.
func (c *Console) Run(ctx context.Context) error {
	if !c.collect(ctx) {
		log.Debug("console cancelled while collecting")
		return nil
	}
	log.WithFields(log.Fields{"entries": c.buffer.Len(), "rows": c.rows()}).Debug("console running")

	c.drawAll()
	for !c.exiting {
		c.surface.Show()
		select {
		case <-ctx.Done():
			log.Debug("console cancelled")
			c.exiting = true
		case e, ok := <-c.live:
			if !ok {
				log.Warn("live log feed ended")
				c.live = nil
				continue
			}
			c.AppendLive(e)
		case ev, ok := <-c.events:
			if !ok {
				log.Warn("terminal event source ended")
				c.exiting = true
				continue
			}
			c.HandleEvent(ev)
			if !c.exiting {
				c.acks <- struct{}{}
			}
		}
	}
	return nil
}

// collect pulls live and history entries until the log rows are full or
// history is exhausted. It reports false if ctx ended first.
func (c *Console) collect(ctx context.Context) bool {
	for c.buffer.Len() < c.rows() {
		if c.history == nil {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case e, ok := <-c.history:
			if !ok {
				c.history = nil
				return true
			}
			c.buffer.PushFront(e)
		case e, ok := <-c.live:
			if !ok {
				log.Warn("live log feed ended")
				c.live = nil
				continue
			}
			c.buffer.PushBack(e)
		}
	}
	return true
}

// rows is the number of log rows above the input and status rows.
func (c *Console) rows() int {
	return max(0, c.height-2)
}

func (c *Console) maxScroll() int {
	return state.MaxScroll(c.buffer.Len(), c.rows())
}

// HandleEvent applies one terminal event. It does not acknowledge it.
func (c *Console) HandleEvent(ev term.Event) {
	switch ev.Kind {
	case term.EventResize:
		c.Resize(ev.Width, ev.Height)
		return
	case term.EventClosed:
		c.exiting = true
		return
	case term.EventInterrupt:
		return
	}

	k := keyPress(ev.Key)
	switch {
	case key.Matches(k, c.keys.Quit):
		c.exiting = true
	case key.Matches(k, c.keys.Up):
		c.Scroll(-c.cfg.VerticalStep)
	case key.Matches(k, c.keys.Down):
		c.Scroll(c.cfg.VerticalStep)
	case key.Matches(k, c.keys.Left):
		c.ScrollH(-c.cfg.HorizontalStep)
	case key.Matches(k, c.keys.Right):
		c.ScrollH(c.cfg.HorizontalStep)
	case key.Matches(k, c.keys.PageUp):
		c.Scroll(-c.height / 2)
	case key.Matches(k, c.keys.PageDown):
		c.Scroll(c.height / 2)
	case key.Matches(k, c.keys.End):
		c.ScrollToEnd()
	case key.Matches(k, c.keys.Submit):
		c.Submit()
	case key.Matches(k, c.keys.Backspace):
		if n := len(c.input); n > 0 {
			c.input = c.input[:n-1]
		}
		c.drawInput()
	case ev.Printable():
		c.input = append(c.input, ev.Rune)
		c.drawInput()
	}
}

// AppendLive adds a live entry at the back. A view showing the newest
// content follows it; any other position is left alone.
func (c *Console) AppendLive(e entry.Entry) {
	pinned := c.view.AtTail(c.buffer.Len(), c.rows())
	c.buffer.PushBack(e)
	if pinned {
		c.view.Scroll = c.maxScroll()
	}
	c.drawLogs()
}

// Scroll moves the view delta rows toward newer (positive) or older
// (negative) content, pulling history when scrolling past the oldest
// entry held.
func (c *Console) Scroll(delta int) {
	if delta == 0 {
		return
	}
	if delta > 0 {
		c.view.Scroll = min(c.view.Scroll+delta, c.maxScroll())
		c.drawLogs()
		return
	}

	need := -delta
	if need <= c.view.Scroll {
		c.view.Scroll -= need
		c.drawLogs()
		return
	}
	fetched := c.fetchHistory(need - c.view.Scroll)
	log.WithFields(log.Fields{"wanted": need - c.view.Scroll, "fetched": fetched}).Debug("history fetched")
	c.view.Scroll = 0
	c.drawLogs()
}

// fetchHistory prepends up to n history entries and returns how many it got.
func (c *Console) fetchHistory(n int) int {
	fetched := 0
	for ; fetched < n && c.history != nil; fetched++ {
		e, ok := <-c.history
		if !ok {
			log.Debug("history exhausted")
			c.history = nil
			break
		}
		c.buffer.PushFront(e)
	}
	return fetched
}

// ScrollH pans plain log lines horizontally, never left of column 0.
func (c *Console) ScrollH(delta int) {
	if delta == 0 {
		return
	}
	if delta < 0 && c.view.HScroll == 0 {
		return
	}
	c.view.HScroll = max(0, c.view.HScroll+delta)
	c.drawLogs()
}

// ScrollToEnd jumps to the newest content.
func (c *Console) ScrollToEnd() {
	if end := c.maxScroll(); c.view.Scroll != end {
		c.view.Scroll = end
		c.drawLogs()
	}
}

// Resize adopts a new terminal size and repaints everything.
func (c *Console) Resize(width, height int) {
	pinned := c.view.AtTail(c.buffer.Len(), c.rows())
	c.width, c.height = width, height
	if pinned {
		c.view.Scroll = c.maxScroll()
	} else {
		c.view.Clamp(c.buffer.Len(), c.rows())
	}
	c.surface.Sync()
	c.drawAll()
}

// Submit sends the input line to the transcript and clears it.
func (c *Console) Submit() {
	cmd := string(c.input)
	c.input = c.input[:0]
	c.commands <- cmd
	c.drawInput()
}
