// Package term is the console's drawing capability: a character grid that
// paints styled strings at a column/row and reports key and resize events.
//
// Two backends implement Surface. The tcell backend drives the terminal
// directly and is the default; the bubbletea backend paints into an
// in-memory grid and lets a Bubble Tea program own the terminal.
package term

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendTcell     = "tcell"
	BackendBubbletea = "bubbletea"
)

// Surface is the drawing capability handed to the console. Only one
// goroutine may draw; PollEvent and Interrupt may be called from another.
type Surface interface {
	// Size returns the current width and height in cells.
	Size() (width, height int)
	// Print paints text starting at column x of row y. Cells outside the
	// grid are ignored.
	Print(x, y int, text string, style Style)
	// SetCursor places the visible cursor.
	SetCursor(x, y int)
	// Show flushes painted cells to the terminal.
	Show()
	// Sync repaints the whole terminal, used after a resize.
	Sync()
	// PollEvent blocks until the next event. It returns an EventClosed
	// event once the surface has been finalized.
	PollEvent() Event
	// Interrupt wakes a blocked PollEvent with an EventInterrupt event.
	Interrupt()
	// Fini restores the terminal and reports a failure of the backend
	// while it ran.
	Fini() error
}

// Open initializes the named backend. An empty name selects tcell.
func Open(backend string) (Surface, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendTcell:
		return NewScreen()
	case BackendBubbletea:
		return NewProgram()
	default:
		return nil, errors.Errorf("unknown terminal backend %q", backend)
	}
}

// Style is a foreground/background/attribute triple. Colors use 0 for the
// terminal default and n in 1..256 for palette entry n-1.
type Style struct {
	Fg        uint16
	Bg        uint16
	Bold      bool
	Underline bool
	Reverse   bool
}

// EventKind classifies events returned by PollEvent.
type EventKind int

const (
	EventKey EventKind = iota
	EventResize
	EventInterrupt
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventInterrupt:
		return "interrupt"
	case EventClosed:
		return "closed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a terminal input or resize notification.
//
// Key uses Bubble Tea key names ("up", "pgdown", "ctrl+q", "enter",
// "backspace") so key.Binding definitions match either backend. For a
// plain character Key is the character itself and Rune is set.
type Event struct {
	Kind   EventKind
	Key    string
	Rune   rune
	Width  int
	Height int
}

// Printable reports whether the event types a character into the input line.
func (e Event) Printable() bool {
	return e.Kind == EventKey && e.Rune != 0 && unicode.IsPrint(e.Rune)
}

// KeyEvent builds a key event for a named key.
func KeyEvent(name string) Event {
	return Event{Kind: EventKey, Key: name}
}

// RuneEvent builds a key event for a typed character.
func RuneEvent(r rune) Event {
	return Event{Kind: EventKey, Key: string(r), Rune: r}
}

// ResizeEvent builds a resize event.
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}
