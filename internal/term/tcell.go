package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
)

var newScreen = tcell.NewScreen

// Screen is the tcell-backed Surface.
type Screen struct {
	screen tcell.Screen
	styles map[Style]tcell.Style
}

// NewScreen initializes the terminal through tcell.
func NewScreen() (*Screen, error) {
	screen, err := newScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	return wrapScreen(screen), nil
}

func wrapScreen(screen tcell.Screen) *Screen {
	screen.Clear()
	return &Screen{screen: screen, styles: make(map[Style]tcell.Style)}
}

func (s *Screen) Size() (int, int) {
	return s.screen.Size()
}

func (s *Screen) Print(x, y int, text string, style Style) {
	st := s.style(style)
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.screen.SetContent(x, y, r, nil, st)
		x += w
	}
}

func (s *Screen) SetCursor(x, y int) {
	s.screen.ShowCursor(x, y)
}

func (s *Screen) Show() {
	s.screen.Show()
}

func (s *Screen) Sync() {
	s.screen.Sync()
}

func (s *Screen) PollEvent() Event {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case nil:
			return Event{Kind: EventClosed}
		case *tcell.EventResize:
			w, h := ev.Size()
			return ResizeEvent(w, h)
		case *tcell.EventInterrupt:
			return Event{Kind: EventInterrupt}
		case *tcell.EventKey:
			return convertKey(ev)
		}
		// Mouse, paste and focus events are not used by the console.
	}
}

func (s *Screen) Interrupt() {
	_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (s *Screen) Fini() error {
	s.screen.Fini()
	return nil
}

func (s *Screen) style(style Style) tcell.Style {
	if st, ok := s.styles[style]; ok {
		return st
	}
	st := tcell.StyleDefault.
		Foreground(tcellColor(style.Fg)).
		Background(tcellColor(style.Bg)).
		Bold(style.Bold).
		Underline(style.Underline).
		Reverse(style.Reverse)
	s.styles[style] = st
	return st
}

func tcellColor(c uint16) tcell.Color {
	if c == 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c) - 1)
}

var tcellKeyNames = map[tcell.Key]string{
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdown",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyInsert:     "insert",
	tcell.KeyDelete:     "delete",
	tcell.KeyEnter:      "enter",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyEscape:     "esc",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
}

func convertKey(ev *tcell.EventKey) Event {
	key := ev.Key()
	if key == tcell.KeyRune {
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return KeyEvent("alt+" + string(ev.Rune()))
		}
		return RuneEvent(ev.Rune())
	}
	if name, ok := tcellKeyNames[key]; ok {
		return KeyEvent(name)
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return KeyEvent("ctrl+" + string(rune('a'+int(key-tcell.KeyCtrlA))))
	}
	return KeyEvent(ev.Name())
}
