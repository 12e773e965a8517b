package term

import (
	"os"
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	xterm "golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

type cell struct {
	r     rune // 0 marks the trailing half of a wide rune
	style Style
}

// Program is the Bubble Tea-backed Surface. The console paints into a cell
// grid; Show renders the grid and hands the frame to the program, whose
// Update only queues input and never blocks.
type Program struct {
	program *tea.Program
	done    chan struct{}
	err     error // set before done is closed

	mu      sync.Mutex
	width   int
	height  int
	cells   []cell
	cursorX int
	cursorY int
	queue   []Event
	closed  bool
	wake    chan struct{}
	styles  map[Style]lipgloss.Style
}

type frameMsg string

type teaModel struct {
	surface *Program
	frame   string
}

var isTerminal = xterm.IsTerminal

// NewProgram starts a Bubble Tea program on the alternate screen. Stdin and
// stdout must both be terminals.
func NewProgram() (*Program, error) {
	if !isTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal")
	}
	if !isTerminal(int(os.Stdout.Fd())) {
		return nil, errors.New("stdout is not a terminal")
	}
	width, height, err := xterm.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}
	p := &Program{
		done:    make(chan struct{}),
		wake:    make(chan struct{}, 1),
		styles:  make(map[Style]lipgloss.Style),
		cursorX: -1,
		cursorY: -1,
	}
	p.resize(width, height)
	p.program = tea.NewProgram(teaModel{surface: p}, tea.WithAltScreen(), tea.WithoutSignalHandler())
	go func() {
		defer close(p.done)
		if _, err := p.program.Run(); err != nil {
			p.err = errors.Wrap(err, "run bubbletea program")
		}
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.signal()
	}()
	return p, nil
}

func (m teaModel) Init() tea.Cmd {
	return nil
}

func (m teaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
	case tea.WindowSizeMsg:
		m.surface.push(ResizeEvent(msg.Width, msg.Height))
	case tea.KeyMsg:
		m.surface.push(teaKeyEvents(msg)...)
	}
	return m, nil
}

func (m teaModel) View() string {
	return m.frame
}

func (p *Program) Size() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

func (p *Program) Print(x, y int, text string, style Style) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if y < 0 || y >= p.height {
		return
	}
	row := p.cells[y*p.width : (y+1)*p.width]
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= 0 && x < p.width {
			row[x] = cell{r: r, style: style}
			if w == 2 && x+1 < p.width {
				row[x+1] = cell{style: style}
			}
		}
		x += w
	}
}

func (p *Program) SetCursor(x, y int) {
	p.mu.Lock()
	p.cursorX, p.cursorY = x, y
	p.mu.Unlock()
}

func (p *Program) Show() {
	p.mu.Lock()
	frame := p.render()
	p.mu.Unlock()
	p.program.Send(frameMsg(frame))
}

// Sync is a no-op; Bubble Tea repaints the whole frame on resize.
func (p *Program) Sync() {}

func (p *Program) PollEvent() Event {
	for {
		p.mu.Lock()
		if len(p.queue) > 0 {
			ev := p.queue[0]
			p.queue = p.queue[1:]
			if ev.Kind == EventResize {
				p.resize(ev.Width, ev.Height)
			}
			p.mu.Unlock()
			return ev
		}
		if p.closed {
			p.mu.Unlock()
			return Event{Kind: EventClosed}
		}
		p.mu.Unlock()
		<-p.wake
	}
}

func (p *Program) Interrupt() {
	p.push(Event{Kind: EventInterrupt})
}

// Fini quits the program, waits for it to restore the terminal and returns
// the error it stopped with, if any.
func (p *Program) Fini() error {
	if p.program != nil {
		p.program.Quit()
	}
	<-p.done
	return p.err
}

func (p *Program) push(events ...Event) {
	if len(events) == 0 {
		return
	}
	p.mu.Lock()
	p.queue = append(p.queue, events...)
	p.mu.Unlock()
	p.signal()
}

func (p *Program) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// resize reallocates the grid, keeping what fits. Callers hold mu.
func (p *Program) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([]cell, width*height)
	for i := range cells {
		cells[i] = cell{r: ' '}
	}
	for y := 0; y < height && y < p.height; y++ {
		for x := 0; x < width && x < p.width; x++ {
			cells[y*width+x] = p.cells[y*p.width+x]
		}
	}
	p.width, p.height, p.cells = width, height, cells
}

// render joins runs of equally styled cells into lipgloss-rendered rows.
// Callers hold mu.
func (p *Program) render() string {
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < p.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := p.cells[y*p.width : (y+1)*p.width]
		var current Style
		for x, c := range row {
			if c.r == 0 {
				continue
			}
			st := c.style
			if x == p.cursorX && y == p.cursorY {
				st.Reverse = !st.Reverse
			}
			if run.Len() > 0 && st != current {
				b.WriteString(p.lipglossStyle(current).Render(run.String()))
				run.Reset()
			}
			current = st
			run.WriteRune(c.r)
		}
		if run.Len() > 0 {
			b.WriteString(p.lipglossStyle(current).Render(run.String()))
			run.Reset()
		}
	}
	return b.String()
}

func (p *Program) lipglossStyle(style Style) lipgloss.Style {
	if st, ok := p.styles[style]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if style.Fg > 0 {
		st = st.Foreground(lipgloss.Color(strconv.Itoa(int(style.Fg) - 1)))
	}
	if style.Bg > 0 {
		st = st.Background(lipgloss.Color(strconv.Itoa(int(style.Bg) - 1)))
	}
	if style.Bold {
		st = st.Bold(true)
	}
	if style.Underline {
		st = st.Underline(true)
	}
	if style.Reverse {
		st = st.Reverse(true)
	}
	p.styles[style] = st
	return st
}

func teaKeyEvents(msg tea.KeyMsg) []Event {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []Event{KeyEvent(msg.String())}
		}
		events := make([]Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, RuneEvent(r))
		}
		return events
	case tea.KeySpace:
		return []Event{RuneEvent(' ')}
	default:
		return []Event{KeyEvent(msg.String())}
	}
}
