package viz

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/spinframe/internal/engine"
	"github.com/san-kum/spinframe/internal/export"
	"github.com/san-kum/spinframe/internal/raster"
)

const (
	historyCapacity = 120
	sidebarWidth    = 44
	nudgeStep       = 5
)

// FrameMsg carries a rendered frame into the Bubble Tea loop.
type FrameMsg engine.Frame

// Controller is the part of the engine the live view drives.
type Controller interface {
	Toggle() bool
	Running() bool
	Nudge(dYaw, dPitch int)
}

// Options configure the live view.
type Options struct {
	Background raster.Color
	Theme      string
	Braille    bool
	GIFPath    string
	GIFDelay   time.Duration
}

// Model is the Bubble Tea model of the live view. Frames come in through
// FrameMsg; the model never renders on its own.
type Model struct {
	ctl       Controller
	opts      Options
	theme     Theme
	cols      int
	rows      int
	frame     *engine.Frame
	history   *History
	braille   bool
	recorder  *export.GIFRecorder
	recording bool
	status    string
	showHelp  bool
	presented *atomic.Uint64
}

func NewModel(ctl Controller, opts Options) Model {
	if opts.GIFPath == "" {
		opts.GIFPath = "spinframe.gif"
	}
	if opts.GIFDelay <= 0 {
		opts.GIFDelay = 50 * time.Millisecond
	}
	return Model{
		ctl:       ctl,
		opts:      opts,
		theme:     GetTheme(opts.Theme),
		cols:      80,
		rows:      24,
		history:   NewHistory(historyCapacity),
		braille:   opts.Braille,
		recorder:  export.NewGIFRecorder(opts.GIFDelay, 1),
		presented: new(atomic.Uint64),
	}
}

func (m Model) Init() tea.Cmd { return nil }

// Presented returns the number of frames the model has received.
func (m Model) Presented() uint64 { return m.presented.Load() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
	case FrameMsg:
		f := engine.Frame(msg)
		m.frame = &f
		m.history.Add(f.Angles.Yaw, f.Angles.Pitch)
		m.presented.Add(1)
		if m.recording {
			m.recorder.Add(f.Buffer)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if m.ctl.Toggle() {
				m.status = ""
			} else {
				m.status = "paused"
			}
		case "left", "h":
			m.ctl.Nudge(-nudgeStep, 0)
		case "right", "l":
			m.ctl.Nudge(nudgeStep, 0)
		case "up", "k":
			m.ctl.Nudge(0, nudgeStep)
		case "down", "j":
			m.ctl.Nudge(0, -nudgeStep)
		case "b":
			m.braille = !m.braille
		case "t":
			m.theme = NextTheme(m.theme)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recorder.Reset()
		m.recording = true
		m.status = "recording"
		return
	}
	m.recording = false
	n := m.recorder.Len()
	if err := m.recorder.Save(m.opts.GIFPath); err != nil {
		m.status = "gif: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved %d frames to %s", n, m.opts.GIFPath)
}

func (m Model) frameView() string {
	if m.frame == nil {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("waiting for first frame...")
	}
	cols := m.cols - sidebarWidth - 2
	rows := m.rows - 1
	if m.braille {
		c := NewCanvas(max(cols, 1), max(rows, 1))
		c.Plot(m.frame.Buffer, m.opts.Background)
		return lipgloss.NewStyle().Foreground(m.theme.Primary).Render(c.String())
	}
	return HalfBlocks(m.frame.Buffer, cols, rows)
}

func (m Model) sidebar() string {
	label := lipgloss.NewStyle().Foreground(m.theme.Muted).Width(10)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)
	header := lipgloss.NewStyle().Foreground(m.theme.Secondary).Bold(true).MarginBottom(1)

	var s strings.Builder
	s.WriteString(header.Render("SPINFRAME") + "\n")

	state := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent).Render("RUNNING")
	if !m.ctl.Running() {
		state = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Warning).Render("PAUSED")
	}
	if m.recording {
		state += " " + lipgloss.NewStyle().Bold(true).Foreground(m.theme.Error).Render("● REC")
	}
	s.WriteString(state + "\n\n")

	if f := m.frame; f != nil {
		s.WriteString(label.Render("yaw") + value.Render(fmt.Sprintf("%d°", f.Angles.Yaw)) + "\n")
		s.WriteString(label.Render("pitch") + value.Render(fmt.Sprintf("%d°", f.Angles.Pitch)) + "\n")
		s.WriteString(label.Render("frame") + value.Render(fmt.Sprintf("#%d", f.Seq)) + "\n")
		s.WriteString(label.Render("size") + value.Render(fmt.Sprintf("%dx%d", f.Buffer.Width, f.Buffer.Height)) + "\n")
		s.WriteString(label.Render("pixels") + value.Render(fmt.Sprintf("%d/%d", f.Stats.Written, f.Stats.Covered)) + "\n")
	}

	if chart := Plot(m.history.Yaw, m.history.Pitch, sidebarWidth-10, 8, "yaw / pitch"); chart != "" {
		s.WriteString("\n" + chart + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.status) + "\n")
	}
	s.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).MarginTop(1).
		Render("SP:Pause ←→↑↓:Nudge Q:Quit\nT:Theme B:Braille G:Record ?:Help"))

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.Muted).
		Padding(0, 1).
		Width(sidebarWidth).
		Render(s.String())
}

func (m Model) View() string {
	main := lipgloss.JoinHorizontal(lipgloss.Top, m.frameView(), m.sidebar())
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume rotation    ║
║  ←/→      - Nudge yaw by 5°          ║
║  ↑/↓      - Nudge pitch by 5°        ║
║  B        - Toggle braille mode      ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
` + "\n" + main
	}
	return main
}
