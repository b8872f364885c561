// Package preview is the interactive soak for the layout engine. It renders
// sample events through the real pipeline and lays them out again on every
// terminal resize, theme cycle, or format cycle. Live mode keeps appending
// events on a tick so scrolling and eviction get exercised too.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"github.com/emberlog/ember/decor"
	"github.com/emberlog/ember/encode"
	"github.com/emberlog/ember/format"
	"github.com/emberlog/ember/ir"
	"github.com/emberlog/ember/layout"
)

// formats is the cycle order for the f key.
var formats = []string{"pretty", "plain", "json", "toon"}

const (
	// livePulse is the cadence of generated events in live mode.
	livePulse = 700 * time.Millisecond
	// historyCap bounds the retained events in live mode.
	historyCap = 200
)

// Options configure the preview.
type Options struct {
	// Theme is the starting theme name.
	Theme string
	// Format is the starting format, one of pretty, plain, json, toon.
	Format string
	// Count is how many sample events to seed.
	Count int
	// Live appends a new event every pulse.
	Live bool
}

// Model is the Bubble Tea model for the preview.
type Model struct {
	theme   *decor.Theme
	format  string
	history *history
	profile termenv.Profile

	live  bool
	seq   int
	trace string

	width    int
	height   int
	ready    bool
	viewport viewport.Model
}

// New creates the preview model.
func New(opts Options) Model {
	name := opts.Format
	if !validFormat(name) {
		name = formats[0]
	}
	count := opts.Count
	if count <= 0 {
		count = 12
	}
	h := newHistory(historyCap)
	for _, ev := range Events(count) {
		h.append(ev)
	}
	return Model{
		theme:   decor.GetTheme(opts.Theme),
		format:  name,
		history: h,
		profile: termenv.ColorProfile(),
		live:    opts.Live,
		seq:     count,
		trace:   uuid.NewString(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.live {
		return tickCmd(livePulse)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, m.contentHeight())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = m.contentHeight()
		}
		m.viewport.SetContent(m.render())
		return m, nil

	case tickMsg:
		if !m.live {
			return m, nil
		}
		m.history.append(sampleEvent(m.seq, time.Time(msg), m.trace))
		m.seq++
		follow := m.viewport.AtBottom()
		m.viewport.SetContent(m.render())
		if follow {
			m.viewport.GotoBottom()
		}
		return m, tickCmd(livePulse)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "measuring terminal..."
	}
	return m.renderHeader() + "\n" + m.viewport.View() + "\n" + m.renderFooter()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit

	case "t":
		m.theme = decor.GetTheme(decor.NextTheme(m.theme.Name))
		m.viewport.SetContent(m.render())
		return m, nil

	case "f":
		m.format = nextFormat(m.format)
		m.viewport.SetContent(m.render())
		return m, nil

	case "g":
		m.viewport.GotoTop()
		return m, nil

	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// contentHeight is the viewport height under the header and footer rows.
func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

// render runs every sample event through the pipeline at the current width,
// theme, and format.
func (m Model) render() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	formatter, encoder := m.pipeline()
	treeEncoder, hasTreeEncoder := encoder.(encode.TreeEncoder)

	events := m.history.all()
	var arena ir.Arena
	var buf bytes.Buffer
	for i := range events {
		doc := arena.Document()
		formatter.Format(doc, &events[i], &arena)
		m.theme.Apply(doc, &events[i], &arena)

		var err error
		if hasTreeEncoder && doc.HasTree() {
			err = treeEncoder.EncodeTree(&buf, doc)
		} else {
			err = encoder.Encode(&buf, layout.Layout(doc, width))
		}
		if err != nil {
			fmt.Fprintf(&buf, "encode error: %v\n", err)
		}
		arena.ReleaseDocument(doc)
		buf.WriteByte('\n')
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// pipeline maps the current format name to its formatter and encoder.
func (m Model) pipeline() (format.Formatter, encode.Encoder) {
	switch m.format {
	case "plain":
		return &format.Plain{}, encode.NewANSI(m.profile)
	case "json":
		return format.JSONTree{}, encode.JSON{}
	case "toon":
		return format.TOON{}, encode.TOON{}
	default:
		return &format.Pretty{}, encode.NewANSI(m.profile)
	}
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Render("ember preview")
	meta := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Muted)).
		Render(fmt.Sprintf("theme %s · format %s · width %d", m.theme.Name, m.format, m.width))
	return title + "  " + meta
}

func (m Model) renderFooter() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Faint)).
		Render("t theme · f format · ↑/↓ scroll · q quit")
}

func validFormat(name string) bool {
	for _, f := range formats {
		if f == name {
			return true
		}
	}
	return false
}

func nextFormat(current string) string {
	for i, f := range formats {
		if f == current {
			return formats[(i+1)%len(formats)]
		}
	}
	return formats[0]
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the preview program and blocks until the user quits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
