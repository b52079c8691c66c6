package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/keyglow/internal/config"
	"github.com/tessro/keyglow/internal/piano"
	"github.com/tessro/keyglow/internal/render"
	"github.com/tessro/keyglow/internal/render/glow"
	"github.com/tessro/keyglow/internal/tui/styles"
)

// pianoKeys maps the home rows to a chromatic run starting at C.
const pianoKeys = "awsedftgyhujkolp;"

const (
	frameInterval = 16 * time.Millisecond
	maxFrameDelta = 100 * time.Millisecond
	keyUnits      = 40
	cellWidth     = 3
)

type keyMap struct {
	Quit       key.Binding
	Release    key.Binding
	OctaveDown key.Binding
	OctaveUp   key.Binding
	Style      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Release, k.OctaveDown, k.OctaveUp, k.Style, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
	Release: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "release all"),
	),
	OctaveDown: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "octave down"),
	),
	OctaveUp: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "octave up"),
	),
	Style: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "glow style"),
	),
}

type tickMsg time.Time

// Model is the glow preview. Terminals report key presses but not
// releases, so piano keys toggle.
type Model struct {
	layout   piano.Range
	palette  render.Palette
	glowOn   bool
	styleIdx int

	renderer *glow.Renderer
	canvas   *Canvas

	first int // key index of the leftmost visible slot
	held  map[int]bool
	last  time.Time

	keys keyMap
	help help.Model
}

// NewModel creates a preview for the document's layout and appearance.
func NewModel(doc *config.Document, styleName string) (Model, error) {
	layout := piano.FromConfig(doc.KeyboardLayout.Latest().Range)
	if layout.Len() == 0 {
		return Model{}, fmt.Errorf("keyboard range %d-%d has no keys", layout.Low, layout.High)
	}

	styleIdx := -1
	for i, name := range glow.StyleNames() {
		if name == styleName || (styleName == "" && name == glow.StyleBurst) {
			styleIdx = i
		}
	}
	if styleIdx < 0 {
		return Model{}, fmt.Errorf("unknown glow style %q", styleName)
	}

	appearance := doc.Appearance.Latest()
	m := Model{
		layout:   layout,
		palette:  render.NewPalette(appearance.ColorSchema),
		glowOn:   appearance.Glow,
		styleIdx: styleIdx,
		canvas:   NewCanvas(len(pianoKeys), keyUnits),
		held:     make(map[int]bool),
		keys:     defaultKeys,
		help:     help.New(),
	}
	m.buildRenderer()

	// Start at middle C when the range has it.
	if i, ok := layout.Index(60); ok {
		m.first = i
	}
	m.first = m.clampFirst(m.first)
	return m, nil
}

func (m *Model) buildRenderer() {
	style, _ := glow.StyleByName(glow.StyleNames()[m.styleIdx])
	m.renderer = glow.New(glow.NewMemoryPipeline(), m.layout, glow.WithStyle(style))
}

func (m Model) clampFirst(first int) int {
	last := m.layout.Len() - len(pianoKeys)
	if first > last {
		first = last
	}
	if first < 0 {
		first = 0
	}
	return first
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the frame clock.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		delta := time.Duration(0)
		if !m.last.IsZero() {
			delta = min(now.Sub(m.last), maxFrameDelta)
		}
		m.last = now
		m.step(delta)
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Release):
		m.held = make(map[int]bool)
	case key.Matches(msg, m.keys.OctaveDown):
		m.first = m.clampFirst(m.first - 12)
		m.held = make(map[int]bool)
	case key.Matches(msg, m.keys.OctaveUp):
		m.first = m.clampFirst(m.first + 12)
		m.held = make(map[int]bool)
	case key.Matches(msg, m.keys.Style):
		m.styleIdx = (m.styleIdx + 1) % len(glow.StyleNames())
		m.buildRenderer()
	default:
		if off := strings.Index(pianoKeys, msg.String()); off >= 0 && len(msg.String()) == 1 {
			id := m.first + off
			if id < m.layout.Len() {
				m.held[id] = !m.held[id]
				if !m.held[id] {
					delete(m.held, id)
				}
			}
		}
	}
	return m, nil
}

// step runs one frame and draws it onto the canvas.
func (m Model) step(delta time.Duration) {
	var presses []glow.Press
	if m.glowOn {
		for off := range len(pianoKeys) {
			id := m.first + off
			if !m.held[id] {
				continue
			}
			x, y, w := m.layout.Geometry(off, keyUnits)
			note := m.layout.Note(id)
			presses = append(presses, glow.Press{
				ID:    id,
				Color: m.palette.Color(id, piano.IsBlack(note)),
				X:     x,
				Y:     y,
				Width: w,
			})
		}
	}
	m.renderer.Frame(delta, presses)
	m.canvas.Reset()
	m.renderer.Render(m.canvas)
}

// View renders the model
func (m Model) View() string {
	var b strings.Builder

	style := glow.StyleNames()[m.styleIdx]
	low := m.layout.Note(m.first)
	high := m.layout.Note(min(m.first+len(pianoKeys), m.layout.Len()) - 1)
	b.WriteString(styles.Title.Render("keyglow preview"))
	b.WriteString("  ")
	b.WriteString(styles.Subtitle.Render(fmt.Sprintf("notes %d-%d  style %s", low, high, style)))
	if !m.glowOn {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(styles.Warning).Render("glow disabled in config"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.canvas.View(cellWidth))

	var caps, labels []string
	for off, r := range pianoKeys {
		id := m.first + off
		if id >= m.layout.Len() {
			break
		}
		caps = append(caps, styles.Key(piano.IsBlack(m.layout.Note(id)), m.held[id], cellWidth))
		labels = append(labels, styles.Label.Render(fmt.Sprintf(" %c ", r)))
	}
	b.WriteString(strings.Join(caps, ""))
	b.WriteString("\n")
	b.WriteString(strings.Join(labels, ""))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// Run starts the preview.
func Run(doc *config.Document, styleName string) error {
	model, err := NewModel(doc, styleName)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
