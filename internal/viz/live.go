package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/dotfield/internal/field"
	"github.com/san-kum/dotfield/internal/metrics"
	"github.com/san-kum/dotfield/internal/world"
	"go.uber.org/zap"
)

const (
	panelWidth      = 40
	historyCapacity = 240

	// dotSize is the world size of one Braille dot in pixels.
	dotSize = 6.0

	defaultCols = 80
	defaultRows = 24
)

type TickMsg time.Time

// Model steps a world on a timer and renders it with a status panel.
type Model struct {
	world   *world.World
	kinetic *metrics.KineticEnergy
	canvas  *Canvas
	log     *zap.Logger

	fps      int
	running  bool
	showHelp bool
	theme    Theme
	styles   styles

	last      world.Report
	skipped   int
	energy    []float64
	resetting []float64

	spring   harmonica.Spring
	gauge    float64
	gaugeVel float64
	peak     float64
}

// NewModel sizes the world for a default terminal; the first window size
// message resizes it to the real one.
func NewModel(w *world.World, fps int, logger *zap.Logger) (Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if fps <= 0 {
		fps = 60
	}
	k := metrics.NewKineticEnergy()
	w.AddMetric(k)

	m := Model{
		world:     w,
		kinetic:   k,
		log:       logger,
		fps:       fps,
		running:   true,
		theme:     Themes[0],
		styles:    newStyles(Themes[0]),
		energy:    make([]float64, 0, historyCapacity),
		resetting: make([]float64, 0, historyCapacity),
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
	if err := m.resize(defaultCols, defaultRows); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// resize fits the canvas to a terminal of cols by rows cells and rebuilds
// the field at the matching world size.
func (m *Model) resize(cols, rows int) error {
	c := NewCanvas(max(cols-panelWidth, 10), max(rows-1, 5))
	dw, dh := c.Dots()
	ext := field.Extent{Width: float64(dw) * dotSize, Height: float64(dh) * dotSize}
	if err := m.world.Resize(ext); err != nil {
		return err
	}
	c.Fit(ext)
	m.canvas = c
	return nil
}

// Update maps terminal input to pointer gestures and steps the world.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.world.ResetAll()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		if err := m.resize(msg.Width, msg.Height); err != nil {
			m.log.Warn("resize failed", zap.Int("cols", msg.Width), zap.Int("rows", msg.Height), zap.Error(err))
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.BlurMsg:
		m.world.Blur()
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) mouse(msg tea.MouseMsg) {
	x, y := m.canvas.ToWorld(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.world.PointerDown(x, y)
		}
	case tea.MouseActionRelease:
		m.world.PointerUp()
	case tea.MouseActionMotion:
		m.world.PointerMove(x, y)
	}
}

func (m *Model) step() {
	m.last = m.world.Step()
	m.skipped += len(m.last.Errors)

	e := m.kinetic.Last()
	m.energy = appendCapped(m.energy, e)
	m.resetting = appendCapped(m.resetting, float64(m.last.Resetting))

	m.peak = max(m.peak*0.999, e)
	target := 0.0
	if m.peak > 0 {
		target = e / m.peak
	}
	m.gauge, m.gaugeVel = m.spring.Update(m.gauge, m.gaugeVel, target)
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

// View renders the field next to the status panel.
func (m Model) View() string {
	m.canvas.Clear()
	m.world.Draw(m.canvas)

	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render("DOTFIELD") + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(st.value.Render(status) + "\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(panelWidth-14), asciigraph.Caption("kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	ptr := m.world.Pointer()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.world.Frame()))
	row("Particles", fmt.Sprintf("%d", len(m.world.Particles())))
	row("Resetting", fmt.Sprintf("%d", m.last.Resetting))
	row("Collisions", fmt.Sprintf("%d", m.last.Collisions))
	pressed := ""
	if ptr.Pressed {
		pressed = " ●"
	}
	row("Pointer", fmt.Sprintf("%+.2f %+.2f%s", ptr.X, ptr.Y, pressed))
	row("Kernel", m.world.Kernel().Name())
	if m.skipped > 0 {
		s.WriteString(st.label.Render("Skipped") + st.warn.Render(fmt.Sprintf("%d", m.skipped)) + "\n")
	}
	s.WriteString("\n" + st.label.Render("Energy") + st.graph.Render(gauge(m.gauge, panelWidth-18)) + "\n")
	s.WriteString(st.label.Render("Reset") + st.graph.Render(sparkline(m.resetting, panelWidth-18)) + "\n")

	s.WriteString(st.help.Render("drag: pull  release: snap back\nSP:Pause R:Reset T:Theme ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.Render(), st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `
  Drag      - pull the field toward the pointer
  Release   - particles return to rest
  Dbl-click - snap back while holding
  Space     - Pause/Resume
  R         - Reset all particles
  T         - Cycle themes
  ?         - Toggle this help
  Q         - Quit
`

// Run starts the terminal front-end and blocks until the user quits.
func Run(w *world.World, fps int, logger *zap.Logger) error {
	m, err := NewModel(w, fps, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}
