package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/emwave/fdtdlab/internal/fdtd"
	"github.com/emwave/fdtdlab/internal/probe"
)

const (
	fieldCols = 96
	fieldRows = 36
	plotWidth = 60
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	unstableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

// TickMsg drives the animation clock.
type TickMsg time.Time

// Model animates a grid in the terminal: a batch of steps per frame, field
// view on top, probe trace below.
type Model struct {
	grid          *fdtd.Grid
	probe         *probe.Probe
	view          FieldView
	stepsPerFrame int
	fps           int
	running       bool
	showProbe     bool
	trace         []float64
}

// NewModel builds the live view. stepsPerFrame batches the update between
// frames; the probe may be nil.
func NewModel(g *fdtd.Grid, p *probe.Probe, stepsPerFrame, fps int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 6
	}
	if fps < 1 {
		fps = 30
	}
	return Model{
		grid:          g,
		probe:         p,
		view:          FieldView{Cols: fieldCols, Rows: fieldRows, PECAt: g.IsPEC},
		stepsPerFrame: stepsPerFrame,
		fps:           fps,
		running:       true,
		showProbe:     p != nil,
		trace:         make([]float64, 0, 256),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.grid.Reset()
			if m.probe != nil {
				m.probe.Clear()
			}
			m.trace = m.trace[:0]
		case "p":
			m.showProbe = m.probe != nil && !m.showProbe
		}
		return m, nil
	case TickMsg:
		if m.running && m.grid.IsStable() {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.grid.Step()
				if m.probe != nil {
					m.probe.Record(m.grid.Ez(), m.grid.Width())
				}
			}
			if m.probe != nil {
				m.trace = append(m.trace, float64(m.probe.LastValue()))
				if len(m.trace) > plotWidth*2 {
					m.trace = m.trace[len(m.trace)-plotWidth*2:]
				}
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	s := headerStyle.Render("fdtdlab") + "\n\n"
	s += m.view.Render(m.grid.Ez(), m.grid.Width(), m.grid.Height())

	s += "\n"
	s += labelStyle.Render("step") + valueStyle.Render(fmt.Sprintf("%d", m.grid.TimeStep())) + "\n"
	energy := m.grid.TotalEnergy()
	s += labelStyle.Render("energy") + valueStyle.Render(fmt.Sprintf("%.4g", energy)) + "\n"
	if !m.grid.IsStable() {
		s += unstableStyle.Render("UNSTABLE — press r to reset") + "\n"
	} else if !m.running {
		s += valueStyle.Render("paused") + "\n"
	}

	if m.showProbe && len(m.trace) >= 2 {
		s += "\n" + asciigraph.Plot(m.trace,
			asciigraph.Height(8),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("probe Ez"),
		) + "\n"
	}

	s += helpStyle.Render("space pause · r reset · p probe · q quit")
	return s
}
