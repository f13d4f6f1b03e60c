// Package viz renders a live terminal view of a friction-compensated
// joint using the Bubble Tea framework. Position, velocity, and the
// friction torque removed per step are plotted as scrolling charts.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fricsim/internal/dynamo"
	"github.com/san-kum/fricsim/internal/friction"
)

const (
	historyCapacity = 600
	chartWidth      = 70
	chartHeight     = 6
	frameRate       = 30
)

type TickMsg time.Time

// Model holds the simulation loop state and the plot buffers.
type Model struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	controller dynamo.Controller
	fric       *friction.State

	state     dynamo.State
	initState dynamo.State
	t, dt     float64

	running     bool
	fricEnabled bool
	modelName   string

	posHistory  []float64
	velHistory  []float64
	fricHistory []float64
	lastFric    float64
}

func NewModel(dyn dynamo.System, integ dynamo.Integrator, ctrl dynamo.Controller, fric *friction.State, initState []float64, dt float64, modelName string) Model {
	x0 := dynamo.State(initState).Clone()
	return Model{
		dyn:         dyn,
		integrator:  integ,
		controller:  ctrl,
		fric:        fric,
		state:       x0.Clone(),
		initState:   x0,
		dt:          dt,
		running:     true,
		fricEnabled: fric != nil,
		modelName:   modelName,
		posHistory:  make([]float64, 0, historyCapacity),
		velHistory:  make([]float64, 0, historyCapacity),
		fricHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "f":
			if m.fric != nil {
				m.fricEnabled = !m.fricEnabled
				m.fric.Reset()
			}
		}
	case TickMsg:
		if m.running {
			// advance in real time regardless of frame rate
			steps := int(1.0 / (frameRate * m.dt))
			if steps < 1 {
				steps = 1
			}
			for i := 0; i < steps; i++ {
				m.step()
			}
			m.record()
		}
		return m, tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) step() {
	u := m.controller.Compute(m.state, m.t)

	m.lastFric = 0
	if m.fricEnabled && m.fric != nil && len(u) > 0 {
		corrected, err := m.fric.Step(m.state[0], u[0])
		if err == nil {
			m.lastFric = u[0] - corrected
			u = append(dynamo.Control{corrected}, u[1:]...)
		}
	}

	m.state = m.integrator.Step(m.dyn, m.state, u, m.t, m.dt)
	m.t += m.dt
}

func (m *Model) record() {
	m.posHistory = push(m.posHistory, m.state[0])
	if len(m.state) > 1 {
		m.velHistory = push(m.velHistory, m.state[1])
	}
	m.fricHistory = push(m.fricHistory, m.lastFric)
}

func push(buf []float64, v float64) []float64 {
	buf = append(buf, v)
	if len(buf) > historyCapacity {
		buf = buf[1:]
	}
	return buf
}

func (m *Model) reset() {
	m.t = 0
	m.state = m.initState.Clone()
	m.posHistory = m.posHistory[:0]
	m.velHistory = m.velHistory[:0]
	m.fricHistory = m.fricHistory[:0]
	m.lastFric = 0
	if m.fric != nil {
		m.fric.Reset()
	}
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render(strings.ToUpper(m.modelName)) + "\n")
	s.WriteString(m.status() + "\n")

	if len(m.posHistory) > 1 {
		s.WriteString(graphStyle.Render(plot(m.posHistory, "Position [rad]")) + "\n")
	}
	if len(m.velHistory) > 1 {
		s.WriteString(graphStyle.Render(plot(m.velHistory, "Velocity [rad/s]")) + "\n")
	}
	if m.fric != nil && len(m.fricHistory) > 1 {
		s.WriteString(graphStyle.Render(plot(m.fricHistory, "Friction torque [Nm]")) + "\n")
	}

	s.WriteString(helpStyle.Render("SP:Pause  R:Reset  F:Friction on/off  Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, s.String(), statsStyle.Render(m.stats()))
}

func (m Model) status() string {
	if !m.running {
		return pausedStyle.Render("PAUSED")
	}
	if m.fric == nil || !m.fricEnabled {
		return valueStyle.Render("RUNNING (friction off)")
	}
	vel := 0.0
	if len(m.state) > 1 {
		vel = m.state[1]
	}
	if math.Abs(vel) < m.fric.Params().Wbrk {
		return stuckStyle.Render("STUCK")
	}
	return slidingStyle.Render("SLIDING")
}

func (m Model) stats() string {
	var s strings.Builder
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(fmt.Sprintf("%.4f", m.state[0])) + "\n")
	if len(m.state) > 1 {
		s.WriteString(labelStyle.Render("Velocity") + valueStyle.Render(fmt.Sprintf("%.4f", m.state[1])) + "\n")
	}
	if m.fric != nil {
		s.WriteString(labelStyle.Render("Friction") + valueStyle.Render(fmt.Sprintf("%.4f", m.lastFric)) + "\n")
		p := m.fric.Params()
		s.WriteString("\n")
		s.WriteString(labelStyle.Render("Ts") + valueStyle.Render(fmt.Sprintf("%.2f", p.Ts)) + "\n")
		s.WriteString(labelStyle.Render("Tc") + valueStyle.Render(fmt.Sprintf("%.2f", p.Tc)) + "\n")
		s.WriteString(labelStyle.Render("Tv") + valueStyle.Render(fmt.Sprintf("%.2f", p.Tv)) + "\n")
		s.WriteString(labelStyle.Render("Wbrk") + valueStyle.Render(fmt.Sprintf("%.3f", p.Wbrk)) + "\n")
	}
	return s.String()
}

func plot(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Caption(caption),
	)
}

// Run starts the live view and blocks until the user quits.
func Run(m Model) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	return err
}
