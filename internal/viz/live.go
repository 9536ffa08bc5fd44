// Package viz renders a running cloth world in the terminal: a
// braille canvas of the spring mesh plus live stats and an energy
// sparkline.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
)

const (
	canvasWidth     = 72
	canvasHeight    = 26
	historyCapacity = 240
)

type TickMsg time.Time

// Model drives a cloth world from a bubbletea event loop.
type Model struct {
	cfg    *config.Config
	world  *cloth.World
	canvas *Canvas

	running  bool
	showHelp bool
	windOn   bool
	t        float64
	fps      int

	energyHistory []float64
}

func NewModel(cfg *config.Config, fps int) (Model, error) {
	world, err := cfg.Build()
	if err != nil {
		return Model{}, err
	}
	world.SetSingleTick(true)

	return Model{
		cfg:           cfg,
		world:         world,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		fps:           fps,
		windOn:        cfg.Physics.Wind != [3]float32{},
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
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
		case "s":
			m.cycleSolver(1)
		case "S":
			m.cycleSolver(-1)
		case "w":
			m.toggleWind()
		case "up", "k":
			m.world.SetSubSteps(m.world.SubSteps() + 1)
		case "down", "j":
			m.world.SetSubSteps(m.world.SubSteps() - 1)
		case "g":
			m.world.SetGravity(m.world.Gravity().Mul(-1))
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.world.Advance(m.world.SimDT())
	m.t += float64(m.world.SimDT())

	m.energyHistory = append(m.energyHistory, metrics.Kinetic(m.world))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	world, err := m.cfg.Build()
	if err != nil {
		return
	}
	solver := m.world.Solver()
	world.SetSingleTick(true)
	world.SetSolver(solver)
	if !m.windOn {
		world.SetWind(cloth.Vec3{})
	}
	m.world = world
	m.t = 0
	m.energyHistory = m.energyHistory[:0]
}

func (m *Model) cycleSolver(dir int) {
	n := len(cloth.Solvers())
	next := (int(m.world.Solver()) + dir + n) % n
	m.world.SetSolver(cloth.Solver(next))
}

func (m *Model) toggleWind() {
	m.windOn = !m.windOn
	if m.windOn {
		wind := cloth.Vec3(m.cfg.Physics.Wind)
		if wind == (cloth.Vec3{}) {
			wind = cloth.Vec3{4, 0, 1}
		}
		m.world.SetWind(wind)
	} else {
		m.world.SetWind(cloth.Vec3{})
	}
}

// draw projects the spring mesh onto the canvas, X right and Y up.
func (m *Model) draw() {
	m.canvas.Clear()

	particles := m.world.Particles()
	if len(particles) == 0 {
		return
	}

	minX, maxX := particles[0].Pos.X(), particles[0].Pos.X()
	minY, maxY := particles[0].Pos.Y(), particles[0].Pos.Y()
	for i := range particles {
		p := particles[i].Pos
		minX, maxX = min(minX, p.X()), max(maxX, p.X())
		minY, maxY = min(minY, p.Y()), max(maxY, p.Y())
	}

	// Uniform scale fitting the mesh into the sub-pixel grid.
	pw := float32(canvasWidth*2 - 4)
	ph := float32(canvasHeight*4 - 4)
	scale := float32(1)
	if spanX := maxX - minX; spanX > 0 {
		scale = pw / spanX
	}
	if spanY := maxY - minY; spanY > 0 && ph/spanY < scale {
		scale = ph / spanY
	}

	project := func(v cloth.Vec3) (int, int) {
		x := int((v.X()-minX)*scale) + 2
		y := int((maxY-v.Y())*scale) + 2
		return x, y
	}

	for i := range m.world.Springs() {
		s := &m.world.Springs()[i]
		x0, y0 := project(particles[s.P1].Pos)
		x1, y1 := project(particles[s.P2].Pos)
		m.canvas.DrawLine(x0, y0, x1, y1)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	wind := "off"
	if m.windOn {
		wind = "on"
	}

	var stats strings.Builder
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	stats.WriteString(activeStyle.Render(m.world.Solver().String()) + "\n\n")
	row("status", status)
	row("time", fmt.Sprintf("%.2fs", m.t))
	row("particles", fmt.Sprintf("%d", len(m.world.Particles())))
	row("springs", fmt.Sprintf("%d", len(m.world.Springs())))
	row("sub-steps", fmt.Sprintf("%d", m.world.SubSteps()))
	row("dt", fmt.Sprintf("%.4fs", m.world.SimDT()))
	row("wind", wind)
	row("kinetic", fmt.Sprintf("%.3f", metrics.Kinetic(m.world)))

	if len(m.energyHistory) > 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.Caption("kinetic energy"),
		)
		stats.WriteString(graphStyle.Render(graph))
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render("CLOTHSIM") + "\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(stats.String()),
	))

	if m.showHelp {
		s.WriteString(helpStyle.Render(
			"space pause · r reset · s/S solver · w wind · g flip gravity · j/k sub-steps · q quit"))
	} else {
		s.WriteString(helpStyle.Render("? help · q quit"))
	}
	return s.String()
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config, fps int) error {
	if fps < 1 {
		fps = 30
	}
	m, err := NewModel(cfg, fps)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
