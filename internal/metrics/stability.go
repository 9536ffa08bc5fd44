package metrics

import (
	"math"

	"github.com/san-kum/clothsim/internal/cloth"
)

// MaxDisplacement tracks the farthest any particle has moved from its
// position at the first observation.
type MaxDisplacement struct {
	initial []cloth.Vec3
	max     float64
}

func NewMaxDisplacement() *MaxDisplacement { return &MaxDisplacement{} }

func (m *MaxDisplacement) Name() string { return "max_displacement" }

func (m *MaxDisplacement) Observe(w *cloth.World, t float64) {
	particles := w.Particles()
	if m.initial == nil {
		m.initial = make([]cloth.Vec3, len(particles))
		for i := range particles {
			m.initial[i] = particles[i].Pos
		}
		return
	}
	if len(m.initial) != len(particles) {
		return // topology rebuilt mid-run
	}
	for i := range particles {
		d := float64(particles[i].Pos.Sub(m.initial[i]).Len())
		m.max = math.Max(m.max, d)
	}
}

func (m *MaxDisplacement) Value() float64 { return m.max }

func (m *MaxDisplacement) Reset() {
	m.initial = nil
	m.max = 0
}

// Stability reports the fraction of observations with every particle
// finite and below a positional threshold. 1.0 means the run never
// diverged; explicit solvers pushed past their stable step size show
// up here.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(w *cloth.World, t float64) {
	s.samples++
	for i := range w.Particles() {
		p := &w.Particles()[i]
		for c := 0; c < 3; c++ {
			v := float64(p.Pos[c])
			if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > s.threshold {
				s.violations++
				return
			}
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
