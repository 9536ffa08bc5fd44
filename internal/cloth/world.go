package cloth

import "unsafe"

// Engine defaults and clamps. Mass, sub-step count and timestep are
// clamped rather than rejected: the engine has no failing operations.
const (
	MinMass  float32 = 0.1
	MinSimDT float32 = 1e-5

	// MaxTickDT caps a single tick so one slow host frame cannot
	// inject a destabilizing step.
	MaxTickDT float32 = 0.05

	DefaultSimDT    float32 = 1.0 / 60.0
	DefaultDamping  float32 = 0.99
	DefaultFloorY   float32 = 900.0
	DefaultSubSteps         = 8

	// Springs shorter than this contribute no force for the
	// sub-step (degenerate direction).
	lengthEpsilon float32 = 1e-4
)

// World owns the particle and spring arrays and the simulation
// parameters. Worlds are independent; nothing is shared between
// instances. A World is not safe for concurrent use: Advance must not
// run concurrently with itself or with the setters.
type World struct {
	particles []Particle
	springs   []Spring
	adjacency [][]int32

	// Committed positions and velocities captured at the start of a
	// multi-stage step; non-empty only while such a step is running.
	stagePos []Vec3
	stageVel []Vec3

	gravity    Vec3
	wind       Vec3
	damping    float32
	subSteps   int
	solver     Solver
	simDT      float32
	singleTick bool
	floorY     float32
}

// NewWorld returns an empty world with the stock cloth defaults:
// gravity -9.81 on Y, 0.99 velocity damping, 8 sub-steps, Verlet,
// a 1/60 s tick.
func NewWorld() *World {
	return &World{
		particles: make([]Particle, 0, 1024),
		springs:   make([]Spring, 0, 4096),
		adjacency: make([][]int32, 0, 1024),
		gravity:   Vec3{0, -9.81, 0},
		damping:   DefaultDamping,
		subSteps:  DefaultSubSteps,
		solver:    SolverVerlet,
		simDT:     DefaultSimDT,
		floorY:    DefaultFloorY,
	}
}

// Advance runs the simulation for one host frame. In fixed-tick mode
// the frame delta is divided into whole ticks of the configured
// simulation delta (at least one); in single-tick mode exactly one
// tick runs and frameDT is ignored.
func (w *World) Advance(frameDT float32) {
	if w.singleTick {
		w.step(w.simDT)
		return
	}
	ticks := int(frameDT / w.simDT)
	if ticks < 1 {
		ticks = 1
	}
	for i := 0; i < ticks; i++ {
		w.step(w.simDT)
	}
}

// step advances one tick, subdivided into sub-steps to keep the
// explicit spring solve below its stability threshold.
func (w *World) step(dt float32) {
	if dt > MaxTickDT {
		dt = MaxTickDT
	}
	subDT := dt / float32(w.subSteps)

	for i := 0; i < w.subSteps; i++ {
		if w.solver == SolverVelocityVerlet {
			// Kick-drift, then re-evaluate forces at the new
			// position before completing the velocity half-step.
			w.velocityVerletPass1(subDT)
			w.solveConstraints()
			w.applyForces()
			w.solveSprings(subDT)
			w.velocityVerletPass2(subDT)
			continue
		}

		w.applyForces()
		w.solveSprings(subDT)
		integrators[w.solver].step(w, subDT)

		// The RK solvers synthesize OldPos from the committed
		// velocity; clamping between stages would re-introduce
		// the velocity spike the sync avoids.
		if w.solver != SolverRK2 && w.solver != SolverRK4 {
			w.solveConstraints()
		}
	}
}

// SetGravity replaces the gravity vector for subsequent steps.
func (w *World) SetGravity(g Vec3) { w.gravity = g }

// SetWind replaces the wind vector for subsequent steps.
func (w *World) SetWind(v Vec3) { w.wind = v }

// SetDamping sets the global multiplicative velocity damping factor.
func (w *World) SetDamping(d float32) { w.damping = d }

// SetSubSteps sets the number of sub-steps per tick, at least 1.
func (w *World) SetSubSteps(n int) {
	if n < 1 {
		n = 1
	}
	w.subSteps = n
}

// SetSolver selects the integration scheme. Out-of-range values fall
// back to Verlet. Switching solvers between frames is safe: every
// scheme derives its update purely from the stored particle state.
func (w *World) SetSolver(s Solver) {
	if s < 0 || s >= numSolvers {
		s = SolverVerlet
	}
	w.solver = s
}

// SetSimDT sets the fixed simulation delta, clamped to a positive
// minimum.
func (w *World) SetSimDT(dt float32) {
	if dt < MinSimDT {
		dt = MinSimDT
	}
	w.simDT = dt
}

// SetSingleTick switches Advance between single-tick mode (the host
// already paces calls at a fixed rate) and fixed-tick mode.
func (w *World) SetSingleTick(v bool) { w.singleTick = v }

// SetFloor sets the floor threshold on the vertical coordinate.
func (w *World) SetFloor(y float32) { w.floorY = y }

// SetMass overrides the mass of every particle, clamped to MinMass.
func (w *World) SetMass(m float32) {
	if m < MinMass {
		m = MinMass
	}
	for i := range w.particles {
		w.particles[i].Mass = m
	}
}

// SetSpringParams overrides stiffness and damping on every spring.
func (w *World) SetSpringParams(stiffness, damping float32) {
	for i := range w.springs {
		w.springs[i].Stiffness = stiffness
		w.springs[i].Damping = damping
	}
}

// Pinned reports the pinned state of particle i; out-of-range indices
// read as false.
func (w *World) Pinned(i int) bool {
	if i < 0 || i >= len(w.particles) {
		return false
	}
	return w.particles[i].IsPinned()
}

// SetPinned pins or releases particle i and resyncs its previous
// position, zeroing the implied velocity. Out-of-range indices are
// ignored.
func (w *World) SetPinned(i int, pin bool) {
	if i < 0 || i >= len(w.particles) {
		return
	}
	p := &w.particles[i]
	if pin {
		p.Pinned = 1
	} else {
		p.Pinned = 0
	}
	p.OldPos = p.Pos
}

// SetParticlePos teleports particle i, resyncing its previous position
// so the Verlet family sees zero implied velocity on the next step.
// Works on pinned particles too. Out-of-range indices are ignored.
func (w *World) SetParticlePos(i int, pos Vec3) {
	if i < 0 || i >= len(w.particles) {
		return
	}
	p := &w.particles[i]
	p.Pos = pos
	p.OldPos = pos
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() Vec3 { return w.gravity }

// Wind returns the current wind vector.
func (w *World) Wind() Vec3 { return w.wind }

// Damping returns the global velocity damping factor.
func (w *World) Damping() float32 { return w.damping }

// SubSteps returns the sub-step count per tick.
func (w *World) SubSteps() int { return w.subSteps }

// Solver returns the active integration scheme.
func (w *World) Solver() Solver { return w.solver }

// SimDT returns the fixed simulation delta.
func (w *World) SimDT() float32 { return w.simDT }

// Floor returns the floor threshold.
func (w *World) Floor() float32 { return w.floorY }

// Particles returns the live particle array. The backing storage is
// contiguous and stays in place across a single topology's lifetime;
// BuildCloth and AddParticle may re-seat it.
func (w *World) Particles() []Particle { return w.particles }

// Springs returns the live spring array.
func (w *World) Springs() []Spring { return w.springs }

// ParticleBuffer exposes the raw bytes of the particle array for
// zero-copy rendering: len(Particles()) elements of 64 bytes each,
// laid out as documented on [Particle]. The view aliases live state
// and is invalidated by BuildCloth and AddParticle.
func (w *World) ParticleBuffer() []byte {
	if len(w.particles) == 0 {
		return nil
	}
	n := len(w.particles) * int(unsafe.Sizeof(Particle{}))
	return unsafe.Slice((*byte)(unsafe.Pointer(&w.particles[0])), n)
}

// SpringBuffer exposes the raw bytes of the spring array: 20 bytes per
// spring (two int32 endpoints, then rest length, stiffness, damping).
func (w *World) SpringBuffer() []byte {
	if len(w.springs) == 0 {
		return nil
	}
	n := len(w.springs) * int(unsafe.Sizeof(Spring{}))
	return unsafe.Slice((*byte)(unsafe.Pointer(&w.springs[0])), n)
}
