package cloth

import "fmt"

// Solver selects the integration scheme used by a [World]. The numeric
// values are part of the external contract (hosts persist and pass
// them across the boundary) and must not be reordered.
type Solver int

const (
	SolverExplicitEuler Solver = iota
	SolverSymplecticEuler
	SolverVerlet
	SolverTimeCorrectedVerlet
	SolverRK2
	SolverRK4
	SolverImplicitEuler
	SolverVelocityVerlet

	numSolvers
)

var solverNames = [numSolvers]string{
	SolverExplicitEuler:       "explicit-euler",
	SolverSymplecticEuler:     "symplectic-euler",
	SolverVerlet:              "verlet",
	SolverTimeCorrectedVerlet: "tc-verlet",
	SolverRK2:                 "rk2",
	SolverRK4:                 "rk4",
	SolverImplicitEuler:       "implicit-euler",
	SolverVelocityVerlet:      "velocity-verlet",
}

func (s Solver) String() string {
	if s < 0 || s >= numSolvers {
		return fmt.Sprintf("solver(%d)", int(s))
	}
	return solverNames[s]
}

// ParseSolver resolves a solver name as used in configs and on the CLI.
func ParseSolver(name string) (Solver, error) {
	for s, n := range solverNames {
		if n == name {
			return Solver(s), nil
		}
	}
	return 0, fmt.Errorf("unknown solver: %s (available: %v)", name, solverNames)
}

// Solvers returns all selectable solvers in contract order.
func Solvers() []Solver {
	out := make([]Solver, numSolvers)
	for i := range out {
		out[i] = Solver(i)
	}
	return out
}

// impliedVelocity reports whether the solver trusts positions rather
// than stored velocities as ground truth. The spring solver derives
// relative velocity accordingly.
func (s Solver) impliedVelocity() bool {
	return s == SolverVerlet || s == SolverTimeCorrectedVerlet
}

type integrator interface {
	step(w *World, dt float32)
}

// Velocity Verlet is absent here: its two passes straddle a force
// re-evaluation and are sequenced directly by World.step.
var integrators = map[Solver]integrator{
	SolverExplicitEuler:       explicitEuler{},
	SolverSymplecticEuler:     symplecticEuler{},
	SolverVerlet:              stormerVerlet{},
	SolverTimeCorrectedVerlet: timeCorrectedVerlet{},
	SolverRK2:                 rk2{},
	SolverRK4:                 rk4{},
	SolverImplicitEuler:       implicitEuler{},
}
