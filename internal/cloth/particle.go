package cloth

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is the vector type used throughout the engine.
type Vec3 = mgl32.Vec3

// Particle is a point mass. The field order and sizes are a contract:
// renderers read the particle array as 16 consecutive float32 words
// (64 bytes) per particle via [World.ParticleBuffer]:
//
//	word  0..2   Pos
//	word  3..5   OldPos
//	word  6..8   Acc
//	word  9..11  Vel
//	word  12     Mass
//	word  13     Pinned (0 or 1)
//	word  14     PrevDT
//	word  15     Pad
//
// OldPos carries the implied velocity for the Verlet-family solvers;
// Vel is maintained explicitly for the velocity-based ones. Acc is a
// per-sub-step force accumulator, reset by the integrators. PrevDT is
// the previous sub-step delta used by time-corrected Verlet.
type Particle struct {
	Pos    Vec3
	OldPos Vec3
	Acc    Vec3
	Vel    Vec3
	Mass   float32
	Pinned float32
	PrevDT float32
	Pad    float32
}

// IsPinned reports whether the particle is excluded from integration.
func (p *Particle) IsPinned() bool { return p.Pinned > 0.5 }

// Spring is a damped elastic link between two particles. Endpoint
// indices are stable for the lifetime of a topology; rebuilding the
// cloth replaces all springs together with the particle array.
type Spring struct {
	P1, P2    int32
	RestLen   float32
	Stiffness float32
	Damping   float32
}
