package cloth

import "math"

// BuildCloth replaces all particle, spring and adjacency state with a
// regular w x h grid hanging from its two top corners. Particle (x,y)
// sits at origin + (x*sep, -y*sep, 0) with unit mass; the grid is
// linked with structural springs at rest length sep and both shear
// diagonals at sep*sqrt2. The top corners are pinned, everything else
// is free.
func (w *World) BuildCloth(origin Vec3, width, height int, sep, stiffness, damping float32) {
	w.particles = w.particles[:0]
	w.springs = w.springs[:0]

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			anchor := y == 0 && (x == 0 || x == width-1)

			p := Particle{
				Pos:    origin.Add(Vec3{float32(x) * sep, -float32(y) * sep, 0}),
				Mass:   1,
				PrevDT: DefaultSimDT,
			}
			p.OldPos = p.Pos
			if anchor {
				p.Pinned = 1
			}
			w.particles = append(w.particles, p)
		}
	}

	w.adjacency = make([][]int32, len(w.particles))
	link := func(p1, p2 int, rest float32) {
		w.springs = append(w.springs, Spring{
			P1: int32(p1), P2: int32(p2),
			RestLen: rest, Stiffness: stiffness, Damping: damping,
		})
		si := int32(len(w.springs) - 1)
		w.adjacency[p1] = append(w.adjacency[p1], si)
		w.adjacency[p2] = append(w.adjacency[p2], si)
	}

	shear := sep * float32(math.Sqrt2)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if x > 0 {
				link(i, i-1, sep)
			}
			if y > 0 {
				link(i, i-width, sep)
			}
			if x > 0 && y > 0 {
				link(i, i-width-1, shear)
			}
			if x < width-1 && y > 0 {
				link(i, i-width+1, shear)
			}
		}
	}
}

// AddParticle appends a single free-standing particle and returns its
// index. Mass is clamped to MinMass. The particle starts with zero
// implied and explicit velocity and no incident springs.
func (w *World) AddParticle(pos Vec3, mass float32, pinned bool) int {
	if mass < MinMass {
		mass = MinMass
	}
	p := Particle{Pos: pos, OldPos: pos, Mass: mass, PrevDT: DefaultSimDT}
	if pinned {
		p.Pinned = 1
	}
	w.particles = append(w.particles, p)
	w.adjacency = append(w.adjacency, nil)
	return len(w.particles) - 1
}
