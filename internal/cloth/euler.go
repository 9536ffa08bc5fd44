package cloth

// explicitEuler advances position with the previous velocity, then the
// velocity with the accumulated acceleration. Energy grows without
// bound for oscillatory systems; kept for comparison, never a default.
type explicitEuler struct{}

func (explicitEuler) step(w *World, dt float32) {
	damping := w.damping
	w.eachUnpinned(func(_ int, p *Particle) {
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.Vel = p.Vel.Add(p.Acc.Mul(dt)).Mul(damping)
		p.OldPos = p.Pos
		p.Acc = Vec3{}
	})
}

// symplecticEuler updates velocity first and moves the position with
// the new velocity. Same cost as explicit Euler, materially more
// stable at the same step size.
type symplecticEuler struct{}

func (symplecticEuler) step(w *World, dt float32) {
	damping := w.damping
	w.eachUnpinned(func(_ int, p *Particle) {
		p.Vel = p.Vel.Add(p.Acc.Mul(dt)).Mul(damping)
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.OldPos = p.Pos
		p.Acc = Vec3{}
	})
}

// implicitEuler approximates an implicit velocity update by scaling
// the explicit one with 1/(1+dt), unconditionally damping the
// high-frequency stiffness content without a linear solve.
type implicitEuler struct{}

func (implicitEuler) step(w *World, dt float32) {
	factor := 1 / (1 + dt)
	w.eachUnpinned(func(_ int, p *Particle) {
		p.Vel = p.Vel.Add(p.Acc.Mul(dt)).Mul(factor)
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))

		// Verlet compatibility.
		p.OldPos = p.Pos.Sub(p.Vel.Mul(dt))
		p.Acc = Vec3{}
	})
}
