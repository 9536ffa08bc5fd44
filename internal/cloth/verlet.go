package cloth

// stormerVerlet integrates positions only: the damped delta between
// the current and previous position stands in for velocity. The
// explicit velocity is recomputed as a finite difference so the
// spring solver and hosts can still read one.
type stormerVerlet struct{}

func (stormerVerlet) step(w *World, dt float32) {
	dtSq := dt * dt
	damping := w.damping
	w.eachUnpinned(func(_ int, p *Particle) {
		temp := p.Pos
		velVec := p.Pos.Sub(p.OldPos).Mul(damping)

		p.Pos = p.Pos.Add(velVec).Add(p.Acc.Mul(dtSq))
		p.OldPos = temp

		p.Vel = p.Pos.Sub(p.OldPos).Mul(1 / dt)
		p.Acc = Vec3{}
	})
}

// timeCorrectedVerlet generalizes Verlet to a variable step: the
// implied-velocity term is scaled by dt/dtPrev and the acceleration
// term becomes dt*(dt+dtPrev)/2. When the previous delta is unknown
// or effectively zero (first tick), the current delta stands in.
type timeCorrectedVerlet struct{}

func (timeCorrectedVerlet) step(w *World, dt float32) {
	damping := w.damping
	w.eachUnpinned(func(_ int, p *Particle) {
		dtPrev := p.PrevDT
		if dtPrev < 1e-5 {
			dtPrev = dt
		}

		expansion := p.Pos.Sub(p.OldPos).Mul(dt / dtPrev).Mul(damping)
		newPos := p.Pos.Add(expansion).Add(p.Acc.Mul(dt * (dt + dtPrev) * 0.5))

		p.OldPos = p.Pos
		p.Pos = newPos

		p.Vel = p.Pos.Sub(p.OldPos).Mul(1 / dt)
		p.PrevDT = dt
		p.Acc = Vec3{}
	})
}

// velocityVerletPass1 is the kick-drift half of velocity Verlet:
// velocity advances by a half-step, position by a full step with the
// half-updated velocity. Forces must be re-evaluated at the new
// position before pass 2, which is why the scheme cannot run as a
// single integrator call.
func (w *World) velocityVerletPass1(dt float32) {
	w.eachUnpinned(func(_ int, p *Particle) {
		p.Vel = p.Vel.Add(p.Acc.Mul(dt * 0.5))
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.OldPos = p.Pos
	})
}

// velocityVerletPass2 completes the velocity half-step with the
// freshly recomputed acceleration, applies damping, and retires the
// accumulator.
func (w *World) velocityVerletPass2(dt float32) {
	damping := w.damping
	w.eachUnpinned(func(_ int, p *Particle) {
		p.Vel = p.Vel.Add(p.Acc.Mul(dt * 0.5)).Mul(damping)
		p.Acc = Vec3{}
	})
}
