package cloth

// rk2 is the midpoint method: evaluate acceleration at the current
// state, take a half-step, re-evaluate there, and commit position with
// the midpoint velocity and velocity with the midpoint acceleration.
// Stage evaluations go through evalAcceleration against the state
// snapshot, so no hypothetical state ever touches the committed
// particle array and the parallel loop's own writes stay invisible to
// sibling evaluations.
type rk2 struct{}

func (rk2) step(w *World, dt float32) {
	w.snapshotState()
	w.eachUnpinned(func(i int, p *Particle) {
		x0 := p.Pos
		v0 := p.Vel

		a1 := w.evalAcceleration(i, x0, v0)

		xMid := x0.Add(v0.Mul(dt * 0.5))
		vMid := v0.Add(a1.Mul(dt * 0.5))

		a2 := w.evalAcceleration(i, xMid, vMid)

		p.Pos = x0.Add(vMid.Mul(dt))
		p.Vel = v0.Add(a2.Mul(dt))

		// Verlet compatibility.
		p.OldPos = p.Pos.Sub(p.Vel.Mul(dt))
		p.Acc = Vec3{}
	})
	w.releaseSnapshot()
}

// rk4 evaluates four stages (t, t+dt/2 twice, t+dt) and combines them
// with weights 1,2,2,1 over 6 for both position and velocity.
type rk4 struct{}

func (rk4) step(w *World, dt float32) {
	w.snapshotState()
	w.eachUnpinned(func(i int, p *Particle) {
		x := p.Pos
		v := p.Vel

		a1 := w.evalAcceleration(i, x, v)
		v1 := v

		x2 := x.Add(v1.Mul(dt * 0.5))
		v2 := v.Add(a1.Mul(dt * 0.5))
		a2 := w.evalAcceleration(i, x2, v2)

		x3 := x.Add(v2.Mul(dt * 0.5))
		v3 := v.Add(a2.Mul(dt * 0.5))
		a3 := w.evalAcceleration(i, x3, v3)

		x4 := x.Add(v3.Mul(dt))
		v4 := v.Add(a3.Mul(dt))
		a4 := w.evalAcceleration(i, x4, v4)

		dt6 := dt / 6

		p.Pos = x.Add(v1.Add(v2.Mul(2)).Add(v3.Mul(2)).Add(v4).Mul(dt6))
		p.Vel = v.Add(a1.Add(a2.Mul(2)).Add(a3.Mul(2)).Add(a4).Mul(dt6))

		p.OldPos = p.Pos.Sub(p.Vel.Mul(dt))
		p.Acc = Vec3{}
	})
	w.releaseSnapshot()
}
