package cloth

// applyForces accumulates the uniform external forces (gravity and
// wind) into every unpinned particle. Pure accumulation: the
// integrator resets the accumulator at the end of the sub-step.
func (w *World) applyForces() {
	ext := w.gravity.Add(w.wind)
	for i := range w.particles {
		p := &w.particles[i]
		if p.IsPinned() {
			continue
		}
		p.Acc = p.Acc.Add(ext)
	}
}

// solveSprings accumulates Hooke plus projected damping forces into
// both endpoints of every spring. Near-coincident endpoints contribute
// nothing for the sub-step. Forces are not clamped: instability under
// stiff springs and large sub-steps is a property of the method, not
// something the solver corrects.
//
// Two springs sharing an endpoint write the same accumulator, so this
// pass runs serialized; the per-particle integrator loops are the
// parallel ones.
func (w *World) solveSprings(dt float32) {
	implied := w.solver.impliedVelocity() && dt > 0

	for si := range w.springs {
		s := &w.springs[si]
		p1 := &w.particles[s.P1]
		p2 := &w.particles[s.P2]

		delta := p1.Pos.Sub(p2.Pos)
		length := delta.Len()
		if length < lengthEpsilon {
			continue
		}
		dir := delta.Mul(1 / length)

		springF := (length - s.RestLen) * s.Stiffness

		// Position-based solvers trust the positional delta as
		// ground truth; the velocity-based ones trust Vel.
		var relVel Vec3
		if implied {
			relVel = p1.Pos.Sub(p1.OldPos).Sub(p2.Pos.Sub(p2.OldPos)).Mul(1 / dt)
		} else {
			relVel = p1.Vel.Sub(p2.Vel)
		}
		dampF := relVel.Dot(dir) * s.Damping

		force := dir.Mul(springF + dampF)

		if !p1.IsPinned() {
			p1.Acc = p1.Acc.Sub(force.Mul(1 / p1.Mass))
		}
		if !p2.IsPinned() {
			p2.Acc = p2.Acc.Add(force.Mul(1 / p2.Mass))
		}
	}
}

// snapshotState captures the committed position and velocity of every
// particle. The RK solvers take a snapshot before their stage loop:
// stage evaluations read neighbors from the snapshot while the
// data-parallel loop rewrites the live array, so no goroutine ever
// reads a particle another one is writing.
func (w *World) snapshotState() {
	n := len(w.particles)
	if cap(w.stagePos) < n {
		w.stagePos = make([]Vec3, n)
		w.stageVel = make([]Vec3, n)
	}
	w.stagePos = w.stagePos[:n]
	w.stageVel = w.stageVel[:n]
	for i := range w.particles {
		w.stagePos[i] = w.particles[i].Pos
		w.stageVel[i] = w.particles[i].Vel
	}
}

// releaseSnapshot retires the snapshot so evaluations outside a
// multi-stage step read live state again. The backing arrays are kept
// for reuse.
func (w *World) releaseSnapshot() {
	w.stagePos = w.stagePos[:0]
	w.stageVel = w.stageVel[:0]
}

// evalAcceleration computes the acceleration particle idx would feel
// at a hypothetical position and velocity, without touching committed
// state. The adjacency index supplies the incident springs; the other
// endpoint is read from the stage snapshot when one is active, from
// the live array otherwise. This is what lets the RK solvers evaluate
// stages at interpolated states.
func (w *World) evalAcceleration(idx int, pos, vel Vec3) Vec3 {
	total := w.gravity.Add(w.wind).Sub(vel.Mul(w.damping))
	snapshot := len(w.stagePos) == len(w.particles)

	for _, si := range w.adjacency[idx] {
		s := &w.springs[si]
		other := int(s.P2)
		if other == idx {
			other = int(s.P1)
		}

		var oPos, oVel Vec3
		if snapshot {
			oPos, oVel = w.stagePos[other], w.stageVel[other]
		} else {
			o := &w.particles[other]
			oPos, oVel = o.Pos, o.Vel
		}

		delta := pos.Sub(oPos)
		dist := delta.Len()
		if dist < lengthEpsilon {
			continue
		}
		dir := delta.Mul(1 / dist)

		springF := (dist - s.RestLen) * s.Stiffness
		dampF := vel.Sub(oVel).Dot(dir) * s.Damping

		total = total.Sub(dir.Mul(springF + dampF))
	}

	return total.Mul(1 / w.particles[idx].Mass)
}
