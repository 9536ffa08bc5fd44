package cloth

// solveConstraints projects positions back into the admissible region.
// The single constraint is the floor plane: a particle whose vertical
// coordinate exceeds the threshold is clamped to it, and its previous
// position follows so the next Verlet-family step sees no velocity
// spike. Applying the pass twice is the same as applying it once.
//
// Pinned particles are never touched: a pin placed past the floor
// stays exactly where the host put it.
func (w *World) solveConstraints() {
	floor := w.floorY
	parallelFor(len(w.particles), func(start, end int) {
		for i := start; i < end; i++ {
			p := &w.particles[i]
			if p.IsPinned() {
				continue
			}
			if p.Pos.Y() > floor {
				p.Pos[1] = floor
				p.OldPos[1] = floor
			}
		}
	})
}
