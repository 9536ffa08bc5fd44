package cloth

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("World", func() {
	var w *World

	BeforeEach(func() {
		w = NewWorld()
	})

	Describe("parameter clamping", func() {
		It("raises sub-step count to one", func() {
			w.SetSubSteps(0)
			Expect(w.SubSteps()).To(Equal(1))
			w.SetSubSteps(-3)
			Expect(w.SubSteps()).To(Equal(1))
		})

		It("raises the simulation delta to its minimum", func() {
			w.SetSimDT(0)
			Expect(w.SimDT()).To(Equal(MinSimDT))
			w.SetSimDT(-1)
			Expect(w.SimDT()).To(Equal(MinSimDT))
		})

		It("raises a uniform mass override to the minimum", func() {
			w.BuildCloth(Vec3{}, 2, 2, 1, 500, 5)
			w.SetMass(0)
			for _, p := range w.Particles() {
				Expect(p.Mass).To(Equal(MinMass))
			}
		})

		It("falls back to Verlet for out-of-range solver values", func() {
			w.SetSolver(Solver(99))
			Expect(w.Solver()).To(Equal(SolverVerlet))
		})
	})

	Describe("index-based access", func() {
		BeforeEach(func() {
			w.BuildCloth(Vec3{}, 3, 3, 1, 500, 5)
		})

		It("ignores out-of-range indices", func() {
			Expect(w.Pinned(-1)).To(BeFalse())
			Expect(w.Pinned(len(w.Particles()))).To(BeFalse())
			w.SetPinned(-1, true)
			w.SetParticlePos(999, Vec3{1, 1, 1})
			// No panic, no state change.
			Expect(len(w.Particles())).To(Equal(9))
		})

		It("resyncs the previous position when pinning", func() {
			p := &w.Particles()[4]
			p.OldPos = p.Pos.Add(Vec3{0.5, 0, 0})
			w.SetPinned(4, true)
			Expect(w.Particles()[4].OldPos).To(Equal(w.Particles()[4].Pos))
		})
	})

	Describe("spring parameter override", func() {
		It("applies to every spring", func() {
			w.BuildCloth(Vec3{}, 3, 3, 1, 500, 5)
			w.SetSpringParams(42, 7)
			for _, s := range w.Springs() {
				Expect(s.Stiffness).To(Equal(float32(42)))
				Expect(s.Damping).To(Equal(float32(7)))
			}
		})
	})

	Describe("floor constraint", func() {
		It("clamps and resyncs the previous position", func() {
			w.SetFloor(10)
			i := w.AddParticle(Vec3{0, 20, 0}, 1, false)
			w.solveConstraints()
			Expect(w.Particles()[i].Pos.Y()).To(Equal(float32(10)))
			Expect(w.Particles()[i].OldPos.Y()).To(Equal(float32(10)))
		})

		It("leaves pinned particles where the host put them", func() {
			w.SetFloor(10)
			i := w.AddParticle(Vec3{0, 20, 0}, 1, true)
			w.solveConstraints()
			Expect(w.Particles()[i].Pos.Y()).To(Equal(float32(20)))
		})

		It("is idempotent", func() {
			w.SetFloor(10)
			w.AddParticle(Vec3{3, 25, -2}, 1, false)
			w.AddParticle(Vec3{0, 5, 0}, 1, false)

			w.solveConstraints()
			after := make([]Particle, len(w.Particles()))
			copy(after, w.Particles())

			w.solveConstraints()
			Expect(w.Particles()).To(Equal(after))
		})
	})

	Describe("time stepping", func() {
		It("runs exactly one tick in single-tick mode", func() {
			w.SetSingleTick(true)
			ref := NewWorld()
			ref.SetSingleTick(true)
			for _, world := range []*World{w, ref} {
				world.AddParticle(Vec3{}, 1, false)
				world.SetSolver(SolverSymplecticEuler)
			}

			w.Advance(10 * w.SimDT())
			ref.Advance(w.SimDT())

			Expect(w.Particles()[0].Pos).To(Equal(ref.Particles()[0].Pos))
		})

		It("floors the tick count at one in fixed-tick mode", func() {
			w.AddParticle(Vec3{}, 1, false)
			w.Advance(0)
			Expect(w.Particles()[0].Pos.Y()).To(BeNumerically("<", 0))
		})

		It("derives the tick count from the frame delta", func() {
			ticksOf := func(frameDT float32) Vec3 {
				world := NewWorld()
				world.SetSolver(SolverSymplecticEuler)
				world.AddParticle(Vec3{}, 1, false)
				world.Advance(frameDT)
				return world.Particles()[0].Pos
			}

			three := ticksOf(3 * DefaultSimDT)
			threeAndABit := ticksOf(3.5 * DefaultSimDT)
			Expect(threeAndABit).To(Equal(three), "fractional remainder is dropped")
		})
	})

	Describe("a 4x4 cloth under gravity", func() {
		It("sags below its initial height with the corners held", func() {
			w.SetSolver(SolverVerlet)
			w.SetSubSteps(8)
			w.SetSingleTick(true)
			w.BuildCloth(Vec3{}, 4, 4, 1.0, 500, 5)

			initial := make([]Vec3, len(w.Particles()))
			for i, p := range w.Particles() {
				initial[i] = p.Pos
			}

			for i := 0; i < 60; i++ {
				w.Advance(DefaultSimDT)
			}

			for i, p := range w.Particles() {
				if i == 0 || i == 3 {
					Expect(p.Pos).To(Equal(initial[i]), "corner %d must hold", i)
					continue
				}
				Expect(p.Pos.Y()).To(BeNumerically("<", initial[i].Y()), "particle %d should sag", i)
				Expect(p.Pos.Y()).To(BeNumerically("<=", w.Floor()))
			}
		})
	})
})
