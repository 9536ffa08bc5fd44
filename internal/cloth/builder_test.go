package cloth

import (
	"math"
	"testing"
)

func TestBuildClothCounts(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"1x1", 1, 1},
		{"2x2", 2, 2},
		{"4x4", 4, 4},
		{"10x7", 10, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			w.BuildCloth(Vec3{}, tt.width, tt.height, 1.0, 500, 5)

			if got := len(w.Particles()); got != tt.width*tt.height {
				t.Errorf("expected %d particles, got %d", tt.width*tt.height, got)
			}

			// Sum of the four conditional link families over the grid.
			want := 0
			for y := 0; y < tt.height; y++ {
				for x := 0; x < tt.width; x++ {
					if x > 0 {
						want++
					}
					if y > 0 {
						want++
					}
					if x > 0 && y > 0 {
						want++
					}
					if x < tt.width-1 && y > 0 {
						want++
					}
				}
			}
			if got := len(w.Springs()); got != want {
				t.Errorf("expected %d springs, got %d", want, got)
			}
		})
	}
}

func TestBuildClothPins(t *testing.T) {
	w := NewWorld()
	width, height := 5, 4
	w.BuildCloth(Vec3{}, width, height, 1.0, 500, 5)

	for i := range w.Particles() {
		pinned := w.Pinned(i)
		wantPinned := i == 0 || i == width-1
		if pinned != wantPinned {
			t.Errorf("particle %d: pinned=%v, want %v", i, pinned, wantPinned)
		}
	}
}

func TestBuildClothGeometry(t *testing.T) {
	w := NewWorld()
	origin := Vec3{2, 3, -1}
	sep := float32(0.5)
	w.BuildCloth(origin, 3, 3, sep, 500, 5)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			p := w.Particles()[y*3+x]
			want := origin.Add(Vec3{float32(x) * sep, -float32(y) * sep, 0})
			if p.Pos != want {
				t.Errorf("particle (%d,%d): pos %v, want %v", x, y, p.Pos, want)
			}
			if p.OldPos != p.Pos {
				t.Errorf("particle (%d,%d): old pos not synced", x, y)
			}
			if p.Mass != 1 {
				t.Errorf("particle (%d,%d): mass %f, want 1", x, y, p.Mass)
			}
		}
	}

	shear := sep * float32(math.Sqrt2)
	for _, s := range w.Springs() {
		if s.RestLen != sep && s.RestLen != shear {
			t.Errorf("unexpected rest length %f", s.RestLen)
		}
		if s.P1 == s.P2 {
			t.Errorf("degenerate spring %d-%d", s.P1, s.P2)
		}
	}
}

func TestBuildClothAdjacency(t *testing.T) {
	w := NewWorld()
	w.BuildCloth(Vec3{}, 6, 6, 1.0, 500, 5)

	incidences := 0
	for _, list := range w.adjacency {
		incidences += len(list)
	}
	if incidences != 2*len(w.Springs()) {
		t.Errorf("adjacency incidences %d, want %d", incidences, 2*len(w.Springs()))
	}

	for i, list := range w.adjacency {
		for _, si := range list {
			s := w.Springs()[si]
			if int(s.P1) != i && int(s.P2) != i {
				t.Errorf("particle %d lists spring %d which does not touch it", i, si)
			}
		}
	}
}

func TestBuildClothReplacesState(t *testing.T) {
	w := NewWorld()
	w.BuildCloth(Vec3{}, 8, 8, 1.0, 500, 5)
	w.BuildCloth(Vec3{}, 2, 2, 1.0, 100, 1)

	if len(w.Particles()) != 4 {
		t.Errorf("rebuild: expected 4 particles, got %d", len(w.Particles()))
	}
	if len(w.Springs()) != 6 {
		t.Errorf("rebuild: expected 6 springs, got %d", len(w.Springs()))
	}
	if len(w.adjacency) != 4 {
		t.Errorf("rebuild: adjacency size %d, want 4", len(w.adjacency))
	}
}

func TestAddParticle(t *testing.T) {
	w := NewWorld()

	i := w.AddParticle(Vec3{1, 2, 3}, 2.0, false)
	if i != 0 {
		t.Errorf("expected index 0, got %d", i)
	}
	j := w.AddParticle(Vec3{0, 0, 0}, 0, true)
	if j != 1 {
		t.Errorf("expected index 1, got %d", j)
	}

	if m := w.Particles()[j].Mass; m != MinMass {
		t.Errorf("zero mass should clamp to %f, got %f", MinMass, m)
	}
	if !w.Pinned(j) {
		t.Error("expected second particle pinned")
	}
	if len(w.adjacency) != 2 {
		t.Errorf("adjacency should track appended particles, got %d", len(w.adjacency))
	}
}
