package config

import "sort"

var Presets = map[string]*Config{
	"small": {
		Cloth:   ClothConfig{Width: 4, Height: 4, Separation: 1.0, Stiffness: 500, Damping: 5},
		Physics: PhysicsConfig{Gravity: [3]float32{0, -9.81, 0}, Damping: 0.99, Floor: 900},
		Solver:  "verlet", SubSteps: 8, Dt: 1.0 / 60.0, Duration: 5,
	},
	"curtain": {
		Cloth:   ClothConfig{Width: 32, Height: 24, Separation: 0.5, Stiffness: 800, Damping: 8},
		Physics: PhysicsConfig{Gravity: [3]float32{0, -9.81, 0}, Damping: 0.99, Floor: 900},
		Solver:  "verlet", SubSteps: 8, Dt: 1.0 / 60.0, Duration: 20,
	},
	"breeze": {
		Cloth:   ClothConfig{Width: 24, Height: 16, Separation: 0.75, Stiffness: 600, Damping: 6},
		Physics: PhysicsConfig{Gravity: [3]float32{0, -9.81, 0}, Wind: [3]float32{4, 0, 1}, Damping: 0.99, Floor: 900},
		Solver:  "tc-verlet", SubSteps: 8, Dt: 1.0 / 60.0, Duration: 30,
	},
	"stiff": {
		Cloth:   ClothConfig{Width: 16, Height: 16, Separation: 1.0, Stiffness: 2500, Damping: 10},
		Physics: PhysicsConfig{Gravity: [3]float32{0, -9.81, 0}, Damping: 0.995, Floor: 900},
		Solver:  "rk4", SubSteps: 16, Dt: 1.0 / 60.0, Duration: 10,
	},
	"bouncy": {
		Cloth:   ClothConfig{Width: 12, Height: 12, Separation: 1.0, Stiffness: 300, Damping: 1},
		Physics: PhysicsConfig{Gravity: [3]float32{0, -9.81, 0}, Damping: 1.0, Floor: 900},
		Solver:  "velocity-verlet", SubSteps: 8, Dt: 1.0 / 60.0, Duration: 15,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
