package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/cloth"
)

const (
	DefaultWidth      = 16
	DefaultHeight     = 16
	DefaultSeparation = 1.0
	DefaultStiffness  = 500.0
	DefaultSpringDamp = 5.0
	DefaultDuration   = 10.0
)

type Config struct {
	Cloth    ClothConfig   `yaml:"cloth"`
	Physics  PhysicsConfig `yaml:"physics"`
	Solver   string        `yaml:"solver"`
	SubSteps int           `yaml:"sub_steps"`
	Dt       float32       `yaml:"dt"`
	Duration float32       `yaml:"duration"`
}

type ClothConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Separation float32    `yaml:"separation"`
	Stiffness  float32    `yaml:"stiffness"`
	Damping    float32    `yaml:"damping"`
	Origin     [3]float32 `yaml:"origin"`
}

type PhysicsConfig struct {
	Gravity [3]float32 `yaml:"gravity"`
	Wind    [3]float32 `yaml:"wind"`
	Damping float32    `yaml:"damping"`
	Floor   float32    `yaml:"floor"`
}

func DefaultConfig() *Config {
	return &Config{
		Cloth: ClothConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Separation: DefaultSeparation,
			Stiffness:  DefaultStiffness,
			Damping:    DefaultSpringDamp,
		},
		Physics: PhysicsConfig{
			Gravity: [3]float32{0, -9.81, 0},
			Damping: cloth.DefaultDamping,
			Floor:   cloth.DefaultFloorY,
		},
		Solver:   cloth.SolverVerlet.String(),
		SubSteps: cloth.DefaultSubSteps,
		Dt:       cloth.DefaultSimDT,
		Duration: DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the engine would otherwise silently
// clamp, so config mistakes surface at the tool boundary.
func (c *Config) Validate() error {
	if c.Cloth.Width < 1 || c.Cloth.Height < 1 {
		return fmt.Errorf("cloth dimensions must be >= 1, got %dx%d", c.Cloth.Width, c.Cloth.Height)
	}
	if c.Cloth.Separation <= 0 {
		return fmt.Errorf("separation must be positive, got %f", c.Cloth.Separation)
	}
	if _, err := cloth.ParseSolver(c.Solver); err != nil {
		return err
	}
	return nil
}

// Build constructs a world from the configuration and hangs the cloth.
func (c *Config) Build() (*cloth.World, error) {
	solver, err := cloth.ParseSolver(c.Solver)
	if err != nil {
		return nil, err
	}

	w := cloth.NewWorld()
	w.SetSolver(solver)
	w.SetSubSteps(c.SubSteps)
	w.SetSimDT(c.Dt)
	w.SetGravity(cloth.Vec3(c.Physics.Gravity))
	w.SetWind(cloth.Vec3(c.Physics.Wind))
	w.SetDamping(c.Physics.Damping)
	w.SetFloor(c.Physics.Floor)
	w.BuildCloth(cloth.Vec3(c.Cloth.Origin), c.Cloth.Width, c.Cloth.Height,
		c.Cloth.Separation, c.Cloth.Stiffness, c.Cloth.Damping)
	return w, nil
}
