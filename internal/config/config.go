package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/babymc/internal/logging"
)

const (
	DefaultBatches   = 100
	DefaultParticles = 10_000

	// DefaultDeuteronEnergy is the A325 accelerating energy in MeV.
	DefaultDeuteronEnergy = 0.1
	DefaultAngularBins    = 18
	// DefaultIonTemperature is the Muir spectrum kT in keV.
	DefaultIonTemperature = 20.0

	DefaultMeshPath    = "../unstructured_mesh/baby.vtk"
	DefaultMeshLibrary = "moab"

	DefaultCheckSamples = 100_000
)

// Vec is a point in cm.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec) R3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

type Config struct {
	Center   Vec            `yaml:"center"`
	Settings SettingsConfig `yaml:"settings"`
	Source   SourceConfig   `yaml:"source"`
	Tallies  TalliesConfig  `yaml:"tallies"`
	Vault    VaultConfig    `yaml:"vault"`
	Mesh     MeshConfig     `yaml:"mesh"`
	Engine   EngineConfig   `yaml:"engine"`
	Check    CheckConfig    `yaml:"check"`
	Logging  logging.Config `yaml:"logging"`
}

type SettingsConfig struct {
	Batches         int    `yaml:"batches"`
	Inactive        int    `yaml:"inactive"`
	Particles       int    `yaml:"particles"`
	PhotonTransport bool   `yaml:"photon_transport"`
	TalliesOutput   bool   `yaml:"tallies_output"`
	Seed            uint64 `yaml:"seed"`
}

type SourceConfig struct {
	// Position overrides the point below the crucible when set.
	Position       *Vec    `yaml:"position,omitempty"`
	Direction      Vec     `yaml:"direction"`
	DeuteronEnergy float64 `yaml:"deuteron_energy"`
	AngularBins    int     `yaml:"angular_bins"`
	IonTemperature float64 `yaml:"ion_temperature"`
}

type TalliesConfig struct {
	Score       string   `yaml:"score"`
	Nuclides    []string `yaml:"nuclides"`
	MeshPath    string   `yaml:"mesh_path"`
	MeshLibrary string   `yaml:"mesh_library"`
	// MeshTally disables the unstructured mesh tally when false.
	MeshTally bool `yaml:"mesh_tally"`
}

type VaultConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Margin        float64 `yaml:"margin"`
	WallThickness float64 `yaml:"wall_thickness"`
}

type MeshConfig struct {
	Dir        string  `yaml:"dir"`
	BoreSize   float64 `yaml:"bore_size"`
	OuterSize  float64 `yaml:"outer_size"`
	BottomSize float64 `yaml:"bottom_size"`
	Sectors    int     `yaml:"sectors"`
}

type EngineConfig struct {
	Binary        string `yaml:"binary"`
	GeometryDebug bool   `yaml:"geometry_debug"`
	Threads       int    `yaml:"threads"`
}

type CheckConfig struct {
	Samples int    `yaml:"samples"`
	Seed    uint64 `yaml:"seed"`
	Workers int    `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Center: Vec{X: 587, Y: 60, Z: 100},
		Settings: SettingsConfig{
			Batches:         DefaultBatches,
			Particles:       DefaultParticles,
			PhotonTransport: true,
		},
		Source: SourceConfig{
			Direction:      Vec{X: 1},
			DeuteronEnergy: DefaultDeuteronEnergy,
			AngularBins:    DefaultAngularBins,
			IonTemperature: DefaultIonTemperature,
		},
		Tallies: TalliesConfig{
			Score:       "(n,Xt)",
			Nuclides:    []string{"Li6", "Li7"},
			MeshPath:    DefaultMeshPath,
			MeshLibrary: DefaultMeshLibrary,
			MeshTally:   true,
		},
		Vault: VaultConfig{
			Enabled:       true,
			Margin:        50,
			WallThickness: 100,
		},
		Mesh: MeshConfig{
			Dir:        "unstructured_mesh",
			BoreSize:   0.2,
			OuterSize:  2.0,
			BottomSize: 0.5,
			Sectors:    24,
		},
		Engine: EngineConfig{
			Binary:        "openmc",
			GeometryDebug: false,
		},
		Check: CheckConfig{
			Samples: DefaultCheckSamples,
			Seed:    1,
		},
		Logging: logging.DefaultConfig(),
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

// Validate rejects settings the transport engine would refuse.
func (c *Config) Validate() error {
	switch {
	case c.Settings.Batches <= 0:
		return fmt.Errorf("config: batches must be positive, got %d", c.Settings.Batches)
	case c.Settings.Inactive < 0 || c.Settings.Inactive >= c.Settings.Batches:
		return fmt.Errorf("config: inactive must be in [0, batches), got %d", c.Settings.Inactive)
	case c.Settings.Particles <= 0:
		return fmt.Errorf("config: particles must be positive, got %d", c.Settings.Particles)
	case c.Source.DeuteronEnergy <= 0:
		return fmt.Errorf("config: deuteron energy must be positive, got %g", c.Source.DeuteronEnergy)
	case c.Source.AngularBins <= 0:
		return fmt.Errorf("config: angular bins must be positive, got %d", c.Source.AngularBins)
	case c.Source.Direction.R3() == r3.Vec{}:
		return fmt.Errorf("config: source direction is zero")
	case c.Vault.Enabled && (c.Vault.Margin <= 0 || c.Vault.WallThickness <= 0):
		return fmt.Errorf("config: vault margin and wall thickness must be positive")
	case c.Mesh.Sectors < 3:
		return fmt.Errorf("config: mesh needs at least 3 sectors, got %d", c.Mesh.Sectors)
	}
	return nil
}

// SourcePosition returns the configured override or fallback.
func (c *Config) SourcePosition(fallback r3.Vec) r3.Vec {
	if c.Source.Position != nil {
		return c.Source.Position.R3()
	}
	return fallback
}
