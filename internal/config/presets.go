package config

import "sort"

// Presets are named modifications of DefaultConfig.
var Presets = map[string]func(*Config){
	"baby": func(*Config) {},
	"quick": func(c *Config) {
		c.Settings.Batches = 10
		c.Settings.Particles = 1_000
		c.Settings.PhotonTransport = false
		c.Check.Samples = 10_000
		c.Mesh.Sectors = 12
	},
	// The generator position used by the separate experiment in the vault.
	"vault-source": func(c *Config) {
		c.Source.Position = &Vec{X: 500.5 - 20.5, Y: 225.0, Z: 138.0}
	},
	"no-vault": func(c *Config) {
		c.Vault.Enabled = false
	},
}

// GetPreset returns a fresh config for name, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
