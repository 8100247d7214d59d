// Package config defines the run configuration for spckit, loaded
// from an optional YAML file, per SPEC_FULL.md §4.16. Generalizes the
// teacher's internal/emu.Config plain-struct-of-bools pattern into a
// YAML-loadable struct, since this spec's CLI needs user-tunable run
// parameters the teacher's milestone stub didn't.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/giannitedesco/spu-kit/internal/aram"
)

// BootROMPolicy selects how the boot-ROM overlay is implemented; see
// internal/aram.Policy.
type BootROMPolicy string

const (
	BootROMAccurate BootROMPolicy = "accurate"
	BootROMNaive    BootROMPolicy = "naive"
)

// Config holds every user-tunable run parameter.
type Config struct {
	Trace         bool          `yaml:"trace"`
	BootROMPolicy BootROMPolicy `yaml:"boot_rom_policy"`
	SampleRate    int           `yaml:"sample_rate"`
	SampleLimit   int           `yaml:"sample_limit"`
	SeedIPLROM    bool          `yaml:"seed_ipl_rom"`
}

// Defaults fills zero-valued fields with their documented defaults.
func (c *Config) Defaults() {
	if c.BootROMPolicy == "" {
		c.BootROMPolicy = BootROMAccurate
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 32000
	}
	if c.SampleLimit <= 0 {
		c.SampleLimit = 0 // 0 means "run until the CPU halts".
	}
}

// AramPolicy translates BootROMPolicy into the aram.Policy the machine
// package consumes, defaulting to PolicyAccurate for any unrecognized
// value rather than rejecting it outright.
func (c Config) AramPolicy() aram.Policy {
	if c.BootROMPolicy == BootROMNaive {
		return aram.PolicyNaive
	}
	return aram.PolicyAccurate
}

// Load reads and parses a YAML config file, applying defaults to any
// field the file leaves unset. A missing path is not an error: it
// yields a Config with only defaults applied.
func Load(path string) (Config, error) {
	var c Config

	if path == "" {
		c.Defaults()
		return c, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.Defaults()
			return c, nil
		}
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("config: parse %s: %w", path, err)
	}

	c.Defaults()
	return c, nil
}
