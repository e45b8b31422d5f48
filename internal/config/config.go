// Package config manages partitioner configuration with viper: defaults
// first, then an optional config file, then explicit overrides.
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/gilchrisn/hgpart/engine"
)

// Config wraps a viper instance carrying every partitioner tunable, with
// typed getters for the resolved values.
type Config struct {
	v *viper.Viper
}

// New creates a Config seeded with the engine's defaults (engine.Default).
func New() *Config {
	v := viper.New()
	d := engine.Default()

	v.SetDefault("partition.k", d.K)
	v.SetDefault("partition.epsilon", d.Epsilon)
	v.SetDefault("partition.seed", d.Seed)
	v.SetDefault("partition.budget", d.Budget)
	v.SetDefault("partition.effort", d.Effort)

	v.SetDefault("refine.tabu_tenure", d.TabuTenure)
	v.SetDefault("refine.initial_move_cap", d.InitialMoveCap)
	v.SetDefault("refine.quota_fraction", d.QuotaFraction)
	v.SetDefault("refine.stall_limit", d.StallLimit)

	v.SetDefault("ils.perturbation", d.Perturbation)
	v.SetDefault("ils.round_length", d.ILSRoundLength)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.enable_progress", true)

	v.SetDefault("run.random_seed", time.Now().UnixNano())

	return &Config{v: v}
}

// LoadFromFile overlays a config file (yaml/json/toml, per viper's format
// detection) onto the defaults.
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Set allows dynamic overrides, e.g. from CLI flags.
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// Params builds an engine.Params from the current configuration.
func (c *Config) Params() engine.Params {
	return engine.Params{
		K:              c.v.GetInt("partition.k"),
		Epsilon:        c.v.GetFloat64("partition.epsilon"),
		Seed:           c.v.GetInt64("partition.seed"),
		Budget:         c.v.GetInt("partition.budget"),
		Effort:         c.v.GetInt("partition.effort"),
		TabuTenure:     c.v.GetInt("refine.tabu_tenure"),
		InitialMoveCap: c.v.GetInt("refine.initial_move_cap"),
		QuotaFraction:  c.v.GetFloat64("refine.quota_fraction"),
		Perturbation:   c.v.GetFloat64("ils.perturbation"),
		ILSRoundLength: c.v.GetInt("ils.round_length"),
		StallLimit:     c.v.GetInt("refine.stall_limit"),
	}
}

func (c *Config) LogLevel() string        { return c.v.GetString("logging.level") }
func (c *Config) EnableProgress() bool    { return c.v.GetBool("logging.enable_progress") }
func (c *Config) RandomSeed() int64       { return c.v.GetInt64("run.random_seed") }
