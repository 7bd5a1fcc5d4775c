// Package config loads the game rules and runtime settings from YAML, with
// environment overrides for the paths and addresses the CLI uses.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/strike5/internal/engine"
)

// Strike5Config is the full contents of strike5.yaml.
type Strike5Config struct {
	Rules     RulesConfig     `yaml:"rules"`
	Animation AnimationConfig `yaml:"animation"`
	Server    ServerConfig    `yaml:"server"`
	Sim       SimConfig       `yaml:"sim"`
}

// RulesConfig mirrors engine.Rules in YAML form.
type RulesConfig struct {
	Size         int    `yaml:"size"`
	Colors       int    `yaml:"colors"`
	SpawnCount   int    `yaml:"spawn_count"`
	LineLength   int    `yaml:"line_length"`
	InitialBalls int    `yaml:"initial_balls"`
	Axes         string `yaml:"axes"` // "canonical" or "legacy"
}

// AnimationConfig controls the terminal presentation.
type AnimationConfig struct {
	StepTicks  int `yaml:"step_ticks"`  // Ticks per path cell while a ball travels
	FlashTicks int `yaml:"flash_ticks"` // Ticks the cleared cells stay highlighted
}

// ServerConfig controls remote play sessions.
type ServerConfig struct {
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	ReapInterval time.Duration `yaml:"reap_interval"`
	MaxSessions  int           `yaml:"max_sessions"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

// SimConfig holds defaults for headless simulation runs.
type SimConfig struct {
	Games    int `yaml:"games"`
	Workers  int `yaml:"workers"`
	MaxMoves int `yaml:"max_moves"`
}

// ValidationError reports a config field that cannot be used.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// EngineRules converts the rules section into engine rules.
func (c RulesConfig) EngineRules() (engine.Rules, error) {
	axes, ok := engine.ParseAxisMode(c.Axes)
	if !ok {
		return engine.Rules{}, &ValidationError{Field: "rules.axes", Message: fmt.Sprintf("unknown axis mode %q", c.Axes)}
	}
	rules := engine.Rules{
		Size:         c.Size,
		Colors:       c.Colors,
		SpawnCount:   c.SpawnCount,
		LineLength:   c.LineLength,
		InitialBalls: c.InitialBalls,
		Axes:         axes,
	}
	if err := rules.Validate(); err != nil {
		return engine.Rules{}, fmt.Errorf("config: rules: %w", err)
	}
	return rules, nil
}

// Validate checks the sections the engine does not check itself.
func (c Strike5Config) Validate() error {
	if _, err := c.Rules.EngineRules(); err != nil {
		return err
	}
	switch {
	case c.Animation.StepTicks < 0:
		return &ValidationError{Field: "animation.step_ticks", Message: "must not be negative"}
	case c.Animation.FlashTicks < 0:
		return &ValidationError{Field: "animation.flash_ticks", Message: "must not be negative"}
	case c.Server.IdleTimeout < 0:
		return &ValidationError{Field: "server.idle_timeout", Message: "must not be negative"}
	case c.Server.MaxSessions < 0:
		return &ValidationError{Field: "server.max_sessions", Message: "must not be negative"}
	case c.Sim.Workers < 0:
		return &ValidationError{Field: "sim.workers", Message: "must not be negative"}
	}
	return nil
}
