package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/strike5/internal/engine"
)

//go:embed defaults/strike5.yaml
var defaultStrike5YAML []byte

// DefaultStrike5Config returns the built-in configuration, matching the
// embedded strike5.yaml.
func DefaultStrike5Config() Strike5Config {
	r := engine.DefaultRules()
	return Strike5Config{
		Rules: RulesConfig{
			Size:         r.Size,
			Colors:       r.Colors,
			SpawnCount:   r.SpawnCount,
			LineLength:   r.LineLength,
			InitialBalls: r.InitialBalls,
			Axes:         string(r.Axes),
		},
		Animation: AnimationConfig{
			StepTicks:  2,
			FlashTicks: 12,
		},
		Server: ServerConfig{
			IdleTimeout:  30 * time.Minute,
			ReapInterval: time.Minute,
			MaxSessions:  1000,
			CORSOrigins:  []string{"*"},
		},
		Sim: SimConfig{
			Games:    100,
			Workers:  4,
			MaxMoves: 1000,
		},
	}
}
