package strike5

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/strike5/internal/config"
	"github.com/vovakirdan/strike5/internal/engine"
	"github.com/vovakirdan/strike5/internal/registry"
)

// Variant ids.
const (
	VariantClassic = "strike5"
	VariantLegacy  = "strike5_legacy"
)

// Variant describes one registered rule set.
type Variant struct {
	ID          string
	Title       string
	Description string
	Axes        engine.AxisMode
}

var variants = []Variant{
	{
		ID:          VariantClassic,
		Title:       "Strike 5",
		Description: "Line up five of a color in any row, column or diagonal",
		Axes:        engine.AxesCanonical,
	},
	{
		ID:          VariantLegacy,
		Title:       "Strike 5 (Legacy lines)",
		Description: "Older line scan where horizontal and main-diagonal runs only grow one way",
		Axes:        engine.AxesLegacy,
	},
}

// Package-level settings shared by every game instance.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultStrike5Config()
)

// Configure replaces the settings used by games created or reset afterwards.
// Invalid settings are rejected and the current ones kept.
func Configure(cfg config.Strike5Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("strike5: %w", err)
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
	return nil
}

// Settings returns the current settings.
func Settings() config.Strike5Config {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// Variants returns the registered variants.
func Variants() []Variant {
	return append([]Variant(nil), variants...)
}

func (v Variant) defaultRules() engine.Rules {
	rules := engine.DefaultRules()
	rules.Axes = v.Axes
	return rules
}

// LookupVariant finds a variant by id.
func LookupVariant(id string) (Variant, bool) {
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// RulesFor builds engine rules for a variant from the configured rules.
// The variant decides the line axes.
func RulesFor(id string, rc config.RulesConfig) (engine.Rules, error) {
	v, ok := LookupVariant(id)
	if !ok {
		return engine.Rules{}, fmt.Errorf("%w %q", registry.ErrUnknownGame, id)
	}
	rules, err := rc.EngineRules()
	if err != nil {
		return engine.Rules{}, err
	}
	rules.Axes = v.Axes
	return rules, nil
}

func init() {
	for _, v := range variants {
		v := v
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
