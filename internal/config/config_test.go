package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/strike5/internal/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strike5.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	cfg, err := parseStrike5(defaultStrike5YAML)
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultStrike5Config()) {
		t.Errorf("embedded config = %+v, want %+v", cfg, DefaultStrike5Config())
	}
}

func TestLoadStrike5CustomPath(t *testing.T) {
	path := writeConfig(t, `
rules:
  colors: 5
  axes: legacy
animation:
  step_ticks: 4
server:
  idle_timeout: 90s
`)

	cfg, err := LoadStrike5(path)
	if err != nil {
		t.Fatalf("LoadStrike5() error: %v", err)
	}

	rules, err := cfg.Rules.EngineRules()
	if err != nil {
		t.Fatalf("EngineRules() error: %v", err)
	}
	want := engine.DefaultRules()
	want.Colors = 5
	want.Axes = engine.AxesLegacy
	if rules != want {
		t.Errorf("EngineRules() = %+v, want %+v", rules, want)
	}
	if cfg.Animation.StepTicks != 4 {
		t.Errorf("StepTicks = %d, want 4", cfg.Animation.StepTicks)
	}
	if cfg.Animation.FlashTicks != 12 {
		t.Errorf("FlashTicks = %d, want default 12", cfg.Animation.FlashTicks)
	}
	if cfg.Server.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %v, want 90s", cfg.Server.IdleTimeout)
	}
}

func TestLoadStrike5Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "rules: [1, 2"},
		{"unknown axes", "rules:\n  axes: spiral\n"},
		{"zero colors", "rules:\n  colors: 0\n"},
		{"short line", "rules:\n  line_length: 1\n"},
		{"negative ticks", "animation:\n  step_ticks: -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadStrike5(writeConfig(t, tc.body)); err == nil {
				t.Error("LoadStrike5() should fail")
			}
		})
	}

	if _, err := LoadStrike5(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadStrike5() with a missing custom path should fail")
	}
}

func TestRulesConfigErrorTypes(t *testing.T) {
	_, err := RulesConfig{Size: 9, Colors: 7, SpawnCount: 3, LineLength: 5, Axes: "diagonal"}.EngineRules()
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "rules.axes" {
		t.Errorf("EngineRules() error = %v, want ValidationError on rules.axes", err)
	}

	_, err = RulesConfig{Size: 0, Colors: 7, SpawnCount: 3, LineLength: 5}.EngineRules()
	if !errors.Is(err, engine.ErrInvalidRules) {
		t.Errorf("EngineRules() error = %v, want ErrInvalidRules", err)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("STRIKE5_DB", "/tmp/s5.db")
	t.Setenv("STRIKE5_SSH_ADDR", "")
	t.Setenv("STRIKE5_HTTP_ADDR", "127.0.0.1:9000")

	env := LoadEnv()
	if env.DBPath != "/tmp/s5.db" {
		t.Errorf("DBPath = %q, want /tmp/s5.db", env.DBPath)
	}
	if env.SSHAddr != DefaultSSHAddr {
		t.Errorf("SSHAddr = %q, want default %q", env.SSHAddr, DefaultSSHAddr)
	}
	if env.HTTPAddr != "127.0.0.1:9000" {
		t.Errorf("HTTPAddr = %q, want 127.0.0.1:9000", env.HTTPAddr)
	}
}
