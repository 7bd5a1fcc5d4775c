package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/strike5/internal/core"
)

type stubGame struct {
	id    string
	state core.GameState
}

func (g *stubGame) ID() string {
	return g.id
}

func (g *stubGame) Title() string {
	return "Stub " + g.id
}

func (g *stubGame) Description() string {
	return "test double"
}

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.state = core.GameState{}
}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(*core.Screen) {}

func (g *stubGame) State() core.GameState {
	return g.state
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("Exists() = false after Register")
	}
	info, ok := Info("zz_stub")
	if !ok || info.Title != "Stub zz_stub" || info.Description != "test double" {
		t.Errorf("Info() = %+v, %v", info, ok)
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q, want zz_stub", g.ID())
	}

	found := false
	for _, gi := range List() {
		if gi.ID == "zz_stub" {
			found = true
		}
	}
	if !found {
		t.Error("List() does not include registered game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("second Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Create() error = %v, want ErrUnknownGame", err)
	}
}
