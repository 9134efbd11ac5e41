package service

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"go.uber.org/zap"
)

func TestGameManagerLifecycle(t *testing.T) {
	gm := NewGameManager(zap.NewNop())

	if err := gm.CreateGame("g1", ""); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if err := gm.CreateGame("g1", ""); !errors.Is(err, ErrGameExists) {
		t.Errorf("duplicate CreateGame error = %v; want ErrGameExists", err)
	}

	result, err := gm.Click("g1", model.Pos(6, 4))
	if err != nil || result.Kind != model.ResultSelected {
		t.Fatalf("Click = %v, %v; want selected", result.Kind, err)
	}
	if _, err := gm.Click("g1", model.Pos(4, 4)); err != nil {
		t.Fatalf("Click: %v", err)
	}
	state, err := gm.GetGameState("g1")
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if state.ToMove != model.Black {
		t.Errorf("ToMove = %s; want black", state.ToMove)
	}

	if err := gm.Reset("g1"); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if state, _ := gm.GetGameState("g1"); state.ToMove != model.White || len(state.MoveHistory) != 0 {
		t.Errorf("state after Reset = %+v", state)
	}

	if err := gm.DeleteGame("g1"); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if _, err := gm.GetGame("g1"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("GetGame after delete error = %v; want ErrGameNotFound", err)
	}
	if err := gm.DeleteGame("g1"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("second DeleteGame error = %v; want ErrGameNotFound", err)
	}
}

func TestGameManagerCreateFromFEN(t *testing.T) {
	gm := NewGameManager(zap.NewNop())

	if err := gm.CreateGame("bad", "8/8/8 w"); !errors.Is(err, model.ErrInvalidFEN) {
		t.Errorf("CreateGame error = %v; want ErrInvalidFEN", err)
	}
	if _, err := gm.GetGame("bad"); !errors.Is(err, ErrGameNotFound) {
		t.Error("a game with a bad position was registered")
	}

	fen := "4k3/8/8/8/8/8/4q3/4K3 w - - 0 12"
	if err := gm.CreateGame("custom", fen); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	state, err := gm.GetGameState("custom")
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if state.FEN != fen || !state.IsCheck {
		t.Errorf("FEN = %q, IsCheck = %v", state.FEN, state.IsCheck)
	}
}

func TestGameManagerUnknownGame(t *testing.T) {
	gm := NewGameManager(zap.NewNop())
	checks := map[string]func() error{
		"GetGameState": func() error { _, err := gm.GetGameState("nope"); return err },
		"Click":        func() error { _, err := gm.Click("nope", model.Pos(0, 0)); return err },
		"Reset":        func() error { return gm.Reset("nope") },
		"LoadFEN":      func() error { return gm.LoadFEN("nope", "4k3/8/8/8/8/8/8/4K3 w") },
		"Send":         func() error { return gm.Send("nope", "p1", "gameState", nil) },
	}
	for name, check := range checks {
		if err := check(); !errors.Is(err, ErrGameNotFound) {
			t.Errorf("%s error = %v; want ErrGameNotFound", name, err)
		}
	}
}

func TestGameServiceCreateGame(t *testing.T) {
	gs := NewGameService(NewGameManager(zap.NewNop()))

	first, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	second, err := gs.CreateGame("")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if first == second {
		t.Errorf("two games share the id %s", first)
	}

	if _, err := gs.CreateGame("nonsense"); !errors.Is(err, model.ErrInvalidFEN) {
		t.Errorf("CreateGame error = %v; want ErrInvalidFEN", err)
	}

	if _, err := gs.HandleClick(first, model.Position{X: -1, Y: 0}); !errors.Is(err, model.ErrOutOfBounds) {
		t.Errorf("HandleClick error = %v; want ErrOutOfBounds", err)
	}
	if err := gs.LoadFEN(second, "4k3/8/8/8/8/8/8/4K3 b - - 0 3"); err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	state, err := gs.GetGameState(second)
	if err != nil {
		t.Fatalf("GetGameState: %v", err)
	}
	if state.ToMove != model.Black {
		t.Errorf("ToMove = %s; want black", state.ToMove)
	}
}
