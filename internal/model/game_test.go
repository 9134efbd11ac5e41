package model

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []ws.Message
	controls []int
	closed   bool
	failWith error
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	c.messages = append(c.messages, v.(ws.Message))
	return nil
}

func (c *fakeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controls = append(c.controls, messageType)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) sent() []ws.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ws.Message(nil), c.messages...)
}

func lastState(t *testing.T, conn *fakeConn) GameState {
	t.Helper()
	msgs := conn.sent()
	if len(msgs) == 0 {
		t.Fatal("no messages sent")
	}
	last := msgs[len(msgs)-1]
	if last.Type != ws.MessageTypeGameState {
		t.Fatalf("last message type = %q; want %q", last.Type, ws.MessageTypeGameState)
	}
	var state GameState
	if err := json.Unmarshal(last.Payload, &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func TestGameRegisterConnection(t *testing.T) {
	g := NewGame("g1", zap.NewNop())
	conn := &fakeConn{}
	if err := g.RegisterConnection("p1", conn); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	if state := lastState(t, conn); state.FEN != startFEN {
		t.Errorf("initial FEN = %q; want %q", state.FEN, startFEN)
	}

	t.Run("duplicate player is rejected", func(t *testing.T) {
		dup := &fakeConn{}
		if err := g.RegisterConnection("p1", dup); err == nil {
			t.Fatal("second connection for p1 was accepted")
		}
		if !dup.closed || len(dup.controls) != 1 || dup.controls[0] != websocket.CloseMessage {
			t.Errorf("duplicate closed=%v controls=%v; want a close frame", dup.closed, dup.controls)
		}
		// the stale connection must not evict the live one
		g.UnregisterConnection("p1", dup)
		if err := g.Send("p1", ws.MessageTypeGameState, g.GetState()); err != nil {
			t.Errorf("Send after stale unregister: %v", err)
		}
	})

	t.Run("unregister", func(t *testing.T) {
		g.UnregisterConnection("p1", conn)
		if err := g.Send("p1", ws.MessageTypeGameState, g.GetState()); err == nil {
			t.Error("Send succeeded without a connection")
		}
	})
}

func TestGameClickBroadcasts(t *testing.T) {
	g := NewGame("g2", zap.NewNop())
	a, b := &fakeConn{}, &fakeConn{}
	for id, conn := range map[string]*fakeConn{"a": a, "b": b} {
		if err := g.RegisterConnection(id, conn); err != nil {
			t.Fatalf("RegisterConnection(%s): %v", id, err)
		}
	}

	result, err := g.Click(Pos(4, 4))
	if err != nil || result.Kind != ResultNone {
		t.Fatalf("Click(empty) = %v, %v; want none", result.Kind, err)
	}
	if len(a.sent()) != 1 {
		t.Errorf("a no-op click was broadcast")
	}

	if _, err := g.Click(Pos(6, 4)); err != nil {
		t.Fatalf("Click: %v", err)
	}
	if _, err := g.Click(Pos(4, 4)); err != nil {
		t.Fatalf("Click: %v", err)
	}
	for name, conn := range map[string]*fakeConn{"a": a, "b": b} {
		if got := len(conn.sent()); got != 3 {
			t.Errorf("%s got %d messages; want 3", name, got)
		}
		state := lastState(t, conn)
		if state.ToMove != Black || state.LastMove == nil {
			t.Errorf("%s last state toMove=%s lastMove=%v", name, state.ToMove, state.LastMove)
		}
	}

	if _, err := g.Click(Position{X: 9, Y: 0}); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Click off the board error = %v; want ErrOutOfBounds", err)
	}
}

func TestGameDropsFailedConnections(t *testing.T) {
	g := NewGame("g3", zap.NewNop())
	good, bad := &fakeConn{}, &fakeConn{}
	if err := g.RegisterConnection("good", good); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	if err := g.RegisterConnection("bad", bad); err != nil {
		t.Fatalf("RegisterConnection: %v", err)
	}
	bad.mu.Lock()
	bad.failWith = errors.New("broken pipe")
	bad.mu.Unlock()

	g.Reset()
	if err := g.Send("bad", ws.MessageTypeGameState, g.GetState()); err == nil {
		t.Error("failed connection is still registered")
	}
	if len(good.sent()) != 2 {
		t.Errorf("good connection got %d messages; want 2", len(good.sent()))
	}
}

func TestGameLoadFEN(t *testing.T) {
	g, err := NewGameFromFEN("g4", "4k3/8/8/8/8/8/4q3/4K3 w - - 0 1", zap.NewNop())
	if err != nil {
		t.Fatalf("NewGameFromFEN: %v", err)
	}
	if !g.GetState().IsCheck {
		t.Error("white should start in check")
	}

	if err := g.LoadFEN("8/8/8/8/8/8/8/8 z"); !errors.Is(err, ErrInvalidFEN) {
		t.Errorf("LoadFEN error = %v; want ErrInvalidFEN", err)
	}
	if !g.GetState().IsCheck {
		t.Error("a rejected position replaced the game")
	}

	if _, err := NewGameFromFEN("g5", "bogus", zap.NewNop()); !errors.Is(err, ErrInvalidFEN) {
		t.Errorf("NewGameFromFEN error = %v; want ErrInvalidFEN", err)
	}
}
