package api

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	chesshttp "github.com/INDA23PlusPlus/redkar-chess/internal/http"
	"github.com/INDA23PlusPlus/redkar-chess/internal/processor"
	"github.com/INDA23PlusPlus/redkar-chess/internal/service"
)

// newTestClient serves the chess API on a loopback port and returns a
// client pointed at it.
func newTestClient(t *testing.T) *Client {
	t.Helper()
	svc, err := service.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	proc, err := processor.New(svc, processor.Config{Workers: 1, Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	app := chesshttp.NewFiberApp(proc, svc, chesshttp.Config{RateLimit: -1})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go app.Listener(ln)
	t.Cleanup(func() {
		app.Shutdown()
		proc.Close()
		svc.Close()
	})

	c := New("http://" + ln.Addr().String())
	c.Out = io.Discard
	return c
}

func TestClient_GameFlow(t *testing.T) {
	c := newTestClient(t)

	health, err := c.Health()
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "healthy" || health.Storage != "disabled" || health.Time == 0 {
		t.Errorf("health = %+v", health)
	}

	g, err := c.CreateGame(core.CreateGameRequest{})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if g.GameID == "" || g.Turn != "w" || g.State != "ongoing" {
		t.Fatalf("created game = %+v", g)
	}

	after, pending, err := c.MakeMove(g.GameID, "e2e4")
	if err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if pending || after.Turn != "b" || len(after.Moves) != 1 {
		t.Errorf("after e2e4 pending=%v game=%+v", pending, after)
	}

	_, _, err = c.MakeMove(g.GameID, "e7e4")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("illegal move error = %v, want *Error", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Response.Code != core.ErrCodeInvalidMove {
		t.Errorf("illegal move error = %+v", apiErr)
	}

	legal, err := c.GetLegalMoves(g.GameID)
	if err != nil {
		t.Fatalf("GetLegalMoves: %v", err)
	}
	if legal.Turn != "b" || len(legal.Moves) != 20 {
		t.Errorf("legal moves = %+v", legal)
	}

	board, err := c.GetBoard(g.GameID)
	if err != nil {
		t.Fatalf("GetBoard: %v", err)
	}
	if !strings.HasPrefix(board.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b") || board.Board == "" {
		t.Errorf("board = %+v", board)
	}

	if err := c.DeleteGame(g.GameID); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	_, err = c.GetGame(g.GameID)
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound || apiErr.Response.Code != core.ErrCodeGameNotFound {
		t.Errorf("get deleted game error = %v", err)
	}
}

func TestClient_ComputerMove(t *testing.T) {
	c := newTestClient(t)

	g, err := c.CreateGame(core.CreateGameRequest{
		White: core.PlayerConfig{Type: core.PlayerComputer},
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	resp, pending, err := c.MakeMove(g.GameID, ComputerMove)
	if err != nil {
		t.Fatalf("computer move: %v", err)
	}
	if !pending {
		t.Errorf("computer move was not accepted as pending")
	}
	if resp.State == "pending" {
		if resp, err = c.GetGameWithPoll(g.GameID, 0); err != nil {
			t.Fatalf("GetGameWithPoll: %v", err)
		}
	}
	if len(resp.Moves) != 1 || resp.Turn != "b" || resp.LastMove == nil || resp.LastMove.PlayerColor != "w" {
		t.Errorf("after computer move = %+v", resp)
	}

	// human player on move
	_, _, err = c.MakeMove(g.GameID, ComputerMove)
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict || apiErr.Response.Code != core.ErrCodeNotHumanTurn {
		t.Errorf("computer move on human turn error = %v", err)
	}
}

func TestClient_RawRequest(t *testing.T) {
	c := newTestClient(t)

	raw, err := c.RawRequest("POST", "/api/v1/games", `{"white":{"type":1}}`)
	if err != nil {
		t.Fatalf("RawRequest: %v", err)
	}
	if !strings.Contains(string(raw), `"gameId"`) {
		t.Errorf("raw create response = %s", raw)
	}

	if _, err := c.RawRequest("GET", "/api/v1/games/nope", ""); err == nil {
		t.Error("raw request for unknown game succeeded")
	}
}

func TestClient_Trace(t *testing.T) {
	c := newTestClient(t)
	var out strings.Builder
	c.Out = &out
	c.SetVerbose(true)

	if _, err := c.Health(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[API] GET /health", "[200 OK]", "Response Body:", `"status": "healthy"`} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("trace missing %q:\n%s", want, out.String())
		}
	}
}
