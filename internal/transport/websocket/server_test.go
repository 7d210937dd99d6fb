package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

type memorySink struct {
	mu      sync.Mutex
	results []storage.Result
}

func (s *memorySink) Record(r storage.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
}

func (s *memorySink) all() []storage.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storage.Result(nil), s.results...)
}

func startServer(t *testing.T, sink ResultSink) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(sink, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Response {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	return resp
}

func send(t *testing.T, conn *websocket.Conn, req Request) {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func hint(t *testing.T, conn *websocket.Conn) (Pos, Pos) {
	t.Helper()
	send(t, conn, Request{Type: TypeHint})
	resp := read(t, conn)
	if resp.Type != TypeHint || len(resp.Hint) != 2 {
		t.Fatalf("hint reply = %+v", resp)
	}
	return resp.Hint[0], resp.Hint[1]
}

func TestConnectSendsState(t *testing.T) {
	ts := startServer(t, nil)
	conn := dial(t, ts, "?variant=match3&seed=42")

	resp := read(t, conn)
	if resp.Type != TypeState || resp.State == nil {
		t.Fatalf("first message = %+v, want state", resp)
	}
	if resp.Session == "" {
		t.Error("session id is empty")
	}
	st := resp.State
	if st.Seed != 42 || st.Variant != "match3" || st.Score != 0 || st.GameOver {
		t.Errorf("state = %+v", st)
	}
	if len(st.Board) != 8 || len(st.Board[0]) != 8 {
		t.Errorf("board is %dx%d, want 8x8", len(st.Board), len(st.Board[0]))
	}
}

func TestSameSeedSameBoard(t *testing.T) {
	ts := startServer(t, nil)
	a := read(t, dial(t, ts, "?seed=9"))
	b := read(t, dial(t, ts, "?seed=9"))
	if strings.Join(a.State.Board, "/") != strings.Join(b.State.Board, "/") {
		t.Error("two connections with the same seed got different boards")
	}
	if a.Session == b.Session {
		t.Error("connections share a session id")
	}
}

func TestRejectsBadRequests(t *testing.T) {
	ts := startServer(t, nil)

	for _, q := range []string{"?variant=tetris", "?seed=abc"} {
		resp, err := http.Get(ts.URL + "/ws" + q)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestSwapMessages(t *testing.T) {
	ts := startServer(t, nil)
	conn := dial(t, ts, "?seed=5")
	read(t, conn)

	send(t, conn, Request{Type: TypeSwap, From: &Pos{0, 0}, To: &Pos{5, 5}})
	if resp := read(t, conn); resp.Type != TypeRejected || resp.Error == "" {
		t.Errorf("non-adjacent swap reply = %+v, want rejected", resp)
	}

	send(t, conn, Request{Type: TypeSwap, From: &Pos{0, 0}})
	if resp := read(t, conn); resp.Type != TypeError {
		t.Errorf("swap without target reply = %+v, want error", resp)
	}

	from, to := hint(t, conn)
	send(t, conn, Request{Type: TypeSwap, From: &from, To: &to})

	var steps, total int
	for {
		resp := read(t, conn)
		if resp.Type == TypeSettled {
			if resp.State.Score != total || resp.State.Moves != 1 {
				t.Errorf("settled state = %+v, want score %d after one move", resp.State, total)
			}
			break
		}
		if resp.Type != TypeStep || resp.Step == nil {
			t.Fatalf("got %+v while settling", resp)
		}
		steps++
		if resp.Step.Iteration != steps {
			t.Errorf("step iteration %d, want %d", resp.Step.Iteration, steps)
		}
		if len(resp.Step.Cleared) == 0 || resp.Step.ScoreDelta <= 0 {
			t.Errorf("step %d cleared %d cells for %d points", steps, len(resp.Step.Cleared), resp.Step.ScoreDelta)
		}
		total += resp.Step.ScoreDelta
	}
	if steps == 0 {
		t.Error("hinted swap produced no steps")
	}
}

func TestUnknownAndMalformedMessages(t *testing.T) {
	ts := startServer(t, nil)
	conn := dial(t, ts, "")
	read(t, conn)

	send(t, conn, Request{Type: "jump"})
	if resp := read(t, conn); resp.Type != TypeError || !strings.Contains(resp.Error, "jump") {
		t.Errorf("reply = %+v", resp)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if resp := read(t, conn); resp.Type != TypeError {
		t.Errorf("reply = %+v, want error", resp)
	}
}

func TestNewGameWithSeed(t *testing.T) {
	ts := startServer(t, nil)
	want := read(t, dial(t, ts, "?seed=77")).State.Board

	conn := dial(t, ts, "?seed=1")
	read(t, conn)
	seed := int64(77)
	send(t, conn, Request{Type: TypeNew, Seed: &seed})
	resp := read(t, conn)
	if resp.State.Seed != 77 || strings.Join(resp.State.Board, "/") != strings.Join(want, "/") {
		t.Errorf("new game = %+v, want the seed 77 board", resp.State)
	}
}

func TestGameOverIsRecorded(t *testing.T) {
	base := match3.BaseConfig()
	t.Cleanup(func() { match3.SetConfig(base) })
	limited := base
	limited.Game.Moves = 1
	match3.SetConfig(limited)

	sink := &memorySink{}
	ts := startServer(t, sink)
	conn := dial(t, ts, "?variant=match3&seed=3")
	read(t, conn)

	from, to := hint(t, conn)
	send(t, conn, Request{Type: TypeSwap, From: &from, To: &to})
	var settled Response
	for settled.Type != TypeSettled {
		settled = read(t, conn)
	}
	if !settled.State.GameOver || settled.State.MovesLeft != 0 {
		t.Fatalf("state after the only move = %+v, want game over", settled.State)
	}

	results := sink.all()
	if len(results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(results))
	}
	if r := results[0]; r.GameID != "match3" || r.Score != settled.State.Score || r.Seed != 3 || r.Player != settled.Session {
		t.Errorf("recorded %+v", r)
	}

	send(t, conn, Request{Type: TypeSwap, From: &from, To: &to})
	if resp := read(t, conn); resp.Type != TypeError {
		t.Errorf("swap after game over = %+v, want error", resp)
	}
}

func TestVariantsEndpoint(t *testing.T) {
	ts := startServer(t, nil)
	resp, err := http.Get(ts.URL + "/variants")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}
