package websocket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	m3 "github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Room for a full cascade of step messages.
	sendBuffer = 256

	defaultVariant = "match3"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ResultSink receives finished games.
type ResultSink interface {
	Record(storage.Result)
}

// Server upgrades HTTP requests and runs one game session per connection.
type Server struct {
	sink   ResultSink
	logger *log.Logger

	mu      sync.Mutex
	clients map[*Client]struct{}
}

// NewServer creates a server. sink may be nil to discard results.
func NewServer(sink ResultSink, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.WithPrefix("match3-ws")
	}
	return &Server{
		sink:    sink,
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.ServeWS)
	mux.HandleFunc("/variants", s.serveVariants)
	return mux
}

// Clients reports the number of open connections.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// CloseAll closes every open connection.
func (s *Server) CloseAll() {
	s.mu.Lock()
	clients := make([]*Client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}

type variantInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) serveVariants(w http.ResponseWriter, r *http.Request) {
	var out []variantInfo
	for _, v := range match3.Variants() {
		out = append(out, variantInfo{ID: v.Info.ID, Title: v.Info.Title, Description: v.Info.Description})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.logger.Warn("variants encode failed", "error", err)
	}
}

// ServeWS starts a game for the connecting client.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	variant := r.URL.Query().Get("variant")
	if variant == "" {
		variant = defaultVariant
	}
	if _, ok := match3.LookupVariant(variant); !ok {
		http.Error(w, "unknown variant "+strconv.Quote(variant), http.StatusBadRequest)
		return
	}

	seed := time.Now().UnixNano()
	if raw := r.URL.Query().Get("seed"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		seed = v
	}

	session, err := match3.NewVariantSession(variant, seed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &Client{
		server:  s,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		done:    make(chan struct{}),
		id:      uuid.NewString(),
		variant: variant,
		session: session,
	}
	c.logger = s.logger.With("session", c.id)

	s.register(c)

	go c.writePump()
	c.reply(c.stateResponse(TypeState))
	go c.readPump()
}

func (s *Server) register(c *Client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	c.logger.Info("client connected", "variant", c.variant, "seed", c.session.Seed(), "clients", n)
}

func (s *Server) unregister(c *Client) {
	s.mu.Lock()
	delete(s.clients, c)
	n := len(s.clients)
	s.mu.Unlock()
	c.logger.Info("client disconnected", "score", c.session.Score(), "clients", n)
}

// Client is one WebSocket connection and its game.
type Client struct {
	server  *Server
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	id      string
	variant string
	logger  *log.Logger

	// Only the read pump touches the session after setup.
	session  *match3.Session
	recorded bool
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump handles client requests until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.server.unregister(c)
		c.close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket error", "error", err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.replyError(errors.New("malformed message"))
			continue
		}
		c.handle(req)
	}
}

// writePump sends queued responses and keeps the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			//nolint:errcheck // Best-effort close frame
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *Client) handle(req Request) {
	switch req.Type {
	case TypeSwap:
		c.handleSwap(req)

	case TypeState:
		c.reply(c.stateResponse(TypeState))

	case TypeHint:
		resp := c.stateResponse(TypeHint)
		if mv, ok := c.session.Hint(); ok {
			resp.Hint = []Pos{fromPos(mv.From), fromPos(mv.To)}
		}
		c.reply(resp)

	case TypeNew:
		seed := time.Now().UnixNano()
		if req.Seed != nil {
			seed = *req.Seed
		}
		session, err := match3.NewVariantSession(c.variant, seed)
		if err != nil {
			c.replyError(err)
			return
		}
		c.session = session
		c.recorded = false
		c.logger.Debug("new game", "seed", seed)
		c.reply(c.stateResponse(TypeState))

	default:
		c.replyError(errors.New("unknown message type " + strconv.Quote(req.Type)))
	}
}

func (c *Client) handleSwap(req Request) {
	if req.From == nil || req.To == nil {
		c.replyError(errors.New("swap needs from and to"))
		return
	}

	out, err := c.session.Swap(req.From.core(), req.To.core())
	switch {
	case errors.Is(err, match3.ErrBusy), errors.Is(err, match3.ErrGameOver):
		c.replyError(err)
		return
	case err != nil:
		resp := c.stateResponse(TypeRejected)
		resp.Error = err.Error()
		c.reply(resp)
		return
	}

	if out.Kind == m3.OutcomeReverted {
		c.reply(c.stateResponse(TypeReverted))
		return
	}

	for _, step := range c.session.Drain() {
		resp := Response{Type: TypeStep, Session: c.id, Step: newStep(step)}
		c.reply(resp)
	}
	c.recordIfOver()
	c.reply(c.stateResponse(TypeSettled))
}

func (c *Client) recordIfOver() {
	if c.recorded || !c.session.GameOver() || c.server.sink == nil {
		return
	}
	c.recorded = true
	c.server.sink.Record(storage.Result{
		GameID:    c.variant,
		Player:    c.id,
		Score:     c.session.Score(),
		Moves:     c.session.Moves(),
		BestCombo: c.session.BestCombo(),
		Seed:      c.session.Seed(),
	})
	c.logger.Info("game over", "score", c.session.Score(), "moves", c.session.Moves())
}

func (c *Client) stateResponse(kind string) Response {
	return Response{
		Type:    kind,
		Session: c.id,
		State: &State{
			Variant:   c.variant,
			Seed:      c.session.Seed(),
			Board:     boardRows(c.session.Board()),
			Score:     c.session.Score(),
			Moves:     c.session.Moves(),
			MovesLeft: c.session.MovesLeft(),
			BestCombo: c.session.BestCombo(),
			GameOver:  c.session.GameOver(),
		},
	}
}

func (c *Client) replyError(err error) {
	resp := c.stateResponse(TypeError)
	resp.Error = err.Error()
	c.reply(resp)
}

// reply queues a response. A client that cannot keep up is dropped.
func (c *Client) reply(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error("marshal response", "error", err)
		return
	}
	select {
	case c.send <- data:
	case <-c.done:
	default:
		c.logger.Warn("send buffer full, dropping client")
		c.close()
	}
}
