package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ayusman/pomohand/internal/logger"
	"github.com/ayusman/pomohand/internal/status"
)

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// EventsHandler pushes session snapshots to WebSocket clients as they are
// published.
type EventsHandler struct {
	board *status.Board
	log   zerolog.Logger

	// Upgraded connections are hijacked, so http.Server.Shutdown does not
	// see them. done ends them and clients tracks the handlers still running.
	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	clients sync.WaitGroup
}

// NewEventsHandler creates a new EventsHandler reading from board.
func NewEventsHandler(board *status.Board) *EventsHandler {
	return &EventsHandler{
		board: board,
		log:   *logger.Named("server"),
		done:  make(chan struct{}),
	}
}

// Shutdown closes every open event stream and waits for their handlers to
// return. Later upgrade requests are refused.
func (h *EventsHandler) Shutdown() {
	h.mu.Lock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
	h.mu.Unlock()

	h.clients.Wait()
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}
	h.clients.Add(1)
	h.mu.Unlock()
	defer h.clients.Done()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	updates, cancel := h.board.Subscribe()
	defer cancel()

	// Reads only detect the client going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.send(conn, h.board.Latest()); err != nil {
		return
	}

	for {
		select {
		case snap := <-updates:
			if err := h.send(conn, snap); err != nil {
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-h.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}
	}
}

func (h *EventsHandler) send(conn *websocket.Conn, snap status.Snapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(snap); err != nil {
		h.log.Debug().Err(err).Msg("websocket client dropped")
		return err
	}
	return nil
}
