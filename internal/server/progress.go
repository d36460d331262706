package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ProgressEvent is one progress message pushed to websocket clients.
type ProgressEvent struct {
	Type      string                 `json:"type"` // scenario_started, scenario_finished, run_finished
	RunID     string                 `json:"run_id"`
	Scenario  string                 `json:"scenario,omitempty"`
	Result    *models.ScenarioResult `json:"result,omitempty"`
	Run       *models.RunRecord      `json:"run,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// ProgressHub broadcasts run progress to connected websocket clients. It
// implements the runner's Notifier.
type ProgressHub struct {
	logger  arbor.ILogger
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewProgressHub creates an empty hub.
func NewProgressHub(logger arbor.ILogger) *ProgressHub {
	return &ProgressHub{
		logger:  logger,
		clients: make(map[*websocket.Conn]bool),
	}
}

// HandleWebSocket upgrades the connection and registers the client. The read
// loop only exists to detect disconnect; clients never send messages.
func (h *ProgressHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug().Int("clients", count).Msg("WebSocket client connected")

	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
			h.logger.Debug().Msg("WebSocket client disconnected")
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// ScenarioStarted broadcasts a scenario start event.
func (h *ProgressHub) ScenarioStarted(runID, name string) {
	h.broadcast(ProgressEvent{
		Type:      "scenario_started",
		RunID:     runID,
		Scenario:  name,
		Timestamp: time.Now(),
	})
}

// ScenarioFinished broadcasts a scenario result.
func (h *ProgressHub) ScenarioFinished(runID string, result models.ScenarioResult) {
	h.broadcast(ProgressEvent{
		Type:      "scenario_finished",
		RunID:     runID,
		Scenario:  result.Name,
		Result:    &result,
		Timestamp: time.Now(),
	})
}

// RunFinished broadcasts the completed run.
func (h *ProgressHub) RunFinished(run *models.RunRecord) {
	h.broadcast(ProgressEvent{
		Type:      "run_finished",
		RunID:     run.ID,
		Run:       run,
		Timestamp: time.Now(),
	})
}

func (h *ProgressHub) broadcast(event ProgressEvent) {
	h.mu.Lock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		clients = append(clients, conn)
	}
	h.mu.Unlock()

	for _, conn := range clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug().Err(err).Msg("WebSocket write failed, dropping client")
			h.mu.Lock()
			delete(h.clients, conn)
			h.mu.Unlock()
			conn.Close()
		}
	}
}
