package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/models"
)

func TestBroadcastWithoutClients(t *testing.T) {
	hub := NewProgressHub(arbor.NewLogger())
	// Must not panic or block
	hub.ScenarioStarted("run_x", "form_fill")
	hub.RunFinished(&models.RunRecord{ID: "run_x"})
}

func TestProgressStream(t *testing.T) {
	hub := NewProgressHub(arbor.NewLogger())
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWebSocket)
	ts := httptest.NewServer(mux)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Registration races the first broadcast; wait for the client map
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.ScenarioFinished("run_x", models.ScenarioResult{
		Name:   "form_fill",
		Status: models.ScenarioStatusPassed,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event ProgressEvent
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, "scenario_finished", event.Type)
	assert.Equal(t, "run_x", event.RunID)
	assert.Equal(t, "form_fill", event.Scenario)
	require.NotNil(t, event.Result)
	assert.Equal(t, models.ScenarioStatusPassed, event.Result.Status)
}
