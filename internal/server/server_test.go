package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/specto/internal/common"
	"github.com/ternarybob/specto/internal/models"
)

type fakeStorage struct {
	runs map[string]*models.RunRecord
}

func (f *fakeStorage) SaveRun(run *models.RunRecord) error {
	f.runs[run.ID] = run
	return nil
}

func (f *fakeStorage) GetRun(id string) (*models.RunRecord, error) {
	run, ok := f.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return run, nil
}

func (f *fakeStorage) ListRuns(limit int) ([]*models.RunRecord, error) {
	var out []*models.RunRecord
	for _, run := range f.runs {
		out = append(out, run)
	}
	return out, nil
}

func (f *fakeStorage) Close() error { return nil }

func newTestServer(t *testing.T, trigger TriggerFunc) (*httptest.Server, *fakeStorage) {
	t.Helper()

	storage := &fakeStorage{runs: map[string]*models.RunRecord{}}
	storage.runs["run_abc"] = &models.RunRecord{
		ID:        "run_abc",
		Surface:   "classic",
		TargetURL: "http://localhost:3344",
		StartedAt: time.Now(),
		Scenarios: []models.ScenarioResult{
			{Name: "form_fill", Status: models.ScenarioStatusPassed},
		},
	}

	logger := arbor.NewLogger()
	hub := NewProgressHub(logger)
	srv := New(common.NewDefaultConfig(), logger, storage, hub, trigger)

	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)
	return ts, storage
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestStatusEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/status")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"surface":"classic"`)
}

func TestVersionEndpoint(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/version")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"version"`)
}

func TestListRuns(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/runs")
	assert.Equal(t, http.StatusOK, status)

	var payload struct {
		Count int                 `json:"count"`
		Runs  []*models.RunRecord `json:"runs"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	assert.Equal(t, 1, payload.Count)
	assert.Equal(t, "run_abc", payload.Runs[0].ID)
}

func TestGetRun(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/runs/run_abc")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"id":"run_abc"`)

	status, _ = get(t, ts.URL+"/api/runs/run_nope")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGetRunReport(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/api/runs/run_abc/report")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(body, "# Run Report run_abc"))
}

func TestTriggerRun(t *testing.T) {
	triggered := make(chan struct{}, 1)
	ts, _ := newTestServer(t, func(ctx context.Context) error {
		triggered <- struct{}{}
		return nil
	})

	resp, err := http.Post(ts.URL+"/api/runs", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case <-triggered:
	case <-time.After(2 * time.Second):
		t.Fatal("trigger was not invoked")
	}
}

func TestTriggerRunDisabled(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/runs", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnknownAPIRoute(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	status, _ := get(t, ts.URL+"/api/whatever")
	assert.Equal(t, http.StatusNotFound, status)
}
