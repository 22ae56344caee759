package controllers

import (
	"encoding/json"
	"memento/internal/fate"
	"memento/internal/models"
	"memento/internal/services"
	"memento/internal/sound"
	"memento/internal/structures"
	"memento/internal/testutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- local mocks (scoped to controller tests) ---

type mockService struct {
	generateErr  error
	generateHits int
	busy         bool
	phase        fate.Phase
	current      *services.CurrentView
	history      []*models.Prediction
	lastLimit    int
}

func (m *mockService) Generate() error {
	m.generateHits++
	return m.generateErr
}
func (m *mockService) Busy() bool { return m.busy }
func (m *mockService) Phase() fate.Phase {
	if m.phase == "" {
		return fate.PhaseIdle
	}
	return m.phase
}
func (m *mockService) Current() (*services.CurrentView, bool) { return m.current, m.current != nil }
func (m *mockService) History(limit int) []*models.Prediction {
	m.lastLimit = limit
	if m.history == nil {
		return []*models.Prediction{}
	}
	return m.history
}
func (m *mockService) Get(_ string) (*models.Prediction, bool) { return nil, false }
func (m *mockService) Close()                                  {}

type mockExports struct {
	art *services.Artifact
	err error
	ids []string
}

func (m *mockExports) Export(id string) (*services.Artifact, error) {
	m.ids = append(m.ids, id)
	return m.art, m.err
}

// --- helpers ---

func testSynth(enabled bool) *sound.Synth {
	conf := &structures.Config{Sound: structures.SoundConfig{Enabled: enabled, SampleRate: 8000, Volume: 0.5}}
	return sound.NewSynth(conf, &testutil.MockLogger{})
}

func newTestController(svc *mockService, exports *mockExports) *ApiController {
	return NewApiController(&testutil.MockLogger{}, svc, exports, testSynth(true))
}

func samplePrediction() *models.Prediction {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	target := now.Add(90 * time.Second)
	return models.NewPrediction(now, time.UTC, fate.ModeCountdown, fate.Draw{
		TotalSeconds: 90,
		Breakdown:    fate.Decompose(90),
		Target:       &target,
	})
}

// --- Generate ---

func TestGenerate_Accepted(t *testing.T) {
	svc := &mockService{}
	ac := newTestController(svc, &mockExports{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	rr := httptest.NewRecorder()
	ac.Generate(rr, req)

	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, 1, svc.generateHits)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp["status"])
}

func TestGenerate_BusyIsConflict(t *testing.T) {
	svc := &mockService{generateErr: fate.ErrBusy, busy: true, phase: fate.PhaseDisturbance2}
	ac := newTestController(svc, &mockExports{})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	rr := httptest.NewRecorder()
	ac.Generate(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "busy", resp["status"])
	assert.Equal(t, "disturbance2", resp["phase"])
}

func TestGenerate_ClosedSession(t *testing.T) {
	svc := &mockService{generateErr: services.ErrClosed}
	ac := newTestController(svc, &mockExports{})

	rr := httptest.NewRecorder()
	ac.Generate(rr, httptest.NewRequest(http.MethodPost, "/api/generate", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

// --- Current ---

func TestCurrent_NoContentWhenEmpty(t *testing.T) {
	ac := newTestController(&mockService{}, &mockExports{})

	rr := httptest.NewRecorder()
	ac.Current(rr, httptest.NewRequest(http.MethodGet, "/api/current", nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.Bytes())
}

func TestCurrent_ReturnsPredictionAndCountdown(t *testing.T) {
	p := samplePrediction()
	b := fate.Decompose(61)
	svc := &mockService{current: &services.CurrentView{Prediction: p, Countdown: &b, State: "active", Human: "1 minute 1 second"}}
	ac := newTestController(svc, &mockExports{})

	rr := httptest.NewRecorder()
	ac.Current(rr, httptest.NewRequest(http.MethodGet, "/api/current", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Prediction map[string]any `json:"prediction"`
		Countdown  map[string]any `json:"countdown"`
		State      string         `json:"state"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, p.ID, resp.Prediction["id"])
	assert.Equal(t, "18.10.2026, 09:30:00", resp.Prediction["date"])
	assert.Equal(t, float64(1), resp.Prediction["minutes"])
	assert.Equal(t, float64(30), resp.Prediction["seconds"])
	assert.Equal(t, float64(1), resp.Countdown["minutes"])
	assert.Equal(t, float64(1), resp.Countdown["seconds"])
	assert.Equal(t, "active", resp.State)
}

// --- History ---

func TestHistory_DefaultReturnsAll(t *testing.T) {
	svc := &mockService{history: []*models.Prediction{samplePrediction(), samplePrediction()}}
	ac := newTestController(svc, &mockExports{})

	rr := httptest.NewRecorder()
	ac.History(rr, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, 0, svc.lastLimit)
}

func TestHistory_EmptyIsArray(t *testing.T) {
	ac := newTestController(&mockService{}, &mockExports{})

	rr := httptest.NewRecorder()
	ac.History(rr, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	assert.Equal(t, "[]", rr.Body.String())
}

func TestHistory_LimitParsing(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		code      int
		wantLimit int
	}{
		{"numeric", "?limit=5", http.StatusOK, 5},
		{"zero means all", "?limit=0", http.StatusOK, 0},
		{"clamped", "?limit=999999", http.StatusOK, maxHistoryLimit},
		{"negative", "?limit=-1", http.StatusBadRequest, 0},
		{"garbage", "?limit=abc", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{lastLimit: -42}
			ac := newTestController(svc, &mockExports{})

			rr := httptest.NewRecorder()
			ac.History(rr, httptest.NewRequest(http.MethodGet, "/api/history"+tt.query, nil))

			assert.Equal(t, tt.code, rr.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.wantLimit, svc.lastLimit)
			} else {
				assert.Equal(t, -42, svc.lastLimit)
			}
		})
	}
}

// --- Export ---

func TestExport_Attachment(t *testing.T) {
	exports := &mockExports{art: &services.Artifact{FileName: "memento-mori-abc.png", Data: []byte("\x89PNG")}}
	ac := newTestController(&mockService{}, exports)

	req := httptest.NewRequest(http.MethodGet, "/api/predictions/abc/image", nil)
	req.SetPathValue("id", "abc")
	rr := httptest.NewRecorder()
	ac.Export(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="memento-mori-abc.png"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rr.Header().Get("Content-Length"))
	assert.Equal(t, []byte("\x89PNG"), rr.Body.Bytes())
	assert.Equal(t, []string{"abc"}, exports.ids)
}

func TestExport_UnknownID(t *testing.T) {
	ac := newTestController(&mockService{}, &mockExports{err: services.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/predictions/nope/image", nil)
	req.SetPathValue("id", "nope")
	rr := httptest.NewRecorder()
	ac.Export(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExport_SkippedWithoutRenderer(t *testing.T) {
	ac := newTestController(&mockService{}, &mockExports{})

	req := httptest.NewRequest(http.MethodGet, "/api/predictions/abc/image", nil)
	req.SetPathValue("id", "abc")
	rr := httptest.NewRecorder()
	ac.Export(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.Bytes())
}

// --- Cue ---

func TestCue_ServesWAV(t *testing.T) {
	ac := newTestController(&mockService{}, &mockExports{})

	req := httptest.NewRequest(http.MethodGet, "/api/cues/reveal", nil)
	req.SetPathValue("cue", "reveal")
	rr := httptest.NewRecorder()
	ac.Cue(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "audio/wav", rr.Header().Get("Content-Type"))
	assert.Equal(t, "RIFF", rr.Body.String()[:4])
}

func TestCue_Unknown(t *testing.T) {
	ac := newTestController(&mockService{}, &mockExports{})

	req := httptest.NewRequest(http.MethodGet, "/api/cues/scream", nil)
	req.SetPathValue("cue", "scream")
	rr := httptest.NewRecorder()
	ac.Cue(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCue_SilentAfterRelease(t *testing.T) {
	synth := testSynth(true)
	synth.Close()
	ac := NewApiController(&testutil.MockLogger{}, &mockService{}, &mockExports{}, synth)

	req := httptest.NewRequest(http.MethodGet, "/api/cues/reveal", nil)
	req.SetPathValue("cue", "reveal")
	rr := httptest.NewRecorder()
	ac.Cue(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}
