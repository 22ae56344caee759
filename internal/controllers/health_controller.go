package controllers

import (
	"memento/internal/models"
	"memento/internal/services"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/hako/durafmt"
)

type HealthController struct {
	service   services.PredictionServiceInterface
	history   *models.History
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	HistorySize   int     `json:"history_size"`
	Busy          bool    `json:"busy"`
	Phase         string  `json:"phase"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		HistorySize:   hc.history.Len(),
		Busy:          hc.service.Busy(),
		Phase:         string(hc.service.Phase()),
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// formatDuration keeps the three largest units, whole seconds at most.
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	if d <= 0 {
		return "0 seconds"
	}
	return durafmt.Parse(d).LimitFirstN(3).String()
}

func NewHealthController(service services.PredictionServiceInterface, history *models.History) *HealthController {
	return &HealthController{
		service:   service,
		history:   history,
		startTime: time.Now(),
	}
}
