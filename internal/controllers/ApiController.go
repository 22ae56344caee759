package controllers

import (
	"errors"
	"memento/internal/fate"
	"memento/internal/providers"
	"memento/internal/services"
	"memento/internal/sound"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const maxHistoryLimit = 1000

type generateResponse struct {
	Status string `json:"status"`
	Phase  string `json:"phase"`
}

type ApiController struct {
	logger  providers.Logger
	service services.PredictionServiceInterface
	exports services.ExportServiceInterface
	synth   *sound.Synth
}

func NewApiController(logger providers.Logger, service services.PredictionServiceInterface, exports services.ExportServiceInterface, synth *sound.Synth) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		exports: exports,
		synth:   synth,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) Generate(w http.ResponseWriter, r *http.Request) {
	err := ac.service.Generate()
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, generateResponse{Status: "accepted", Phase: string(ac.service.Phase())})
	case errors.Is(err, fate.ErrBusy):
		writeJSON(w, http.StatusConflict, generateResponse{Status: "busy", Phase: string(ac.service.Phase())})
	case errors.Is(err, services.ErrClosed):
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
	default:
		ac.logger.Errorf(providers.TypePost, "Generate failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *ApiController) Current(w http.ResponseWriter, r *http.Request) {
	view, ok := ac.service.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n < 0 {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		limit = min(n, maxHistoryLimit)
	}
	writeJSON(w, http.StatusOK, ac.service.History(limit))
}

func (ac *ApiController) Export(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	art, err := ac.exports.Export(id)
	if errors.Is(err, services.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Export of %s failed: %s", id, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if art == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `attachment; filename="`+art.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(art.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(art.Data)
}

func (ac *ApiController) Cue(w http.ResponseWriter, r *http.Request) {
	cue, ok := sound.ParseCue(r.PathValue("cue"))
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	clip, ok := ac.synth.Clip(cue)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("Content-Length", strconv.Itoa(len(clip)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(clip)
}
