package controllers

import (
	"bytes"
	"memento/internal/export"
	"memento/internal/fate"
	"memento/internal/providers"
	"memento/internal/structures"
	"net/http"
)

type PageData struct {
	Title        string
	Tagline      string
	CardHeading  string
	CardSubline  string
	ButtonIdle   string
	ButtonBusy   string
	Epitaph      string
	HistoryTitle string
	EmptyHistory [2]string
	Stamp        string
	Labels       [6]string
	Footer       string
	SoundEnabled bool
	Countdown    bool
}

type PageController struct {
	logger providers.Logger
	page   []byte
}

func NewPageController(conf *structures.Config, logger providers.Logger) (*PageController, error) {
	data := PageData{
		Title:        export.Title,
		Tagline:      export.Tagline,
		CardHeading:  "УЗНАЙ СВОЮ СУДЬБУ",
		CardSubline:  "Посмей взглянуть в глаза вечности...",
		ButtonIdle:   "УЗНАТЬ ДАТУ СВОЕЙ СМЕРТИ",
		ButtonBusy:   "ПРЕДСКАЗЫВАЮ...",
		Epitaph:      export.Epitaph,
		HistoryTitle: "АРХИВ СУДЕБ",
		EmptyHistory: [2]string{"Здесь будут записаны все предсказания...", "Пока пусто и тихо, как в могиле"},
		Stamp:        export.Stamp,
		Labels:       export.UnitLabels,
		Footer:       export.Footer,
		SoundEnabled: conf.Sound.Enabled,
		Countdown:    conf.Generator.Mode != fate.ModeUnits,
	}

	var buf bytes.Buffer
	if err := indexPageTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return &PageController{logger: logger, page: buf.Bytes()}, nil
}

func (pc *PageController) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pc.page)
}
