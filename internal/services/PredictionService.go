package services

import (
	"errors"
	"memento/internal/fate"
	"memento/internal/fate/interfaces"
	"memento/internal/models"
	"memento/internal/providers"
	"memento/internal/sound"
	"memento/internal/stream"
	"memento/internal/structures"
	"sync"
	"time"

	"github.com/hako/durafmt"
)

var ErrClosed = errors.New("session closed")

// CurrentView is the displayed prediction together with its live countdown.
type CurrentView struct {
	Prediction *models.Prediction `json:"prediction"`
	Countdown  *fate.Breakdown    `json:"countdown,omitempty"`
	State      string             `json:"state,omitempty"`
	Human      string             `json:"human,omitempty"`
}

type PhaseEvent struct {
	Phase string `json:"phase"`
	Busy  bool   `json:"busy"`
	Cue   string `json:"cue,omitempty"`
}

type CountdownEvent struct {
	ID        string         `json:"id"`
	Countdown fate.Breakdown `json:"countdown"`
	Expired   bool           `json:"expired"`
	Human     string         `json:"human"`
}

type RetiredEvent struct {
	ID string `json:"id"`
}

type PredictionServiceInterface interface {
	Generate() error
	Busy() bool
	Phase() fate.Phase
	Current() (*CurrentView, bool)
	History(limit int) []*models.Prediction
	Get(id string) (*models.Prediction, bool)
	Close()
}

// PredictionService is the page session: one sequence, one displayed
// prediction with at most one live countdown, the history and the cue synth.
type PredictionService struct {
	conf      *structures.Config
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	generator fate.Generator
	history   *models.History
	hub       *stream.Hub
	synth     *sound.Synth
	sequence  *fate.Sequence
	loc       *time.Location
	now       func() time.Time

	mu        sync.Mutex
	current   *models.Prediction
	countdown *fate.Countdown
	closed    bool
}

func NewPredictionService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, generator fate.Generator, history *models.History, hub *stream.Hub, synth *sound.Synth, scheduler interfaces.DelaySchedulerInterface) PredictionServiceInterface {
	return newPredictionService(conf, logger, metrics, generator, history, hub, synth, scheduler, time.Now)
}

func newPredictionService(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, generator fate.Generator, history *models.History, hub *stream.Hub, synth *sound.Synth, scheduler interfaces.DelaySchedulerInterface, now func() time.Time) *PredictionService {
	loc, err := time.LoadLocation(conf.Display.Timezone)
	if err != nil {
		logger.Warnf(providers.TypeApp, "Unknown display timezone %q, using local time: %s", conf.Display.Timezone, err)
		loc = time.Local
	}

	s := &PredictionService{
		conf:      conf,
		logger:    logger,
		metrics:   metrics,
		generator: generator,
		history:   history,
		hub:       hub,
		synth:     synth,
		loc:       loc,
		now:       now,
	}
	s.sequence = fate.NewSequence(conf.Sequence, scheduler, s.onPhase)
	return s
}

// Generate starts a generation sequence. While one is in flight the call is
// rejected with fate.ErrBusy and nothing changes.
func (s *PredictionService) Generate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.sequence.Start(s.reveal); err != nil {
		s.metrics.IncRejectedGenerations()
		s.logger.Debugf(providers.TypeFate, "Generation rejected: %s", err)
		return err
	}
	s.logger.Debugf(providers.TypeFate, "Generation started")
	s.retireLocked()
	return nil
}

func (s *PredictionService) Busy() bool {
	return s.sequence.Busy()
}

func (s *PredictionService) Phase() fate.Phase {
	return s.sequence.Phase()
}

func (s *PredictionService) Current() (*CurrentView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, false
	}

	view := &CurrentView{Prediction: s.current}
	if s.countdown != nil {
		b, state := s.countdown.Current()
		view.Countdown = &b
		view.State = state.String()
		view.Human = humanize(b)
	}
	return view, true
}

func (s *PredictionService) History(limit int) []*models.Prediction {
	return s.history.List(limit)
}

func (s *PredictionService) Get(id string) (*models.Prediction, bool) {
	return s.history.Get(id)
}

// Close tears the session down: pending phases are dropped, the countdown
// stops, the synth releases its clips and subscribers are disconnected.
func (s *PredictionService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.sequence.Cancel()
	if s.countdown != nil {
		s.countdown.Stop()
		s.countdown = nil
	}
	s.mu.Unlock()

	s.synth.Close()
	s.hub.Close()
	s.logger.Infof(providers.TypeFate, "Session closed with %d predictions", s.history.Len())
}

func (s *PredictionService) reveal() {
	now := s.now()
	draw := s.generator.Generate(now)
	p := models.NewPrediction(now, s.loc, s.generator.Mode(), draw)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.history.Push(p)
	s.displayLocked(p)
	s.mu.Unlock()

	s.metrics.IncGenerations(p.Mode)
	s.logger.Infof(providers.TypeFate, "Prediction %s revealed: %s", p.ID, humanize(p.Breakdown))
}

func (s *PredictionService) displayLocked(p *models.Prediction) {
	s.current = p
	s.hub.Publish(stream.EventPrediction, p)
	if !p.HasCountdown() {
		s.hub.Forget(stream.EventCountdown)
		return
	}

	id := p.ID
	cd := fate.NewCountdown(*p.TargetTimestamp, s.conf.Countdown.Interval, s.now, func(b fate.Breakdown, expired bool) {
		s.publishCountdown(id, b, expired)
	})
	s.countdown = cd

	initial, state := cd.Current()
	s.hub.Publish(stream.EventCountdown, newCountdownEvent(id, initial, state == fate.CountdownExpired))
	cd.Start()
}

func (s *PredictionService) publishCountdown(id string, b fate.Breakdown, expired bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.current == nil || s.current.ID != id {
		return
	}
	s.hub.Publish(stream.EventCountdown, newCountdownEvent(id, b, expired))
	if expired {
		s.logger.Infof(providers.TypeFate, "Countdown for %s expired", id)
	}
}

func (s *PredictionService) retireLocked() {
	if s.countdown != nil {
		s.countdown.Stop()
		s.countdown = nil
	}
	if s.current == nil {
		return
	}
	id := s.current.ID
	s.current = nil
	s.hub.Forget(stream.EventPrediction)
	s.hub.Forget(stream.EventCountdown)
	s.hub.Publish(stream.EventRetired, RetiredEvent{ID: id})
}

func (s *PredictionService) onPhase(phase fate.Phase) {
	ev := PhaseEvent{Phase: string(phase), Busy: phase != fate.PhaseDone && phase != fate.PhaseIdle}
	if cue, ok := sound.ParseCue(string(phase)); ok && s.synth.Available() {
		ev.Cue = string(cue)
	}
	s.hub.Publish(stream.EventPhase, ev)
	s.logger.Debugf(providers.TypeFate, "Phase %s", phase)
}

func newCountdownEvent(id string, b fate.Breakdown, expired bool) CountdownEvent {
	return CountdownEvent{ID: id, Countdown: b, Expired: expired, Human: humanize(b)}
}

func humanize(b fate.Breakdown) string {
	if b.IsZero() {
		return "0 seconds"
	}
	return durafmt.Parse(time.Duration(b.TotalSeconds()) * time.Second).LimitFirstN(2).String()
}
