package fate

import (
	"errors"
	"memento/internal/fate/interfaces"
	"memento/internal/structures"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseDisturbance1 Phase = "disturbance1"
	PhaseDisturbance2 Phase = "disturbance2"
	PhaseReveal       Phase = "reveal"
	PhaseDone         Phase = "done"
)

var ErrBusy = errors.New("generation sequence already running")

// Sequence runs the fixed phase chain of one generation. Each phase
// schedules its successor, so phases fire in delay order. A second Start
// while a chain is in flight is rejected.
type Sequence struct {
	scheduler interfaces.DelaySchedulerInterface
	delays    structures.SequenceConfig
	onPhase   func(Phase)

	busy atomic.Bool

	mu      sync.Mutex
	phase   Phase
	run     uint64
	pending interfaces.CancelableInterface
}

func NewSequence(delays structures.SequenceConfig, scheduler interfaces.DelaySchedulerInterface, onPhase func(Phase)) *Sequence {
	return &Sequence{
		scheduler: scheduler,
		delays:    delays,
		onPhase:   onPhase,
		phase:     PhaseIdle,
	}
}

func (s *Sequence) Busy() bool {
	return s.busy.Load()
}

func (s *Sequence) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start begins a new chain. reveal runs synchronously inside the reveal
// phase, after which the sequence passes through done back to idle.
func (s *Sequence) Start(reveal func()) error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}

	s.mu.Lock()
	s.run++
	run := s.run
	s.pending = s.scheduler.AfterFunc(s.delays.Disturbance1, func() {
		s.advance(run, PhaseDisturbance1, reveal)
	})
	s.mu.Unlock()
	return nil
}

// Cancel drops the in-flight chain, if any, and returns to idle.
func (s *Sequence) Cancel() {
	s.mu.Lock()
	s.run++
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.phase = PhaseIdle
	s.mu.Unlock()
	s.busy.Store(false)
}

func (s *Sequence) advance(run uint64, phase Phase, reveal func()) {
	if !s.enter(run, phase) {
		return
	}
	s.emit(phase)

	var next Phase
	var after time.Duration
	switch phase {
	case PhaseDisturbance1:
		next, after = PhaseDisturbance2, s.delays.Disturbance2-s.delays.Disturbance1
	case PhaseDisturbance2:
		next, after = PhaseReveal, s.delays.Reveal-s.delays.Disturbance2
	case PhaseReveal:
		if reveal != nil {
			reveal()
		}
		s.finish(run)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if run != s.run {
		return
	}
	s.pending = s.scheduler.AfterFunc(after, func() {
		s.advance(run, next, reveal)
	})
}

func (s *Sequence) enter(run uint64, phase Phase) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if run != s.run {
		return false
	}
	s.phase = phase
	s.pending = nil
	return true
}

func (s *Sequence) finish(run uint64) {
	if !s.enter(run, PhaseDone) {
		return
	}
	s.emit(PhaseDone)

	s.mu.Lock()
	if run == s.run {
		s.phase = PhaseIdle
	}
	s.mu.Unlock()
	s.busy.Store(false)
}

func (s *Sequence) emit(phase Phase) {
	if s.onPhase != nil {
		s.onPhase(phase)
	}
}
