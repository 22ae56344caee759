package sound

import (
	"errors"
	"fmt"
	"io"
	"math"
	"memento/internal/providers"
	"memento/internal/structures"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

type Cue string

const (
	CueDisturbance1 Cue = "disturbance1"
	CueDisturbance2 Cue = "disturbance2"
	CueReveal       Cue = "reveal"
)

// voice describes one oscillator clip: a sine whose frequency slides from
// freq to freq+sweep, shaped by an exponential decay and an optional
// tremolo.
type voice struct {
	freq     float64
	sweep    float64
	seconds  float64
	decay    float64
	tremolo  float64
	overtone float64
}

var voices = map[Cue]voice{
	CueDisturbance1: {freq: 110, sweep: -40, seconds: 0.45, decay: 4, tremolo: 9, overtone: 0.3},
	CueDisturbance2: {freq: 82, sweep: -30, seconds: 0.6, decay: 3, tremolo: 13, overtone: 0.45},
	CueReveal:       {freq: 55, sweep: 0, seconds: 1.6, decay: 1.8, tremolo: 0, overtone: 0.6},
}

func Cues() []Cue {
	return []Cue{CueDisturbance1, CueDisturbance2, CueReveal}
}

func ParseCue(name string) (Cue, bool) {
	c := Cue(name)
	_, ok := voices[c]
	return c, ok
}

// Synth owns the rendered cue clips for the lifetime of a session. After
// Close every lookup misses and callers are expected to stay silent.
type Synth struct {
	mu         sync.RWMutex
	sampleRate int
	clips      map[Cue][]byte
	closed     bool
}

func NewSynth(conf *structures.Config, logger providers.Logger) *Synth {
	s := &Synth{sampleRate: conf.Sound.SampleRate}
	if !conf.Sound.Enabled || conf.Sound.SampleRate <= 0 {
		logger.Infof(providers.TypeApp, "Sound cues disabled")
		s.closed = true
		return s
	}

	s.clips = make(map[Cue][]byte, len(voices))
	for cue, v := range voices {
		clip, err := encodeWAV(render(v, s.sampleRate, conf.Sound.Volume), s.sampleRate)
		if err != nil {
			logger.Errorf(providers.TypeApp, "Sound cue %s not encoded, cues disabled: %v", cue, err)
			s.clips = nil
			s.closed = true
			return s
		}
		s.clips[cue] = clip
	}
	logger.Infof(providers.TypeApp, "Sound cues rendered at %dHz", s.sampleRate)
	return s
}

func (s *Synth) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed
}

func (s *Synth) Clip(cue Cue) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false
	}
	clip, ok := s.clips[cue]
	return clip, ok
}

// Close releases the clips. Safe to call more than once.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.clips = nil
}

func render(v voice, sampleRate int, volume float64) []int {
	n := int(float64(sampleRate) * v.seconds)
	out := make([]int, n)
	phase, phase2 := 0.0, 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		freq := v.freq + v.sweep*t/v.seconds
		phase += 2 * math.Pi * freq / float64(sampleRate)
		phase2 += 2 * math.Pi * freq * 1.5 / float64(sampleRate)

		envelope := math.Exp(-t * v.decay)
		if attack := 0.01; t < attack {
			envelope *= t / attack
		}
		if v.tremolo > 0 {
			envelope *= 0.75 + 0.25*math.Sin(2*math.Pi*v.tremolo*t)
		}

		sample := (math.Sin(phase) + v.overtone*math.Sin(phase2)) / (1 + v.overtone)
		out[i] = int(sample * 32767 * volume * envelope)
	}
	return out
}

const (
	bitDepth  = 16
	pcmFormat = 1
)

// encodeWAV writes mono 16-bit PCM.
func encodeWAV(samples []int, sampleRate int) ([]byte, error) {
	out := &seekBuffer{buf: make([]byte, 0, 44+len(samples)*bitDepth/8)}
	enc := wav.NewEncoder(out, sampleRate, bitDepth, 1, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return nil, fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("finalize header: %w", err)
	}
	return out.buf, nil
}

var errNegativeOffset = errors.New("negative offset")

// seekBuffer is an in-memory io.WriteSeeker; the encoder seeks back to
// patch chunk sizes once the samples are written.
type seekBuffer struct {
	buf []byte
	pos int
}

func (b *seekBuffer) Write(p []byte) (int, error) {
	if end := b.pos + len(p); end > len(b.buf) {
		b.buf = append(b.buf, make([]byte, end-len(b.buf))...)
	}
	copy(b.buf[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.buf))
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	next := base + offset
	if next < 0 {
		return 0, errNegativeOffset
	}
	b.pos = int(next)
	return next, nil
}
