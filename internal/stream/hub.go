package stream

import (
	"sort"
	"sync"
	"time"
)

const (
	EventPhase      = "phase"
	EventPrediction = "prediction"
	EventCountdown  = "countdown"
	EventRetired    = "retired"
)

const defaultSubscriberBufSize = 64

type Event struct {
	TS   string `json:"ts"`
	Seq  uint64 `json:"seq"`
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Hub fans session events out to SSE subscribers. It remembers the last
// event of every type so late subscribers can render the current state.
// Slow subscribers lose events instead of blocking publishers.
type Hub struct {
	mu      sync.Mutex
	nextSeq uint64
	latest  map[string]Event
	subs    map[chan Event]struct{}
	bufSize int
	closed  bool
}

func NewHub() *Hub {
	return &Hub{
		latest:  make(map[string]Event),
		subs:    make(map[chan Event]struct{}),
		bufSize: defaultSubscriberBufSize,
	}
}

func (h *Hub) Publish(eventType string, data any) Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextSeq++
	ev := Event{
		TS:   time.Now().UTC().Format(time.RFC3339Nano),
		Seq:  h.nextSeq,
		Type: eventType,
		Data: data,
	}
	if h.closed {
		return ev
	}
	h.latest[eventType] = ev

	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// Forget drops the remembered event of a type, e.g. when the displayed
// prediction is retired and its countdown must not be replayed.
func (h *Hub) Forget(eventType string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.latest, eventType)
}

// Subscribe returns the remembered events in sequence order and a channel
// of new ones. The channel is closed by unsubscribe or by Close.
func (h *Hub) Subscribe() (replay []Event, events <-chan Event, unsubscribe func()) {
	ch := make(chan Event, h.bufSize)

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return nil, ch, func() {}
	}
	for _, ev := range h.latest {
		replay = append(replay, ev)
	}
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	sort.Slice(replay, func(i, j int) bool { return replay[i].Seq < replay[j].Seq })

	return replay, ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close disconnects every subscriber. Later publishes are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.subs {
		delete(h.subs, ch)
		close(ch)
	}
	h.latest = make(map[string]Event)
}
