package models

import "sync"

// History is an append-only list of predictions read newest first.
type History struct {
	mu    sync.RWMutex
	items []*Prediction
	byID  map[string]*Prediction
}

func NewHistory() *History {
	return &History{
		items: make([]*Prediction, 0),
		byID:  make(map[string]*Prediction),
	}
}

func (h *History) Push(p *Prediction) {
	if p == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = append(h.items, p)
	h.byID[p.ID] = p
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// List returns up to limit predictions, newest first. limit <= 0 means all.
func (h *History) List(limit int) []*Prediction {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Prediction, 0, n)
	for i := len(h.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, h.items[i])
	}
	return out
}

func (h *History) Get(id string) (*Prediction, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.byID[id]
	return p, ok
}

func (h *History) Latest() (*Prediction, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.items) == 0 {
		return nil, false
	}
	return h.items[len(h.items)-1], true
}
