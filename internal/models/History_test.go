package models

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_Empty(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.List(0))
	_, ok := h.Latest()
	assert.False(t, ok)
}

func TestHistory_NewestFirst(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 5; i++ {
		h.Push(&Prediction{ID: fmt.Sprintf("p%d", i)})
	}

	list := h.List(0)
	require.Len(t, list, 5)
	assert.Equal(t, "p4", list[0].ID)
	assert.Equal(t, "p0", list[4].ID)

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "p4", latest.ID)
}

func TestHistory_Limit(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 5; i++ {
		h.Push(&Prediction{ID: fmt.Sprintf("p%d", i)})
	}

	list := h.List(2)
	require.Len(t, list, 2)
	assert.Equal(t, "p4", list[0].ID)
	assert.Equal(t, "p3", list[1].ID)
	assert.Len(t, h.List(50), 5)
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory()
	h.Push(&Prediction{ID: "x"})

	p, ok := h.Get("x")
	require.True(t, ok)
	assert.Equal(t, "x", p.ID)

	_, ok = h.Get("y")
	assert.False(t, ok)
}

func TestHistory_PushNil(t *testing.T) {
	h := NewHistory()
	h.Push(nil)
	assert.Equal(t, 0, h.Len())
}

func TestHistory_ListIsSnapshot(t *testing.T) {
	h := NewHistory()
	h.Push(&Prediction{ID: "a"})
	list := h.List(0)
	h.Push(&Prediction{ID: "b"})
	assert.Len(t, list, 1)
}

func TestHistory_ConcurrentPush(t *testing.T) {
	h := NewHistory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.Push(&Prediction{ID: fmt.Sprintf("p%d", i)})
			_ = h.List(3)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, h.Len())
}
