package controllers

import (
	"bufio"
	"context"
	"encoding/json"
	"memento/internal/stream"
	"memento/internal/testutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEvent(t *testing.T, r *bufio.Reader) stream.Event {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev stream.Event
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		return ev
	}
}

func TestEvents_ReplayThenLive(t *testing.T) {
	hub := stream.NewHub()
	defer hub.Close()
	hub.Publish(stream.EventPhase, map[string]any{"phase": "done", "busy": false})

	sc := NewStreamController(&testutil.MockLogger{}, hub)
	srv := httptest.NewServer(http.HandlerFunc(sc.Events))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no", resp.Header.Get("X-Accel-Buffering"))

	reader := bufio.NewReader(resp.Body)
	replayed := readEvent(t, reader)
	assert.Equal(t, stream.EventPhase, replayed.Type)
	assert.Equal(t, uint64(1), replayed.Seq)

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish(stream.EventRetired, map[string]string{"id": "abc"})

	live := readEvent(t, reader)
	assert.Equal(t, stream.EventRetired, live.Type)
	assert.Equal(t, uint64(2), live.Seq)
	assert.Equal(t, map[string]any{"id": "abc"}, live.Data)
}

func TestEvents_EndsWhenHubCloses(t *testing.T) {
	hub := stream.NewHub()
	sc := NewStreamController(&testutil.MockLogger{}, hub)
	srv := httptest.NewServer(http.HandlerFunc(sc.Events))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	hub.Close()

	done := make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("stream did not end after hub close")
	}
}

func TestEvents_UnsubscribesOnDisconnect(t *testing.T) {
	hub := stream.NewHub()
	defer hub.Close()
	sc := NewStreamController(&testutil.MockLogger{}, hub)
	srv := httptest.NewServer(http.HandlerFunc(sc.Events))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	_ = resp.Body.Close()

	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}
