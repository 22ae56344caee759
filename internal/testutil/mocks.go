package testutil

import (
	"memento/internal/fate/interfaces"
	"memento/internal/models"
	"memento/internal/providers"
	"sort"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Has reports whether at least one entry was logged at level.
func (m *MockLogger) Has(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level {
			return true
		}
	}
	return false
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    int
	CacheHits   int
	CacheMisses int
	Generations map[string]int
	Rejected    int
	Exports     map[string]int
	Renders     int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Generations: make(map[string]int),
		Exports:     make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncExportCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncExportCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncGenerations(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Generations[mode]++
}
func (m *MockMetrics) IncRejectedGenerations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected++
}
func (m *MockMetrics) IncExports(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exports[outcome]++
}
func (m *MockMetrics) ObserveRenderDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Renders++
}

// Generated returns the number of generations recorded for mode.
func (m *MockMetrics) Generated(mode string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Generations[mode]
}

// Exported returns the number of exports recorded with outcome.
func (m *MockMetrics) Exported(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Exports[outcome]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
	Sets int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
	m.Sets++
}

// MockRenderer satisfies export.RendererInterface.
type MockRenderer struct {
	mu    sync.Mutex
	Out   []byte
	Calls int
}

func (m *MockRenderer) Render(p *models.Prediction) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if p == nil || len(m.Out) == 0 {
		return nil, false
	}
	return m.Out, true
}

func (m *MockRenderer) RenderCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// ManualScheduler is a DelaySchedulerInterface driven by Advance instead of
// the wall clock. Callbacks run synchronously on the caller's goroutine.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	owner   *ManualScheduler
	at      time.Duration
	seq     int
	fn      func()
	done    bool
	stopped bool
}

func (t *manualTask) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.done || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) interfaces.CancelableInterface {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &manualTask{owner: s, at: s.now + d, seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the virtual clock forward by d, firing every task that
// becomes due, including tasks scheduled by callbacks along the way.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		next.done = true
		s.now = next.at
		s.mu.Unlock()
		next.fn()
		s.mu.Lock()
	}
	s.now = target
	s.mu.Unlock()
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done && !t.stopped {
			live = append(live, t)
		}
	}
	s.tasks = live
	sort.Slice(s.tasks, func(i, j int) bool {
		if s.tasks[i].at == s.tasks[j].at {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].at < s.tasks[j].at
	})
	if len(s.tasks) == 0 || s.tasks[0].at > target {
		return nil
	}
	return s.tasks[0]
}

// Pending returns the number of tasks that have neither fired nor been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.done && !t.stopped {
			n++
		}
	}
	return n
}
