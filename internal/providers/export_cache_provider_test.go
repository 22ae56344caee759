package providers

import (
	"memento/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type exportCacheTestMetrics struct {
	hits   int
	misses int
}

func (m *exportCacheTestMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *exportCacheTestMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *exportCacheTestMetrics) IncExportCacheHits()                              { m.hits++ }
func (m *exportCacheTestMetrics) IncExportCacheMisses()                            { m.misses++ }
func (m *exportCacheTestMetrics) IncGenerations(_ string)                          {}
func (m *exportCacheTestMetrics) IncRejectedGenerations()                          {}
func (m *exportCacheTestMetrics) IncExports(_ string)                              {}
func (m *exportCacheTestMetrics) ObserveRenderDuration(_ time.Duration)            {}

type exportCacheTestInner struct {
	data map[string][]byte
}

func (c *exportCacheTestInner) Get(key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}
func (c *exportCacheTestInner) Set(key string, value []byte) {
	c.data[key] = value
}

func TestExportCacheMeter_Hit(t *testing.T) {
	inner := &exportCacheTestInner{data: map[string][]byte{"export:1": []byte("png")}}
	metrics := &exportCacheTestMetrics{}
	cache := &ExportCacheMeter{images: inner, metrics: metrics, logger: &cacheTestLogger{}}

	val, ok := cache.Get("export:1")
	assert.True(t, ok)
	assert.Equal(t, []byte("png"), val)
	assert.Equal(t, 1, metrics.hits)
	assert.Equal(t, 0, metrics.misses)
}

func TestExportCacheMeter_Miss(t *testing.T) {
	inner := &exportCacheTestInner{data: map[string][]byte{}}
	metrics := &exportCacheTestMetrics{}
	cache := &ExportCacheMeter{images: inner, metrics: metrics, logger: &cacheTestLogger{}}

	val, ok := cache.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Equal(t, 0, metrics.hits)
	assert.Equal(t, 1, metrics.misses)
}

func TestExportCacheMeter_SetDelegates(t *testing.T) {
	inner := &exportCacheTestInner{data: map[string][]byte{}}
	metrics := &exportCacheTestMetrics{}
	cache := &ExportCacheMeter{images: inner, metrics: metrics, logger: &cacheTestLogger{}}

	cache.Set("export:2", []byte("png2"))

	val, ok := inner.Get("export:2")
	assert.True(t, ok)
	assert.Equal(t, []byte("png2"), val)
}

func TestNewExportCacheProvider_DisabledIsPlainNoop(t *testing.T) {
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: false}}
	c := NewExportCacheProvider(conf, &cacheTestLogger{}, &exportCacheTestMetrics{})
	assert.IsType(t, &noopCache{}, c)
}

func TestNewExportCacheProvider_EnabledIsWrapped(t *testing.T) {
	conf := &structures.Config{Cache: structures.CacheConfig{Enabled: true, Size: 1, TTL: time.Minute}}
	metrics := &exportCacheTestMetrics{}
	c := NewExportCacheProvider(conf, &cacheTestLogger{}, metrics)
	assert.IsType(t, &ExportCacheMeter{}, c)

	c.Get("nope")
	assert.Equal(t, 1, metrics.misses)
}
