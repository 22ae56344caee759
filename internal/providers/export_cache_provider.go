package providers

import "memento/internal/structures"

// ExportCacheMeter sits in front of the rendered image cache. Every lookup
// from an export request lands in exactly one of the hit or miss counters.
type ExportCacheMeter struct {
	images  CacheProviderInterface
	metrics MetricsProviderInterface
	logger  Logger
}

func (c *ExportCacheMeter) Get(key string) ([]byte, bool) {
	png, ok := c.images.Get(key)
	if !ok {
		c.metrics.IncExportCacheMisses()
		return nil, false
	}
	c.metrics.IncExportCacheHits()
	return png, true
}

func (c *ExportCacheMeter) Set(key string, png []byte) {
	c.images.Set(key, png)
	c.logger.Debugf(TypeApp, "Export image cached: %s (%d bytes)", key, len(png))
}

// NewExportCacheProvider returns the bare cache when caching is off, so a
// disabled cache does not report every export as a miss.
func NewExportCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	images := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return images
	}
	return &ExportCacheMeter{
		images:  images,
		metrics: metrics,
		logger:  logger,
	}
}
