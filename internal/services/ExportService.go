package services

import (
	"errors"
	"memento/internal/export"
	"memento/internal/models"
	"memento/internal/providers"
	"time"
)

var ErrNotFound = errors.New("prediction not found")

const exportCachePrefix = "export:"

type Artifact struct {
	FileName string
	Data     []byte
}

type ExportServiceInterface interface {
	// Export returns nil without an error when no renderer is available.
	Export(id string) (*Artifact, error)
}

type ExportService struct {
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	cache    providers.CacheProviderInterface
	history  *models.History
	renderer export.RendererInterface
}

func NewExportService(logger providers.Logger, metrics providers.MetricsProviderInterface, cache providers.CacheProviderInterface, history *models.History, renderer export.RendererInterface) ExportServiceInterface {
	return &ExportService{
		logger:   logger,
		metrics:  metrics,
		cache:    cache,
		history:  history,
		renderer: renderer,
	}
}

func (es *ExportService) Export(id string) (*Artifact, error) {
	p, ok := es.history.Get(id)
	if !ok {
		es.metrics.IncExports("not_found")
		return nil, ErrNotFound
	}

	key := exportCachePrefix + p.ID
	if data, ok := es.cache.Get(key); ok {
		es.metrics.IncExports("cached")
		return &Artifact{FileName: p.FileName(), Data: data}, nil
	}

	start := time.Now()
	data, ok := es.renderer.Render(p)
	if !ok {
		es.metrics.IncExports("skipped")
		es.logger.Debugf(providers.TypeGet, "Export of %s skipped: no renderer", p.ID)
		return nil, nil
	}
	es.metrics.ObserveRenderDuration(time.Since(start))
	es.metrics.IncExports("rendered")

	es.cache.Set(key, data)
	return &Artifact{FileName: p.FileName(), Data: data}, nil
}
