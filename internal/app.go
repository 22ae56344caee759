package internal

import (
	"context"
	"errors"
	"fmt"
	"memento/internal/controllers"
	"memento/internal/providers"
	"memento/internal/services"
	"memento/internal/structures"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server

	conf    *structures.Config
	logger  providers.Logger
	service services.PredictionServiceInterface
}

func NewApp(healthController *controllers.HealthController, service services.PredictionServiceInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	// Inner mux: page and API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		handler := route.Handler
		if !route.Streaming {
			handler = providers.CompressionMiddleware(handler)
		}
		apiMux.Handle(route.Url, handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:    conf,
		logger:  logger,
		service: service,
	}
}

// Run serves until ctx is cancelled or the listener fails, then tears the
// session down and shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.logger.Close()
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		a.service.Close()
		return fmt.Errorf("server error: %w", err)
	}

	// Open SSE streams end only once the session closes its hub.
	a.service.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.WebServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
