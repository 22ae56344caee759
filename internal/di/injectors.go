//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"memento/internal"
	"memento/internal/controllers"
	"memento/internal/export"
	"memento/internal/fate"
	"memento/internal/models"
	"memento/internal/providers"
	"memento/internal/services"
	"memento/internal/sound"
	"memento/internal/stream"
	"memento/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		models.NewHistory,
		providers.NewMetricsProvider,
		providers.NewExportCacheProvider,

		stream.NewHub,
		sound.NewSynth,
		fate.NewGenerator,
		fate.NewTimerScheduler,
		export.NewPNGRenderer,
		services.NewPredictionService,
		services.NewExportService,
		controllers.NewApiController,
		controllers.NewStreamController,
		controllers.NewPageController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
