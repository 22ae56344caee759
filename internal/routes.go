package internal

import (
	"memento/internal/controllers"
	"memento/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, streamController *controllers.StreamController, pageController *controllers.PageController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/{$}", http.HandlerFunc(pageController.Index))
	routers.Post("/api/generate", http.HandlerFunc(apiController.Generate))
	routers.Get("/api/current", http.HandlerFunc(apiController.Current))
	routers.Get("/api/history", http.HandlerFunc(apiController.History))
	routers.Get("/api/predictions/{id}/image", http.HandlerFunc(apiController.Export))
	routers.Get("/api/cues/{cue}", http.HandlerFunc(apiController.Cue))
	routers.Stream("/api/events", http.HandlerFunc(streamController.Events))
	return routers
}
