package main

import (
	"log"

	"go.uber.org/dig"

	"github.com/apper-canvas/dropzone-mesh-link/deps"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/api"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/api/controllers"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/preview"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/repository"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/uploader"
)

func main() {
	container := dig.New()

	container.Provide(deps.NewZapLogger)
	container.Provide(repository.NewFileRepository)
	container.Provide(repository.NewSessionRepository)
	container.Provide(uploader.NewSimulatedDriver)
	container.Provide(uploader.New)
	container.Provide(preview.NewFetcher)
	container.Provide(preview.NewKeymap)
	container.Provide(preview.New)
	container.Provide(controllers.NewRestController)
	container.Provide(api.New)

	err := container.Invoke(func(a api.API) error {
		return a.Start()
	})
	if err != nil {
		log.Fatal(err)
	}
}
