package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apper-canvas/dropzone-mesh-link/env"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/api/controllers"
)

type API interface {
	Start() error
	Stop() error
}

const (
	PathUploads  = "/api/v1/uploads"
	PathFiles    = "/api/v1/files"
	PathSessions = "/api/v1/sessions"
	PathStats    = "/api/v1/stats"
)

type api struct {
	restHost   string
	restServer *http.Server
}

func New(controller *controllers.RestController) (API, error) {
	restHost, err := env.Get(env.RestHost)
	if err != nil {
		return nil, err
	}

	a := api{
		restHost: restHost,
		restServer: &http.Server{
			Addr:    restHost,
			Handler: NewRouter(controller),
		},
	}

	return &a, nil
}

func NewRouter(controller *controllers.RestController) *gin.Engine {
	r := gin.Default()

	r.POST(PathUploads, controller.PostUploadBatch)
	r.GET(PathUploads, controller.GetQueue)
	r.DELETE(PathUploads+"/:id", controller.DeleteUpload)

	r.GET(PathFiles, controller.GetFiles)
	r.GET(PathFiles+"/:id", controller.GetFile)
	r.DELETE(PathFiles+"/:id", controller.DeleteFile)
	r.GET(PathFiles+"/:id/preview", controller.GetFilePreview)

	r.GET(PathSessions, controller.GetSessions)
	r.GET(PathStats, controller.GetStats)

	return r
}

func (a *api) Start() error {
	return a.restServer.ListenAndServe()
}

func (a *api) Stop() error {
	return a.restServer.Shutdown(context.Background())
}
