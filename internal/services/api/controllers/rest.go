package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/apper-canvas/dropzone-mesh-link/internal/services/preview"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/repository"
	"github.com/apper-canvas/dropzone-mesh-link/internal/services/uploader"
)

type RestController struct {
	log      *zap.SugaredLogger
	files    repository.FileRepository
	sessions repository.SessionRepository
	uploads  uploader.Uploader
	previews preview.Dispatcher
}

func NewRestController(
	log *zap.SugaredLogger,
	files repository.FileRepository,
	sessions repository.SessionRepository,
	uploads uploader.Uploader,
	previews preview.Dispatcher,
) *RestController {
	return &RestController{
		log:      log,
		files:    files,
		sessions: sessions,
		uploads:  uploads,
		previews: previews,
	}
}

type EnqueueResponse struct {
	Tasks      []uploader.Task      `json:"tasks"`
	Rejections []uploader.Rejection `json:"rejections,omitempty"`
}

func (c *RestController) PostUploadBatch(ctx *gin.Context) {
	mf, err := ctx.MultipartForm()
	if err != nil {
		c.log.With("err", err).Error("failed to open multiform")
		ctx.Status(http.StatusBadRequest)
		return
	}

	headers, ok := mf.File["files"]
	if !ok || len(headers) == 0 {
		ctx.String(http.StatusBadRequest, "no files are provided in request")
		return
	}

	handles := make([]uploader.FileHandle, 0, len(headers))
	for _, fh := range headers {
		handles = append(handles, uploader.FileHandle{
			Name: fh.Filename,
			Size: fh.Size,
			Type: fh.Header.Get("Content-Type"),
		})
	}

	batch := c.uploads.EnqueueBatch(ctx, handles)

	resp := EnqueueResponse{
		Tasks:      batch.Tasks,
		Rejections: batch.Rejections,
	}

	if len(batch.Tasks) == 0 {
		ctx.JSON(http.StatusBadRequest, resp)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

func (c *RestController) GetQueue(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"tasks": c.uploads.Queue()})
}

func (c *RestController) DeleteUpload(ctx *gin.Context) {
	c.uploads.CancelTask(ctx.Param("id"))
	ctx.Status(http.StatusNoContent)
}

func (c *RestController) GetFiles(ctx *gin.Context) {
	files, err := c.files.GetAll(ctx)
	if err != nil {
		c.log.With("err", err).Error("failed to list files")
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"files": files})
}

func (c *RestController) GetFile(ctx *gin.Context) {
	file, err := c.files.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.String(http.StatusNotFound, "file not found")
			return
		}
		c.log.With("err", err).Error("failed to get file")
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, file)
}

func (c *RestController) DeleteFile(ctx *gin.Context) {
	removed, err := c.uploads.DeleteFile(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.String(http.StatusNotFound, "file not found")
			return
		}
		c.log.With("err", err).Error("failed to delete file")
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, removed)
}

func (c *RestController) GetFilePreview(ctx *gin.Context) {
	file, err := c.files.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.String(http.StatusNotFound, "file not found")
			return
		}
		c.log.With("err", err).Error("failed to get file")
		ctx.Status(http.StatusInternalServerError)
		return
	}

	session, err := c.previews.Open(ctx, file)
	if err != nil {
		c.log.With("err", err).Error("failed to open preview")
		ctx.Status(http.StatusInternalServerError)
		return
	}
	defer session.Close()

	ctx.JSON(http.StatusOK, session.View())
}

func (c *RestController) GetSessions(ctx *gin.Context) {
	sessions, err := c.sessions.GetAll(ctx)
	if err != nil {
		c.log.With("err", err).Error("failed to list upload sessions")
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (c *RestController) GetStats(ctx *gin.Context) {
	stats, err := c.uploads.Stats(ctx)
	if err != nil {
		c.log.With("err", err).Error("failed to compute stats")
		ctx.Status(http.StatusInternalServerError)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
