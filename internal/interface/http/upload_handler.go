package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/application"
	"github.com/eventora/marketplace-api/internal/interface/middleware"
	"github.com/eventora/marketplace-api/pkg/response"
)

// UploadHandler accepts multipart provider media and returns the stored
// object's public URL.
type UploadHandler struct {
	Uploads *application.UploadService
	Logger  *logrus.Logger
	Env     string
}

func NewUploadHandler(uploads *application.UploadService, logger *logrus.Logger, env string) *UploadHandler {
	return &UploadHandler{Uploads: uploads, Logger: logger, Env: env}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "file field is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "could not read uploaded file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Uploads.Upload(
		c.Request.Context(),
		c.GetString(middleware.CtxUserID),
		f,
		fh.Filename,
		fh.Header.Get("Content-Type"),
		fh.Size,
	)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "Uploaded", nil)
}
