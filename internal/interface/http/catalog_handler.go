package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/application"
	"github.com/eventora/marketplace-api/pkg/helpers"
	"github.com/eventora/marketplace-api/pkg/response"
)

// CatalogHandler serves the public search endpoint. No auth: browsing
// the published catalog is open to everyone.
type CatalogHandler struct {
	Catalog *application.CatalogService
	Logger  *logrus.Logger
	Env     string
}

func NewCatalogHandler(catalog *application.CatalogService, logger *logrus.Logger, env string) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog, Logger: logger, Env: env}
}

// search pages are capped below the general listing limit to keep
// deep-pagination load off the index
const maxSearchLimit = 50

func (h *CatalogHandler) Search(c *gin.Context) {
	page := helpers.ParsePagination(c)
	if page.Limit > maxSearchLimit {
		page.Limit = maxSearchLimit
	}
	docs, total, err := h.Catalog.Search(c.Request.Context(), c.Query("q"), c.Query("kind"), page)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "", helpers.NewPageMeta(page, total))
}
