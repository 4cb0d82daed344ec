package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventora/marketplace-api/internal/container"
	handlers "github.com/eventora/marketplace-api/internal/interface/http"
	"github.com/eventora/marketplace-api/internal/interface/middleware"
)

type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath())
	rg.GET("/listings/search", rl, m.Handler.Search)
}
