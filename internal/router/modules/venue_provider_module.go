package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventora/marketplace-api/internal/container"
	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/domain/repository"
	handlers "github.com/eventora/marketplace-api/internal/interface/http"
	"github.com/eventora/marketplace-api/internal/interface/middleware"
	"github.com/eventora/marketplace-api/pkg/helpers"
)

type VenueProviderModule struct {
	Handler *handlers.VenueHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewVenueProviderModule(h *handlers.VenueHandler, jwt *helpers.JWTManager, users repository.UserRepository) *VenueProviderModule {
	return &VenueProviderModule{Handler: h, JWT: jwt, Users: users}
}

func (m *VenueProviderModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/venue-provider/venues")
	grp.Use(middleware.Auth(m.JWT, m.Users))
	grp.Use(middleware.Authorize(entity.RoleVenueProvider))
	grp.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		grp.POST("", m.Handler.Create)
		grp.GET("", m.Handler.List)
		grp.GET("/:venueId", m.Handler.Get)
		grp.PATCH("/:venueId", m.Handler.Update)
		grp.DELETE("/:venueId", m.Handler.Delete)
	}
}
