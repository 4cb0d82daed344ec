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

type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager, users repository.UserRepository) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt, Users: users}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/admin")
	grp.Use(middleware.Auth(m.JWT, m.Users))
	grp.Use(middleware.Authorize(entity.RoleAdmin, entity.RoleSuperAdmin))
	grp.Use(middleware.RateLimit(container.GetRedis(), 240, time.Minute, middleware.KeyByUserID()))
	{
		grp.GET("/listings/pending", m.Handler.ListPending)
		grp.PATCH("/services/:serviceId/approve", m.Handler.ApproveService)
		grp.PATCH("/services/:serviceId/reject", m.Handler.RejectService)
		grp.PATCH("/venues/:venueId/approve", m.Handler.ApproveVenue)
		grp.PATCH("/venues/:venueId/reject", m.Handler.RejectVenue)
	}
}
