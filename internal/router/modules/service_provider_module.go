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

type ServiceProviderModule struct {
	Handler *handlers.ServiceHandler
	Uploads *handlers.UploadHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewServiceProviderModule(h *handlers.ServiceHandler, uploads *handlers.UploadHandler, jwt *helpers.JWTManager, users repository.UserRepository) *ServiceProviderModule {
	return &ServiceProviderModule{Handler: h, Uploads: uploads, JWT: jwt, Users: users}
}

func (m *ServiceProviderModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group("/service-provider/services")
	grp.Use(middleware.Auth(m.JWT, m.Users))
	grp.Use(middleware.Authorize(entity.RoleServiceProvider))
	grp.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID()))
	{
		grp.POST("", m.Handler.Create)
		grp.GET("", m.Handler.List)
		grp.GET("/:serviceId", m.Handler.Get)
		grp.PATCH("/:serviceId", m.Handler.Update)
		grp.DELETE("/:serviceId", m.Handler.Delete)
	}

	// media uploads are shared by every provider role
	upload := rg.Group("/provider/uploads")
	upload.Use(middleware.Auth(m.JWT, m.Users))
	upload.Use(middleware.Authorize(entity.RoleServiceProvider, entity.RoleEventProvider, entity.RoleVenueProvider))
	upload.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID()))
	{
		upload.POST("", m.Uploads.Upload)
	}
}
