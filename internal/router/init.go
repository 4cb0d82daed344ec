package router

import (
	"github.com/eventora/marketplace-api/internal/application"
	"github.com/eventora/marketplace-api/internal/container"
	pginfra "github.com/eventora/marketplace-api/internal/infrastructure/postgres"
	"github.com/eventora/marketplace-api/internal/infrastructure/search"
	handlers "github.com/eventora/marketplace-api/internal/interface/http"
	"github.com/eventora/marketplace-api/internal/router/modules"
)

// InitModules wires every feature module from the container singletons
// and registers them with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	otps := pginfra.NewOTPRepository(pool)
	services := pginfra.NewServiceListingRepository(pool)
	venues := pginfra.NewVenueRepository(pool)

	index := search.NewListingIndex(container.GetES(), cfg.ESListingsIndex, log)

	authSvc := application.NewAuthService(users, otps, jwt, container.GetRabbitPub(), log, cfg.OTPExpiry, cfg.OTPResendCooldown)
	serviceSvc := application.NewServiceListingService(services, index, log)
	venueSvc := application.NewVenueService(venues, index, log)
	adminSvc := application.NewAdminService(services, venues, index, log)
	catalogSvc := application.NewCatalogService(index, log)
	uploadSvc := application.NewUploadService(container.GetGCS(), cfg.GCSBucket, log)

	authH := handlers.NewAuthHandler(authSvc, log, cfg.Env)
	serviceH := handlers.NewServiceHandler(serviceSvc, log, cfg.Env)
	venueH := handlers.NewVenueHandler(venueSvc, log, cfg.Env)
	adminH := handlers.NewAdminHandler(adminSvc, log, cfg.Env)
	catalogH := handlers.NewCatalogHandler(catalogSvc, log, cfg.Env)
	uploadH := handlers.NewUploadHandler(uploadSvc, log, cfg.Env)

	r.Add(modules.NewAuthModule(authH, jwt, users))
	r.Add(modules.NewServiceProviderModule(serviceH, uploadH, jwt, users))
	r.Add(modules.NewVenueProviderModule(venueH, jwt, users))
	r.Add(modules.NewAdminModule(adminH, jwt, users))
	r.Add(modules.NewCatalogModule(catalogH))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
