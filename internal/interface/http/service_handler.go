package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/application"
	"github.com/eventora/marketplace-api/internal/interface/middleware"
	"github.com/eventora/marketplace-api/pkg/helpers"
	"github.com/eventora/marketplace-api/pkg/response"
	"github.com/eventora/marketplace-api/pkg/validation"
)

// ServiceHandler exposes the service-provider catalog endpoints. All
// routes run behind Auth plus an Authorize(service_provider) gate, so
// the owner id is always the authenticated user.
type ServiceHandler struct {
	Listings *application.ServiceListingService
	Logger   *logrus.Logger
	Env      string
}

func NewServiceHandler(listings *application.ServiceListingService, logger *logrus.Logger, env string) *ServiceHandler {
	return &ServiceHandler{Listings: listings, Logger: logger, Env: env}
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req application.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	listing, err := h.Listings.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusCreated, listing, "Listing created", nil)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	listing, err := h.Listings.Get(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("serviceId"))
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, listing, "", nil)
}

func (h *ServiceHandler) List(c *gin.Context) {
	page := helpers.ParsePagination(c)
	items, total, err := h.Listings.List(c.Request.Context(), c.GetString(middleware.CtxUserID), page)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, items, "", helpers.NewPageMeta(page, total))
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req application.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	listing, err := h.Listings.Update(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("serviceId"), req)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, listing, "Listing updated", nil)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.Listings.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("serviceId")); err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Listing deleted", nil)
}
