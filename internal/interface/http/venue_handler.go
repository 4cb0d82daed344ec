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

type VenueHandler struct {
	Venues *application.VenueService
	Logger *logrus.Logger
	Env    string
}

func NewVenueHandler(venues *application.VenueService, logger *logrus.Logger, env string) *VenueHandler {
	return &VenueHandler{Venues: venues, Logger: logger, Env: env}
}

func (h *VenueHandler) Create(c *gin.Context) {
	var req application.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	venue, err := h.Venues.Create(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusCreated, venue, "Venue created", nil)
}

func (h *VenueHandler) Get(c *gin.Context) {
	venue, err := h.Venues.Get(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("venueId"))
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, venue, "", nil)
}

func (h *VenueHandler) List(c *gin.Context) {
	page := helpers.ParsePagination(c)
	items, total, err := h.Venues.List(c.Request.Context(), c.GetString(middleware.CtxUserID), page)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, items, "", helpers.NewPageMeta(page, total))
}

func (h *VenueHandler) Update(c *gin.Context) {
	var req application.UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	venue, err := h.Venues.Update(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("venueId"), req)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, venue, "Venue updated", nil)
}

func (h *VenueHandler) Delete(c *gin.Context) {
	if err := h.Venues.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("venueId")); err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Venue deleted", nil)
}
