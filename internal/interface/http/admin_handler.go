package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/application"
	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/interface/middleware"
	"github.com/eventora/marketplace-api/pkg/helpers"
	"github.com/eventora/marketplace-api/pkg/response"
)

// AdminHandler exposes the moderation queue. Routes run behind
// Authorize(admin, super_admin).
type AdminHandler struct {
	Admin  *application.AdminService
	Logger *logrus.Logger
	Env    string
}

func NewAdminHandler(admin *application.AdminService, logger *logrus.Logger, env string) *AdminHandler {
	return &AdminHandler{Admin: admin, Logger: logger, Env: env}
}

func (h *AdminHandler) ListPending(c *gin.Context) {
	page := helpers.ParsePagination(c)
	queue, err := h.Admin.ListPending(c.Request.Context(), page)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, queue, "", nil)
}

func (h *AdminHandler) ApproveService(c *gin.Context) {
	listing, err := h.Admin.ApproveService(c.Request.Context(), h.approver(c), c.Param("serviceId"))
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, listing, "Listing published", nil)
}

func (h *AdminHandler) RejectService(c *gin.Context) {
	listing, err := h.Admin.RejectService(c.Request.Context(), c.Param("serviceId"))
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, listing, "Listing rejected", nil)
}

func (h *AdminHandler) ApproveVenue(c *gin.Context) {
	venue, err := h.Admin.ApproveVenue(c.Request.Context(), h.approver(c), c.Param("venueId"))
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, venue, "Venue published", nil)
}

func (h *AdminHandler) RejectVenue(c *gin.Context) {
	venue, err := h.Admin.RejectVenue(c.Request.Context(), c.Param("venueId"))
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, venue, "Venue rejected", nil)
}

func (h *AdminHandler) approver(c *gin.Context) entity.Approver {
	return entity.Approver{
		Name:  c.GetString(middleware.CtxUserName),
		Email: c.GetString(middleware.CtxUserEmail),
	}
}
