package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventora/marketplace-api/internal/application"
	"github.com/eventora/marketplace-api/internal/domain/entity"
	"github.com/eventora/marketplace-api/internal/interface/middleware"
	"github.com/eventora/marketplace-api/pkg/response"
	"github.com/eventora/marketplace-api/pkg/validation"
)

type AuthHandler struct {
	Auth   *application.AuthService
	Logger *logrus.Logger
	Env    string
}

func NewAuthHandler(auth *application.AuthService, logger *logrus.Logger, env string) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger, Env: env}
}

// Register creates an account and sends the verification code.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "Registered. Check your email for the verification code.", nil)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req application.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	res, err := h.Auth.VerifyEmail(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Email verified", nil)
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req application.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	if err := h.Auth.ResendVerificationOTP(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Verification code sent", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	res, err := h.Auth.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Logged in", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req application.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password reset code sent", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req application.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	if err := h.Auth.ResetPassword(c.Request.Context(), req); err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password updated", nil)
}

// SubmitOnboarding stores the provider profile for the authenticated user.
func (h *AuthHandler) SubmitOnboarding(c *gin.Context) {
	var req entity.ProviderOnboarding
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}
	u, err := h.Auth.SubmitOnboarding(c.Request.Context(), c.GetString(middleware.CtxUserID), &req)
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, u, "Onboarding submitted", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Auth.GetProfile(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		response.FromError(c, h.Logger, h.Env, err)
		return
	}
	response.Success(c, http.StatusOK, u, "", nil)
}
