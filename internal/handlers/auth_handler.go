package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/auth"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	AuthService *services.AuthService
	Logger      *zap.Logger
}

func NewAuthHandler(a *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{AuthService: a, Logger: logger}
}

// Login is the POST /api/auth/login endpoint. The returned token is the session id.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.AuthService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.AuthService.Logout(c.Request.Context(), auth.FromContext(c)); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
