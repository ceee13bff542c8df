package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/auth"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"go.uber.org/zap"
)

type EngineerHandler struct {
	ApplicationService *services.ApplicationService
	ProfileService     *services.ProfileService
	RatingService      *services.RatingService
	MatcherService     *services.MatcherService
	Logger             *zap.Logger
}

func NewEngineerHandler(a *services.ApplicationService, p *services.ProfileService, r *services.RatingService, m *services.MatcherService, logger *zap.Logger) *EngineerHandler {
	return &EngineerHandler{
		ApplicationService: a,
		ProfileService:     p,
		RatingService:      r,
		MatcherService:     m,
		Logger:             logger,
	}
}

func (h *EngineerHandler) Applications(c *gin.Context) {
	apps, err := h.ApplicationService.ListForEngineer(c.Request.Context(), auth.FromContext(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *EngineerHandler) SaveProfile(c *gin.Context) {
	var req dtos.EngineerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	engineer, err := h.ProfileService.SaveEngineer(c.Request.Context(), auth.FromContext(c), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, engineer)
}

func (h *EngineerHandler) Ratings(c *gin.Context) {
	var q dtos.RatingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	account := auth.AccountFromContext(c)
	summary, err := h.RatingService.ListForEngineer(c.Request.Context(), account.ID, q.Query, q.Sort)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *EngineerHandler) Offers(c *gin.Context) {
	offers, err := h.MatcherService.OffersFor(c.Request.Context(), auth.AccountFromContext(c).ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}
