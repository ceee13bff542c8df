package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/auth"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"go.uber.org/zap"
)

// CompanyHandler serves the company console. Every route runs behind auth.Require for company accounts.
type CompanyHandler struct {
	JobService         *services.JobService
	ApplicationService *services.ApplicationService
	MatcherService     *services.MatcherService
	ProfileService     *services.ProfileService
	RatingService      *services.RatingService
	Logger             *zap.Logger
}

func (h *CompanyHandler) companyID(c *gin.Context) string {
	return auth.AccountFromContext(c).ID
}

// Dashboard sums up the company's applications and suggests engineers.
func (h *CompanyHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := h.ApplicationService.StatsForCompany(ctx, h.companyID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	engineers, err := h.MatcherService.Recommend(ctx, services.RecommendedEngineers)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": stats, "recommendedEngineers": engineers})
}

func (h *CompanyHandler) ListProjects(c *gin.Context) {
	jobs, err := h.JobService.ListProjects(c.Request.Context(), h.companyID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": jobs})
}

func (h *CompanyHandler) CreateProject(c *gin.Context) {
	var req dtos.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	// creating the job
	job, err := h.JobService.CreateProject(c.Request.Context(), h.companyID(c), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *CompanyHandler) UpdateProject(c *gin.Context) {
	var req dtos.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	job, err := h.JobService.UpdateProject(c.Request.Context(), h.companyID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *CompanyHandler) ListApplications(c *gin.Context) {
	apps, err := h.ApplicationService.ListForCompany(c.Request.Context(), h.companyID(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *CompanyHandler) UpdateApplication(c *gin.Context) {
	var req dtos.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	app, err := h.ApplicationService.Update(c.Request.Context(), h.companyID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *CompanyHandler) Matching(c *gin.Context) {
	var q dtos.MatchingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	engineers, err := h.MatcherService.FindEngineers(c.Request.Context(), services.CriteriaFromQuery(q))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"engineers": engineers})
}

func (h *CompanyHandler) Link(c *gin.Context) {
	var req dtos.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	app, err := h.MatcherService.LinkEngineerToJob(c.Request.Context(), h.companyID(c), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *CompanyHandler) SaveProfile(c *gin.Context) {
	var req dtos.CompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	company, err := h.ProfileService.SaveCompany(c.Request.Context(), auth.FromContext(c), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Engineer(c *gin.Context) {
	detail, err := h.MatcherService.EngineerDetail(c.Request.Context(), h.companyID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CompanyHandler) SendOffer(c *gin.Context) {
	var req dtos.OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	offer, err := h.MatcherService.SendOffer(c.Request.Context(), h.companyID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	h.Logger.Info("offer sent", zap.String("offer_id", offer.ID), zap.String("engineer_id", offer.EngineerID))
	c.JSON(http.StatusCreated, offer)
}

func (h *CompanyHandler) Ratings(c *gin.Context) {
	var q dtos.RatingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	summary, err := h.RatingService.ListForCompany(c.Request.Context(), h.companyID(c), q.Query, q.Sort)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
