package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/auth"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"go.uber.org/zap"
)

type JobHandler struct {
	JobService         *services.JobService
	ApplicationService *services.ApplicationService
	Logger             *zap.Logger
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService, a *services.ApplicationService, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		JobService:         j,
		ApplicationService: a,
		Logger:             logger,
	}
}

// ListJobs is the GET /api/jobs endpoint
func (h *JobHandler) ListJobs(c *gin.Context) {
	var q dtos.JobListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	page, err := h.JobService.ListJobs(c.Request.Context(), services.FilterFromQuery(q))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetJob is the GET /api/jobs/:id endpoint. hasApplied is only meaningful for a signed-in engineer.
func (h *JobHandler) GetJob(c *gin.Context) {
	ctx := c.Request.Context()
	job, err := h.JobService.GetJob(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	hasApplied := false
	if sess := auth.FromContext(c); sess != nil && sess.ID() != "" {
		account, err := sess.Account(ctx)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		if account.UserType == models.UserTypeEngineer {
			hasApplied, err = h.ApplicationService.HasApplied(ctx, sess, account.ID, job.ID)
			if err != nil {
				respondError(c, h.Logger, err)
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"job":        job,
		"hasApplied": hasApplied,
	})
}

// Apply is the POST /api/jobs/:id/apply endpoint
func (h *JobHandler) Apply(c *gin.Context) {
	entry, err := h.ApplicationService.Apply(c.Request.Context(), auth.FromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}
