package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/auth"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"github.com/justsurfingit/engineer-marketplace/internal/wizard"
	"go.uber.org/zap"
)

type WizardHandler struct {
	WizardService *services.WizardService
	Logger        *zap.Logger
}

func NewWizardHandler(w *services.WizardService, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{WizardService: w, Logger: logger}
}

// open restores the caller's wizard. It returns nil after it has already answered the request.
func (h *WizardHandler) open(c *gin.Context) *wizard.Wizard {
	w, to, err := h.WizardService.Open(c.Request.Context(), auth.FromContext(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return nil
	}
	if to != wizard.NoRedirect {
		redirect(c, to)
		return nil
	}
	return w
}

// Show is the GET /api/wizard endpoint
func (h *WizardHandler) Show(c *gin.Context) {
	if w := h.open(c); w != nil {
		c.JSON(http.StatusOK, w.View())
	}
}

// Answer is the PUT /api/wizard/answer endpoint; value is a string or a list of strings.
func (h *WizardHandler) Answer(c *gin.Context) {
	var req dtos.WizardAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var answer wizard.Answer
	if err := json.Unmarshal(req.Value, &answer); err != nil {
		badRequest(c, err)
		return
	}

	w := h.open(c)
	if w == nil {
		return
	}
	if err := w.SetAnswer(c.Request.Context(), answer); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, w.View())
}

// Next is the POST /api/wizard/next endpoint. On the last step it submits the answers.
func (h *WizardHandler) Next(c *gin.Context) {
	w := h.open(c)
	if w == nil {
		return
	}
	submitted, err := w.Next(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if submitted {
		c.JSON(http.StatusOK, gin.H{
			"completed": true,
			"redirect":  string(wizard.RedirectDashboard),
		})
		return
	}
	c.JSON(http.StatusOK, w.View())
}

func (h *WizardHandler) Back(c *gin.Context) {
	w := h.open(c)
	if w == nil {
		return
	}
	if err := w.Back(c.Request.Context()); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, w.View())
}
