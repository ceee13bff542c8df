package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"go.uber.org/zap"
)

// ChatHandler answers the AI chat widget.
type ChatHandler struct {
	LLMService *services.LLMService
	Logger     *zap.Logger
}

func NewChatHandler(llm *services.LLMService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{LLMService: llm, Logger: logger}
}

// Chat is the POST /api/chat endpoint. It echoes the user's message next to the reply.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req dtos.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sent := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.ChatRoleUser,
		Content:   req.Content,
		Timestamp: time.Now().UTC(),
	}

	reply, err := h.LLMService.Reply(c.Request.Context(), req.Content)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages": []models.ChatMessage{sent, *reply},
	})
}
