package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/pending"
	"github.com/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/fake"
	"go.uber.org/zap"
)

// CannedReply is what the assistant answers until a real model is connected.
const CannedReply = "申し訳ありません。現在AIチャット機能は開発中です。"

type LLMService struct {
	Client llms.Model
	Runner *pending.Runner
	Logger *zap.Logger
}

// lockedModel serializes calls to a model that is not safe for concurrent use.
type lockedModel struct {
	mu    sync.Mutex
	model llms.Model
}

func (m *lockedModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model.GenerateContent(ctx, messages, options...)
}

func (m *lockedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.model.Call(ctx, prompt, options...)
}

// NewLLMService wraps client. A nil client falls back to a model that always gives CannedReply.
// Calls to client are not serialized.
func NewLLMService(client llms.Model, runner *pending.Runner, logger *zap.Logger) *LLMService {
	if client == nil {
		client = &lockedModel{model: fake.NewFakeLLM([]string{CannedReply})}
	}
	return &LLMService{
		Client: client,
		Runner: runner,
		Logger: logger,
	}
}

// Reply answers one user message after the simulated round-trip.
func (s *LLMService) Reply(ctx context.Context, content string) (*models.ChatMessage, error) {
	prompt := strings.TrimSpace(content)
	if prompt == "" {
		return nil, ErrEmptyMessage
	}

	return pending.Do(ctx, s.Runner, func(ctx context.Context) (*models.ChatMessage, error) {
		resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
		if err != nil {
			return nil, errors.Wrap(err, "chat model failed")
		}
		s.Logger.Debug("chat reply generated", zap.Int("prompt_len", len(prompt)))
		return &models.ChatMessage{
			ID:        uuid.NewString(),
			Role:      models.ChatRoleAssistant,
			Content:   resp,
			Timestamp: time.Now().UTC(),
		}, nil
	})
}
