package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingsEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.login("yamada@example.com", "engineer")

	var summary services.RatingSummary
	w := s.do(http.MethodGet, "/api/engineer/ratings?sort=score", token, nil, &summary)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, summary.Ratings, 3)
	assert.Equal(t, 4.8, summary.Ratings[0].Score)
	assert.Equal(t, 4.5, summary.Average)

	w = s.do(http.MethodGet, "/api/engineer/ratings?q="+url.QueryEscape("在庫"), token, nil, &summary)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, summary.Ratings, 1)
	assert.Equal(t, "在庫管理システム開発", summary.Ratings[0].ProjectName)
	assert.Equal(t, 4.5, summary.Average)

	w = s.do(http.MethodGet, "/api/engineer/ratings?sort=name", token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatEndpoint(t *testing.T) {
	s := newTestServer(t)

	var body struct {
		Messages []models.ChatMessage `json:"messages"`
	}
	w := s.do(http.MethodPost, "/api/chat", "", map[string]string{"content": "おすすめの案件は？"}, &body)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Messages, 2)
	assert.Equal(t, models.ChatRoleUser, body.Messages[0].Role)
	assert.Equal(t, models.ChatRoleAssistant, body.Messages[1].Role)
	assert.Equal(t, services.CannedReply, body.Messages[1].Content)

	var e errorBody
	w = s.do(http.MethodPost, "/api/chat", "", map[string]string{"content": "   "}, &e)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.ErrEmptyMessage.Error(), e.Error)
}
