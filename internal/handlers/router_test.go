package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/engineer-marketplace/internal/database"
	"github.com/justsurfingit/engineer-marketplace/internal/pending"
	"github.com/justsurfingit/engineer-marketplace/internal/seed"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	sessions *session.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := database.OpenTest(t)
	f, err := seed.Load()
	require.NoError(t, err)
	require.NoError(t, seed.Apply(context.Background(), db, f, zap.NewNop()))

	logger := zap.NewNop()
	runner := pending.NewRunner(time.Second, pending.InstantClock{})
	sessions := session.NewStore(session.NewMemoryBackend())
	jobs := services.NewJobService(db)

	router := NewRouter(Deps{
		Sessions: sessions,
		Auth:     services.NewAuthService(db, sessions, logger),
		Jobs:     jobs,
		Apps:     services.NewApplicationService(db, jobs, runner, logger),
		Matcher:  services.NewMatcherService(db),
		Ratings:  services.NewRatingService(db),
		Profiles: services.NewProfileService(db),
		Wizard:   services.NewWizardService(db, runner, logger),
		LLM:      services.NewLLMService(nil, runner, logger),
		Logger:   logger,
	})
	return &testServer{t: t, router: router, sessions: sessions}
}

// do sends body as JSON and decodes the JSON response into out when out is not nil.
func (s *testServer) do(method, path, token string, body any, out any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func (s *testServer) login(email, userType string) string {
	s.t.Helper()
	var res services.LoginResult
	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": "pw", "userType": userType,
	}, &res)
	require.Equal(s.t, http.StatusOK, w.Code)
	require.NotEmpty(s.t, res.SessionID)
	return res.SessionID
}

type errorBody struct {
	Error string `json:"error"`
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	var body map[string]string
	w := s.do(http.MethodGet, "/api/v1/health", "", nil, &body)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestLoginValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "not-an-email", "password": "pw", "userType": "engineer",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@example.com", "password": "pw", "userType": "admin",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.login("yamada@example.com", "engineer")

	w := s.do(http.MethodPost, "/api/auth/logout", token, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/engineer/applications", token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/nothing", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
