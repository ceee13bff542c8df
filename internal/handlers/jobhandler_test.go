package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/services"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJobsEndpoint(t *testing.T) {
	s := newTestServer(t)

	var page services.JobPage
	w := s.do(http.MethodGet, "/api/jobs?skills=React&location="+url.QueryEscape("東京"), "", nil, &page)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, services.JobsPerPage, page.PerPage)

	w = s.do(http.MethodGet, "/api/jobs?minSalary=-1", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJobsRejectsOtherMethods(t *testing.T) {
	s := newTestServer(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := s.do(method, "/api/jobs", "", nil, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "GET", w.Header().Get("Allow"), method)
	}
}

func TestGetJobEndpoint(t *testing.T) {
	s := newTestServer(t)

	var body struct {
		Job        models.Job `json:"job"`
		HasApplied bool       `json:"hasApplied"`
	}
	w := s.do(http.MethodGet, "/api/jobs/1", "", nil, &body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "フルスタックエンジニア", body.Job.Title)
	assert.False(t, body.HasApplied)

	token := s.login("yamada@example.com", "engineer")
	w = s.do(http.MethodGet, "/api/jobs/1", token, nil, &body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.HasApplied)

	var e errorBody
	w = s.do(http.MethodGet, "/api/jobs/42", "", nil, &e)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "求人が見つかりません", e.Error)
}

func TestApplyEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.login("sato@example.com", "engineer")

	var entry session.AppliedJob
	w := s.do(http.MethodPost, "/api/jobs/2/apply", token, nil, &entry)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2", entry.JobID)
	assert.Equal(t, models.ApplicationPending, entry.Status)

	var e errorBody
	w = s.do(http.MethodPost, "/api/jobs/2/apply", token, nil, &e)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "この求人には既に応募済みです", e.Error)

	var list struct {
		Applications []session.AppliedJob `json:"applications"`
	}
	w = s.do(http.MethodGet, "/api/engineer/applications", token, nil, &list)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, list.Applications, 1)
	assert.Equal(t, "フロントエンドエンジニア", list.Applications[0].JobTitle)

	w = s.do(http.MethodPost, "/api/jobs/2/apply", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	company := s.login("jobs@web.example.com", "company")
	w = s.do(http.MethodPost, "/api/jobs/2/apply", company, nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDraftJobsAreHiddenFromEngineers(t *testing.T) {
	s := newTestServer(t)
	company := s.login("hr@tech.example.com", "company")

	var draft models.Job
	w := s.do(http.MethodPost, "/api/company/projects", company, map[string]any{
		"title":       "下書き案件",
		"description": "未公開",
		"salary":      "500,000円/月",
		"location":    "東京都千代田区",
	}, &draft)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/api/jobs/"+draft.ID, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	engineer := s.login("sato@example.com", "engineer")
	w = s.do(http.MethodPost, "/api/jobs/"+draft.ID+"/apply", engineer, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
