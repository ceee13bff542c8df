package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// JobsPerPage is the page size of the job listing.
const JobsPerPage = 9

type JobService struct {
	DB *gorm.DB
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

type JobFilter struct {
	Query     string
	Location  string
	Skills    []string
	MinSalary int
	Page      int
}

// FilterFromQuery normalizes the bound query string. Skills may arrive
// repeated or comma separated.
func FilterFromQuery(q dtos.JobListQuery) JobFilter {
	return JobFilter{
		Query:     strings.TrimSpace(q.Query),
		Location:  strings.TrimSpace(q.Location),
		Skills:    splitList(q.Skills),
		MinSalary: q.MinSalary,
		Page:      q.Page,
	}
}

type JobPage struct {
	Jobs       []models.Job `json:"jobs"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PerPage    int          `json:"per_page"`
	TotalPages int          `json:"total_pages"`
}

// ListJobs returns the open postings matching f, one page at a time.
func (s *JobService) ListJobs(ctx context.Context, f JobFilter) (*JobPage, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Where("status = ?", models.JobStatusOpen).
		Order("posted_at DESC, id").
		Find(&jobs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load jobs")
	}

	matched := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if f.matches(job) {
			matched = append(matched, job)
		}
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	totalPages := (len(matched) + JobsPerPage - 1) / JobsPerPage
	start, end := len(matched), len(matched)
	if page <= totalPages {
		start = (page - 1) * JobsPerPage
		end = min(start+JobsPerPage, len(matched))
	}

	return &JobPage{
		Jobs:       matched[start:end],
		Total:      len(matched),
		Page:       page,
		PerPage:    JobsPerPage,
		TotalPages: totalPages,
	}, nil
}

func (f JobFilter) matches(job models.Job) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(job.Title), q) &&
			!strings.Contains(strings.ToLower(job.Description), q) &&
			!strings.Contains(strings.ToLower(job.CompanyName), q) {
			return false
		}
	}
	if f.Location != "" && !strings.Contains(job.Location, f.Location) {
		return false
	}
	if !containsAll(job.Skills, f.Skills) {
		return false
	}
	if f.MinSalary > 0 {
		lower, ok := minSalaryOf(job.Salary)
		if !ok || lower < f.MinSalary {
			return false
		}
	}
	return true
}

// minSalaryOf reads the lower bound of a salary range such as "500,000 - 800,000円/月".
func minSalaryOf(salary string) (int, bool) {
	lower, _, _ := strings.Cut(salary, "-")
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, lower)
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetJob returns an open posting. Drafts and closed postings are reported as not found.
func (s *JobService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return s.findJob(ctx, s.DB.Where("status = ?", models.JobStatusOpen), id)
}

func (s *JobService) findJob(ctx context.Context, scope *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := scope.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load job %s", id)
	}
	return &job, nil
}

// ListProjects returns every job a company has posted, drafts included.
func (s *JobService) ListProjects(ctx context.Context, companyID string) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, errors.Wrap(err, "failed to load projects")
}

func (s *JobService) CreateProject(ctx context.Context, companyID string, req *dtos.ProjectRequest) (*models.Job, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).First(&company, "id = ?", companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load company")
	}

	status := models.JobStatusDraft
	if req.Status != "" {
		status = models.JobStatus(req.Status)
	}

	// creating the job
	job := &models.Job{
		ID:          uuid.NewString(),
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Title:       req.Title,
		Description: req.Description,
		Salary:      req.Salary,
		Location:    req.Location,
		Skills:      uniqueSkills(req.Skills),
		Type:        req.Type,
		PostedAt:    time.Now().Format("2006-01-02"),
		Status:      status,
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create project")
	}
	return job, nil
}

func (s *JobService) UpdateProject(ctx context.Context, companyID, id string, req *dtos.ProjectRequest) (*models.Job, error) {
	job, err := s.findJob(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != companyID {
		return nil, ErrJobNotFound
	}

	job.Title = req.Title
	job.Description = req.Description
	job.Salary = req.Salary
	job.Location = req.Location
	job.Type = req.Type
	job.Skills = uniqueSkills(req.Skills)
	if req.Status != "" {
		job.Status = models.JobStatus(req.Status)
	}
	if err := s.DB.WithContext(ctx).Save(job).Error; err != nil {
		return nil, errors.Wrap(err, "failed to update project")
	}
	return job, nil
}

// uniqueSkills trims, drops blanks and keeps the first occurrence of each skill.
func uniqueSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func containsAll(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, h := range have {
		set[h] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}
