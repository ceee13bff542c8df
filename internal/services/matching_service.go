package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// WorkTypeAll disables the work type filter.
const WorkTypeAll = "all"

type MatcherService struct {
	DB *gorm.DB
}

func NewMatcherService(db *gorm.DB) *MatcherService {
	return &MatcherService{DB: db}
}

type MatchCriteria struct {
	Skills        []string
	ExperienceMin int
	WorkType      string
}

func CriteriaFromQuery(q dtos.MatchingQuery) MatchCriteria {
	return MatchCriteria{
		Skills:        splitList(q.Skills),
		ExperienceMin: q.ExperienceMin,
		WorkType:      strings.TrimSpace(q.WorkType),
	}
}

// FindEngineers returns the engineers that have every requested skill, at
// least the minimum experience and the requested work type.
func (s *MatcherService) FindEngineers(ctx context.Context, c MatchCriteria) ([]models.Engineer, error) {
	var engineers []models.Engineer
	if err := s.DB.WithContext(ctx).Order("match_score DESC, id").Find(&engineers).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load engineers")
	}

	matched := make([]models.Engineer, 0, len(engineers))
	for _, e := range engineers {
		if !containsAll(e.Skills, c.Skills) {
			continue
		}
		if e.Experience < c.ExperienceMin {
			continue
		}
		// An empty work type behaves like "all".
		if c.WorkType != "" && c.WorkType != WorkTypeAll && e.Preferences.WorkType != c.WorkType {
			continue
		}
		matched = append(matched, e)
	}
	return matched, nil
}

// LinkEngineerToJob records a matched engineer as an applicant of one of the company's jobs.
func (s *MatcherService) LinkEngineerToJob(ctx context.Context, companyID string, req *dtos.LinkRequest) (*models.Application, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, "id = ? AND company_id = ?", req.JobID, companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load job")
	}

	var engineer models.Engineer
	err = s.DB.WithContext(ctx).First(&engineer, "id = ?", req.EngineerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEngineerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engineer")
	}

	app := &models.Application{
		ID:           uuid.NewString(),
		EngineerID:   engineer.ID,
		EngineerName: engineer.Name,
		JobID:        job.ID,
		JobTitle:     job.Title,
		CompanyID:    job.CompanyID,
		CompanyName:  job.CompanyName,
		AppliedAt:    time.Now().UTC(),
		Status:       models.ApplicationPending,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Application{}).
			Where("engineer_id = ? AND job_id = ?", engineer.ID, job.ID).
			Count(&count).Error
		if err != nil {
			return errors.Wrap(err, "failed to check existing link")
		}
		if count > 0 {
			return ErrAlreadyLinked
		}
		if err := tx.Create(app).Error; err != nil {
			return errors.Wrap(err, "failed to link engineer")
		}
		err = tx.Model(&models.Job{}).
			Where("id = ?", job.ID).
			UpdateColumn("applicants_count", gorm.Expr("applicants_count + ?", 1)).Error
		return errors.Wrap(err, "failed to count applicant")
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// RecommendedEngineers is how many engineers the company dashboard suggests.
const RecommendedEngineers = 3

// Recommend returns the engineers with the highest match score.
func (s *MatcherService) Recommend(ctx context.Context, limit int) ([]models.Engineer, error) {
	var engineers []models.Engineer
	err := s.DB.WithContext(ctx).Order("match_score DESC, id").Limit(limit).Find(&engineers).Error
	return engineers, errors.Wrap(err, "failed to load recommended engineers")
}

// EngineerDetail is what a company sees on an engineer's page.
type EngineerDetail struct {
	Engineer    models.Engineer `json:"engineer"`
	Evaluations []models.Rating `json:"evaluations"`
	// ResumeURL comes from the engineer's latest application to the company, if any.
	ResumeURL string `json:"resume_url,omitempty"`
}

func (s *MatcherService) EngineerDetail(ctx context.Context, companyID, engineerID string) (*EngineerDetail, error) {
	detail := &EngineerDetail{}
	err := s.DB.WithContext(ctx).First(&detail.Engineer, "id = ?", engineerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEngineerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engineer")
	}

	err = s.DB.WithContext(ctx).
		Where("engineer_id = ?", engineerID).
		Order("evaluated_at DESC, id").
		Find(&detail.Evaluations).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load evaluations")
	}

	var app models.Application
	err = s.DB.WithContext(ctx).
		Where("engineer_id = ? AND company_id = ? AND resume <> ''", engineerID, companyID).
		Order("applied_at DESC").
		Limit(1).
		Find(&app).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load resume")
	}
	detail.ResumeURL = app.Resume
	return detail, nil
}

// SendOffer records a company's direct offer to an engineer.
func (s *MatcherService) SendOffer(ctx context.Context, companyID, engineerID string, req *dtos.OfferRequest) (*models.Offer, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).First(&company, "id = ?", companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load company")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Engineer{}).Where("id = ?", engineerID).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load engineer")
	}
	if count == 0 {
		return nil, ErrEngineerNotFound
	}

	offer := &models.Offer{
		ID:           uuid.NewString(),
		CompanyID:    company.ID,
		CompanyName:  company.Name,
		EngineerID:   engineerID,
		Position:     strings.TrimSpace(req.Position),
		Salary:       req.Salary,
		WorkLocation: req.WorkLocation,
		WorkType:     req.WorkType,
		StartDate:    req.StartDate,
		Message:      req.Message,
	}
	if err := s.DB.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, errors.Wrap(err, "failed to send offer")
	}
	return offer, nil
}

// OffersFor lists the offers an engineer received, newest first.
func (s *MatcherService) OffersFor(ctx context.Context, engineerID string) ([]models.Offer, error) {
	var offers []models.Offer
	err := s.DB.WithContext(ctx).
		Where("engineer_id = ?", engineerID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, errors.Wrap(err, "failed to load offers")
}
