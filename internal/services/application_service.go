package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/pending"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ApplicationService struct {
	DB     *gorm.DB
	Jobs   *JobService
	Runner *pending.Runner
	Logger *zap.Logger
}

func NewApplicationService(db *gorm.DB, jobs *JobService, runner *pending.Runner, logger *zap.Logger) *ApplicationService {
	return &ApplicationService{
		DB:     db,
		Jobs:   jobs,
		Runner: runner,
		Logger: logger,
	}
}

// Apply records an engineer's application to a job, on the company side
// and in the engineer's session.
func (s *ApplicationService) Apply(ctx context.Context, sess *session.Session, jobID string) (*session.AppliedJob, error) {
	account, err := sess.Account(ctx)
	if err != nil {
		return nil, err
	}
	if account.UserType != models.UserTypeEngineer {
		return nil, ErrWrongUserType
	}

	job, err := s.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	applied, err := s.HasApplied(ctx, sess, account.ID, jobID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	var engineer models.Engineer
	err = s.DB.WithContext(ctx).First(&engineer, "id = ?", account.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEngineerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engineer")
	}

	return pending.Do(ctx, s.Runner, func(ctx context.Context) (*session.AppliedJob, error) {
		app := models.Application{
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

		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&app).Error; err != nil {
				return errors.Wrap(err, "failed to create application")
			}
			err := tx.Model(&models.Job{}).
				Where("id = ?", job.ID).
				UpdateColumn("applicants_count", gorm.Expr("applicants_count + ?", 1)).Error
			return errors.Wrap(err, "failed to count applicant")
		})
		if err != nil {
			return nil, err
		}

		entry := session.AppliedJob{
			ID:        app.ID,
			JobID:     job.ID,
			JobTitle:  job.Title,
			Company:   job.CompanyName,
			AppliedAt: app.AppliedAt,
			Status:    app.Status,
		}
		if err := sess.AddApplication(ctx, entry); err != nil {
			return nil, err
		}

		s.Logger.Info("application submitted",
			zap.String("application_id", app.ID),
			zap.String("job_id", job.ID),
			zap.String("engineer_id", engineer.ID))
		return &entry, nil
	})
}

// HasApplied checks the session first and falls back to the stored applications.
func (s *ApplicationService) HasApplied(ctx context.Context, sess *session.Session, engineerID, jobID string) (bool, error) {
	applied, err := sess.HasApplied(ctx, jobID)
	if err != nil || applied {
		return applied, err
	}
	if engineerID == "" {
		return false, nil
	}

	var count int64
	err = s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("engineer_id = ? AND job_id = ?", engineerID, jobID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check applications")
	}
	return count > 0, nil
}

// ListForEngineer returns the applications recorded in the engineer's session.
func (s *ApplicationService) ListForEngineer(ctx context.Context, sess *session.Session) ([]session.AppliedJob, error) {
	return sess.Applications(ctx)
}

func (s *ApplicationService) ListForCompany(ctx context.Context, companyID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, errors.Wrap(err, "failed to load applications")
}

// Update changes the selection status and/or the note of one of the company's applications.
func (s *ApplicationService) Update(ctx context.Context, companyID, id string, req *dtos.ApplicationUpdateRequest) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).First(&app, "id = ? AND company_id = ?", id, companyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load application")
	}

	if req.Status != nil {
		status := models.ApplicationStatus(*req.Status)
		if !status.Valid() {
			return nil, errors.Wrapf(ErrInvalidStatus, "%q", *req.Status)
		}
		app.Status = status
	}
	if req.Note != nil {
		app.Note = *req.Note
	}

	if err := s.DB.WithContext(ctx).Save(&app).Error; err != nil {
		return nil, errors.Wrap(err, "failed to update application")
	}
	s.Logger.Info("application updated",
		zap.String("application_id", app.ID),
		zap.String("status", string(app.Status)))
	return &app, nil
}

// ApplicationStats counts a company's applications per selection stage. Every stage is present.
type ApplicationStats struct {
	Total    int                              `json:"total"`
	Statuses map[models.ApplicationStatus]int `json:"statuses"`
}

func (s *ApplicationService) StatsForCompany(ctx context.Context, companyID string) (*ApplicationStats, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Count  int
	}
	err := s.DB.WithContext(ctx).Model(&models.Application{}).
		Select("status, count(*) AS count").
		Where("company_id = ?", companyID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to count applications")
	}

	stats := &ApplicationStats{Statuses: make(map[models.ApplicationStatus]int, len(models.ApplicationStatusLabels))}
	for status := range models.ApplicationStatusLabels {
		stats.Statuses[status] = 0
	}
	for _, r := range rows {
		stats.Statuses[r.Status] += r.Count
		stats.Total += r.Count
	}
	return stats, nil
}
