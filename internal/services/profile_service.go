package services

import (
	"context"

	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// SaveEngineer stores the engineer's profile and marks the session's profile as complete.
func (s *ProfileService) SaveEngineer(ctx context.Context, sess *session.Session, req *dtos.EngineerProfileRequest) (*models.Engineer, error) {
	account, err := sess.Account(ctx)
	if err != nil {
		return nil, err
	}
	if account.UserType != models.UserTypeEngineer {
		return nil, ErrWrongUserType
	}

	var engineer models.Engineer
	err = s.DB.WithContext(ctx).First(&engineer, "id = ?", account.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEngineerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engineer")
	}

	engineer.Name = req.Name
	engineer.Email = req.Email
	engineer.Bio = req.Bio
	engineer.Skills = uniqueSkills(req.Skills)
	engineer.Experience = req.Experience
	engineer.HourlyRate = req.HourlyRate
	engineer.Availability = req.Availability
	engineer.AvailableFrom = req.AvailableFrom
	engineer.ImageURL = req.ImageURL
	engineer.Preferences = models.EngineerPreferences{
		WorkLocation: req.WorkLocation,
		WorkType:     req.WorkType,
		Salary:       req.Salary,
	}
	if err := s.DB.WithContext(ctx).Save(&engineer).Error; err != nil {
		return nil, errors.Wrap(err, "failed to save engineer profile")
	}

	if err := sess.MarkProfileCompleted(ctx); err != nil {
		return nil, err
	}
	return &engineer, nil
}

func (s *ProfileService) SaveCompany(ctx context.Context, sess *session.Session, req *dtos.CompanyProfileRequest) (*models.Company, error) {
	account, err := sess.Account(ctx)
	if err != nil {
		return nil, err
	}
	if account.UserType != models.UserTypeCompany {
		return nil, ErrWrongUserType
	}

	var company models.Company
	err = s.DB.WithContext(ctx).First(&company, "id = ?", account.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load company")
	}

	company.Name = req.Name
	company.Email = req.Email
	company.Description = req.Description
	company.Industry = req.Industry
	company.EmployeeCount = req.EmployeeCount
	company.Location = req.Location
	company.WebsiteURL = req.Website
	company.ContactPerson = req.ContactPerson
	company.ContactPhone = req.ContactPhone

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		err := tx.Model(&models.Company{}).
			Where("name = ? AND id <> ?", company.Name, company.ID).
			Count(&taken).Error
		if err != nil {
			return errors.Wrap(err, "failed to check company name")
		}
		if taken > 0 {
			return ErrCompanyNameTaken
		}
		if err := tx.Save(&company).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCompanyNameTaken
			}
			return errors.Wrap(err, "failed to save company profile")
		}
		// postings carry the company name
		err = tx.Model(&models.Job{}).
			Where("company_id = ?", company.ID).
			Update("company_name", company.Name).Error
		return errors.Wrap(err, "failed to rename company jobs")
	})
	if err != nil {
		return nil, err
	}

	if err := sess.MarkProfileCompleted(ctx); err != nil {
		return nil, err
	}
	return &company, nil
}
