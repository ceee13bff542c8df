package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService opens and closes sessions. Credentials are not verified:
// any email logs in, and unknown emails get a fresh account.
type AuthService struct {
	DB       *gorm.DB
	Sessions *session.Store
	Logger   *zap.Logger
}

func NewAuthService(db *gorm.DB, sessions *session.Store, logger *zap.Logger) *AuthService {
	return &AuthService{
		DB:       db,
		Sessions: sessions,
		Logger:   logger,
	}
}

type LoginResult struct {
	SessionID        string          `json:"token"`
	UserType         models.UserType `json:"userType"`
	AccountID        string          `json:"accountId"`
	ProfileCompleted bool            `json:"profileCompleted"`
	WizardCompleted  bool            `json:"wizardCompleted"`
}

func (s *AuthService) Login(ctx context.Context, req *dtos.LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	userType := models.UserType(req.UserType)

	var accountID string
	var profileDone, wizardDone bool
	switch userType {
	case models.UserTypeEngineer:
		engineer, err := s.findOrCreateEngineer(ctx, email)
		if err != nil {
			return nil, err
		}
		accountID = engineer.ID
		profileDone = len(engineer.Skills) > 0
		wizardDone = engineer.Wizard != nil
	case models.UserTypeCompany:
		company, err := s.findOrCreateCompany(ctx, email)
		if err != nil {
			return nil, err
		}
		accountID = company.ID
		profileDone = company.Industry != ""
	default:
		return nil, errors.Wrapf(ErrWrongUserType, "%q", req.UserType)
	}

	sess := s.Sessions.Session(uuid.NewString())
	if err := sess.Login(ctx, uuid.NewString(), session.Account{UserType: userType, ID: accountID}); err != nil {
		return nil, err
	}
	change := session.Change{Set: map[session.Key]string{}}
	if profileDone {
		change.Set[session.KeyProfileCompleted] = "true"
	}
	if wizardDone {
		change.Set[session.KeyWizardCompleted] = "true"
	}
	if len(change.Set) > 0 {
		if err := s.Sessions.Apply(ctx, sess.ID(), change); err != nil {
			return nil, err
		}
	}

	s.Logger.Info("session opened",
		zap.String("user_type", string(userType)),
		zap.String("account_id", accountID))

	return &LoginResult{
		SessionID:        sess.ID(),
		UserType:         userType,
		AccountID:        accountID,
		ProfileCompleted: profileDone,
		WizardCompleted:  wizardDone,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	return sess.Logout(ctx)
}

func (s *AuthService) findOrCreateEngineer(ctx context.Context, email string) (*models.Engineer, error) {
	var engineer models.Engineer
	err := s.DB.WithContext(ctx).First(&engineer, "email = ?", email).Error
	if err == nil {
		return &engineer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to load engineer")
	}

	engineer = models.Engineer{ID: uuid.NewString(), Name: displayName(email), Email: email}
	if err := s.DB.WithContext(ctx).Create(&engineer).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create engineer")
	}
	return &engineer, nil
}

func (s *AuthService) findOrCreateCompany(ctx context.Context, email string) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).First(&company, "email = ?", email).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "failed to load company")
	}

	// company names are unique, so new accounts are named after their email until the profile is saved
	company = models.Company{ID: uuid.NewString(), Name: email, Email: email}
	if err := s.DB.WithContext(ctx).Create(&company).Error; err != nil {
		return nil, errors.Wrap(err, "failed to create company")
	}
	return &company, nil
}

func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
