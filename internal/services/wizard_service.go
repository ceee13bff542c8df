package services

import (
	"context"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/pending"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/justsurfingit/engineer-marketplace/internal/wizard"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WizardService opens the onboarding wizard over a session. The wizard is
// rebuilt from the session on every request.
type WizardService struct {
	DB     *gorm.DB
	Steps  []wizard.Step
	Runner *pending.Runner
	Logger *zap.Logger
}

func NewWizardService(db *gorm.DB, runner *pending.Runner, logger *zap.Logger) *WizardService {
	return &WizardService{
		DB:     db,
		Steps:  wizard.DefaultSteps,
		Runner: runner,
		Logger: logger,
	}
}

// Open returns the wizard, or the redirect the entry guard chose.
func (s *WizardService) Open(ctx context.Context, sess *session.Session) (*wizard.Wizard, wizard.Redirect, error) {
	flags, err := sess.Flags(ctx)
	if err != nil {
		return nil, wizard.NoRedirect, err
	}
	if flags.Authenticated {
		account, err := sess.Account(ctx)
		if err != nil {
			return nil, wizard.NoRedirect, err
		}
		if account.UserType != models.UserTypeEngineer {
			return nil, wizard.NoRedirect, ErrWrongUserType
		}
	}
	return wizard.Open(ctx, s.Steps, sess, s.Runner, s.submitFor(sess))
}

// submitFor stores the final answers on the engineer behind sess.
func (s *WizardService) submitFor(sess *session.Session) wizard.SubmitFunc {
	return func(ctx context.Context, answers wizard.Answers) error {
		account, err := sess.Account(ctx)
		if err != nil {
			return err
		}
		var engineer models.Engineer
		err = s.DB.WithContext(ctx).First(&engineer, "id = ?", account.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEngineerNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to load engineer")
		}
		prefs := answers.Preferences()
		engineer.Wizard = &prefs
		if err := s.DB.WithContext(ctx).Save(&engineer).Error; err != nil {
			return errors.Wrap(err, "failed to save wizard answers")
		}
		s.Logger.Info("wizard completed", zap.String("engineer_id", account.ID))
		return nil
	}
}
