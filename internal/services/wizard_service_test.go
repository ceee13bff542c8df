package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardSubmitStoresPreferences(t *testing.T) {
	e := newEnv(t)
	s := NewWizardService(e.db, e.runner, e.logger)
	ctx := context.Background()
	sess := e.login(t, "s1", models.UserTypeEngineer, "eng3")
	require.NoError(t, sess.MarkProfileCompleted(ctx))

	answers := []wizard.Answer{
		wizard.Single("500万円〜600万円"),
		wizard.Multiple("東京都", "大阪府"),
		wizard.Multiple("React", "TypeScript"),
	}
	var submitted bool
	for i, a := range answers {
		// every request reopens the wizard from the session
		w, to, err := s.Open(ctx, sess)
		require.NoError(t, err)
		require.Equal(t, wizard.NoRedirect, to)
		require.Equal(t, i, w.Step())

		require.NoError(t, w.SetAnswer(ctx, a))
		submitted, err = w.Next(ctx)
		require.NoError(t, err)
	}
	assert.True(t, submitted)

	var engineer models.Engineer
	require.NoError(t, e.db.First(&engineer, "id = ?", "eng3").Error)
	require.NotNil(t, engineer.Wizard)
	assert.Equal(t, models.WizardPreferences{
		DesiredSalary:    "500万円〜600万円",
		DesiredLocations: []string{"東京都", "大阪府"},
		Skills:           []string{"React", "TypeScript"},
	}, *engineer.Wizard)

	_, to, err := s.Open(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, wizard.RedirectDashboard, to)
}

func TestWizardOpenGuards(t *testing.T) {
	e := newEnv(t)
	s := NewWizardService(e.db, e.runner, e.logger)
	ctx := context.Background()

	_, to, err := s.Open(ctx, e.sessions.Session("anonymous"))
	require.NoError(t, err)
	assert.Equal(t, wizard.RedirectAuthSelect, to)

	fresh := e.login(t, "s1", models.UserTypeEngineer, "eng3")
	_, to, err = s.Open(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, wizard.RedirectProfileForm, to)

	company := e.login(t, "s2", models.UserTypeCompany, "c1")
	_, _, err = s.Open(ctx, company)
	assert.ErrorIs(t, err, ErrWrongUserType)
}

func TestWizardSubmitFailsForUnknownEngineer(t *testing.T) {
	e := newEnv(t)
	s := NewWizardService(e.db, e.runner, e.logger)
	ctx := context.Background()
	sess := e.login(t, "s1", models.UserTypeEngineer, "ghost")
	require.NoError(t, sess.MarkProfileCompleted(ctx))

	w, _, err := s.Open(ctx, sess)
	require.NoError(t, err)
	for _, a := range []wizard.Answer{wizard.Single("300万円未満"), wizard.Multiple("その他地域")} {
		require.NoError(t, w.SetAnswer(ctx, a))
		_, err := w.Next(ctx)
		require.NoError(t, err)
	}
	require.NoError(t, w.SetAnswer(ctx, wizard.Multiple("Go")))

	_, err = w.Next(ctx)
	var submitErr *wizard.SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.ErrorIs(t, err, ErrEngineerNotFound)

	flags, err := sess.Flags(ctx)
	require.NoError(t, err)
	assert.False(t, flags.WizardCompleted)
}
