package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginExistingEngineer(t *testing.T) {
	e := newEnv(t)
	s := NewAuthService(e.db, e.sessions, e.logger)
	ctx := context.Background()

	res, err := s.Login(ctx, &dtos.LoginRequest{Email: "Yamada@example.com", Password: "x", UserType: "engineer"})
	require.NoError(t, err)
	assert.Equal(t, "eng1", res.AccountID)
	assert.True(t, res.ProfileCompleted, "seeded engineers already have a profile")
	assert.False(t, res.WizardCompleted)

	sess := e.sessions.Session(res.SessionID)
	flags, err := sess.Flags(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Flags{Authenticated: true, ProfileCompleted: true}, flags)

	account, err := sess.Account(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Account{UserType: models.UserTypeEngineer, ID: "eng1"}, account)
}

func TestLoginCreatesAccounts(t *testing.T) {
	e := newEnv(t)
	s := NewAuthService(e.db, e.sessions, e.logger)
	ctx := context.Background()

	first, err := s.Login(ctx, &dtos.LoginRequest{Email: "new@example.com", Password: "x", UserType: "engineer"})
	require.NoError(t, err)
	assert.False(t, first.ProfileCompleted)

	second, err := s.Login(ctx, &dtos.LoginRequest{Email: "new@example.com", Password: "x", UserType: "engineer"})
	require.NoError(t, err)
	assert.Equal(t, first.AccountID, second.AccountID)
	assert.NotEqual(t, first.SessionID, second.SessionID, "every login opens a new session")

	var engineer models.Engineer
	require.NoError(t, e.db.First(&engineer, "id = ?", first.AccountID).Error)
	assert.Equal(t, "new", engineer.Name)

	company, err := s.Login(ctx, &dtos.LoginRequest{Email: "hr@startup.example.com", Password: "x", UserType: "company"})
	require.NoError(t, err)
	assert.False(t, company.ProfileCompleted)
	assert.Equal(t, models.UserTypeCompany, company.UserType)
}

func TestLogoutClearsSession(t *testing.T) {
	e := newEnv(t)
	s := NewAuthService(e.db, e.sessions, e.logger)
	ctx := context.Background()

	res, err := s.Login(ctx, &dtos.LoginRequest{Email: "suzuki@example.com", Password: "x", UserType: "engineer"})
	require.NoError(t, err)
	sess := e.sessions.Session(res.SessionID)

	require.NoError(t, s.Logout(ctx, sess))
	flags, err := sess.Flags(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Flags{}, flags)
}
