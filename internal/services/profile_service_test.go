package services

import (
	"context"
	"testing"

	"github.com/justsurfingit/engineer-marketplace/internal/dtos"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveEngineerProfileMarksCompleted(t *testing.T) {
	e := newEnv(t)
	s := NewProfileService(e.db)
	ctx := context.Background()
	sess := e.login(t, "s1", models.UserTypeEngineer, "eng2")

	engineer, err := s.SaveEngineer(ctx, sess, &dtos.EngineerProfileRequest{
		Name:       "鈴木花子",
		Email:      "suzuki@example.com",
		Skills:     []string{"Python", "Go", "Python"},
		Experience: 4,
		WorkType:   "正社員",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Go"}, engineer.Skills)
	assert.Equal(t, "正社員", engineer.Preferences.WorkType)

	flags, err := sess.Flags(ctx)
	require.NoError(t, err)
	assert.True(t, flags.ProfileCompleted)

	company := e.login(t, "s2", models.UserTypeCompany, "c1")
	_, err = s.SaveEngineer(ctx, company, &dtos.EngineerProfileRequest{Name: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrWrongUserType)
}

func TestSaveCompanyProfileRenamesJobs(t *testing.T) {
	e := newEnv(t)
	s := NewProfileService(e.db)
	ctx := context.Background()
	sess := e.login(t, "s1", models.UserTypeCompany, "c2")

	company, err := s.SaveCompany(ctx, sess, &dtos.CompanyProfileRequest{
		Name:          "株式会社ウェブソリューションズ",
		Email:         "jobs@web.example.com",
		Industry:      "Web制作",
		EmployeeCount: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, company.EmployeeCount)

	var job models.Job
	require.NoError(t, e.db.First(&job, "id = ?", "2").Error)
	assert.Equal(t, "株式会社ウェブソリューションズ", job.CompanyName)

	flags, err := sess.Flags(ctx)
	require.NoError(t, err)
	assert.True(t, flags.ProfileCompleted)
}

func TestSaveCompanyProfileRejectsTakenName(t *testing.T) {
	e := newEnv(t)
	s := NewProfileService(e.db)
	ctx := context.Background()
	sess := e.login(t, "s1", models.UserTypeCompany, "c2")

	_, err := s.SaveCompany(ctx, sess, &dtos.CompanyProfileRequest{
		Name:  "株式会社テクノロジー",
		Email: "jobs@web.example.com",
	})
	assert.ErrorIs(t, err, ErrCompanyNameTaken)

	var company models.Company
	require.NoError(t, e.db.First(&company, "id = ?", "c2").Error)
	assert.Equal(t, "株式会社ウェブ", company.Name)

	// keeping its own name is fine
	_, err = s.SaveCompany(ctx, sess, &dtos.CompanyProfileRequest{
		Name:  "株式会社ウェブ",
		Email: "jobs@web.example.com",
	})
	assert.NoError(t, err)
}
