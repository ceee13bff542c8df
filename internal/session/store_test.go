package session

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/engineer-marketplace/internal/database"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	return map[string]Backend{
		"memory": NewMemoryBackend(),
		"gorm":   NewGormBackend(database.OpenTest(t)),
	}
}

func TestStoreSchema(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(backend)

			tests := []struct {
				key     Key
				value   string
				wantErr error
			}{
				{KeyToken, "abc", nil},
				{KeyToken, "", ErrInvalidValue},
				{KeyUserType, "engineer", nil},
				{KeyUserType, "admin", ErrInvalidValue},
				{KeyProfileCompleted, "true", nil},
				{KeyProfileCompleted, "yes", ErrInvalidValue},
				{KeyWizardStep, "2", nil},
				{KeyWizardStep, "-1", ErrInvalidValue},
				{KeyWizardStep, "two", ErrInvalidValue},
				{KeyWizardAnswers, `{"1":"x"}`, nil},
				{KeyWizardAnswers, `{"1":`, ErrInvalidValue},
				{KeyApplications, `[]`, nil},
				{Key("theme"), "dark", ErrUnknownKey},
			}

			for _, tt := range tests {
				err := store.Set(ctx, "s1", tt.key, tt.value)
				if tt.wantErr == nil {
					assert.NoError(t, err, "%s=%q", tt.key, tt.value)
				} else {
					assert.True(t, errors.Is(err, tt.wantErr), "%s=%q: got %v", tt.key, tt.value, err)
				}
			}

			_, _, err := store.Get(ctx, "s1", Key("theme"))
			assert.True(t, errors.Is(err, ErrUnknownKey))
		})
	}
}

func TestStoreApplyIsAllOrNothing(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(backend)

			err := store.Apply(ctx, "s1", Change{Set: map[Key]string{
				KeyToken:    "abc",
				KeyUserType: "robot",
			}})
			require.Error(t, err)

			_, ok, err := store.Get(ctx, "s1", KeyToken)
			require.NoError(t, err)
			assert.False(t, ok, "token must not be written when another key in the change is invalid")
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess := NewStore(backend).Session("s1")

			flags, err := sess.Flags(ctx)
			require.NoError(t, err)
			assert.Equal(t, Flags{}, flags)

			require.NoError(t, sess.Login(ctx, "tok", Account{UserType: models.UserTypeEngineer, ID: "eng1"}))
			require.NoError(t, sess.MarkProfileCompleted(ctx))

			flags, err = sess.Flags(ctx)
			require.NoError(t, err)
			assert.Equal(t, Flags{Authenticated: true, ProfileCompleted: true}, flags)

			account, err := sess.Account(ctx)
			require.NoError(t, err)
			assert.Equal(t, Account{UserType: models.UserTypeEngineer, ID: "eng1"}, account)

			require.NoError(t, sess.Logout(ctx))
			flags, err = sess.Flags(ctx)
			require.NoError(t, err)
			assert.Equal(t, Flags{}, flags)
		})
	}
}

func TestSessionWizardProgress(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := NewStore(backend)
			sess := store.Session("s1")

			_, ok, err := sess.WizardProgress(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, sess.SaveWizardProgress(ctx, WizardProgress{Answers: []byte(`{"1":"a"}`), Step: 1}))
			progress, ok, err := sess.WizardProgress(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, 1, progress.Step)
			assert.JSONEq(t, `{"1":"a"}`, string(progress.Answers))

			require.NoError(t, sess.CompleteWizard(ctx))
			_, ok, err = sess.WizardProgress(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, err = store.Get(ctx, "s1", KeyWizardStep)
			require.NoError(t, err)
			assert.False(t, ok)
			v, ok, err := store.Get(ctx, "s1", KeyWizardCompleted)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", v)
		})
	}
}

func TestSessionApplications(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess := NewStore(backend).Session("s1")

			apps, err := sess.Applications(ctx)
			require.NoError(t, err)
			assert.Empty(t, apps)

			applied := AppliedJob{
				ID:        "a1",
				JobID:     "1",
				JobTitle:  "フルスタックエンジニア",
				Company:   "株式会社テクノロジー",
				AppliedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
				Status:    models.ApplicationPending,
			}
			require.NoError(t, sess.AddApplication(ctx, applied))

			has, err := sess.HasApplied(ctx, "1")
			require.NoError(t, err)
			assert.True(t, has)
			has, err = sess.HasApplied(ctx, "2")
			require.NoError(t, err)
			assert.False(t, has)

			apps, err = sess.Applications(ctx)
			require.NoError(t, err)
			assert.Equal(t, []AppliedJob{applied}, apps)
		})
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())

	require.NoError(t, store.Set(ctx, "a", KeyToken, "x"))
	_, ok, err := store.Get(ctx, "b", KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
}
