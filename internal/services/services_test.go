package services

import (
	"context"
	"testing"
	"time"

	"github.com/justsurfingit/engineer-marketplace/internal/database"
	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/justsurfingit/engineer-marketplace/internal/pending"
	"github.com/justsurfingit/engineer-marketplace/internal/seed"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	db       *gorm.DB
	sessions *session.Store
	runner   *pending.Runner
	logger   *zap.Logger
}

// newEnv returns a seeded database, an in-memory session store and a runner
// whose delay elapses immediately.
func newEnv(t *testing.T) *env {
	t.Helper()
	db := database.OpenTest(t)
	f, err := seed.Load()
	require.NoError(t, err)
	require.NoError(t, seed.Apply(context.Background(), db, f, zap.NewNop()))

	return &env{
		db:       db,
		sessions: session.NewStore(session.NewMemoryBackend()),
		runner:   pending.NewRunner(time.Second, pending.InstantClock{}),
		logger:   zap.NewNop(),
	}
}

func (e *env) login(t *testing.T, id string, userType models.UserType, accountID string) *session.Session {
	t.Helper()
	sess := e.sessions.Session(id)
	require.NoError(t, sess.Login(context.Background(), "tok-"+id, session.Account{UserType: userType, ID: accountID}))
	return sess
}
