package session

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/pkg/errors"
)

const flagTrue = "true"

// Session is the typed view over one session's entries. It is the single
// source of truth for "auth present", "profile complete" and "wizard complete".
type Session struct {
	store *Store
	id    string
}

func (s *Session) ID() string { return s.id }

func (s *Session) entries(ctx context.Context) (map[string]string, error) {
	entries, err := s.store.backend.Load(ctx, s.id)
	return entries, errors.Wrap(err, "failed to load session")
}

// Flags is a snapshot of the booleans that gate navigation.
type Flags struct {
	Authenticated    bool
	ProfileCompleted bool
	WizardCompleted  bool
}

func (s *Session) Flags(ctx context.Context) (Flags, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return Flags{}, err
	}
	_, hasToken := entries[string(KeyToken)]
	return Flags{
		Authenticated:    hasToken,
		ProfileCompleted: entries[string(KeyProfileCompleted)] == flagTrue,
		WizardCompleted:  entries[string(KeyWizardCompleted)] == flagTrue,
	}, nil
}

// Account is who the session belongs to.
type Account struct {
	UserType models.UserType
	ID       string
}

func (s *Session) Account(ctx context.Context) (Account, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return Account{}, err
	}
	return Account{
		UserType: models.UserType(entries[string(KeyUserType)]),
		ID:       entries[string(KeyAccountID)],
	}, nil
}

// Login writes the presence token and the account the session acts as.
func (s *Session) Login(ctx context.Context, token string, account Account) error {
	return s.store.Apply(ctx, s.id, Change{Set: map[Key]string{
		KeyToken:     token,
		KeyUserType:  string(account.UserType),
		KeyAccountID: account.ID,
	}})
}

func (s *Session) Logout(ctx context.Context) error {
	return s.store.Clear(ctx, s.id)
}

func (s *Session) MarkProfileCompleted(ctx context.Context) error {
	return s.store.Set(ctx, s.id, KeyProfileCompleted, flagTrue)
}

// WizardProgress is the in-progress wizard state as persisted.
type WizardProgress struct {
	Answers []byte
	Step    int
}

// WizardProgress returns the saved progress; ok is false when no answers were saved.
// A missing or malformed step resolves to 0.
func (s *Session) WizardProgress(ctx context.Context) (progress WizardProgress, ok bool, err error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return progress, false, err
	}
	answers, ok := entries[string(KeyWizardAnswers)]
	if !ok {
		return progress, false, nil
	}
	progress.Answers = []byte(answers)
	if step, err := strconv.Atoi(entries[string(KeyWizardStep)]); err == nil && step >= 0 {
		progress.Step = step
	}
	return progress, true, nil
}

func (s *Session) SaveWizardProgress(ctx context.Context, progress WizardProgress) error {
	return s.store.Apply(ctx, s.id, Change{Set: map[Key]string{
		KeyWizardAnswers: string(progress.Answers),
		KeyWizardStep:    strconv.Itoa(progress.Step),
	}})
}

// CompleteWizard sets the completion flag and drops the progress keys in one write.
func (s *Session) CompleteWizard(ctx context.Context) error {
	return s.store.Apply(ctx, s.id, Change{
		Set:    map[Key]string{KeyWizardCompleted: flagTrue},
		Delete: []Key{KeyWizardAnswers, KeyWizardStep},
	})
}

// AppliedJob is the engineer-side record of an application kept in the session.
type AppliedJob struct {
	ID        string                   `json:"id"`
	JobID     string                   `json:"jobId"`
	JobTitle  string                   `json:"jobTitle"`
	Company   string                   `json:"company"`
	AppliedAt time.Time                `json:"appliedAt"`
	Status    models.ApplicationStatus `json:"status"`
}

func (s *Session) Applications(ctx context.Context) ([]AppliedJob, error) {
	raw, ok, err := s.store.Get(ctx, s.id, KeyApplications)
	if err != nil || !ok {
		return []AppliedJob{}, err
	}
	var apps []AppliedJob
	if err := json.Unmarshal([]byte(raw), &apps); err != nil {
		return nil, errors.Wrap(err, "failed to decode applications")
	}
	return apps, nil
}

func (s *Session) HasApplied(ctx context.Context, jobID string) (bool, error) {
	apps, err := s.Applications(ctx)
	if err != nil {
		return false, err
	}
	for _, a := range apps {
		if a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Session) AddApplication(ctx context.Context, app AppliedJob) error {
	apps, err := s.Applications(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(append(apps, app))
	if err != nil {
		return errors.Wrap(err, "failed to encode applications")
	}
	return s.store.Set(ctx, s.id, KeyApplications, string(data))
}
