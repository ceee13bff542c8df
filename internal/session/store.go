// Package session keeps the per-session client state that used to live in
// browser local storage, behind a typed and validated key-value store.
package session

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type Key string

const (
	KeyToken            Key = "token"
	KeyUserType         Key = "userType"
	KeyAccountID        Key = "accountId"
	KeyProfileCompleted Key = "profileCompleted"
	KeyWizardCompleted  Key = "wizardCompleted"
	KeyWizardAnswers    Key = "wizardAnswers"
	KeyWizardStep       Key = "wizardStep"
	KeyApplications     Key = "applications"
)

// schema maps every accepted key to the validator rule its value must pass.
var schema = map[Key]string{
	KeyToken:            "required",
	KeyUserType:         "oneof=engineer company",
	KeyAccountID:        "required",
	KeyProfileCompleted: "oneof=true false",
	KeyWizardCompleted:  "oneof=true false",
	KeyWizardAnswers:    "required,json",
	KeyWizardStep:       "required,number",
	KeyApplications:     "required,json",
}

var (
	ErrUnknownKey   = errors.New("unknown session key")
	ErrInvalidValue = errors.New("invalid session value")
)

// Backend persists raw session entries.
type Backend interface {
	Load(ctx context.Context, sessionID string) (map[string]string, error)
	// Update applies set and del in one step.
	Update(ctx context.Context, sessionID string, set map[string]string, del []string) error
	Clear(ctx context.Context, sessionID string) error
}

type Store struct {
	backend  Backend
	validate *validator.Validate
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend:  backend,
		validate: validator.New(),
	}
}

// Change is a batch of writes and deletes validated and applied together.
type Change struct {
	Set    map[Key]string
	Delete []Key
}

func (s *Store) check(key Key, value string) error {
	rule, ok := schema[key]
	if !ok {
		return errors.Wrapf(ErrUnknownKey, "%q", key)
	}
	if err := s.validate.Var(value, rule); err != nil {
		return errors.Wrapf(ErrInvalidValue, "%s=%q: %v", key, value, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, sessionID string, key Key) (string, bool, error) {
	if _, ok := schema[key]; !ok {
		return "", false, errors.Wrapf(ErrUnknownKey, "%q", key)
	}
	entries, err := s.backend.Load(ctx, sessionID)
	if err != nil {
		return "", false, errors.Wrap(err, "failed to load session")
	}
	v, ok := entries[string(key)]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, sessionID string, key Key, value string) error {
	return s.Apply(ctx, sessionID, Change{Set: map[Key]string{key: value}})
}

func (s *Store) Delete(ctx context.Context, sessionID string, keys ...Key) error {
	return s.Apply(ctx, sessionID, Change{Delete: keys})
}

// Apply validates the whole change before writing any of it.
func (s *Store) Apply(ctx context.Context, sessionID string, change Change) error {
	set := make(map[string]string, len(change.Set))
	for k, v := range change.Set {
		if err := s.check(k, v); err != nil {
			return err
		}
		set[string(k)] = v
	}
	del := make([]string, 0, len(change.Delete))
	for _, k := range change.Delete {
		if _, ok := schema[k]; !ok {
			return errors.Wrapf(ErrUnknownKey, "%q", k)
		}
		del = append(del, string(k))
	}

	if err := s.backend.Update(ctx, sessionID, set, del); err != nil {
		return errors.Wrap(err, "failed to update session")
	}
	return nil
}

// Clear removes every key of the session (logout).
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return errors.Wrap(s.backend.Clear(ctx, sessionID), "failed to clear session")
}

// Session binds the store to one session id.
func (s *Store) Session(sessionID string) *Session {
	return &Session{store: s, id: sessionID}
}
