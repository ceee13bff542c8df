// Package wizard implements the engineer onboarding questionnaire: a linear
// sequence of questions whose progress is persisted after every change.
package wizard

import (
	"context"
	"encoding/json"

	"github.com/justsurfingit/engineer-marketplace/internal/pending"
	"github.com/justsurfingit/engineer-marketplace/internal/session"
	"github.com/pkg/errors"
)

const (
	MsgSelectRequired = "選択してください"
	MsgSubmitFailed   = "エラーが発生しました。もう一度お試しください。"
)

var (
	// ErrAnswerRequired blocks next when the current answer is empty.
	ErrAnswerRequired = errors.New(MsgSelectRequired)
	ErrInvalidAnswer  = errors.New("answer does not fit the current question")
	ErrCompleted      = errors.New("wizard already completed")
)

// SubmitError is returned when submission fails; progress is left intact so it can be retried.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string { return MsgSubmitFailed }
func (e *SubmitError) Unwrap() error { return e.Err }

// Progress is where the wizard reads and writes its persisted state.
type Progress interface {
	Flags(ctx context.Context) (session.Flags, error)
	WizardProgress(ctx context.Context) (session.WizardProgress, bool, error)
	SaveWizardProgress(ctx context.Context, progress session.WizardProgress) error
	CompleteWizard(ctx context.Context) error
}

// SubmitFunc receives the final answers before the completion flag is written.
type SubmitFunc func(ctx context.Context, answers Answers) error

type Wizard struct {
	steps    []Step
	progress Progress
	runner   *pending.Runner
	submit   SubmitFunc

	step      int
	answers   Answers
	completed bool
}

// Open runs the entry guard and, when it passes, restores saved progress.
// A non-empty Redirect means the caller must navigate there instead.
func Open(ctx context.Context, steps []Step, progress Progress, runner *pending.Runner, submit SubmitFunc) (*Wizard, Redirect, error) {
	flags, err := progress.Flags(ctx)
	if err != nil {
		return nil, NoRedirect, err
	}
	if to := Guard(flags); to != NoRedirect {
		return nil, to, nil
	}

	w := &Wizard{
		steps:    steps,
		progress: progress,
		runner:   runner,
		submit:   submit,
		answers:  Answers{},
	}
	if err := w.restore(ctx); err != nil {
		return nil, NoRedirect, err
	}
	return w, NoRedirect, nil
}

func (w *Wizard) restore(ctx context.Context) error {
	saved, ok, err := w.progress.WizardProgress(ctx)
	if err != nil || !ok {
		return err
	}
	var answers Answers
	if err := json.Unmarshal(saved.Answers, &answers); err != nil || answers == nil {
		// Unreadable progress starts the wizard over.
		return nil
	}
	w.answers = answers
	if saved.Step < len(w.steps) {
		w.step = saved.Step
	}
	return nil
}

func (w *Wizard) persist(ctx context.Context) error {
	if len(w.answers) == 0 {
		return nil
	}
	data, err := json.Marshal(w.answers)
	if err != nil {
		return errors.Wrap(err, "failed to encode wizard answers")
	}
	err = w.progress.SaveWizardProgress(ctx, session.WizardProgress{Answers: data, Step: w.step})
	return errors.Wrap(err, "failed to save wizard progress")
}

func (w *Wizard) Step() int { return w.step }

func (w *Wizard) Current() Step { return w.steps[w.step] }

func (w *Wizard) Completed() bool { return w.completed }

func (w *Wizard) Answers() Answers { return w.answers.clone() }

func (w *Wizard) isLast() bool { return w.step == len(w.steps)-1 }

func (w *Wizard) answer() (Answer, bool) {
	a, ok := w.answers[w.Current().ID]
	return a, ok
}

// SetAnswer replaces the current question's answer and persists progress.
// Blank values are accepted (they clear the selection); anything else must be one of the step's options.
func (w *Wizard) SetAnswer(ctx context.Context, a Answer) error {
	if w.completed {
		return ErrCompleted
	}
	step := w.Current()
	if a.Multi != (step.Type == StepMultiSelect) {
		return errors.Wrapf(ErrInvalidAnswer, "question %d expects %s", step.ID, step.Type)
	}

	if a.Multi {
		seen := make(map[string]bool, len(a.Values))
		values := make([]string, 0, len(a.Values))
		for _, v := range a.Values {
			if !step.offers(v) {
				return errors.Wrapf(ErrInvalidAnswer, "%q is not an option of question %d", v, step.ID)
			}
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		a.Values = values
	} else if a.Valid() && !step.offers(a.Value) {
		return errors.Wrapf(ErrInvalidAnswer, "%q is not an option of question %d", a.Value, step.ID)
	}

	w.answers[step.ID] = a
	return w.persist(ctx)
}

// Next advances one step, or submits on the last step. The step index is
// unchanged when the current answer is missing or blank.
func (w *Wizard) Next(ctx context.Context) (submitted bool, err error) {
	if w.completed {
		return false, ErrCompleted
	}
	if a, ok := w.answer(); !ok || !a.Valid() {
		return false, ErrAnswerRequired
	}

	if !w.isLast() {
		w.step++
		return false, w.persist(ctx)
	}

	if err := w.runSubmit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Wizard) runSubmit(ctx context.Context) error {
	answers := w.answers.clone()
	err := w.runner.Run(ctx, func(ctx context.Context) error {
		if w.submit != nil {
			if err := w.submit(ctx, answers); err != nil {
				return err
			}
		}
		return w.progress.CompleteWizard(ctx)
	})
	if err != nil {
		return &SubmitError{Err: err}
	}
	w.completed = true
	return nil
}

// Back moves to the previous step without validating; at the first step it does nothing.
func (w *Wizard) Back(ctx context.Context) error {
	if w.completed {
		return ErrCompleted
	}
	if w.step == 0 {
		return nil
	}
	w.step--
	return w.persist(ctx)
}
