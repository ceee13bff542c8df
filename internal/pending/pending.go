// Package pending models a network round-trip that the marketplace only
// simulates: a fixed delay on an injectable clock followed by the operation.
package pending

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Clock is the time source a Runner waits on.
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// Timer fires once on C. Stop releases a timer nobody waits on any more.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTimer(d time.Duration) Timer { return realTimer{time.NewTimer(d)} }

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }

// RealClock is the wall clock.
var RealClock Clock = realClock{}

// ErrCanceled is returned when the context ends before the delay elapses.
var ErrCanceled = errors.New("operation canceled")

type Outcome int

const (
	Succeeded Outcome = iota
	Failed
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	}
	return "unknown"
}

// Classify maps a Run error to its outcome.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Succeeded
	case errors.Is(err, ErrCanceled):
		return Canceled
	default:
		return Failed
	}
}

type Runner struct {
	Delay time.Duration
	Clock Clock
}

func NewRunner(delay time.Duration, clock Clock) *Runner {
	if clock == nil {
		clock = RealClock
	}
	return &Runner{Delay: delay, Clock: clock}
}

// Run waits the configured delay, then calls op. op is never called when ctx
// is done first.
func (r *Runner) Run(ctx context.Context, op func(ctx context.Context) error) error {
	if r.Delay > 0 {
		timer := r.Clock.NewTimer(r.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Wrap(ErrCanceled, ctx.Err().Error())
		case <-timer.C():
		}
	} else if err := ctx.Err(); err != nil {
		return errors.Wrap(ErrCanceled, err.Error())
	}
	return op(ctx)
}

// Do is Run for operations that produce a value.
func Do[T any](ctx context.Context, r *Runner, op func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := r.Run(ctx, func(ctx context.Context) error {
		var err error
		out, err = op(ctx)
		return err
	})
	return out, err
}
