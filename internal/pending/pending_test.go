package pending

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunWaitsForClock(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	r := NewRunner(time.Second, clock)

	done := make(chan error, 1)
	ran := make(chan struct{})
	go func() {
		done <- r.Run(context.Background(), func(context.Context) error {
			close(ran)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return clock.Waiters() == 1 }, time.Second, time.Millisecond)
	select {
	case <-ran:
		t.Fatal("operation ran before the delay elapsed")
	default:
	}

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, clock.Waiters())

	clock.Advance(500 * time.Millisecond)
	require.NoError(t, <-done)
	<-ran
}

func TestRunOutcomes(t *testing.T) {
	r := NewRunner(time.Second, InstantClock{})
	boom := errors.New("boom")

	err := r.Run(context.Background(), func(context.Context) error { return nil })
	assert.Equal(t, Succeeded, Classify(err))

	err = r.Run(context.Background(), func(context.Context) error { return boom })
	assert.Equal(t, Failed, Classify(err))
	assert.True(t, errors.Is(err, boom))
}

func TestRunCanceledBeforeDelay(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	r := NewRunner(time.Second, clock)
	ctx, cancel := context.WithCancel(context.Background())

	called := false
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx, func(context.Context) error {
			called = true
			return nil
		})
	}()

	require.Eventually(t, func() bool { return clock.Waiters() == 1 }, time.Second, time.Millisecond)
	cancel()

	err := <-done
	assert.Equal(t, Canceled, Classify(err))
	assert.False(t, called)
	assert.Zero(t, clock.Waiters(), "a canceled run releases its timer")
}

func TestManualTimerStop(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	first := clock.NewTimer(time.Second)
	second := clock.NewTimer(2 * time.Second)
	require.Equal(t, 2, clock.Waiters())

	assert.True(t, first.Stop())
	assert.False(t, first.Stop())
	assert.Equal(t, 1, clock.Waiters())

	clock.Advance(2 * time.Second)
	assert.Zero(t, clock.Waiters())
	assert.False(t, second.Stop(), "fired timers are gone")
	select {
	case <-first.C():
		t.Fatal("stopped timer fired")
	case <-second.C():
	}
}

func TestRunZeroDelayHonorsCanceledContext(t *testing.T) {
	r := NewRunner(0, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, func(context.Context) error { return nil })
	assert.Equal(t, Canceled, Classify(err))
}

func TestDoReturnsValue(t *testing.T) {
	r := NewRunner(time.Second, InstantClock{})

	v, err := Do(context.Background(), r, func(context.Context) (string, error) { return "reply", nil })
	require.NoError(t, err)
	assert.Equal(t, "reply", v)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "succeeded", Succeeded.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "canceled", Canceled.String())
}
