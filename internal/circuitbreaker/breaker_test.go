package circuitbreaker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  string
	}{
		{"closed", StateClosed, "CLOSED"},
		{"open", StateOpen, "OPEN"},
		{"half_open", StateHalfOpen, "HALF_OPEN"},
		{"unknown", State(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func newTestBreaker(failThreshold, successThreshold int, timeout time.Duration) (*Breaker, *time.Time) {
	b := New(Config{
		FailThreshold:    failThreshold,
		SuccessThreshold: successThreshold,
		Timeout:          timeout,
	})
	now := time.Unix(1700000000, 0)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_New(t *testing.T) {
	breaker := New(Config{
		FailThreshold:    5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
	})

	assert.NotNil(t, breaker)
	assert.Equal(t, StateClosed, breaker.State())
	assert.True(t, breaker.Allow())
}

func TestBreaker_TransitionToOpen(t *testing.T) {
	breaker, _ := newTestBreaker(3, 2, time.Second)

	breaker.Record(false)
	assert.Equal(t, StateClosed, breaker.State())

	breaker.Record(false)
	assert.Equal(t, StateClosed, breaker.State())

	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())

	assert.False(t, breaker.Allow())
}

func TestBreaker_OpenAdmitsProbeAfterTimeout(t *testing.T) {
	breaker, now := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())
	assert.False(t, breaker.Allow())

	*now = now.Add(2 * time.Second)

	assert.True(t, breaker.Allow())
	assert.Equal(t, StateHalfOpen, breaker.State())
}

func TestBreaker_HalfOpenCloses(t *testing.T) {
	breaker, now := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	*now = now.Add(2 * time.Second)
	assert.True(t, breaker.Allow())

	breaker.Record(true)
	assert.Equal(t, StateHalfOpen, breaker.State())

	breaker.Record(true)
	assert.Equal(t, StateClosed, breaker.State())
	assert.True(t, breaker.Allow())
}

func TestBreaker_HalfOpenReopensOnFailure(t *testing.T) {
	breaker, now := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	*now = now.Add(2 * time.Second)
	assert.True(t, breaker.Allow())

	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())
	assert.False(t, breaker.Allow())
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	breaker, _ := newTestBreaker(5, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, 3, breaker.Failures())

	breaker.Record(true)
	assert.Equal(t, 0, breaker.Failures())
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreaker_OpenIgnoresLateOutcomes(t *testing.T) {
	breaker, _ := newTestBreaker(2, 2, time.Minute)

	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())

	// In-flight requests from before the trip report back; the breaker
	// stays open until its timeout.
	breaker.Record(true)
	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreaker_Reset(t *testing.T) {
	breaker, _ := newTestBreaker(2, 2, time.Second)

	breaker.Record(false)
	breaker.Record(false)
	assert.Equal(t, StateOpen, breaker.State())

	breaker.Reset()

	assert.Equal(t, StateClosed, breaker.State())
	assert.Equal(t, 0, breaker.Failures())
	assert.Equal(t, 0, breaker.Successes())
}
