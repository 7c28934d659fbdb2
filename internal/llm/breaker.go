package llm

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"campfire/internal/shared/metrics"
	"campfire/internal/shared/telemetry"
)

// Breaker trips after consecutive failures so a down provider costs one
// fast error per request instead of a full timeout.
type Breaker struct {
	next Client
	cb   *gobreaker.CircuitBreaker[string]
}

func WithBreaker(next Client, name string) *Breaker {
	name = "llm-" + name
	metrics.SetBreakerState(name, 0)
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			telemetry.Warn("llm.breaker.state", map[string]any{"breaker": name, "from": from.String(), "to": to.String()})
			var v float64
			switch to {
			case gobreaker.StateHalfOpen:
				v = 1
			case gobreaker.StateOpen:
				v = 2
			}
			metrics.SetBreakerState(name, v)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &Breaker{next: next, cb: cb}
}

func (b *Breaker) Complete(ctx context.Context, prompt string) (string, error) {
	return b.cb.Execute(func() (string, error) {
		return b.next.Complete(ctx, prompt)
	})
}

func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
