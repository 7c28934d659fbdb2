package places

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"campfire/internal/shared/metrics"
	"campfire/internal/shared/telemetry"
)

// Resilient wraps a Provider with outbound pacing and a circuit breaker.
// Calls rejected by an open breaker fail fast without touching the network.
type Resilient struct {
	next    Provider
	cb      *gobreaker.CircuitBreaker[any]
	limiter *rate.Limiter
	name    string
}

// NewResilient paces calls to rps per second (0 disables pacing).
func NewResilient(next Provider, rps float64) *Resilient {
	name := "places-" + next.Name()
	limit := rate.Inf
	burst := 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = int(rps)
		if burst < 1 {
			burst = 1
		}
	}
	metrics.SetBreakerState(name, stateToFloat(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			telemetry.Warn("places.breaker.state", map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
			metrics.SetBreakerState(name, stateToFloat(to))
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotConfigured) || errors.Is(err, context.Canceled)
		},
	})
	return &Resilient{next: next, cb: cb, limiter: rate.NewLimiter(limit, burst), name: name}
}

func (r *Resilient) Name() string { return r.next.Name() }

func (r *Resilient) Autocomplete(ctx context.Context, query, city, sessionToken string) ([]Suggestion, error) {
	return call(ctx, r, "autocomplete", func() ([]Suggestion, error) {
		return r.next.Autocomplete(ctx, query, city, sessionToken)
	})
}

func (r *Resilient) Details(ctx context.Context, placeID, sessionToken string) (Details, error) {
	return call(ctx, r, "details", func() (Details, error) {
		return r.next.Details(ctx, placeID, sessionToken)
	})
}

func (r *Resilient) SearchNearby(ctx context.Context, q NearbyQuery) ([]Details, error) {
	return call(ctx, r, "search", func() ([]Details, error) {
		return r.next.SearchNearby(ctx, q)
	})
}

func call[T any](ctx context.Context, r *Resilient, op string, fn func() (T, error)) (T, error) {
	var zero T
	if err := r.limiter.Wait(ctx); err != nil {
		metrics.IncPlacesCall(r.next.Name(), op, "throttled")
		return zero, fmt.Errorf("places %s: %w", op, err)
	}
	res, err := r.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		outcome := "error"
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			outcome = "rejected"
		case errors.Is(err, ErrNotConfigured):
			outcome = "not_configured"
		}
		metrics.IncPlacesCall(r.next.Name(), op, outcome)
		return zero, err
	}
	metrics.IncPlacesCall(r.next.Name(), op, "success")
	typed, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("places %s: unexpected result type %T", op, res)
	}
	return typed, nil
}

// State reports the breaker state, mainly for tests.
func (r *Resilient) State() gobreaker.State {
	return r.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
