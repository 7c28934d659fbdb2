package webclient

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"campfire/internal/shared/telemetry"
)

const (
	MinQueryLength = 2
	MaxSuggestions = 5
)

// ErrStale is returned by Fetch when a newer response was applied first.
var ErrStale = errors.New("stale autocomplete response")

// Autocompleter drives one form's restaurant suggestions and owns the
// places session token shared by its queries.
type Autocompleter struct {
	Backend Backend

	// OnResults, when set, is called with every applied suggestion list.
	OnResults func([]Suggestion)

	debounce *Debouncer
	newToken func() string

	mu          sync.Mutex
	token       string
	seq         uint64
	applied     uint64
	suggestions []Suggestion
}

func NewAutocompleter(b Backend, wait time.Duration) *Autocompleter {
	a := &Autocompleter{
		Backend:  b,
		debounce: NewDebouncer(wait),
		newToken: uuid.NewString,
	}
	a.token = a.newToken()
	return a
}

// SessionToken returns the token the next query will carry.
func (a *Autocompleter) SessionToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// SetSessionToken resumes a session started elsewhere, e.g. carried in a
// hidden form field between page loads. Blank tokens are ignored.
func (a *Autocompleter) SetSessionToken(token string) {
	if token = strings.TrimSpace(token); token == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

// Suggestions returns the current list in backend order.
func (a *Autocompleter) Suggestions() []Suggestion {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Suggestion(nil), a.suggestions...)
}

// Keystroke schedules a debounced query. Queries shorter than MinQueryLength
// are never sent.
func (a *Autocompleter) Keystroke(ctx context.Context, query, city string) {
	if len([]rune(query)) < MinQueryLength {
		a.debounce.Stop()
		return
	}
	a.debounce.Trigger(func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := a.Fetch(ctx, query, city); err != nil && !errors.Is(err, ErrStale) {
			telemetry.Warn("autocomplete.failed", map[string]any{"error": err.Error()})
		}
	})
}

// Fetch queries the backend immediately. Each call takes a sequence number
// and a reply is applied only if no newer reply has been applied already.
func (a *Autocompleter) Fetch(ctx context.Context, query, city string) ([]Suggestion, error) {
	if len([]rune(query)) < MinQueryLength {
		return nil, nil
	}
	a.mu.Lock()
	a.seq++
	seq := a.seq
	token := a.token
	a.mu.Unlock()

	got, err := a.Backend.Autocomplete(ctx, query, city, token)
	if err != nil {
		return nil, err
	}
	if len(got) > MaxSuggestions {
		got = got[:MaxSuggestions]
	}

	a.mu.Lock()
	if seq <= a.applied {
		a.mu.Unlock()
		return nil, ErrStale
	}
	a.applied = seq
	a.suggestions = got
	notify := a.OnResults
	a.mu.Unlock()

	if notify != nil {
		notify(got)
	}
	return got, nil
}

// Select fills field from a chosen suggestion and starts a new session.
// Replies to queries sent before the selection are discarded.
func (a *Autocompleter) Select(field *RestaurantField, s Suggestion) {
	field.Text = NameFromLabel(s.Label())
	field.PlaceID = s.PlaceID

	a.mu.Lock()
	defer a.mu.Unlock()
	prev := a.token
	for a.token == prev {
		a.token = a.newToken()
	}
	a.suggestions = nil
	a.applied = a.seq
}

// NameFromLabel strips the " (address)" suffix from a dropdown label.
func NameFromLabel(label string) string {
	name, _, _ := strings.Cut(label, " (")
	return name
}
