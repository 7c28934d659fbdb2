package places

import (
	"context"
	"sync"
)

type fakeProvider struct {
	mu          sync.Mutex
	suggestions []Suggestion
	details     map[string]Details
	err         error
	calls       map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{details: map[string]Details{}, calls: map[string]int{}}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeProvider) hit(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeProvider) Autocomplete(ctx context.Context, query, city, sessionToken string) ([]Suggestion, error) {
	f.hit("autocomplete")
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestions, nil
}

func (f *fakeProvider) Details(ctx context.Context, placeID, sessionToken string) (Details, error) {
	f.hit("details")
	if f.err != nil {
		return Details{}, f.err
	}
	d, ok := f.details[placeID]
	if !ok {
		return Details{}, ErrNotConfigured
	}
	return d, nil
}

func (f *fakeProvider) SearchNearby(ctx context.Context, q NearbyQuery) ([]Details, error) {
	f.hit("search")
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}
