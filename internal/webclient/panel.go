package webclient

import (
	"context"
	"sync"
)

type PanelState int

const (
	PanelIdle PanelState = iota
	PanelLoading
	PanelLoaded
	PanelErrored
	PanelNeedsName
)

// PanelView is a snapshot of a lazily loaded panel.
type PanelView[T any] struct {
	State PanelState
	Items []T
	Err   error
}

// Empty reports a successful load with nothing to show.
func (v PanelView[T]) Empty() bool {
	return v.State == PanelLoaded && len(v.Items) == 0
}

// Panel holds a list that is fetched on every activation.
type Panel[T any] struct {
	mu    sync.Mutex
	state PanelState
	items []T
	err   error
}

// Load moves the panel through loading to loaded or errored.
func (p *Panel[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error)) error {
	p.mu.Lock()
	p.state = PanelLoading
	p.err = nil
	p.mu.Unlock()

	items, err := fetch(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = PanelErrored
		p.items = nil
		p.err = err
		return err
	}
	p.state = PanelLoaded
	p.items = items
	return nil
}

func (p *Panel[T]) needName() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = PanelNeedsName
	p.items = nil
	p.err = nil
}

func (p *Panel[T]) update(fn func(items []T)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.items)
}

func (p *Panel[T]) View() PanelView[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PanelView[T]{State: p.state, Items: append([]T(nil), p.items...), Err: p.err}
}
