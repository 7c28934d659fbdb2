package webclient

import (
	"context"
	"testing"

	"campfire/internal/shared/storage/kv"
)

func TestKVNameStoreRoundTrip(t *testing.T) {
	store, err := kv.Open("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	names := KVNameStore{Store: store}
	ctx := context.Background()

	if got, err := names.Load(ctx); err != nil || got != "" {
		t.Fatalf("expected empty name, got %q %v", got, err)
	}
	if err := names.Save(ctx, "  Grace \t Hopper  "); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := names.Save(ctx, "   "); err != nil {
		t.Fatalf("Save blank: %v", err)
	}
	got, err := names.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "Grace Hopper" {
		t.Fatalf("got %q", got)
	}
}
