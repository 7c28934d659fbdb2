package places

import (
	"fmt"
	"strings"
	"time"

	"campfire/internal/restaurants"
	"campfire/internal/shared/storage/kv"
)

// Options selects and configures the provider stack.
type Options struct {
	Provider     string
	GoogleAPIKey string
	YelpAPIKey   string
	RPS          float64
	Cache        *kv.Store
	CacheTTL     time.Duration
}

// New builds provider -> resilience -> cache, outermost last.
func New(opts Options) (Provider, error) {
	var base Provider
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", restaurants.ProviderGoogle:
		base = NewGoogle(opts.GoogleAPIKey)
	case restaurants.ProviderYelp:
		base = NewYelp(opts.YelpAPIKey)
	default:
		return nil, fmt.Errorf("unknown places provider %q", opts.Provider)
	}
	var p Provider = NewResilient(base, opts.RPS)
	if opts.Cache != nil {
		p = NewCached(p, opts.Cache, opts.CacheTTL)
	}
	return p, nil
}
