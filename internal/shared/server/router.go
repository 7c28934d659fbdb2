package server

import (
	"github.com/gin-gonic/gin"

	"campfire/internal/feedback"
	"campfire/internal/places"
	"campfire/internal/preferences"
	"campfire/internal/recommend"
	"campfire/internal/services/health"
	"campfire/internal/shared/config"
	"campfire/internal/shared/metrics"
	"campfire/internal/shared/server/middleware"
	"campfire/internal/webui"
)

// Rate-limit groups. Anything not listed here falls into the default group.
const (
	rateGroupRecommend    = "RECOMMEND"
	rateGroupAutocomplete = "AUTOCOMPLETE"
	rateGroupExempt       = "EXEMPT"
)

// RouterDeps holds the handlers the router mounts. Nil handlers are skipped.
type RouterDeps struct {
	Config             config.Config
	Health             *health.Service
	PlacesHandler      *places.Handler
	RecommendHandler   *recommend.Handler
	PreferencesHandler *preferences.Handler
	FeedbackHandler    *feedback.Handler
	WebUI              *webui.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Identity(),
		middleware.Logging(),
		middleware.Metrics(),
		middleware.Recovery(),
		middleware.CORS(middleware.DefaultCORSPolicy(deps.Config.CORSAllowOrigin)),
		middleware.RateLimit(rateLimitConfig(deps.Config)),
	)

	hs := deps.Health
	if hs == nil {
		hs = health.NewService(nil)
	}
	r.GET("/healthz", hs.Handler())
	r.GET("/metrics", metrics.Handler())

	root := &r.RouterGroup
	if deps.PlacesHandler != nil {
		deps.PlacesHandler.RegisterRoutes(root)
	}
	if deps.RecommendHandler != nil {
		deps.RecommendHandler.RegisterRoutes(root)
	}
	if deps.PreferencesHandler != nil {
		deps.PreferencesHandler.RegisterRoutes(root)
	}
	if deps.FeedbackHandler != nil {
		deps.FeedbackHandler.RegisterRoutes(root)
	}
	if deps.WebUI != nil {
		deps.WebUI.RegisterRoutes(root)
	}
	return r
}

func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":             {Rate: cfg.RateLimitDefaultRPS, Burst: cfg.RateLimitDefaultBurst},
			rateGroupRecommend:    {Rate: cfg.RateLimitRecommendRPS, Burst: cfg.RateLimitRecommendBurst},
			rateGroupAutocomplete: {Rate: cfg.RateLimitAutocompleteRPS, Burst: cfg.RateLimitAutocompleteBurst},
		},
		GroupFor: rateLimitGroup,
	}
}

func rateLimitGroup(c *gin.Context) string {
	switch c.FullPath() {
	case "/get_recommendations":
		return rateGroupRecommend
	case "/autocomplete":
		return rateGroupAutocomplete
	case "/healthz", "/metrics":
		return rateGroupExempt
	default:
		return ""
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
