package health

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campfire/internal/shared/server/respond"
)

// Pinger is the part of *sql.DB the health check needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	DB      Pinger
	Timeout time.Duration
}

// NewService constructs a health service. db may be nil when running on
// in-memory repositories.
func NewService(db *sql.DB) *Service {
	s := &Service{Timeout: 2 * time.Second}
	if db != nil {
		s.DB = db
	}
	return s
}

// Status reports overall health and the state of each dependency.
func (s *Service) Status(ctx context.Context) (bool, map[string]string) {
	checks := map[string]string{"database": "memory"}
	if s.DB == nil {
		return true, checks
	}
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		checks["database"] = "unreachable"
		return false, checks
	}
	checks["database"] = "ok"
	return true, checks
}

// Handler serves GET /healthz.
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, checks := s.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ok": ok, "checks": checks})
	}
}
