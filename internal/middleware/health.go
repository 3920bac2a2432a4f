package middleware

import (
	"context"
	"database/sql"
	"time"
)

// HealthChecker defines an interface for dependency health checks.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// DatabaseHealthChecker pings the analyses database.
type DatabaseHealthChecker struct {
	DB *sql.DB
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.PingContext(ctx)
}

// CheckStatus is the per-dependency entry in the health payload.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// RunChecks executes all checkers and reports overall healthiness.
func RunChecks(ctx context.Context, checkers map[string]HealthChecker) (map[string]CheckStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	healthy := true
	out := make(map[string]CheckStatus, len(checkers))
	for name, checker := range checkers {
		if err := checker.Check(ctx); err != nil {
			healthy = false
			out[name] = CheckStatus{Status: "unhealthy", Message: err.Error()}
		} else {
			out[name] = CheckStatus{Status: "healthy"}
		}
	}
	return out, healthy
}
