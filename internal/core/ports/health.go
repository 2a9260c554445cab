package ports

import "context"

// HealthChecker is a gateway dependency reported by /health.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Name() string
}
