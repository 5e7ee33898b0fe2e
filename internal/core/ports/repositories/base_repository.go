package repositories

import "context"

// HealthChecker is implemented by stores that can report database reachability.
type HealthChecker interface {
	// Ping verifies the underlying database answers within the store's timeout.
	Ping(ctx context.Context) error
}
