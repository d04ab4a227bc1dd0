package repositories

import "context"

// Repository aggregates the per-entity repositories behind one handle.
type Repository interface {
	Teacher() TeacherRepository
	WorkPeriod() WorkPeriodRepository

	// WithTransaction runs fn against a Repository bound to one database
	// transaction; fn returning an error rolls the whole unit back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
