package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation (MongoDB, SQLite) owns its own schema setup, so the
// persistence backend is swappable without touching services or handlers.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Users() UserRepository
	Products() ProductRepository
}
