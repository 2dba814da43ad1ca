package store

import "context"

// Store aggregates every permissions store operation.
type Store interface {
	ProjectsStore
	PermissionsStore
	GroupsStore
	ExportStore

	// Transaction wraps operations in a database transaction.
	// The provided function receives a transactional Store.
	// If the function returns an error, the transaction is rolled back.
	Transaction(ctx context.Context, fn func(Store) error) error
}
