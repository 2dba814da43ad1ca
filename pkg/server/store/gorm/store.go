package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// Ensure Store implements store.Store
var _ store.Store = (*Store)(nil)

// Store combines the GORM stores over a single connection.
type Store struct {
	*ProjectsStore
	*PermissionsStore
	*GroupsStore
	*ExportStore

	db *gorm.DB
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		ProjectsStore:    NewProjectsStore(db),
		PermissionsStore: NewPermissionsStore(db),
		GroupsStore:      NewGroupsStore(db),
		ExportStore:      NewExportStore(db),
		db:               db,
	}
}

// Transaction wraps operations in a database transaction.
// Cascading deletes called on the transactional store nest as savepoints.
func (s *Store) Transaction(ctx context.Context, fn func(store.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
