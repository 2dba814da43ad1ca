// Package store provides storage abstractions for the permissions server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation
// and tested with mocks.
//
// # Available Stores
//
//   - ProjectsStore: list, create, find and cascade-delete projects
//   - PermissionsStore: create, update, find and delete permissions
//   - GroupsStore: create, find and delete groups, toggle group permissions
//   - ExportStore: read-only projection by API key
//   - HealthStore: database connectivity
//
// # Usage
//
//	s := gorm.NewStore(db)
//	project, err := s.ExportByAPIKey(ctx, apiKey)
//	if err != nil {
//	    if errors.Is(err, store.ErrProjectNotFound) {
//	        // Handle not found
//	    }
//	}
package store
