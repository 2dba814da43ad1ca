package store

import (
	"context"
	"errors"

	"github.com/sevy33/permissions-in-go/pkg/model"
)

// ErrProjectNotFound is returned when no project matches a lookup
var ErrProjectNotFound = errors.New("project not found")

// ProjectsStore abstracts project storage operations
type ProjectsStore interface {
	// ListProjects returns every project with its permissions, groups and
	// each group's links eagerly loaded.
	ListProjects(ctx context.Context) ([]model.Project, error)

	// CreateProject inserts a project with a freshly generated API key.
	CreateProject(ctx context.Context, name string, description *string) (*model.Project, error)

	// FindProjectByName returns ErrProjectNotFound if no project has the name.
	FindProjectByName(ctx context.Context, name string) (*model.Project, error)

	// DeleteProject removes the project, its permissions, its groups and
	// every link referencing either, atomically. Unknown ids are a no-op.
	DeleteProject(ctx context.Context, id int64) error
}
