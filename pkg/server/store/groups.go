package store

import (
	"context"
	"errors"

	"github.com/sevy33/permissions-in-go/pkg/model"
)

// ErrGroupNotFound is returned when no permission group matches a lookup
var ErrGroupNotFound = errors.New("permission group not found")

// GroupsStore abstracts permission group storage operations
type GroupsStore interface {
	// CreateGroup does not check that the project exists; the foreign key
	// rejects unknown projects.
	CreateGroup(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error)

	FindGroupByName(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error)

	// SetGroupPermission inserts the (group, permission) link or overwrites
	// its enabled flag in a single statement.
	SetGroupPermission(ctx context.Context, groupID, permissionID int64, enabled bool) error

	// DeleteGroup removes the group's links and then the group.
	DeleteGroup(ctx context.Context, id int64) error
}
