package store

import (
	"context"
	"errors"

	"github.com/sevy33/permissions-in-go/pkg/model"
)

// ErrPermissionNotFound is returned when no permission matches a lookup
var ErrPermissionNotFound = errors.New("permission not found")

// PermissionsStore abstracts permission storage operations
type PermissionsStore interface {
	CreatePermission(ctx context.Context, projectID int64, key string, description *string) (*model.Permission, error)

	// UpdatePermission overwrites key and description.
	// Returns ErrPermissionNotFound if the permission doesn't exist.
	UpdatePermission(ctx context.Context, id int64, key string, description *string) (*model.Permission, error)

	FindPermissionByKey(ctx context.Context, projectID int64, key string) (*model.Permission, error)

	// DeletePermission removes the permission's links and then the permission.
	DeletePermission(ctx context.Context, id int64) error
}
