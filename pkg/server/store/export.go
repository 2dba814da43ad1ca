package store

import (
	"context"

	"github.com/sevy33/permissions-in-go/pkg/model"
)

// ExportStore reads projects for the export API. Groups are loaded with
// their enabled links only, each link carrying its permission.
type ExportStore interface {
	ExportAll(ctx context.Context) ([]model.Project, error)

	// ExportByAPIKey returns ErrProjectNotFound if no project has the key.
	ExportByAPIKey(ctx context.Context, apiKey string) (*model.Project, error)
}
