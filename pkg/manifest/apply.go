package manifest

import (
	"context"
	"errors"
	"fmt"

	"github.com/sevy33/permissions-in-go/pkg/model"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// Result summarises what Apply changed
type Result struct {
	ProjectID          int64
	APIKey             string
	ProjectCreated     bool
	PermissionsCreated int
	PermissionsUpdated int
	GroupsCreated      int
	LinksWritten       int
}

func (r Result) String() string {
	created := "existing"
	if r.ProjectCreated {
		created = "new"
	}
	return fmt.Sprintf("%s project %d: %d permissions created, %d updated, %d groups created, %d toggles written",
		created, r.ProjectID, r.PermissionsCreated, r.PermissionsUpdated, r.GroupsCreated, r.LinksWritten)
}

// Apply reconciles the store with m in a single transaction
func Apply(ctx context.Context, st store.Store, m *Manifest) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var result Result
	err := st.Transaction(ctx, func(tx store.Store) error {
		result = Result{}

		project, err := tx.FindProjectByName(ctx, m.Project.Name)
		switch {
		case errors.Is(err, store.ErrProjectNotFound):
			project, err = tx.CreateProject(ctx, m.Project.Name, m.Project.Description)
			if err != nil {
				return fmt.Errorf("creating project %q: %w", m.Project.Name, err)
			}
			result.ProjectCreated = true
		case err != nil:
			return fmt.Errorf("finding project %q: %w", m.Project.Name, err)
		}
		result.ProjectID = project.ID
		result.APIKey = project.APIKey

		permissionIDs := make(map[string]int64, len(m.Permissions))
		for _, p := range m.Permissions {
			perm, err := applyPermission(ctx, tx, project.ID, p, &result)
			if err != nil {
				return err
			}
			permissionIDs[p.Key] = perm.ID
		}

		for _, g := range m.Groups {
			group, err := tx.FindGroupByName(ctx, project.ID, g.Name)
			switch {
			case errors.Is(err, store.ErrGroupNotFound):
				group, err = tx.CreateGroup(ctx, project.ID, g.Name)
				if err != nil {
					return fmt.Errorf("creating group %q: %w", g.Name, err)
				}
				result.GroupsCreated++
			case err != nil:
				return fmt.Errorf("finding group %q: %w", g.Name, err)
			}

			for _, p := range m.Permissions {
				if err := tx.SetGroupPermission(ctx, group.ID, permissionIDs[p.Key], g.enables(p.Key)); err != nil {
					return fmt.Errorf("setting %q on group %q: %w", p.Key, g.Name, err)
				}
				result.LinksWritten++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func applyPermission(ctx context.Context, tx store.Store, projectID int64, p Permission, result *Result) (*model.Permission, error) {
	perm, err := tx.FindPermissionByKey(ctx, projectID, p.Key)
	if errors.Is(err, store.ErrPermissionNotFound) {
		perm, err = tx.CreatePermission(ctx, projectID, p.Key, p.Description)
		if err != nil {
			return nil, fmt.Errorf("creating permission %q: %w", p.Key, err)
		}
		result.PermissionsCreated++
		return perm, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding permission %q: %w", p.Key, err)
	}

	if sameDescription(perm.Description, p.Description) {
		return perm, nil
	}
	perm, err = tx.UpdatePermission(ctx, perm.ID, p.Key, p.Description)
	if err != nil {
		return nil, fmt.Errorf("updating permission %q: %w", p.Key, err)
	}
	result.PermissionsUpdated++
	return perm, nil
}

func sameDescription(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
