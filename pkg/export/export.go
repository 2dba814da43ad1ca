// Package export projects stored projects into the shape served to
// external consumers: each group lists its enabled permissions directly and
// the link rows are dropped.
package export

import "github.com/sevy33/permissions-in-go/pkg/model"

// Permission is the consumer view of a permission.
type Permission struct {
	Key         string  `json:"key" yaml:"key"`
	Description *string `json:"description" yaml:"description"`
}

// Group is a permission group with its enabled permissions.
type Group struct {
	ID          int64        `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Permissions []Permission `json:"permissions" yaml:"permissions"`
}

// Project is the consumer view of a project.
type Project struct {
	ID               int64   `json:"id" yaml:"id"`
	Name             string  `json:"name" yaml:"name"`
	Description      *string `json:"description" yaml:"description"`
	APIKey           string  `json:"apiKey" yaml:"apiKey"`
	PermissionGroups []Group `json:"permissionGroups" yaml:"permissionGroups"`
}

// FromProject flattens group -> link -> permission into group -> permissions.
// Disabled links and links without a loaded permission are skipped.
func FromProject(p model.Project) Project {
	out := Project{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		APIKey:           p.APIKey,
		PermissionGroups: make([]Group, 0, len(p.PermissionGroups)),
	}

	for _, g := range p.PermissionGroups {
		group := Group{
			ID:          g.ID,
			Name:        g.Name,
			Permissions: []Permission{},
		}
		for _, link := range g.GroupPermissions {
			if !link.Enabled || link.Permission == nil {
				continue
			}
			group.Permissions = append(group.Permissions, Permission{
				Key:         link.Permission.Key,
				Description: link.Permission.Description,
			})
		}
		out.PermissionGroups = append(out.PermissionGroups, group)
	}

	return out
}

// FromProjects applies FromProject to each project. The result is never nil.
func FromProjects(projects []model.Project) []Project {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, FromProject(p))
	}
	return out
}
