package gorm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sevy33/permissions-in-go/pkg/model"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// Ensure ProjectsStore implements store.ProjectsStore
var _ store.ProjectsStore = (*ProjectsStore)(nil)

// ProjectsStore implements store.ProjectsStore using GORM
type ProjectsStore struct {
	db *gorm.DB
}

// NewProjectsStore creates a new ProjectsStore
func NewProjectsStore(db *gorm.DB) *ProjectsStore {
	return &ProjectsStore{db: db}
}

// ListProjects returns all projects ordered by id with permissions, groups
// and group links preloaded.
func (s *ProjectsStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.WithContext(ctx).
		Preload("Permissions", orderByID).
		Preload("PermissionGroups", orderByID).
		Preload("PermissionGroups.GroupPermissions", orderByID).
		Order("id").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	for i := range projects {
		projects[i].Normalize()
	}
	return projects, nil
}

// CreateProject inserts a project with a new API key.
func (s *ProjectsStore) CreateProject(ctx context.Context, name string, description *string) (*model.Project, error) {
	project := model.Project{
		Name:        name,
		Description: description,
		APIKey:      model.NewAPIKey(),
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	project.Normalize()
	return &project, nil
}

// FindProjectByName returns the first project with the given name.
func (s *ProjectsStore) FindProjectByName(ctx context.Context, name string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrProjectNotFound
		}
		return nil, err
	}
	project.Normalize()
	return &project, nil
}

// DeleteProject removes a project and everything that references it.
// Links go first (by group, then by permission), then permissions, groups
// and finally the project row.
func (s *ProjectsStore) DeleteProject(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var permissionIDs []int64
		if err := tx.Model(&model.Permission{}).Where("project_id = ?", id).Pluck("id", &permissionIDs).Error; err != nil {
			return fmt.Errorf("collecting permissions of project %d: %w", id, err)
		}

		var groupIDs []int64
		if err := tx.Model(&model.PermissionGroup{}).Where("project_id = ?", id).Pluck("id", &groupIDs).Error; err != nil {
			return fmt.Errorf("collecting groups of project %d: %w", id, err)
		}

		if len(groupIDs) > 0 {
			if err := tx.Where("group_id IN ?", groupIDs).Delete(&model.GroupPermission{}).Error; err != nil {
				return err
			}
		}
		if len(permissionIDs) > 0 {
			if err := tx.Where("permission_id IN ?", permissionIDs).Delete(&model.GroupPermission{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("project_id = ?", id).Delete(&model.Permission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.PermissionGroup{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Project{}).Error
	})
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
