package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sevy33/permissions-in-go/pkg/model"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// Ensure ExportStore implements store.ExportStore
var _ store.ExportStore = (*ExportStore)(nil)

// ExportStore implements store.ExportStore using GORM
type ExportStore struct {
	db *gorm.DB
}

// NewExportStore creates a new ExportStore
func NewExportStore(db *gorm.DB) *ExportStore {
	return &ExportStore{db: db}
}

// withEnabledLinks preloads groups and only their enabled links, each with
// the linked permission.
func withEnabledLinks(db *gorm.DB) *gorm.DB {
	return db.
		Preload("PermissionGroups", orderByID).
		Preload("PermissionGroups.GroupPermissions", func(db *gorm.DB) *gorm.DB {
			return db.Where("enabled = ?", true).Order("id")
		}).
		Preload("PermissionGroups.GroupPermissions.Permission")
}

func (s *ExportStore) ExportAll(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := withEnabledLinks(s.db.WithContext(ctx)).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ExportStore) ExportByAPIKey(ctx context.Context, apiKey string) (*model.Project, error) {
	var project model.Project
	err := withEnabledLinks(s.db.WithContext(ctx)).Where("api_key = ?", apiKey).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}
