package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sevy33/permissions-in-go/pkg/model"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// Ensure PermissionsStore implements store.PermissionsStore
var _ store.PermissionsStore = (*PermissionsStore)(nil)

// PermissionsStore implements store.PermissionsStore using GORM
type PermissionsStore struct {
	db *gorm.DB
}

// NewPermissionsStore creates a new PermissionsStore
func NewPermissionsStore(db *gorm.DB) *PermissionsStore {
	return &PermissionsStore{db: db}
}

func (s *PermissionsStore) CreatePermission(ctx context.Context, projectID int64, key string, description *string) (*model.Permission, error) {
	permission := model.Permission{
		ProjectID:   projectID,
		Key:         key,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(&permission).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

// UpdatePermission overwrites the key and description of a permission.
func (s *PermissionsStore) UpdatePermission(ctx context.Context, id int64, key string, description *string) (*model.Permission, error) {
	var permission model.Permission
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&permission).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrPermissionNotFound
			}
			return err
		}

		permission.Key = key
		permission.Description = description
		return tx.Model(&permission).Select("key", "description").Updates(&permission).Error
	})
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

func (s *PermissionsStore) FindPermissionByKey(ctx context.Context, projectID int64, key string) (*model.Permission, error) {
	var permission model.Permission
	err := s.db.WithContext(ctx).Where("project_id = ? AND key = ?", projectID, key).First(&permission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrPermissionNotFound
		}
		return nil, err
	}
	return &permission, nil
}

// DeletePermission removes every link to the permission, then the permission.
func (s *PermissionsStore) DeletePermission(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).Delete(&model.GroupPermission{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Permission{}).Error
	})
}
