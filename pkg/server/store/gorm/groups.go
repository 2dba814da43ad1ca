package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sevy33/permissions-in-go/pkg/model"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
)

// Ensure GroupsStore implements store.GroupsStore
var _ store.GroupsStore = (*GroupsStore)(nil)

// GroupsStore implements store.GroupsStore using GORM
type GroupsStore struct {
	db *gorm.DB
}

// NewGroupsStore creates a new GroupsStore
func NewGroupsStore(db *gorm.DB) *GroupsStore {
	return &GroupsStore{db: db}
}

func (s *GroupsStore) CreateGroup(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error) {
	group := model.PermissionGroup{
		ProjectID: projectID,
		Name:      name,
	}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return nil, err
	}
	group.Normalize()
	return &group, nil
}

func (s *GroupsStore) FindGroupByName(ctx context.Context, projectID int64, name string) (*model.PermissionGroup, error) {
	var group model.PermissionGroup
	err := s.db.WithContext(ctx).Where("project_id = ? AND name = ?", projectID, name).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrGroupNotFound
		}
		return nil, err
	}
	group.Normalize()
	return &group, nil
}

// SetGroupPermission upserts the link on its (group_id, permission_id) key.
func (s *GroupsStore) SetGroupPermission(ctx context.Context, groupID, permissionID int64, enabled bool) error {
	link := model.GroupPermission{
		GroupID:      groupID,
		PermissionID: permissionID,
		Enabled:      enabled,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "permission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"enabled"}),
	}).Create(&link).Error
}

// DeleteGroup removes every link of the group, then the group.
func (s *GroupsStore) DeleteGroup(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&model.GroupPermission{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.PermissionGroup{}).Error
	})
}
