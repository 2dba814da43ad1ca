package model

// GroupPermission links a permission to a group. At most one row exists per
// (group, permission) pair.
type GroupPermission struct {
	ID           int64       `gorm:"column:id;primaryKey" json:"id"`
	GroupID      int64       `gorm:"column:group_id;not null" json:"groupId"`
	PermissionID int64       `gorm:"column:permission_id;not null" json:"permissionId"`
	Enabled      bool        `gorm:"column:enabled;not null" json:"enabled"`
	Permission   *Permission `gorm:"foreignKey:PermissionID" json:"permission,omitempty"`
}

func (GroupPermission) TableName() string {
	return "group_permissions"
}
