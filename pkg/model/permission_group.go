package model

// PermissionGroup is a named bundle of permission toggles within a project.
type PermissionGroup struct {
	ID               int64             `gorm:"column:id;primaryKey" json:"id"`
	ProjectID        int64             `gorm:"column:project_id;not null" json:"projectId"`
	Name             string            `gorm:"column:name;not null" json:"name"`
	GroupPermissions []GroupPermission `gorm:"foreignKey:GroupID" json:"groupPermissions"`
}

func (PermissionGroup) TableName() string {
	return "permission_groups"
}

func (g *PermissionGroup) Normalize() {
	if g.GroupPermissions == nil {
		g.GroupPermissions = []GroupPermission{}
	}
}

// IsPermissionEnabled reports whether the group has an enabled link to the
// permission. A missing link counts as disabled.
func (g PermissionGroup) IsPermissionEnabled(permissionID int64) bool {
	for _, link := range g.GroupPermissions {
		if link.PermissionID == permissionID {
			return link.Enabled
		}
	}
	return false
}
