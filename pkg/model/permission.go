package model

// Permission is a keyed capability belonging to one project. Keys are
// unique within a project.
type Permission struct {
	ID          int64   `gorm:"column:id;primaryKey" json:"id"`
	ProjectID   int64   `gorm:"column:project_id;not null" json:"projectId"`
	Key         string  `gorm:"column:key;not null" json:"key"`
	Description *string `gorm:"column:description" json:"description"`
}

func (Permission) TableName() string {
	return "permissions"
}
