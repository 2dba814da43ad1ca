package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is the top-level tenant that scopes permissions and groups.
// It is addressed externally by its API key.
type Project struct {
	ID               int64             `gorm:"column:id;primaryKey" json:"id"`
	Name             string            `gorm:"column:name;not null" json:"name"`
	Description      *string           `gorm:"column:description" json:"description"`
	APIKey           string            `gorm:"column:api_key;not null;uniqueIndex" json:"apiKey"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	Permissions      []Permission      `gorm:"foreignKey:ProjectID" json:"permissions"`
	PermissionGroups []PermissionGroup `gorm:"foreignKey:ProjectID" json:"permissionGroups"`
}

func (Project) TableName() string {
	return "projects"
}

// NewAPIKey returns a fresh random API key for a project.
func NewAPIKey() string {
	return uuid.NewString()
}

// Normalize replaces nil collections with empty ones so that they encode
// as [] rather than null.
func (p *Project) Normalize() {
	if p.Permissions == nil {
		p.Permissions = []Permission{}
	}
	if p.PermissionGroups == nil {
		p.PermissionGroups = []PermissionGroup{}
	}
	for i := range p.PermissionGroups {
		p.PermissionGroups[i].Normalize()
	}
}
