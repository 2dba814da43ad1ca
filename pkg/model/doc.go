// Package model defines the database models for the permissions store.
//
// # Core Models
//
//   - Project: tenant owning permissions and groups, addressed by API key
//   - Permission: keyed capability scoped to a project
//   - PermissionGroup: named bundle of permission toggles
//   - GroupPermission: enabled flag for one permission within one group
//
// # Database Schema
//
//   - projects
//   - permissions (unique project_id, key)
//   - permission_groups
//   - group_permissions (unique group_id, permission_id)
//   - audit_messages
package model
