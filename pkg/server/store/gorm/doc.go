// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Cascading deletes run inside a single database transaction and the
// group-permission toggle is one INSERT ... ON CONFLICT statement.
package gorm
