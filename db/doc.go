// Package db holds the SQL schema migrations applied by "permctl db migrate".
package db
