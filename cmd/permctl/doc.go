// Command permctl runs and administers the permissions server.
//
// The server keeps projects, their permissions and named permission groups
// in PostgreSQL, and exposes a read-only export of the enabled permissions
// per group to applications holding a project's API key.
//
// # Quick Start
//
//	# Create or upgrade the schema
//	permctl db migrate
//
//	# Start the server
//	permctl server
//
//	# Declare a project from a manifest and keep it in sync
//	permctl project import billing.yml --watch
//
//	# Browse and edit from the terminal
//	permctl console
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - AUDIT_DATABASE_URL: optional database for audit records
//   - PERMCTL_CONFIG_PATH: directory holding permctl.yml
//   - PERMCTL_URL: server address used by client commands
//   - PERMCTL_TOKEN: admin bearer token used by client commands
//   - PORT: server port (default: 8000)
package main
