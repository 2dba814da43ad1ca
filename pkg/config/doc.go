// Package config provides configuration management for the permctl server.
//
// # Configuration Sources
//
// Configuration is layered, later sources winning:
//
//   - Built-in defaults
//   - YAML file at $PERMCTL_CONFIG_PATH/permctl.yml (default /etc/permctl)
//   - Environment variables
//
// # Key Configuration Options
//
//   - PERMCTL_LOG_LEVEL, PERMCTL_LOG_FORMAT: logging
//   - PERMCTL_CORS_ALLOWED_ORIGINS: browser origins allowed to call the API
//   - PERMCTL_ADMIN_TOKEN_SECRET: enables bearer tokens on admin routes
//   - PERMCTL_AUDIT_ENABLED, PERMCTL_METRICS_ENABLED
//   - DATABASE_URL: database connection (read by pkg/db)
package config
