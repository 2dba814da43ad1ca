package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/permctl"
	ConfigFileName    = "permctl.yml"
)

// ValidLogLevels lists the accepted values of log_level
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted values of log_format
var ValidLogFormats = []string{"text", "json"}

// Config holds all permctl server configuration settings
type Config struct {
	// LogLevel is the application log level (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat selects the log formatter (text or json)
	LogFormat string `yaml:"log_format" json:"log_format"`

	// CORSAllowedOrigins lists the origins allowed to call the API from a browser
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" json:"cors_allowed_origins"`

	// AdminTokenSecret enables the bearer token gate on admin routes when set
	AdminTokenSecret string `yaml:"admin_token_secret" json:"-"`

	// AdminTokenTTL is the lifetime of issued admin tokens in seconds
	AdminTokenTTL int `yaml:"admin_token_ttl" json:"admin_token_ttl"`

	// AuditEnabled turns audit logging on or off
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// MetricsEnabled exposes Prometheus metrics on /metrics
	MetricsEnabled bool `yaml:"metrics_enabled" json:"metrics_enabled"`

	// ReadTimeout and WriteTimeout bound HTTP requests, in seconds
	ReadTimeout  int `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout" json:"write_timeout"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors Config with pointer booleans so that an explicit
// false in the file can be told apart from an absent key.
type fileConfig struct {
	LogLevel           string   `yaml:"log_level"`
	LogFormat          string   `yaml:"log_format"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	AdminTokenSecret   string   `yaml:"admin_token_secret"`
	AdminTokenTTL      int      `yaml:"admin_token_ttl"`
	AuditEnabled       *bool    `yaml:"audit_enabled"`
	MetricsEnabled     *bool    `yaml:"metrics_enabled"`
	ReadTimeout        int      `yaml:"read_timeout"`
	WriteTimeout       int      `yaml:"write_timeout"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Global singleton config
var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	configMu.RLock()
	if globalConfig != nil {
		configMu.RUnlock()
		return globalConfig
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()

	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			globalConfig = newDefault()
		} else {
			globalConfig = cfg
		}
	}
	return globalConfig
}

// Reload reloads the configuration from file and environment
func Reload() error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	configMu.Lock()
	globalConfig = cfg
	configMu.Unlock()
	return nil
}

func newDefault() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		CORSAllowedOrigins: []string{},
		AdminTokenTTL:      3600,
		AuditEnabled:       true,
		MetricsEnabled:     true,
		ReadTimeout:        15,
		WriteTimeout:       15,
		sources:            make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("PERMCTL_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"log_level", "log_format", "cors_allowed_origins",
		"admin_token_secret", "admin_token_ttl",
		"audit_enabled", "metrics_enabled",
		"read_timeout", "write_timeout",
	}
}

func (c *Config) applyFileConfig(file *fileConfig) {
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.LogFormat != "" {
		c.LogFormat = file.LogFormat
		c.sources["log_format"] = "file"
	}
	if len(file.CORSAllowedOrigins) > 0 {
		c.CORSAllowedOrigins = file.CORSAllowedOrigins
		c.sources["cors_allowed_origins"] = "file"
	}
	if file.AdminTokenSecret != "" {
		c.AdminTokenSecret = file.AdminTokenSecret
		c.sources["admin_token_secret"] = "file"
	}
	if file.AdminTokenTTL != 0 {
		c.AdminTokenTTL = file.AdminTokenTTL
		c.sources["admin_token_ttl"] = "file"
	}
	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
	if file.MetricsEnabled != nil {
		c.MetricsEnabled = *file.MetricsEnabled
		c.sources["metrics_enabled"] = "file"
	}
	if file.ReadTimeout != 0 {
		c.ReadTimeout = file.ReadTimeout
		c.sources["read_timeout"] = "file"
	}
	if file.WriteTimeout != 0 {
		c.WriteTimeout = file.WriteTimeout
		c.sources["write_timeout"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	if val := os.Getenv("PERMCTL_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("PERMCTL_LOG_FORMAT"); val != "" {
		c.LogFormat = strings.ToLower(val)
		c.sources["log_format"] = "environment"
	}
	if val := os.Getenv("PERMCTL_CORS_ALLOWED_ORIGINS"); val != "" {
		c.CORSAllowedOrigins = splitAndTrim(val)
		c.sources["cors_allowed_origins"] = "environment"
	}
	if val := os.Getenv("PERMCTL_ADMIN_TOKEN_SECRET"); val != "" {
		c.AdminTokenSecret = val
		c.sources["admin_token_secret"] = "environment"
	}
	if val := os.Getenv("PERMCTL_ADMIN_TOKEN_TTL"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.AdminTokenTTL = i
			c.sources["admin_token_ttl"] = "environment"
		}
	}
	if val := os.Getenv("PERMCTL_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = parseBool(val)
		c.sources["audit_enabled"] = "environment"
	}
	if val := os.Getenv("PERMCTL_METRICS_ENABLED"); val != "" {
		c.MetricsEnabled = parseBool(val)
		c.sources["metrics_enabled"] = "environment"
	}
	if val := os.Getenv("PERMCTL_READ_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.ReadTimeout = i
			c.sources["read_timeout"] = "environment"
		}
	}
	if val := os.Getenv("PERMCTL_WRITE_TIMEOUT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.WriteTimeout = i
			c.sources["write_timeout"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// TokenTTL returns the admin token TTL as a duration
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.AdminTokenTTL) * time.Second
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

// TokenGateEnabled reports whether admin routes require a bearer token
func (c *Config) TokenGateEnabled() bool {
	return c.AdminTokenSecret != ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	if !contains(ValidLogFormats, c.LogFormat) {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	if c.AdminTokenTTL <= 0 {
		return fmt.Errorf("admin_token_ttl must be positive, got %d", c.AdminTokenTTL)
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return fmt.Errorf("read_timeout and write_timeout must be positive")
	}
	for _, origin := range c.CORSAllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("invalid cors_allowed_origins value: %s", origin)
		}
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources.
// The admin token secret is masked.
func (c *Config) Attributes() []Attribute {
	secret := ""
	if c.AdminTokenSecret != "" {
		secret = "********"
	}
	return []Attribute{
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
		{Name: "cors_allowed_origins", Value: strings.Join(c.CORSAllowedOrigins, ","), Source: c.Source("cors_allowed_origins")},
		{Name: "admin_token_secret", Value: secret, Source: c.Source("admin_token_secret")},
		{Name: "admin_token_ttl", Value: strconv.Itoa(c.AdminTokenTTL), Source: c.Source("admin_token_ttl")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "metrics_enabled", Value: strconv.FormatBool(c.MetricsEnabled), Source: c.Source("metrics_enabled")},
		{Name: "read_timeout", Value: strconv.Itoa(c.ReadTimeout), Source: c.Source("read_timeout")},
		{Name: "write_timeout", Value: strconv.Itoa(c.WriteTimeout), Source: c.Source("write_timeout")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func parseBool(val string) bool {
	return val == "true" || val == "1" || val == "yes"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
