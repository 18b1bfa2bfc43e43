package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so "24h"-style YAML values parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type (
	// ServerConfig holds the MES API server configuration.
	ServerConfig struct {
		Port     int            `yaml:"port"`
		Database DatabaseConfig `yaml:"database"`
		Logger   LoggerConfig   `yaml:"logger"`
		JWT      JWTConfig      `yaml:"jwt"`
		I18n     I18nConfig     `yaml:"i18n"`
		Session  SessionConfig  `yaml:"session"`
		Metrics  MetricsConfig  `yaml:"metrics"`
		ERP      ERPConfig      `yaml:"erp"`
		Upload   UploadConfig   `yaml:"upload"`
		Admin    AdminConfig    `yaml:"admin"`
	}

	// AdminConfig seeds the initial administrator account.
	AdminConfig struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	}

	// DatabaseConfig describes the business database connection.
	DatabaseConfig struct {
		Type     string `yaml:"type"`     // mysql, postgres, sqlite
		Host     string `yaml:"host"`     // localhost
		Port     int    `yaml:"port"`     // 3306 (mysql), 5432 (postgres)
		User     string `yaml:"user"`     // connection user
		Password string `yaml:"password"` // connection password
		DBName   string `yaml:"dbname"`   // database name, or file path for sqlite
		SSLMode  string `yaml:"sslmode"`  // disable (postgres only)
		Service  string `yaml:"service"`  // optional service name, kept for legacy DSNs
	}

	// I18nConfig points at the translation bundle directory.
	I18nConfig struct {
		Path        string `yaml:"path"`
		DefaultLang string `yaml:"default_lang"`
	}

	// JWTConfig configures token signing.
	JWTConfig struct {
		SecretKey string   `yaml:"secret_key"`
		Duration  Duration `yaml:"duration"`
	}

	// SessionConfig selects the tab-session store backend.
	SessionConfig struct {
		Type  string             `yaml:"type"` // memory, disk or redis
		Path  string             `yaml:"path"` // base dir for the disk store
		Redis SessionRedisConfig `yaml:"redis"`
	}

	// SessionRedisConfig configures the redis tab-session store.
	SessionRedisConfig struct {
		Addr     string   `yaml:"addr"`
		Username string   `yaml:"username"`
		Password string   `yaml:"password"`
		DB       int      `yaml:"db"`
		Prefix   string   `yaml:"prefix"`
		TTL      Duration `yaml:"ttl"`
	}

	// MetricsConfig configures the prometheus registry.
	MetricsConfig struct {
		Enabled   bool      `yaml:"enabled"`
		Namespace string    `yaml:"namespace"`
		Buckets   []float64 `yaml:"buckets"`
	}

	// ERPConfig configures the outbound ERP notification client.
	ERPConfig struct {
		BaseURL string   `yaml:"base_url"`
		APIKey  string   `yaml:"api_key"`
		Timeout Duration `yaml:"timeout"`
	}

	// UploadConfig configures file upload storage.
	UploadConfig struct {
		Dir     string `yaml:"dir"`      // directory uploaded files are written to
		BaseURL string `yaml:"base_url"` // public prefix returned to clients
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps, default is local
		TimeFormat string `yaml:"time_format"` // time format for log timestamps
	}
)

// GetDSN returns the database connection string.
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case "postgres":
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.DBName)
	case "sqlite":
		// For SQLite, DBName is the file path
		return c.DBName
	default:
		return ""
	}
}
