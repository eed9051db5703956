// Package config loads the server configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server holds all configuration for the skill server.
type Server struct {
	LogLevel string `yaml:"log_level"`

	// SkillsPath is the directory tree of skill definition files.
	SkillsPath string `yaml:"skills_path"`

	// PermissionPrefix prefixes the permission node required by
	// restricted skills.
	PermissionPrefix string `yaml:"permission_prefix"`

	// InheritLevel controls whether child skills without an explicit
	// level inherit their parent's level.
	InheritLevel bool `yaml:"inherit_level"`

	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultServer returns Server config with sensible defaults.
func DefaultServer() Server {
	return Server{
		LogLevel:         "info",
		SkillsPath:       "config/skills",
		PermissionPrefix: "skillforge.skill.",
		InheritLevel:     true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skillforge",
			Password: "skillforge",
			DBName:   "skillforge",
			SSLMode:  "disable",
		},
	}
}

// LoadServer loads the server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
