// Package config loads application settings from an optional YAML file
// with sensible defaults for everything.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Settings is the full application configuration.
type Settings struct {
	Server ServerSettings `mapstructure:"server"`
	JWT    JWTSettings    `mapstructure:"jwt"`
	API    APISettings    `mapstructure:"api"`
	Schema SchemaSettings `mapstructure:"schema"`
	UI     UISettings     `mapstructure:"ui"`
}

// ServerSettings holds HTTP server options.
type ServerSettings struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// JWTSettings holds token signing options.
type JWTSettings struct {
	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
}

// APISettings holds REST layer behavior.
type APISettings struct {
	PageSize int `mapstructure:"page_size"`
}

// SchemaSettings controls the generated OpenAPI document.
type SchemaSettings struct {
	Title       string `mapstructure:"title"`
	Description string `mapstructure:"description"`
	Version     string `mapstructure:"version"`

	// PathPrefix is a regular expression, only matching routes are
	// included in the document.
	PathPrefix string `mapstructure:"path_prefix"`
}

// UISettings controls Swagger UI behavior flags.
type UISettings struct {
	DeepLinking          bool `mapstructure:"deep_linking"`
	PersistAuthorization bool `mapstructure:"persist_authorization"`
	DisplayOperationId   bool `mapstructure:"display_operation_id"`
}

// Load reads settings from configPath, or from "blogapi.yaml" in the
// working directory when empty. A missing file is not an error, the
// defaults apply.
func Load(configPath string) (*Settings, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = "blogapi.yaml"
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("jwt.secret", "insecure-dev-secret")
	v.SetDefault("jwt.access_ttl", 15*time.Minute)
	v.SetDefault("jwt.refresh_ttl", 24*time.Hour)

	v.SetDefault("api.page_size", 10)

	v.SetDefault("schema.title", "Blog API")
	v.SetDefault("schema.description", "CRUD API for posts and comments with JWT authentication")
	v.SetDefault("schema.version", "1.0.0")
	v.SetDefault("schema.path_prefix", "^/api/v1")

	v.SetDefault("ui.deep_linking", true)
	v.SetDefault("ui.persist_authorization", true)
	v.SetDefault("ui.display_operation_id", false)
}
