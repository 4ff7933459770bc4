// Package config loads goshape-server settings from defaults, an optional
// YAML file, and GOSHAPE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	goshape "github.com/reoring/goshape"
)

// EnvPrefix prefixes every environment override (GOSHAPE_SERVER_ADDRESS).
const EnvPrefix = "GOSHAPE"

// Config holds all server configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Log        LogConfig        `mapstructure:"log" validate:"required"`
	Validation ValidationConfig `mapstructure:"validation" validate:"required"`
	Data       DataConfig       `mapstructure:"data"`
	Shapes     ShapesConfig     `mapstructure:"shapes"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Address      string `mapstructure:"address" validate:"required"`
	Mode         string `mapstructure:"mode" validate:"required,oneof=debug release test"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" validate:"gte=0"`
}

// LogConfig selects zerolog level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=trace debug info warn error fatal"`
	Format string `mapstructure:"format" validate:"required,oneof=json console"`
}

// ValidationConfig sets the ParseOpt applied to request bodies.
type ValidationConfig struct {
	DuplicateKeys string `mapstructure:"duplicate_keys" validate:"required,oneof=ignore warn error"`
	MaxDepth      int    `mapstructure:"max_depth" validate:"gte=0"`
	FailFast      bool   `mapstructure:"fail_fast"`
	Language      string `mapstructure:"language" validate:"required,oneof=en ja"`
}

// DataConfig points at an optional YAML seed for the item store.
type DataConfig struct {
	ItemsFile string `mapstructure:"items_file"`
}

// ShapesConfig points at an optional shape file served under /schemas.
type ShapesConfig struct {
	File string `mapstructure:"file"`
}

// ParseOpt converts the validation section and the body cap into core options.
func (c *Config) ParseOpt() goshape.ParseOpt {
	sev := goshape.Ignore
	switch c.Validation.DuplicateKeys {
	case "warn":
		sev = goshape.Warn
	case "error":
		sev = goshape.Error
	}
	return goshape.ParseOpt{
		Strictness: goshape.Strictness{OnDuplicateKey: sev},
		MaxDepth:   c.Validation.MaxDepth,
		MaxBytes:   c.Server.MaxBodyBytes,
		FailFast:   c.Validation.FailFast,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("validation.duplicate_keys", "error")
	v.SetDefault("validation.max_depth", 64)
	v.SetDefault("validation.fail_fast", false)
	v.SetDefault("validation.language", "en")
	v.SetDefault("data.items_file", "")
	v.SetDefault("shapes.file", "")
}

// Load reads configuration. path may be empty, in which case only defaults
// and environment variables apply. Environment variables take precedence
// over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return &cfg, nil
}
