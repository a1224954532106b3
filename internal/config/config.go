package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration tree.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	Agent       AgentConfig       `mapstructure:"agent"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
	Renderer    RendererConfig    `mapstructure:"renderer"`
	WhatsApp    WhatsAppConfig    `mapstructure:"whatsapp"`
	Database    DatabaseConfig    `mapstructure:"database"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host               string        `mapstructure:"host"`
	Port               int           `mapstructure:"port"`
	Mode               string        `mapstructure:"mode"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	MaxRequestBodySize int           `mapstructure:"max_request_body_size"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	Output    string `mapstructure:"output"`
	FilePath  string `mapstructure:"file_path"`
	AddSource bool   `mapstructure:"add_source"`
}

// JWTConfig holds the token signing secret.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// AgentConfig points at the external query agent service.
type AgentConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RecommenderConfig points at the chart recommendation service. Optional:
// with no base URL every chart type is treated as recommended.
type RecommenderConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RendererConfig points at the HTML-to-PDF conversion service.
type RendererConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WhatsAppConfig enables the inbound webhook. The default database profile
// is used for webhook questions since the channel carries no auth context.
type WhatsAppConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	DefaultDatabase  string `mapstructure:"default_database"`
	MaxReplyLength   int    `mapstructure:"max_reply_length"`
	SignatureSecret  string `mapstructure:"signature_secret"`
	ValidateRequests bool   `mapstructure:"validate_requests"`
}

// DatabaseConfig configures the server's own persistence store.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// Load reads the config file (default search: ./configs, .) and overlays
// ECHOSQL_* environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ECHOSQL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server mode: %s, must be 'debug' or 'release'", c.Server.Mode)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt.secret must be at least 32 characters for security")
	}

	if c.Agent.BaseURL == "" {
		return fmt.Errorf("agent.base_url is required")
	}

	if c.Database.Driver == "" {
		return fmt.Errorf("database.driver is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}

	return nil
}

// GetServerAddr returns the host:port the listener binds to.
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetReadTimeout returns the HTTP read timeout.
func (c *Config) GetReadTimeout() time.Duration {
	return c.Server.ReadTimeout
}

// GetWriteTimeout returns the HTTP write timeout.
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Server.WriteTimeout
}
