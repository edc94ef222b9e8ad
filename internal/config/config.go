package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const devJWTSecret = "dev-secret-change-in-production-min-32-chars"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	AXS      AXSConfig      `mapstructure:"axs"`
	Poll     PollConfig     `mapstructure:"poll"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Profiles ProfilesConfig `mapstructure:"profiles"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	GRPCPort        int           `mapstructure:"grpc_port"`
	HTTPPort        int           `mapstructure:"http_port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AXSConfig beschreibt den AXS Port (Modbus-TCP Endpoint)
type AXSConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	UnitID         int           `mapstructure:"unit_id"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Driver         string        `mapstructure:"driver"`
	BaseAddress    int           `mapstructure:"base_address"`
	ReleaseControl bool          `mapstructure:"release_control"`
	Transform      string        `mapstructure:"transform"`
}

type PollConfig struct {
	ShortInterval time.Duration `mapstructure:"short_interval"`
	LongInterval  time.Duration `mapstructure:"long_interval"`
	Registers     []string      `mapstructure:"registers"`
}

type MQTTConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"client_id"`
	TopicPrefix string `mapstructure:"topic_prefix"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	QoS         int    `mapstructure:"qos"`
	Retain      bool   `mapstructure:"retain"`
}

type DatabaseConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// Auth Configuration
type AuthConfig struct {
	JWTSecretEnv   string        `mapstructure:"jwt_secret_env"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	Users          []UserConfig  `mapstructure:"users"`
}

// UserConfig is an operator account. PasswordHash is an argon2id hash.
type UserConfig struct {
	Username     string `mapstructure:"username"`
	Role         string `mapstructure:"role"`
	PasswordHash string `mapstructure:"password_hash"`
}

type ProfilesConfig struct {
	SearchPaths []string `mapstructure:"search_paths"`
	Files       []string `mapstructure:"files"`
}

type LogConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("axs.port", 502)
	v.SetDefault("axs.unit_id", 1)
	v.SetDefault("axs.timeout", "10s")
	v.SetDefault("axs.driver", "native")
	v.SetDefault("axs.base_address", 40001)
	v.SetDefault("axs.release_control", true)

	v.SetDefault("poll.short_interval", "5s")
	v.SetDefault("poll.long_interval", "30s")

	v.SetDefault("mqtt.client_id", "sunspec-bridge")
	v.SetDefault("mqtt.topic_prefix", "sunspec")
	v.SetDefault("mqtt.qos", 0)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_connections", 5)

	// Auth Defaults
	v.SetDefault("auth.jwt_secret_env", "JWT_SECRET")
	v.SetDefault("auth.access_token_ttl", "60m")

	v.SetDefault("profiles.search_paths", []string{"./profiles"})
	v.SetDefault("log.level", "info")
}

// Load liest die YAML Konfiguration. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	// Environment Variables mit Prefix SBR_, z.B. SBR_AXS_HOST
	v.SetEnvPrefix("SBR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.AXS.Host == "" {
		return fmt.Errorf("axs.host is required")
	}
	if c.AXS.Port <= 0 || c.AXS.Port > 65535 {
		return fmt.Errorf("axs.port %d out of range", c.AXS.Port)
	}
	if c.AXS.UnitID < 0 || c.AXS.UnitID > 247 {
		return fmt.Errorf("axs.unit_id %d out of range", c.AXS.UnitID)
	}
	if c.AXS.BaseAddress <= 0 || c.AXS.BaseAddress > 65535 {
		return fmt.Errorf("axs.base_address %d out of range", c.AXS.BaseAddress)
	}
	if c.Poll.ShortInterval <= 0 {
		return fmt.Errorf("poll.short_interval must be positive")
	}
	if c.MQTT.Enabled && c.MQTT.Broker == "" {
		return fmt.Errorf("mqtt.broker is required when mqtt is enabled")
	}
	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos %d out of range", c.MQTT.QoS)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Database)
}

// JWT Secret aus Environment Variable laden
func (a *AuthConfig) GetJWTSecret() string {
	envVar := a.JWTSecretEnv
	if envVar == "" {
		envVar = "JWT_SECRET"
	}

	secret := os.Getenv(envVar)
	if secret == "" {
		// Development Fallback (MIT WARNING!)
		return devJWTSecret
	}
	return secret
}

// Helper um zu prüfen ob Production-Ready
func (a *AuthConfig) IsProductionReady() bool {
	secret := a.GetJWTSecret()
	return secret != devJWTSecret && len(secret) >= 32
}
