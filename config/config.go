package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Punch    PunchConfig    `mapstructure:"punch"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN builds the MySQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&multiStatements=true",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// Enabled gates the cross-instance change feed; single-instance
	// deployments run without Redis.
	Enabled bool `mapstructure:"enabled"`
}

type AuthConfig struct {
	// SigningSecret is base64-encoded HS256 key material.
	SigningSecret string `mapstructure:"signing_secret"`
	TokenTTLSecs  int64  `mapstructure:"token_ttl_seconds"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type PunchConfig struct {
	// DoubleIn selects what a second punch-in on an open session does:
	// "replace" abandons the open session, "reject" ignores the new one.
	DoubleIn string `mapstructure:"double_in"`
}

// Load reads configuration from an optional YAML file plus LOGIVRAC_
// environment overrides, on top of defaults. Environment wins.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8090)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.name", "logivrac")
	v.SetDefault("db.user", "logivrac")
	v.SetDefault("db.password", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enabled", false)

	v.SetDefault("auth.signing_secret", "")
	v.SetDefault("auth.token_ttl_seconds", int64(12*3600))

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("punch.double_in", "replace")

	v.SetEnvPrefix("LOGIVRAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Auth.SigningSecret == "" {
		return nil, fmt.Errorf("auth.signing_secret is required")
	}
	return &cfg, nil
}
