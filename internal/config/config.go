package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Store    StoreConfig    `mapstructure:"store"`
	Printer  PrinterConfig  `mapstructure:"printer"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	AllowedOrigin  string        `mapstructure:"allowed_origin"`
}

type DatabaseConfig struct {
	Driver           string        `mapstructure:"driver"`
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	User             string        `mapstructure:"user"`
	Password         string        `mapstructure:"password"`
	Name             string        `mapstructure:"name"`
	Path             string        `mapstructure:"path"`
	SSLMode          string        `mapstructure:"sslmode"`
	MaxOpenConns     int           `mapstructure:"max_open_conns"`
	MaxIdleConns     int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime  time.Duration `mapstructure:"conn_max_lifetime"`
	TxTimeout        time.Duration `mapstructure:"tx_timeout"`
	MaxRetryAttempts int           `mapstructure:"max_retry_attempts"`
	AutoMigrate      bool          `mapstructure:"auto_migrate"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuthConfig struct {
	Username     string        `mapstructure:"username"`
	Password     string        `mapstructure:"password"`
	Secret       string        `mapstructure:"secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

// StoreConfig is the shop identity printed on receipts.
type StoreConfig struct {
	Name  string `mapstructure:"name"`
	CNPJ  string `mapstructure:"cnpj"`
	Phone string `mapstructure:"phone"`
}

type PrinterConfig struct {
	Address string        `mapstructure:"address"`
	Device  string        `mapstructure:"device"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type BackupConfig struct {
	Dir string `mapstructure:"dir"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// envBindings keeps the variable names used by existing deployments.
var envBindings = map[string]string{
	"server.port":                 "PORT",
	"server.request_timeout":      "REQUEST_TIMEOUT",
	"server.allowed_origin":       "ALLOWED_ORIGIN",
	"database.driver":             "DB_DRIVER",
	"database.host":               "DB_HOST",
	"database.port":               "DB_PORT",
	"database.user":               "DB_USER",
	"database.password":           "DB_PASSWORD",
	"database.name":               "DB_NAME",
	"database.path":               "DB_PATH",
	"database.sslmode":            "DB_SSLMODE",
	"database.max_open_conns":     "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns":     "DB_MAX_IDLE_CONNS",
	"database.conn_max_lifetime":  "DB_CONN_MAX_LIFETIME",
	"database.tx_timeout":         "DB_TX_TIMEOUT",
	"database.max_retry_attempts": "DB_MAX_RETRY_ATTEMPTS",
	"database.auto_migrate":       "DB_AUTO_MIGRATE",
	"log.level":                   "LOG_LEVEL",
	"log.format":                  "LOG_FORMAT",
	"auth.username":               "APP_USERNAME",
	"auth.password":               "APP_PASSWORD",
	"auth.secret":                 "SECRET_KEY",
	"auth.token_ttl":              "AUTH_TOKEN_TTL",
	"auth.secure_cookie":          "AUTH_SECURE_COOKIE",
	"store.name":                  "NOME_LOJA",
	"store.cnpj":                  "CNPJ_LOJA",
	"store.phone":                 "TEL_LOJA",
	"printer.address":             "PRINTER_ADDRESS",
	"printer.device":              "PRINTER_DEVICE",
	"printer.timeout":             "PRINTER_TIMEOUT",
	"backup.dir":                  "BACKUP_DIR",
	"redis.addr":                  "REDIS_ADDR",
	"redis.password":              "REDIS_PASSWORD",
	"redis.db":                    "REDIS_DB",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.allowed_origin", "")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "smartfinance")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "smartfinance")
	v.SetDefault("database.path", "smartfinance.db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.tx_timeout", "5s")
	v.SetDefault("database.max_retry_attempts", 3)
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("auth.username", "admin")
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.secure_cookie", false)
	v.SetDefault("store.name", "Minha Loja")
	v.SetDefault("store.cnpj", "00.000.000/0000-00")
	v.SetDefault("store.phone", "00 00000-0000")
	v.SetDefault("printer.address", "")
	v.SetDefault("printer.device", "")
	v.SetDefault("printer.timeout", "5s")
	v.SetDefault("backup.dir", os.TempDir())
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}

// Load builds the configuration once at startup: defaults, then the optional
// YAML file at path, then .env and process environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	if len(c.Auth.Secret) < 32 {
		return fmt.Errorf("SECRET_KEY must be set and at least 32 characters")
	}
	if strings.TrimSpace(c.Auth.Username) == "" {
		return fmt.Errorf("APP_USERNAME must not be empty")
	}
	if c.Auth.Password == "" {
		return fmt.Errorf("APP_PASSWORD must be set")
	}
	if c.Database.MaxRetryAttempts < 1 {
		return fmt.Errorf("database.max_retry_attempts must be at least 1")
	}
	return nil
}
