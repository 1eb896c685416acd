package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"

	SessionMemory = "memory"
	SessionBolt   = "bolt"
	SessionRedis  = "redis"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string           `yaml:"app_name"`
	Environment string           `yaml:"environment"`
	Timezone    string           `yaml:"timezone"`
	HTTP        HTTPConfig       `yaml:"http"`
	Storage     StorageConfig    `yaml:"storage"`
	Sessions    SessionConfig    `yaml:"sessions"`
	JWT         JWTConfig        `yaml:"jwt"`
	Context     ContextConfig    `yaml:"context"`
	Logger      LoggerConfig     `yaml:"logger"`
	Migrations  MigrationsConfig `yaml:"migrations"`
	Monitor     MonitorConfig    `yaml:"monitor"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type StorageConfig struct {
	Driver   string         `yaml:"driver"`
	Database DatabaseConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

type DatabaseConfig struct {
	URL             string        `yaml:"url"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Name            string        `yaml:"name"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	SSLMode         string        `yaml:"sslmode"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type SessionConfig struct {
	Driver        string        `yaml:"driver"`
	TTL           time.Duration `yaml:"ttl"`
	BoltPath      string        `yaml:"bolt_path"`
	PurgeInterval time.Duration `yaml:"purge_interval"`
	Redis         RedisConfig   `yaml:"redis"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
}

type ContextConfig struct {
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggerConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
	File     string `yaml:"file"`
}

type MigrationsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MonitorConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Defaults returns the configuration used when nothing else is provided.
func Defaults() *Config {
	return &Config{
		AppName:     "progress-tracker",
		Environment: "development",
		HTTP: HTTPConfig{
			Host:         "0.0.0.0",
			Port:         "8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Storage: StorageConfig{
			Driver: StorageSQLite,
			Database: DatabaseConfig{
				Host:            "localhost",
				Port:            "5432",
				Name:            "progress",
				User:            "progress",
				MaxOpenConns:    25,
				MaxIdleConns:    5,
				MaxConnLifetime: time.Hour,
				SSLMode:         "disable",
			},
			SQLite: SQLiteConfig{Path: "./data/progress.db"},
		},
		Sessions: SessionConfig{
			Driver:        SessionBolt,
			TTL:           24 * time.Hour,
			BoltPath:      "./data/sessions.db",
			PurgeInterval: 10 * time.Minute,
			Redis:         RedisConfig{URL: "redis://localhost:6379"},
		},
		JWT: JWTConfig{Issuer: "progress-tracker"},
		Context: ContextConfig{
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logger:     LoggerConfig{Level: "info", Encoding: "json"},
		Migrations: MigrationsConfig{Enabled: true},
		Monitor:    MonitorConfig{Interval: 10 * time.Second},
	}
}

// Load builds the configuration in three layers: defaults, an optional YAML
// file named by CONFIG_FILE, then environment variables (optionally from .env).
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.AppName = getString("APP_NAME", cfg.AppName)
	cfg.Environment = getString("APP_ENV", cfg.Environment)
	cfg.Timezone = getString("APP_TIMEZONE", cfg.Timezone)

	cfg.HTTP.Host = getString("SERVER_HOST", cfg.HTTP.Host)
	cfg.HTTP.Port = getString("SERVER_PORT", cfg.HTTP.Port)
	cfg.HTTP.ReadTimeout = getDuration("SERVER_READ_TIMEOUT", cfg.HTTP.ReadTimeout)
	cfg.HTTP.WriteTimeout = getDuration("SERVER_WRITE_TIMEOUT", cfg.HTTP.WriteTimeout)
	cfg.HTTP.IdleTimeout = getDuration("SERVER_IDLE_TIMEOUT", cfg.HTTP.IdleTimeout)

	cfg.Storage.Driver = getString("STORAGE_DRIVER", cfg.Storage.Driver)
	cfg.Storage.SQLite.Path = getString("SQLITE_PATH", cfg.Storage.SQLite.Path)
	db := &cfg.Storage.Database
	db.URL = getString("DATABASE_URL", db.URL)
	db.Host = getString("DB_HOST", db.Host)
	db.Port = getString("DB_PORT", db.Port)
	db.Name = getString("DB_NAME", db.Name)
	db.User = getString("DB_USER", db.User)
	db.Password = getString("DB_PASSWORD", db.Password)
	db.MaxOpenConns = getInt("DB_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.MaxIdleConns = getInt("DB_MAX_IDLE_CONNS", db.MaxIdleConns)
	db.MaxConnLifetime = getDuration("DB_CONN_LIFETIME", db.MaxConnLifetime)
	db.SSLMode = getString("DB_SSLMODE", db.SSLMode)
	if db.URL == "" {
		db.URL = buildPostgresURL(*db)
	}

	s := &cfg.Sessions
	s.Driver = getString("SESSION_DRIVER", s.Driver)
	s.TTL = getDuration("SESSION_TTL", s.TTL)
	s.BoltPath = getString("BOLTDB_PATH", s.BoltPath)
	s.PurgeInterval = getDuration("SESSION_PURGE_INTERVAL", s.PurgeInterval)
	s.Redis.URL = getString("REDIS_URL", s.Redis.URL)
	s.Redis.Password = getString("REDIS_PASSWORD", s.Redis.Password)
	s.Redis.DB = getInt("REDIS_DB", s.Redis.DB)

	cfg.JWT.Secret = getString("JWT_SECRET", cfg.JWT.Secret)
	cfg.JWT.Issuer = getString("JWT_ISSUER", cfg.JWT.Issuer)

	cfg.Context.RequestTimeout = getDuration("REQUEST_TIMEOUT_SECONDS", cfg.Context.RequestTimeout)
	cfg.Context.ShutdownTimeout = getDuration("SHUTDOWN_TIMEOUT_SECONDS", cfg.Context.ShutdownTimeout)

	cfg.Logger.Level = getString("LOG_LEVEL", cfg.Logger.Level)
	cfg.Logger.Encoding = getString("LOG_ENCODING", cfg.Logger.Encoding)
	cfg.Logger.File = getString("LOG_FILE", cfg.Logger.File)

	cfg.Migrations.Enabled = getBool("RUN_MIGRATIONS", cfg.Migrations.Enabled)
	cfg.Monitor.Interval = getDuration("MONITOR_INTERVAL", cfg.Monitor.Interval)
}

// Validate rejects unknown drivers and unusable combinations.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StorageSQLite, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Sessions.Driver {
	case SessionMemory, SessionBolt, SessionRedis:
	default:
		return fmt.Errorf("unknown session driver %q", c.Sessions.Driver)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	if c.Environment == "production" && c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	return nil
}

// Location resolves the configured time zone, falling back to local time.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func buildPostgresURL(db DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
