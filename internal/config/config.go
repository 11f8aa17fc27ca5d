package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	Prefs    PrefsConfig
	Redis    RedisConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"VIEWER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"VIEWER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"VIEWER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"VIEWER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type CatalogConfig struct {
	BaseURL string        `envconfig:"CATALOG_BASE_URL" default:"http://localhost:8000/api"`
	Timeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`
	// ListLimit is the size of one autoplay queue snapshot.
	ListLimit   int `envconfig:"CATALOG_LIST_LIMIT" default:"50"`
	UpNextCount int `envconfig:"CATALOG_UP_NEXT_COUNT" default:"5"`
}

type SessionConfig struct {
	Secret     string        `envconfig:"SESSION_SECRET" default:"dev-secret-change-me"`
	CookieName string        `envconfig:"SESSION_COOKIE_NAME" default:"nesubtv_profile"`
	TTL        time.Duration `envconfig:"SESSION_TTL" default:"8760h"`
	Secure     bool          `envconfig:"SESSION_COOKIE_SECURE" default:"false"`
}

type PrefsConfig struct {
	// Backend selects where viewer preferences live: file, redis or
	// postgres.
	Backend string `envconfig:"PREFS_BACKEND" default:"file"`
	Dir     string `envconfig:"PREFS_DIR" default:"/var/lib/nesubtv/prefs"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"nesubtv"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"nesubtv"`
	DBName   string `envconfig:"POSTGRES_DB" default:"nesubtv"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MinIOConfig struct {
	Enabled       bool   `envconfig:"MINIO_ENABLED" default:"false"`
	Endpoint      string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	PublicBaseURL string `envconfig:"MINIO_PUBLIC_BASE_URL" default:"http://localhost:9000/branding"`
	AccessKey     string `envconfig:"MINIO_ACCESS_KEY" default:"minioadmin"`
	SecretKey     string `envconfig:"MINIO_SECRET_KEY" default:"minioadmin"`
	Bucket        string `envconfig:"MINIO_BUCKET" default:"branding"`
	UseSSL        bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	switch cfg.Prefs.Backend {
	case "file", "redis", "postgres":
	default:
		return nil, fmt.Errorf("unknown prefs backend %q", cfg.Prefs.Backend)
	}
	return &cfg, nil
}
