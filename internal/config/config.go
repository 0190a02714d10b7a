// Package config loads runtime configuration from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	FileStoreLocal      = "local"
	FileStoreS3         = "s3"
	FileStoreCloudinary = "cloudinary"
)

type Config struct {
	AppEnv             string        `env:"APP_ENV" envDefault:"dev"`
	Port               string        `env:"PORT" envDefault:"3000"`
	DatabaseURL        string        `env:"DATABASE_URL" envDefault:"gestion_archivos.db"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	MetricsEnabled     bool          `env:"METRICS_ENABLED" envDefault:"true"`
	MultipartMemory    int64         `env:"MULTIPART_MEMORY" envDefault:"33554432"` // 32 MB kept in memory, rest spills to disk
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`

	FileStore FileStore
}

// FileStore selects and configures where image bytes live.
type FileStore struct {
	Driver string `env:"FILE_STORE" envDefault:"local"`

	UploadsDir       string `env:"UPLOADS_DIR" envDefault:"./uploads"`
	UploadsURLPrefix string `env:"UPLOADS_URL_PREFIX" envDefault:"/uploads"`

	// S3-compatible object storage (MinIO locally)
	StorageEndpoint   string `env:"STORAGE_ENDPOINT"`
	StorageAccessKey  string `env:"STORAGE_ACCESS_KEY"`
	StorageSecretKey  string `env:"STORAGE_SECRET_KEY"`
	StorageBucket     string `env:"STORAGE_BUCKET" envDefault:"publicaciones"`
	StorageUseSSL     bool   `env:"STORAGE_USE_SSL" envDefault:"false"`
	StoragePublicBase string `env:"STORAGE_PUBLIC_BASE"`

	CloudinaryURL       string `env:"CLOUDINARY_URL"`
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"publicaciones"`
}

// Load reads configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, reading from environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.FileStore.Driver = strings.ToLower(strings.TrimSpace(cfg.FileStore.Driver))
	cfg.CORSAllowedOrigins = trimAll(cfg.CORSAllowedOrigins)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.MultipartMemory <= 0 {
		return fmt.Errorf("MULTIPART_MEMORY must be > 0")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be > 0")
	}

	fs := cfg.FileStore
	switch fs.Driver {
	case FileStoreLocal:
		if strings.TrimSpace(fs.UploadsDir) == "" {
			return fmt.Errorf("UPLOADS_DIR must not be empty")
		}
		if !strings.HasPrefix(fs.UploadsURLPrefix, "/") {
			return fmt.Errorf("UPLOADS_URL_PREFIX must start with /")
		}
	case FileStoreS3:
		if fs.StorageEndpoint == "" || fs.StorageAccessKey == "" || fs.StorageSecretKey == "" {
			return fmt.Errorf("FILE_STORE=s3 requires STORAGE_ENDPOINT, STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY")
		}
		if fs.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET must not be empty")
		}
		if fs.StoragePublicBase == "" {
			return fmt.Errorf("STORAGE_PUBLIC_BASE must not be empty")
		}
	case FileStoreCloudinary:
		if fs.CloudinaryURL == "" &&
			(fs.CloudinaryCloudName == "" || fs.CloudinaryAPIKey == "" || fs.CloudinaryAPISecret == "") {
			return fmt.Errorf("FILE_STORE=cloudinary requires CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	default:
		return fmt.Errorf("FILE_STORE must be one of: local, s3, cloudinary (got %q)", fs.Driver)
	}

	return nil
}

// IsProduction returns true when the app is running in a prod-like mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
