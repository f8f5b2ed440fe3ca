package config

import (
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// File sources for stored documents.
const (
	FilesSourceBackend = "backend"
	FilesSourceMinIO   = "minio"
)

// DatabaseConfig holds PostgreSQL settings for the report store.
// The database is optional: with an empty Host reports are kept in memory.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// Enabled reports whether a database was configured.
func (c DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// MinIOConfig holds object storage settings used when stored files live in a bucket.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// APIConfig describes the archive backend this frontend talks to.
type APIConfig struct {
	BaseURL string
	PerPage int
	// TimeoutSec of 0 leaves the platform default in place.
	TimeoutSec int
}

// Timeout returns the configured request timeout (0 means none).
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// SessionConfig controls the token cookie.
type SessionConfig struct {
	CookieName      string
	CookieSecure    bool
	CookieMaxAgeSec int
}

// UploadConfig bounds the upload form.
type UploadConfig struct {
	MaxMB            int
	RedirectDelaySec int
}

// MaxBytes returns the request body limit for uploads.
func (c UploadConfig) MaxBytes() int {
	return c.MaxMB << 20
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	// AppHost is the public host or base URL for share links; empty trusts the request's Host.
	AppHost     string
	Port        string
	LogLevel    string
	FilesSource string
	API         APIConfig
	Session     SessionConfig
	Upload      UploadConfig
	Database    DatabaseConfig
	MinIO       MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", ""),
		Port:        getEnv("PORT", "3000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FilesSource: getEnv("FILES_SOURCE", FilesSourceBackend),
		API: APIConfig{
			BaseURL:    getEnv("API_BASE_URL", "http://127.0.0.1:5001"),
			PerPage:    getEnvInt("API_PER_PAGE", 20),
			TimeoutSec: getEnvInt("API_TIMEOUT_SEC", 0),
		},
		Session: SessionConfig{
			CookieName:      getEnv("SESSION_COOKIE_NAME", "token"),
			CookieSecure:    getEnvBool("SESSION_COOKIE_SECURE", false),
			CookieMaxAgeSec: getEnvInt("SESSION_COOKIE_MAX_AGE_SEC", 24*60*60),
		},
		Upload: UploadConfig{
			MaxMB:            getEnvInt("UPLOAD_MAX_MB", 100),
			RedirectDelaySec: getEnvInt("UPLOAD_REDIRECT_DELAY_SEC", 2),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// Validate checks the settings the server cannot start without.
func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.FilesSource, validation.Required, validation.In(FilesSourceBackend, FilesSourceMinIO)),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.API,
		validation.Field(&c.API.BaseURL, validation.Required, is.URL),
		validation.Field(&c.API.PerPage, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&c.API.TimeoutSec, validation.Min(0)),
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
