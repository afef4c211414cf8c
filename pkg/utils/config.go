package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	HTTP       HTTPConfig
	Moderation ModerationConfig
	MinIO      MinIOConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxConns     int32
	QueryTimeout time.Duration
	AutoMigrate  bool
}

type AuthConfig struct {
	SessionTTL          time.Duration
	AdminBootstrapEmail string
}

type HTTPConfig struct {
	AllowedOrigins   []string
	MaxBodyBytes     int64
	ReviewRateLimit  int
	ReviewRateWindow time.Duration

	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP replace the peer address
	TrustProxyHeaders bool
}

// ModerationConfig controls how fresh moderated review data is.
type ModerationConfig struct {
	CacheTTL     time.Duration
	PollInterval time.Duration
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
	Region    string
}

// Enabled reports whether object storage is configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.SecretKey != "" && c.Bucket != ""
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-paradise")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_QUERY_TIMEOUT", "5s")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("SESSION_TTL_HOURS", 24)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("MAX_BODY_BYTES", 1<<20)
	viper.SetDefault("REVIEW_RATE_LIMIT", 5)
	viper.SetDefault("REVIEW_RATE_WINDOW", "1m")
	viper.SetDefault("TRUST_PROXY_HEADERS", false)
	viper.SetDefault("MODERATION_CACHE_TTL", "5s")
	viper.SetDefault("MODERATION_POLL_INTERVAL", "5s")
	viper.SetDefault("MINIO_BUCKET", "movie-paradise")
	viper.SetDefault("MINIO_REGION", "us-east-1")

	// .env is optional, the environment wins either way
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASS"),
			SSLMode:      viper.GetString("DB_SSLMODE"),
			MaxConns:     viper.GetInt32("DB_MAX_CONNS"),
			QueryTimeout: viper.GetDuration("DB_QUERY_TIMEOUT"),
			AutoMigrate:  viper.GetBool("DB_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			SessionTTL:          time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			AdminBootstrapEmail: strings.ToLower(strings.TrimSpace(viper.GetString("ADMIN_BOOTSTRAP_EMAIL"))),
		},
		HTTP: HTTPConfig{
			AllowedOrigins:    SplitCSV(viper.GetString("CORS_ALLOWED_ORIGINS")),
			MaxBodyBytes:      viper.GetInt64("MAX_BODY_BYTES"),
			ReviewRateLimit:   viper.GetInt("REVIEW_RATE_LIMIT"),
			ReviewRateWindow:  viper.GetDuration("REVIEW_RATE_WINDOW"),
			TrustProxyHeaders: viper.GetBool("TRUST_PROXY_HEADERS"),
		},
		Moderation: ModerationConfig{
			CacheTTL:     viper.GetDuration("MODERATION_CACHE_TTL"),
			PollInterval: viper.GetDuration("MODERATION_POLL_INTERVAL"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
			PublicURL: viper.GetString("MINIO_PUBLIC_URL"),
			Region:    viper.GetString("MINIO_REGION"),
		},
	}

	return config, nil
}
