package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Archivos ArchivosConfig
	Legajo   LegajoConfig
	Chat     ChatConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// ArchivosConfig controls uploaded file storage and validation.
type ArchivosConfig struct {
	StorageDir       string
	SignedURLSecret  string
	SignedURLTTL     time.Duration
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// LegajoConfig tunes the aggregate-state subsystem.
type LegajoConfig struct {
	CacheTTL         time.Duration
	RecalcWorkers    int
	RecalcBuffer     int
	RecalcMaxRetries int
	RecalcRetryDelay time.Duration
}

// ChatConfig governs the AI-assisted HR chat.
type ChatConfig struct {
	Enabled   bool
	ProjectID string
	Location  string
	Model     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	maxArchivoSize := v.GetInt64("ARCHIVOS_MAX_FILE_SIZE")
	if maxArchivoSize <= 0 {
		maxArchivoSize = 10 * 1024 * 1024
	}
	cfg.Archivos = ArchivosConfig{
		StorageDir:       v.GetString("ARCHIVOS_STORAGE_DIR"),
		SignedURLSecret:  v.GetString("ARCHIVOS_SIGNED_URL_SECRET"),
		SignedURLTTL:     parseDuration(v.GetString("ARCHIVOS_SIGNED_URL_TTL"), 30*time.Minute),
		MaxFileSizeBytes: maxArchivoSize,
		AllowedMIMEs:     splitAndTrim(v.GetString("ARCHIVOS_ALLOWED_MIME_TYPES")),
	}

	cfg.Legajo = LegajoConfig{
		CacheTTL:         parseDuration(v.GetString("LEGAJO_CACHE_TTL"), 5*time.Minute),
		RecalcWorkers:    v.GetInt("LEGAJO_RECALC_WORKERS"),
		RecalcBuffer:     v.GetInt("LEGAJO_RECALC_BUFFER"),
		RecalcMaxRetries: v.GetInt("LEGAJO_RECALC_MAX_RETRIES"),
		RecalcRetryDelay: parseDuration(v.GetString("LEGAJO_RECALC_RETRY_DELAY"), time.Second),
	}

	cfg.Chat = ChatConfig{
		Enabled:   v.GetBool("ENABLE_CHAT"),
		ProjectID: v.GetString("CHAT_GCP_PROJECT"),
		Location:  v.GetString("CHAT_GCP_LOCATION"),
		Model:     v.GetString("CHAT_MODEL"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "legajo_api")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ARCHIVOS_STORAGE_DIR", "./archivos")
	v.SetDefault("ARCHIVOS_SIGNED_URL_SECRET", "dev_archivos_secret")
	v.SetDefault("ARCHIVOS_SIGNED_URL_TTL", "30m")
	v.SetDefault("ARCHIVOS_MAX_FILE_SIZE", 10*1024*1024)
	v.SetDefault("ARCHIVOS_ALLOWED_MIME_TYPES", "application/pdf,image/jpeg,image/png")

	v.SetDefault("LEGAJO_CACHE_TTL", "5m")
	v.SetDefault("LEGAJO_RECALC_WORKERS", 1)
	v.SetDefault("LEGAJO_RECALC_BUFFER", 64)
	v.SetDefault("LEGAJO_RECALC_MAX_RETRIES", 3)
	v.SetDefault("LEGAJO_RECALC_RETRY_DELAY", "1s")

	v.SetDefault("ENABLE_CHAT", false)
	v.SetDefault("CHAT_GCP_PROJECT", "")
	v.SetDefault("CHAT_GCP_LOCATION", "us-central1")
	v.SetDefault("CHAT_MODEL", "gemini-1.5-flash")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
