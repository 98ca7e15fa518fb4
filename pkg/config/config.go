package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Port            string `yaml:"port"`
	DatabaseURL     string `yaml:"database_url"`
	DBMaxConns      int    `yaml:"db_max_conns"`
	RedisURL        string `yaml:"redis_url"`
	JWTSecret       string `yaml:"jwt_secret"`
	JWTIssuer       string `yaml:"jwt_issuer"`
	JWTTTLMinutes   int    `yaml:"jwt_ttl_minutes"`
	UploadDir       string `yaml:"upload_dir"`
	MaxUploadMB     int    `yaml:"max_upload_mb"`
	DefaultPageSize int    `yaml:"default_page_size"`
	LogJSON         bool   `yaml:"log_json"`
	Debug           bool   `yaml:"debug"`
}

func defaults() Config {
	return Config{
		Port:            "8080",
		DBMaxConns:      10,
		JWTSecret:       "dev-secret-change",
		JWTIssuer:       "jobboard",
		JWTTTLMinutes:   60,
		UploadDir:       "uploads",
		MaxUploadMB:     15,
		DefaultPageSize: 9,
	}
}

// Load собирает конфигурацию: умолчания, необязательный YAML по path, .env при наличии
// и окружение процесса. Каждый слой перекрывает предыдущий.
func Load(path string) (Config, error) {
	cfg := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Пробуем .env; отсутствие файла не ошибка
	_ = godotenv.Load()

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBMaxConns = getEnvInt("DB_MAX_CONNS", cfg.DBMaxConns)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTIssuer = getEnv("JWT_ISSUER", cfg.JWTIssuer)
	cfg.JWTTTLMinutes = getEnvInt("JWT_TTL_MINUTES", cfg.JWTTTLMinutes)
	cfg.UploadDir = getEnv("UPLOAD_DIR", cfg.UploadDir)
	cfg.MaxUploadMB = getEnvInt("MAX_UPLOAD_MB", cfg.MaxUploadMB)
	cfg.DefaultPageSize = getEnvInt("DEFAULT_PAGE_SIZE", cfg.DefaultPageSize)
	cfg.LogJSON = getEnvBool("LOG_JSON", cfg.LogJSON)
	cfg.Debug = getEnvBool("DEBUG", cfg.Debug)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.DBMaxConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_CONNS must be positive"))
	}
	if c.JWTTTLMinutes <= 0 {
		errs = append(errs, errors.New("JWT_TTL_MINUTES must be positive"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	if c.DefaultPageSize <= 0 {
		errs = append(errs, errors.New("DEFAULT_PAGE_SIZE must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
