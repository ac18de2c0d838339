package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the full configuration surface. Values come from an optional
// YAML file, with environment variables taking precedence so deployments can
// inject secrets without touching the file.
type Settings struct {
	Port         string   `yaml:"port"`
	LogLevel     string   `yaml:"logLevel"`
	AllowOrigins []string `yaml:"allowOrigins"`

	DBHost     string `yaml:"dbHost"`
	DBPort     string `yaml:"dbPort"`
	DBUser     string `yaml:"dbUser"`
	DBPassword string `yaml:"dbPassword"`
	DBName     string `yaml:"dbName"`

	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`

	MinioEndpoint  string `yaml:"minioEndpoint"`
	MinioAccessKey string `yaml:"minioAccessKey"`
	MinioSecretKey string `yaml:"minioSecretKey"`
	MinioUseSSL    bool   `yaml:"minioUseSSL"`
	MediaBucket    string `yaml:"mediaBucket"`
	// MediaBaseURL is the public prefix uploaded media is served from,
	// e.g. "https://media.example.com". The bucket and key are appended.
	MediaBaseURL string `yaml:"mediaBaseURL"`
}

// Load reads the YAML file at path (skipped if absent) and applies env
// overrides. Defaults: port 8080, log level info.
func Load(path string) (Settings, error) {
	cfg := Settings{
		Port:     "8080",
		LogLevel: "info",
	}

	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// env-only deployment
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		cfg.AllowOrigins = splitCSV(v)
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.DBHost = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.DBPort = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.DBUser = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DBPassword = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.DBName = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.MinioUseSSL = b
		}
	}
	if v := os.Getenv("MEDIA_BUCKET"); v != "" {
		cfg.MediaBucket = v
	}
	if v := os.Getenv("MEDIA_BASE_URL"); v != "" {
		cfg.MediaBaseURL = v
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg Settings) error {
	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return errors.New("config: dbHost, dbUser and dbName are required")
	}
	if cfg.RedisAddr == "" {
		return errors.New("config: redisAddr is required for sessions and comments")
	}
	if cfg.MinioEndpoint == "" || cfg.MediaBucket == "" {
		return errors.New("config: minioEndpoint and mediaBucket are required for media uploads")
	}
	return nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
