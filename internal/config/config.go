package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string `yaml:"listen_addr"`
	Port           string `yaml:"port"`
	DatabaseDriver string `yaml:"database_driver"`
	DatabaseDSN    string `yaml:"database_dsn"`
	SessionSecret  string `yaml:"session_secret"`
	SessionSecure  bool   `yaml:"session_secure"`
	AllowSignup    bool   `yaml:"allow_signup"`
	GinMode        string `yaml:"gin_mode"`
	LogMode        string `yaml:"log_mode"`

	StorageDriver        string `yaml:"storage_driver"`
	StorageBucket        string `yaml:"storage_bucket"`
	StorageRegion        string `yaml:"storage_region"`
	StorageEndpoint      string `yaml:"storage_endpoint"`
	StorageAccessKey     string `yaml:"storage_access_key"`
	StorageSecretKey     string `yaml:"storage_secret_key"`
	StoragePublicBaseURL string `yaml:"storage_public_base_url"`
	UploadDir            string `yaml:"upload_dir"`
	UploadURLPath        string `yaml:"upload_url_path"`
	MediaCacheControl    string `yaml:"media_cache_control"`
	MaxUploadBytes       int64  `yaml:"max_upload_bytes"`

	SaveTimeout time.Duration `yaml:"save_timeout"`

	AIProvider string `yaml:"ai_provider"`
	AIAPIKey   string `yaml:"ai_api_key"`
	AIModel    string `yaml:"ai_model"`

	CORSOrigins     []string `yaml:"cors_origins"`
	DefaultLanguage string   `yaml:"default_language"`

	SuperRootEmail    string `yaml:"super_root_email"`
	SuperRootPassword string `yaml:"super_root_password"`
}

const (
	defaultMaxUploadBytes = 8 << 20
	defaultSaveTimeout    = 60 * time.Second
)

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 若设置了 CONFIG_FILE，则在环境变量之后叠加 YAML 文件中的非空字段。
func Load() (AppConfig, error) {
	cfg := fromEnv()

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	if path == "" {
		return cfg, nil
	}

	if err := cfg.overlayFile(path); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func fromEnv() AppConfig {
	port := envOr("PORT", "8080")

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	return AppConfig{
		ListenAddr:           listenAddr,
		Port:                 port,
		DatabaseDriver:       strings.ToLower(envOr("DATABASE_DRIVER", "sqlite")),
		DatabaseDSN:          envOr("DATABASE_DSN", "proshop.db"),
		SessionSecret:        envOr("SESSION_SECRET", "proshop-dev-secret"),
		SessionSecure:        envBool("SESSION_SECURE"),
		AllowSignup:          envBool("ALLOW_SIGNUP"),
		GinMode:              envOr("GIN_MODE", "release"),
		LogMode:              envOr("LOG_MODE", "production"),
		StorageDriver:        strings.ToLower(envOr("STORAGE_DRIVER", "local")),
		StorageBucket:        envOr("STORAGE_BUCKET", "images"),
		StorageRegion:        envOr("STORAGE_REGION", "ap-southeast-1"),
		StorageEndpoint:      strings.TrimSpace(os.Getenv("STORAGE_ENDPOINT")),
		StorageAccessKey:     strings.TrimSpace(os.Getenv("STORAGE_ACCESS_KEY")),
		StorageSecretKey:     strings.TrimSpace(os.Getenv("STORAGE_SECRET_KEY")),
		StoragePublicBaseURL: strings.TrimSpace(os.Getenv("STORAGE_PUBLIC_BASE_URL")),
		UploadDir:            envOr("UPLOAD_DIR", "web/static/uploads"),
		UploadURLPath:        envOr("UPLOAD_URL_PATH", "/static/uploads"),
		MediaCacheControl:    envOr("MEDIA_CACHE_CONTROL", "max-age=3600"),
		MaxUploadBytes:       envInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		SaveTimeout:          envDuration("SAVE_TIMEOUT", defaultSaveTimeout),
		AIProvider:           strings.ToLower(envOr("AI_PROVIDER", "gemini")),
		AIAPIKey:             strings.TrimSpace(os.Getenv("AI_API_KEY")),
		AIModel:              strings.TrimSpace(os.Getenv("AI_MODEL")),
		CORSOrigins:          splitList(os.Getenv("CORS_ORIGINS")),
		DefaultLanguage:      envOr("DEFAULT_LANGUAGE", "id"),
		SuperRootEmail:       strings.TrimSpace(os.Getenv("SUPER_ROOT_EMAIL")),
		SuperRootPassword:    strings.TrimSpace(os.Getenv("SUPER_ROOT_PASSWORD")),
	}
}

// overlayFile 读取 YAML 配置文件，仅覆盖文件中显式给出的字段。
func (c *AppConfig) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file AppConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	overlayString(&c.ListenAddr, file.ListenAddr)
	overlayString(&c.Port, file.Port)
	overlayString(&c.DatabaseDriver, strings.ToLower(file.DatabaseDriver))
	overlayString(&c.DatabaseDSN, file.DatabaseDSN)
	overlayString(&c.SessionSecret, file.SessionSecret)
	overlayString(&c.GinMode, file.GinMode)
	overlayString(&c.LogMode, file.LogMode)
	overlayString(&c.StorageDriver, strings.ToLower(file.StorageDriver))
	overlayString(&c.StorageBucket, file.StorageBucket)
	overlayString(&c.StorageRegion, file.StorageRegion)
	overlayString(&c.StorageEndpoint, file.StorageEndpoint)
	overlayString(&c.StorageAccessKey, file.StorageAccessKey)
	overlayString(&c.StorageSecretKey, file.StorageSecretKey)
	overlayString(&c.StoragePublicBaseURL, file.StoragePublicBaseURL)
	overlayString(&c.UploadDir, file.UploadDir)
	overlayString(&c.UploadURLPath, file.UploadURLPath)
	overlayString(&c.MediaCacheControl, file.MediaCacheControl)
	overlayString(&c.AIProvider, strings.ToLower(file.AIProvider))
	overlayString(&c.AIAPIKey, file.AIAPIKey)
	overlayString(&c.AIModel, file.AIModel)
	overlayString(&c.DefaultLanguage, file.DefaultLanguage)
	overlayString(&c.SuperRootEmail, file.SuperRootEmail)
	overlayString(&c.SuperRootPassword, file.SuperRootPassword)

	if file.SessionSecure {
		c.SessionSecure = true
	}
	if file.AllowSignup {
		c.AllowSignup = true
	}
	if file.MaxUploadBytes > 0 {
		c.MaxUploadBytes = file.MaxUploadBytes
	}
	if file.SaveTimeout > 0 {
		c.SaveTimeout = file.SaveTimeout
	}
	if len(file.CORSOrigins) > 0 {
		c.CORSOrigins = file.CORSOrigins
	}
	return nil
}

func overlayString(dst *string, value string) {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		*dst = trimmed
	}
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envInt64(key string, fallback int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func envBool(key string) bool {
	parsed, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
