package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App          AppConfig
	API          APIConfig
	Session      SessionConfig
	Redis        RedisConfig
	Report       ReportConfig
	Notification NotificationConfig
	Server       ServerConfig
}

type AppConfig struct {
	Env      string
	LogLevel string
}

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

type SessionConfig struct {
	Store    string
	FilePath string
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

type ReportConfig struct {
	Platform        string
	DownloadDir     string
	TempDir         string
	WkhtmltopdfPath string
}

type NotificationConfig struct {
	PollInterval time.Duration
}

// ServerConfig configures the reference backend in cmd/devserver.
type ServerConfig struct {
	Port string
	JWT  JWTConfig
	// AllowedOrigins lists browser origins allowed by CORS; "*" allows any.
	AllowedOrigins []string
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

const (
	SessionStoreFile  = "file"
	SessionStoreRedis = "redis"

	PlatformAndroid = "android"
	PlatformIOS     = "ios"
	PlatformDesktop = "desktop"

	DefaultRequestTimeout = 30 * time.Second
	DefaultUploadTimeout  = 60 * time.Second
	DefaultPollInterval   = 30 * time.Second
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	v.SetDefault("API_REQUEST_TIMEOUT", DefaultRequestTimeout.String())
	v.SetDefault("API_UPLOAD_TIMEOUT", DefaultUploadTimeout.String())
	v.SetDefault("SESSION_STORE", SessionStoreFile)
	v.SetDefault("SESSION_FILE", defaultSessionFile())
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "dermassist:")
	v.SetDefault("REPORT_PLATFORM", DefaultPlatform())
	v.SetDefault("REPORT_TEMP_DIR", os.TempDir())
	v.SetDefault("NOTIFICATION_POLL_INTERVAL", DefaultPollInterval.String())
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("JWT_SECRET", "dermassist-dev-secret")
	v.SetDefault("JWT_ACCESS_EXPIRY", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// The .env file is optional for the CLI.
	_ = v.ReadInConfig()

	config := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		API: APIConfig{
			BaseURL:        v.GetString("API_BASE_URL"),
			RequestTimeout: parseDuration(v.GetString("API_REQUEST_TIMEOUT"), DefaultRequestTimeout),
			UploadTimeout:  parseDuration(v.GetString("API_UPLOAD_TIMEOUT"), DefaultUploadTimeout),
		},
		Session: SessionConfig{
			Store:    v.GetString("SESSION_STORE"),
			FilePath: v.GetString("SESSION_FILE"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Report: ReportConfig{
			Platform:        v.GetString("REPORT_PLATFORM"),
			DownloadDir:     v.GetString("REPORT_DOWNLOAD_DIR"),
			TempDir:         v.GetString("REPORT_TEMP_DIR"),
			WkhtmltopdfPath: v.GetString("WKHTMLTOPDF_PATH"),
		},
		Notification: NotificationConfig{
			PollInterval: parseDuration(v.GetString("NOTIFICATION_POLL_INTERVAL"), DefaultPollInterval),
		},
		Server: ServerConfig{
			Port: v.GetString("APP_PORT"),
			JWT: JWTConfig{
				Secret:       v.GetString("JWT_SECRET"),
				AccessExpiry: parseDuration(v.GetString("JWT_ACCESS_EXPIRY"), 24*time.Hour),
			},
		},
	}

	return config, nil
}

// DefaultPlatform maps the host OS onto a report placement platform.
func DefaultPlatform() string {
	switch runtime.GOOS {
	case "android":
		return PlatformAndroid
	case "ios":
		return PlatformIOS
	default:
		return PlatformDesktop
	}
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dermassist", "session.json")
	}
	return filepath.Join(home, ".dermassist", "session.json")
}
