package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("API_REQUEST_TIMEOUT", "")
	t.Setenv("API_UPLOAD_TIMEOUT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.API.RequestTimeout, DefaultRequestTimeout)
	}
	if cfg.API.UploadTimeout != DefaultUploadTimeout {
		t.Errorf("UploadTimeout = %v, want %v", cfg.API.UploadTimeout, DefaultUploadTimeout)
	}
	if cfg.Notification.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.Notification.PollInterval, DefaultPollInterval)
	}
	if cfg.Session.Store != SessionStoreFile {
		t.Errorf("Session.Store = %q, want %q", cfg.Session.Store, SessionStoreFile)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://derm.example.com/api")
	t.Setenv("API_UPLOAD_TIMEOUT", "90s")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REPORT_PLATFORM", "android")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "https://derm.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.UploadTimeout != 90*time.Second {
		t.Errorf("UploadTimeout = %v, want 90s", cfg.API.UploadTimeout)
	}
	if cfg.Session.Store != SessionStoreRedis {
		t.Errorf("Session.Store = %q", cfg.Session.Store)
	}
	if cfg.Report.Platform != PlatformAndroid {
		t.Errorf("Report.Platform = %q", cfg.Report.Platform)
	}
}

func TestParseDuration_Fallback(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"15s", 15 * time.Second},
		{"garbage", time.Minute},
		{"", time.Minute},
		{"-5s", time.Minute},
	}
	for _, tt := range tests {
		if got := parseDuration(tt.in, time.Minute); got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoadConfig_AllowedOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, ,https://b.example.com ")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := cfg.Server.AllowedOrigins
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Errorf("AllowedOrigins = %q", got)
	}
}
