package report

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"dermassist/config"
	"dermassist/internal/domain/entity"
)

const androidDownloadDir = "/storage/emulated/0/Download"

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// Placer decides where a downloaded report ends up.
type Placer struct {
	Platform string
	Home     string
	// Override replaces the platform directory when set.
	Override string
}

// NewPlacer builds a Placer from the report configuration and the current
// user's home directory.
func NewPlacer(cfg config.ReportConfig) Placer {
	home, _ := os.UserHomeDir()
	return Placer{Platform: cfg.Platform, Home: home, Override: cfg.DownloadDir}
}

// Dir returns the user-visible download directory for the platform.
func (p Placer) Dir() string {
	if p.Override != "" {
		return p.Override
	}
	switch p.Platform {
	case config.PlatformAndroid:
		return androidDownloadDir
	case config.PlatformIOS:
		return filepath.Join(p.Home, "Documents")
	default:
		return filepath.Join(p.Home, "Downloads")
	}
}

// Path returns the destination for a report on condition generated at now.
func (p Placer) Path(condition string, now time.Time) string {
	return filepath.Join(p.Dir(), FileName(condition, now))
}

// FileName returns SkinReport_<condition>_<yyyymmdd-hhmmss>.pdf.
func FileName(condition string, now time.Time) string {
	name := strings.ReplaceAll(entity.ConditionDisplayName(condition), " ", "_")
	name = strings.Trim(unsafeFileChars.ReplaceAllString(name, ""), "_")
	if name == "" {
		name = "Unknown"
	}
	return "SkinReport_" + name + "_" + now.Format("20060102-150405") + ".pdf"
}
