package postdesk

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/postdesk/internal/platform/config"
)

// Settings tunes list size, refresh cadence, and date display.
type Settings struct {
	DefaultLimit          int           `env:"POSTDESK_DEFAULT_LIMIT" envDefault:"50"`
	AutoRefreshInterval   time.Duration `env:"POSTDESK_AUTO_REFRESH_INTERVAL" envDefault:"30s"`
	DetailPollInterval    time.Duration `env:"POSTDESK_DETAIL_POLL_INTERVAL" envDefault:"5s"`
	PreviewMaxLength      int           `env:"POSTDESK_PREVIEW_MAX_LENGTH" envDefault:"100"`
	RelativeThresholdDays int           `env:"POSTDESK_RELATIVE_THRESHOLD_DAYS" envDefault:"7"`
	SuccessReloadDelay    time.Duration `env:"POSTDESK_SUCCESS_RELOAD_DELAY" envDefault:"2s"`
	CreateRedirectDelay   time.Duration `env:"POSTDESK_CREATE_REDIRECT_DELAY" envDefault:"1500ms"`
	Timezone              string        `env:"POSTDESK_TIMEZONE" envDefault:"UTC"`

	location *time.Location
}

// DefaultSettings returns the settings with every default applied.
func DefaultSettings() Settings {
	settings, err := LoadSettings(func(string) (string, bool) { return "", false })
	if err != nil {
		panic(fmt.Sprintf("default settings: %v", err))
	}
	return settings
}

// LoadSettings reads settings through lookup, falling back to defaults.
func LoadSettings(lookup func(string) (string, bool)) (Settings, error) {
	var settings Settings
	if err := config.ParseEnvWithLookup(&settings, lookup); err != nil {
		return Settings{}, err
	}
	if settings.DefaultLimit <= 0 {
		return Settings{}, fmt.Errorf("POSTDESK_DEFAULT_LIMIT must be positive, got %d", settings.DefaultLimit)
	}
	if settings.PreviewMaxLength <= 0 {
		return Settings{}, fmt.Errorf("POSTDESK_PREVIEW_MAX_LENGTH must be positive, got %d", settings.PreviewMaxLength)
	}
	if settings.RelativeThresholdDays < 0 {
		return Settings{}, fmt.Errorf("POSTDESK_RELATIVE_THRESHOLD_DAYS must not be negative, got %d", settings.RelativeThresholdDays)
	}
	location, err := time.LoadLocation(strings.TrimSpace(settings.Timezone))
	if err != nil {
		return Settings{}, fmt.Errorf("load timezone %q: %w", settings.Timezone, err)
	}
	settings.location = location
	return settings, nil
}

// Location returns the display timezone.
func (s Settings) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}
