package postdesk

import (
	"testing"
	"time"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	settings := DefaultSettings()
	if settings.DefaultLimit != 50 || settings.PreviewMaxLength != 100 || settings.RelativeThresholdDays != 7 {
		t.Fatalf("settings = %+v", settings)
	}
	if settings.AutoRefreshInterval != 30*time.Second || settings.DetailPollInterval != 5*time.Second {
		t.Fatalf("intervals = %v %v", settings.AutoRefreshInterval, settings.DetailPollInterval)
	}
	if settings.SuccessReloadDelay != 2*time.Second || settings.CreateRedirectDelay != 1500*time.Millisecond {
		t.Fatalf("delays = %v %v", settings.SuccessReloadDelay, settings.CreateRedirectDelay)
	}
	if settings.Location() != time.UTC {
		t.Fatalf("location = %v", settings.Location())
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	settings, err := LoadSettings(lookupFrom(map[string]string{
		"POSTDESK_DEFAULT_LIMIT":         "20",
		"POSTDESK_AUTO_REFRESH_INTERVAL": "0s",
		"POSTDESK_TIMEZONE":              "America/Sao_Paulo",
	}))
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.DefaultLimit != 20 || settings.AutoRefreshInterval != 0 {
		t.Fatalf("settings = %+v", settings)
	}
	if settings.Location().String() != "America/Sao_Paulo" {
		t.Fatalf("location = %v", settings.Location())
	}
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	tests := map[string]map[string]string{
		"bad limit":    {"POSTDESK_DEFAULT_LIMIT": "0"},
		"bad preview":  {"POSTDESK_PREVIEW_MAX_LENGTH": "-1"},
		"bad duration": {"POSTDESK_DETAIL_POLL_INTERVAL": "soon"},
		"bad timezone": {"POSTDESK_TIMEZONE": "Mars/Olympus"},
	}
	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadSettings(lookupFrom(values)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
