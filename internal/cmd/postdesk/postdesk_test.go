package postdesk

import (
	"context"
	"flag"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func lookupFrom(values map[string]string) EnvLookup {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("postdesk", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil, lookupFrom(nil))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != defaultHTTPAddr {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.CredentialsFile != "credentials.yaml" {
		t.Fatalf("expected default credentials file, got %q", cfg.CredentialsFile)
	}
	if cfg.Settings.DefaultLimit != 50 {
		t.Fatalf("expected default limit, got %d", cfg.Settings.DefaultLimit)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("postdesk", flag.ContinueOnError)
	lookup := lookupFrom(map[string]string{
		"POSTDESK_HTTP_ADDR":             "env-addr",
		"POSTDESK_CREDENTIALS_FILE":      "env.yaml",
		"POSTDESK_AUTO_REFRESH_INTERVAL": "1m",
	})
	cfg, err := ParseConfig(fs, []string{"-http-addr", "flag-addr"}, lookup)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-addr" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.CredentialsFile != "env.yaml" {
		t.Fatalf("expected env credentials file, got %q", cfg.CredentialsFile)
	}
	if cfg.Settings.AutoRefreshInterval != time.Minute {
		t.Fatalf("expected env refresh interval, got %v", cfg.Settings.AutoRefreshInterval)
	}
}

func TestParseConfigRejectsBadSettings(t *testing.T) {
	fs := flag.NewFlagSet("postdesk", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil, lookupFrom(map[string]string{"POSTDESK_DEFAULT_LIMIT": "nope"})); err == nil {
		t.Fatal("expected settings error")
	}
}

func TestRunFailsWithoutCredentials(t *testing.T) {
	fs := flag.NewFlagSet("postdesk", flag.ContinueOnError)
	missing := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := ParseConfig(fs, []string{"-credentials-file", missing}, lookupFrom(nil))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	err = Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected credentials error")
	}
	if !strings.Contains(err.Error(), "load credentials") {
		t.Fatalf("unexpected error: %v", err)
	}
}
