// Package credentials loads the store and webhook credentials from the
// environment, falling back to a local YAML file.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/louisbranch/postdesk/internal/platform/config"
	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the fallback credentials file name.
const DefaultFile = "credentials.yaml"

// Source names where credentials were read from.
type Source string

const (
	SourceEnv  Source = "env"
	SourceFile Source = "file"
)

// Credentials are the externally supplied endpoints and keys.
type Credentials struct {
	SupabaseURL     string `env:"SUPABASE_URL" yaml:"SUPABASE_URL"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY" yaml:"SUPABASE_ANON_KEY"`
	ContentWebhook  string `env:"WEBHOOK_GENERATE_CONTENT" yaml:"WEBHOOK_GENERATE_CONTENT"`
	ImagesWebhook   string `env:"WEBHOOK_GENERATE_IMAGES" yaml:"WEBHOOK_GENERATE_IMAGES"`
}

// Load reads credentials from lookup and, when no credential variable is
// set, from the YAML file at path. Every key must end up non-blank.
func Load(lookup func(string) (string, bool), path string) (Credentials, Source, error) {
	var creds Credentials
	if err := config.ParseEnvWithLookup(&creds, lookup); err != nil {
		return Credentials{}, "", err
	}
	creds = creds.trimmed()
	source := SourceEnv

	if creds.empty() {
		path = strings.TrimSpace(path)
		if path == "" {
			path = DefaultFile
		}
		fromFile, err := readFile(path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Credentials{}, "", err
		}
		if err == nil {
			creds = fromFile.trimmed()
			source = SourceFile
		}
	}

	if missing := creds.Missing(); len(missing) > 0 {
		joined := strings.Join(missing, ", ")
		return Credentials{}, source, apperrors.WithMetadata(apperrors.CodeCredentialsIncomplete,
			"missing credentials: "+joined, map[string]string{"missing": joined})
	}
	return creds, source, nil
}

// Missing lists the names of blank required keys.
func (c Credentials) Missing() []string {
	var missing []string
	for _, field := range c.fields() {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}

type namedValue struct {
	name  string
	value string
}

func (c Credentials) fields() []namedValue {
	return []namedValue{
		{name: "SUPABASE_URL", value: c.SupabaseURL},
		{name: "SUPABASE_ANON_KEY", value: c.SupabaseAnonKey},
		{name: "WEBHOOK_GENERATE_CONTENT", value: c.ContentWebhook},
		{name: "WEBHOOK_GENERATE_IMAGES", value: c.ImagesWebhook},
	}
}

func (c Credentials) empty() bool {
	return len(c.Missing()) == len(c.fields())
}

func (c Credentials) trimmed() Credentials {
	return Credentials{
		SupabaseURL:     strings.TrimSpace(c.SupabaseURL),
		SupabaseAnonKey: strings.TrimSpace(c.SupabaseAnonKey),
		ContentWebhook:  strings.TrimSpace(c.ContentWebhook),
		ImagesWebhook:   strings.TrimSpace(c.ImagesWebhook),
	}
}

func readFile(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, err
	}
	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("parse credentials file %s: %w", path, err)
	}
	return creds, nil
}
