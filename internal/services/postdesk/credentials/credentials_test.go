package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
)

func lookupFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	return path
}

func TestLoadFromEnv(t *testing.T) {
	lookup := lookupFrom(map[string]string{
		"SUPABASE_URL":             "https://x.supabase.co",
		"SUPABASE_ANON_KEY":        " key ",
		"WEBHOOK_GENERATE_CONTENT": "https://hooks/content",
		"WEBHOOK_GENERATE_IMAGES":  "https://hooks/images",
	})
	path := writeFile(t, "SUPABASE_URL: https://file.supabase.co\n")

	creds, source, err := Load(lookup, path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if source != SourceEnv {
		t.Fatalf("source = %q", source)
	}
	want := Credentials{
		SupabaseURL:     "https://x.supabase.co",
		SupabaseAnonKey: "key",
		ContentWebhook:  "https://hooks/content",
		ImagesWebhook:   "https://hooks/images",
	}
	if diff := cmp.Diff(want, creds); diff != "" {
		t.Fatalf("credentials mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFallsBackToFile(t *testing.T) {
	path := writeFile(t, `SUPABASE_URL: https://file.supabase.co
SUPABASE_ANON_KEY: file-key
WEBHOOK_GENERATE_CONTENT: https://hooks/content
WEBHOOK_GENERATE_IMAGES: https://hooks/images
`)

	creds, source, err := Load(lookupFrom(nil), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if source != SourceFile || creds.SupabaseAnonKey != "file-key" {
		t.Fatalf("got %q %+v", source, creds)
	}
}

func TestLoadNamesEveryMissingKey(t *testing.T) {
	lookup := lookupFrom(map[string]string{"SUPABASE_URL": "https://x.supabase.co"})

	_, _, err := Load(lookup, filepath.Join(t.TempDir(), "absent.yaml"))
	if apperrors.CodeOf(err) != apperrors.CodeCredentialsIncomplete {
		t.Fatalf("code = %v", apperrors.CodeOf(err))
	}
	want := "Credenciais ausentes: SUPABASE_ANON_KEY, WEBHOOK_GENERATE_CONTENT, WEBHOOK_GENERATE_IMAGES"
	if got := apperrors.Localize(err, "pt-BR"); got != want {
		t.Fatalf("localized = %q, want %q", got, want)
	}
}

func TestLoadWithoutAnySource(t *testing.T) {
	_, _, err := Load(lookupFrom(nil), filepath.Join(t.TempDir(), "absent.yaml"))
	if apperrors.CodeOf(err) != apperrors.CodeCredentialsIncomplete {
		t.Fatalf("code = %v", apperrors.CodeOf(err))
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeFile(t, "SUPABASE_URL: [unterminated\n")
	if _, _, err := Load(lookupFrom(nil), path); err == nil {
		t.Fatal("expected parse error")
	}
}
