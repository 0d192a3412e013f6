package i18n

import "testing"

func TestGetCatalogFallback(t *testing.T) {
	base := GetCatalog("pt-BR")
	if base == nil {
		t.Fatal("expected base catalog")
	}
	fallback := GetCatalog("missing-locale")
	if fallback != base {
		t.Fatal("expected fallback to pt-BR catalog")
	}
	if got := GetCatalog(""); got != base {
		t.Fatal("expected blank locale to resolve to base catalog")
	}
}

func TestEmbeddedCatalogsRenderPostNotFound(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "pt-BR", want: "Post não encontrado"},
		{locale: "en-US", want: "Post not found"},
	}
	for _, tc := range tests {
		t.Run(tc.locale, func(t *testing.T) {
			if got := GetCatalog(tc.locale).Format("POST_NOT_FOUND", nil); got != tc.want {
				t.Fatalf("Format() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEmbeddedWebhookTemplateUsesStatus(t *testing.T) {
	got := GetCatalog("pt-BR").Format("WEBHOOK_REQUEST_FAILED", map[string]string{"status": "502"})
	if got != "HTTP 502: Falha ao chamar webhook" {
		t.Fatalf("Format() = %q", got)
	}
}

func TestFormatFallbacks(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "hello {{.Name}}",
	})

	if cat.Format("unknown", nil) != "unknown" {
		t.Fatal("expected code fallback when template missing")
	}
	if cat.Format("code", nil) != "hello <no value>" {
		t.Fatal("expected template to render missing metadata")
	}
}

func TestFormatTemplateErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ if .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ if .Name }}" {
		t.Fatal("expected template fallback on parse error")
	}
}

func TestFormatTemplateExecutionErrorFallback(t *testing.T) {
	cat := NewCatalog("test", map[Code]string{
		"code": "{{ call .Name }}",
	})
	if cat.Format("code", map[string]string{"Name": "X"}) != "{{ call .Name }}" {
		t.Fatal("expected template fallback on execute error")
	}
}

func TestGetCatalogReportsResolvedLocale(t *testing.T) {
	if got := GetCatalog("en-US").Locale(); got != "en-US" {
		t.Fatalf("Locale() = %q", got)
	}
	if got := GetCatalog("fr-FR").Locale(); got != "pt-BR" {
		t.Fatalf("fallback Locale() = %q", got)
	}
}
