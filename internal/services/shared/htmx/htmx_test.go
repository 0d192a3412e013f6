package htmx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
)

type testComponent struct {
	body string
}

func (c testComponent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, c.body)
	return err
}

func htmxRequest(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	r.Header.Set(RequestHeaderKey, "true")
	return r
}

func TestIsHTMXRequest(t *testing.T) {
	t.Parallel()
	if IsHTMXRequest(nil) {
		t.Fatal("IsHTMXRequest(nil) = true")
	}
	if !IsHTMXRequest(htmxRequest("/")) {
		t.Fatal("IsHTMXRequest(htmx) = false")
	}
}

func TestTitleTag(t *testing.T) {
	t.Parallel()
	if got := TitleTag(`Posts <Admin>`); got != "<title>Posts &lt;Admin&gt;</title>" {
		t.Fatalf("TitleTag = %q", got)
	}
}

func TestRenderPage(t *testing.T) {
	t.Parallel()
	fragment := testComponent{body: "<div>fragment</div>"}
	full := testComponent{body: "<html><body><main id=\"main\">inner</main></body></html>"}

	tests := []struct {
		name     string
		req      *http.Request
		fragment templ.Component
		full     templ.Component
		title    string
		want     string
	}{
		{name: "full page", req: httptest.NewRequest(http.MethodGet, "/", nil), fragment: fragment, full: full, want: full.body},
		{name: "htmx fragment", req: htmxRequest("/"), fragment: fragment, full: full, want: "<div>fragment</div>"},
		{name: "htmx main extraction", req: htmxRequest("/"), full: full, title: TitleTag("Posts"), want: "<title>Posts</title>inner"},
		{name: "htmx keeps existing title", req: htmxRequest("/"), fragment: testComponent{body: "<title>Set</title>x"}, title: TitleTag("Other"), want: "<title>Set</title>x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RenderPage(w, tt.req, tt.fragment, tt.full, tt.title)
			if got := w.Body.String(); got != tt.want {
				t.Fatalf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRedirect(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	Redirect(w, htmxRequest("/posts"), "/posts/p1")
	if w.Code != http.StatusSeeOther || w.Header().Get(RedirectHeaderKey) != "/posts/p1" {
		t.Fatalf("htmx redirect = %d %q", w.Code, w.Header().Get(RedirectHeaderKey))
	}

	w = httptest.NewRecorder()
	Redirect(w, httptest.NewRequest(http.MethodPost, "/posts", nil), "/posts/p1")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/posts/p1" || w.Header().Get(RedirectHeaderKey) != "" {
		t.Fatalf("plain redirect = %d %v", w.Code, w.Header())
	}
}

func TestTriggerMergesEvents(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	Trigger(w, "refresh", nil)
	ShowToast(w, Toast{Kind: ToastError, Message: "falhou"})

	var got map[string]any
	if err := json.Unmarshal([]byte(w.Header().Get(TriggerHeaderKey)), &got); err != nil {
		t.Fatalf("decode trigger: %v", err)
	}
	want := map[string]any{
		"refresh":  nil,
		ToastEvent: map[string]any{"kind": "error", "message": "falhou"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("trigger mismatch (-want +got):\n%s", diff)
	}
}

func TestCopyHeadersUsesSingleValueSemanticsForNonSetCookie(t *testing.T) {
	t.Parallel()
	dst := http.Header{}
	src := http.Header{}
	src.Add("Content-Type", "text/plain")
	src.Add("Content-Type", "text/html; charset=utf-8")
	src.Add("Set-Cookie", "id=1")
	src.Add("Set-Cookie", "lang=pt-BR")

	copyHeaders(dst, src)

	if got := dst.Values("Content-Type"); len(got) != 1 || got[0] != "text/html; charset=utf-8" {
		t.Fatalf("content-type = %v", got)
	}
	if got := dst.Values("Set-Cookie"); len(got) != 2 {
		t.Fatalf("cookies = %v", got)
	}
}

func TestNoSwapKeepsTriggers(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	ShowToast(w, Toast{Kind: ToastError, Message: "falhou"})
	NoSwap(w)
	if w.Code != http.StatusOK || w.Header().Get(ReswapHeaderKey) != "none" {
		t.Fatalf("no swap = %d %q", w.Code, w.Header().Get(ReswapHeaderKey))
	}
	if w.Header().Get(TriggerHeaderKey) == "" {
		t.Fatal("expected toast trigger to survive")
	}
}
