// Package htmx renders templ components for full-page and HTMX requests and
// writes the HTMX response headers postdesk relies on.
package htmx

import (
	"bytes"
	"encoding/json"
	"html"
	"log"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// RequestHeaderKey marks requests issued by HTMX.
	RequestHeaderKey = "HX-Request"
	// RedirectHeaderKey asks HTMX for a full client-side navigation.
	RedirectHeaderKey = "HX-Redirect"
	// TriggerHeaderKey carries client events as a JSON object.
	TriggerHeaderKey = "HX-Trigger"
	// ReswapHeaderKey overrides the swap strategy of the request.
	ReswapHeaderKey = "HX-Reswap"
)

// ToastEvent is the client event that shows a notification.
const ToastEvent = "postdesk:toast"

// ToastKind selects the notification style.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast is the payload of ToastEvent.
type Toast struct {
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
	// Redirect navigates after DelayMS when set.
	Redirect string `json:"redirect,omitempty"`
	DelayMS  int64  `json:"delay_ms,omitempty"`
}

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// Redirect sends the client to location, through HX-Redirect for HTMX
// requests and a 303 otherwise.
func Redirect(w http.ResponseWriter, r *http.Request, location string) {
	if IsHTMXRequest(r) {
		w.Header().Set("Location", location)
		w.Header().Set(RedirectHeaderKey, location)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// Trigger adds a client event to the HX-Trigger header, keeping events set
// earlier in the same response. Must run before the header is written.
func Trigger(w http.ResponseWriter, event string, detail any) {
	events := map[string]any{}
	if existing := w.Header().Get(TriggerHeaderKey); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			events = map[string]any{existing: nil}
		}
	}
	events[event] = detail
	encoded, err := json.Marshal(events)
	if err != nil {
		log.Printf("encode htmx trigger %s: %v", event, err)
		return
	}
	w.Header().Set(TriggerHeaderKey, string(encoded))
}

// ShowToast triggers a notification on the client.
func ShowToast(w http.ResponseWriter, toast Toast) {
	Trigger(w, ToastEvent, toast)
}

// NoSwap leaves the target untouched. Triggered events still fire.
func NoSwap(w http.ResponseWriter) {
	w.Header().Set(ReswapHeaderKey, "none")
	w.WriteHeader(http.StatusOK)
}

// RenderPage renders fragment for HTMX requests and full otherwise. When
// fragment is nil, HTMX requests receive the <main> content of full.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component, htmxTitle string) {
	if !IsHTMXRequest(r) {
		if full == nil {
			full = fragment
		}
		if full != nil {
			templ.Handler(full).ServeHTTP(w, r)
		}
		return
	}

	target, fromFull := fragment, false
	if target == nil {
		target, fromFull = full, true
	}
	if target == nil {
		return
	}
	capture := newResponseBuffer()
	templ.Handler(target).ServeHTTP(capture, r)

	body := capture.body.Bytes()
	if fromFull {
		if mainContent, ok := extractMainContent(body); ok {
			body = mainContent
		}
	}
	body = addTitleIfMissing(body, htmxTitle)

	copyHeaders(w.Header(), capture.Header())
	if capture.statusCode != http.StatusOK {
		w.WriteHeader(capture.statusCode)
	}
	_, _ = w.Write(body)
}

// responseBuffer captures component rendering for HTMX responses.
type responseBuffer struct {
	header      http.Header
	statusCode  int
	body        bytes.Buffer
	headerWrote bool
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: make(http.Header), statusCode: http.StatusOK}
}

func (w *responseBuffer) Header() http.Header {
	return w.header
}

func (w *responseBuffer) WriteHeader(status int) {
	if w.headerWrote {
		return
	}
	w.headerWrote = true
	w.statusCode = status
}

func (w *responseBuffer) Write(body []byte) (int, error) {
	return w.body.Write(body)
}

func addTitleIfMissing(body []byte, title string) []byte {
	if strings.TrimSpace(title) == "" || bytes.Contains(bytes.ToLower(body), []byte("<title")) {
		return body
	}
	return append([]byte(title), body...)
}

func copyHeaders(dst, src http.Header) {
	for key, values := range src {
		if strings.EqualFold(key, "Set-Cookie") {
			for _, value := range values {
				dst.Add(key, value)
			}
			continue
		}
		for _, value := range values {
			dst.Set(key, value)
		}
	}
}

func extractMainContent(body []byte) ([]byte, bool) {
	start := bytes.Index(body, []byte("<main"))
	if start < 0 {
		return nil, false
	}
	openClose := bytes.IndexByte(body[start:], '>')
	if openClose < 0 {
		return nil, false
	}
	contentStart := start + openClose + 1
	end := bytes.Index(body[contentStart:], []byte("</main>"))
	if end < 0 {
		return nil, false
	}
	return body[contentStart : contentStart+end], true
}
