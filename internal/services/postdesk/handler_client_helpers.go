package postdesk

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"github.com/louisbranch/postdesk/internal/services/postdesk/templates"
	sharedhtmx "github.com/louisbranch/postdesk/internal/services/shared/htmx"
)

// Query params read by the client script to show a notification after a
// plain form post redirect.
const (
	messageParam = "message"
	kindParam    = "kind"
)

// renderPage wraps body in the layout for full loads. HTMX navigations get
// fragment, or body when fragment is nil.
func renderPage(w http.ResponseWriter, r *http.Request, page templates.PageContext, title string, fragment templ.Component, body templ.Component) {
	if fragment == nil {
		fragment = body
	}
	full := templates.Layout(page, title, body)
	sharedhtmx.RenderPage(w, r, fragment, full, sharedhtmx.TitleTag(templates.PageTitle(title)))
}

// renderFragment writes a component without any layout.
func renderFragment(w http.ResponseWriter, r *http.Request, component templ.Component) {
	templ.Handler(component).ServeHTTP(w, r)
}

func localizeError(err error, lang string) string {
	return apperrors.Localize(err, lang)
}

// actionFailed reports a failed post action. HTMX callers keep their current
// markup and get an error toast; plain form posts return to the post page.
func actionFailed(w http.ResponseWriter, r *http.Request, op string, target string, err error, lang string) {
	log.Printf("%s: %v", op, err)
	message := localizeError(err, lang)
	if sharedhtmx.IsHTMXRequest(r) {
		sharedhtmx.ShowToast(w, sharedhtmx.Toast{Kind: sharedhtmx.ToastError, Message: message})
		sharedhtmx.NoSwap(w)
		return
	}
	http.Redirect(w, r, withNotice(target, sharedhtmx.ToastError, message), http.StatusSeeOther)
}

// withNotice appends the notification params to target.
func withNotice(target string, kind sharedhtmx.ToastKind, message string) string {
	values := url.Values{}
	values.Set(kindParam, string(kind))
	values.Set(messageParam, message)
	return target + "?" + values.Encode()
}

// writeJSON writes JSON responses with a consistent content type.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("encode json response: %v", err)
	}
}
