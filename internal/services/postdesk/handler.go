package postdesk

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/louisbranch/postdesk/internal/services/postdesk/i18n"
	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
	"github.com/louisbranch/postdesk/internal/services/postdesk/session"
	"github.com/louisbranch/postdesk/internal/services/postdesk/static"
	"github.com/louisbranch/postdesk/internal/services/postdesk/store"
	"github.com/louisbranch/postdesk/internal/services/postdesk/templates"
	"github.com/louisbranch/postdesk/internal/services/postdesk/transport/httpmux"
	"github.com/louisbranch/postdesk/internal/services/postdesk/webhook"
	"golang.org/x/text/message"
)

// Handler routes postdesk page, fragment, and JSON requests.
type Handler struct {
	store     store.Store
	generator webhook.Generator
	board     *session.Board
	settings  Settings
	now       func() time.Time
}

// NewHandler builds the HTTP handler. board may be shared with a background
// refresher; a nil board gets a private one without auto-refresh.
func NewHandler(st store.Store, generator webhook.Generator, board *session.Board, settings Settings) http.Handler {
	return newHandler(st, generator, board, settings).routes()
}

func newHandler(st store.Store, generator webhook.Generator, board *session.Board, settings Settings) *Handler {
	if board == nil {
		board = session.NewBoard(st, settings.DefaultLimit, 0)
	}
	return &Handler{
		store:     st,
		generator: generator,
		board:     board,
		settings:  settings,
		now:       time.Now,
	}
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), i18n.Locale(tag)
}

func (h *Handler) pageContext(lang string, loc *message.Printer, r *http.Request) templates.PageContext {
	page := templates.PageContext{Lang: lang, Loc: loc}
	if r != nil && r.URL != nil {
		page.CurrentPath = r.URL.Path
		page.CurrentQuery = r.URL.RawQuery
	}
	return page
}

// routes wires the HTTP routes for the postdesk handler.
func (h *Handler) routes() http.Handler {
	mux := http.NewServeMux()
	httpmux.MountStatic(mux, static.FS, httpmux.CacheStatic)
	mux.HandleFunc("GET "+routepath.Health, h.handleHealth)
	mux.HandleFunc("GET "+routepath.APIPosts, h.handleAPIPosts)

	mux.HandleFunc("GET /{$}", h.handlePostsPage)
	mux.HandleFunc("GET "+routepath.PostsTable, h.handlePostsTable)
	mux.HandleFunc("POST "+routepath.PostsRefresh, h.handlePostsRefresh)
	mux.HandleFunc("GET "+routepath.PostsNew, h.handlePostCreatePage)
	mux.HandleFunc("POST "+routepath.Posts, h.handlePostCreate)

	mux.HandleFunc("GET /posts/{$}", h.handlePostMissing)
	mux.HandleFunc("GET /posts/{id}", h.handlePostDetail)
	mux.HandleFunc("GET /posts/{id}/content", h.handlePostContent)
	mux.HandleFunc("POST /posts/{id}/generate", h.handlePostGenerate)
	mux.HandleFunc("POST /posts/{id}/confirm", h.handlePostConfirm)
	mux.HandleFunc("POST /posts/{id}/status", h.handlePostStatus)
	return mux
}

func requireSameOrigin(w http.ResponseWriter, r *http.Request, loc *message.Printer) bool {
	if r == nil {
		http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
		return false
	}
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		if !sameOrigin(origin, r) {
			http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
			return false
		}
		return true
	}
	if referer := strings.TrimSpace(r.Referer()); referer != "" {
		if !sameOrigin(referer, r) {
			http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
			return false
		}
		return true
	}
	http.Error(w, loc.Sprintf("error.csrf_invalid"), http.StatusForbidden)
	return false
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" || r == nil {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if r == nil {
		return "http"
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); forwarded != "" {
		if scheme, _, _ := strings.Cut(forwarded, ","); strings.TrimSpace(scheme) != "" {
			return strings.ToLower(strings.TrimSpace(scheme))
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
