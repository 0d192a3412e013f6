package postdesk

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"github.com/louisbranch/postdesk/internal/services/postdesk/filter"
	"github.com/louisbranch/postdesk/internal/services/postdesk/i18n"
	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
)

// apiResponse is the result envelope of the JSON surface.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// handleHealth reports whether the store answers.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		log.Printf("health check: %v", err)
		tag, _ := i18n.ResolveTag(r)
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: localizeError(err, i18n.Locale(tag))})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// handleAPIPosts lists posts filtered by AIP filter and order_by params.
func (h *Handler) handleAPIPosts(w http.ResponseWriter, r *http.Request) {
	tag, _ := i18n.ResolveTag(r)
	lang := i18n.Locale(tag)
	query := r.URL.Query()

	opts, err := filter.ParseListQuery(query.Get("filter"), query.Get("order_by"))
	if err != nil {
		writeAPIError(w, err, lang)
		return
	}
	opts.Limit = h.settings.DefaultLimit
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, convErr := strconv.Atoi(raw)
		if convErr != nil || limit <= 0 {
			writeAPIError(w, apperrors.WithMetadata(apperrors.CodeFilterInvalid, "limit must be a positive integer",
				map[string]string{"detail": "limit must be a positive integer"}), lang)
			return
		}
		opts.Limit = limit
	}

	posts, err := h.store.ListPosts(r.Context(), opts)
	if err != nil {
		log.Printf("api list posts: %v", err)
		writeAPIError(w, err, lang)
		return
	}
	if posts == nil {
		posts = []post.Post{}
	}
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: posts})
}

func writeAPIError(w http.ResponseWriter, err error, lang string) {
	writeJSON(w, apperrors.CodeOf(err).HTTPStatus(), apiResponse{Success: false, Error: localizeError(err, lang)})
}
