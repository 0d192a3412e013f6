package postdesk

import (
	"context"
	"log"
	"net/http"

	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
	"github.com/louisbranch/postdesk/internal/services/postdesk/session"
	"github.com/louisbranch/postdesk/internal/services/postdesk/templates"
	sharedhtmx "github.com/louisbranch/postdesk/internal/services/shared/htmx"
)

// statusParam carries the list filter.
const statusParam = "status"

// boardView returns the filtered snapshot. Requests fetch on their own only
// while nothing is loaded and no auto-refresh loop is retrying for them.
func (h *Handler) boardView(ctx context.Context, filter string) session.View {
	if !h.board.Snapshot().Loaded && !h.board.Refreshing() {
		if err := h.board.Refresh(ctx); err != nil {
			log.Printf("load posts: %v", err)
		}
	}
	return h.board.View(filter)
}

// handlePostsPage renders the post list.
func (h *Handler) handlePostsPage(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, r)
	view := h.buildPostsView(h.boardView(r.Context(), r.URL.Query().Get(statusParam)), loc, lang)
	renderPage(w, r, page, loc.Sprintf("title.posts"), nil, templates.PostsPage(page, view))
}

// handlePostsTable serves the card grid from the current snapshot.
func (h *Handler) handlePostsTable(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	page := h.pageContext(lang, loc, r)
	view := h.buildPostsView(h.boardView(r.Context(), r.URL.Query().Get(statusParam)), loc, lang)
	renderFragment(w, r, templates.PostsTable(page, view))
}

// handlePostsRefresh re-fetches the list and serves the card grid. A failed
// fetch keeps the previous cards and shows an error toast.
func (h *Handler) handlePostsRefresh(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	filter := r.URL.Query().Get(statusParam)
	if err := h.board.Refresh(r.Context()); err != nil {
		log.Printf("refresh posts: %v", err)
		if !sharedhtmx.IsHTMXRequest(r) {
			http.Redirect(w, r, withNotice(routepath.Root, sharedhtmx.ToastError, localizeError(err, lang)), http.StatusSeeOther)
			return
		}
		sharedhtmx.ShowToast(w, sharedhtmx.Toast{Kind: sharedhtmx.ToastError, Message: localizeError(err, lang)})
	}
	if !sharedhtmx.IsHTMXRequest(r) {
		http.Redirect(w, r, routepath.PostsFiltered(filter), http.StatusSeeOther)
		return
	}
	page := h.pageContext(lang, loc, r)
	view := h.buildPostsView(h.board.View(filter), loc, lang)
	renderFragment(w, r, templates.PostsTable(page, view))
}
