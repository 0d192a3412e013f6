package postdesk

import (
	"log"
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
	"github.com/louisbranch/postdesk/internal/services/postdesk/session"
	"github.com/louisbranch/postdesk/internal/services/postdesk/templates"
	sharedhtmx "github.com/louisbranch/postdesk/internal/services/shared/htmx"
	"golang.org/x/text/message"
)

func (h *Handler) newDetail(r *http.Request) *session.Detail {
	return session.NewDetail(r.PathValue("id"), h.store, h.generator)
}

func (h *Handler) renderDetailPage(w http.ResponseWriter, r *http.Request, loc *message.Printer, lang string, view templates.PostDetailView) {
	page := h.pageContext(lang, loc, r)
	title := loc.Sprintf("title.post")
	if view.Error == "" && view.Topic != "" {
		title = view.Topic
	}
	renderPage(w, r, page, title, nil, templates.PostDetailPage(page, view))
}

// handlePostMissing renders the detail page for a URL without an id.
func (h *Handler) handlePostMissing(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	err := apperrors.New(apperrors.CodePostIDRequired, "post id is required")
	h.renderDetailPage(w, r, loc, lang, templates.PostDetailView{Error: localizeError(err, lang)})
}

// handlePostDetail renders one post.
func (h *Handler) handlePostDetail(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	detail := h.newDetail(r)
	if err := detail.Load(r.Context()); err != nil {
		log.Printf("load post %s: %v", detail.PostID(), err)
		h.renderDetailPage(w, r, loc, lang, templates.PostDetailView{ID: detail.PostID(), Error: localizeError(err, lang)})
		return
	}
	h.renderDetailPage(w, r, loc, lang, h.buildDetailView(detail, loc))
}

// handlePostContent serves the polled content fragment. A failed poll leaves
// the current fragment in place so polling continues.
func (h *Handler) handlePostContent(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	detail := h.newDetail(r)
	if err := detail.Load(r.Context()); err != nil {
		log.Printf("poll post %s: %v", detail.PostID(), err)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if strings.TrimSpace(r.URL.Query().Get(templates.AwaitingContentParam)) != "" {
		detail.AwaitContent()
	}
	page := h.pageContext(lang, loc, r)
	renderFragment(w, r, templates.PostContent(page, h.buildDetailView(detail, loc)))
}

// handlePostGenerate triggers text generation and starts polling.
func (h *Handler) handlePostGenerate(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	detail := h.newDetail(r)
	target := routepath.Post(detail.PostID())
	if err := detail.GenerateContent(r.Context()); err != nil {
		actionFailed(w, r, "generate content "+detail.PostID(), target, err, lang)
		return
	}
	notice := loc.Sprintf("content.generation_started")
	if !sharedhtmx.IsHTMXRequest(r) {
		http.Redirect(w, r, withNotice(target, sharedhtmx.ToastSuccess, notice), http.StatusSeeOther)
		return
	}
	if err := detail.Load(r.Context()); err != nil {
		log.Printf("reload post %s: %v", detail.PostID(), err)
	}
	sharedhtmx.ShowToast(w, sharedhtmx.Toast{Kind: sharedhtmx.ToastSuccess, Message: notice})
	h.renderContent(w, r, loc, lang, detail)
}

// handlePostConfirm stores the chosen variant and triggers image generation.
func (h *Handler) handlePostConfirm(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	detail := h.newDetail(r)
	target := routepath.Post(detail.PostID())
	if err := r.ParseForm(); err != nil {
		actionFailed(w, r, "parse confirm form", target, err, lang)
		return
	}
	if err := detail.Select(r.PostFormValue("content_id")); err != nil {
		actionFailed(w, r, "select variant "+detail.PostID(), target, err, lang)
		return
	}
	if err := detail.Confirm(r.Context()); err != nil {
		actionFailed(w, r, "confirm variant "+detail.PostID(), target, err, lang)
		return
	}
	if !sharedhtmx.IsHTMXRequest(r) {
		http.Redirect(w, r, withNotice(target, sharedhtmx.ToastSuccess, loc.Sprintf("content.confirmed")), http.StatusSeeOther)
		return
	}
	if err := detail.Load(r.Context()); err != nil {
		log.Printf("reload post %s: %v", detail.PostID(), err)
	}
	h.renderContent(w, r, loc, lang, detail)
}

// handlePostStatus changes the post status and re-renders the page.
func (h *Handler) handlePostStatus(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	detail := h.newDetail(r)
	target := routepath.Post(detail.PostID())
	if err := r.ParseForm(); err != nil {
		actionFailed(w, r, "parse status form", target, err, lang)
		return
	}
	status := post.Status(strings.TrimSpace(r.PostFormValue("status")))
	if err := detail.UpdateStatus(r.Context(), status); err != nil {
		actionFailed(w, r, "update status "+detail.PostID(), target, err, lang)
		return
	}
	notice := loc.Sprintf("status.updated")
	if !sharedhtmx.IsHTMXRequest(r) {
		http.Redirect(w, r, withNotice(target, sharedhtmx.ToastSuccess, notice), http.StatusSeeOther)
		return
	}
	sharedhtmx.ShowToast(w, sharedhtmx.Toast{Kind: sharedhtmx.ToastSuccess, Message: notice})
	h.renderDetailPage(w, r, loc, lang, h.buildDetailView(detail, loc))
}

func (h *Handler) renderContent(w http.ResponseWriter, r *http.Request, loc *message.Printer, lang string, detail *session.Detail) {
	page := h.pageContext(lang, loc, r)
	renderFragment(w, r, templates.PostContent(page, h.buildDetailView(detail, loc)))
}
