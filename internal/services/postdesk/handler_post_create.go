package postdesk

import (
	"log"
	"net/http"
	"strings"

	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
	"github.com/louisbranch/postdesk/internal/services/postdesk/templates"
	sharedhtmx "github.com/louisbranch/postdesk/internal/services/shared/htmx"
	"golang.org/x/text/message"
)

// handlePostCreatePage renders an empty create form.
func (h *Handler) handlePostCreatePage(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	h.renderCreate(w, r, loc, lang, buildCreateView(templates.CreateForm{}, loc))
}

// handlePostCreate validates and stores a new post. Failures re-render the
// form with the submitted values.
func (h *Handler) handlePostCreate(w http.ResponseWriter, r *http.Request) {
	loc, lang := h.localizer(w, r)
	if !requireSameOrigin(w, r, loc) {
		return
	}
	if err := r.ParseForm(); err != nil {
		log.Printf("parse create form: %v", err)
		h.createFailed(w, r, loc, lang, templates.CreateForm{}, err)
		return
	}
	form := createFormFromRequest(r)
	draft := draftFromForm(form)
	if err := draft.Validate(); err != nil {
		h.createFailed(w, r, loc, lang, form, err)
		return
	}

	created, err := h.store.CreatePost(r.Context(), draft)
	if err != nil {
		log.Printf("create post: %v", err)
		h.createFailed(w, r, loc, lang, form, err)
		return
	}
	if err := h.board.Refresh(r.Context()); err != nil {
		log.Printf("refresh posts after create: %v", err)
	}

	target := routepath.Post(created.ID)
	if !sharedhtmx.IsHTMXRequest(r) {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	sharedhtmx.ShowToast(w, sharedhtmx.Toast{
		Kind:     sharedhtmx.ToastSuccess,
		Message:  loc.Sprintf("create.success"),
		Redirect: target,
		DelayMS:  h.settings.CreateRedirectDelay.Milliseconds(),
	})
	sharedhtmx.NoSwap(w)
}

func (h *Handler) createFailed(w http.ResponseWriter, r *http.Request, loc *message.Printer, lang string, form templates.CreateForm, err error) {
	view := buildCreateView(form, loc)
	view.Error = localizeError(err, lang)
	if sharedhtmx.IsHTMXRequest(r) {
		sharedhtmx.ShowToast(w, sharedhtmx.Toast{Kind: sharedhtmx.ToastError, Message: loc.Sprintf("create.error")})
	}
	h.renderCreate(w, r, loc, lang, view)
}

func (h *Handler) renderCreate(w http.ResponseWriter, r *http.Request, loc *message.Printer, lang string, view templates.PostCreateView) {
	page := h.pageContext(lang, loc, r)
	fragment := templates.PostCreatePage(page, view)
	if r.Method == http.MethodPost {
		fragment = templates.PostCreateForm(page, view)
	}
	renderPage(w, r, page, loc.Sprintf("title.create"), fragment, templates.PostCreatePage(page, view))
}

func createFormFromRequest(r *http.Request) templates.CreateForm {
	return templates.CreateForm{
		Topic:             strings.TrimSpace(r.PostFormValue("topic")),
		Goal:              strings.TrimSpace(r.PostFormValue("goal")),
		TargetAudience:    strings.TrimSpace(r.PostFormValue("target_audience")),
		Tone:              strings.TrimSpace(r.PostFormValue("tone")),
		Format:            strings.TrimSpace(r.PostFormValue("format")),
		AdditionalContext: strings.TrimSpace(r.PostFormValue("additional_context")),
		CTA:               strings.TrimSpace(r.PostFormValue("cta")),
		Link:              strings.TrimSpace(r.PostFormValue("link")),
	}
}

func draftFromForm(form templates.CreateForm) post.Draft {
	return post.Draft{
		Topic:             form.Topic,
		TargetAudience:    form.TargetAudience,
		Goal:              post.Goal(form.Goal),
		Tone:              post.Tone(form.Tone),
		Format:            post.Format(form.Format),
		AdditionalContext: form.AdditionalContext,
		CTA:               form.CTA,
		Link:              form.Link,
	}
}
