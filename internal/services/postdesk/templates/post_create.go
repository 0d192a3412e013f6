package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
)

// PostCreateFormID is the element swapped after a failed submission.
const PostCreateFormID = "post-create-form"

// PostCreatePage renders the create page body.
func PostCreatePage(page PageContext, view PostCreateView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<a class="text-sm text-gray-500 hover:text-gray-900"`)
		h.href("href", routepath.Root)
		h.raw(`><i class="fa-solid fa-arrow-left"></i> `)
		h.text(T(page.Loc, "nav.back_to_list"))
		h.raw(`</a><h1 class="text-2xl font-semibold my-4">`)
		h.text(T(page.Loc, "create.title"))
		h.raw(`</h1>`)
		h.child(ctx, PostCreateForm(page, view))
	})
}

// PostCreateForm renders the form, keeping any submitted values.
func PostCreateForm(page PageContext, view PostCreateView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		form := view.Form
		h.raw(`<form method="post" class="card space-y-4"`)
		h.attr("id", PostCreateFormID)
		h.href("action", routepath.Posts)
		h.attr("hx-post", routepath.Posts)
		h.attr("hx-target", "#"+PostCreateFormID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-disabled-elt", "find button[type=submit]")
		h.raw(`>`)
		if view.Error != "" {
			h.raw(`<div class="error-panel" role="alert"><i class="fa-solid fa-circle-exclamation"></i> `)
			h.text(view.Error)
			h.raw(`</div>`)
		}

		textInput(h, page, "topic", "create.topic", "text", form.Topic, true)
		selectInput(h, page, "goal", "create.goal", form.Goal, view.Goals)
		textInput(h, page, "target_audience", "create.target_audience", "text", form.TargetAudience, true)
		selectInput(h, page, "tone", "create.tone", form.Tone, view.Tones)
		selectInput(h, page, "format", "create.format", form.Format, view.Formats)

		h.raw(`<div><label class="info-label" for="additional_context">`)
		h.text(T(page.Loc, "create.additional_context"))
		h.raw(`</label><textarea id="additional_context" name="additional_context" rows="4" class="input">`)
		h.text(form.AdditionalContext)
		h.raw(`</textarea></div>`)

		textInput(h, page, "cta", "create.cta", "text", form.CTA, false)
		textInput(h, page, "link", "create.link", "url", form.Link, false)

		h.raw(`<button type="submit" class="btn-primary"><i class="fa-solid fa-paper-plane"></i> `)
		h.text(T(page.Loc, "create.submit"))
		h.raw(`</button></form>`)
	})
}

func textInput(h *htmlWriter, page PageContext, name, labelKey, inputType, value string, required bool) {
	h.raw(`<div><label class="info-label"`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(T(page.Loc, labelKey))
	if required {
		h.raw(` <span class="text-red-600">*</span>`)
	}
	h.raw(`</label><input class="input"`)
	h.attr("id", name)
	h.attr("name", name)
	h.attr("type", inputType)
	h.attr("value", value)
	h.flag("required", required)
	h.raw(`></div>`)
}

func selectInput(h *htmlWriter, page PageContext, name, labelKey, value string, options []Option) {
	h.raw(`<div><label class="info-label"`)
	h.attr("for", name)
	h.raw(`>`)
	h.text(T(page.Loc, labelKey))
	h.raw(` <span class="text-red-600">*</span></label><select class="input" required`)
	h.attr("id", name)
	h.attr("name", name)
	h.raw(`><option value="">`)
	h.text(T(page.Loc, "create.select_placeholder"))
	h.raw(`</option>`)
	for _, option := range options {
		h.raw(`<option`)
		h.attr("value", option.Value)
		h.flag("selected", option.Value == value)
		h.raw(`>`)
		h.text(option.Label)
		h.raw(`</option>`)
	}
	h.raw(`</select></div>`)
}
