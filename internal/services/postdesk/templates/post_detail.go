package templates

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
)

// PostContentID is the polled element on the detail page.
const PostContentID = "post-content"

// AwaitingContentParam marks poll requests that follow a generation trigger.
const AwaitingContentParam = "awaiting"

// PostDetailPage renders the detail page body.
func PostDetailPage(page PageContext, view PostDetailView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		if view.Error != "" {
			h.child(ctx, ErrorPanel(page, view.Error))
			return
		}

		h.raw(`<a class="text-sm text-gray-500 hover:text-gray-900"`)
		h.href("href", routepath.Root)
		h.raw(`><i class="fa-solid fa-arrow-left"></i> `)
		h.text(T(page.Loc, "nav.back_to_list"))
		h.raw(`</a>`)

		h.raw(`<header class="card mt-3"><div class="flex items-center justify-between">`)
		badge(h, view.Status)
		statusForm(h, page, view)
		h.raw(`</div><h1 class="text-2xl font-semibold mt-3">`)
		h.text(view.Topic)
		h.raw(`</h1><p class="text-sm text-gray-500">`)
		h.text(T(page.Loc, "post.created_at", view.CreatedAt))
		h.raw(`</p></header>`)

		h.raw(`<section class="card mt-4"><h2 class="section-title">`)
		h.text(T(page.Loc, "post.info_title"))
		h.raw(`</h2><dl class="grid gap-3 md:grid-cols-2">`)
		for _, item := range view.Info {
			infoItem(h, item)
		}
		h.raw(`</dl>`)
		if view.AdditionalContext != "" {
			h.raw(`<div class="mt-4"><h3 class="info-label">`)
			h.text(T(page.Loc, "post.additional_context"))
			h.raw(`</h3><p class="whitespace-pre-line">`)
			h.text(view.AdditionalContext)
			h.raw(`</p></div>`)
		}
		h.raw(`</section>`)

		h.child(ctx, PostContent(page, view))
	})
}

// PostContent renders the content and images sections. While polling it
// replaces itself on every interval.
func PostContent(page PageContext, view PostDetailView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div`)
		h.attr("id", PostContentID)
		if view.Polling && view.PollInterval > 0 {
			target := routepath.PostContent(view.ID)
			if view.AwaitingContent {
				target += "?" + AwaitingContentParam + "=1"
			}
			h.attr("hx-get", target)
			h.attr("hx-trigger", "every "+millis(view.PollInterval.Milliseconds()))
			h.attr("hx-swap", "outerHTML")
			h.attr("data-polling", "true")
		}
		h.raw(`>`)

		if view.Notice != "" {
			h.raw(`<div class="notice-success" role="status"`)
			h.attr("hx-get", routepath.PostContent(view.ID))
			h.attr("hx-trigger", "load delay:"+millis(view.ReloadDelay.Milliseconds()))
			h.attr("hx-target", "#"+PostContentID)
			h.attr("hx-swap", "outerHTML")
			h.raw(`><i class="fa-solid fa-circle-check"></i> `)
			h.text(view.Notice)
			h.raw(`</div>`)
		}

		h.raw(`<section class="card mt-4"><h2 class="section-title">`)
		h.text(T(page.Loc, "content.title"))
		h.raw(`</h2>`)
		contentSection(h, page, view)
		h.raw(`</section>`)

		h.raw(`<section class="card mt-4"><h2 class="section-title">`)
		h.text(T(page.Loc, "images.title"))
		h.raw(`</h2>`)
		imagesSection(h, page, view)
		h.raw(`</section></div>`)
	})
}

func statusForm(h *htmlWriter, page PageContext, view PostDetailView) {
	if len(view.StatusOptions) == 0 {
		return
	}
	action := routepath.PostStatus(view.ID)
	h.raw(`<form method="post" class="flex items-center gap-2"`)
	h.href("action", action)
	h.attr("hx-post", action)
	h.attr("hx-target", "#main")
	h.attr("hx-disabled-elt", "find button")
	h.raw(`><label class="sr-only" for="status-select">`)
	h.text(T(page.Loc, "status.change_label"))
	h.raw(`</label><select id="status-select" name="status" class="input-sm">`)
	for _, option := range view.StatusOptions {
		h.raw(`<option`)
		h.attr("value", option.Value)
		h.flag("selected", option.Selected)
		h.raw(`>`)
		h.text(option.Label)
		h.raw(`</option>`)
	}
	h.raw(`</select><button type="submit" class="btn-secondary">`)
	h.text(T(page.Loc, "status.update"))
	h.raw(`</button></form>`)
}

func infoItem(h *htmlWriter, item InfoItem) {
	if item.Value == "" {
		return
	}
	h.raw(`<div><dt class="info-label">`)
	h.text(item.Label)
	h.raw(`</dt><dd>`)
	if item.Link {
		h.raw(`<a class="text-linkedin underline" target="_blank" rel="noopener noreferrer"`)
		h.href("href", item.Value)
		h.raw(`>`)
		h.text(item.Value)
		h.raw(` <i class="fa-solid fa-arrow-up-right-from-square text-xs"></i></a>`)
	} else {
		h.text(item.Value)
	}
	h.raw(`</dd></div>`)
}

func contentSection(h *htmlWriter, page PageContext, view PostDetailView) {
	content := view.Content
	switch content.Kind {
	case ContentGenerating:
		spinner(h, T(page.Loc, "content.generating"))
	case ContentPicking:
		action := routepath.PostConfirm(view.ID)
		h.raw(`<form method="post" class="space-y-3" data-variant-form`)
		h.href("action", action)
		h.attr("hx-post", action)
		h.attr("hx-target", "#"+PostContentID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-disabled-elt", "find button[type=submit]")
		h.raw(`><p class="text-sm text-gray-600">`)
		h.text(T(page.Loc, "content.pick_variant"))
		h.raw(`</p>`)
		checked := false
		for i, variant := range content.Variants {
			checked = checked || variant.Checked
			h.raw(`<label class="variant-option"><input type="radio" name="content_id"`)
			h.attr("value", variant.ID)
			h.flag("checked", variant.Checked)
			h.raw(`><span class="variant-number">`)
			h.text(T(page.Loc, "content.variant_number", strconv.Itoa(i+1)))
			h.raw(`</span><div class="prose">`)
			h.raw(variant.HTML)
			h.raw(`</div></label>`)
		}
		h.raw(`<button type="submit" class="btn-primary" data-confirm-button`)
		h.flag("disabled", !checked)
		h.raw(`><i class="fa-solid fa-check"></i> `)
		h.text(T(page.Loc, "content.confirm"))
		h.raw(`</button></form>`)
	case ContentSelected:
		h.raw(`<div class="variant-selected"><p class="info-label"><i class="fa-solid fa-star"></i> `)
		h.text(T(page.Loc, "content.selected"))
		h.raw(`</p><div class="prose">`)
		h.raw(content.Selected.HTML)
		h.raw(`</div></div>`)
		if len(content.Others) > 0 {
			h.raw(`<details class="mt-3"><summary class="cursor-pointer text-sm text-gray-600">`)
			h.text(T(page.Loc, "content.other_variants", strconv.Itoa(len(content.Others))))
			h.raw(`</summary>`)
			for _, variant := range content.Others {
				h.raw(`<div class="variant-other prose">`)
				h.raw(variant.HTML)
				h.raw(`</div>`)
			}
			h.raw(`</details>`)
		}
	default:
		action := routepath.PostGenerate(view.ID)
		h.raw(`<div class="empty-state"><p>`)
		h.text(T(page.Loc, "content.empty"))
		h.raw(`</p><form method="post"`)
		h.href("action", action)
		h.attr("hx-post", action)
		h.attr("hx-target", "#"+PostContentID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-disabled-elt", "find button")
		h.raw(`><button type="submit" class="btn-primary mt-3"><i class="fa-solid fa-wand-magic-sparkles"></i> `)
		h.text(T(page.Loc, "content.generate"))
		h.raw(`</button></form></div>`)
	}
}

func imagesSection(h *htmlWriter, page PageContext, view PostDetailView) {
	if view.Content.Kind != ContentSelected {
		h.raw(`<p class="empty-state">`)
		h.text(T(page.Loc, "images.awaiting_selection"))
		h.raw(`</p>`)
		return
	}
	if view.Content.GeneratingImages {
		spinner(h, T(page.Loc, "images.generating"))
		return
	}
	h.raw(`<div class="grid gap-4 md:grid-cols-2">`)
	for _, image := range view.Images {
		h.raw(`<figure class="image-card"><img loading="lazy" data-fallback`)
		h.href("src", image.URL)
		h.attr("alt", image.Prompt)
		h.raw(`><figcaption class="p-3 space-y-2"><div class="flex gap-2"><span class="meta-badge">`)
		h.text(image.Provider)
		h.raw(`</span>`)
		if image.Selected {
			h.raw(`<span class="badge bg-green-100 text-green-700"><i class="fa-solid fa-check"></i> `)
			h.text(T(page.Loc, "images.selected"))
			h.raw(`</span>`)
		}
		h.raw(`</div>`)
		if image.Prompt != "" {
			h.raw(`<p class="text-xs text-gray-500">`)
			h.text(image.Prompt)
			h.raw(`</p>`)
		}
		h.raw(`</figcaption></figure>`)
	}
	h.raw(`</div>`)
}

func spinner(h *htmlWriter, message string) {
	h.raw(`<div class="flex items-center gap-2 text-blue-700" role="status"><i class="fa-solid fa-spinner fa-spin"></i> <span>`)
	h.text(message)
	h.raw(`</span></div>`)
}
