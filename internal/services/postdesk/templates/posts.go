package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
)

// PostsTableID is the element swapped by filters and auto-refresh.
const PostsTableID = "posts-table"

// PostsPage renders the list page body.
func PostsPage(page PageContext, view PostsView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="flex items-center justify-between mb-4"><h1 class="text-2xl font-semibold">`)
		h.text(T(page.Loc, "posts.title"))
		h.raw(`</h1><button type="button" class="btn-secondary"`)
		h.attr("hx-post", routepath.PostsRefreshFiltered(view.Filter))
		h.attr("hx-target", "#"+PostsTableID)
		h.attr("hx-swap", "outerHTML")
		h.attr("hx-disabled-elt", "this")
		h.raw(`><i class="fa-solid fa-rotate"></i> `)
		h.text(T(page.Loc, "posts.refresh"))
		h.raw(`</button></div>`)

		h.raw(`<div class="flex flex-wrap gap-2 mb-4" role="group"`)
		h.attr("aria-label", T(page.Loc, "posts.filter_label"))
		h.raw(`>`)
		for _, filter := range view.Filters {
			class := "filter-btn"
			if filter.Selected {
				class += " active"
			}
			target := routepath.PostsFiltered(filter.Value)
			h.raw(`<a`)
			h.attr("class", class)
			h.attr("data-filter", filter.Value)
			h.href("href", target)
			h.attr("hx-get", target)
			h.attr("hx-target", "#main")
			h.attr("hx-push-url", "true")
			h.raw(`>`)
			h.text(filter.Label)
			h.raw(`</a>`)
		}
		h.raw(`</div>`)
		h.child(ctx, PostsTable(page, view))
	})
}

// PostsTable renders the card grid. It re-fetches itself on the refresh
// interval without any loading indicator.
func PostsTable(page PageContext, view PostsView) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div`)
		h.attr("id", PostsTableID)
		h.attr("data-filter", view.Filter)
		if view.RefreshInterval > 0 {
			h.attr("hx-get", routepath.PostsTableFiltered(view.Filter))
			h.attr("hx-trigger", "every "+millis(view.RefreshInterval.Milliseconds()))
			h.attr("hx-swap", "outerHTML")
		}
		h.raw(`>`)

		switch {
		case view.Error != "" && len(view.Cards) == 0:
			h.raw(`<div class="error-panel" role="alert"><i class="fa-solid fa-circle-exclamation"></i> `)
			h.text(view.Error)
			h.raw(`</div>`)
		case len(view.Cards) == 0:
			h.raw(`<p class="empty-state"><i class="fa-regular fa-folder-open"></i> `)
			h.text(view.EmptyMessage)
			h.raw(`</p>`)
		default:
			h.raw(`<div class="grid gap-4 md:grid-cols-2 lg:grid-cols-3">`)
			for _, card := range view.Cards {
				postCard(h, card)
			}
			h.raw(`</div>`)
		}
		h.raw(`</div>`)
	})
}

func postCard(h *htmlWriter, card PostCard) {
	h.raw(`<a class="post-card"`)
	h.href("href", card.URL)
	h.attr("data-post-id", card.ID)
	h.raw(`><div class="flex items-center justify-between mb-2">`)
	badge(h, card.Status)
	h.raw(`<span class="text-xs text-gray-500">`)
	h.text(card.Date)
	h.raw(`</span></div><h3 class="font-semibold mb-2">`)
	h.text(card.Topic)
	h.raw(`</h3>`)
	if len(card.Meta) > 0 {
		h.raw(`<div class="flex flex-wrap gap-1 mb-2">`)
		for _, meta := range card.Meta {
			h.raw(`<span class="meta-badge">`)
			h.text(meta)
			h.raw(`</span>`)
		}
		h.raw(`</div>`)
	}
	h.raw(`<p class="text-sm text-gray-600">`)
	h.text(card.Preview)
	h.raw(`</p></a>`)
}
