package templates

import (
	"context"

	"github.com/a-h/templ"
	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
)

const (
	tailwindURL    = "https://cdn.tailwindcss.com"
	fontAwesomeURL = "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css"
	htmxURL        = "https://unpkg.com/htmx.org@2.0.4"
)

// AppName returns the product name shown in titles.
func AppName() string {
	return "postdesk"
}

// PageTitle joins a page title with the app name.
func PageTitle(title string) string {
	if title == "" {
		return AppName()
	}
	return title + " | " + AppName()
}

// Layout wraps body in the application shell.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		lang := page.Lang
		if lang == "" {
			lang = "pt-BR"
		}
		h.raw("<!DOCTYPE html><html")
		h.attr("lang", lang)
		h.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw("<title>")
		h.text(PageTitle(title))
		h.raw("</title>")
		h.raw(`<script src="` + tailwindURL + `"></script>`)
		h.raw(`<link rel="stylesheet" href="` + fontAwesomeURL + `">`)
		h.raw(`<script src="` + htmxURL + `"></script>`)
		h.raw(`<link rel="stylesheet" href="` + routepath.StaticPrefix + `app.css">`)
		h.raw(`<script defer src="` + routepath.StaticPrefix + `app.js"></script>`)
		h.raw(`</head><body class="bg-gray-50 text-gray-900 min-h-screen">`)

		h.raw(`<nav class="bg-white border-b border-gray-200"><div class="max-w-6xl mx-auto px-4 py-3 flex items-center justify-between">`)
		h.raw(`<a class="text-xl font-semibold text-linkedin" href="` + routepath.Root + `"><i class="fa-solid fa-pen-nib"></i> `)
		h.text(AppName())
		h.raw(`</a><div class="flex items-center gap-4">`)
		h.raw(`<a class="btn-primary" href="` + routepath.PostsNew + `"><i class="fa-solid fa-plus"></i> `)
		h.text(T(page.Loc, "nav.new_post"))
		h.raw(`</a><div class="flex gap-2 text-sm">`)
		for _, option := range LanguageOptions(page, page.Loc) {
			h.raw("<a")
			h.href("href", LanguageURL(page, option.Tag))
			if option.Active {
				h.attr("class", "font-semibold text-linkedin")
				h.attr("aria-current", "true")
			} else {
				h.attr("class", "text-gray-500 hover:text-gray-900")
			}
			h.raw(">")
			h.text(option.Label)
			h.raw("</a>")
		}
		h.raw(`</div></div></div></nav>`)

		h.raw(`<main id="main" class="max-w-6xl mx-auto px-4 py-6">`)
		h.child(ctx, body)
		h.raw(`</main>`)
		h.raw(`<div id="toasts" class="fixed top-4 right-4 space-y-2 z-50" aria-live="polite"></div>`)
		h.raw(`</body></html>`)
	})
}

// ErrorPanel renders an inline error message.
func ErrorPanel(page PageContext, message string) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div class="error-panel" role="alert"><i class="fa-solid fa-circle-exclamation"></i> <span>`)
		h.text(message)
		h.raw(`</span> <a class="underline" href="` + routepath.Root + `">`)
		h.text(T(page.Loc, "nav.back_to_list"))
		h.raw(`</a></div>`)
	})
}

func badge(h *htmlWriter, b Badge) {
	h.raw(`<span`)
	h.attr("class", "badge "+b.Color)
	h.raw(`><i`)
	h.attr("class", "fa-solid "+b.Icon)
	h.raw(`></i> `)
	h.text(b.Label)
	h.raw(`</span>`)
}
