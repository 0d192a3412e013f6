package postdesk

import (
	"log"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"github.com/louisbranch/postdesk/internal/services/postdesk/routepath"
	"github.com/louisbranch/postdesk/internal/services/postdesk/session"
	"github.com/louisbranch/postdesk/internal/services/postdesk/templates"
	"golang.org/x/text/message"
)

// ellipsis marks truncated text.
const ellipsis = "..."

// FormatDate renders t relative to now, switching to an absolute date once
// it is more than thresholdDays old.
func FormatDate(now, t time.Time, thresholdDays int, loc *time.Location, printer *message.Printer) string {
	if t.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.UTC
	}
	diff := now.Sub(t)
	days := int(diff / (24 * time.Hour))
	if days > thresholdDays {
		return t.In(loc).Format(printer.Sprintf("date.absolute_layout"))
	}
	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	switch {
	case minutes < 1:
		return printer.Sprintf("date.just_now")
	case minutes < 60:
		return printer.Sprintf("date.minutes_ago", minutes)
	case hours < 24:
		return printer.Sprintf("date.hours_ago", hours)
	default:
		return printer.Sprintf("date.days_ago", days)
	}
}

// TruncateText cuts text to limit runes at the last word boundary and
// appends an ellipsis. Text that already fits is returned unchanged.
func TruncateText(text string, limit int) string {
	runes := []rune(text)
	if limit < 0 || len(runes) <= limit {
		return text
	}
	cut := runes[:limit]
	lastSpace := -1
	for i := len(cut) - 1; i >= 0; i-- {
		if cut[i] == ' ' {
			lastSpace = i
			break
		}
	}
	if lastSpace > 0 {
		return string(cut[:lastSpace]) + ellipsis
	}
	return string(cut) + ellipsis
}

func formatLabel(label post.Label, loc *message.Printer) string {
	if !label.Mapped() {
		return label.Raw
	}
	return loc.Sprintf(label.Key)
}

func formatStatus(status post.Status, loc *message.Printer) templates.Badge {
	style := status.Style()
	return templates.Badge{
		Label: formatLabel(style.Label, loc),
		Icon:  style.Icon,
		Color: style.Color,
	}
}

func formatTopic(topic string, loc *message.Printer) string {
	if topic = strings.TrimSpace(topic); topic != "" {
		return topic
	}
	return loc.Sprintf("posts.untitled")
}

func (h *Handler) buildPostsView(view session.View, loc *message.Printer, lang string) templates.PostsView {
	filter := view.Filter
	if filter == "" {
		filter = session.FilterAll
	}
	result := templates.PostsView{
		Filter:          filter,
		Filters:         buildFilterOptions(filter, loc),
		Cards:           make([]templates.PostCard, 0, len(view.Posts)),
		RefreshInterval: h.settings.AutoRefreshInterval,
	}
	now := h.now()
	for _, p := range view.Posts {
		result.Cards = append(result.Cards, h.buildPostCard(p, now, loc))
	}
	if view.Err != nil {
		result.Error = localizeError(view.Err, lang)
	}
	if filter != session.FilterAll {
		result.EmptyMessage = loc.Sprintf("posts.empty_filtered")
	} else {
		result.EmptyMessage = loc.Sprintf("posts.empty")
	}
	return result
}

func buildFilterOptions(current string, loc *message.Printer) []templates.Option {
	options := []templates.Option{{
		Value:    session.FilterAll,
		Label:    loc.Sprintf("filter.all"),
		Selected: current == session.FilterAll,
	}}
	for _, status := range post.StatusValues() {
		options = append(options, templates.Option{
			Value:    string(status),
			Label:    formatLabel(status.Style().Label, loc),
			Selected: current == string(status),
		})
	}
	return options
}

func (h *Handler) buildPostCard(p post.Post, now time.Time, loc *message.Printer) templates.PostCard {
	card := templates.PostCard{
		ID:     p.ID,
		URL:    routepath.Post(p.ID),
		Topic:  formatTopic(p.Topic, loc),
		Status: formatStatus(p.Status, loc),
		Date:   FormatDate(now, p.CreatedAt.Time, h.settings.RelativeThresholdDays, h.settings.Location(), loc),
	}
	if p.Goal != "" {
		card.Meta = append(card.Meta, formatLabel(p.Goal.Label(), loc))
	}
	if audience := strings.TrimSpace(p.TargetAudience); audience != "" {
		card.Meta = append(card.Meta, audience)
	}
	if p.Tone != "" {
		card.Meta = append(card.Meta, formatLabel(p.Tone.Label(), loc))
	}
	if p.Format != "" {
		card.Meta = append(card.Meta, formatLabel(p.Format.Label(), loc))
	}
	if extra := strings.TrimSpace(p.AdditionalContext); extra != "" {
		card.Preview = TruncateText(extra, h.settings.PreviewMaxLength)
	} else {
		card.Preview = loc.Sprintf("posts.no_context")
	}
	return card
}

func (h *Handler) buildDetailView(detail *session.Detail, loc *message.Printer) templates.PostDetailView {
	p := detail.Post
	view := templates.PostDetailView{
		ID:                p.ID,
		Topic:             formatTopic(p.Topic, loc),
		Status:            formatStatus(p.Status, loc),
		CreatedAt:         FormatDate(h.now(), p.CreatedAt.Time, h.settings.RelativeThresholdDays, h.settings.Location(), loc),
		AdditionalContext: strings.TrimSpace(p.AdditionalContext),
		StatusOptions:     buildStatusOptions(p.Status, loc),
		Polling:           detail.Polling(),
		PollInterval:      h.settings.DetailPollInterval,
	}
	if view.ID == "" {
		view.ID = detail.PostID()
	}
	view.Info = []templates.InfoItem{
		{Label: loc.Sprintf("post.goal"), Value: optionalLabel(p.Goal != "", p.Goal.Label(), loc)},
		{Label: loc.Sprintf("post.target_audience"), Value: strings.TrimSpace(p.TargetAudience)},
		{Label: loc.Sprintf("post.tone"), Value: optionalLabel(p.Tone != "", p.Tone.Label(), loc)},
		{Label: loc.Sprintf("post.format"), Value: optionalLabel(p.Format != "", p.Format.Label(), loc)},
		{Label: loc.Sprintf("post.cta"), Value: strings.TrimSpace(p.CTA)},
		{Label: loc.Sprintf("post.link"), Value: strings.TrimSpace(p.Link), Link: true},
	}

	switch state := detail.State.(type) {
	case post.GeneratingContent:
		view.Content.Kind = templates.ContentGenerating
	case post.PickingVariant:
		view.Content.Kind = templates.ContentPicking
		for _, variant := range state.Variants {
			rendered := renderVariant(variant)
			rendered.Checked = variant.ID == detail.Selected()
			view.Content.Variants = append(view.Content.Variants, rendered)
		}
	case post.VariantSelected:
		view.Content.Kind = templates.ContentSelected
		view.Content.Selected = renderVariant(state.Selected)
		for _, variant := range state.Others {
			view.Content.Others = append(view.Content.Others, renderVariant(variant))
		}
		view.Content.GeneratingImages = state.GeneratingImages
	default:
		view.Content.Kind = templates.ContentAwaiting
		view.AwaitingContent = view.Polling
	}

	for _, image := range p.Images {
		view.Images = append(view.Images, templates.ImageView{
			URL:      image.URL,
			Prompt:   strings.TrimSpace(image.Prompt),
			Provider: formatLabel(image.Provider.Label(), loc),
			Selected: image.Selected,
		})
	}

	if detail.Confirmed() {
		view.Notice = loc.Sprintf("content.confirmed")
		view.ReloadDelay = h.settings.SuccessReloadDelay
	}
	return view
}

func optionalLabel(present bool, label post.Label, loc *message.Printer) string {
	if !present {
		return ""
	}
	return formatLabel(label, loc)
}

func buildStatusOptions(current post.Status, loc *message.Printer) []templates.Option {
	options := make([]templates.Option, 0, len(post.StatusValues())+1)
	if current != "" && !current.Known() {
		options = append(options, templates.Option{Value: string(current), Label: string(current), Selected: true})
	}
	for _, status := range post.StatusValues() {
		options = append(options, templates.Option{
			Value:    string(status),
			Label:    formatLabel(status.Style().Label, loc),
			Selected: status == current,
		})
	}
	return options
}

func renderVariant(variant post.ContentVariant) templates.VariantView {
	rendered, err := templates.RenderMarkdown(variant.Content)
	if err != nil {
		log.Printf("render variant %s: %v", variant.ID, err)
		rendered = "<p>" + templ.EscapeString(variant.Content) + "</p>"
	}
	return templates.VariantView{ID: variant.ID, HTML: rendered}
}

func buildCreateView(form templates.CreateForm, loc *message.Printer) templates.PostCreateView {
	view := templates.PostCreateView{Form: form}
	for _, goal := range post.GoalValues() {
		view.Goals = append(view.Goals, templates.Option{Value: string(goal), Label: formatLabel(goal.Label(), loc), Selected: form.Goal == string(goal)})
	}
	for _, tone := range post.ToneValues() {
		view.Tones = append(view.Tones, templates.Option{Value: string(tone), Label: formatLabel(tone.Label(), loc), Selected: form.Tone == string(tone)})
	}
	for _, format := range post.FormatValues() {
		view.Formats = append(view.Formats, templates.Option{Value: string(format), Label: formatLabel(format.Label(), loc), Selected: form.Format == string(format)})
	}
	return view
}
