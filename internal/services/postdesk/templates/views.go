package templates

import "time"

// Badge is a colored label with an icon.
type Badge struct {
	Label string
	Icon  string
	Color string
}

// Option is a select or filter choice.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// PostCard is one post in the list.
type PostCard struct {
	ID      string
	URL     string
	Topic   string
	Status  Badge
	Date    string
	Meta    []string
	Preview string
}

// PostsView is the list page model.
type PostsView struct {
	Filter          string
	Filters         []Option
	Cards           []PostCard
	EmptyMessage    string
	Error           string
	RefreshInterval time.Duration
}

// InfoItem is one field of the detail info grid.
type InfoItem struct {
	Label string
	Value string
	Link  bool
}

// ContentKind selects how the content section renders.
type ContentKind int

const (
	ContentAwaiting ContentKind = iota
	ContentGenerating
	ContentPicking
	ContentSelected
)

// VariantView is a content variant with its text rendered to HTML.
type VariantView struct {
	ID      string
	HTML    string
	Checked bool
}

// ContentView is the state-driven content section.
type ContentView struct {
	Kind             ContentKind
	Variants         []VariantView
	Selected         VariantView
	Others           []VariantView
	GeneratingImages bool
}

// ImageView is one generated image.
type ImageView struct {
	URL      string
	Prompt   string
	Provider string
	Selected bool
}

// PostDetailView is the detail page model.
type PostDetailView struct {
	ID                string
	Topic             string
	Status            Badge
	CreatedAt         string
	Info              []InfoItem
	AdditionalContext string
	Content           ContentView
	Images            []ImageView
	StatusOptions     []Option
	// AwaitingContent keeps polling after a content generation trigger.
	AwaitingContent bool
	Polling         bool
	PollInterval    time.Duration
	// Notice is the success message shown after a confirmation.
	Notice      string
	ReloadDelay time.Duration
	Error       string
}

// CreateForm holds the submitted create values.
type CreateForm struct {
	Topic             string
	Goal              string
	TargetAudience    string
	Tone              string
	Format            string
	AdditionalContext string
	CTA               string
	Link              string
}

// PostCreateView is the create page model.
type PostCreateView struct {
	Form    CreateForm
	Goals   []Option
	Tones   []Option
	Formats []Option
	Error   string
}
