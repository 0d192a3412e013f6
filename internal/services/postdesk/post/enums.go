package post

import "slices"

// Label names a catalog key for a known value. Unknown values keep their raw
// string so callers can display whatever the store returned.
type Label struct {
	Key string
	Raw string
}

// Mapped reports whether the label has a catalog key.
func (l Label) Mapped() bool {
	return l.Key != ""
}

// Status is the lifecycle status of a post.
type Status string

const (
	StatusPendingGeneration Status = "pending_generation"
	StatusGenerating        Status = "generating"
	StatusPendingReview     Status = "pending_review"
	StatusApproved          Status = "approved"
	StatusGenerated         Status = "generated"
	StatusPublished         Status = "published"
	StatusFailed            Status = "failed"
)

// StatusStyle is the badge presentation of a status.
type StatusStyle struct {
	Label Label
	Icon  string
	Color string
}

const (
	defaultStatusIcon  = "fa-circle"
	defaultStatusColor = "bg-gray-100 text-gray-700"
)

var statusStyles = map[Status]StatusStyle{
	StatusPendingGeneration: {Label: Label{Key: "status.pending_generation"}, Icon: "fa-clock", Color: "bg-gray-100 text-gray-700"},
	StatusGenerating:        {Label: Label{Key: "status.generating"}, Icon: "fa-spinner fa-spin", Color: "bg-blue-100 text-blue-700"},
	StatusPendingReview:     {Label: Label{Key: "status.pending_review"}, Icon: "fa-hourglass-half", Color: "bg-yellow-100 text-yellow-700"},
	StatusApproved:          {Label: Label{Key: "status.approved"}, Icon: "fa-check", Color: "bg-linkedin text-white"},
	StatusGenerated:         {Label: Label{Key: "status.generated"}, Icon: "fa-check", Color: "bg-cyan-100 text-cyan-700"},
	StatusPublished:         {Label: Label{Key: "status.published"}, Icon: "fa-check-double", Color: "bg-green-100 text-green-700"},
	StatusFailed:            {Label: Label{Key: "status.failed"}, Icon: "fa-triangle-exclamation", Color: "bg-red-100 text-red-700"},
}

// StatusValues lists every known status in display order.
func StatusValues() []Status {
	return []Status{
		StatusPendingGeneration,
		StatusGenerating,
		StatusPendingReview,
		StatusApproved,
		StatusGenerated,
		StatusPublished,
		StatusFailed,
	}
}

// Known reports whether s is a known status.
func (s Status) Known() bool {
	_, ok := statusStyles[s]
	return ok
}

// Style returns the badge presentation, falling back to the raw value with
// a neutral icon and color.
func (s Status) Style() StatusStyle {
	if style, ok := statusStyles[s]; ok {
		style.Label.Raw = string(s)
		return style
	}
	return StatusStyle{
		Label: Label{Raw: string(s)},
		Icon:  defaultStatusIcon,
		Color: defaultStatusColor,
	}
}

// Goal is the intent of a post.
type Goal string

const (
	GoalEducate Goal = "educate"
	GoalInspire Goal = "inspire"
	GoalSell    Goal = "sell"
	GoalEngage  Goal = "engage"
)

// GoalValues lists every known goal.
func GoalValues() []Goal {
	return []Goal{GoalEducate, GoalInspire, GoalSell, GoalEngage}
}

// Known reports whether g is a known goal.
func (g Goal) Known() bool {
	return slices.Contains(GoalValues(), g)
}

// Label returns the goal label.
func (g Goal) Label() Label {
	return enumLabel("goal.", g.Known(), string(g))
}

// Tone is the writing register of a post.
type Tone string

const (
	ToneFormal Tone = "formal"
	ToneCasual Tone = "casual"
	ToneHybrid Tone = "hybrid"
)

// ToneValues lists every known tone.
func ToneValues() []Tone {
	return []Tone{ToneFormal, ToneCasual, ToneHybrid}
}

// Known reports whether t is a known tone.
func (t Tone) Known() bool {
	return slices.Contains(ToneValues(), t)
}

// Label returns the tone label.
func (t Tone) Label() Label {
	return enumLabel("tone.", t.Known(), string(t))
}

// Format is the structure of a post.
type Format string

const (
	FormatStorytelling Format = "storytelling"
	FormatList         Format = "list"
	FormatTutorial     Format = "tutorial"
)

// FormatValues lists every known format.
func FormatValues() []Format {
	return []Format{FormatStorytelling, FormatList, FormatTutorial}
}

// Known reports whether f is a known format.
func (f Format) Known() bool {
	return slices.Contains(FormatValues(), f)
}

// Label returns the format label.
func (f Format) Label() Label {
	return enumLabel("format.", f.Known(), string(f))
}

// Provider is the image generation backend that produced an image.
type Provider string

const (
	ProviderGemini  Provider = "gemini"
	ProviderChatGPT Provider = "chatgpt"
)

// ProviderValues lists every known provider.
func ProviderValues() []Provider {
	return []Provider{ProviderGemini, ProviderChatGPT}
}

// Known reports whether p is a known provider.
func (p Provider) Known() bool {
	return slices.Contains(ProviderValues(), p)
}

// Label returns the provider label.
func (p Provider) Label() Label {
	return enumLabel("provider.", p.Known(), string(p))
}

func enumLabel(prefix string, known bool, raw string) Label {
	if !known {
		return Label{Raw: raw}
	}
	return Label{Key: prefix + raw, Raw: raw}
}
