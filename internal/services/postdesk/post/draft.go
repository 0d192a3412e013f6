package post

import (
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
)

// Draft is the operator input for a new post.
type Draft struct {
	Topic             string
	TargetAudience    string
	Goal              Goal
	Tone              Tone
	Format            Format
	AdditionalContext string
	CTA               string
	Link              string
}

// CreatePayload is the JSON body sent to the store. Optional fields are
// omitted when blank.
type CreatePayload struct {
	Topic             string `json:"topic"`
	Goal              Goal   `json:"goal"`
	TargetAudience    string `json:"target_audience"`
	Tone              Tone   `json:"tone"`
	Format            Format `json:"format"`
	Status            Status `json:"status"`
	AdditionalContext string `json:"additional_context,omitempty"`
	CTA               string `json:"cta,omitempty"`
	Link              string `json:"link,omitempty"`
}

// Normalized returns a copy with every field trimmed.
func (d Draft) Normalized() Draft {
	return Draft{
		Topic:             strings.TrimSpace(d.Topic),
		TargetAudience:    strings.TrimSpace(d.TargetAudience),
		Goal:              Goal(strings.TrimSpace(string(d.Goal))),
		Tone:              Tone(strings.TrimSpace(string(d.Tone))),
		Format:            Format(strings.TrimSpace(string(d.Format))),
		AdditionalContext: strings.TrimSpace(d.AdditionalContext),
		CTA:               strings.TrimSpace(d.CTA),
		Link:              strings.TrimSpace(d.Link),
	}
}

// Validate checks required fields, enum membership, and the link URL.
func (d Draft) Validate() error {
	d = d.Normalized()
	required := []struct {
		field string
		value string
	}{
		{field: "topic", value: d.Topic},
		{field: "goal", value: string(d.Goal)},
		{field: "target_audience", value: d.TargetAudience},
		{field: "tone", value: string(d.Tone)},
		{field: "format", value: string(d.Format)},
	}
	for _, item := range required {
		if item.value == "" {
			return invalidField(item.field, item.field+" is required")
		}
	}
	if !d.Goal.Known() {
		return invalidField("goal", "unknown goal "+string(d.Goal))
	}
	if !d.Tone.Known() {
		return invalidField("tone", "unknown tone "+string(d.Tone))
	}
	if !d.Format.Known() {
		return invalidField("format", "unknown format "+string(d.Format))
	}
	if d.Link != "" && !isHTTPURL(d.Link) {
		return invalidField("link", "link must be an http or https URL")
	}
	return nil
}

// Payload builds the create request body with the initial status.
func (d Draft) Payload() CreatePayload {
	d = d.Normalized()
	return CreatePayload{
		Topic:             d.Topic,
		Goal:              d.Goal,
		TargetAudience:    d.TargetAudience,
		Tone:              d.Tone,
		Format:            d.Format,
		Status:            StatusPendingGeneration,
		AdditionalContext: d.AdditionalContext,
		CTA:               d.CTA,
		Link:              d.Link,
	}
}

func invalidField(field, message string) error {
	return apperrors.WithMetadata(apperrors.CodePostInvalidInput, message, map[string]string{"field": field})
}

func isHTTPURL(value string) bool {
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}
