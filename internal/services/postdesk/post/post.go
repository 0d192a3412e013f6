package post

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Post is the central content-request record.
type Post struct {
	ID                string           `json:"id"`
	Topic             string           `json:"topic"`
	TargetAudience    string           `json:"target_audience"`
	Goal              Goal             `json:"goal"`
	Tone              Tone             `json:"tone"`
	Format            Format           `json:"format"`
	CTA               string           `json:"cta,omitempty"`
	Link              string           `json:"link,omitempty"`
	AdditionalContext string           `json:"additional_context,omitempty"`
	Status            Status           `json:"status"`
	CreatedAt         Timestamp        `json:"created_at"`
	SelectedContentID string           `json:"selected_content_id,omitempty"`
	Contents          []ContentVariant `json:"post_contents,omitempty"`
	Images            []GeneratedImage `json:"post_images,omitempty"`
}

// ContentVariant is one generated text candidate for a post.
type ContentVariant struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}

// GeneratedImage is an image produced for the selected variant.
type GeneratedImage struct {
	ID       string   `json:"id"`
	PostID   string   `json:"post_id"`
	URL      string   `json:"image_url"`
	Prompt   string   `json:"image_prompt,omitempty"`
	Provider Provider `json:"provider"`
	Selected bool     `json:"is_selected"`
}

// Variant returns the content variant with the given id.
func (p Post) Variant(id string) (ContentVariant, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ContentVariant{}, false
	}
	for _, variant := range p.Contents {
		if variant.ID == id {
			return variant, true
		}
	}
	return ContentVariant{}, false
}

// Timestamp decodes the timestamp shapes PostgREST emits, with or without a
// zone offset. JSON null decodes to the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses a store timestamp string.
func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: parsed}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("parse timestamp %q", value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
