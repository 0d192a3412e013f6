package post

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPostDecodesStoreRow(t *testing.T) {
	raw := `{
		"id": "5f0c6c1e-2d7b-4a52-9d7e-2f3f8f0b1a11",
		"topic": "Remote work",
		"target_audience": "Managers",
		"goal": "educate",
		"tone": "casual",
		"format": "list",
		"cta": null,
		"link": null,
		"status": "pending_review",
		"created_at": "2025-03-01T10:15:00.123456+00:00",
		"selected_content_id": null,
		"post_contents": [{"id": "c1", "post_id": "p", "content": "Hello", "created_at": "2025-03-01T10:16:00"}],
		"post_images": [{"id": "i1", "post_id": "p", "image_url": "https://img/1.png", "provider": "gemini", "is_selected": true}]
	}`
	var got Post
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Status != StatusPendingReview || got.Goal != GoalEducate {
		t.Fatalf("unexpected enums: %+v", got)
	}
	if got.CTA != "" || got.SelectedContentID != "" {
		t.Fatalf("expected null fields to decode blank: %+v", got)
	}
	wantCreated := time.Date(2025, 3, 1, 10, 15, 0, 123456000, time.UTC)
	if !got.CreatedAt.Equal(wantCreated) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, wantCreated)
	}
	if len(got.Contents) != 1 || got.Contents[0].CreatedAt.IsZero() {
		t.Fatalf("expected zone-less content timestamp to decode: %+v", got.Contents)
	}
	if len(got.Images) != 1 || !got.Images[0].Selected || got.Images[0].Provider != ProviderGemini {
		t.Fatalf("unexpected images: %+v", got.Images)
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestTimestampMarshal(t *testing.T) {
	encoded, err := json.Marshal(Timestamp{})
	if err != nil || string(encoded) != "null" {
		t.Fatalf("zero timestamp = %s, %v", encoded, err)
	}
	encoded, err = json.Marshal(NewTimestamp(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))
	if err != nil || string(encoded) != `"2025-01-02T03:04:05Z"` {
		t.Fatalf("timestamp = %s, %v", encoded, err)
	}
}

func TestPostVariant(t *testing.T) {
	p := Post{Contents: []ContentVariant{{ID: "a"}, {ID: "b"}}}
	if _, ok := p.Variant("b"); !ok {
		t.Fatal("expected variant b")
	}
	if _, ok := p.Variant(" "); ok {
		t.Fatal("expected blank id to miss")
	}
}
