package session

import (
	"context"
	"strings"

	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"github.com/louisbranch/postdesk/internal/services/postdesk/store"
	"github.com/louisbranch/postdesk/internal/services/postdesk/webhook"
)

// Detail is the page session for one post. It lives for a single request.
type Detail struct {
	postID    string
	store     store.Store
	generator webhook.Generator

	Post  post.Post
	State post.DisplayState

	loaded       bool
	selected     string
	forcePolling bool
	confirmed    bool
}

// NewDetail binds a session to a post id.
func NewDetail(postID string, st store.Store, generator webhook.Generator) *Detail {
	return &Detail{
		postID:    strings.TrimSpace(postID),
		store:     st,
		generator: generator,
	}
}

// PostID returns the bound id.
func (d *Detail) PostID() string {
	return d.postID
}

// Load fetches the post and derives its display state.
func (d *Detail) Load(ctx context.Context) error {
	if d.postID == "" {
		return apperrors.New(apperrors.CodePostIDRequired, "post id is required")
	}
	p, err := d.store.GetPost(ctx, d.postID)
	if err != nil {
		return err
	}
	d.Post = p
	d.State = post.Derive(p)
	d.loaded = true
	return nil
}

// Loaded reports whether Load succeeded.
func (d *Detail) Loaded() bool {
	return d.loaded
}

// Select records the local variant choice. Once the post is loaded the id
// must belong to it.
func (d *Detail) Select(variantID string) error {
	variantID = strings.TrimSpace(variantID)
	if variantID != "" && d.loaded {
		if _, ok := d.Post.Variant(variantID); !ok {
			return apperrors.WithMetadata(apperrors.CodeVariantUnknown, "variant does not belong to post", map[string]string{"id": variantID})
		}
	}
	d.selected = variantID
	return nil
}

// Selected returns the local variant choice.
func (d *Detail) Selected() string {
	return d.selected
}

// GenerateContent triggers the content webhook and keeps the view polling
// until variants appear.
func (d *Detail) GenerateContent(ctx context.Context) error {
	if d.postID == "" {
		return apperrors.New(apperrors.CodePostIDRequired, "post id is required")
	}
	if err := d.generator.GenerateContent(ctx, d.postID); err != nil {
		return err
	}
	d.forcePolling = true
	return nil
}

// AwaitContent keeps polling while a triggered generation has not been
// picked up yet: no variants and the post still pending generation. A post
// that failed or moved on stops polling.
func (d *Detail) AwaitContent() {
	if _, ok := d.State.(post.AwaitingContent); ok && d.Post.Status == post.StatusPendingGeneration {
		d.forcePolling = true
	}
}

// Confirm stores the selected variant and triggers image generation. Nothing
// is sent when no variant is selected.
func (d *Detail) Confirm(ctx context.Context) error {
	if d.selected == "" {
		return apperrors.New(apperrors.CodeVariantSelectionRequired, "no variant selected")
	}
	if !d.loaded {
		if err := d.Load(ctx); err != nil {
			return err
		}
	}
	if err := d.Select(d.selected); err != nil {
		return err
	}
	if err := d.store.SelectContent(ctx, d.postID, d.selected); err != nil {
		return err
	}
	if err := d.generator.GenerateImages(ctx, d.postID, d.selected); err != nil {
		return err
	}
	d.confirmed = true
	return nil
}

// Confirmed reports whether Confirm succeeded in this session.
func (d *Detail) Confirmed() bool {
	return d.confirmed
}

// UpdateStatus patches the post status and reloads it.
func (d *Detail) UpdateStatus(ctx context.Context, status post.Status) error {
	if err := d.store.UpdateStatus(ctx, d.postID, status); err != nil {
		return err
	}
	return d.Load(ctx)
}

// Polling reports whether the view should keep reloading.
func (d *Detail) Polling() bool {
	if d.forcePolling {
		return true
	}
	return d.State != nil && d.State.Polling()
}
