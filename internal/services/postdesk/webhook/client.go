// Package webhook triggers the external content and image generation
// workflows.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"github.com/louisbranch/postdesk/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/louisbranch/postdesk/internal/services/postdesk/webhook"

// Generator starts asynchronous generation jobs. Results land in the content
// store; callers observe them by re-reading posts.
type Generator interface {
	GenerateContent(ctx context.Context, postID string) error
	GenerateImages(ctx context.Context, postID, contentID string) error
}

// Config configures the webhook client.
type Config struct {
	ContentURL string
	ImagesURL  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the generation webhooks.
type Client struct {
	contentURL string
	imagesURL  string
	timeout    time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
}

var _ Generator = (*Client)(nil)

type contentRequest struct {
	PostID string `json:"post_id"`
}

type imagesRequest struct {
	PostID            string `json:"post_id"`
	SelectedContentID string `json:"selected_content_id"`
}

// New builds a webhook client. Both URLs must be absolute http(s) URLs.
func New(cfg Config) (*Client, error) {
	contentURL, err := endpoint("content", cfg.ContentURL)
	if err != nil {
		return nil, err
	}
	imagesURL, err := endpoint("images", cfg.ImagesURL)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.WebhookRequest
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{
		contentURL: contentURL,
		imagesURL:  imagesURL,
		timeout:    cfg.Timeout,
		httpClient: cfg.HTTPClient,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

// GenerateContent asks the content workflow to write variants for a post.
func (c *Client) GenerateContent(ctx context.Context, postID string) error {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return apperrors.New(apperrors.CodePostIDRequired, "post id is required")
	}
	return c.post(ctx, "GenerateContent", c.contentURL, contentRequest{PostID: postID})
}

// GenerateImages asks the image workflow to illustrate the selected variant.
func (c *Client) GenerateImages(ctx context.Context, postID, contentID string) error {
	postID = strings.TrimSpace(postID)
	if postID == "" {
		return apperrors.New(apperrors.CodePostIDRequired, "post id is required")
	}
	contentID = strings.TrimSpace(contentID)
	if contentID == "" {
		return apperrors.New(apperrors.CodeVariantSelectionRequired, "content id is required")
	}
	return c.post(ctx, "GenerateImages", c.imagesURL, imagesRequest{PostID: postID, SelectedContentID: contentID})
}

func (c *Client) post(ctx context.Context, op, target string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, "webhook."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := c.send(ctx, target, payload, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.MessageOf(err))
	}
	return err
}

func (c *Client) send(ctx context.Context, target string, payload any, span trace.Span) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return transportFailure("encode webhook payload", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return transportFailure("build webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return transportFailure("webhook request failed", err)
	}
	defer res.Body.Close()
	// The workflows answer asynchronously; the body carries nothing useful.
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		status := strconv.Itoa(res.StatusCode)
		return apperrors.WithMetadata(apperrors.CodeWebhookRequestFailed,
			fmt.Sprintf("HTTP %d: webhook call failed", res.StatusCode),
			map[string]string{"status": status})
	}
	return nil
}

func endpoint(name, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%s webhook url is required", name)
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse %s webhook url: %w", name, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", fmt.Errorf("%s webhook url must be an absolute http(s) url", name)
	}
	return raw, nil
}

func transportFailure(message string, cause error) error {
	detail := message + ": " + cause.Error()
	return apperrors.WrapWithMetadata(apperrors.CodeWebhookRequestFailed, detail, map[string]string{"detail": detail}, cause)
}
