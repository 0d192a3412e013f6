// Package postgrest implements the content store over a Supabase PostgREST
// endpoint.
package postgrest

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

	"github.com/google/uuid"
	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"github.com/louisbranch/postdesk/internal/platform/timeouts"
	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"github.com/louisbranch/postdesk/internal/services/postdesk/store"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	postsPath = "/rest/v1/posts"
	// detailSelect embeds content variants and images in one round trip.
	detailSelect = "*,post_contents!post_contents_post_id_fkey(*),post_images(*)"
	// errorBodyLimit caps how much of an error response is echoed.
	errorBodyLimit = 4096
	// defaultListLimit applies when neither the call nor the config sets one.
	defaultListLimit = 50
)

const tracerName = "github.com/louisbranch/postdesk/internal/services/postdesk/store/postgrest"

// Config configures the PostgREST client.
type Config struct {
	BaseURL      string
	APIKey       string
	DefaultLimit int
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// Client is a store.Store backed by PostgREST.
type Client struct {
	baseURL      string
	apiKey       string
	defaultLimit int
	timeout      time.Duration
	httpClient   *http.Client
	tracer       trace.Tracer
}

var _ store.Store = (*Client)(nil)

// New builds a PostgREST client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("postgrest base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("parse postgrest base url: %w", err)
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("postgrest api key is required")
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = defaultListLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.StoreRequest
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		defaultLimit: cfg.DefaultLimit,
		timeout:      cfg.Timeout,
		httpClient:   cfg.HTTPClient,
		tracer:       otel.Tracer(tracerName),
	}, nil
}

// ListPosts returns posts ordered and limited per opts.
func (c *Client) ListPosts(ctx context.Context, opts store.ListOptions) ([]post.Post, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = c.defaultLimit
	}
	query := url.Values{}
	query.Set("order", opts.OrderParam())
	query.Set("limit", strconv.Itoa(limit))
	if status := strings.TrimSpace(string(opts.Status)); status != "" {
		query.Set("status", "eq."+status)
	}
	for _, condition := range opts.Conditions {
		query.Add(condition.Column, string(condition.Operator)+"."+condition.Value)
	}

	var posts []post.Post
	if err := c.do(ctx, "ListPosts", http.MethodGet, query, nil, nil, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []post.Post{}
	}
	return posts, nil
}

// GetPost returns one post with its variants and images. The id is checked
// before any request is made.
func (c *Client) GetPost(ctx context.Context, id string) (post.Post, error) {
	id, err := validateID(id)
	if err != nil {
		return post.Post{}, err
	}
	query := url.Values{}
	query.Set("id", "eq."+id)
	query.Set("select", detailSelect)

	var rows []post.Post
	if err := c.do(ctx, "GetPost", http.MethodGet, query, nil, nil, &rows); err != nil {
		return post.Post{}, err
	}
	if len(rows) == 0 {
		return post.Post{}, apperrors.WithMetadata(apperrors.CodePostNotFound, "post not found", map[string]string{"id": id})
	}
	return rows[0], nil
}

// CreatePost inserts a post and returns the stored row.
func (c *Client) CreatePost(ctx context.Context, draft post.Draft) (post.Post, error) {
	if err := draft.Validate(); err != nil {
		return post.Post{}, err
	}
	headers := http.Header{}
	headers.Set("Prefer", "return=representation")

	var rows []post.Post
	if err := c.do(ctx, "CreatePost", http.MethodPost, nil, draft.Payload(), headers, &rows); err != nil {
		return post.Post{}, err
	}
	if len(rows) == 0 {
		return post.Post{}, storeFailure("create post returned no rows", nil)
	}
	return rows[0], nil
}

// SelectContent records the chosen content variant on a post.
func (c *Client) SelectContent(ctx context.Context, postID, contentID string) error {
	postID, err := validateID(postID)
	if err != nil {
		return err
	}
	contentID = strings.TrimSpace(contentID)
	if contentID == "" {
		return apperrors.New(apperrors.CodeVariantSelectionRequired, "content id is required")
	}
	return c.patch(ctx, "SelectContent", postID, map[string]string{"selected_content_id": contentID})
}

// UpdateStatus moves a post to a known status.
func (c *Client) UpdateStatus(ctx context.Context, postID string, status post.Status) error {
	postID, err := validateID(postID)
	if err != nil {
		return err
	}
	if !status.Known() {
		return apperrors.WithMetadata(apperrors.CodeStatusInvalid, "unknown status "+string(status), map[string]string{"status": string(status)})
	}
	return c.patch(ctx, "UpdateStatus", postID, map[string]string{"status": string(status)})
}

// Ping issues the cheapest possible read to check connectivity and the key.
func (c *Client) Ping(ctx context.Context) error {
	query := url.Values{}
	query.Set("select", "id")
	query.Set("limit", "1")
	var rows []json.RawMessage
	return c.do(ctx, "Ping", http.MethodGet, query, nil, nil, &rows)
}

func (c *Client) patch(ctx context.Context, op, postID string, body any) error {
	query := url.Values{}
	query.Set("id", "eq."+postID)
	headers := http.Header{}
	headers.Set("Prefer", "return=minimal")
	return c.do(ctx, op, http.MethodPatch, query, body, headers, nil)
}

func (c *Client) do(ctx context.Context, op, method string, query url.Values, body any, headers http.Header, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ctx, span := c.tracer.Start(ctx, "postgrest."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("db.collection.name", "posts"),
		),
	)
	defer span.End()

	err := c.roundTrip(ctx, method, query, body, headers, out, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.MessageOf(err))
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method string, query url.Values, body any, headers http.Header, out any, span trace.Span) error {
	endpoint := c.baseURL + postsPath
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return storeFailure("encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return storeFailure("build request", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return storeFailure("request failed", err)
	}
	defer res.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		errorBody, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))
		detail := fmt.Sprintf("HTTP %d: %s", res.StatusCode, strings.TrimSpace(string(errorBody)))
		return apperrors.WithMetadata(apperrors.CodeStoreRequestFailed, detail, map[string]string{
			"detail": detail,
			"status": strconv.Itoa(res.StatusCode),
		})
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return storeFailure("decode response", err)
	}
	return nil
}

func validateID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.New(apperrors.CodePostIDRequired, "post id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", apperrors.WrapWithMetadata(apperrors.CodePostIDInvalid, "post id is not a uuid", map[string]string{"id": id}, err)
	}
	return id, nil
}

func storeFailure(message string, cause error) error {
	detail := message
	if cause != nil {
		detail = message + ": " + cause.Error()
	}
	return apperrors.WrapWithMetadata(apperrors.CodeStoreRequestFailed, detail, map[string]string{"detail": detail}, cause)
}
