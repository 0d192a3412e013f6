// Package store defines the content store contract used by the postdesk views.
package store

import (
	"context"
	"strings"

	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
)

// Order is one sort key. Field is a store column.
type Order struct {
	Field string
	Desc  bool
}

// String renders the PostgREST form, e.g. "created_at.desc".
func (o Order) String() string {
	direction := "asc"
	if o.Desc {
		direction = "desc"
	}
	return o.Field + "." + direction
}

// NewestFirst is the default list order.
var NewestFirst = []Order{{Field: "created_at", Desc: true}}

// Operator is a column comparison operator.
type Operator string

const (
	OpEqual          Operator = "eq"
	OpNotEqual       Operator = "neq"
	OpLessThan       Operator = "lt"
	OpLessOrEqual    Operator = "lte"
	OpGreaterThan    Operator = "gt"
	OpGreaterOrEqual Operator = "gte"
)

// Condition restricts a column, e.g. goal=eq.sell.
type Condition struct {
	Column   string
	Operator Operator
	Value    string
}

// ListOptions shapes a post listing. Zero values mean store defaults.
type ListOptions struct {
	Status     post.Status
	Conditions []Condition
	Limit      int
	Order      []Order
}

// OrderParam joins the order keys, falling back to newest first.
func (o ListOptions) OrderParam() string {
	order := o.Order
	if len(order) == 0 {
		order = NewestFirst
	}
	parts := make([]string, 0, len(order))
	for _, key := range order {
		parts = append(parts, key.String())
	}
	return strings.Join(parts, ",")
}

// Store reads and mutates posts in the external content store.
type Store interface {
	ListPosts(ctx context.Context, opts ListOptions) ([]post.Post, error)
	GetPost(ctx context.Context, id string) (post.Post, error)
	CreatePost(ctx context.Context, draft post.Draft) (post.Post, error)
	SelectContent(ctx context.Context, postID, contentID string) error
	UpdateStatus(ctx context.Context, postID string, status post.Status) error
	Ping(ctx context.Context) error
}
