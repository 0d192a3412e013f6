package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Health       = "/healthz"
	StaticPrefix = "/static/"
)

const (
	PostsTable   = "/posts/table"
	PostsRefresh = "/posts/refresh"
	PostsNew     = "/posts/new"
	Posts        = "/posts"
	PostsPrefix  = "/posts/"
)

const (
	APIPosts = "/api/posts"
)

func Post(postID string) string {
	return Posts + "/" + escapeSegment(postID)
}

func PostContent(postID string) string {
	return Post(postID) + "/content"
}

func PostGenerate(postID string) string {
	return Post(postID) + "/generate"
}

func PostConfirm(postID string) string {
	return Post(postID) + "/confirm"
}

func PostStatus(postID string) string {
	return Post(postID) + "/status"
}

// PostsFiltered is the list page for one status filter.
func PostsFiltered(filter string) string {
	return withStatus(Root, filter)
}

// PostsTableFiltered is the list fragment for one status filter.
func PostsTableFiltered(filter string) string {
	return withStatus(PostsTable, filter)
}

// PostsRefreshFiltered re-fetches the list and returns the fragment for one
// status filter.
func PostsRefreshFiltered(filter string) string {
	return withStatus(PostsRefresh, filter)
}

func withStatus(path, filter string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return path
	}
	return path + "?status=" + url.QueryEscape(filter)
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
