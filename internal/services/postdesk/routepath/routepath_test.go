package routepath

import "testing"

func TestTopLevelRoutes(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if StaticPrefix != "/static/" {
		t.Fatalf("StaticPrefix = %q", StaticPrefix)
	}
	if PostsNew != "/posts/new" {
		t.Fatalf("PostsNew = %q", PostsNew)
	}
	if APIPosts != "/api/posts" {
		t.Fatalf("APIPosts = %q", APIPosts)
	}
}

func TestPostBuilders(t *testing.T) {
	t.Parallel()

	if got := Post("p-1"); got != "/posts/p-1" {
		t.Fatalf("Post = %q", got)
	}
	if got := PostContent("p-1"); got != "/posts/p-1/content" {
		t.Fatalf("PostContent = %q", got)
	}
	if got := PostGenerate("p-1"); got != "/posts/p-1/generate" {
		t.Fatalf("PostGenerate = %q", got)
	}
	if got := PostConfirm("p-1"); got != "/posts/p-1/confirm" {
		t.Fatalf("PostConfirm = %q", got)
	}
	if got := PostStatus("p-1"); got != "/posts/p-1/status" {
		t.Fatalf("PostStatus = %q", got)
	}
	if got := Post(" a/b "); got != "/posts/a%2Fb" {
		t.Fatalf("Post escaped = %q", got)
	}
}

func TestPostsTableFiltered(t *testing.T) {
	t.Parallel()

	if got := PostsTableFiltered(""); got != "/posts/table" {
		t.Fatalf("empty = %q", got)
	}
	if got := PostsTableFiltered("pending_review"); got != "/posts/table?status=pending_review" {
		t.Fatalf("filtered = %q", got)
	}
	if got := PostsFiltered("all"); got != "/?status=all" {
		t.Fatalf("page filtered = %q", got)
	}
	if got := PostsRefreshFiltered("failed"); got != "/posts/refresh?status=failed" {
		t.Fatalf("refresh filtered = %q", got)
	}
}
