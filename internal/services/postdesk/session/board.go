package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"github.com/louisbranch/postdesk/internal/services/postdesk/store"
)

// FilterAll shows every post in the board view.
const FilterAll = "all"

// Board keeps the latest post listing shared by every list page.
type Board struct {
	store  store.Store
	limit  int
	poller *Poller
	now    func() time.Time

	mu sync.RWMutex
	// fetches numbers each Refresh; applied is the newest one stored.
	fetches     uint64
	applied     uint64
	posts       []post.Post
	loaded      bool
	lastErr     error
	refreshedAt time.Time
}

// Snapshot is a copy of the board state.
type Snapshot struct {
	Posts       []post.Post
	Loaded      bool
	Err         error
	RefreshedAt time.Time
}

// View is the snapshot narrowed by a status filter.
type View struct {
	Snapshot
	Filter string
	// Total counts posts before filtering.
	Total int
}

// NewBoard builds an empty board. A non-positive interval disables
// auto-refresh.
func NewBoard(st store.Store, limit int, interval time.Duration) *Board {
	b := &Board{store: st, limit: limit, now: time.Now}
	b.poller = NewPoller(interval, func(ctx context.Context) {
		if err := b.Refresh(ctx); err != nil {
			log.Printf("board auto refresh: %v", err)
		}
	})
	return b
}

// Refresh re-fetches the newest posts. On failure the previous posts are kept
// and the error is recorded. A fetch that finishes after a later one has
// been stored is discarded.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.fetches++
	seq := b.fetches
	b.mu.Unlock()

	posts, err := b.store.ListPosts(ctx, store.ListOptions{Limit: b.limit, Order: store.NewestFirst})

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq < b.applied {
		return err
	}
	b.applied = seq
	b.lastErr = err
	if err != nil {
		return err
	}
	b.posts = posts
	b.loaded = true
	b.refreshedAt = b.now()
	return nil
}

// Snapshot returns the current posts and last refresh outcome.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	posts := make([]post.Post, len(b.posts))
	copy(posts, b.posts)
	return Snapshot{
		Posts:       posts,
		Loaded:      b.loaded,
		Err:         b.lastErr,
		RefreshedAt: b.refreshedAt,
	}
}

// View filters the snapshot by status without touching the store. An empty
// filter or FilterAll keeps every post.
func (b *Board) View(filter string) View {
	snapshot := b.Snapshot()
	filter = strings.TrimSpace(filter)
	if filter == "" {
		filter = FilterAll
	}
	view := View{Snapshot: snapshot, Filter: filter, Total: len(snapshot.Posts)}
	if filter == FilterAll {
		return view
	}
	filtered := make([]post.Post, 0, len(snapshot.Posts))
	for _, p := range snapshot.Posts {
		if string(p.Status) == filter {
			filtered = append(filtered, p)
		}
	}
	view.Posts = filtered
	return view
}

// StartAutoRefresh begins the silent refresh loop. It reports false when the
// loop was already running.
func (b *Board) StartAutoRefresh(ctx context.Context) bool {
	return b.poller.Start(ctx)
}

// Refreshing reports whether the auto-refresh loop is active.
func (b *Board) Refreshing() bool {
	return b.poller.Running()
}

// Run refreshes once, keeps refreshing until ctx ends, and then stops.
func (b *Board) Run(ctx context.Context) error {
	if err := b.Refresh(ctx); err != nil {
		log.Printf("board initial refresh: %v", err)
	}
	b.StartAutoRefresh(ctx)
	<-ctx.Done()
	b.Close()
	return nil
}

// Close stops auto-refresh.
func (b *Board) Close() {
	b.poller.Stop()
}
