package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
)

type manualTicker struct {
	ch      chan time.Time
	created atomic.Int32
	stopped atomic.Int32
}

func newManualTicker() *manualTicker {
	return &manualTicker{ch: make(chan time.Time)}
}

func (m *manualTicker) factory(time.Duration) (<-chan time.Time, func()) {
	m.created.Add(1)
	return m.ch, func() { m.stopped.Add(1) }
}

func TestPollerStartIsIdempotent(t *testing.T) {
	ticker := newManualTicker()
	ran := make(chan struct{}, 4)
	p := NewPoller(time.Second, func(context.Context) { ran <- struct{}{} })
	p.newTicker = ticker.factory

	if !p.Start(context.Background()) {
		t.Fatal("first start should start a loop")
	}
	if p.Start(context.Background()) {
		t.Fatal("second start should be a no-op")
	}
	if got := ticker.created.Load(); got != 1 {
		t.Fatalf("tickers created = %d, want 1", got)
	}

	ticker.ch <- time.Now()
	<-ran

	p.Stop()
	if p.Running() {
		t.Fatal("poller should be stopped")
	}
	if got := ticker.stopped.Load(); got != 1 {
		t.Fatalf("tickers stopped = %d, want 1", got)
	}
	p.Stop()

	if !p.Start(context.Background()) {
		t.Fatal("restart after stop should start a loop")
	}
	p.Stop()
}

func TestPollerStopsWithContext(t *testing.T) {
	ticker := newManualTicker()
	p := NewPoller(time.Second, func(context.Context) {})
	p.newTicker = ticker.factory

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	deadline := time.After(time.Second)
	for ticker.stopped.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("ticker was not stopped after context cancel")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	p.Stop()
}

func TestPollerDisabledWithoutInterval(t *testing.T) {
	p := NewPoller(0, func(context.Context) {})
	if p.Start(context.Background()) {
		t.Fatal("zero interval should not start")
	}
}

func TestBoardRefreshKeepsSnapshotOnFailure(t *testing.T) {
	st := newFakeStore(post.Post{ID: "a", Status: post.StatusGenerating}, post.Post{ID: "b", Status: post.StatusPublished})
	b := NewBoard(st, 50, 0)

	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	st.listErr = errors.New("offline")
	if err := b.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error")
	}

	snapshot := b.Snapshot()
	if !snapshot.Loaded || len(snapshot.Posts) != 2 {
		t.Fatalf("snapshot = %+v", snapshot)
	}
	if snapshot.Err == nil {
		t.Fatal("expected recorded error")
	}
}

func TestBoardRefreshDropsStaleResult(t *testing.T) {
	st := newFakeStore()
	entered := make(chan struct{})
	release := make(chan struct{})
	st.listFn = func(call int) ([]post.Post, error) {
		if call == 1 {
			close(entered)
			<-release
			return []post.Post{{ID: "old"}}, nil
		}
		return []post.Post{{ID: "new"}}, nil
	}
	b := NewBoard(st, 50, 0)

	slow := make(chan error, 1)
	go func() { slow <- b.Refresh(context.Background()) }()
	<-entered
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	close(release)
	if err := <-slow; err != nil {
		t.Fatalf("slow refresh: %v", err)
	}

	snapshot := b.Snapshot()
	if len(snapshot.Posts) != 1 || snapshot.Posts[0].ID != "new" {
		t.Fatalf("snapshot = %+v, want the newer fetch", snapshot.Posts)
	}
}

func TestBoardViewFiltersLocally(t *testing.T) {
	st := newFakeStore(
		post.Post{ID: "a", Status: post.StatusGenerating},
		post.Post{ID: "b", Status: post.StatusPublished},
		post.Post{ID: "c", Status: post.StatusGenerating},
	)
	b := NewBoard(st, 50, 0)
	if err := b.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	view := b.View("generating")
	if len(view.Posts) != 2 || view.Total != 3 {
		t.Fatalf("view = %+v", view)
	}
	if all := b.View(""); len(all.Posts) != 3 || all.Filter != FilterAll {
		t.Fatalf("all view = %+v", all)
	}
	if none := b.View("failed"); len(none.Posts) != 0 {
		t.Fatalf("failed view = %+v", none)
	}
	if st.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", st.listCalls)
	}
}

func TestBoardAutoRefresh(t *testing.T) {
	st := newFakeStore(post.Post{ID: "a"})
	ticker := newManualTicker()
	b := NewBoard(st, 50, time.Second)
	b.poller.newTicker = ticker.factory

	if !b.StartAutoRefresh(context.Background()) {
		t.Fatal("expected auto refresh to start")
	}
	if b.StartAutoRefresh(context.Background()) {
		t.Fatal("second start should be a no-op")
	}
	ticker.ch <- time.Now()
	ticker.ch <- time.Now()
	b.Close()

	if got := st.calls(); got < 1 {
		t.Fatalf("list calls = %d, want at least 1", got)
	}
	if b.Refreshing() {
		t.Fatal("auto refresh should be stopped")
	}
}
