package session

import (
	"context"
	"sync"

	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"github.com/louisbranch/postdesk/internal/services/postdesk/store"
)

type fakeStore struct {
	mu        sync.Mutex
	posts     map[string]post.Post
	list      []post.Post
	listErr   error
	selectErr error
	listCalls int
	// listFn, when set, answers ListPosts outside the lock.
	listFn   func(call int) ([]post.Post, error)
	selected []string
	statuses []post.Status
}

func newFakeStore(posts ...post.Post) *fakeStore {
	s := &fakeStore{posts: map[string]post.Post{}}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	s.list = posts
	return s
}

func (s *fakeStore) ListPosts(context.Context, store.ListOptions) ([]post.Post, error) {
	s.mu.Lock()
	s.listCalls++
	if fn, call := s.listFn, s.listCalls; fn != nil {
		s.mu.Unlock()
		return fn(call)
	}
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]post.Post(nil), s.list...), nil
}

func (s *fakeStore) GetPost(_ context.Context, id string) (post.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return post.Post{}, apperrors.New(apperrors.CodePostNotFound, "post not found")
	}
	return p, nil
}

func (s *fakeStore) CreatePost(context.Context, post.Draft) (post.Post, error) {
	return post.Post{}, nil
}

func (s *fakeStore) SelectContent(_ context.Context, postID, contentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectErr != nil {
		return s.selectErr
	}
	s.selected = append(s.selected, contentID)
	p := s.posts[postID]
	p.SelectedContentID = contentID
	s.posts[postID] = p
	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, postID string, status post.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, status)
	p := s.posts[postID]
	p.Status = status
	s.posts[postID] = p
	return nil
}

func (s *fakeStore) Ping(context.Context) error { return nil }

func (s *fakeStore) setPost(p post.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = p
}

func (s *fakeStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCalls + len(s.selected) + len(s.statuses)
}

type fakeGenerator struct {
	contentCalls []string
	imageCalls   [][2]string
	err          error
}

func (g *fakeGenerator) GenerateContent(_ context.Context, postID string) error {
	if g.err != nil {
		return g.err
	}
	g.contentCalls = append(g.contentCalls, postID)
	return nil
}

func (g *fakeGenerator) GenerateImages(_ context.Context, postID, contentID string) error {
	if g.err != nil {
		return g.err
	}
	g.imageCalls = append(g.imageCalls, [2]string{postID, contentID})
	return nil
}
