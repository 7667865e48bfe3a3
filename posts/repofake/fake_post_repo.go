package fakepostrepo

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/posts"
)

var _ posts.Repo = (*FakePostRepo)(nil)

type FakePostRepo struct {
	posts map[string]*posts.Post
	lock  sync.RWMutex
}

func NewFakePostRepo() *FakePostRepo {
	return &FakePostRepo{posts: make(map[string]*posts.Post)}
}

func (pr *FakePostRepo) Create(post *posts.Post) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	pr.posts[post.ID] = clonePost(post)
	return nil
}

func (pr *FakePostRepo) Get(ID string) (*posts.Post, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	p, ok := pr.posts[ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return clonePost(p), nil
}

func (pr *FakePostRepo) List() ([]*posts.Post, error) {
	pr.lock.RLock()
	defer pr.lock.RUnlock()

	list := make([]*posts.Post, 0, len(pr.posts))
	for _, p := range pr.posts {
		list = append(list, clonePost(p))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (pr *FakePostRepo) AddReply(postID string, reply posts.Reply) (*posts.Post, error) {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	p, ok := pr.posts[postID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if reply.ID == "" {
		reply.ID = uuid.New().String()
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}
	p.Replies = append(p.Replies, reply)
	return clonePost(p), nil
}

func (pr *FakePostRepo) Delete(ID string) error {
	pr.lock.Lock()
	defer pr.lock.Unlock()

	if _, ok := pr.posts[ID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(pr.posts, ID)
	return nil
}

func clonePost(p *posts.Post) *posts.Post {
	copied := *p
	copied.Replies = append([]posts.Reply(nil), p.Replies...)
	return &copied
}
