package community

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/notify"
	"github.com/jrsteele09/betatips/posts"
	"github.com/jrsteele09/betatips/session"
	"github.com/jrsteele09/betatips/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSession struct {
	user *users.User
}

func (s staticSession) Snapshot() session.Snapshot {
	return session.Snapshot{User: s.user, HasToken: s.user != nil}
}

type fakeAPI struct {
	created  []string
	replies  map[string][]string
	deleted  []string
	failNext error
}

func (f *fakeAPI) Posts(context.Context) ([]posts.Post, error) {
	return []posts.Post{{ID: "p1", Content: "hello"}}, nil
}

func (f *fakeAPI) CreatePost(_ context.Context, content string) (*posts.Post, error) {
	if f.failNext != nil {
		return nil, f.failNext
	}
	f.created = append(f.created, content)
	return &posts.Post{ID: "p2", Content: content}, nil
}

func (f *fakeAPI) ReplyToPost(_ context.Context, postID, content string) (*posts.Post, error) {
	if f.replies == nil {
		f.replies = map[string][]string{}
	}
	f.replies[postID] = append(f.replies[postID], content)
	return &posts.Post{ID: postID}, nil
}

func (f *fakeAPI) DeletePost(_ context.Context, postID string) error {
	f.deleted = append(f.deleted, postID)
	return nil
}

func TestBoardRequiresSession(t *testing.T) {
	rec := &notify.Recorder{}
	b, err := NewBoard(&fakeAPI{}, staticSession{}, rec)
	require.NoError(t, err)

	_, err = b.Posts(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotAuthenticated)
	assert.Equal(t, MsgLoginRequired, rec.Last().Message)
}

func TestBoardPostAndReply(t *testing.T) {
	remote := &fakeAPI{}
	rec := &notify.Recorder{}
	b, err := NewBoard(remote, staticSession{user: &users.User{ID: "u1", Username: "bob"}}, rec)
	require.NoError(t, err)

	list, err := b.Posts(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = b.Post(context.Background(), "   \n\t")
	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	assert.Equal(t, MsgEmptyPost, rec.Last().Message)
	assert.Empty(t, remote.created)

	_, err = b.Post(context.Background(), "  Big match tonight  ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Big match tonight"}, remote.created)
	assert.Equal(t, MsgPostShared, rec.Last().Message)

	_, err = b.Reply(context.Background(), "p1", "")
	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)
	assert.Equal(t, MsgEmptyReply, rec.Last().Message)

	_, err = b.Reply(context.Background(), "p1", "agreed")
	require.NoError(t, err)
	assert.Equal(t, []string{"agreed"}, remote.replies["p1"])

	remote.failNext = errors.New("offline")
	_, err = b.Post(context.Background(), "again")
	require.Error(t, err)
	assert.Equal(t, MsgPostFailed, rec.Last().Message)
}

func TestBoardDeleteIsAdminOnly(t *testing.T) {
	remote := &fakeAPI{}
	member, err := NewBoard(remote, staticSession{user: &users.User{ID: "u1"}}, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, member.Delete(context.Background(), "p1"), apperrors.ErrNotAuthorized)
	assert.Empty(t, remote.deleted)

	admin, err := NewBoard(remote, staticSession{user: &users.User{ID: "a", IsAdmin: true}}, nil)
	require.NoError(t, err)
	require.NoError(t, admin.Delete(context.Background(), "p1"))
	assert.Equal(t, []string{"p1"}, remote.deleted)
}
