package community

import (
	"context"
	"strings"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/notify"
	"github.com/jrsteele09/betatips/posts"
	"github.com/jrsteele09/betatips/session"
	"github.com/pkg/errors"
)

const (
	MsgEmptyPost     = "Please write something before posting!"
	MsgEmptyReply    = "Please write a reply!"
	MsgPostShared    = "Post shared with community!"
	MsgPostFailed    = "Error posting to community"
	MsgReplyAdded    = "Reply added!"
	MsgReplyFailed   = "Error adding reply"
	MsgPostDeleted   = "Post deleted successfully!"
	MsgDeleteFailed  = "Error deleting post"
	MsgLoadFailed    = "Error loading community posts"
	MsgLoginRequired = "Please log in to join the community"
)

// API is the community part of the remote API.
type API interface {
	Posts(ctx context.Context) ([]posts.Post, error)
	CreatePost(ctx context.Context, content string) (*posts.Post, error)
	ReplyToPost(ctx context.Context, postID, content string) (*posts.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

// SessionView exposes the current session snapshot.
type SessionView interface {
	Snapshot() session.Snapshot
}

// Board is the community discussion board for signed-in users. Only admins may delete.
type Board struct {
	api      API
	session  SessionView
	notifier notify.Notifier
}

func NewBoard(remote API, sess SessionView, notifier notify.Notifier) (*Board, error) {
	if remote == nil {
		return nil, errors.New("[NewBoard] api is required")
	}
	if sess == nil {
		return nil, errors.New("[NewBoard] session is required")
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Board{api: remote, session: sess, notifier: notifier}, nil
}

func (b *Board) requireUser() error {
	if !b.session.Snapshot().Authenticated() {
		notify.Error(b.notifier, MsgLoginRequired)
		return apperrors.ErrNotAuthenticated
	}
	return nil
}

func (b *Board) Posts(ctx context.Context) ([]posts.Post, error) {
	if err := b.requireUser(); err != nil {
		return nil, err
	}
	list, err := b.api.Posts(ctx)
	if err != nil {
		notify.Error(b.notifier, MsgLoadFailed)
		return nil, errors.Wrap(err, "[Board.Posts]")
	}
	return list, nil
}

func (b *Board) Post(ctx context.Context, content string) (*posts.Post, error) {
	if err := b.requireUser(); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		notify.Error(b.notifier, MsgEmptyPost)
		return nil, apperrors.ErrEmptyContent
	}
	created, err := b.api.CreatePost(ctx, content)
	if err != nil {
		notify.Error(b.notifier, MsgPostFailed)
		return nil, errors.Wrap(err, "[Board.Post]")
	}
	notify.Success(b.notifier, MsgPostShared)
	return created, nil
}

func (b *Board) Reply(ctx context.Context, postID, content string) (*posts.Post, error) {
	if err := b.requireUser(); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		notify.Error(b.notifier, MsgEmptyReply)
		return nil, apperrors.ErrEmptyContent
	}
	updated, err := b.api.ReplyToPost(ctx, postID, content)
	if err != nil {
		notify.Error(b.notifier, MsgReplyFailed)
		return nil, errors.Wrap(err, "[Board.Reply]")
	}
	notify.Success(b.notifier, MsgReplyAdded)
	return updated, nil
}

func (b *Board) Delete(ctx context.Context, postID string) error {
	if err := b.requireUser(); err != nil {
		return err
	}
	if !b.session.Snapshot().IsAdmin() {
		notify.Error(b.notifier, MsgDeleteFailed)
		return apperrors.ErrNotAuthorized
	}
	if err := b.api.DeletePost(ctx, postID); err != nil {
		notify.Error(b.notifier, MsgDeleteFailed)
		return errors.Wrap(err, "[Board.Delete]")
	}
	notify.Success(b.notifier, MsgPostDeleted)
	return nil
}
