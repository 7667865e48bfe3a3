package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/betatips/posts"
)

func (c *Client) Posts(ctx context.Context) ([]posts.Post, error) {
	var list []posts.Post
	if err := c.do(ctx, http.MethodGet, RoutePosts, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreatePost(ctx context.Context, content string) (*posts.Post, error) {
	var p posts.Post
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, RouteCommunityPosts, body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ReplyToPost(ctx context.Context, postID, content string) (*posts.Post, error) {
	var p posts.Post
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, pathf(RoutePostComments, postID), body, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.do(ctx, http.MethodDelete, pathf(RoutePost, postID), nil, nil)
}
