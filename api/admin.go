package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/betatips/users"
)

func (c *Client) Users(ctx context.Context) ([]users.User, error) {
	var list []users.User
	if err := c.do(ctx, http.MethodGet, RouteAdminUsers, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) SetUserVIP(ctx context.Context, id string, hasPaid bool) (*users.User, error) {
	var u users.User
	body := map[string]bool{"hasPaid": hasPaid}
	if err := c.do(ctx, http.MethodPatch, pathf(RouteAdminUserVIP, id), body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) SetUserActive(ctx context.Context, id string, isActive bool) (*users.User, error) {
	var u users.User
	body := map[string]bool{"isActive": isActive}
	if err := c.do(ctx, http.MethodPatch, pathf(RouteAdminUserStatus, id), body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
