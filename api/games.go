package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/betatips/games"
)

// GamesByDate lists the tips for one calendar day; day is "YYYY-MM-DD".
func (c *Client) GamesByDate(ctx context.Context, day string) ([]games.Game, error) {
	var list []games.Game
	if err := c.do(ctx, http.MethodGet, pathf(RouteGamesByDate, day), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Games lists every published tip (used for the track-record stats).
func (c *Client) Games(ctx context.Context) ([]games.Game, error) {
	var list []games.Game
	if err := c.do(ctx, http.MethodGet, RouteGames, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) AllGames(ctx context.Context) ([]games.Game, error) {
	var list []games.Game
	if err := c.do(ctx, http.MethodGet, RouteGamesAll, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) CreateGame(ctx context.Context, game games.NewGame) (*games.Game, error) {
	var created games.Game
	if err := c.do(ctx, http.MethodPost, RouteGames, game, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteGame(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathf(RouteGame, id), nil, nil)
}

func (c *Client) SetGameResult(ctx context.Context, id string, result games.Result) (*games.Game, error) {
	var updated games.Game
	body := map[string]games.Result{"result": result}
	if err := c.do(ctx, http.MethodPatch, pathf(RouteGameResult, id), body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
