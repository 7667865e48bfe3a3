package fakegamerepo

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/betatips/games"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
)

var _ games.Repo = (*FakeGameRepo)(nil)

type FakeGameRepo struct {
	games map[string]*games.Game
	order []string // insertion order
	lock  sync.RWMutex
}

func NewFakeGameRepo() *FakeGameRepo {
	return &FakeGameRepo{games: make(map[string]*games.Game)}
}

func (gr *FakeGameRepo) Create(game *games.Game) error {
	gr.lock.Lock()
	defer gr.lock.Unlock()

	if game.ID == "" {
		game.ID = uuid.New().String()
	}
	copied := *game
	if _, exists := gr.games[game.ID]; !exists {
		gr.order = append(gr.order, game.ID)
	}
	gr.games[game.ID] = &copied
	return nil
}

func (gr *FakeGameRepo) Get(ID string) (*games.Game, error) {
	gr.lock.RLock()
	defer gr.lock.RUnlock()

	g, ok := gr.games[ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

// List returns every game, most recent kick-off first.
func (gr *FakeGameRepo) List() ([]*games.Game, error) {
	list := gr.filter(func(*games.Game) bool { return true })
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].MatchTime.After(list[j].MatchTime)
	})
	return list, nil
}

// ListByDay returns the games kicking off in [from, to), in insertion order.
func (gr *FakeGameRepo) ListByDay(from, to time.Time) ([]*games.Game, error) {
	return gr.filter(func(g *games.Game) bool {
		return !g.MatchTime.Before(from) && g.MatchTime.Before(to)
	}), nil
}

func (gr *FakeGameRepo) filter(keep func(*games.Game) bool) []*games.Game {
	gr.lock.RLock()
	defer gr.lock.RUnlock()

	list := make([]*games.Game, 0, len(gr.order))
	for _, id := range gr.order {
		if g := gr.games[id]; keep(g) {
			copied := *g
			list = append(list, &copied)
		}
	}
	return list
}

func (gr *FakeGameRepo) Delete(ID string) error {
	gr.lock.Lock()
	defer gr.lock.Unlock()

	if _, ok := gr.games[ID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(gr.games, ID)
	for i, id := range gr.order {
		if id == ID {
			gr.order = append(gr.order[:i], gr.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetResult settles a pending game. Settled games are never changed.
func (gr *FakeGameRepo) SetResult(ID string, result games.Result) (*games.Game, error) {
	gr.lock.Lock()
	defer gr.lock.Unlock()

	g, ok := gr.games[ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if g.Settled() {
		return nil, apperrors.ErrResultAlreadySet
	}
	g.Result = result
	copied := *g
	return &copied, nil
}
