package games

import "time"

// Repo stores published tips. It backs the development server.
type Repo interface {
	Create(game *Game) error
	Get(ID string) (*Game, error)
	List() ([]*Game, error)
	ListByDay(from, to time.Time) ([]*Game, error) // MatchTime in [from, to)
	Delete(ID string) error
	SetResult(ID string, result Result) (*Game, error)
}
