package tips

import (
	"context"

	"github.com/jrsteele09/betatips/games"
	"github.com/pkg/errors"
)

const MsgNoGames = "No games posted for this date yet."

// Viewer is what gating needs to know about the session. session.Snapshot satisfies it.
type Viewer interface {
	HasPaid() bool
}

// IsLocked reports whether the content of c is behind the paywall for v.
func IsLocked(c games.Category, v Viewer) bool {
	return c == games.CategoryVIP && (v == nil || !v.HasPaid())
}

// Card is the presentation view of one bucket. A locked card carries no games.
type Card struct {
	Category games.Category
	Title    string
	Locked   bool
	Paywall  string
	Games    []games.Game
}

func (c Card) Empty() bool {
	return !c.Locked && len(c.Games) == 0
}

// Cards builds one card per known category, in display order.
func Cards(set BucketSet, v Viewer) []Card {
	cards := make([]Card, 0, len(games.Categories))
	for _, b := range set.Buckets() {
		card := Card{Category: b.Category, Title: b.Category.String()}
		if IsLocked(b.Category, v) {
			card.Locked = true
			card.Paywall = "Subscribe to access " + card.Title
		} else {
			card.Games = b.Games
		}
		cards = append(cards, card)
	}
	return cards
}

// GamesLister lists every published tip.
type GamesLister interface {
	Games(ctx context.Context) ([]games.Game, error)
}

// LoadStats computes the public track record.
func LoadStats(ctx context.Context, src GamesLister) (games.Stats, error) {
	list, err := src.Games(ctx)
	if err != nil {
		return games.Stats{}, errors.Wrap(err, "[LoadStats]")
	}
	return games.Summarize(list), nil
}
