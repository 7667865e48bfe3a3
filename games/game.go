package games

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/internal/utils"
)

// Result of a settled tip. The zero value means pending.
type Result string

const (
	ResultPending Result = ""
	ResultWin     Result = "win"
	ResultLoss    Result = "loss"
)

func ParseResult(s string) (Result, error) {
	switch r := Result(strings.ToLower(strings.TrimSpace(s))); r {
	case ResultWin, ResultLoss:
		return r, nil
	}
	return ResultPending, fmt.Errorf("%w: %q", apperrors.ErrInvalidResult, s)
}

func (r Result) Label() string {
	switch r {
	case ResultWin:
		return "WIN"
	case ResultLoss:
		return "LOSS"
	}
	return "Pending"
}

// Game is a single published tip.
type Game struct {
	ID          string    `json:"id"`
	HomeTeam    string    `json:"homeTeam"`
	AwayTeam    string    `json:"awayTeam"`
	Prediction  string    `json:"prediction"`
	Odds        float64   `json:"odds"`
	Category    Category  `json:"-"`
	RawCategory string    `json:"category"` // As received; kept for out-of-set values
	MatchTime   time.Time `json:"matchTime"`
	Result      Result    `json:"result,omitempty"`
}

// UnmarshalJSON resolves the wire category into Category. Unknown names leave
// CategoryUnknown with RawCategory preserved, the decision is the caller's.
func (g *Game) UnmarshalJSON(data []byte) error {
	type plain Game
	aux := struct {
		*plain
		LegacyID string `json:"_id"`
	}{plain: (*plain)(g)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	g.ID = utils.FirstNonEmpty(g.ID, aux.LegacyID)
	g.Category, _ = ParseCategory(g.RawCategory)
	return nil
}

// MarshalJSON writes the canonical category name when the category is known.
func (g Game) MarshalJSON() ([]byte, error) {
	type plain Game
	p := plain(g)
	if g.Category.Known() {
		p.RawCategory = g.Category.String()
	}
	return json.Marshal(p)
}

func (g Game) Settled() bool {
	return g.Result != ResultPending
}

func (g Game) Matchup() string {
	return g.HomeTeam + " vs " + g.AwayTeam
}

// NewGame is the admin create-game request.
type NewGame struct {
	HomeTeam   string
	AwayTeam   string
	Prediction string
	Odds       float64
	Category   Category
	MatchTime  time.Time
}

// Validate trims the text fields and reports every problem found.
func (n *NewGame) Validate() error {
	n.HomeTeam = strings.TrimSpace(n.HomeTeam)
	n.AwayTeam = strings.TrimSpace(n.AwayTeam)
	n.Prediction = strings.TrimSpace(n.Prediction)

	var problems []string
	if n.HomeTeam == "" {
		problems = append(problems, "Home team is required")
	}
	if n.AwayTeam == "" {
		problems = append(problems, "Away team is required")
	}
	if n.Prediction == "" {
		problems = append(problems, "Prediction is required")
	}
	if n.Odds <= 1.0 {
		problems = append(problems, "Valid odds are required (greater than 1.0)")
	}
	if !n.Category.Known() {
		problems = append(problems, "Category is required")
	}
	if n.MatchTime.IsZero() {
		problems = append(problems, "Match time is required")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidGame, strings.Join(problems, ", "))
	}
	return nil
}

// MarshalJSON uses the backend's field names: the category travels as "league" and the
// kick-off as "gameTime".
func (n NewGame) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		HomeTeam   string    `json:"homeTeam"`
		AwayTeam   string    `json:"awayTeam"`
		Prediction string    `json:"prediction"`
		Odds       float64   `json:"odds"`
		League     string    `json:"league"`
		GameTime   time.Time `json:"gameTime"`
	}{n.HomeTeam, n.AwayTeam, n.Prediction, n.Odds, n.Category.String(), n.MatchTime})
}
