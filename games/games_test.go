package games_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jrsteele09/betatips/games"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range games.Categories {
		parsed, err := games.ParseCategory(c.String())
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}

	_, err := games.ParseCategory("Value Tips")
	require.ErrorIs(t, err, apperrors.ErrUnknownCategory)

	_, err = games.ParseCategory("vip tips")
	require.Error(t, err, "wire names are matched exactly")
}

func TestLookupCategory(t *testing.T) {
	tests := map[string]games.Category{
		"vip":        games.CategoryVIP,
		" VIP Tips ": games.CategoryVIP,
		"over/under": games.CategoryOverUnder,
		"bonus":      games.CategoryBonus,
		"all":        games.CategoryAll,
		"Sure Tips":  games.CategorySure,
	}
	for input, want := range tests {
		got, err := games.LookupCategory(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
	_, err := games.LookupCategory("value")
	require.Error(t, err)
}

func TestGameUnmarshal(t *testing.T) {
	var g games.Game
	raw := `{"_id":"g1","homeTeam":"Arsenal","awayTeam":"Chelsea","prediction":"Over 2.5","odds":1.85,"category":"Sure Tips","matchTime":"2026-10-16T18:00:00Z","result":"win"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	require.Equal(t, "g1", g.ID)
	require.Equal(t, games.CategorySure, g.Category)
	require.Equal(t, games.ResultWin, g.Result)
	require.True(t, g.Settled())
	require.Equal(t, "Arsenal vs Chelsea", g.Matchup())

	var unknown games.Game
	require.NoError(t, json.Unmarshal([]byte(`{"id":"g2","category":"Value Tips"}`), &unknown))
	require.Equal(t, games.CategoryUnknown, unknown.Category)
	require.Equal(t, "Value Tips", unknown.RawCategory)
	require.False(t, unknown.Settled())
}

func TestParseResult(t *testing.T) {
	r, err := games.ParseResult(" WIN ")
	require.NoError(t, err)
	require.Equal(t, games.ResultWin, r)

	_, err = games.ParseResult("draw")
	require.ErrorIs(t, err, apperrors.ErrInvalidResult)
	_, err = games.ParseResult("")
	require.ErrorIs(t, err, apperrors.ErrInvalidResult)
}

func TestNewGameValidate(t *testing.T) {
	valid := games.NewGame{
		HomeTeam:   " Arsenal ",
		AwayTeam:   "Chelsea",
		Prediction: "1X",
		Odds:       1.5,
		Category:   games.CategoryBonus,
		MatchTime:  time.Now().Add(time.Hour),
	}

	t.Run("valid trims", func(t *testing.T) {
		g := valid
		require.NoError(t, g.Validate())
		require.Equal(t, "Arsenal", g.HomeTeam)
	})

	t.Run("odds must exceed one", func(t *testing.T) {
		g := valid
		g.Odds = 1.0
		err := g.Validate()
		require.ErrorIs(t, err, apperrors.ErrInvalidGame)
		require.Contains(t, err.Error(), "Valid odds are required")
	})

	t.Run("collects every problem", func(t *testing.T) {
		g := games.NewGame{HomeTeam: "  "}
		err := g.Validate()
		require.Error(t, err)
		for _, msg := range []string{"Home team", "Away team", "Prediction", "odds", "Category", "Match time"} {
			require.Contains(t, err.Error(), msg)
		}
	})
}

func TestNewGameWireFormat(t *testing.T) {
	when := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)
	data, err := json.Marshal(games.NewGame{HomeTeam: "A", AwayTeam: "B", Prediction: "1", Odds: 2, Category: games.CategoryVIP, MatchTime: when})
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	require.Equal(t, "VIP Tips", wire["league"])
	require.Equal(t, "2026-10-16T18:00:00Z", wire["gameTime"])
	require.NotContains(t, wire, "category")
}

func TestSummarize(t *testing.T) {
	list := []games.Game{
		{Result: games.ResultWin},
		{Result: games.ResultWin},
		{Result: games.ResultLoss},
		{},
	}
	s := games.Summarize(list)
	require.Equal(t, 4, s.TotalTips)
	require.Equal(t, 2, s.Wins)
	require.Equal(t, 1, s.Losses)
	require.Equal(t, 1, s.Pending)
	require.InDelta(t, 66.7, s.WinRate, 0.001)

	require.Zero(t, games.Summarize([]games.Game{{}}).WinRate)
}
