package devserver

import (
	"net/http"
	"time"

	"github.com/jrsteele09/betatips/games"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
)

const dayLayout = "2006-01-02"

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Games.List()
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GamesByDateHandler lists games kicking off on the given calendar day in the server's
// local time zone.
func (s *Server) GamesByDateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("day")
		loc := s.nowTime().Location()
		day, err := time.ParseInLocation(dayLayout, key, loc)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		// The window is padded by an hour each side; a skipped midnight can start the day early.
		list, err := s.repos.Games.ListByDay(day.Add(-time.Hour), day.AddDate(0, 0, 1).Add(time.Hour))
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		onDay := list[:0]
		for _, g := range list {
			if g.MatchTime.In(loc).Format(dayLayout) == key {
				onDay = append(onDay, g)
			}
		}
		writeJSON(w, http.StatusOK, onDay)
	}
}

func (s *Server) CreateGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			HomeTeam   string    `json:"homeTeam"`
			AwayTeam   string    `json:"awayTeam"`
			Prediction string    `json:"prediction"`
			Odds       float64   `json:"odds"`
			League     string    `json:"league"`
			GameTime   time.Time `json:"gameTime"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		category, catErr := games.ParseCategory(body.League)
		req := games.NewGame{
			HomeTeam:   body.HomeTeam,
			AwayTeam:   body.AwayTeam,
			Prediction: body.Prediction,
			Odds:       body.Odds,
			Category:   category,
			MatchTime:  body.GameTime,
		}
		if problems := gameProblems(&req, catErr); len(problems) > 0 {
			writeValidation(w, problems)
			return
		}

		game := &games.Game{
			HomeTeam:    req.HomeTeam,
			AwayTeam:    req.AwayTeam,
			Prediction:  req.Prediction,
			Odds:        req.Odds,
			Category:    req.Category,
			RawCategory: req.Category.String(),
			MatchTime:   req.MatchTime,
		}
		if err := s.repos.Games.Create(game); err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, game)
	}
}

// gameProblems validates (and trims) req, reporting each problem separately.
func gameProblems(req *games.NewGame, categoryErr error) []string {
	if err := req.Validate(); err == nil && categoryErr == nil {
		return nil
	}
	var problems []string
	if req.HomeTeam == "" {
		problems = append(problems, "Home team is required")
	}
	if req.AwayTeam == "" {
		problems = append(problems, "Away team is required")
	}
	if req.Prediction == "" {
		problems = append(problems, "Prediction is required")
	}
	if req.Odds <= 1.0 {
		problems = append(problems, "Odds must be greater than 1.0")
	}
	if req.MatchTime.IsZero() {
		problems = append(problems, "Game time is required")
	}
	if categoryErr != nil {
		problems = append(problems, "Invalid category")
	}
	return problems
}

func (s *Server) DeleteGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.repos.Games.Delete(r.PathValue("id"))
		if apperrors.Is(err, apperrors.ErrNotFound) {
			writeMessage(w, http.StatusNotFound, "Game not found")
			return
		}
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "Game deleted")
	}
}

func (s *Server) SetResultHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Result string `json:"result"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		result, err := games.ParseResult(body.Result)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Result must be win or loss")
			return
		}

		updated, err := s.repos.Games.SetResult(r.PathValue("id"), result)
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			writeMessage(w, http.StatusNotFound, "Game not found")
		case apperrors.Is(err, apperrors.ErrResultAlreadySet):
			writeMessage(w, http.StatusBadRequest, "Result already set")
		case err != nil:
			writeServerError(w, r, err)
		default:
			writeJSON(w, http.StatusOK, updated)
		}
	}
}
