package devserver

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/jrsteele09/betatips/games"
	"github.com/jrsteele09/betatips/users"
	"github.com/rs/zerolog/log"
)

// InitialiseSystem creates the admin account if it doesn't exist.
// Returns the generated password on first creation (empty string if already exists)
func (s *Server) InitialiseSystem() (generatedPassword string, err error) {
	username := s.config.GetAdminUsername()

	existing, err := s.repos.Users.GetByUsername(username)
	if err == nil && existing != nil {
		log.Printf("[devserver InitialiseSystem] Admin user already exists: %s", username)
		return "", nil
	}

	generatedPassword = s.config.GetAdminPassword()
	if generatedPassword == "" {
		passwordBytes := make([]byte, 12)
		if _, err := rand.Read(passwordBytes); err != nil {
			return "", fmt.Errorf("[devserver InitialiseSystem] failed to generate password: %w", err)
		}
		generatedPassword = base64.URLEncoding.EncodeToString(passwordBytes)
	}

	passwordHash, err := users.HashPassword(generatedPassword)
	if err != nil {
		return "", fmt.Errorf("[devserver InitialiseSystem] failed to hash password: %w", err)
	}

	admin := &users.User{
		Username:     username,
		Email:        username + "@betatips.local",
		PasswordHash: passwordHash,
		IsAdmin:      true,
		IsActive:     true,
		HasPaid:      true,
		CreatedAt:    s.nowTime(),
	}
	if err := s.repos.Users.Upsert(admin); err != nil {
		return "", fmt.Errorf("[devserver InitialiseSystem] failed to create admin user: %w", err)
	}

	log.Printf("👤 Admin Credentials:")
	log.Printf("   Username:    %s", username)
	log.Printf("   Password:    %s", generatedPassword)
	log.Printf("")
	return generatedPassword, nil
}

// Seed publishes a handful of tips around today so a fresh server has something to show.
func (s *Server) Seed() error {
	today := s.nowTime()
	at := func(days, hour int) time.Time {
		d := today.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location())
	}

	samples := []games.Game{
		{HomeTeam: "Arsenal", AwayTeam: "Chelsea", Prediction: "Home Win", Odds: 1.85, Category: games.CategoryAll, MatchTime: at(0, 16)},
		{HomeTeam: "Barcelona", AwayTeam: "Sevilla", Prediction: "Over 2.5", Odds: 1.60, Category: games.CategoryOverUnder, MatchTime: at(0, 20)},
		{HomeTeam: "Bayern", AwayTeam: "Mainz", Prediction: "Home Win", Odds: 1.30, Category: games.CategorySure, MatchTime: at(0, 15)},
		{HomeTeam: "Napoli", AwayTeam: "Roma", Prediction: "BTTS", Odds: 2.10, Category: games.CategoryBonus, MatchTime: at(0, 19)},
		{HomeTeam: "PSG", AwayTeam: "Lyon", Prediction: "Home Win & Over 1.5", Odds: 2.40, Category: games.CategoryVIP, MatchTime: at(0, 21)},
		{HomeTeam: "Ajax", AwayTeam: "PSV", Prediction: "Draw", Odds: 3.20, Category: games.CategoryAll, MatchTime: at(-1, 18), Result: games.ResultLoss},
		{HomeTeam: "Porto", AwayTeam: "Benfica", Prediction: "Under 3.5", Odds: 1.45, Category: games.CategoryOverUnder, MatchTime: at(-1, 20), Result: games.ResultWin},
		{HomeTeam: "Celtic", AwayTeam: "Rangers", Prediction: "Home Win", Odds: 2.00, Category: games.CategoryAll, MatchTime: at(1, 13)},
	}
	for i := range samples {
		g := samples[i]
		g.RawCategory = g.Category.String()
		if err := s.repos.Games.Create(&g); err != nil {
			return fmt.Errorf("[devserver Seed] failed to create game: %w", err)
		}
	}
	log.Info().Int("games", len(samples)).Msg("seeded sample tips")
	return nil
}
