package devserver

import (
	"net/http"
	"net/mail"
	"strings"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/users"
	"github.com/rs/zerolog/log"
)

const minUsernameLength = 3

type authResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		username := strings.TrimSpace(body.Username)
		if username == "" || body.Password == "" {
			writeMessage(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		user, err := s.repos.Users.GetByUsername(username)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			writeServerError(w, r, err)
			return
		}
		if user == nil || !users.CheckPasswordHash(body.Password, user.PasswordHash) {
			log.Info().Str("username", username).Msg("failed login")
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !user.IsActive {
			writeMessage(w, http.StatusForbidden, "Account has been deactivated")
			return
		}
		s.issueToken(w, r, http.StatusOK, user)
	}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		username := strings.TrimSpace(body.Username)
		email := strings.TrimSpace(body.Email)

		var problems []string
		if len(username) < minUsernameLength {
			problems = append(problems, "Username must be at least 3 characters")
		}
		if _, err := mail.ParseAddress(email); err != nil {
			problems = append(problems, "Please provide a valid email")
		}
		if len(body.Password) < users.MinPasswordLength {
			problems = append(problems, "Password must be at least 6 characters")
		}
		if len(problems) > 0 {
			writeValidation(w, problems)
			return
		}

		if existing, _ := s.repos.Users.GetByUsername(username); existing != nil {
			writeMessage(w, http.StatusBadRequest, "Username already exists")
			return
		}

		hash, err := users.HashPassword(body.Password)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		user := &users.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			IsActive:     true,
			CreatedAt:    s.nowTime(),
		}
		if err := s.repos.Users.Upsert(user); err != nil {
			writeServerError(w, r, err)
			return
		}
		log.Info().Str("username", username).Msg("user registered")
		s.issueToken(w, r, http.StatusCreated, user)
	}
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, status int, user *users.User) {
	token, err := s.tokens.CreateAccessToken(user.ID)
	if err != nil {
		writeServerError(w, r, err)
		return
	}
	writeJSON(w, status, authResponse{Token: token, User: user})
}

func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, userFromContext(r.Context()))
	}
}

func (s *Server) ChangePasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := decodeBody(r, &body); err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		user := userFromContext(r.Context())
		if !users.CheckPasswordHash(body.CurrentPassword, user.PasswordHash) {
			writeMessage(w, http.StatusBadRequest, "Current password is incorrect")
			return
		}
		if len(body.NewPassword) < users.MinPasswordLength {
			writeMessage(w, http.StatusBadRequest, "New password must be at least 6 characters")
			return
		}
		hash, err := users.HashPassword(body.NewPassword)
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		if err := s.repos.Users.SetPasswordHash(user.ID, hash); err != nil {
			writeServerError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "Password changed successfully")
	}
}
