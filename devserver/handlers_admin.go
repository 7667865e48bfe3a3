package devserver

import (
	"net/http"
	"time"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/internal/utils"
	"github.com/rs/zerolog/log"
)

// vipPeriod is how long a granted VIP subscription lasts.
const vipPeriod = 30 * 24 * time.Hour

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.repos.Users.List()
		if err != nil {
			writeServerError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) SetUserVIPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			HasPaid *bool `json:"hasPaid"`
		}
		if err := decodeBody(r, &body); err != nil || body.HasPaid == nil {
			writeMessage(w, http.StatusBadRequest, "hasPaid is required")
			return
		}
		var expiry *time.Time
		if *body.HasPaid {
			expiry = utils.Ptr(s.nowTime().Add(vipPeriod))
		}
		id := r.PathValue("id")
		s.updateUser(w, r, id, func() error {
			return s.repos.Users.SetPaid(id, *body.HasPaid, expiry)
		})
	}
}

func (s *Server) SetUserStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			IsActive *bool `json:"isActive"`
		}
		if err := decodeBody(r, &body); err != nil || body.IsActive == nil {
			writeMessage(w, http.StatusBadRequest, "isActive is required")
			return
		}
		id := r.PathValue("id")
		if self := userFromContext(r.Context()); self != nil && self.ID == id && !*body.IsActive {
			writeMessage(w, http.StatusBadRequest, "You cannot block your own account")
			return
		}
		s.updateUser(w, r, id, func() error {
			return s.repos.Users.SetActive(id, *body.IsActive)
		})
	}
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request, id string, update func() error) {
	err := update()
	if apperrors.Is(err, apperrors.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeServerError(w, r, err)
		return
	}
	updated, err := s.repos.Users.GetByID(id)
	if err != nil {
		writeServerError(w, r, err)
		return
	}
	log.Info().Str("user", updated.Username).Bool("hasPaid", updated.HasPaid).Bool("isActive", updated.IsActive).Msg("user updated")
	writeJSON(w, http.StatusOK, updated)
}

