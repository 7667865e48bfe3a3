package users

import (
	"encoding/json"
	"fmt"
	"time"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest new password accepted by the change-password flow.
const MinPasswordLength = 6

type User struct {
	ID            string     `json:"id,omitempty"`            // Unique identifier for the user
	Username      string     `json:"username,omitempty"`      // Unique username
	Email         string     `json:"email,omitempty"`         // User's email address
	PasswordHash  string     `json:"-"`                       // Hashed password - never serialize
	HasPaid       bool       `json:"hasPaid"`                 // VIP subscription active
	IsAdmin       bool       `json:"isAdmin"`                 // May use the admin panel
	IsActive      bool       `json:"isActive"`                // False when blocked by an admin
	VIPExpiryDate *time.Time `json:"vipExpiryDate,omitempty"` // End of the paid period, if known
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
}

// UnmarshalJSON accepts the backend's Mongo style "_id" as well as "id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		LegacyID string `json:"_id"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ID = utils.FirstNonEmpty(u.ID, aux.LegacyID)
	return nil
}

// VIPExpiryLabel returns the VIP expiry as a calendar date, or "" when the user is not VIP
// or no expiry is known.
func (u *User) VIPExpiryLabel() string {
	if u == nil || !u.HasPaid {
		return ""
	}
	expiry := utils.Value(u.VIPExpiryDate)
	if expiry.IsZero() {
		return ""
	}
	return expiry.Local().Format("January 2, 2006")
}

// ValidatePasswordChange checks the new password before any network call.
func ValidatePasswordChange(newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperrors.ErrPasswordMismatch
	}
	if len(newPassword) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", apperrors.ErrPasswordTooShort, MinPasswordLength)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Summary holds the admin panel's user counters.
type Summary struct {
	Total   int
	VIP     int
	Active  int
	Blocked int
}

func Summarize(list []User) Summary {
	s := Summary{Total: len(list)}
	for _, u := range list {
		if u.HasPaid {
			s.VIP++
		}
		if u.IsActive {
			s.Active++
		} else {
			s.Blocked++
		}
	}
	return s
}
