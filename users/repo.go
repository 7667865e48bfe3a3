package users

import "time"

type UserRepo interface {
	Upsert(user *User) error
	GetByID(ID string) (*User, error)
	GetByUsername(username string) (*User, error)
	List() ([]*User, error)
	SetPaid(ID string, paid bool, expiry *time.Time) error
	SetActive(ID string, active bool) error
	SetPasswordHash(ID, hash string) error
}
