package fakeuserrepo

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users       map[string]*users.User
	usernameIds map[string]string // lower-cased username to user id
	lock        sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:       make(map[string]*users.User),
		usernameIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	copied := *user
	ur.users[user.ID] = &copied
	ur.usernameIds[strings.ToLower(user.Username)] = user.ID
	return nil
}

func (ur *FakeUserRepo) GetByID(ID string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (ur *FakeUserRepo) GetByUsername(username string) (*users.User, error) {
	ur.lock.RLock()
	userID, ok := ur.usernameIds[strings.ToLower(username)]
	ur.lock.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return ur.GetByID(userID)
}

func (ur *FakeUserRepo) List() ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	list := make([]*users.User, 0, len(ur.users))
	for _, u := range ur.users {
		copied := *u
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

func (ur *FakeUserRepo) SetPaid(ID string, paid bool, expiry *time.Time) error {
	return ur.update(ID, func(u *users.User) {
		u.HasPaid = paid
		u.VIPExpiryDate = expiry
	})
}

func (ur *FakeUserRepo) SetActive(ID string, active bool) error {
	return ur.update(ID, func(u *users.User) { u.IsActive = active })
}

func (ur *FakeUserRepo) SetPasswordHash(ID, hash string) error {
	return ur.update(ID, func(u *users.User) { u.PasswordHash = hash })
}

func (ur *FakeUserRepo) update(ID string, fn func(*users.User)) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	user, ok := ur.users[ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	fn(user)
	return nil
}
