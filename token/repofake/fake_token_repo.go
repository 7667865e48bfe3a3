package tokenfakerepo

import (
	"sync"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/token"
)

var _ token.Repo = (*FakeTokenRepo)(nil)

// FakeTokenRepo keeps the token in memory. SaveErr and ClearErr, when set, are returned
// by the matching call without changing the stored value.
type FakeTokenRepo struct {
	token    string
	SaveErr  error
	ClearErr error
	lock     sync.RWMutex
}

func NewFakeTokenRepo(initial string) *FakeTokenRepo {
	return &FakeTokenRepo{token: initial}
}

func (tr *FakeTokenRepo) Load() (string, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	if tr.token == "" {
		return "", apperrors.ErrNoToken
	}
	return tr.token, nil
}

func (tr *FakeTokenRepo) Save(token string) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tr.SaveErr != nil {
		return tr.SaveErr
	}
	tr.token = token
	return nil
}

func (tr *FakeTokenRepo) Clear() error {
	tr.lock.Lock()
	defer tr.lock.Unlock()
	if tr.ClearErr != nil {
		return tr.ClearErr
	}
	tr.token = ""
	return nil
}

// Stored returns the raw stored value, "" when empty.
func (tr *FakeTokenRepo) Stored() string {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return tr.token
}
