package filerepo

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/token"
	"github.com/pkg/errors"
)

const fileName = "token"

var _ token.Repo = (*FileTokenRepo)(nil)

// FileTokenRepo stores the token in <folder>/token, readable by the owner only.
type FileTokenRepo struct {
	path string
}

func New(folder string) *FileTokenRepo {
	return &FileTokenRepo{path: filepath.Join(folder, fileName)}
}

func (r *FileTokenRepo) Path() string {
	return r.path
}

func (r *FileTokenRepo) Load() (string, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", apperrors.ErrNoToken
	}
	if err != nil {
		return "", errors.Wrap(err, "[FileTokenRepo.Load] read token file")
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", apperrors.ErrNoToken
	}
	return token, nil
}

// Save writes through a temporary file and rename so a crash never leaves half a token.
func (r *FileTokenRepo) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileTokenRepo.Save] create folder")
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), fileName+".*")
	if err != nil {
		return errors.Wrap(err, "[FileTokenRepo.Save] create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileTokenRepo.Save] write token")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[FileTokenRepo.Save] chmod token")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[FileTokenRepo.Save] close token")
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return errors.Wrap(err, "[FileTokenRepo.Save] rename token")
	}
	return nil
}

func (r *FileTokenRepo) Clear() error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "[FileTokenRepo.Clear] remove token file")
	}
	return nil
}
