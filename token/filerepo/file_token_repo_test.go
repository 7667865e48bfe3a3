package filerepo

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenRepoRoundTrip(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "nested"))

	_, err := repo.Load()
	assert.ErrorIs(t, err, apperrors.ErrNoToken)

	require.NoError(t, repo.Save("first"))
	require.NoError(t, repo.Save("second"))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(repo.Path())
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(repo.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")

	require.NoError(t, repo.Clear())
	_, err = repo.Load()
	assert.ErrorIs(t, err, apperrors.ErrNoToken)

	require.NoError(t, repo.Clear(), "clearing twice is not an error")
}

func TestFileTokenRepoBlankFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("  \n"), 0o600))

	_, err := New(dir).Load()
	assert.ErrorIs(t, err, apperrors.ErrNoToken)
}
