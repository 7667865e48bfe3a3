package tokenfakerepo

import (
	"errors"
	"testing"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeTokenRepo(t *testing.T) {
	repo := NewFakeTokenRepo("")

	_, err := repo.Load()
	assert.ErrorIs(t, err, apperrors.ErrNoToken)

	require.NoError(t, repo.Save("abc"))
	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	repo.ClearErr = errors.New("disk full")
	assert.Error(t, repo.Clear())
	assert.Equal(t, "abc", repo.Stored())

	repo.ClearErr = nil
	require.NoError(t, repo.Clear())
	assert.Empty(t, repo.Stored())
}
