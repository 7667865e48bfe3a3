package sqliterepo

import (
	"path/filepath"
	"testing"

	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TokenRepoTestSuite runs against a private in-memory database
type TokenRepoTestSuite struct {
	suite.Suite
	repo *SQLiteTokenRepo
}

func (suite *TokenRepoTestSuite) SetupTest() {
	repo, err := New(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.repo = repo
}

func (suite *TokenRepoTestSuite) TearDownTest() {
	if suite.repo != nil {
		suite.repo.Close()
	}
}

func (suite *TokenRepoTestSuite) TestLoadEmpty() {
	_, err := suite.repo.Load()
	assert.ErrorIs(suite.T(), err, apperrors.ErrNoToken)
}

func (suite *TokenRepoTestSuite) TestSaveOverwrites() {
	require.NoError(suite.T(), suite.repo.Save("one"))
	require.NoError(suite.T(), suite.repo.Save("two"))

	got, err := suite.repo.Load()
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "two", got)

	var rows int
	require.NoError(suite.T(), suite.repo.conn.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	assert.Equal(suite.T(), 1, rows)
}

func (suite *TokenRepoTestSuite) TestClear() {
	require.NoError(suite.T(), suite.repo.Save("one"))
	require.NoError(suite.T(), suite.repo.Clear())

	_, err := suite.repo.Load()
	assert.ErrorIs(suite.T(), err, apperrors.ErrNoToken)
}

func TestTokenRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TokenRepoTestSuite))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "betatips.db")

	repo, err := New(path)
	require.NoError(t, err)
	require.NoError(t, repo.Save("persisted"))
	require.NoError(t, repo.Close())

	repo, err = New(path)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, "persisted", got)
}
