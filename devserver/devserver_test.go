package devserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jrsteele09/betatips/admin"
	"github.com/jrsteele09/betatips/api"
	"github.com/jrsteele09/betatips/community"
	"github.com/jrsteele09/betatips/devserver"
	"github.com/jrsteele09/betatips/games"
	fakegamerepo "github.com/jrsteele09/betatips/games/repofake"
	"github.com/jrsteele09/betatips/internal/config"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/notify"
	fakepostrepo "github.com/jrsteele09/betatips/posts/repofake"
	"github.com/jrsteele09/betatips/session"
	"github.com/jrsteele09/betatips/tips"
	tokenfakerepo "github.com/jrsteele09/betatips/token/repofake"
	fakeuserrepo "github.com/jrsteele09/betatips/users/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminPassword = "admin-pass"

func newTestServer(t *testing.T) (*devserver.Server, devserver.Repos, *httptest.Server) {
	t.Helper()
	t.Setenv("ENV", "TEST")
	t.Setenv("DEV_ADMIN_USERNAME", "admin")
	t.Setenv("DEV_ADMIN_PASSWORD", adminPassword)

	repos := devserver.Repos{
		Users: fakeuserrepo.NewFakeUserRepo(),
		Games: fakegamerepo.NewFakeGameRepo(),
		Posts: fakepostrepo.NewFakePostRepo(),
	}
	srv, err := devserver.New(config.New(), repos)
	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, repos, ts
}

type client struct {
	api      *api.Client
	session  *session.Manager
	notifier *notify.Recorder
	tokens   *tokenfakerepo.FakeTokenRepo
}

func newClient(t *testing.T, baseURL string) *client {
	t.Helper()
	creds := api.NewCredentials()
	remote, err := api.NewClient(baseURL+devserver.APIPrefix, creds)
	require.NoError(t, err)

	recorder := &notify.Recorder{}
	tokens := tokenfakerepo.NewFakeTokenRepo("")
	mgr, err := session.NewManager(remote, creds, tokens, session.WithNotifier(recorder))
	require.NoError(t, err)
	return &client{api: remote, session: mgr, notifier: recorder, tokens: tokens}
}

func TestNew_RequiresRepos(t *testing.T) {
	_, err := devserver.New(config.New(), devserver.Repos{})
	require.Error(t, err)
}

func TestInitialiseSystem_CreatesAdminOnce(t *testing.T) {
	srv, repos, _ := newTestServer(t)

	adminUser, err := repos.Users.GetByUsername("admin")
	require.NoError(t, err)
	assert.True(t, adminUser.IsAdmin)
	assert.True(t, adminUser.IsActive)

	password, err := srv.InitialiseSystem()
	require.NoError(t, err)
	assert.Empty(t, password, "an existing admin is left alone")

	list, err := repos.Users.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRawHTTP(t *testing.T) {
	_, _, ts := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		header map[string]string
		status int
	}{
		{"health", http.MethodGet, "/api/health", nil, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nope", nil, http.StatusNotFound},
		{"me without token", http.MethodGet, "/api/auth/me", nil, http.StatusUnauthorized},
		{"me with garbage token", http.MethodGet, "/api/auth/me", map[string]string{"Authorization": "Bearer garbage"}, http.StatusUnauthorized},
		{"posts without token", http.MethodGet, "/api/posts", nil, http.StatusUnauthorized},
		{"bad day key", http.MethodGet, "/api/games/date/yesterday", nil, http.StatusBadRequest},
		{"preflight", http.MethodOptions, "/api/auth/login", map[string]string{"Origin": "http://localhost:3000"}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, nil)
			require.NoError(t, err)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestSessionAgainstServer(t *testing.T) {
	_, repos, ts := newTestServer(t)
	ctx := context.Background()
	c := newClient(t, ts.URL)

	snap, err := c.session.Bootstrap(ctx)
	require.NoError(t, err)
	assert.False(t, snap.Authenticated())

	_, err = c.session.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.False(t, c.session.Snapshot().Authenticated())

	snap, err = c.session.Login(ctx, "admin", adminPassword)
	require.NoError(t, err)
	assert.True(t, snap.IsAdmin())
	assert.NotEmpty(t, c.tokens.Stored())

	// A fresh process with the stored token resumes the session.
	resumed := newClient(t, ts.URL)
	require.NoError(t, resumed.tokens.Save(c.tokens.Stored()))
	snap, err = resumed.session.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", snap.Username())

	// Blocking the account makes the stored token useless.
	adminUser, err := repos.Users.GetByUsername("admin")
	require.NoError(t, err)
	require.NoError(t, repos.Users.SetActive(adminUser.ID, false))
	snap, err = resumed.session.Bootstrap(ctx)
	assert.ErrorIs(t, err, apperrors.ErrSessionExpired)
	assert.False(t, snap.Authenticated())
	assert.Empty(t, resumed.tokens.Stored())
}

func TestRegisterAndChangePassword(t *testing.T) {
	_, _, ts := newTestServer(t)
	ctx := context.Background()
	c := newClient(t, ts.URL)

	_, err := c.session.Register(ctx, api.RegisterRequest{Username: "ab", Email: "nope", Password: "123"})
	require.Error(t, err)
	assert.Equal(t, api.KindValidation, api.Classify(err))
	assert.False(t, c.session.Snapshot().Authenticated())

	snap, err := c.session.Register(ctx, api.RegisterRequest{Username: "punter", Email: "punter@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "punter", snap.Username())
	assert.False(t, snap.IsAdmin())
	assert.False(t, snap.HasPaid())

	_, err = c.session.Register(ctx, api.RegisterRequest{Username: "punter", Email: "punter@example.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, "Username already exists", api.ServerMessage(err))

	err = c.session.ChangePassword(ctx, "wrong1", "secret2", "secret2")
	assert.ErrorIs(t, err, apperrors.ErrWrongCurrentPassword)
	assert.True(t, c.session.Snapshot().Authenticated(), "a rejected change keeps the session")

	require.NoError(t, c.session.ChangePassword(ctx, "secret1", "secret2", "secret2"))
	require.NoError(t, c.session.Logout())

	_, err = c.session.Login(ctx, "punter", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = c.session.Login(ctx, "punter", "secret2")
	require.NoError(t, err)
}

func TestTipsFlow(t *testing.T) {
	_, _, ts := newTestServer(t)
	ctx := context.Background()

	adminClient := newClient(t, ts.URL)
	_, err := adminClient.session.Login(ctx, "admin", adminPassword)
	require.NoError(t, err)
	panel, err := admin.NewPanel(adminClient.api, adminClient.session, admin.WithNotifier(adminClient.notifier))
	require.NoError(t, err)

	now := time.Now()
	kickoff := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

	vip, err := panel.CreateGame(ctx, games.NewGame{
		HomeTeam: "PSG", AwayTeam: "Lyon", Prediction: "Home Win", Odds: 2.1,
		Category: games.CategoryVIP, MatchTime: kickoff,
	})
	require.NoError(t, err)
	_, err = panel.CreateGame(ctx, games.NewGame{
		HomeTeam: "Arsenal", AwayTeam: "Chelsea", Prediction: "Over 2.5", Odds: 1.7,
		Category: games.CategoryOverUnder, MatchTime: kickoff,
	})
	require.NoError(t, err)
	_, err = panel.CreateGame(ctx, games.NewGame{
		HomeTeam: "Ajax", AwayTeam: "PSV", Prediction: "Draw", Odds: 3.0,
		Category: games.CategoryAll, MatchTime: kickoff.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	_, err = panel.CreateGame(ctx, games.NewGame{HomeTeam: "Only", Odds: 1.5, Category: games.CategoryAll, MatchTime: kickoff})
	require.Error(t, err)

	punter := newClient(t, ts.URL)
	_, err = punter.session.Register(ctx, api.RegisterRequest{Username: "punter", Email: "punter@example.com", Password: "secret1"})
	require.NoError(t, err)

	loader, err := tips.NewLoader(punter.api)
	require.NoError(t, err)
	set, err := loader.Load(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.Len(t, set.Get(games.CategoryVIP), 1)
	assert.Len(t, set.Get(games.CategoryOverUnder), 1)
	assert.Empty(t, set.Get(games.CategoryAll))

	cards := tips.Cards(set, punter.session.Snapshot())
	require.Len(t, cards, len(games.Categories))
	for _, card := range cards {
		if card.Category == games.CategoryVIP {
			assert.True(t, card.Locked)
			assert.Empty(t, card.Games)
		}
	}

	_, err = panel.SetResult(ctx, vip.ID, games.ResultWin)
	require.NoError(t, err)
	_, err = panel.SetResult(ctx, vip.ID, games.ResultLoss)
	assert.ErrorIs(t, err, apperrors.ErrResultAlreadySet)

	stats, err := tips.LoadStats(ctx, punter.api)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTips)
	assert.Equal(t, 1, stats.Wins)

	// Granting VIP unlocks the card after the next session bootstrap.
	_, err = panel.ToggleVIP(ctx, "punter")
	require.NoError(t, err)
	snap, err := punter.session.Bootstrap(ctx)
	require.NoError(t, err)
	require.True(t, snap.HasPaid())
	require.NotNil(t, snap.User.VIPExpiryDate)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), *snap.User.VIPExpiryDate, time.Minute)

	set, synced, err := loader.Sync(ctx, now, punter.session.TriggerRefresh())
	require.NoError(t, err)
	assert.True(t, synced)
	for _, card := range tips.Cards(set, snap) {
		if card.Category == games.CategoryVIP {
			assert.False(t, card.Locked)
			assert.Len(t, card.Games, 1)
		}
	}

	// Non-admins are turned away by the server as well as locally.
	_, err = punter.api.CreateGame(ctx, games.NewGame{HomeTeam: "A", AwayTeam: "B", Prediction: "1", Odds: 2, Category: games.CategoryAll, MatchTime: kickoff})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, api.StatusCode(err))
}

func TestLoaderRefetchesAfterSignOut(t *testing.T) {
	_, _, ts := newTestServer(t)
	ctx := context.Background()

	adminClient := newClient(t, ts.URL)
	_, err := adminClient.session.Login(ctx, "admin", adminPassword)
	require.NoError(t, err)

	now := time.Now()
	kickoff := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	addGame := func(home string) {
		_, err := adminClient.api.CreateGame(ctx, games.NewGame{
			HomeTeam: home, AwayTeam: "Away", Prediction: "Home Win", Odds: 1.9,
			Category: games.CategoryAll, MatchTime: kickoff,
		})
		require.NoError(t, err)
	}
	addGame("Arsenal")

	punter := newClient(t, ts.URL)
	_, err = punter.session.Register(ctx, api.RegisterRequest{Username: "punter", Email: "punter@example.com", Password: "secret1"})
	require.NoError(t, err)
	loader, err := tips.NewLoader(punter.api)
	require.NoError(t, err)
	punter.session.OnSignOut(loader.Reset)

	set, fetched, err := loader.Sync(ctx, now, punter.session.TriggerRefresh())
	require.NoError(t, err)
	require.True(t, fetched)
	require.Equal(t, 1, set.Len())

	require.NoError(t, punter.session.Logout())
	_, err = punter.session.Login(ctx, "punter", "secret1")
	require.NoError(t, err)
	addGame("Chelsea")

	counter := punter.session.TriggerRefresh()
	require.Equal(t, 1, counter, "counter restarted after sign out")
	set, fetched, err = loader.Sync(ctx, now, counter)
	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, 2, set.Len())
}

func TestCommunityFlow(t *testing.T) {
	_, _, ts := newTestServer(t)
	ctx := context.Background()

	adminClient := newClient(t, ts.URL)
	_, err := adminClient.session.Login(ctx, "admin", adminPassword)
	require.NoError(t, err)
	punter := newClient(t, ts.URL)
	_, err = punter.session.Register(ctx, api.RegisterRequest{Username: "punter", Email: "punter@example.com", Password: "secret1"})
	require.NoError(t, err)

	punterBoard, err := community.NewBoard(punter.api, punter.session, punter.notifier)
	require.NoError(t, err)
	adminBoard, err := community.NewBoard(adminClient.api, adminClient.session, adminClient.notifier)
	require.NoError(t, err)

	post, err := punterBoard.Post(ctx, "  Arsenal to win it all  ")
	require.NoError(t, err)
	assert.Equal(t, "Arsenal to win it all", post.Content)
	assert.Equal(t, "punter", post.Author.Username)

	_, err = punterBoard.Post(ctx, "   ")
	assert.ErrorIs(t, err, apperrors.ErrEmptyContent)

	updated, err := adminBoard.Reply(ctx, post.ID, "Bold call")
	require.NoError(t, err)
	require.Len(t, updated.Replies, 1)
	assert.Equal(t, "admin", updated.Replies[0].Author.Username)

	assert.ErrorIs(t, punterBoard.Delete(ctx, post.ID), apperrors.ErrNotAuthorized)
	err = punter.api.DeletePost(ctx, post.ID)
	assert.Equal(t, http.StatusForbidden, api.StatusCode(err))

	require.NoError(t, adminBoard.Delete(ctx, post.ID))
	list, err := punterBoard.Posts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.True(t, strings.HasPrefix(adminClient.notifier.Last().Message, "Post deleted"))
}

func TestLoginRateLimit(t *testing.T) {
	t.Setenv("DEV_LOGIN_RATE", "2")
	_, _, ts := newTestServer(t)
	ctx := context.Background()
	c := newClient(t, ts.URL)

	for i := 0; i < 2; i++ {
		_, err := c.api.Login(ctx, "admin", "wrong")
		assert.Equal(t, http.StatusUnauthorized, api.StatusCode(err))
	}
	_, err := c.api.Login(ctx, "admin", adminPassword)
	assert.Equal(t, http.StatusTooManyRequests, api.StatusCode(err))
}

func TestCreateGameValidation(t *testing.T) {
	_, _, ts := newTestServer(t)
	ctx := context.Background()
	c := newClient(t, ts.URL)
	_, err := c.session.Login(ctx, "admin", adminPassword)
	require.NoError(t, err)

	// Bypass the panel so the server's own checks are exercised.
	_, err = c.api.CreateGame(ctx, games.NewGame{HomeTeam: " ", AwayTeam: "B", Prediction: "1", Odds: 1.0})
	require.Error(t, err)
	assert.Equal(t, api.KindValidation, api.Classify(err))

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Errors, "Home team is required")
	assert.Contains(t, apiErr.Errors, "Odds must be greater than 1.0")
	assert.Contains(t, apiErr.Errors, "Invalid category")
	assert.Contains(t, apiErr.Errors, "Game time is required")
}
