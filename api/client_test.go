package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jrsteele09/betatips/api"
	"github.com/jrsteele09/betatips/games"
	"github.com/stretchr/testify/require"
)

// recorder captures the headers of every request it serves.
type recorder struct {
	mu      sync.Mutex
	headers []http.Header
	paths   []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headers = append(r.headers, req.Header.Clone())
	r.paths = append(r.paths, req.URL.EscapedPath())
}

func (r *recorder) last() (http.Header, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.headers[len(r.headers)-1], r.paths[len(r.paths)-1]
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *api.Credentials, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	creds := api.NewCredentials()
	client, err := api.NewClient(srv.URL+"/api", creds)
	require.NoError(t, err)
	return client, creds, rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClientValidation(t *testing.T) {
	_, err := api.NewClient("", api.NewCredentials())
	require.Error(t, err)

	_, err = api.NewClient("http://localhost/api", nil)
	require.Error(t, err)
}

func TestBearerHeaderFollowsCredentials(t *testing.T) {
	client, creds, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []games.Game{})
	})
	ctx := context.Background()

	_, err := client.GamesByDate(ctx, "2026-10-16")
	require.NoError(t, err)
	header, path := rec.last()
	require.Empty(t, header.Get("Authorization"))
	require.NotEmpty(t, header.Get("X-Request-ID"))
	require.Equal(t, "/api/games/date/2026-10-16", path)

	creds.Set("tok-1")
	_, err = client.GamesByDate(ctx, "2026-10-16")
	require.NoError(t, err)
	header, _ = rec.last()
	require.Equal(t, "Bearer tok-1", header.Get("Authorization"))

	creds.Clear()
	_, err = client.GamesByDate(ctx, "2026-10-16")
	require.NoError(t, err)
	header, _ = rec.last()
	require.Empty(t, header.Get("Authorization"))
}

func TestPathIDsAreEscaped(t *testing.T) {
	client, _, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, client.DeleteGame(context.Background(), "a/b"))
	_, path := rec.last()
	require.Equal(t, "/api/games/a%2Fb", path)
}

func TestErrorDecodingAndClassification(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        any
		wantKind    api.Kind
		wantText    string
		wantMessage string
	}{
		{"unauthorized", http.StatusUnauthorized, map[string]string{"message": "Invalid token"}, api.KindAuthRejected, "Invalid token", "Invalid token"},
		{"forbidden", http.StatusForbidden, map[string]string{"message": "Account deactivated"}, api.KindAuthRejected, "Account deactivated", "Account deactivated"},
		{"validation strings", http.StatusBadRequest, map[string]any{"errors": []string{"odds too low", "home team required"}}, api.KindValidation, "odds too low, home team required", "odds too low, home team required"},
		{"validation objects", http.StatusBadRequest, map[string]any{"errors": []map[string]string{{"msg": "bad odds"}}}, api.KindValidation, "bad odds", "bad odds"},
		{"server error", http.StatusInternalServerError, map[string]string{"error": "boom"}, api.KindTransient, "boom", "boom"},
		{"not found", http.StatusNotFound, nil, api.KindOther, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})
			_, err := client.Me(context.Background())
			require.Error(t, err)
			require.Equal(t, tt.wantKind, api.Classify(err))
			require.Equal(t, tt.status, api.StatusCode(err))
			require.Equal(t, tt.wantMessage, api.ServerMessage(err))

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.wantText, apiErr.Text())
		})
	}
}

func TestTransportFailureIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := api.NewClient(url, api.NewCredentials())
	require.NoError(t, err)
	_, err = client.Me(context.Background())
	require.Error(t, err)
	require.Equal(t, api.KindTransient, api.Classify(err))
	require.Zero(t, api.StatusCode(err))
}

func TestClassifyNonAPIError(t *testing.T) {
	require.Equal(t, api.KindNone, api.Classify(nil))
	require.Equal(t, api.KindOther, api.Classify(context.Canceled))
	require.False(t, api.IsAuthRejection(context.Canceled))
}

func TestRequestBodies(t *testing.T) {
	var got map[string]any
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		writeJSON(w, http.StatusOK, map[string]any{"_id": "u1", "username": "ada", "hasPaid": true})
	})

	u, err := client.SetUserVIP(context.Background(), "u1", true)
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
	require.Equal(t, true, got["hasPaid"])

	require.NoError(t, client.ChangePassword(context.Background(), "old", "newpass1"))
	require.Equal(t, "old", got["currentPassword"])
	require.Equal(t, "newpass1", got["newPassword"])
}

func TestEmptySuccessBody(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	p, err := client.CreatePost(context.Background(), "hello")
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestCredentialsTokenSource(t *testing.T) {
	creds := api.NewCredentials()
	_, err := creds.Token()
	require.Error(t, err)
	require.False(t, creds.Present())

	creds.Set("abc")
	tok, err := creds.Token()
	require.NoError(t, err)
	require.Equal(t, "abc", tok.AccessToken)
	require.Equal(t, "Bearer", tok.Type())
}
