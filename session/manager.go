package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jrsteele09/betatips/api"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/internal/utils"
	"github.com/jrsteele09/betatips/notify"
	"github.com/jrsteele09/betatips/token"
	"github.com/jrsteele09/betatips/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// API is the part of the remote API the session depends on.
type API interface {
	Me(ctx context.Context) (*users.User, error)
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

var _ API = (*api.Client)(nil)

// Manager owns the session: the durable token, the credentials attached to outbound
// calls, and the in-memory user. It is the only writer of all three.
type Manager struct {
	api      API
	creds    *api.Credentials
	repo     token.Repo
	notifier notify.Notifier
	logger   zerolog.Logger
	nowTime  func() time.Time

	lifecycle sync.Mutex // serialises bootstrap/login/register/logout

	mu        sync.RWMutex
	token     string
	user      *users.User
	refresh   int
	listeners []func(Snapshot)
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

func WithNotifier(n notify.Notifier) ManagerOption {
	return func(m *Manager) {
		m.notifier = n
	}
}

func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

func NewManager(remote API, creds *api.Credentials, repo token.Repo, options ...ManagerOption) (*Manager, error) {
	if remote == nil {
		return nil, errors.New("[NewManager] api is required")
	}
	if creds == nil {
		return nil, errors.New("[NewManager] credentials are required")
	}
	if repo == nil {
		return nil, errors.New("[NewManager] token repo is required")
	}

	m := &Manager{
		api:      remote,
		creds:    creds,
		repo:     repo,
		notifier: notify.Discard{},
		logger:   zerolog.Nop(),
		nowTime:  time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

func (m *Manager) snapshotLocked() Snapshot {
	s := Snapshot{HasToken: m.token != "", RefreshCounter: m.refresh}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}
	if exp, ok := token.Expiry(m.token); ok {
		s.TokenExpiry = exp
	}
	return s
}

// OnChange registers fn to be called with every new snapshot after a state change.
func (m *Manager) OnChange(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// OnSignOut registers fn to be called whenever a state change leaves no token held.
func (m *Manager) OnSignOut(fn func()) {
	m.OnChange(func(s Snapshot) {
		if !s.HasToken {
			fn()
		}
	})
}

// update applies fn under the state lock, then publishes the resulting snapshot.
func (m *Manager) update(fn func()) {
	m.mu.Lock()
	fn()
	snap := m.snapshotLocked()
	listeners := make([]func(Snapshot), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// TriggerRefresh bumps the refresh counter so that tip views refetch.
func (m *Manager) TriggerRefresh() int {
	var counter int
	m.update(func() {
		m.refresh++
		counter = m.refresh
	})
	return counter
}

// SetUser replaces the in-memory user, e.g. after an admin edits their own record.
// It is ignored while no token is held.
func (m *Manager) SetUser(u users.User) {
	m.update(func() {
		if m.token != "" {
			m.user = &u
		}
	})
}

// Bootstrap restores the session from the token repo. Without a stored token it makes no
// network call. A rejected token ends the session; any other failure keeps the token for
// the next attempt and leaves the user unresolved.
func (m *Manager) Bootstrap(ctx context.Context) (Snapshot, error) {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	stored, err := m.repo.Load()
	if apperrors.Is(err, apperrors.ErrNoToken) {
		return m.Snapshot(), nil
	}
	if err != nil {
		notify.Error(m.notifier, MsgTokenStorageReadError)
		return m.Snapshot(), errors.Wrap(err, "[Manager.Bootstrap] load token")
	}

	if exp, ok := token.Expiry(stored); ok {
		m.logger.Debug().Time("expires", exp).Bool("expired", !m.nowTime().Before(exp)).Msg("restoring stored session")
	}

	m.creds.Set(stored)
	m.update(func() {
		m.token = stored
		m.user = nil
	})

	user, err := m.api.Me(ctx)
	if err != nil {
		if api.IsAuthRejection(err) {
			m.logger.Info().Int("status", api.StatusCode(err)).Msg("stored token rejected, logging out")
			if clearErr := m.clearLocked(); clearErr != nil {
				m.logger.Error().Err(clearErr).Msg("failed to clear stored token")
			}
			notify.Warn(m.notifier, MsgSessionExpired)
			return m.Snapshot(), apperrors.ErrSessionExpired
		}
		m.logger.Warn().Err(err).Msg("could not resolve current user, keeping token")
		notify.Warn(m.notifier, MsgBootstrapUnreachable)
		return m.Snapshot(), errors.Wrap(err, "[Manager.Bootstrap] fetch current user")
	}

	m.update(func() {
		m.user = user
	})
	return m.Snapshot(), nil
}

// Login authenticates with the backend. A failed attempt leaves the session untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (Snapshot, error) {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	resp, err := m.api.Login(ctx, username, password)
	if err != nil {
		notify.Error(m.notifier, loginFailureMessage(err))
		return m.Snapshot(), classifyLoginError(err)
	}
	if err := m.establishLocked(resp); err != nil {
		notify.Error(m.notifier, MsgTokenStorageFailed)
		return m.Snapshot(), errors.Wrap(err, "[Manager.Login]")
	}
	notify.Success(m.notifier, MsgLoginSuccess)
	m.logger.Info().Str("username", resp.User.Username).Msg("logged in")
	return m.Snapshot(), nil
}

// Register creates an account and signs in with it. Failure has no effect on the session.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) (Snapshot, error) {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	resp, err := m.api.Register(ctx, req)
	if err != nil {
		notify.Error(m.notifier, utils.FirstNonEmpty(api.ServerMessage(err), MsgRegisterFailed))
		return m.Snapshot(), errors.Wrap(err, "[Manager.Register]")
	}
	if err := m.establishLocked(resp); err != nil {
		notify.Error(m.notifier, MsgTokenStorageFailed)
		return m.Snapshot(), errors.Wrap(err, "[Manager.Register]")
	}
	notify.Success(m.notifier, MsgRegisterSuccess)
	return m.Snapshot(), nil
}

// establishLocked persists the token first so that a storage failure changes nothing.
func (m *Manager) establishLocked(resp *api.AuthResponse) error {
	if resp == nil || resp.Token == "" {
		return errors.New("[Manager.establish] response carried no token")
	}
	if err := m.repo.Save(resp.Token); err != nil {
		return errors.Wrap(err, "[Manager.establish] save token")
	}
	user := resp.User
	m.creds.Set(resp.Token)
	m.update(func() {
		m.token = resp.Token
		m.user = &user
	})
	return nil
}

// Logout ends the session. Credentials and memory are always cleared; a storage error
// is returned after that.
func (m *Manager) Logout() error {
	m.lifecycle.Lock()
	defer m.lifecycle.Unlock()

	if err := m.clearLocked(); err != nil {
		notify.Error(m.notifier, MsgTokenStorageFailed)
		return errors.Wrap(err, "[Manager.Logout]")
	}
	notify.Info(m.notifier, MsgLoggedOut)
	return nil
}

func (m *Manager) clearLocked() error {
	err := m.repo.Clear()
	m.creds.Clear()
	m.update(func() {
		m.token = ""
		m.user = nil
		m.refresh = 0
	})
	return err
}

// ChangePassword validates locally, then asks the backend to change the password.
// The session is never modified, including on 401.
func (m *Manager) ChangePassword(ctx context.Context, currentPassword, newPassword, confirmPassword string) error {
	if err := users.ValidatePasswordChange(newPassword, confirmPassword); err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrPasswordMismatch):
			notify.Error(m.notifier, MsgPasswordMismatch)
		default:
			notify.Error(m.notifier, MsgPasswordTooShort)
		}
		return err
	}
	if !m.Snapshot().HasToken {
		notify.Error(m.notifier, MsgSessionExpired)
		return apperrors.ErrNotAuthenticated
	}

	if err := m.api.ChangePassword(ctx, currentPassword, newPassword); err != nil {
		notify.Error(m.notifier, changePasswordFailureMessage(err))
		return classifyChangePasswordError(err)
	}
	notify.Success(m.notifier, MsgPasswordChanged)
	return nil
}

func classifyLoginError(err error) error {
	switch api.StatusCode(err) {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return apperrors.Wrapf(apperrors.ErrInvalidCredentials, "[Manager.Login] %v", err)
	case http.StatusForbidden:
		return apperrors.Wrapf(apperrors.ErrAccountDeactivated, "[Manager.Login] %v", err)
	}
	return errors.Wrap(err, "[Manager.Login]")
}

func classifyChangePasswordError(err error) error {
	switch api.StatusCode(err) {
	case http.StatusBadRequest:
		return apperrors.Wrapf(apperrors.ErrWrongCurrentPassword, "[Manager.ChangePassword] %v", err)
	case http.StatusUnauthorized:
		return apperrors.Wrapf(apperrors.ErrSessionExpired, "[Manager.ChangePassword] %v", err)
	}
	return errors.Wrap(err, "[Manager.ChangePassword]")
}
