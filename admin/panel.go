package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/betatips/api"
	"github.com/jrsteele09/betatips/games"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
	"github.com/jrsteele09/betatips/notify"
	"github.com/jrsteele09/betatips/session"
	"github.com/jrsteele09/betatips/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// API is the admin part of the remote API.
type API interface {
	AllGames(ctx context.Context) ([]games.Game, error)
	CreateGame(ctx context.Context, game games.NewGame) (*games.Game, error)
	DeleteGame(ctx context.Context, id string) error
	SetGameResult(ctx context.Context, id string, result games.Result) (*games.Game, error)
	Users(ctx context.Context) ([]users.User, error)
	SetUserVIP(ctx context.Context, id string, hasPaid bool) (*users.User, error)
	SetUserActive(ctx context.Context, id string, isActive bool) (*users.User, error)
}

// Session is what the panel needs from the session manager.
type Session interface {
	Snapshot() session.Snapshot
	TriggerRefresh() int
	SetUser(u users.User)
}

var _ Session = (*session.Manager)(nil)

// Panel runs admin operations. Every game mutation bumps the session refresh counter so
// that tips views refetch.
type Panel struct {
	api      API
	session  Session
	notifier notify.Notifier
	logger   zerolog.Logger
}

type PanelOption func(*Panel)

func WithNotifier(n notify.Notifier) PanelOption {
	return func(p *Panel) {
		p.notifier = n
	}
}

func WithLogger(logger zerolog.Logger) PanelOption {
	return func(p *Panel) {
		p.logger = logger
	}
}

func NewPanel(remote API, sess Session, options ...PanelOption) (*Panel, error) {
	if remote == nil {
		return nil, errors.New("[NewPanel] api is required")
	}
	if sess == nil {
		return nil, errors.New("[NewPanel] session is required")
	}
	p := &Panel{api: remote, session: sess, notifier: notify.Discard{}, logger: zerolog.Nop()}
	for _, opt := range options {
		opt(p)
	}
	return p, nil
}

func (p *Panel) requireAdmin() error {
	snap := p.session.Snapshot()
	if !snap.Authenticated() {
		notify.Error(p.notifier, "Please log in first!")
		return apperrors.ErrNotAuthenticated
	}
	if !snap.IsAdmin() {
		notify.Error(p.notifier, "Admin access required")
		return apperrors.ErrNotAuthorized
	}
	return nil
}

func (p *Panel) Games(ctx context.Context) ([]games.Game, error) {
	if err := p.requireAdmin(); err != nil {
		return nil, err
	}
	list, err := p.api.AllGames(ctx)
	if err != nil {
		notify.Error(p.notifier, "Error loading games")
		return nil, errors.Wrap(err, "[Panel.Games]")
	}
	return list, nil
}

// CreateGame validates req locally before sending it.
func (p *Panel) CreateGame(ctx context.Context, req games.NewGame) (*games.Game, error) {
	if err := p.requireAdmin(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		notify.Error(p.notifier, strings.TrimPrefix(err.Error(), apperrors.ErrInvalidGame.Error()+": "))
		return nil, err
	}

	created, err := p.api.CreateGame(ctx, req)
	if err != nil {
		notify.Error(p.notifier, "Error adding game: "+errorText(err))
		return nil, errors.Wrap(err, "[Panel.CreateGame]")
	}
	p.session.TriggerRefresh()
	p.logger.Info().Str("game", created.ID).Str("category", created.Category.String()).Msg("game created")
	notify.Success(p.notifier, "Game added successfully!")
	return created, nil
}

func (p *Panel) DeleteGame(ctx context.Context, id string) error {
	if err := p.requireAdmin(); err != nil {
		return err
	}
	if err := p.api.DeleteGame(ctx, id); err != nil {
		notify.Error(p.notifier, "Error deleting game")
		return errors.Wrap(err, "[Panel.DeleteGame]")
	}
	p.session.TriggerRefresh()
	notify.Success(p.notifier, "Game deleted successfully!")
	return nil
}

// SetResult settles a pending game. A settled game cannot be changed again.
func (p *Panel) SetResult(ctx context.Context, id string, result games.Result) (*games.Game, error) {
	if err := p.requireAdmin(); err != nil {
		return nil, err
	}
	if result != games.ResultWin && result != games.ResultLoss {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidResult, result)
	}

	list, err := p.api.AllGames(ctx)
	if err != nil {
		notify.Error(p.notifier, "Error updating result")
		return nil, errors.Wrap(err, "[Panel.SetResult] load games")
	}
	current, err := findGame(list, id)
	if err != nil {
		notify.Error(p.notifier, "Game not found")
		return nil, err
	}
	if current.Settled() {
		notify.Error(p.notifier, fmt.Sprintf("Result already marked as %s", current.Result.Label()))
		return nil, apperrors.ErrResultAlreadySet
	}

	updated, err := p.api.SetGameResult(ctx, id, result)
	if err != nil {
		notify.Error(p.notifier, "Error updating result")
		return nil, errors.Wrap(err, "[Panel.SetResult]")
	}
	p.session.TriggerRefresh()
	notify.Success(p.notifier, fmt.Sprintf("Result marked as %s!", strings.ToUpper(string(result))))
	return updated, nil
}

// Users returns the user list and its counters.
func (p *Panel) Users(ctx context.Context) ([]users.User, users.Summary, error) {
	if err := p.requireAdmin(); err != nil {
		return nil, users.Summary{}, err
	}
	list, err := p.api.Users(ctx)
	if err != nil {
		notify.Error(p.notifier, "Error loading users")
		return nil, users.Summary{}, errors.Wrap(err, "[Panel.Users]")
	}
	return list, users.Summarize(list), nil
}

// ToggleVIP flips the user's paid flag.
func (p *Panel) ToggleVIP(ctx context.Context, id string) (*users.User, error) {
	target, err := p.lookupUser(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := p.api.SetUserVIP(ctx, target.ID, !target.HasPaid)
	if err != nil {
		notify.Error(p.notifier, "Error updating user VIP status")
		return nil, errors.Wrap(err, "[Panel.ToggleVIP]")
	}
	if !target.HasPaid {
		notify.Success(p.notifier, fmt.Sprintf("VIP access granted to %s!", target.Username))
	} else {
		notify.Success(p.notifier, fmt.Sprintf("VIP access removed from %s!", target.Username))
	}
	p.syncSelf(updated)
	return updated, nil
}

// ToggleActive blocks an active user or unblocks a blocked one.
func (p *Panel) ToggleActive(ctx context.Context, id string) (*users.User, error) {
	target, err := p.lookupUser(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := p.api.SetUserActive(ctx, target.ID, !target.IsActive)
	if err != nil {
		notify.Error(p.notifier, "Error updating user status")
		return nil, errors.Wrap(err, "[Panel.ToggleActive]")
	}
	if !target.IsActive {
		notify.Success(p.notifier, fmt.Sprintf("%s has been unblocked!", target.Username))
	} else {
		notify.Success(p.notifier, fmt.Sprintf("%s has been blocked!", target.Username))
	}
	p.syncSelf(updated)
	return updated, nil
}

// lookupUser resolves id or username against the current user list.
func (p *Panel) lookupUser(ctx context.Context, idOrName string) (*users.User, error) {
	list, _, err := p.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == idOrName || strings.EqualFold(list[i].Username, idOrName) {
			return &list[i], nil
		}
	}
	notify.Error(p.notifier, "User not found")
	return nil, apperrors.Wrapf(apperrors.ErrNotFound, "[Panel.lookupUser] user %q", idOrName)
}

// syncSelf refreshes the session's own user when an admin edits themselves.
func (p *Panel) syncSelf(updated *users.User) {
	if updated == nil || updated.ID == "" {
		return
	}
	if snap := p.session.Snapshot(); snap.User != nil && snap.User.ID == updated.ID {
		p.session.SetUser(*updated)
	}
}

func findGame(list []games.Game, id string) (*games.Game, error) {
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, apperrors.Wrapf(apperrors.ErrNotFound, "[findGame] game %q", id)
}

// errorText prefers the server's message or validation list over err itself.
func errorText(err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}
