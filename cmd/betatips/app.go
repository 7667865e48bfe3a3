package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jrsteele09/betatips/api"
	"github.com/jrsteele09/betatips/internal/config"
	"github.com/jrsteele09/betatips/notify"
	"github.com/jrsteele09/betatips/session"
	"github.com/jrsteele09/betatips/tips"
	"github.com/jrsteele09/betatips/token"
	"github.com/jrsteele09/betatips/token/filerepo"
	"github.com/jrsteele09/betatips/token/sqliterepo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const sqliteFileName = "session.db"

type appOptions struct {
	apiURL     string
	dataFolder string
	store      string
	plain      bool
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// app is everything a command needs, built once per invocation.
type app struct {
	cfg      config.Config
	api      *api.Client
	session  *session.Manager
	notifier notify.Notifier
	logger   zerolog.Logger
	stdin    *bufio.Reader
	rawStdin io.Reader
	stdout   io.Writer
	plain    bool
	nowTime  func() time.Time
	closers  []func() error
}

func newApp(cfg config.Config, opts appOptions) (*app, error) {
	logger := newLogger(opts.stderr, cfg.GetLogLevel(), opts.plain)

	repo, closer, err := openTokenRepo(opts.store, opts.dataFolder)
	if err != nil {
		return nil, err
	}

	creds := api.NewCredentials()
	client, err := api.NewClient(opts.apiURL, creds,
		api.WithTimeout(cfg.GetHTTPTimeout()),
		api.WithLogger(logger),
	)
	if err != nil {
		_ = closer()
		return nil, err
	}

	notifier := notify.Multi{notify.NewConsole(opts.stdout, opts.plain), notify.NewLog(logger)}
	mgr, err := session.NewManager(client, creds, repo,
		session.WithNotifier(notifier),
		session.WithLogger(logger),
	)
	if err != nil {
		_ = closer()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		api:      client,
		session:  mgr,
		notifier: notifier,
		logger:   logger,
		stdin:    bufio.NewReader(opts.stdin),
		rawStdin: opts.stdin,
		stdout:   opts.stdout,
		plain:    opts.plain,
		nowTime:  time.Now,
		closers:  []func() error{closer},
	}, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.logger.Warn().Err(err).Msg("close failed")
		}
	}
}

func newLogger(w io.Writer, level string, plain bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: plain, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

// openTokenRepo returns the durable session store selected by store.
func openTokenRepo(store, folder string) (token.Repo, func() error, error) {
	switch store {
	case config.TokenStoreSQLite:
		repo, err := sqliterepo.New(filepath.Join(folder, sqliteFileName))
		if err != nil {
			return nil, nil, errors.Wrap(err, "[openTokenRepo]")
		}
		return repo, repo.Close, nil
	case config.TokenStoreFile, "":
		return filerepo.New(folder), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown session store %q, want %q or %q", store, config.TokenStoreFile, config.TokenStoreSQLite)
}

func (a *app) newLoader() (*tips.Loader, error) {
	policy, err := tips.ParsePolicy(a.cfg.GetUnknownCategoryPolicy())
	if err != nil {
		a.logger.Warn().Err(err).Msg("falling back to the quarantine policy")
	}
	loader, err := tips.NewLoader(a.api,
		tips.WithPolicy(policy),
		tips.WithNotifier(a.notifier),
		tips.WithLogger(a.logger),
		tips.WithLoaderNowTime(a.nowTime),
	)
	if err != nil {
		return nil, err
	}
	a.session.OnSignOut(loader.Reset)
	return loader, nil
}

func (a *app) newNavigator() *tips.Navigator {
	return tips.NewNavigator(
		tips.WithNowTime(a.nowTime),
		tips.WithMaxDaysAhead(a.cfg.GetMaxDaysAhead()),
	)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}

// prompt reads one line, or returns value when it is already set.
func (a *app) prompt(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	a.printf("%s: ", label)
	line, err := a.stdin.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrapf(err, "read %s", strings.ToLower(label))
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads without echo on a terminal and falls back to a plain line otherwise.
func (a *app) promptSecret(label, value string) (string, error) {
	if value != "" {
		return value, nil
	}
	if f, ok := a.rawStdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.printf("%s: ", label)
		secret, err := term.ReadPassword(int(f.Fd()))
		a.printf("\n")
		if err != nil {
			return "", errors.Wrapf(err, "read %s", strings.ToLower(label))
		}
		return string(secret), nil
	}
	return a.prompt(label, "")
}
