package devserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/betatips/games"
	"github.com/jrsteele09/betatips/internal/config"
	"github.com/jrsteele09/betatips/internal/utils"
	"github.com/jrsteele09/betatips/posts"
	"github.com/jrsteele09/betatips/token/jwt"
	"github.com/jrsteele09/betatips/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Repos holds all repository dependencies for the Server
type Repos struct {
	Users users.UserRepo
	Games games.Repo
	Posts posts.Repo
}

// Server is an in-memory stand-in for the Beta Tips backend, serving the same REST
// contract under /api.
type Server struct {
	env     string // Environment (e.g., "DEV", "production")
	mux     *http.ServeMux
	routes  []string
	config  config.Config
	repos   Repos
	tokens  *jwt.Creator
	logins  *ipRateLimiter
	nowTime func() time.Time
}

// ServerOption defines a function type to modify the Server instance.
type ServerOption func(*Server)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServerOption {
	return func(s *Server) {
		s.nowTime = nowFunc
	}
}

func New(cfg config.Config, repos Repos, options ...ServerOption) (*Server, error) {
	if repos.Users == nil || repos.Games == nil || repos.Posts == nil {
		return nil, errors.New("[devserver.New] users, games and posts repos are required")
	}
	tokens, err := jwt.NewCreator(cfg.GetJWTSecret(), cfg.GetTokenExpiry())
	if err != nil {
		return nil, errors.Wrap(err, "[devserver.New] token creator")
	}

	s := &Server{
		env:     cfg.GetEnv(),
		mux:     http.NewServeMux(),
		config:  cfg,
		repos:   repos,
		tokens:  tokens,
		logins:  newIPRateLimiter(cfg.GetLoginRatePerMinute()),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}

	// Bootstrap: ensure the admin account exists
	if _, err := s.InitialiseSystem(); err != nil {
		return nil, fmt.Errorf("[devserver.New] failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

var methodColors = map[string]string{
	http.MethodGet:    utils.Green,
	http.MethodPost:   utils.Blue,
	http.MethodPut:    utils.Cyan,
	http.MethodDelete: utils.Yellow,
	http.MethodPatch:  utils.Magenta,
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + utils.ResetColor
	}
	return utils.Gray + paddedMethod + utils.ResetColor
}

func logRoute(method, path string) {
	log.Printf("[%-19s] %s", colouredMethod(method), path)
}

func logError(method, path, error string) {
	log.Printf("[%-19s] %s %s", colouredMethod(method), path, utils.Red+error+utils.ResetColor)
}
