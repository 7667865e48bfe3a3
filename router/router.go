package router

import (
	"path"
	"strings"

	"github.com/jrsteele09/betatips/session"
)

// View is the screen a path resolves to.
type View string

const (
	ViewLogin     View = "login"
	ViewAdmin     View = "admin"
	ViewCommunity View = "community"
	ViewTips      View = "tips"
)

const (
	PathLogin     = "/login"
	PathAdmin     = "/admin"
	PathCommunity = "/community"
	PathHome      = "/"
)

// Decision is the outcome of resolving a path: either a view to render, or a redirect to
// follow (Redirect is then non-empty and View is the redirect target's view).
type Decision struct {
	Path     string
	View     View
	Redirect string
}

func (d Decision) Redirected() bool {
	return d.Redirect != ""
}

type route struct {
	view  View
	guard func(session.Snapshot) string // redirect target, "" when allowed
}

var routes = map[string]route{
	PathLogin: {view: ViewLogin, guard: func(s session.Snapshot) string {
		if s.Authenticated() {
			return PathHome
		}
		return ""
	}},
	PathAdmin: {view: ViewAdmin, guard: func(s session.Snapshot) string {
		if !s.IsAdmin() {
			return PathHome
		}
		return ""
	}},
	PathCommunity: {view: ViewCommunity, guard: requireUser},
	PathHome:      {view: ViewTips, guard: requireUser},
}

func requireUser(s session.Snapshot) string {
	if !s.Authenticated() {
		return PathLogin
	}
	return ""
}

const maxRedirects = 4

// Resolve maps p to a view for the given session, following redirects. Unknown paths go
// to /login, which in turn sends a signed-in user home.
func Resolve(p string, snap session.Snapshot) Decision {
	requested := clean(p)
	current := requested
	for i := 0; i < maxRedirects; i++ {
		r, ok := routes[current]
		if !ok {
			current = PathLogin
			continue
		}
		if target := r.guard(snap); target != "" && target != current {
			current = target
			continue
		}
		d := Decision{Path: requested, View: r.view}
		if current != requested {
			d.Redirect = current
		}
		return d
	}
	return Decision{Path: requested, View: ViewLogin, Redirect: PathLogin}
}

func clean(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
