package access

import (
	"strings"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/session"
)

// Visibility says who may open a route
type Visibility int

const (
	Public Visibility = iota
	Private
)

// Route is one entry of the client view table
type Route struct {
	Path       string
	Visibility Visibility
	Roles      []entity.Role
	// Prefix routes match any path below Path, e.g. a reset token
	Prefix bool
}

// RootPath resolves to the default authenticated view
const RootPath = "/"

var routes = []Route{
	{Path: session.LoginView, Visibility: Public},
	{Path: "/register", Visibility: Public},
	{Path: "/forgot-password", Visibility: Public},
	{Path: "/reset-password/", Visibility: Public, Prefix: true},

	{Path: session.DefaultView, Visibility: Private},
	{Path: "/profile", Visibility: Private},
	{Path: "/habits", Visibility: Private},
	{Path: "/mood-tracker", Visibility: Private},
	{Path: "/goals", Visibility: Private},
	{Path: "/reports", Visibility: Private},

	{Path: "/admin-panel", Visibility: Private, Roles: []entity.Role{entity.RoleAdmin}},

	{Path: RootPath, Visibility: Private},
}

// Routes returns a copy of the view table
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds the route for path. Trailing slashes are ignored.
func Lookup(path string) (Route, bool) {
	if path != RootPath {
		path = strings.TrimSuffix(path, "/")
	}
	for _, r := range routes {
		if r.Prefix {
			if strings.HasPrefix(path, r.Path) && len(path) > len(r.Path) {
				return r, true
			}
			continue
		}
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Navigate decides what to show for path. Unknown paths fall back to the
// root, and the root renders the default view.
func Navigate(snap session.Snapshot, path string) Decision {
	if snap.Pending {
		return Decision{Verdict: Deferred}
	}

	route, ok := Lookup(path)
	if !ok {
		route, _ = Lookup(RootPath)
	}
	target := path
	if !ok || route.Path == RootPath {
		target = session.DefaultView
	}

	if route.Visibility == Public {
		return Decision{Verdict: Allow, Target: target}
	}

	d := Decide(snap, route.Roles...)
	if d.Verdict == Allow {
		d.Target = target
	}
	return d
}
