// Package access decides whether a session may reach a view
package access

import (
	"mindtrack/internal/domain/entity"
	"mindtrack/internal/session"
)

// Verdict is the outcome of a guard decision
type Verdict int

const (
	// Deferred means the session is still pending; render a placeholder and ask again later
	Deferred Verdict = iota
	Allow
	RedirectLogin
	RedirectFallback
)

func (v Verdict) String() string {
	switch v {
	case Deferred:
		return "deferred"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectFallback:
		return "redirect_fallback"
	default:
		return "unknown"
	}
}

// Decision is a verdict plus the path the caller should show or navigate to.
// Target is empty for Deferred.
type Decision struct {
	Verdict Verdict
	Target  string
}

// Decide gates a view requiring an authenticated session and, when roles is
// non-empty, one of the given roles. It has no side effects.
func Decide(snap session.Snapshot, roles ...entity.Role) Decision {
	if snap.Pending {
		return Decision{Verdict: Deferred}
	}
	if !snap.Authenticated() {
		return Decision{Verdict: RedirectLogin, Target: session.LoginView}
	}
	if len(roles) > 0 && !HasRole(snap.Identity.Role, roles...) {
		return Decision{Verdict: RedirectFallback, Target: session.DefaultView}
	}
	return Decision{Verdict: Allow}
}

// HasRole reports whether role is a known role listed in allowed
func HasRole(role entity.Role, allowed ...entity.Role) bool {
	switch role {
	case entity.RoleUser, entity.RoleAdmin:
	default:
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
