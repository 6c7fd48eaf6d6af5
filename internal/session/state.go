package session

import (
	"mindtrack/internal/domain/entity"
)

// State is the authentication state of a client session
type State int

const (
	// Unresolved until the first Initialize completes
	Unresolved State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the session at one point in time
type Snapshot struct {
	State    State
	Identity *entity.Identity
	Pending  bool
}

// Authenticated reports whether the snapshot holds an identity
func (s Snapshot) Authenticated() bool {
	return s.State == Authenticated && s.Identity != nil
}

// Role returns the identity's role, or "" for anonymous snapshots
func (s Snapshot) Role() entity.Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

// View paths the session signals navigation to
const (
	DefaultView = "/dashboard"
	LoginView   = "/login"
)

// Intent is a navigation request returned by a transition.
// Callers perform the navigation; the store never does.
type Intent int

const (
	IntentNone Intent = iota
	IntentNavigateDefault
	IntentNavigateLogin
)

// Target returns the view path for the intent, or "" for IntentNone
func (i Intent) Target() string {
	switch i {
	case IntentNavigateDefault:
		return DefaultView
	case IntentNavigateLogin:
		return LoginView
	default:
		return ""
	}
}

func (i Intent) String() string {
	switch i {
	case IntentNavigateDefault:
		return "navigate_default"
	case IntentNavigateLogin:
		return "navigate_login"
	default:
		return "none"
	}
}
