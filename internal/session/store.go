// Package session holds the client-side authentication state machine.
//
// A Store moves between Unresolved, Anonymous and Authenticated through named
// transitions only. At most one identity call is in flight per Store; a
// second mutating call made meanwhile fails with errs.ErrSessionBusy.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
)

// Store is the single owner of a client's session state
type Store struct {
	api    service.IdentityAPI
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	identity *entity.Identity
	inflight bool
	subs     map[int]chan Snapshot
	nextSub  int
}

// NewStore creates a new session store in the Unresolved state
func NewStore(api service.IdentityAPI, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		api:    api,
		logger: logger.Named("session"),
		state:  Unresolved,
		subs:   make(map[int]chan Snapshot),
	}
}

// Initialize revalidates the stored credential with the identity service.
// Any failure other than an outstanding request resolves to Anonymous.
func (s *Store) Initialize(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}

	identity, err := s.api.VerifySession(ctx)
	if outstanding(ctx, err) {
		s.finish(nil)
		return ctx.Err()
	}
	if err == nil && identity == nil {
		err = errs.ErrUnauthenticated
	}

	if err != nil {
		s.logger.Debug("session revalidation failed", zap.Error(err))
		s.finish(func() { s.resetLocked() })
		if errors.Is(err, errs.ErrUnauthenticated) {
			return nil
		}
		return err
	}

	s.finish(func() { s.authenticateLocked(identity) })
	s.logger.Info("session restored", zap.String("user_id", identity.ID.String()))
	return nil
}

// Login exchanges credentials for an identity. It is valid only from Anonymous.
// The role in the resulting identity comes from the server response.
func (s *Store) Login(ctx context.Context, creds entity.Credentials) (Intent, error) {
	if err := s.beginFrom(Anonymous); err != nil {
		return IntentNone, err
	}

	identity, err := s.api.Login(ctx, creds)
	if outstanding(ctx, err) {
		s.finish(nil)
		return IntentNone, ctx.Err()
	}
	if err != nil {
		s.finish(nil)
		s.logger.Info("login failed", zap.String("code", errs.Code(err)))
		return IntentNone, err
	}
	if identity == nil {
		s.finish(nil)
		return IntentNone, errs.New(errs.ErrUnauthenticated, "Login response carried no identity.")
	}

	s.finish(func() { s.authenticateLocked(identity) })
	s.logger.Info("logged in", zap.String("user_id", identity.ID.String()), zap.String("role", string(identity.Role)))
	return IntentNavigateDefault, nil
}

// Logout invalidates the remote session and always clears local state.
// A remote failure is returned next to IntentNavigateLogin.
func (s *Store) Logout(ctx context.Context) (Intent, error) {
	if err := s.begin(); err != nil {
		return IntentNone, err
	}

	err := s.api.Logout(ctx)
	if err != nil {
		s.logger.Warn("remote logout failed, clearing local session anyway", zap.Error(err))
	}

	s.finish(func() { s.resetLocked() })
	return IntentNavigateLogin, err
}

// ReplaceIdentity swaps the identity of an authenticated session
func (s *Store) ReplaceIdentity(identity *entity.Identity) error {
	if identity == nil {
		return errs.New(errs.ErrValidation, "Identity must not be empty.")
	}

	s.mu.Lock()
	if s.state != Authenticated {
		s.mu.Unlock()
		return errs.ErrUnauthenticated
	}
	if s.inflight {
		s.mu.Unlock()
		return errs.ErrSessionBusy
	}
	s.identity = cloneIdentity(identity)
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// UpdateProfile sends a patch to the identity service and installs the
// returned identity. A 401 expires the session.
func (s *Store) UpdateProfile(ctx context.Context, patch entity.IdentityPatch) error {
	if patch.IsEmpty() {
		return errs.New(errs.ErrValidation, "Nothing to update.")
	}
	if err := s.beginFrom(Authenticated); err != nil {
		return err
	}

	identity, err := s.api.UpdateIdentity(ctx, patch)
	if outstanding(ctx, err) {
		s.finish(nil)
		return ctx.Err()
	}
	if err == nil && identity == nil {
		err = errs.New(errs.ErrNotFound, "Profile update returned no identity.")
	}
	if err != nil {
		if errors.Is(err, errs.ErrUnauthenticated) {
			s.finish(func() { s.resetLocked() })
		} else {
			s.finish(nil)
		}
		return err
	}

	expired := false
	s.finish(func() {
		// Expire may have reset the session while the request was out
		if s.state != Authenticated {
			expired = true
			return
		}
		s.identity = cloneIdentity(identity)
	})
	if expired {
		return errs.ErrUnauthenticated
	}
	return nil
}

// Expire forces the Anonymous state after a 401 from any call.
// It is a no-op unless the session is Authenticated. An identity call still
// in flight does not install its result afterwards.
func (s *Store) Expire() {
	s.mu.Lock()
	if s.state != Authenticated {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.publishLocked()
	s.mu.Unlock()

	s.logger.Info("session expired")
}

// Snapshot returns the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel that receives the latest snapshot after every
// change. Slow readers only see the most recent one. The returned func
// unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

func (s *Store) begin() error {
	s.mu.Lock()
	if s.inflight {
		s.mu.Unlock()
		return errs.ErrSessionBusy
	}
	s.inflight = true
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

func (s *Store) beginFrom(want State) error {
	s.mu.Lock()
	switch {
	case s.inflight || s.state == Unresolved:
		s.mu.Unlock()
		return errs.ErrSessionBusy
	case s.state != want && want == Anonymous:
		s.mu.Unlock()
		return errs.ErrAlreadyAuthenticated
	case s.state != want:
		s.mu.Unlock()
		return errs.ErrUnauthenticated
	}
	s.inflight = true
	s.publishLocked()
	s.mu.Unlock()
	return nil
}

// finish applies fn under the lock, clears the in-flight flag and notifies subscribers
func (s *Store) finish(fn func()) {
	s.mu.Lock()
	if fn != nil {
		fn()
	}
	s.inflight = false
	s.publishLocked()
	s.mu.Unlock()
}

func (s *Store) authenticateLocked(identity *entity.Identity) {
	s.identity = cloneIdentity(identity)
	s.state = Authenticated
}

func (s *Store) resetLocked() {
	s.identity = nil
	s.state = Anonymous
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		State:    s.state,
		Identity: cloneIdentity(s.identity),
		Pending:  s.inflight || s.state == Unresolved,
	}
}

// publishLocked replaces any unread snapshot in each subscriber channel
func (s *Store) publishLocked() {
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// outstanding reports whether err only means the caller stopped waiting
func outstanding(ctx context.Context, err error) bool {
	return err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err())
}

func cloneIdentity(identity *entity.Identity) *entity.Identity {
	if identity == nil {
		return nil
	}
	c := *identity
	return &c
}
