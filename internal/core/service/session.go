package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/core/domain"
	"github.com/taskflow/taskflow-go/internal/core/ports"
	"github.com/taskflow/taskflow-go/internal/metrics"
)

// Listener receives the committed snapshot after each session mutation.
type Listener func(domain.SessionSnapshot)

// Session is the single source of truth for the current user. One instance is
// shared process-wide; all reads go through Snapshot and all writes through
// Initialize, Login, and Logout. Mutations are serialized: each commit is
// atomic with respect to every field of the snapshot.
type Session struct {
	gateway ports.AuthGateway
	creds   ports.CredentialStore
	log     zerolog.Logger

	mu        sync.Mutex
	snap      domain.SessionSnapshot
	initDone  chan struct{} // nil until Initialize first runs; closed when resolved
	listeners map[int]Listener
	nextID    int
}

// NewSession builds a session store in its boot state: no user, not
// authenticated, loading until Initialize resolves.
func NewSession(gateway ports.AuthGateway, creds ports.CredentialStore, log zerolog.Logger) *Session {
	return &Session{
		gateway:   gateway,
		creds:     creds,
		log:       log,
		snap:      domain.SessionSnapshot{Loading: true},
		listeners: make(map[int]Listener),
	}
}

// Initialize resolves the persisted credential into a session, exactly once
// per lifetime. Without a stored credential it resolves unauthenticated
// without touching the network. With one, it calls the resolve-user endpoint;
// any failure (expired token, network error, malformed response) erases the
// credential and resolves unauthenticated. Initialize never fails: it always
// completes into a determinate snapshot, and concurrent callers block until
// the first invocation's resolution instead of issuing a second request.
func (s *Session) Initialize(ctx context.Context) {
	s.mu.Lock()
	if s.initDone != nil {
		done := s.initDone
		s.mu.Unlock()
		<-done
		return
	}
	done := make(chan struct{})
	s.initDone = done
	s.mu.Unlock()
	defer close(done)

	if _, err := s.creds.Get(ctx); err != nil {
		if !errors.Is(err, ports.ErrNoCredential) {
			s.log.Error().Err(err).Msg("session: credential read failed")
		}
		metrics.SessionInitTotal.WithLabelValues("no_credential").Inc()
		s.resolve(nil)
		return
	}

	profile, err := s.gateway.CurrentUser(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session: stored credential rejected, clearing it")
		if cerr := s.creds.Clear(ctx); cerr != nil {
			s.log.Error().Err(cerr).Msg("session: failed to clear rejected credential")
		}
		metrics.SessionInitTotal.WithLabelValues("rejected").Inc()
		s.resolve(nil)
		return
	}

	metrics.SessionInitTotal.WithLabelValues("authenticated").Inc()
	s.resolve(profile)
}

// Login authenticates against the remote login endpoint. On success the
// returned token is persisted and the snapshot committed before Login
// returns, so no observer sees a partial transition. On failure the state and
// the credential store are left untouched and the error is a
// *domain.AuthError carrying a display-ready message.
func (s *Session) Login(ctx context.Context, creds domain.Credentials) (*domain.UserProfile, error) {
	token, profile, err := s.gateway.Login(ctx, creds)
	if err != nil {
		metrics.SessionLoginsTotal.WithLabelValues("rejected").Inc()
		var ae *domain.AuthError
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, domain.NewAuthError("", err)
	}

	if err := s.creds.Set(ctx, token); err != nil {
		s.log.Error().Err(err).Msg("session: failed to persist credential")
		metrics.SessionLoginsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.NewAuthError("", err)
	}

	s.commit(profile, true)
	metrics.SessionLoginsTotal.WithLabelValues("success").Inc()
	return cloneProfile(profile), nil
}

// Logout tears the session down. The server-side call is best effort: its
// failure is logged and swallowed, and the credential and local state are
// cleared unconditionally, so the client never believes it still has a
// session after Logout returns.
func (s *Session) Logout(ctx context.Context) {
	if err := s.gateway.Logout(ctx); err != nil {
		metrics.SessionLogoutsTotal.WithLabelValues("failed").Inc()
		s.log.Warn().Err(err).Msg("session: server logout failed, clearing local session anyway")
	} else {
		metrics.SessionLogoutsTotal.WithLabelValues("ok").Inc()
	}

	if err := s.creds.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("session: failed to clear credential")
	}
	s.commit(nil, false)
}

// Snapshot returns a copy of the current session state. The returned value,
// including the profile, is owned by the caller.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snap
	snap.User = cloneProfile(s.snap.User)
	return snap
}

// HasRole reports whether the current user's role equals role, ignoring case.
func (s *Session) HasRole(role string) bool {
	s.mu.Lock()
	user := s.snap.User
	s.mu.Unlock()
	return user.HasRole(role)
}

// HasAnyRole reports whether the current user's role matches any of roles,
// ignoring case.
func (s *Session) HasAnyRole(roles ...string) bool {
	s.mu.Lock()
	user := s.snap.User
	s.mu.Unlock()
	return user.HasAnyRole(roles...)
}

// Subscribe registers fn to be called with the committed snapshot after every
// mutation. The returned function removes the subscription.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// resolve commits the outcome of Initialize, ending the loading phase.
// Loading never reverts to true afterwards.
func (s *Session) resolve(user *domain.UserProfile) {
	s.mu.Lock()
	s.snap = domain.SessionSnapshot{
		User:            cloneProfile(user),
		IsAuthenticated: user != nil,
		Loading:         false,
	}
	s.notifyLocked()
}

// commit applies a login/logout transition. Loading is left as-is: only
// resolve may end the loading phase.
func (s *Session) commit(user *domain.UserProfile, authenticated bool) {
	s.mu.Lock()
	s.snap.User = cloneProfile(user)
	s.snap.IsAuthenticated = authenticated && user != nil
	s.notifyLocked()
}

// notifyLocked snapshots the listener set and state, releases the lock, and
// delivers the notification. Callers must hold s.mu; it is released on return.
func (s *Session) notifyLocked() {
	snap := s.snap
	snap.User = cloneProfile(s.snap.User)
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func cloneProfile(u *domain.UserProfile) *domain.UserProfile {
	if u == nil {
		return nil
	}
	clone := *u
	if u.Extra != nil {
		clone.Extra = make(map[string]any, len(u.Extra))
		for k, v := range u.Extra {
			clone.Extra[k] = v
		}
	}
	return &clone
}
