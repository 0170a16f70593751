package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/core/domain"
	"github.com/taskflow/taskflow-go/internal/core/ports"
)

type stubGateway struct {
	mu sync.Mutex

	loginToken   string
	loginProfile *domain.UserProfile
	loginErr     error
	loginCalls   int

	currentProfile *domain.UserProfile
	currentErr     error
	currentCalls   int

	logoutErr   error
	logoutCalls int
}

func cloneStubProfile(u *domain.UserProfile) *domain.UserProfile {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (g *stubGateway) Login(_ context.Context, _ domain.Credentials) (string, *domain.UserProfile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.loginCalls++
	if g.loginErr != nil {
		return "", nil, g.loginErr
	}
	return g.loginToken, cloneStubProfile(g.loginProfile), nil
}

func (g *stubGateway) Logout(_ context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logoutCalls++
	return g.logoutErr
}

func (g *stubGateway) CurrentUser(_ context.Context) (*domain.UserProfile, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentCalls++
	if g.currentErr != nil {
		return nil, g.currentErr
	}
	return cloneStubProfile(g.currentProfile), nil
}

type memStore struct {
	mu    sync.Mutex
	token string
}

func (s *memStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ports.ErrNoCredential
	}
	return s.token, nil
}

func (s *memStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func newTestSession(g *stubGateway, store *memStore) *Session {
	return NewSession(g, store, zerolog.Nop())
}

func TestInitialize_NoCredential(t *testing.T) {
	gw := &stubGateway{}
	store := &memStore{}
	s := newTestSession(gw, store)

	s.Initialize(context.Background())

	snap := s.Snapshot()
	if snap.Loading {
		t.Fatalf("loading should be resolved")
	}
	if snap.IsAuthenticated || snap.User != nil {
		t.Fatalf("expected unauthenticated snapshot, got %+v", snap)
	}
	if gw.currentCalls != 0 {
		t.Fatalf("expected zero network calls, got %d", gw.currentCalls)
	}
}

func TestInitialize_ValidCredential(t *testing.T) {
	gw := &stubGateway{currentProfile: &domain.UserProfile{ID: "1", Name: "Ann", Role: "Admin"}}
	store := &memStore{token: "t0"}
	s := newTestSession(gw, store)

	s.Initialize(context.Background())

	snap := s.Snapshot()
	if !snap.IsAuthenticated {
		t.Fatalf("expected authenticated snapshot")
	}
	if snap.User == nil || snap.User.Role != "Admin" {
		t.Fatalf("unexpected user: %+v", snap.User)
	}
	if snap.Loading {
		t.Fatalf("loading should be resolved")
	}
	if tok, err := store.Get(context.Background()); err != nil || tok != "t0" {
		t.Fatalf("token should remain stored, got %q err %v", tok, err)
	}
}

func TestInitialize_InvalidCredential(t *testing.T) {
	gw := &stubGateway{currentErr: domain.ErrUnauthorized}
	store := &memStore{token: "expired"}
	s := newTestSession(gw, store)

	s.Initialize(context.Background())

	snap := s.Snapshot()
	if snap.IsAuthenticated || snap.User != nil {
		t.Fatalf("expected unauthenticated snapshot, got %+v", snap)
	}
	if _, err := store.Get(context.Background()); !errors.Is(err, ports.ErrNoCredential) {
		t.Fatalf("expected credential to be erased, got %v", err)
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	gw := &stubGateway{currentProfile: &domain.UserProfile{ID: "1", Name: "Ann", Role: "Admin"}}
	store := &memStore{token: "t0"}
	s := newTestSession(gw, store)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Initialize(context.Background())
		}()
	}
	wg.Wait()

	if gw.currentCalls != 1 {
		t.Fatalf("expected a single resolve-user call, got %d", gw.currentCalls)
	}
	if snap := s.Snapshot(); !snap.IsAuthenticated || snap.Loading {
		t.Fatalf("unexpected snapshot after concurrent init: %+v", snap)
	}
}

func TestLogin_Success(t *testing.T) {
	gw := &stubGateway{
		loginToken:   "t1",
		loginProfile: &domain.UserProfile{ID: "1", Name: "Bob", Role: "Manager"},
	}
	store := &memStore{}
	s := newTestSession(gw, store)
	s.Initialize(context.Background())

	user, err := s.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != "Manager" {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if tok, _ := store.Get(context.Background()); tok != "t1" {
		t.Fatalf("expected token t1 persisted, got %q", tok)
	}
	if snap := s.Snapshot(); !snap.IsAuthenticated || snap.User == nil {
		t.Fatalf("expected authenticated snapshot, got %+v", snap)
	}
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	gw := &stubGateway{loginErr: domain.NewAuthError("Invalid email or password", domain.ErrInvalidCredentials)}
	store := &memStore{}
	s := newTestSession(gw, store)
	s.Initialize(context.Background())

	_, err := s.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "bad"})
	if err == nil {
		t.Fatalf("expected login error")
	}
	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *domain.AuthError, got %T", err)
	}
	if ae.Message != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", ae.Message)
	}
	if snap := s.Snapshot(); snap.IsAuthenticated || snap.User != nil {
		t.Fatalf("state should be untouched, got %+v", snap)
	}
	if _, err := store.Get(context.Background()); !errors.Is(err, ports.ErrNoCredential) {
		t.Fatalf("no token should be persisted")
	}
}

func TestLogin_GenericFallbackMessage(t *testing.T) {
	gw := &stubGateway{loginErr: errors.New("connection refused")}
	s := newTestSession(gw, &memStore{})
	s.Initialize(context.Background())

	_, err := s.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"})
	var ae *domain.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected *domain.AuthError, got %T", err)
	}
	if ae.Message != "Login failed" {
		t.Fatalf("expected fallback message, got %q", ae.Message)
	}
}

func TestLogout_AlwaysClears(t *testing.T) {
	for _, serverErr := range []error{nil, errors.New("server unavailable")} {
		gw := &stubGateway{
			loginToken:   "t1",
			loginProfile: &domain.UserProfile{ID: "1", Role: "Admin"},
			logoutErr:    serverErr,
		}
		store := &memStore{}
		s := newTestSession(gw, store)
		s.Initialize(context.Background())
		if _, err := s.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"}); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		s.Logout(context.Background())

		if gw.logoutCalls != 1 {
			t.Fatalf("expected exactly one logout call, got %d", gw.logoutCalls)
		}
		if snap := s.Snapshot(); snap.IsAuthenticated || snap.User != nil {
			t.Fatalf("serverErr=%v: expected cleared state, got %+v", serverErr, snap)
		}
		if _, err := store.Get(context.Background()); !errors.Is(err, ports.ErrNoCredential) {
			t.Fatalf("serverErr=%v: expected credential erased", serverErr)
		}
	}
}

func TestHasAnyRole(t *testing.T) {
	gw := &stubGateway{
		loginToken:   "t1",
		loginProfile: &domain.UserProfile{ID: "1", Role: "admin"},
	}
	s := newTestSession(gw, &memStore{})

	// No user yet: always false.
	if s.HasAnyRole("Admin", "Manager") {
		t.Fatalf("expected false with no user")
	}
	if s.HasRole("Admin") {
		t.Fatalf("expected false with no user")
	}

	s.Initialize(context.Background())
	if _, err := s.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if !s.HasAnyRole("ADMIN", "Manager") {
		t.Fatalf("expected case-insensitive match")
	}
	if !s.HasRole("Admin") {
		t.Fatalf("expected case-insensitive match")
	}
	if s.HasAnyRole("Viewer") {
		t.Fatalf("expected no match for Viewer")
	}
	if s.HasAnyRole() {
		t.Fatalf("expected false for empty role set")
	}
}

func TestSubscribe_NotifiedAfterCommit(t *testing.T) {
	gw := &stubGateway{
		loginToken:   "t1",
		loginProfile: &domain.UserProfile{ID: "1", Role: "Admin"},
	}
	s := newTestSession(gw, &memStore{})

	var mu sync.Mutex
	var seen []domain.SessionSnapshot
	unsubscribe := s.Subscribe(func(snap domain.SessionSnapshot) {
		mu.Lock()
		seen = append(seen, snap)
		mu.Unlock()
	})

	s.Initialize(context.Background())
	if _, err := s.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	s.Logout(context.Background())

	unsubscribe()
	s.Logout(context.Background()) // must not notify after unsubscribe

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(seen))
	}
	if seen[0].Loading || seen[0].IsAuthenticated {
		t.Fatalf("init notification: %+v", seen[0])
	}
	if !seen[1].IsAuthenticated || seen[1].User == nil {
		t.Fatalf("login notification: %+v", seen[1])
	}
	if seen[2].IsAuthenticated || seen[2].User != nil {
		t.Fatalf("logout notification: %+v", seen[2])
	}
}

func TestSnapshot_IsolatedCopy(t *testing.T) {
	gw := &stubGateway{
		loginToken:   "t1",
		loginProfile: &domain.UserProfile{ID: "1", Name: "Ann", Role: "Admin"},
	}
	s := newTestSession(gw, &memStore{})
	s.Initialize(context.Background())
	if _, err := s.Login(context.Background(), domain.Credentials{Email: "a@b.com", Password: "x"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	snap := s.Snapshot()
	snap.User.Role = "Viewer"

	if got := s.Snapshot().User.Role; got != "Admin" {
		t.Fatalf("snapshot mutation leaked into store: %s", got)
	}
}
