package mockapi

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-go/internal/core/domain"
	"github.com/taskflow/taskflow-go/internal/core/ports"
	"github.com/taskflow/taskflow-go/internal/core/service"
	"github.com/taskflow/taskflow-go/internal/infrastructure/api"
	"github.com/taskflow/taskflow-go/internal/infrastructure/credentials"
)

// newSDK wires the full client stack against a mock server, the way the CLI
// boots it.
func newSDK(t *testing.T, srv *httptest.Server) (*service.Session, *api.Client, *credentials.Memory) {
	t.Helper()
	store := credentials.NewMemory()
	client := api.NewClient(srv.URL, 5*time.Second, store, zerolog.Nop())
	session := service.NewSession(api.NewAuthGateway(client), store, zerolog.Nop())
	return session, client, store
}

func TestSDK_LoginWhoamiLogout(t *testing.T) {
	srv := newTestServer(t)
	session, client, store := newSDK(t, srv)
	ctx := context.Background()

	session.Initialize(ctx)
	if snap := session.Snapshot(); snap.IsAuthenticated || snap.Loading {
		t.Fatalf("expected resolved unauthenticated boot, got %+v", snap)
	}

	user, err := session.Login(ctx, domain.Credentials{Email: "admin@taskflow.dev", Password: "admin123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}

	// The persisted credential now authenticates gateway calls.
	tasks := api.NewTaskGateway(client)
	created, err := tasks.Create(ctx, &domain.Task{
		Title:    "Wire the dashboard",
		Status:   domain.StatusTodo,
		Priority: domain.PriorityMedium,
	})
	if err != nil {
		t.Fatalf("task create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created task missing id")
	}

	// Role gating end to end.
	guard := service.NewRouteGuard()
	if d := guard.Decide(session.Snapshot(), []string{domain.RoleAdmin, domain.RoleManager}, "/users"); d.Action != service.GuardRender {
		t.Fatalf("expected render for admin on /users, got %v", d.Action)
	}

	session.Logout(ctx)
	if _, err := store.Get(ctx); !errors.Is(err, ports.ErrNoCredential) {
		t.Fatalf("expected credential cleared after logout")
	}
	if _, err := tasks.List(ctx, domain.TaskFilter{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}

func TestSDK_BootWithValidStoredToken(t *testing.T) {
	srv := newTestServer(t)
	session, _, store := newSDK(t, srv)
	ctx := context.Background()

	// Acquire a token out of band, as a previous run would have.
	bootstrap, _, _ := newSDK(t, srv)
	if _, err := bootstrap.Login(ctx, domain.Credentials{Email: "manager@taskflow.dev", Password: "manager123"}); err != nil {
		t.Fatalf("bootstrap login failed: %v", err)
	}

	token, err := bootstrapStoreToken(t, bootstrap)
	if err != nil {
		t.Fatalf("mint stored token: %v", err)
	}
	_ = store.Set(ctx, token)

	session.Initialize(ctx)
	snap := session.Snapshot()
	if !snap.IsAuthenticated || snap.User == nil || snap.User.Role != domain.RoleManager {
		t.Fatalf("expected authenticated manager, got %+v", snap)
	}
}

// bootstrapStoreToken mints a token for the user an already-authenticated
// session resolved, using the same signing secret as the test router.
func bootstrapStoreToken(t *testing.T, session *service.Session) (string, error) {
	t.Helper()
	user := session.Snapshot().User
	if user == nil {
		t.Fatalf("bootstrap session not authenticated")
	}
	return testIssuer().Issue(user)
}

func TestSDK_BootWithExpiredTokenClearsIt(t *testing.T) {
	srv := newTestServer(t)
	session, _, store := newSDK(t, srv)
	ctx := context.Background()

	expired, err := NewTokenIssuer("test-secret", -time.Minute).Issue(&domain.UserProfile{ID: "u1", Role: "Admin"})
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}
	_ = store.Set(ctx, expired)

	session.Initialize(ctx)
	if snap := session.Snapshot(); snap.IsAuthenticated || snap.User != nil {
		t.Fatalf("expected unauthenticated boot, got %+v", snap)
	}
	if _, err := store.Get(ctx); !errors.Is(err, ports.ErrNoCredential) {
		t.Fatalf("expected rejected credential erased")
	}
}
