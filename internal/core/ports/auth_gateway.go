package ports

import (
	"context"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

// AuthGateway wraps the remote authentication endpoints.
type AuthGateway interface {
	// Login exchanges credentials for a bearer token plus the user's profile.
	// A rejection comes back as *domain.AuthError.
	Login(ctx context.Context, creds domain.Credentials) (token string, profile *domain.UserProfile, err error)

	// Logout invalidates the server-side session for the current bearer token.
	Logout(ctx context.Context) error

	// CurrentUser resolves the current bearer token into a profile.
	CurrentUser(ctx context.Context) (*domain.UserProfile, error)
}
