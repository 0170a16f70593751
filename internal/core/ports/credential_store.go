package ports

import (
	"context"
	"errors"
)

// ErrNoCredential is returned by Get when no token is persisted. Absence is a
// normal unauthenticated state, not a failure.
var ErrNoCredential = errors.New("no credential stored")

// CredentialStore persists the single bearer token proving an authenticated
// session. Exactly one credential exists at a time: Set overwrites the prior
// value, Clear removes it. Implementations must be safe for concurrent use.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
