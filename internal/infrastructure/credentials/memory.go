// Package credentials provides the durable stores for the single persisted
// bearer token. Each backend keeps exactly one value under the fixed
// "accessToken" slot: Set overwrites, Clear removes, and a missing value is
// reported as ports.ErrNoCredential.
package credentials

import (
	"context"
	"sync"

	"github.com/taskflow/taskflow-go/internal/core/ports"
)

// Key is the fixed name of the single credential slot, shared by every
// backend so the refresh layer and the session store read the same value.
const Key = "accessToken"

// Memory is an in-process store for ephemeral sessions and tests.
type Memory struct {
	mu    sync.Mutex
	token string
	set   bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", ports.ErrNoCredential
	}
	return m.token, nil
}

func (m *Memory) Set(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
