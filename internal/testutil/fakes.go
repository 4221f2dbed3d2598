package testutil

import (
	"context"
	"sync"
)

// FakeGuard is an in-memory session guard for reconciler tests.
type FakeGuard struct {
	mu      sync.Mutex
	Token   string
	Logouts int
}

func (g *FakeGuard) Credential() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.Token
}

func (g *FakeGuard) ForceLogout(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Token = ""
	g.Logouts++
}

// MemOrderStore keeps the manual order in memory. SetErr makes every
// write fail.
type MemOrderStore struct {
	mu     sync.Mutex
	Order  []string
	SetErr error
}

func (s *MemOrderStore) ManualOrder(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Order))
	copy(out, s.Order)
	return out
}

func (s *MemOrderStore) SetManualOrder(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.Order = append([]string(nil), ids...)
	return nil
}
