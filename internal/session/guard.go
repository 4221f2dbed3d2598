package session

import (
	"context"
	"sync"

	"github.com/alexanderramin/taskhub/internal/prefs"
)

// Guard holds the current auth credential and owns the forced-logout path.
// It satisfies the gateway's CredentialSource.
type Guard struct {
	mu    sync.Mutex
	token string

	store    *prefs.Store
	onLogout func()
}

// NewGuard creates a Guard hydrated from the preference store. onLogout is
// invoked (once per ForceLogout) after the credential has been cleared;
// the shell uses it to drop back to the login screen.
func NewGuard(ctx context.Context, store *prefs.Store, onLogout func()) *Guard {
	g := &Guard{store: store, onLogout: onLogout}
	if store != nil {
		g.token = store.AuthToken(ctx)
	}
	return g
}

// Credential returns the held bearer token, or "" when logged out.
func (g *Guard) Credential() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// LoggedIn reports whether a credential is held.
func (g *Guard) LoggedIn() bool {
	return g.Credential() != ""
}

// SetCredential stores a fresh token in memory and persists it.
func (g *Guard) SetCredential(ctx context.Context, token string) error {
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
	if g.store != nil {
		return g.store.SetAuthToken(ctx, token)
	}
	return nil
}

// ForceLogout discards the credential everywhere and fires the logout
// hook. Safe to call repeatedly; the hook fires only when a credential was
// actually held.
func (g *Guard) ForceLogout(ctx context.Context) {
	g.mu.Lock()
	had := g.token != ""
	g.token = ""
	g.mu.Unlock()

	if g.store != nil {
		_ = g.store.SetAuthToken(ctx, "")
	}
	if had && g.onLogout != nil {
		g.onLogout()
	}
}
