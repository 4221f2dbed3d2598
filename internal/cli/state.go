package cli

import (
	"time"

	"github.com/alexanderramin/taskhub/internal/config"
	"github.com/alexanderramin/taskhub/internal/gateway"
	"github.com/alexanderramin/taskhub/internal/prefs"
	"github.com/alexanderramin/taskhub/internal/reconcile"
	"github.com/alexanderramin/taskhub/internal/session"
)

// App bundles everything the TUI and cobra commands need.
type App struct {
	Config *config.Config
	Prefs  *prefs.Store
	Guard  *session.Guard
	Remote *gateway.Client
	Rec    *reconcile.Reconciler

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
}

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Display preferences, hydrated from the prefs store on startup.
	Theme    string
	Density  string
	DarkMode bool

	// Now is injectable for deterministic view tests.
	Now func() time.Time
}

// Compact reports whether the compact row density is active.
func (s *SharedState) Compact() bool {
	return s.Density == "compact"
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines), status bar (2 lines) and toast (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
