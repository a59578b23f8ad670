package ports

import (
	"context"

	"github.com/aretw0/fitlanding/pkg/domain"
)

// StateStore persists quiz sessions so a stateless host can resume a wizard.
type StateStore interface {
	// Save persists the session under sessionID.
	Save(ctx context.Context, sessionID string, state *domain.QuizSession) error

	// Load retrieves the session for sessionID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.QuizSession, error)

	// Delete removes the session for sessionID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the identifiers of stored sessions.
	List(ctx context.Context) ([]string, error)
}

// PreferenceStore is the local key-value storage holding the boot-time flags
// (theme and cookie consent).
type PreferenceStore interface {
	// Get returns the raw value for key, or domain.ErrPreferenceNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error
}
