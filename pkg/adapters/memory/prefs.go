package memory

import (
	"context"
	"sync"

	"github.com/aretw0/fitlanding/pkg/domain"
)

// Preferences implements ports.PreferenceStore in memory.
type Preferences struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewPreferences creates a store seeded with initial values.
func NewPreferences(initial map[string]string) *Preferences {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &Preferences{values: values}
}

// Get returns the value stored under key.
func (p *Preferences) Get(ctx context.Context, key string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	if !ok {
		return "", domain.ErrPreferenceNotFound
	}
	return v, nil
}

// Set stores value under key.
func (p *Preferences) Set(ctx context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.values[key] = value
	return nil
}
