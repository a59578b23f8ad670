package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/fitlanding/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Preferences implements ports.PreferenceStore as one Redis hash per visitor.
type Preferences struct {
	client *backend.Client
	key    string
}

// NewPreferences stores the flags of visitor under prefix+"prefs:"+visitor.
func NewPreferences(client *backend.Client, prefix, visitor string) *Preferences {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Preferences{client: client, key: prefix + "prefs:" + visitor}
}

// Get returns the value stored under key.
func (p *Preferences) Get(ctx context.Context, key string) (string, error) {
	v, err := p.client.HGet(ctx, p.key, key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", domain.ErrPreferenceNotFound
		}
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return v, nil
}

// Set stores value under key.
func (p *Preferences) Set(ctx context.Context, key, value string) error {
	if err := p.client.HSet(ctx, p.key, key, value).Err(); err != nil {
		return fmt.Errorf("failed to write preference %s: %w", key, err)
	}
	return nil
}
