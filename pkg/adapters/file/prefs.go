package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/fitlanding/pkg/domain"
)

// Preferences implements ports.PreferenceStore as one JSON object on disk,
// the CLI counterpart of the browser's local storage.
type Preferences struct {
	Path string
	mu   sync.Mutex
}

// NewPreferences creates a store backed by path.
// If path is empty, it defaults to ".fitlanding/preferences.json".
func NewPreferences(path string) *Preferences {
	if path == "" {
		path = filepath.Join(".fitlanding", "preferences.json")
	}
	return &Preferences{Path: path}
}

func (p *Preferences) read() (map[string]string, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	return values, nil
}

// Get returns the value stored under key.
func (p *Preferences) Get(ctx context.Context, key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	values, err := p.read()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", domain.ErrPreferenceNotFound
	}
	return v, nil
}

// Set stores value under key, rewriting the file.
func (p *Preferences) Set(ctx context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	values, err := p.read()
	if err != nil {
		return err
	}
	values[key] = value
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	return writeAtomic(filepath.Dir(p.Path), p.Path, data)
}
