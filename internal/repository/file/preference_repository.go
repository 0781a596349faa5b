package file

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type preferences struct {
	HighlightOnly bool `json:"highlight_only"`
}

// PreferenceRepository persists the highlight-only flag as a small JSON
// file, the sidecar's stand-in for browser local storage. A missing or
// corrupt file reads as false.
type PreferenceRepository struct {
	mu    sync.Mutex
	path  string
	prefs preferences
}

func NewPreferenceRepository(path string) *PreferenceRepository {
	r := &PreferenceRepository{path: path}
	data, err := os.ReadFile(path)
	if err == nil {
		// Corrupt content falls through to the zero value.
		_ = json.Unmarshal(data, &r.prefs)
	}
	return r
}

func (r *PreferenceRepository) HighlightOnly() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prefs.HighlightOnly
}

func (r *PreferenceRepository) SetHighlightOnly(v bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs.HighlightOnly = v
	data, err := json.Marshal(r.prefs)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(r.path, data, 0o644)
}
