// Package snapshot persists the prior run's output document. The store keeps
// exactly one snapshot: each run reads the previous one and overwrites it
// with its own output.
package snapshot

import (
	"encoding/json"
	"os"

	"github.com/omidrezab/parsfx/pkg/models"
)

// Store reads and writes the snapshot file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string { return s.path }

// Load reads the previous run's snapshot. A missing file, an unreadable file,
// and malformed JSON all report ok=false — the caller proceeds as though no
// prior snapshot existed, and every comparison resolves to Indeterminate.
// Load never fails the run.
func (s *Store) Load() (models.Snapshot, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false
	}
	return snap, true
}

// Save overwrites the snapshot file with the given document, pretty-printed.
// Unlike Load, a Save failure is an error: the run produced data and silently
// dropping it would desynchronize the next run's baselines.
func (s *Store) Save(snap models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(data, '\n'), 0o644)
}
