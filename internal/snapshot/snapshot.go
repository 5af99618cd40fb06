// Package snapshot persists the last observed set of bulletin records so
// the watch loop can tell which records are new between polls.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fukayatti/api.fukayatti0.dev/internal/bulletin"
)

// Snapshot is the set of records seen at a point in time, keyed by
// record ID.
type Snapshot struct {
	Records   map[string]bulletin.Record `json:"records"`
	UpdatedAt string                     `json:"updated_at"` // RFC3339
}

// New creates an empty snapshot.
func New() *Snapshot {
	return &Snapshot{
		Records: make(map[string]bulletin.Record),
	}
}

// FromRecords creates a snapshot from the current bulletin contents.
func FromRecords(records []bulletin.Record) *Snapshot {
	snap := New()
	for _, rec := range records {
		snap.Records[rec.ID()] = rec
	}
	return snap
}

// Diff returns the records in current that previous has not seen,
// preserving their bulletin order.
func Diff(previous *Snapshot, current []bulletin.Record) []bulletin.Record {
	if previous == nil {
		previous = New()
	}

	fresh := make([]bulletin.Record, 0)
	for _, rec := range current {
		if _, seen := previous.Records[rec.ID()]; !seen {
			fresh = append(fresh, rec)
		}
	}
	return fresh
}

// Store handles persistence of snapshots under a data directory.
type Store struct {
	dataDir string
}

// NewStore creates a Store rooted at dataDir, creating the directory if
// needed. A leading ~/ expands to the user's home directory.
func NewStore(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, "snapshot.json")
}

// Load reads the persisted snapshot. A missing file is not an error; the
// first run simply starts from an empty snapshot.
func (s *Store) Load() (*Snapshot, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	if snap.Records == nil {
		snap.Records = make(map[string]bulletin.Record)
	}

	return &snap, nil
}

// Save writes the snapshot to disk, stamping UpdatedAt.
func (s *Store) Save(snap *Snapshot) error {
	snap.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}
