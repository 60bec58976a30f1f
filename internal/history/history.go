// Package history persists scan results as JSON files under the user
// config directory so past scores can be compared between runs.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tonicapp/tonic/internal/scan"
)

// Store manages scan-result persistence.
type Store struct {
	dir  string
	keep int
}

// NewStore creates a store rooted at dir, retaining at most keep
// results (zero keeps everything).
func NewStore(dir string, keep int) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Store{dir: dir, keep: keep}, nil
}

// DefaultDir returns the standard history location.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tonic", "history"), nil
}

// Save writes one result and prunes old entries past the retention
// limit.
func (s *Store) Save(result *scan.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", result.Timestamp.UTC().Format("20060102T150405"), result.ID)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	return s.prune()
}

// Load reads one result by ID.
func (s *Store) Load(id string) (*scan.Result, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if strings.Contains(f, id) {
			return s.read(f)
		}
	}
	return nil, fmt.Errorf("no saved result with id %s", id)
}

// Latest returns the most recent result, or nil when none is saved.
func (s *Store) Latest() (*scan.Result, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return s.read(files[len(files)-1])
}

// List returns all saved results, oldest first.
func (s *Store) List() ([]*scan.Result, error) {
	files, err := s.files()
	if err != nil {
		return nil, err
	}
	results := make([]*scan.Result, 0, len(files))
	for _, f := range files {
		r, err := s.read(f)
		if err != nil {
			continue // a corrupt entry shouldn't hide the rest
		}
		results = append(results, r)
	}
	return results, nil
}

// files lists history entries sorted by name; the timestamp prefix
// makes lexical order chronological.
func (s *Store) files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) read(name string) (*scan.Result, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}
	var result scan.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse result file: %w", err)
	}
	return &result, nil
}

func (s *Store) prune() error {
	if s.keep <= 0 {
		return nil
	}
	files, err := s.files()
	if err != nil {
		return err
	}
	for len(files) > s.keep {
		if err := os.Remove(filepath.Join(s.dir, files[0])); err != nil {
			return err
		}
		files = files[1:]
	}
	return nil
}
