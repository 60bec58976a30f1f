// Package fileops is the delete primitive behind fix execution. Every
// removal passes the same safety gate: protected path prefixes, symlink
// refusal, and a minimum file age.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Manager performs safety-checked deletion and size measurement.
type Manager struct {
	protected []string
	minAge    time.Duration
	dryRun    bool
	logger    *zap.Logger
}

// Options configures a Manager.
type Options struct {
	ProtectedPaths []string
	MinFileAge     time.Duration
	DryRun         bool
}

// NewManager returns a Manager with the given safety options.
func NewManager(opts Options, logger *zap.Logger) *Manager {
	return &Manager{
		protected: opts.ProtectedPaths,
		minAge:    opts.MinFileAge,
		dryRun:    opts.DryRun,
		logger:    logger,
	}
}

// Size returns the total bytes under path, following directories but not
// symlinks. Missing paths report zero: a finding deleted out from under
// us is not an error.
func (m *Manager) Size(path string) (int64, error) {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return info.Size(), nil
	}

	var total int64
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries just don't count
		}
		if d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total += fi.Size()
		}
		return nil
	})
	return total, err
}

// Delete removes one path after the safety gate. In dry-run mode it
// validates but touches nothing.
func (m *Manager) Delete(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // already gone
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := m.checkSafe(path, info); err != nil {
		return err
	}

	if m.dryRun {
		m.logger.Info("dry run, would delete",
			zap.String("path", path),
			zap.Int64("size", info.Size()))
		return nil
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}

	m.logger.Debug("deleted", zap.String("path", path))
	return nil
}

// checkSafe rejects paths that must never be removed automatically.
func (m *Manager) checkSafe(path string, info os.FileInfo) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("refusing relative path %q", path)
	}

	clean := filepath.Clean(path)
	for _, p := range m.protected {
		if clean == p || strings.HasPrefix(clean, p+string(filepath.Separator)) {
			return fmt.Errorf("path %s is protected", path)
		}
	}

	// A finding may have been swapped for a symlink since the scan;
	// following it could delete an unintended target.
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("path %s is a symlink", path)
	}

	if m.minAge > 0 && time.Since(info.ModTime()) < m.minAge {
		return fmt.Errorf("path %s modified too recently", path)
	}

	return nil
}
