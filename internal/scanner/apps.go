package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/scan"
)

// ScanAppIssues inventories installed applications and flags unused,
// duplicate and oversized ones, plus support files orphaned by apps
// that are no longer installed.
func (s *Scanner) ScanAppIssues(ctx context.Context) (*scan.AppIssueCategory, error) {
	start := time.Now()

	apps, err := s.listApps(ctx)
	if err != nil {
		return nil, err
	}

	issues := &scan.AppIssueCategory{}
	unusedCutoff := time.Now().Add(-days(s.cfg.Apps.UnusedAfterDays))
	seen := make(map[string]bool, len(apps))

	for _, app := range apps {
		key := normalizeAppName(app.Name)
		if seen[key] {
			issues.DuplicateApps = append(issues.DuplicateApps, app)
		} else {
			seen[key] = true
		}

		if !app.LastOpened.IsZero() && app.LastOpened.Before(unusedCutoff) {
			issues.UnusedApps = append(issues.UnusedApps, app)
		}
		if s.cfg.Apps.LargeAppBytes > 0 && app.Size >= s.cfg.Apps.LargeAppBytes {
			issues.LargeApps = append(issues.LargeApps, app)
		}
	}

	orphaned, err := s.collectOrphans(ctx, seen)
	if err != nil {
		return nil, err
	}
	issues.OrphanedFiles = orphaned

	s.logger.Debug("app scan done",
		zap.Int("apps", len(apps)),
		zap.Int("unused", len(issues.UnusedApps)),
		zap.Int("duplicates", len(issues.DuplicateApps)),
		zap.Duration("took", time.Since(start)))
	return issues, nil
}

// listApps enumerates the immediate entries of each application
// directory. Bundle modification time stands in for last-opened; the
// real launch-services record is behind platform APIs this scan stays
// clear of.
func (s *Scanner) listApps(ctx context.Context) ([]scan.AppInfo, error) {
	var apps []scan.AppInfo

	for _, dir := range s.info.AppDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			path := filepath.Join(dir, name)
			info, err := entry.Info()
			if err != nil {
				continue
			}
			apps = append(apps, scan.AppInfo{
				Name:       strings.TrimSuffix(strings.TrimSuffix(name, ".app"), ".desktop"),
				Path:       path,
				Size:       s.sizeOf(path),
				LastOpened: info.ModTime(),
			})
		}
	}
	return apps, nil
}

// collectOrphans flags support directories whose owning app is gone.
// Only the top level of each support dir is considered; matching is by
// normalized name, which errs toward keeping data.
func (s *Scanner) collectOrphans(ctx context.Context, installed map[string]bool) (scan.FileGroup, error) {
	c := &collector{}

	for _, dir := range s.info.AppSupportDirs {
		if err := ctx.Err(); err != nil {
			return scan.FileGroup{}, err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return scan.FileGroup{}, err
			}
			if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			if likelySystemDir(entry.Name()) {
				continue
			}
			if installed[normalizeAppName(entry.Name())] {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if size := s.sizeOf(path); size > 0 {
				c.add(path, size)
			}
		}
	}
	return c.group("Orphaned Files", "Support files left by uninstalled apps"), nil
}

// normalizeAppName lowercases and strips punctuation so "My App 2" and
// "my-app" compare equal.
func normalizeAppName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// likelySystemDir filters support entries that belong to the OS or to
// frameworks rather than a single app.
func likelySystemDir(name string) bool {
	switch strings.ToLower(name) {
	case "apple", "microsoft", "google", "mobilesync", "addressbook",
		"icloud", "systemd", "dconf", "fontconfig", "pulse":
		return true
	}
	return false
}
