package scanner

import (
	"context"
	"io/fs"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/scan"
)

// ScanPerformanceIssues collects cache bulk and startup items.
func (s *Scanner) ScanPerformanceIssues(ctx context.Context) (*scan.PerformanceCategory, error) {
	start := time.Now()

	appCaches := &collector{}
	if err := s.topLevelEntries(ctx, s.info.CacheDirs, appCaches); err != nil {
		return nil, err
	}
	// Browser caches are reported separately; drop them from the app
	// cache group so the two never overlap.
	appCaches.exclude(s.info.BrowserCaches)

	browserCaches := &collector{}
	for _, dir := range s.info.BrowserCaches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if size := s.sizeOf(dir); size > 0 {
			browserCaches.add(dir, size)
		}
	}

	agents := &collector{}
	isAgent := func(path string, d fs.DirEntry) bool {
		name := strings.ToLower(d.Name())
		return strings.HasSuffix(name, ".plist") || strings.HasSuffix(name, ".desktop")
	}
	if err := s.walkFiles(ctx, s.info.LaunchAgentDirs, 0, isAgent, agents); err != nil {
		return nil, err
	}

	perf := &scan.PerformanceCategory{
		AppCaches:     appCaches.group("Application Caches", "Caches rebuilt on demand"),
		BrowserCaches: browserCaches.group("Browser Caches", "Web content caches"),
		LaunchAgents:  agents.group("Launch Agents", "Items that run at login"),
	}

	s.logger.Debug("performance scan done",
		zap.Int64("cache_size", perf.CacheSize()),
		zap.Int("agents", perf.LaunchAgents.Count),
		zap.Duration("took", time.Since(start)))
	return perf, nil
}
