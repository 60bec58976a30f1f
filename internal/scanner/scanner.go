// Package scanner produces the category findings snapshots the
// orchestrator aggregates. Each Scan* call is read-only, honors its
// context, and returns one immutable snapshot.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/config"
	"github.com/tonicapp/tonic/internal/platform"
	"github.com/tonicapp/tonic/internal/scan"
)

// Scanner walks platform path sets and classifies what it finds.
type Scanner struct {
	info   *platform.Info
	cfg    *config.Config
	logger *zap.Logger
}

// New creates a Scanner for the given platform paths and config.
func New(info *platform.Info, cfg *config.Config, logger *zap.Logger) *Scanner {
	return &Scanner{info: info, cfg: cfg, logger: logger}
}

// DiskUsage reports usage of the root volume.
func (s *Scanner) DiskUsage(ctx context.Context) (*scan.DiskUsage, error) {
	usage, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return nil, err
	}
	return &scan.DiskUsage{
		TotalBytes:  int64(usage.Total),
		UsedBytes:   int64(usage.Used),
		FreeBytes:   int64(usage.Free),
		UsedPercent: usage.UsedPercent,
	}, nil
}

// collector accumulates one FileGroup's paths during a walk.
type collector struct {
	paths []string
	sizes []int64
}

func (c *collector) add(path string, size int64) {
	c.paths = append(c.paths, path)
	c.sizes = append(c.sizes, size)
}

func (c *collector) group(name, description string) scan.FileGroup {
	return scan.NewFileGroup(name, description, c.paths, c.sizes)
}

// exclude drops collected entries that sit at or under any of the given
// prefixes.
func (c *collector) exclude(prefixes []string) {
	paths := c.paths[:0]
	sizes := c.sizes[:0]
	for i, p := range c.paths {
		excluded := false
		for _, prefix := range prefixes {
			if p == prefix || strings.HasPrefix(p, prefix+string(filepath.Separator)) {
				excluded = true
				break
			}
		}
		if !excluded {
			paths = append(paths, p)
			sizes = append(sizes, c.sizes[i])
		}
	}
	c.paths = paths
	c.sizes = sizes
}

// walkFiles walks dirs collecting files that pass match and minAge.
// Unreadable entries are skipped silently, the same way a scan shrugs
// off permission walls. Cancellation surfaces as ctx.Err().
func (s *Scanner) walkFiles(ctx context.Context, dirs []string, minAge time.Duration, match func(path string, d fs.DirEntry) bool, c *collector) error {
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if d.IsDir() {
				return nil
			}
			if match != nil && !match(path, d) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			if minAge > 0 && time.Since(info.ModTime()) < minAge {
				return nil
			}
			c.add(path, info.Size())
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// topLevelEntries collects each immediate child of dir with its full
// (recursive for directories) size. Used where whole bundles are the
// unit of cleanup, like caches and trash.
func (s *Scanner) topLevelEntries(ctx context.Context, dirs []string, c *collector) error {
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, entry.Name())
			size := s.sizeOf(path)
			if size > 0 {
				c.add(path, size)
			}
		}
	}
	return nil
}

// sizeOf returns the recursive size of path, zero when unreadable.
func (s *Scanner) sizeOf(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}
	var total int64
	filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total += fi.Size()
		}
		return nil
	})
	return total
}

// walkDirsOnly visits every directory under root. fn may return
// fs.SkipDir to prune a subtree once it has claimed it.
func walkDirsOnly(root string, fn func(path, name string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		return fn(path, d.Name())
	})
}

func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}
