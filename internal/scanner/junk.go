package scanner

import (
	"context"
	"io/fs"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/scan"
)

// ScanJunkFiles walks the junk locations and returns one snapshot.
func (s *Scanner) ScanJunkFiles(ctx context.Context) (*scan.JunkCategory, error) {
	start := time.Now()

	temp := &collector{}
	if err := s.walkFiles(ctx, s.info.TempDirs, days(s.cfg.AgeThresholds.Temp), nil, temp); err != nil {
		return nil, err
	}

	logs := &collector{}
	isLog := func(path string, d fs.DirEntry) bool {
		name := strings.ToLower(d.Name())
		return strings.HasSuffix(name, ".log") || strings.Contains(name, ".log.")
	}
	if err := s.walkFiles(ctx, s.info.LogDirs, days(s.cfg.AgeThresholds.Logs), isLog, logs); err != nil {
		return nil, err
	}

	trash := &collector{}
	if err := s.topLevelEntries(ctx, []string{s.info.TrashDir}, trash); err != nil {
		return nil, err
	}

	language := &collector{}
	if err := s.collectLanguagePacks(ctx, language); err != nil {
		return nil, err
	}

	downloads := &collector{}
	if err := s.walkFiles(ctx, []string{s.info.DownloadsDir}, days(s.cfg.AgeThresholds.Downloads), nil, downloads); err != nil {
		return nil, err
	}

	browser := &collector{}
	for _, path := range s.info.BrowserDataDirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if size := s.sizeOf(path); size > 0 {
			browser.add(path, size)
		}
	}

	junk := &scan.JunkCategory{
		TempFiles:     temp.group("Temporary Files", "Files in system temp locations"),
		LogFiles:      logs.group("Log Files", "Application and system logs"),
		Trash:         trash.group("Trash", "Items waiting in the trash"),
		LanguageFiles: language.group("Language Files", "Localizations for languages you don't use"),
		OldDownloads:  downloads.group("Old Downloads", "Downloads untouched for months"),
		BrowserData:   browser.group("Browsing Data", "Browser history and site data"),
	}

	s.logger.Debug("junk scan done",
		zap.Int64("size", junk.TotalSize()),
		zap.Int("count", junk.TotalCount()),
		zap.Duration("took", time.Since(start)))
	return junk, nil
}

// collectLanguagePacks finds non-primary .lproj localization bundles
// inside installed applications.
func (s *Scanner) collectLanguagePacks(ctx context.Context, c *collector) error {
	keep := map[string]bool{"en.lproj": true, "Base.lproj": true}

	for _, dir := range s.info.AppDirs {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := walkDirsOnly(dir, func(path, name string) error {
			if cerr := ctx.Err(); cerr != nil {
				return cerr
			}
			if strings.HasSuffix(name, ".lproj") && !keep[name] {
				if size := s.sizeOf(path); size > 0 {
					c.add(path, size)
				}
				return fs.SkipDir
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
