package scan

import "time"

// FileGroup is a named bundle of paths with aggregate size and count.
// Once built for a scan it is never mutated; derived totals always match
// the paths it was constructed with.
type FileGroup struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Paths       []string `json:"paths"`
	Size        int64    `json:"size"`
	Count       int      `json:"count"`
}

// NewFileGroup builds a FileGroup from paths and their sizes. The two
// slices must be index-aligned; count and size are derived, never passed in.
func NewFileGroup(name, description string, paths []string, sizes []int64) FileGroup {
	g := FileGroup{
		Name:        name,
		Description: description,
		Paths:       append([]string(nil), paths...),
		Count:       len(paths),
	}
	for _, s := range sizes {
		g.Size += s
	}
	return g
}

// IsEmpty reports whether the group holds no paths.
func (g FileGroup) IsEmpty() bool {
	return g.Count == 0
}

// AppInfo describes one installed application flagged by the app scan.
type AppInfo struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Version    string    `json:"version"`
	LastOpened time.Time `json:"last_opened"`
	BundleID   string    `json:"bundle_id,omitempty"`
}

// DiskUsage summarizes the volume the scan ran against.
type DiskUsage struct {
	TotalBytes  int64   `json:"total_bytes"`
	UsedBytes   int64   `json:"used_bytes"`
	FreeBytes   int64   `json:"free_bytes"`
	UsedPercent float64 `json:"used_percent"`
}

// JunkCategory holds the junk-file findings for one scan. Produced
// wholesale by the scanner; readers never mutate it in place.
type JunkCategory struct {
	TempFiles     FileGroup `json:"temp_files"`
	LogFiles      FileGroup `json:"log_files"`
	Trash         FileGroup `json:"trash"`
	LanguageFiles FileGroup `json:"language_files"`
	OldDownloads  FileGroup `json:"old_downloads"`
	BrowserData   FileGroup `json:"browser_data"`
}

// TotalSize returns the reclaimable bytes across all junk groups.
func (c JunkCategory) TotalSize() int64 {
	return c.TempFiles.Size + c.LogFiles.Size + c.Trash.Size +
		c.LanguageFiles.Size + c.OldDownloads.Size + c.BrowserData.Size
}

// TotalCount returns the number of flagged junk items.
func (c JunkCategory) TotalCount() int {
	return c.TempFiles.Count + c.LogFiles.Count + c.Trash.Count +
		c.LanguageFiles.Count + c.OldDownloads.Count + c.BrowserData.Count
}

// PerformanceCategory holds cache and startup findings.
type PerformanceCategory struct {
	AppCaches     FileGroup `json:"app_caches"`
	BrowserCaches FileGroup `json:"browser_caches"`
	LaunchAgents  FileGroup `json:"launch_agents"`
}

// CacheSize returns the bytes held in app and browser caches combined.
func (c PerformanceCategory) CacheSize() int64 {
	return c.AppCaches.Size + c.BrowserCaches.Size
}

// TotalSize returns reclaimable bytes for the category. Launch agents are
// counted, not sized: reviewing them frees startup time, not disk.
func (c PerformanceCategory) TotalSize() int64 {
	return c.CacheSize()
}

// TotalCount returns the number of flagged performance items.
func (c PerformanceCategory) TotalCount() int {
	return c.AppCaches.Count + c.BrowserCaches.Count + c.LaunchAgents.Count
}

// AppIssueCategory holds application-level findings.
type AppIssueCategory struct {
	UnusedApps    []AppInfo `json:"unused_apps"`
	DuplicateApps []AppInfo `json:"duplicate_apps"`
	LargeApps     []AppInfo `json:"large_apps"`
	OrphanedFiles FileGroup `json:"orphaned_files"`
}

// TotalSize returns reclaimable bytes for the category. Large apps are
// advisory and excluded so space is never double-counted against unused
// or duplicate entries.
func (c AppIssueCategory) TotalSize() int64 {
	var total int64
	for _, a := range c.UnusedApps {
		total += a.Size
	}
	for _, a := range c.DuplicateApps {
		total += a.Size
	}
	return total + c.OrphanedFiles.Size
}

// TotalCount returns the number of flagged app issues.
func (c AppIssueCategory) TotalCount() int {
	return len(c.UnusedApps) + len(c.DuplicateApps) + len(c.LargeApps) + c.OrphanedFiles.Count
}

// Result is the immutable product of one completed scan.
type Result struct {
	ID                    string               `json:"id"`
	Timestamp             time.Time            `json:"timestamp"`
	HealthScore           int                  `json:"health_score"`
	DiskUsage             *DiskUsage           `json:"disk_usage,omitempty"`
	Junk                  *JunkCategory        `json:"junk,omitempty"`
	Performance           *PerformanceCategory `json:"performance,omitempty"`
	AppIssues             *AppIssueCategory    `json:"app_issues,omitempty"`
	TotalReclaimableSpace int64                `json:"total_reclaimable_space"`
}

// RecommendationType identifies the finding a recommendation acts on.
type RecommendationType string

const (
	RecTempFiles     RecommendationType = "temp_files"
	RecLogFiles      RecommendationType = "log_files"
	RecTrash         RecommendationType = "trash"
	RecLanguageFiles RecommendationType = "language_files"
	RecOldDownloads  RecommendationType = "old_downloads"
	RecBrowserData   RecommendationType = "browser_data"
	RecAppCaches     RecommendationType = "app_caches"
	RecBrowserCaches RecommendationType = "browser_caches"
	RecLaunchAgents  RecommendationType = "launch_agents"
	RecUnusedApps    RecommendationType = "unused_apps"
	RecDuplicateApps RecommendationType = "duplicate_apps"
	RecLargeApps     RecommendationType = "large_apps"
	RecOrphanedFiles RecommendationType = "orphaned_files"
)

// Recommendation is one prioritized, safety-annotated action.
type Recommendation struct {
	Type           RecommendationType `json:"type"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Actionable     bool               `json:"actionable"`
	SafeToFix      bool               `json:"safe_to_fix"`
	SpaceToReclaim int64              `json:"space_to_reclaim"`
	AffectedPaths  []string           `json:"affected_paths"`
	ScoreImpact    int                `json:"score_impact"`
}

// FixResult accumulates the outcome of one fix invocation. Purely
// additive; there is no rollback.
type FixResult struct {
	ItemsFixed int   `json:"items_fixed"`
	SpaceFreed int64 `json:"space_freed"`
	Errors     int   `json:"errors"`
}
