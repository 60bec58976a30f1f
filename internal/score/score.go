// Package score turns scan findings or live system metrics into a 0-100
// health score with a per-category penalty breakdown. All functions are
// pure: no internal state, safe from any goroutine.
package score

import (
	"github.com/tonicapp/tonic/internal/scan"
)

// Breakdown records how many points each category cost.
type Breakdown struct {
	DiskUsage int `json:"disk_usage"`
	Cache     int `json:"cache"`
	Junk      int `json:"junk"`
	AppIssues int `json:"app_issues"`
	Orphaned  int `json:"orphaned"`
	Privacy   int `json:"privacy"`
}

// Total returns the summed penalty across categories.
func (b Breakdown) Total() int {
	return b.DiskUsage + b.Cache + b.Junk + b.AppIssues + b.Orphaned + b.Privacy
}

// Calculator computes health scores from category findings.
type Calculator struct{}

// NewCalculator returns a findings-based score calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Score starts at 100 and deducts each category's penalty. Nil snapshots
// contribute nothing; a clean system scores exactly 100.
func (c *Calculator) Score(disk *scan.DiskUsage, junk *scan.JunkCategory, perf *scan.PerformanceCategory, apps *scan.AppIssueCategory) (int, Breakdown) {
	b := Breakdown{
		DiskUsage: c.DiskPenalty(disk),
		Cache:     c.CachePenalty(perf),
		Junk:      c.JunkPenalty(junk),
		AppIssues: c.AppIssuesPenalty(apps),
		Orphaned:  c.OrphanedPenalty(apps),
		Privacy:   c.PrivacyPenalty(junk),
	}
	return clampScore(100 - b.Total()), b
}

// DiskPenalty scores the volume's used percentage, up to WeightDiskUsage.
func (c *Calculator) DiskPenalty(d *scan.DiskUsage) int {
	if d == nil || d.TotalBytes == 0 {
		return 0
	}
	return lookupAbove(diskUsageTiers, d.UsedPercent)
}

// CachePenalty scores app plus browser cache size, up to WeightCache.
func (c *Calculator) CachePenalty(p *scan.PerformanceCategory) int {
	if p == nil {
		return 0
	}
	return lookupAtLeast(cacheSizeTiers, float64(p.CacheSize()))
}

// JunkPenalty blends a size tier with a count component, capped at
// WeightJunk. Browser data is excluded here; it feeds PrivacyPenalty.
func (c *Calculator) JunkPenalty(j *scan.JunkCategory) int {
	if j == nil {
		return 0
	}
	size := j.TempFiles.Size + j.LogFiles.Size + j.Trash.Size +
		j.LanguageFiles.Size + j.OldDownloads.Size
	count := j.TempFiles.Count + j.LogFiles.Count + j.Trash.Count +
		j.LanguageFiles.Count + j.OldDownloads.Count

	penalty := lookupAtLeast(junkSizeTiers, float64(size))
	countComponent := count / 1000
	if countComponent > 5 {
		countComponent = 5
	}
	penalty += countComponent
	if penalty > WeightJunk {
		penalty = WeightJunk
	}
	return penalty
}

// AppIssuesPenalty scores unused, duplicate and oversized apps by count,
// capped at WeightAppIssues.
func (c *Calculator) AppIssuesPenalty(a *scan.AppIssueCategory) int {
	if a == nil {
		return 0
	}
	penalty := lookupAtLeast(unusedAppTiers, float64(len(a.UnusedApps))) +
		lookupAtLeast(duplicateAppTiers, float64(len(a.DuplicateApps))) +
		lookupAtLeast(largeAppTiers, float64(len(a.LargeApps)))
	if penalty > WeightAppIssues {
		penalty = WeightAppIssues
	}
	return penalty
}

// OrphanedPenalty scores leftover support files of removed apps by size,
// up to WeightOrphaned.
func (c *Calculator) OrphanedPenalty(a *scan.AppIssueCategory) int {
	if a == nil {
		return 0
	}
	return lookupAtLeast(orphanedSizeTiers, float64(a.OrphanedFiles.Size))
}

// PrivacyPenalty scores accumulated browser history and site data by
// size, up to WeightPrivacy.
func (c *Calculator) PrivacyPenalty(j *scan.JunkCategory) int {
	if j == nil {
		return 0
	}
	return lookupAtLeast(privacySizeTiers, float64(j.BrowserData.Size))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
