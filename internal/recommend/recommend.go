// Package recommend turns a completed scan into a prioritized action
// list. Generation is pure: the same scan result always yields the same
// ordered recommendations.
package recommend

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/tonicapp/tonic/internal/scan"
	"github.com/tonicapp/tonic/internal/score"
)

const (
	mb = int64(1024 * 1024)

	// Minimum finding magnitude before a recommendation is worth
	// surfacing. Below these a fix would not move the needle.
	tempFilesThreshold     = 100 * mb
	logFilesThreshold      = 50 * mb
	trashThreshold         = 100 * mb
	languageFilesThreshold = 200 * mb
	oldDownloadsThreshold  = 500 * mb
	browserDataThreshold   = 100 * mb
	appCachesThreshold     = 200 * mb
	browserCachesThreshold = 100 * mb
	orphanedThreshold      = 50 * mb
	launchAgentsThreshold  = 3 // count, not bytes
)

// Generator builds recommendations from scan results.
type Generator struct {
	calc *score.Calculator
}

// NewGenerator returns a generator that scores marginal impact with calc.
func NewGenerator(calc *score.Calculator) *Generator {
	return &Generator{calc: calc}
}

// Generate emits one recommendation per finding that clears its
// threshold, sorted by reclaimable space descending with safe fixes
// winning ties. The order is a stable total order: equal space and
// safety fall back to the recommendation type.
func (g *Generator) Generate(result *scan.Result) []scan.Recommendation {
	if result == nil {
		return nil
	}

	var recs []scan.Recommendation
	recs = append(recs, g.junkRecommendations(result.Junk)...)
	recs = append(recs, g.performanceRecommendations(result.Performance)...)
	recs = append(recs, g.appRecommendations(result.AppIssues)...)

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.SpaceToReclaim != b.SpaceToReclaim {
			return a.SpaceToReclaim > b.SpaceToReclaim
		}
		if a.SafeToFix != b.SafeToFix {
			return a.SafeToFix
		}
		return a.Type < b.Type
	})
	return recs
}

func (g *Generator) junkRecommendations(junk *scan.JunkCategory) []scan.Recommendation {
	if junk == nil {
		return nil
	}

	basePenalty := g.calc.JunkPenalty(junk)
	var recs []scan.Recommendation

	junkRec := func(recType scan.RecommendationType, group scan.FileGroup, threshold int64, safe bool, title string) {
		if group.Size < threshold {
			return
		}
		without := *junk
		clearGroup(&without, recType)
		impact := basePenalty - g.calc.JunkPenalty(&without)
		if impact < 0 {
			impact = 0
		}
		recs = append(recs, scan.Recommendation{
			Type:           recType,
			Title:          title,
			Description:    fmt.Sprintf("%s across %d items", humanize.IBytes(uint64(group.Size)), group.Count),
			Actionable:     true,
			SafeToFix:      safe,
			SpaceToReclaim: group.Size,
			AffectedPaths:  group.Paths,
			ScoreImpact:    impact,
		})
	}

	junkRec(scan.RecTempFiles, junk.TempFiles, tempFilesThreshold, true, "Remove temporary files")
	junkRec(scan.RecLogFiles, junk.LogFiles, logFilesThreshold, true, "Clear old log files")
	junkRec(scan.RecTrash, junk.Trash, trashThreshold, true, "Empty the trash")
	junkRec(scan.RecLanguageFiles, junk.LanguageFiles, languageFilesThreshold, false, "Prune unused language files")
	junkRec(scan.RecOldDownloads, junk.OldDownloads, oldDownloadsThreshold, false, "Review old downloads")

	// Browser data feeds the privacy penalty, not the junk penalty.
	if junk.BrowserData.Size >= browserDataThreshold {
		basePrivacy := g.calc.PrivacyPenalty(junk)
		without := *junk
		without.BrowserData = scan.FileGroup{Name: junk.BrowserData.Name}
		impact := basePrivacy - g.calc.PrivacyPenalty(&without)
		if impact < 0 {
			impact = 0
		}
		recs = append(recs, scan.Recommendation{
			Type:           scan.RecBrowserData,
			Title:          "Clear browsing data",
			Description:    fmt.Sprintf("%s of history and site data", humanize.IBytes(uint64(junk.BrowserData.Size))),
			Actionable:     true,
			SafeToFix:      true,
			SpaceToReclaim: junk.BrowserData.Size,
			AffectedPaths:  junk.BrowserData.Paths,
			ScoreImpact:    impact,
		})
	}
	return recs
}

func (g *Generator) performanceRecommendations(perf *scan.PerformanceCategory) []scan.Recommendation {
	if perf == nil {
		return nil
	}

	basePenalty := g.calc.CachePenalty(perf)
	var recs []scan.Recommendation

	cacheRec := func(recType scan.RecommendationType, group scan.FileGroup, threshold int64, title string) {
		if group.Size < threshold {
			return
		}
		without := *perf
		if recType == scan.RecAppCaches {
			without.AppCaches = scan.FileGroup{Name: group.Name}
		} else {
			without.BrowserCaches = scan.FileGroup{Name: group.Name}
		}
		impact := basePenalty - g.calc.CachePenalty(&without)
		if impact < 0 {
			impact = 0
		}
		recs = append(recs, scan.Recommendation{
			Type:           recType,
			Title:          title,
			Description:    fmt.Sprintf("%s across %d caches", humanize.IBytes(uint64(group.Size)), group.Count),
			Actionable:     true,
			SafeToFix:      true,
			SpaceToReclaim: group.Size,
			AffectedPaths:  group.Paths,
			ScoreImpact:    impact,
		})
	}

	cacheRec(scan.RecAppCaches, perf.AppCaches, appCachesThreshold, "Clear application caches")
	cacheRec(scan.RecBrowserCaches, perf.BrowserCaches, browserCachesThreshold, "Clear browser caches")

	// Launch agents free startup time rather than disk; reviewing them
	// needs user judgment.
	if perf.LaunchAgents.Count >= launchAgentsThreshold {
		recs = append(recs, scan.Recommendation{
			Type:          scan.RecLaunchAgents,
			Title:         "Review startup items",
			Description:   fmt.Sprintf("%d launch agents run at login", perf.LaunchAgents.Count),
			Actionable:    true,
			SafeToFix:     false,
			AffectedPaths: perf.LaunchAgents.Paths,
		})
	}
	return recs
}

func (g *Generator) appRecommendations(apps *scan.AppIssueCategory) []scan.Recommendation {
	if apps == nil {
		return nil
	}

	basePenalty := g.calc.AppIssuesPenalty(apps)
	var recs []scan.Recommendation

	appRec := func(recType scan.RecommendationType, entries []scan.AppInfo, title, noun string) {
		if len(entries) == 0 {
			return
		}
		without := *apps
		switch recType {
		case scan.RecUnusedApps:
			without.UnusedApps = nil
		case scan.RecDuplicateApps:
			without.DuplicateApps = nil
		case scan.RecLargeApps:
			without.LargeApps = nil
		}
		impact := basePenalty - g.calc.AppIssuesPenalty(&without)
		if impact < 0 {
			impact = 0
		}
		var size int64
		paths := make([]string, 0, len(entries))
		for _, a := range entries {
			size += a.Size
			paths = append(paths, a.Path)
		}
		recs = append(recs, scan.Recommendation{
			Type:           recType,
			Title:          title,
			Description:    fmt.Sprintf("%d %s using %s", len(entries), noun, humanize.IBytes(uint64(size))),
			Actionable:     true,
			SafeToFix:      false,
			SpaceToReclaim: size,
			AffectedPaths:  paths,
			ScoreImpact:    impact,
		})
	}

	appRec(scan.RecUnusedApps, apps.UnusedApps, "Uninstall unused applications", "apps not opened in months")
	appRec(scan.RecDuplicateApps, apps.DuplicateApps, "Remove duplicate applications", "duplicate installs")
	appRec(scan.RecLargeApps, apps.LargeApps, "Review large applications", "oversized apps")

	if apps.OrphanedFiles.Size >= orphanedThreshold {
		baseOrphaned := g.calc.OrphanedPenalty(apps)
		without := *apps
		without.OrphanedFiles = scan.FileGroup{Name: apps.OrphanedFiles.Name}
		impact := baseOrphaned - g.calc.OrphanedPenalty(&without)
		if impact < 0 {
			impact = 0
		}
		recs = append(recs, scan.Recommendation{
			Type:           scan.RecOrphanedFiles,
			Title:          "Remove orphaned app files",
			Description:    fmt.Sprintf("%s left behind by uninstalled apps", humanize.IBytes(uint64(apps.OrphanedFiles.Size))),
			Actionable:     true,
			SafeToFix:      true,
			SpaceToReclaim: apps.OrphanedFiles.Size,
			AffectedPaths:  apps.OrphanedFiles.Paths,
			ScoreImpact:    impact,
		})
	}
	return recs
}

// clearGroup zeroes the junk group a recommendation type covers, keeping
// the name so the counterfactual snapshot stays recognizable.
func clearGroup(junk *scan.JunkCategory, recType scan.RecommendationType) {
	switch recType {
	case scan.RecTempFiles:
		junk.TempFiles = scan.FileGroup{Name: junk.TempFiles.Name}
	case scan.RecLogFiles:
		junk.LogFiles = scan.FileGroup{Name: junk.LogFiles.Name}
	case scan.RecTrash:
		junk.Trash = scan.FileGroup{Name: junk.Trash.Name}
	case scan.RecLanguageFiles:
		junk.LanguageFiles = scan.FileGroup{Name: junk.LanguageFiles.Name}
	case scan.RecOldDownloads:
		junk.OldDownloads = scan.FileGroup{Name: junk.OldDownloads.Name}
	}
}
