package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tonicapp/tonic/internal/scan"
	"github.com/tonicapp/tonic/internal/score"
)

// RenderResult formats a finalized scan result with its recommendations.
func RenderResult(result *scan.Result, recs []scan.Recommendation) string {
	var b strings.Builder

	header := fmt.Sprintf("Health score: %s  (%s)",
		scoreStyle(result.HealthScore).Render(fmt.Sprintf("%d/100", result.HealthScore)),
		score.Rating(result.HealthScore))
	b.WriteString(panelStyle.Render(header))
	b.WriteString("\n\n")

	if result.DiskUsage != nil {
		b.WriteString(dimStyle.Render("Disk: "))
		b.WriteString(fmt.Sprintf("%s of %s used (%.1f%%)\n",
			humanize.IBytes(uint64(result.DiskUsage.UsedBytes)),
			humanize.IBytes(uint64(result.DiskUsage.TotalBytes)),
			result.DiskUsage.UsedPercent))
	}

	b.WriteString(dimStyle.Render("Reclaimable: "))
	b.WriteString(valueStyle.Render(humanize.IBytes(uint64(result.TotalReclaimableSpace))))
	b.WriteString("\n\n")

	if len(recs) == 0 {
		b.WriteString(goodStyle.Render("Nothing to do, the system is clean."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render("Recommendations"))
	b.WriteString("\n")
	for i, rec := range recs {
		marker := badStyle.Render("review")
		if rec.SafeToFix {
			marker = goodStyle.Render("safe")
		}
		b.WriteString(fmt.Sprintf("%2d. %s  [%s]\n", i+1, rec.Title, marker))
		b.WriteString("    ")
		b.WriteString(dimStyle.Render(rec.Description))
		if rec.SpaceToReclaim > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  reclaims %s", humanize.IBytes(uint64(rec.SpaceToReclaim)))))
		}
		if rec.ScoreImpact > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  +%d score", rec.ScoreImpact)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderFixResult formats the outcome of a fix pass.
func RenderFixResult(result scan.FixResult) string {
	line := fmt.Sprintf("Fixed %d items, freed %s",
		result.ItemsFixed, humanize.IBytes(uint64(result.SpaceFreed)))
	if result.Errors > 0 {
		line += badStyle.Render(fmt.Sprintf(" (%d errors)", result.Errors))
	}
	return line
}

// RenderSystemScore formats a live system health reading.
func RenderSystemScore(metrics scan.SystemMetrics, sysScore int, message string) string {
	var b strings.Builder

	header := fmt.Sprintf("System health: %s  (%s)",
		scoreStyle(sysScore).Render(fmt.Sprintf("%d/100", sysScore)),
		score.SystemRating(sysScore))
	b.WriteString(panelStyle.Render(header))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("CPU %.1f%%   Memory %.1f%% (%s pressure)",
		metrics.CPUPercent, metrics.MemoryPercent, metrics.MemoryPressure))
	if metrics.DiskPercent != nil {
		b.WriteString(fmt.Sprintf("   Disk %.1f%%", *metrics.DiskPercent))
	}
	if metrics.CPUTempC != nil {
		b.WriteString(fmt.Sprintf("   %.0f°C", *metrics.CPUTempC))
	}
	if metrics.DiskIOMBs != nil {
		b.WriteString(fmt.Sprintf("   IO %.0f MB/s", *metrics.DiskIOMBs))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(message))
	b.WriteString("\n")
	return b.String()
}
