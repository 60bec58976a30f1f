package score

// Category weights. Each is the maximum penalty its category can
// contribute; the final score clamps at zero regardless.
const (
	WeightDiskUsage = 30
	WeightCache     = 25
	WeightJunk      = 20
	WeightAppIssues = 15
	WeightOrphaned  = 10
	WeightPrivacy   = 5
)

const (
	kb = int64(1024)
	mb = 1024 * kb
	gb = 1024 * mb
)

// tier maps a lower bound to a penalty. Tables are ordered from the
// highest bound down so the first match wins.
type tier struct {
	min     float64
	penalty int
}

// lookupAbove returns the penalty of the first tier whose bound the value
// strictly exceeds. Used for percentage bands with exclusive lower edges.
func lookupAbove(tiers []tier, value float64) int {
	for _, t := range tiers {
		if value > t.min {
			return t.penalty
		}
	}
	return 0
}

// lookupAtLeast returns the penalty of the first tier the value meets.
// Used for byte and count magnitudes with inclusive lower edges.
func lookupAtLeast(tiers []tier, value float64) int {
	for _, t := range tiers {
		if value >= t.min {
			return t.penalty
		}
	}
	return 0
}

// Disk usage bands by used percentage: nothing below half full, then
// increasingly steep steps as the volume approaches capacity.
var diskUsageTiers = []tier{
	{min: 95, penalty: 30},
	{min: 90, penalty: 25},
	{min: 80, penalty: 20},
	{min: 70, penalty: 10},
	{min: 50, penalty: 5},
}

// App and browser cache size bands.
var cacheSizeTiers = []tier{
	{min: float64(20 * gb), penalty: 25},
	{min: float64(10 * gb), penalty: 20},
	{min: float64(5 * gb), penalty: 15},
	{min: float64(2 * gb), penalty: 10},
	{min: float64(1 * gb), penalty: 5},
}

// Junk size bands. The size component saturates at 15 so the count
// component (capped at 5) can still lift the category to its weight.
var junkSizeTiers = []tier{
	{min: float64(10 * gb), penalty: 15},
	{min: float64(5 * gb), penalty: 12},
	{min: float64(2 * gb), penalty: 9},
	{min: float64(1 * gb), penalty: 6},
	{min: float64(500 * mb), penalty: 3},
}

var unusedAppTiers = []tier{
	{min: 6, penalty: 7},
	{min: 3, penalty: 5},
	{min: 1, penalty: 3},
}

var duplicateAppTiers = []tier{
	{min: 3, penalty: 5},
	{min: 1, penalty: 3},
}

var largeAppTiers = []tier{
	{min: 5, penalty: 3},
	{min: 1, penalty: 2},
}

var orphanedSizeTiers = []tier{
	{min: float64(5 * gb), penalty: 10},
	{min: float64(1 * gb), penalty: 8},
	{min: float64(500 * mb), penalty: 5},
	{min: float64(100 * mb), penalty: 3},
}

var privacySizeTiers = []tier{
	{min: float64(5 * gb), penalty: 5},
	{min: float64(1 * gb), penalty: 4},
	{min: float64(100 * mb), penalty: 2},
}

// Rating maps a findings-based score to its label.
func Rating(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 50:
		return "fair"
	case score >= 25:
		return "poor"
	default:
		return "critical"
	}
}

// SystemRating maps a live-metrics score to its label. The cut points
// deliberately differ from Rating: live readings swing faster, so "fair"
// and "poor" start higher.
func SystemRating(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 60:
		return "fair"
	case score >= 40:
		return "poor"
	default:
		return "critical"
	}
}
