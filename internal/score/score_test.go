package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonicapp/tonic/internal/scan"
)

const (
	testMB = int64(1024 * 1024)
	testGB = 1024 * testMB
)

func group(size int64, count int) scan.FileGroup {
	paths := make([]string, count)
	sizes := make([]int64, count)
	for i := range paths {
		paths[i] = "/tmp/x"
		sizes[i] = 0
	}
	if count > 0 {
		sizes[0] = size
	}
	return scan.NewFileGroup("test", "", paths, sizes)
}

func TestScoreCleanSystem(t *testing.T) {
	calc := NewCalculator()

	s, breakdown := calc.Score(
		&scan.DiskUsage{TotalBytes: 500 * testGB, UsedBytes: 0, UsedPercent: 0},
		&scan.JunkCategory{},
		&scan.PerformanceCategory{},
		&scan.AppIssueCategory{},
	)

	assert.Equal(t, 100, s)
	assert.Equal(t, 0, breakdown.Total())
	assert.Equal(t, "excellent", Rating(s))
}

func TestScoreNilSnapshots(t *testing.T) {
	calc := NewCalculator()

	s, breakdown := calc.Score(nil, nil, nil, nil)

	assert.Equal(t, 100, s)
	assert.Equal(t, 0, breakdown.Total())
}

func TestCachePenaltyTiers(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name string
		size int64
		want int
	}{
		{"below first tier", 900 * testMB, 0},
		{"exactly 1GB", 1 * testGB, 5},
		{"1.5GB lands in 1-2GB tier", 1*testGB + 512*testMB, 5},
		{"exactly 2GB", 2 * testGB, 10},
		{"3GB", 3 * testGB, 10},
		{"7GB", 7 * testGB, 15},
		{"12GB", 12 * testGB, 20},
		{"enormous cache saturates at weight", 500 * testGB, WeightCache},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perf := &scan.PerformanceCategory{AppCaches: group(tt.size, 1)}
			assert.Equal(t, tt.want, calc.CachePenalty(perf))
		})
	}
}

func TestScoreCacheOnePointFiveGB(t *testing.T) {
	calc := NewCalculator()

	perf := &scan.PerformanceCategory{
		AppCaches: group(1*testGB+512*testMB, 1),
	}
	s, breakdown := calc.Score(nil, &scan.JunkCategory{}, perf, &scan.AppIssueCategory{})

	assert.Equal(t, 5, breakdown.Cache)
	assert.Equal(t, 95, s)
}

func TestDiskPenaltyBands(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		percent float64
		want    int
	}{
		{0, 0},
		{50, 0},
		{50.1, 5},
		{70, 5},
		{70.1, 10},
		{80, 10},
		{80.1, 20},
		{90, 20},
		{90.1, 25},
		{92, 25},
		{95, 25},
		{95.1, 30},
		{100, 30},
	}

	for _, tt := range tests {
		d := &scan.DiskUsage{TotalBytes: 500 * testGB, UsedPercent: tt.percent}
		assert.Equal(t, tt.want, calc.DiskPenalty(d), "at %.1f%%", tt.percent)
	}
}

func TestScoreDiskAtNinetyTwoPercent(t *testing.T) {
	calc := NewCalculator()

	disk := &scan.DiskUsage{TotalBytes: 500 * testGB, UsedPercent: 92}
	s, breakdown := calc.Score(disk, &scan.JunkCategory{}, &scan.PerformanceCategory{}, &scan.AppIssueCategory{})

	assert.Equal(t, 25, breakdown.DiskUsage)
	assert.Equal(t, 75, s)
	// 75 is exactly the good/fair boundary; 75 itself is good.
	assert.Equal(t, "good", Rating(75))
	assert.Equal(t, "fair", Rating(74))
}

func TestJunkPenaltyBlendsSizeAndCount(t *testing.T) {
	calc := NewCalculator()

	junk := &scan.JunkCategory{TempFiles: group(3*testGB, 2500)}
	// 3GB size tier is 9, 2500 files adds 2.
	assert.Equal(t, 11, calc.JunkPenalty(junk))

	// Count component caps at 5.
	junk = &scan.JunkCategory{TempFiles: group(3*testGB, 50000)}
	assert.Equal(t, 14, calc.JunkPenalty(junk))
}

func TestJunkPenaltySaturatesAtWeight(t *testing.T) {
	calc := NewCalculator()

	junk := &scan.JunkCategory{
		TempFiles:    group(200*testGB, 500000),
		LogFiles:     group(50*testGB, 100000),
		Trash:        group(30*testGB, 100000),
		OldDownloads: group(20*testGB, 100000),
	}
	assert.Equal(t, WeightJunk, calc.JunkPenalty(junk))
}

func TestJunkPenaltyIgnoresBrowserData(t *testing.T) {
	calc := NewCalculator()

	junk := &scan.JunkCategory{BrowserData: group(50*testGB, 10000)}
	assert.Equal(t, 0, calc.JunkPenalty(junk))
	assert.Equal(t, WeightPrivacy, calc.PrivacyPenalty(junk))
}

func TestEveryPenaltyStaysWithinItsWeight(t *testing.T) {
	calc := NewCalculator()

	// Worst-case findings everywhere.
	disk := &scan.DiskUsage{TotalBytes: 500 * testGB, UsedPercent: 100}
	junk := &scan.JunkCategory{
		TempFiles:   group(500*testGB, 1_000_000),
		LogFiles:    group(500*testGB, 1_000_000),
		BrowserData: group(500*testGB, 1_000_000),
	}
	perf := &scan.PerformanceCategory{
		AppCaches:     group(500*testGB, 100000),
		BrowserCaches: group(500*testGB, 100000),
	}
	apps := &scan.AppIssueCategory{
		UnusedApps:    make([]scan.AppInfo, 50),
		DuplicateApps: make([]scan.AppInfo, 50),
		LargeApps:     make([]scan.AppInfo, 50),
		OrphanedFiles: group(500*testGB, 100000),
	}

	s, b := calc.Score(disk, junk, perf, apps)

	assert.LessOrEqual(t, b.DiskUsage, WeightDiskUsage)
	assert.LessOrEqual(t, b.Cache, WeightCache)
	assert.LessOrEqual(t, b.Junk, WeightJunk)
	assert.LessOrEqual(t, b.AppIssues, WeightAppIssues)
	assert.LessOrEqual(t, b.Orphaned, WeightOrphaned)
	assert.LessOrEqual(t, b.Privacy, WeightPrivacy)
	for _, p := range []int{b.DiskUsage, b.Cache, b.Junk, b.AppIssues, b.Orphaned, b.Privacy} {
		assert.GreaterOrEqual(t, p, 0)
	}
	assert.Equal(t, 0, s, "worst case clamps to zero")
	assert.Equal(t, "critical", Rating(s))
}

func TestPenaltyMonotonicity(t *testing.T) {
	calc := NewCalculator()

	// Growing a single finding never lowers its category's penalty.
	sizes := []int64{0, 10 * testMB, 400 * testMB, 500 * testMB, 1 * testGB,
		2 * testGB, 5 * testGB, 10 * testGB, 100 * testGB}

	prev := -1
	for _, size := range sizes {
		p := calc.JunkPenalty(&scan.JunkCategory{TempFiles: group(size, 1)})
		require.GreaterOrEqual(t, p, prev, "junk penalty dipped at %d bytes", size)
		prev = p
	}

	prev = -1
	for _, size := range sizes {
		p := calc.CachePenalty(&scan.PerformanceCategory{AppCaches: group(size, 1)})
		require.GreaterOrEqual(t, p, prev, "cache penalty dipped at %d bytes", size)
		prev = p
	}

	prev = -1
	for pct := 0.0; pct <= 100; pct += 0.5 {
		p := calc.DiskPenalty(&scan.DiskUsage{TotalBytes: testGB, UsedPercent: pct})
		require.GreaterOrEqual(t, p, prev, "disk penalty dipped at %.1f%%", pct)
		prev = p
	}

	prev = -1
	for count := 0; count <= 20; count++ {
		p := calc.AppIssuesPenalty(&scan.AppIssueCategory{UnusedApps: make([]scan.AppInfo, count)})
		require.GreaterOrEqual(t, p, prev, "app penalty dipped at %d apps", count)
		prev = p
	}
}

func TestUnknownDiskUsageScoresNothing(t *testing.T) {
	calc := NewCalculator()
	assert.Equal(t, 0, calc.DiskPenalty(&scan.DiskUsage{TotalBytes: 0, UsedPercent: 99}))
}

func TestRatingBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "excellent"},
		{90, "excellent"},
		{89, "good"},
		{75, "good"},
		{74, "fair"},
		{50, "fair"},
		{49, "poor"},
		{25, "poor"},
		{24, "critical"},
		{0, "critical"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Rating(tt.score), "score %d", tt.score)
	}
}
