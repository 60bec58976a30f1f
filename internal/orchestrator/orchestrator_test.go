package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/recommend"
	"github.com/tonicapp/tonic/internal/scan"
	"github.com/tonicapp/tonic/internal/score"
)

const (
	mb = int64(1024 * 1024)
	gb = 1024 * mb
)

// stubScanner returns fixed findings, with per-category error overrides.
type stubScanner struct {
	diskErr error
	junkErr error
	appsErr error
	perfErr error
}

func (s *stubScanner) DiskUsage(ctx context.Context) (*scan.DiskUsage, error) {
	if s.diskErr != nil {
		return nil, s.diskErr
	}
	return &scan.DiskUsage{TotalBytes: 500 * gb, UsedBytes: 300 * gb, FreeBytes: 200 * gb, UsedPercent: 60}, nil
}

func (s *stubScanner) ScanJunkFiles(ctx context.Context) (*scan.JunkCategory, error) {
	if s.junkErr != nil {
		return nil, s.junkErr
	}
	paths := make([]string, 40)
	sizes := make([]int64, 40)
	for i := range paths {
		paths[i] = "/tmp/junk"
		sizes[i] = 15 * mb
	}
	return &scan.JunkCategory{TempFiles: scan.NewFileGroup("temp", "", paths, sizes)}, nil
}

func (s *stubScanner) ScanAppIssues(ctx context.Context) (*scan.AppIssueCategory, error) {
	if s.appsErr != nil {
		return nil, s.appsErr
	}
	return &scan.AppIssueCategory{
		UnusedApps: []scan.AppInfo{{Name: "Stale", Path: "/apps/stale", Size: 2 * gb}},
	}, nil
}

func (s *stubScanner) ScanPerformanceIssues(ctx context.Context) (*scan.PerformanceCategory, error) {
	if s.perfErr != nil {
		return nil, s.perfErr
	}
	return &scan.PerformanceCategory{
		AppCaches: scan.NewFileGroup("caches", "", []string{"/caches/a"}, []int64{gb}),
	}, nil
}

type stubFixer struct {
	result scan.FixResult
	err    error
}

func (f *stubFixer) Fix(ctx context.Context, recs []scan.Recommendation) (scan.FixResult, error) {
	return f.result, f.err
}

func newTestOrchestrator(s CategoryScanner) *Orchestrator {
	calc := score.NewCalculator()
	return New(s, calc, recommend.NewGenerator(calc), &stubFixer{}, zap.NewNop())
}

func runAllStages(t *testing.T, o *Orchestrator, ctx context.Context) {
	t.Helper()
	for _, stage := range []Stage{StagePreparing, StageScanningDisk, StageCheckingApps, StageAnalyzingSystem} {
		_, err := o.RunStage(ctx, stage)
		require.NoError(t, err, "stage %s", stage)
	}
}

func TestRunStagesAccumulatesProgress(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})
	ctx := context.Background()

	tests := []struct {
		stage Stage
		want  float64
	}{
		{StagePreparing, 0.10},
		{StageScanningDisk, 0.50},
		{StageCheckingApps, 0.80},
		{StageAnalyzingSystem, 0.95}, // capped until finalize
	}
	for _, tt := range tests {
		p, err := o.RunStage(ctx, tt.stage)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, p, 1e-9, "after %s", tt.stage)
		assert.InDelta(t, tt.want, o.Progress(), 1e-9)
	}

	assert.Equal(t, StageComplete, o.CurrentStage())
}

func TestStageOrderEnforced(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})
	ctx := context.Background()

	_, err := o.RunStage(ctx, StageScanningDisk)
	assert.ErrorIs(t, err, ErrStageOrder)

	_, err = o.RunStage(ctx, StagePreparing)
	require.NoError(t, err)

	_, err = o.RunStage(ctx, StageCheckingApps)
	assert.ErrorIs(t, err, ErrStageOrder, "skipping a stage must fail")

	_, err = o.RunStage(ctx, StagePreparing)
	require.NoError(t, err, "preparing always starts a fresh scan")

	_, err = o.RunStage(ctx, StageComplete)
	assert.ErrorIs(t, err, ErrStageOrder, "the terminal stage is not runnable")
}

func TestFinalizeRequiresAllStages(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})
	ctx := context.Background()

	_, err := o.Finalize()
	assert.ErrorIs(t, err, ErrScanIncomplete)

	_, err = o.RunStage(ctx, StagePreparing)
	require.NoError(t, err)
	_, err = o.Finalize()
	assert.ErrorIs(t, err, ErrScanIncomplete)
}

func TestFinalizeScoresAndRecommends(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})
	runAllStages(t, o, context.Background())

	result, err := o.Finalize()
	require.NoError(t, err)
	require.NotNil(t, result)

	// disk 60% = 5, junk 600MB = 3, cache 1GB = 5, one unused app = 3
	assert.Equal(t, 84, result.HealthScore)
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.Timestamp.IsZero())
	assert.Equal(t, 600*mb+gb+2*gb, result.TotalReclaimableSpace)
	assert.InDelta(t, 1.0, o.Progress(), 1e-9)

	recs := o.Recommendations()
	require.NotEmpty(t, recs)
	assert.Equal(t, scan.RecUnusedApps, recs[0].Type, "largest reclaim first")
}

func TestFinalizeIsIdempotent(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})
	runAllStages(t, o, context.Background())

	first, err := o.Finalize()
	require.NoError(t, err)
	second, err := o.Finalize()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, first.ID, second.ID)
}

func TestRecommendationsReturnsACopy(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})
	runAllStages(t, o, context.Background())
	_, err := o.Finalize()
	require.NoError(t, err)

	recs := o.Recommendations()
	require.NotEmpty(t, recs)
	recs[0].Title = "mutated"

	again := o.Recommendations()
	assert.NotEqual(t, "mutated", again[0].Title)
}

func TestCancellationMidScan(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})
	ctx, cancel := context.WithCancel(context.Background())

	_, err := o.RunStage(ctx, StagePreparing)
	require.NoError(t, err)
	_, err = o.RunStage(ctx, StageScanningDisk)
	require.NoError(t, err)

	spaceBefore := o.SpaceFound()
	progressBefore := o.Progress()
	require.Equal(t, 600*mb, spaceBefore)

	cancel()
	_, err = o.RunStage(ctx, StageCheckingApps)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, o.Cancelled())

	// Accumulated findings survive the cancellation.
	assert.Equal(t, spaceBefore, o.SpaceFound())
	assert.InDelta(t, progressBefore, o.Progress(), 1e-9)
	assert.Equal(t, 40, o.FlaggedItems())

	_, err = o.Finalize()
	assert.ErrorIs(t, err, ErrCancelled)

	// A cancelled orchestrator refuses further stages until a new scan.
	_, err = o.RunStage(context.Background(), StageAnalyzingSystem)
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = o.RunStage(context.Background(), StagePreparing)
	assert.NoError(t, err, "a fresh scan clears the cancelled state")
	assert.False(t, o.Cancelled())
}

func TestScannerContextErrorCancelsScan(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{junkErr: context.Canceled})
	ctx := context.Background()

	_, err := o.RunStage(ctx, StagePreparing)
	require.NoError(t, err)
	_, err = o.RunStage(ctx, StageScanningDisk)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, o.Cancelled())
}

func TestScannerFailureDegradesToEmpty(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{junkErr: errors.New("permission denied")})
	runAllStages(t, o, context.Background())

	result, err := o.Finalize()
	require.NoError(t, err)
	assert.Nil(t, result.Junk)
	// disk 5 + cache 5 + unused app 3, no junk penalty
	assert.Equal(t, 87, result.HealthScore)
}

func TestNewScanDiscardsPreviousResult(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})
	runAllStages(t, o, context.Background())
	first, err := o.Finalize()
	require.NoError(t, err)

	_, err = o.RunStage(context.Background(), StagePreparing)
	require.NoError(t, err)

	assert.InDelta(t, 0.10, o.Progress(), 1e-9)
	assert.Empty(t, o.Recommendations())
	_, err = o.Finalize()
	assert.ErrorIs(t, err, ErrScanIncomplete)

	runAllStages(t, o, context.Background())

	// Completing the re-run yields a distinct result.
	second, err := o.Finalize()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAccessorsSafeWhileScanning(t *testing.T) {
	o := newTestOrchestrator(&stubScanner{})

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				o.Progress()
				o.CurrentStage()
				o.SpaceFound()
				o.FlaggedItems()
				o.Cancelled()
			}
		}
	}()

	for i := 0; i < 50; i++ {
		runAllStages(t, o, context.Background())
		_, err := o.Finalize()
		require.NoError(t, err)
	}
	close(done)
	wg.Wait()
}

func TestFixRecommendationsDelegates(t *testing.T) {
	calc := score.NewCalculator()
	fixer := &stubFixer{result: scan.FixResult{ItemsFixed: 3, SpaceFreed: gb, Errors: 1}}
	o := New(&stubScanner{}, calc, recommend.NewGenerator(calc), fixer, zap.NewNop())

	res, err := o.FixRecommendations(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.ItemsFixed)
	assert.Equal(t, gb, res.SpaceFreed)
	assert.Equal(t, 1, res.Errors)
}
