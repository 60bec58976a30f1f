// Package orchestrator drives a scan through its ordered stages,
// accumulates category findings into a single lock-guarded aggregate,
// and finalizes them into a scored, recommendation-annotated result.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/recommend"
	"github.com/tonicapp/tonic/internal/scan"
	"github.com/tonicapp/tonic/internal/score"
)

// Stage is one ordered phase of a scan.
type Stage int

const (
	StagePreparing Stage = iota
	StageScanningDisk
	StageCheckingApps
	StageAnalyzingSystem
	StageComplete
)

// String returns the stage name shown in progress output.
func (s Stage) String() string {
	switch s {
	case StagePreparing:
		return "preparing"
	case StageScanningDisk:
		return "scanning disk"
	case StageCheckingApps:
		return "checking apps"
	case StageAnalyzingSystem:
		return "analyzing system"
	case StageComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Fixed progress weight per non-terminal stage. The weights sum to 1.0;
// reported progress caps at maxStageProgress so 100% only ever appears
// once finalize has produced the score and recommendations.
var stageWeights = map[Stage]float64{
	StagePreparing:       0.10,
	StageScanningDisk:    0.40,
	StageCheckingApps:    0.30,
	StageAnalyzingSystem: 0.20,
}

const maxStageProgress = 0.95

var (
	// ErrStageOrder reports a stage invoked out of declared order.
	ErrStageOrder = errors.New("stage called out of order")
	// ErrScanIncomplete reports finalize before all stages completed.
	ErrScanIncomplete = errors.New("scan has not completed all stages")
	// ErrCancelled reports a scan stopped by its caller.
	ErrCancelled = errors.New("scan cancelled")
)

// CategoryScanner produces immutable findings snapshots. Calls are
// read-only and honor context cancellation.
type CategoryScanner interface {
	DiskUsage(ctx context.Context) (*scan.DiskUsage, error)
	ScanJunkFiles(ctx context.Context) (*scan.JunkCategory, error)
	ScanAppIssues(ctx context.Context) (*scan.AppIssueCategory, error)
	ScanPerformanceIssues(ctx context.Context) (*scan.PerformanceCategory, error)
}

// FixExecutor applies a recommendation list.
type FixExecutor interface {
	Fix(ctx context.Context, recs []scan.Recommendation) (scan.FixResult, error)
}

// Orchestrator owns the aggregate scan state. The mutex guards every
// read and write of the aggregate; it is never held across scanner
// calls, so progress accessors stay responsive while a stage runs.
type Orchestrator struct {
	scanner CategoryScanner
	calc    *score.Calculator
	gen     *recommend.Generator
	fixer   FixExecutor
	logger  *zap.Logger

	mu              sync.Mutex
	nextStage       Stage
	progress        float64
	cancelled       bool
	diskUsage       *scan.DiskUsage
	junk            *scan.JunkCategory
	performance     *scan.PerformanceCategory
	appIssues       *scan.AppIssueCategory
	result          *scan.Result
	recommendations []scan.Recommendation
}

// New wires an orchestrator from its collaborators. No singletons: the
// caller owns every dependency.
func New(scanner CategoryScanner, calc *score.Calculator, gen *recommend.Generator, fixer FixExecutor, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		scanner:   scanner,
		calc:      calc,
		gen:       gen,
		fixer:     fixer,
		logger:    logger,
		nextStage: StagePreparing,
	}
}

// RunStage executes one stage and returns cumulative progress. Stages
// must be invoked strictly in declared order; StagePreparing starts a
// fresh scan and discards the previous aggregate. A failing category
// scan degrades to empty findings rather than aborting the scan.
func (o *Orchestrator) RunStage(ctx context.Context, stage Stage) (float64, error) {
	if err := o.beginStage(stage); err != nil {
		return o.Progress(), err
	}

	if err := ctx.Err(); err != nil {
		return o.Progress(), o.cancel(stage, err)
	}

	var (
		disk *scan.DiskUsage
		junk *scan.JunkCategory
		apps *scan.AppIssueCategory
		perf *scan.PerformanceCategory
		err  error
	)

	// Scanner calls run outside the lock; they are the slow part.
	switch stage {
	case StagePreparing:
		disk, err = o.scanner.DiskUsage(ctx)
	case StageScanningDisk:
		junk, err = o.scanner.ScanJunkFiles(ctx)
	case StageCheckingApps:
		apps, err = o.scanner.ScanAppIssues(ctx)
	case StageAnalyzingSystem:
		perf, err = o.scanner.ScanPerformanceIssues(ctx)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return o.Progress(), o.cancel(stage, err)
		}
		// Degrade: an unavailable category scores as empty findings.
		o.logger.Warn("category scan failed, treating as empty",
			zap.Stringer("stage", stage), zap.Error(err))
	}

	if err := ctx.Err(); err != nil {
		return o.Progress(), o.cancel(stage, err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	switch stage {
	case StagePreparing:
		o.diskUsage = disk
	case StageScanningDisk:
		o.junk = junk
	case StageCheckingApps:
		o.appIssues = apps
	case StageAnalyzingSystem:
		o.performance = perf
	}

	o.progress += stageWeights[stage]
	if o.progress > maxStageProgress {
		o.progress = maxStageProgress
	}
	o.nextStage = stage + 1

	o.logger.Debug("stage complete",
		zap.Stringer("stage", stage),
		zap.Float64("progress", o.progress))

	return o.progress, nil
}

// beginStage validates ordering and, for a fresh scan, resets the
// aggregate. Out-of-order calls are an integration bug and fail loud.
func (o *Orchestrator) beginStage(stage Stage) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if stage == StagePreparing {
		// New scan: discard everything from the previous one.
		o.diskUsage = nil
		o.junk = nil
		o.performance = nil
		o.appIssues = nil
		o.result = nil
		o.recommendations = nil
		o.progress = 0
		o.cancelled = false
		o.nextStage = StagePreparing
	}

	if o.cancelled {
		return ErrCancelled
	}
	if stage >= StageComplete {
		return fmt.Errorf("%w: %s is not runnable", ErrStageOrder, stage)
	}
	if stage != o.nextStage {
		return fmt.Errorf("%w: got %s, want %s", ErrStageOrder, stage, o.nextStage)
	}
	return nil
}

func (o *Orchestrator) cancel(stage Stage, cause error) error {
	o.mu.Lock()
	o.cancelled = true
	o.mu.Unlock()

	o.logger.Info("scan cancelled",
		zap.Stringer("stage", stage), zap.Error(cause))
	return fmt.Errorf("%w during %s", ErrCancelled, stage)
}

// Finalize scores the completed aggregate and returns the immutable
// scan result. It is idempotent: with no intervening stage run, repeated
// calls return the identical cached result, so a UI polling it never
// sees the score jitter.
func (o *Orchestrator) Finalize() (*scan.Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cancelled {
		return nil, ErrCancelled
	}
	if o.nextStage != StageComplete {
		return nil, fmt.Errorf("%w: next stage is %s", ErrScanIncomplete, o.nextStage)
	}
	if o.result != nil {
		return o.result, nil
	}

	healthScore, breakdown := o.calc.Score(o.diskUsage, o.junk, o.performance, o.appIssues)

	result := &scan.Result{
		ID:                    uuid.NewString(),
		Timestamp:             time.Now(),
		HealthScore:           healthScore,
		DiskUsage:             o.diskUsage,
		Junk:                  o.junk,
		Performance:           o.performance,
		AppIssues:             o.appIssues,
		TotalReclaimableSpace: o.reclaimableLocked(),
	}

	o.result = result
	o.recommendations = o.gen.Generate(result)
	o.progress = 1.0

	o.logger.Info("scan finalized",
		zap.String("id", result.ID),
		zap.Int("score", healthScore),
		zap.Int("penalty", breakdown.Total()),
		zap.Int("recommendations", len(o.recommendations)))

	return result, nil
}

// Recommendations returns the prioritized action list from the last
// finalize, or nil if the scan has not finalized.
func (o *Orchestrator) Recommendations() []scan.Recommendation {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]scan.Recommendation(nil), o.recommendations...)
}

// FixRecommendations applies a recommendation list through the executor.
func (o *Orchestrator) FixRecommendations(ctx context.Context, recs []scan.Recommendation) (scan.FixResult, error) {
	result, err := o.fixer.Fix(ctx, recs)
	o.logger.Info("fix pass finished",
		zap.Int("items", result.ItemsFixed),
		zap.Int64("freed", result.SpaceFreed),
		zap.Int("errors", result.Errors))
	return result, err
}

// Progress returns cumulative stage progress, 1.0 only after finalize.
func (o *Orchestrator) Progress() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress
}

// CurrentStage returns the next stage the caller is expected to run.
func (o *Orchestrator) CurrentStage() Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.nextStage
}

// Cancelled reports whether the scan observed a cancellation.
func (o *Orchestrator) Cancelled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cancelled
}

// SpaceFound returns reclaimable bytes across the categories populated
// so far. Safe to poll while a stage is in flight.
func (o *Orchestrator) SpaceFound() int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.reclaimableLocked()
}

// FlaggedItems returns the number of findings across populated
// categories so far.
func (o *Orchestrator) FlaggedItems() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	var count int
	if o.junk != nil {
		count += o.junk.TotalCount()
	}
	if o.performance != nil {
		count += o.performance.TotalCount()
	}
	if o.appIssues != nil {
		count += o.appIssues.TotalCount()
	}
	return count
}

func (o *Orchestrator) reclaimableLocked() int64 {
	var total int64
	if o.junk != nil {
		total += o.junk.TotalSize()
	}
	if o.performance != nil {
		total += o.performance.TotalSize()
	}
	if o.appIssues != nil {
		total += o.appIssues.TotalSize()
	}
	return total
}
