// Package fixer applies recommendations. It owns only control flow: the
// iteration order, the safety gate, error accumulation, and cancellation.
// Physical deletion is delegated to a FileOperations collaborator.
package fixer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tonicapp/tonic/internal/scan"
)

// FileOperations measures and removes paths on behalf of the executor.
type FileOperations interface {
	Size(path string) (int64, error)
	Delete(path string) error
}

// Executor runs the fix loop over a recommendation list.
type Executor struct {
	ops    FileOperations
	logger *zap.Logger
}

// New returns an Executor that deletes through ops.
func New(ops FileOperations, logger *zap.Logger) *Executor {
	return &Executor{ops: ops, logger: logger}
}

// Fix processes recommendations in the given order. Anything not marked
// safe is skipped outright. Per-path failures count into the result and
// never abort the batch; cancellation between paths returns the partial
// result with the context's error.
func (e *Executor) Fix(ctx context.Context, recs []scan.Recommendation) (scan.FixResult, error) {
	var result scan.FixResult

	for _, rec := range recs {
		if !rec.SafeToFix {
			e.logger.Debug("skipping recommendation, needs user review",
				zap.String("type", string(rec.Type)))
			continue
		}

		for _, path := range rec.AffectedPaths {
			select {
			case <-ctx.Done():
				return result, fmt.Errorf("fix cancelled: %w", ctx.Err())
			default:
			}

			size, err := e.ops.Size(path)
			if err != nil {
				e.logger.Warn("could not measure path",
					zap.String("path", path), zap.Error(err))
				result.Errors++
				continue
			}

			if err := e.ops.Delete(path); err != nil {
				e.logger.Warn("could not delete path",
					zap.String("path", path), zap.Error(err))
				result.Errors++
				continue
			}

			result.ItemsFixed++
			result.SpaceFreed += size
		}
	}

	return result, nil
}
