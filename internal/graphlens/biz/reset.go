package biz

import (
	"context"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/graphlens/internal/graphlens/metrics"
	"github.com/kart-io/graphlens/internal/graphlens/store"
	"github.com/kart-io/graphlens/pkg/errors"
	"github.com/kart-io/graphlens/pkg/knowledge"
	"github.com/kart-io/graphlens/pkg/pool"
)

// ResetResult is the outcome of a tenant reset.
type ResetResult struct {
	// DocumentsRemoved is the number of registry records deleted.
	DocumentsRemoved int64
	// Partial is true when registry cleanup was deferred to a background
	// retry after the knowledge indexes were already dropped.
	Partial bool
}

// ResetService performs the cascading tenant reset.
type ResetService struct {
	knowledge knowledge.Store
	registry  store.Registry
	workers   *pool.Pool
	metrics   *metrics.Metrics

	// Background cleanup retry schedule.
	retryDelay  time.Duration
	maxAttempts int
}

// NewResetService creates a new ResetService.
func NewResetService(ks knowledge.Store, registry store.Registry) *ResetService {
	return &ResetService{
		knowledge:   ks,
		registry:    registry,
		workers:     pool.Background(),
		metrics:     metrics.Get(),
		retryDelay:  5 * time.Second,
		maxAttempts: 10,
	}
}

// Reset drops the tenant's knowledge indexes, then clears its registry
// records. The order matters: once the indexes are gone, a registry failure
// must not leave the tenant looking populated, so cleanup is retried in the
// background until it succeeds.
func (s *ResetService) Reset(ctx context.Context, tenantID string) (*ResetResult, error) {
	if tenantID == "" {
		return nil, errors.ErrEmptyTenant
	}

	if err := s.knowledge.ResetTenant(ctx, tenantID); err != nil {
		return nil, errors.ErrResetFailed.WithCause(err)
	}
	logger.Infow("knowledge indexes dropped", "tenant", tenantID)

	removed, err := s.registry.DeleteAllForTenant(ctx, tenantID)
	if err != nil {
		logger.Errorw("registry cleanup failed, retrying in background",
			"tenant", tenantID,
			"error", err.Error(),
		)
		s.metrics.RecordReset(true)
		s.scheduleCleanup(tenantID)
		return &ResetResult{Partial: true}, nil
	}

	logger.Infow("tenant reset complete", "tenant", tenantID, "documents_removed", removed)
	s.metrics.RecordReset(false)
	return &ResetResult{DocumentsRemoved: removed}, nil
}

// scheduleCleanup retries the registry cleanup on the background pool.
func (s *ResetService) scheduleCleanup(tenantID string) {
	delay := s.retryDelay
	attempts := s.maxAttempts
	s.workers.Submit(func() {
		for attempt := 1; attempt <= attempts; attempt++ {
			time.Sleep(delay)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			removed, err := s.registry.DeleteAllForTenant(ctx, tenantID)
			cancel()
			if err == nil {
				logger.Infow("deferred registry cleanup complete",
					"tenant", tenantID,
					"documents_removed", removed,
					"attempt", attempt,
				)
				return
			}

			logger.Warnw("deferred registry cleanup failed",
				"tenant", tenantID,
				"attempt", attempt,
				"error", err.Error(),
			)
			if delay < time.Minute {
				delay *= 2
			}
		}
		logger.Errorw("giving up on registry cleanup, records are orphaned",
			"tenant", tenantID,
			"attempts", attempts,
		)
	})
}
