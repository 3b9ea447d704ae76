package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

const workCenterCachePrefix = "workcenter:"

type workCenterFinder interface {
	FindByID(ctx context.Context, id string) (*models.WorkCenter, error)
}

// WorkCenterRegistry resolves work centers, caching them in Redis when enabled.
type WorkCenterRegistry struct {
	repo   workCenterFinder
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewWorkCenterRegistry constructs the registry. cache may be nil.
func NewWorkCenterRegistry(repo workCenterFinder, cache *CacheService, ttl time.Duration, logger *zap.Logger) *WorkCenterRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkCenterRegistry{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Lookup returns the work center or ErrNotFound.
func (r *WorkCenterRegistry) Lookup(ctx context.Context, id string) (*models.WorkCenter, error) {
	key := workCenterCachePrefix + id
	var cached models.WorkCenter
	if r.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	wc, err := r.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("work center %s not found", id))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load work center")
	}
	r.cache.Set(ctx, key, wc, r.ttl)
	return wc, nil
}

// Invalidate drops the cached entry of a work center.
func (r *WorkCenterRegistry) Invalidate(ctx context.Context, id string) {
	r.cache.Invalidate(ctx, workCenterCachePrefix+id)
	r.logger.Debug("work center cache invalidated", zap.String("workcenter_id", id))
}
