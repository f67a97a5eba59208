package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quiz-forge/internal/cache"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/generation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedRecordGenerator serves repeated generation requests from the cache
// and collapses concurrent identical misses into one model run.
// Failed (empty) generations are never cached.
type CachedRecordGenerator struct {
	next    RecordGenerator
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
	logger  *zap.Logger
}

func NewCachedRecordGenerator(next RecordGenerator, cache domain.Cache, ttl time.Duration, logger *zap.Logger) *CachedRecordGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRecordGenerator{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedRecordGenerator) Generate(ctx context.Context, req generation.Request) []generation.Record {
	cacheKey := recordCacheKey(req)

	cached, err := c.cache.Get(ctx, cacheKey)
	switch {
	case err == nil:
		var records []generation.Record
		if errDecode := json.Unmarshal([]byte(cached), &records); errDecode == nil && len(records) > 0 {
			c.logger.Debug("Generation cache hit", zap.String("generation_id", req.ID), zap.String("key", cacheKey))
			return records
		} else if errDecode != nil {
			c.logger.Warn("Failed to decode cached records", zap.Error(errDecode), zap.String("key", cacheKey))
		}
	case !errors.Is(err, domain.ErrCacheMiss):
		c.logger.Warn("Generation cache lookup failed", zap.Error(err), zap.String("key", cacheKey))
	}

	// The shared run must outlive any single caller; the Generator's own
	// timeout still bounds it.
	sharedCtx := context.WithoutCancel(ctx)
	ch := c.sfGroup.DoChan(cacheKey, func() (interface{}, error) {
		records := c.next.Generate(sharedCtx, req)
		if len(records) == 0 {
			return records, nil
		}
		encoded, errEncode := json.Marshal(records)
		if errEncode != nil {
			c.logger.Warn("Failed to encode records for caching", zap.Error(errEncode))
			return records, nil
		}
		if errSet := c.cache.Set(sharedCtx, cacheKey, string(encoded), c.ttl); errSet != nil {
			c.logger.Warn("Failed to cache generated records", zap.Error(errSet), zap.String("key", cacheKey))
		}
		return records, nil
	})

	select {
	case <-ctx.Done():
		c.logger.Warn("Generation abandoned by caller",
			zap.String("generation_id", req.ID),
			zap.Error(ctx.Err()))
		return []generation.Record{}
	case res := <-ch:
		records, _ := res.Val.([]generation.Record)
		if records == nil {
			return []generation.Record{}
		}
		if res.Shared {
			c.logger.Debug("Generation shared with concurrent caller", zap.String("generation_id", req.ID))
		}
		return records
	}
}

// recordCacheKey identifies a request by everything that shapes the output.
// The request ID is not part of the key.
func recordCacheKey(req generation.Request) string {
	return cache.GenerationRecordsKey(req.SystemPrompt, req.UserPrompts, req.Schema.String(), req.Temperature)
}

var _ RecordGenerator = (*CachedRecordGenerator)(nil)
