package bootstrap

import (
	"context"
	"fmt"

	"quiz-forge/internal/adapter"
	"quiz-forge/internal/adapter/llm"
	"quiz-forge/internal/cache"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/generation"
	"quiz-forge/internal/service"

	"go.uber.org/zap"
)

// QuestionService wires the model client, the generation loop, the optional
// Redis result cache and the question adapter. The returned cleanup closes
// whatever connections were opened.
func QuestionService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (domain.QuestionGenerator, func(), error) {
	cleanup := func() {}

	model, err := llm.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to create %s text generator: %w", cfg.LLM.Provider, err)
	}
	logger.Info("Text generator initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)

	var records service.RecordGenerator = generation.NewGenerator(model,
		generation.WithLogger(logger),
		generation.WithTimeout(cfg.LLM.Timeout),
		generation.WithVerbose(cfg.LLM.Verbose),
	)

	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to redis: %w", err)
		}
		cleanup = func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}
		logger.Info("Successfully connected to Redis",
			zap.String("address", cfg.Redis.Address),
			zap.Duration("ttl", cfg.Cache.QuestionTTL),
		)
		records = service.NewCachedRecordGenerator(records, adapter.NewRedisCacheAdapter(redisClient), cfg.Cache.QuestionTTL, logger)
	}

	return service.NewQuestionService(records, cfg.LLM, logger), cleanup, nil
}
