package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"docregistry/internal/config"
	"docregistry/internal/domain/entity"
	"docregistry/internal/domain/repository"
	"docregistry/internal/infrastructure/redis"
)

const vocabularyCacheKey = "docregistry:vocabulary"

// VocabularyUsecase resolves the document-type and category vocabulary from
// the Master sheet, degrading to the built-in defaults when the sheet is
// unreachable. Results are cached in Redis.
type VocabularyUsecase interface {
	Get(ctx context.Context) *entity.Vocabulary
	// Refresh drops the cache so the next Get hits the sheet again
	Refresh(ctx context.Context) error
}

type vocabularyUsecase struct {
	config      *config.Config
	repo        repository.SheetRepository
	redisClient *redis.RedisClient
	logger      *zap.Logger
}

func NewVocabularyUsecase(cfg *config.Config, repo repository.SheetRepository, redisClient *redis.RedisClient, logger *zap.Logger) VocabularyUsecase {
	return &vocabularyUsecase{
		config:      cfg,
		repo:        repo,
		redisClient: redisClient,
		logger:      logger,
	}
}

// Get never fails: any fetch or parse problem falls back to the default
// vocabulary with Fallback set, so the form stays usable.
func (u *vocabularyUsecase) Get(ctx context.Context) *entity.Vocabulary {
	if cached := u.fromCache(ctx); cached != nil {
		return cached
	}

	rows, err := u.repo.FetchMaster(ctx)
	if err != nil {
		u.logger.Warn("Master sheet unavailable, using default vocabulary", zap.Error(err))
		return entity.DefaultVocabulary()
	}

	vocab := entity.ParseMasterRows(rows)
	u.logger.Info("Vocabulary loaded from master sheet",
		zap.Int("types", len(vocab.Types)),
		zap.Int("categories", len(vocab.Categories)),
	)

	u.toCache(ctx, vocab)
	return vocab
}

func (u *vocabularyUsecase) Refresh(ctx context.Context) error {
	return u.redisClient.Del(ctx, vocabularyCacheKey)
}

func (u *vocabularyUsecase) fromCache(ctx context.Context) *entity.Vocabulary {
	if u.redisClient == nil {
		return nil
	}

	data, err := u.redisClient.Get(ctx, vocabularyCacheKey)
	if err != nil || data == "" {
		return nil
	}

	var vocab entity.Vocabulary
	if err := json.Unmarshal([]byte(data), &vocab); err != nil {
		return nil
	}
	return &vocab
}

func (u *vocabularyUsecase) toCache(ctx context.Context, vocab *entity.Vocabulary) {
	if u.redisClient == nil || u.config.Vocabulary.CacheTTL <= 0 {
		return
	}

	data, _ := json.Marshal(vocab)
	if err := u.redisClient.Set(ctx, vocabularyCacheKey, string(data), u.config.Vocabulary.CacheTTL); err != nil {
		u.logger.Warn("Failed to cache vocabulary", zap.Error(err))
	}
}
