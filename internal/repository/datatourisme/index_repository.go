package datatourisme

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/domain/repository"
	"go.uber.org/zap"
)

const indexCacheKey = "datatourisme:poi-index"

type indexRepository struct {
	httpClient *http.Client
	indexURL   string
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewIndexRepository создает репозиторий пространственного индекса POI.
// Индекс лежит одним JSON-документом на статическом хосте; байты ответа
// дополнительно кэшируются в redis, чтобы рестарт процесса не ходил на хост.
func NewIndexRepository(
	cfg *config.POIConfig,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) repository.IndexRepository {
	return &indexRepository{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		indexURL: cfg.IndexURL,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// FetchIndex загружает индекс: сперва из redis, затем со статического хоста
func (r *indexRepository) FetchIndex(ctx context.Context) (*domain.POIIndex, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, indexCacheKey); err == nil && cached != nil {
			var index domain.POIIndex
			if err := json.Unmarshal(cached, &index); err == nil {
				r.logger.Debug("POI index served from cache",
					zap.Int("total_count", index.TotalCount))
				return &index, nil
			}
			// Битый кэш не фатален - идём на хост
			_ = r.cache.Delete(ctx, indexCacheKey)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Error("Failed to fetch POI index", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch POI index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("POI index host returned error",
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("POI index fetch failed: status %d", resp.StatusCode)
	}

	var index domain.POIIndex
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&index); err != nil {
		r.logger.Error("Failed to decode POI index", zap.Error(err))
		return nil, fmt.Errorf("failed to decode POI index: %w", err)
	}

	r.logger.Info("POI index fetched",
		zap.Int("total_count", index.TotalCount),
		zap.String("generated_at", index.GeneratedAt))

	if r.cache != nil {
		if data, err := json.Marshal(&index); err == nil {
			if err := r.cache.Set(ctx, indexCacheKey, data, r.cacheTTL); err != nil {
				r.logger.Warn("Failed to cache POI index", zap.Error(err))
			}
		}
	}

	return &index, nil
}
