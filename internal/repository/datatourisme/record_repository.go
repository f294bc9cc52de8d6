package datatourisme

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/domain/repository"
	"go.uber.org/zap"
)

type recordRepository struct {
	httpClient *http.Client
	baseURL    string
	cache      repository.CacheRepository
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewRecordRepository создает репозиторий полных записей POI. Каждая запись -
// отдельный JSON-документ под базовым URL, адресуемый относительным путём из
// индекса. Сырые байты кэшируются в redis.
func NewRecordRepository(
	cfg *config.POIConfig,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) repository.RecordRepository {
	return &recordRepository{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.ObjectsBaseURL, "/"),
		cache:   cache,
		cacheTTL: cacheTTL,
		logger:  logger,
	}
}

// LoadPOI загружает запись и нормализует её в POIData. Source проставляется из
// записи индекса; пустой source означает обычный POI.
func (r *recordRepository) LoadPOI(ctx context.Context, filePath, source string) (*domain.POIData, error) {
	raw, err := r.fetchRecord(ctx, filePath)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.logger.Warn("Failed to parse POI record",
			zap.String("file_path", filePath),
			zap.Error(err))
		return nil, fmt.Errorf("failed to parse POI record %s: %w", filePath, err)
	}

	poi := ParsePOI(doc)
	if source != "" {
		poi.Source = source
	}
	return poi, nil
}

func (r *recordRepository) fetchRecord(ctx context.Context, filePath string) ([]byte, error) {
	cacheKey := "datatourisme:record:" + filePath

	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, cacheKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	url := r.baseURL + "/" + strings.TrimLeft(filePath, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("Failed to fetch POI record",
			zap.String("file_path", filePath),
			zap.Error(err))
		return nil, fmt.Errorf("failed to fetch POI record %s: %w", filePath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("POI record host returned error",
			zap.String("file_path", filePath),
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("POI record fetch failed: %s status %d", filePath, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read POI record %s: %w", filePath, err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, data, r.cacheTTL); err != nil {
			r.logger.Warn("Failed to cache POI record",
				zap.String("file_path", filePath),
				zap.Error(err))
		}
	}

	return data, nil
}
