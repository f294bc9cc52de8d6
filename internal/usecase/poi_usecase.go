package usecase

import (
	"context"
	"sync"

	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/domain/repository"
	"github.com/tourism-poi-service/internal/pkg/errors"
	"github.com/tourism-poi-service/internal/pkg/utils"
	"go.uber.org/zap"
)

type POIUseCase struct {
	index   *IndexCache
	records repository.RecordRepository
	cfg     *config.POIConfig
	logger  *zap.Logger
}

func NewPOIUseCase(
	index *IndexCache,
	records repository.RecordRepository,
	cfg *config.POIConfig,
	logger *zap.Logger,
) *POIUseCase {
	return &POIUseCase{
		index:   index,
		records: records,
		cfg:     cfg,
		logger:  logger,
	}
}

// LoadPOIsInRadius возвращает нормализованные POI в радиусе radiusKm (граница
// включительно) вокруг точки. Порядок - порядок индекса, не по дистанции.
// Отказ загрузки отдельной записи не прерывает запрос: запись пропускается.
func (uc *POIUseCase) LoadPOIsInRadius(
	ctx context.Context,
	centerLng, centerLat, radiusKm float64,
	maxResults int,
) ([]*domain.POIData, error) {
	if !utils.ValidateCoordinates(centerLat, centerLng) {
		return nil, errors.ErrInvalidCoordinates
	}
	if !utils.ValidateRadius(radiusKm) {
		return nil, errors.ErrInvalidRadius
	}

	maxResults = uc.clampLimit(maxResults)

	index := uc.index.Get(ctx)

	filtered := make([]domain.POIIndexEntry, 0)
	for _, entry := range index.POIs {
		distance := utils.HaversineDistance(centerLat, centerLng, entry.Coordinates.Lat, entry.Coordinates.Lng)
		if distance <= radiusKm {
			filtered = append(filtered, entry)
		}
	}

	uc.logger.Debug("POIs matched in radius",
		zap.Int("matched", len(filtered)),
		zap.Float64("radius_km", radiusKm),
		zap.Int("limit", maxResults))

	if len(filtered) > maxResults {
		filtered = filtered[:maxResults]
	}

	return uc.loadEntries(ctx, filtered), nil
}

// LoadAllPOIs загружает POI без фильтра по дистанции, с опциональным лимитом
// (maxResults <= 0 - без лимита)
func (uc *POIUseCase) LoadAllPOIs(ctx context.Context, maxResults int) ([]*domain.POIData, error) {
	index := uc.index.Get(ctx)

	entries := index.POIs
	if maxResults > 0 && len(entries) > maxResults {
		entries = entries[:maxResults]
	}

	uc.logger.Debug("Loading POIs without radius filter",
		zap.Int("available", index.TotalCount),
		zap.Int("loading", len(entries)))

	return uc.loadEntries(ctx, entries), nil
}

// GetPOIStats возвращает метаданные индекса без загрузки тел POI
func (uc *POIUseCase) GetPOIStats(ctx context.Context) (*domain.POIStats, error) {
	index := uc.index.Get(ctx)
	return &domain.POIStats{
		Total:       index.TotalCount,
		GeneratedAt: index.GeneratedAt,
	}, nil
}

// LoadPOIByPath загружает и нормализует одну запись по её относительному пути
func (uc *POIUseCase) LoadPOIByPath(ctx context.Context, filePath, source string) (*domain.POIData, error) {
	if source == "" {
		source = domain.SourcePOI
	}
	poi, err := uc.records.LoadPOI(ctx, filePath, source)
	if err != nil {
		uc.logger.Warn("Failed to load POI record",
			zap.String("file_path", filePath),
			zap.Error(err))
		return nil, errors.ErrRecordUnavailable
	}
	return poi, nil
}

// loadEntries загружает записи ограниченным числом одновременных запросов,
// сохраняя порядок индекса. Неудачные записи выбрасываются из результата.
func (uc *POIUseCase) loadEntries(ctx context.Context, entries []domain.POIIndexEntry) []*domain.POIData {
	results := make([]*domain.POIData, len(entries))

	sem := make(chan struct{}, uc.cfg.FetchConcurrency)
	var wg sync.WaitGroup

	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry domain.POIIndexEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			source := entry.Source
			if source == "" {
				source = domain.SourcePOI
			}

			poi, err := uc.records.LoadPOI(ctx, entry.FilePath, source)
			if err != nil {
				// Частичный отказ не прерывает запрос
				uc.logger.Debug("Skipping POI record",
					zap.String("id", entry.ID),
					zap.Error(err))
				return
			}
			results[i] = poi
		}(i, entry)
	}

	wg.Wait()

	loaded := make([]*domain.POIData, 0, len(results))
	for _, poi := range results {
		if poi != nil {
			loaded = append(loaded, poi)
		}
	}
	return loaded
}

func (uc *POIUseCase) clampLimit(limit int) int {
	if limit <= 0 {
		return uc.cfg.DefaultLimit
	}
	if limit > uc.cfg.MaxLimit {
		return uc.cfg.MaxLimit
	}
	return limit
}
