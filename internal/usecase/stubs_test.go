package usecase

import (
	"context"
	"sync"

	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/domain"
)

// Стабы репозиториев для тестов use case

type stubIndexRepo struct {
	mu    sync.Mutex
	calls int
	fetch func(ctx context.Context) (*domain.POIIndex, error)
}

func (s *stubIndexRepo) FetchIndex(ctx context.Context) (*domain.POIIndex, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fetch(ctx)
}

func (s *stubIndexRepo) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubRecordRepo struct {
	load func(ctx context.Context, filePath, source string) (*domain.POIData, error)
}

func (s *stubRecordRepo) LoadPOI(ctx context.Context, filePath, source string) (*domain.POIData, error) {
	return s.load(ctx, filePath, source)
}

type stubRouting struct {
	route func(ctx context.Context, start, end domain.Coordinate) ([]domain.Coordinate, error)
}

func (s *stubRouting) CalculateRoute(ctx context.Context, start, end domain.Coordinate) ([]domain.Coordinate, error) {
	return s.route(ctx, start, end)
}

func testPOIConfig() *config.POIConfig {
	return &config.POIConfig{
		DefaultLimit:     100,
		MaxLimit:         500,
		FetchConcurrency: 4,
	}
}

func testNavigationConfig() *config.NavigationConfig {
	return &config.NavigationConfig{
		Speed:               0.00002,
		ArrivalThreshold:    0.00001,
		BearingSmoothing:    0.3,
		CameraBearingOffset: 5,
	}
}

// echoRecordRepo возвращает POI, собранный из записи индекса, без похода в сеть
func echoRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{
		load: func(ctx context.Context, filePath, source string) (*domain.POIData, error) {
			return &domain.POIData{
				ID:     filePath,
				Name:   filePath,
				Source: source,
			}, nil
		},
	}
}

func staticIndex(entries ...domain.POIIndexEntry) *stubIndexRepo {
	return &stubIndexRepo{
		fetch: func(ctx context.Context) (*domain.POIIndex, error) {
			return &domain.POIIndex{
				POIs:        entries,
				TotalCount:  len(entries),
				GeneratedAt: "2026-08-01T00:00:00Z",
			}, nil
		},
	}
}
