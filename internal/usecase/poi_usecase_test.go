package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// Индекс вокруг Парижа: точное попадание в центр, точка в ~0.9 км и Лион
func parisIndex() *stubIndexRepo {
	return staticIndex(
		domain.POIIndexEntry{
			ID:          "center",
			Coordinates: domain.Coordinate{Lng: 2.3522, Lat: 48.8566},
			FilePath:    "objects/center.json",
		},
		domain.POIIndexEntry{
			ID:          "near",
			Coordinates: domain.Coordinate{Lng: 2.3522, Lat: 48.8646},
			FilePath:    "objects/near.json",
			Source:      domain.SourceHiking,
		},
		domain.POIIndexEntry{
			ID:          "lyon",
			Coordinates: domain.Coordinate{Lng: 4.8357, Lat: 45.7640},
			FilePath:    "objects/lyon.json",
		},
	)
}

func newTestPOIUseCase(index *stubIndexRepo, records *stubRecordRepo) *POIUseCase {
	logger, _ := zap.NewDevelopment()
	return NewPOIUseCase(NewIndexCache(index, logger), records, testPOIConfig(), logger)
}

func TestPOIUseCase_LoadPOIsInRadius(t *testing.T) {
	t.Run("radius filter keeps index order", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		pois, err := uc.LoadPOIsInRadius(context.Background(), 2.3522, 48.8566, 5, 0)
		require.NoError(t, err)
		require.Len(t, pois, 2)
		assert.Equal(t, "objects/center.json", pois[0].ID)
		assert.Equal(t, "objects/near.json", pois[1].ID)
	})

	t.Run("zero radius matches exact coordinates only", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		pois, err := uc.LoadPOIsInRadius(context.Background(), 2.3522, 48.8566, 0, 0)
		require.NoError(t, err)
		require.Len(t, pois, 1)
		assert.Equal(t, "objects/center.json", pois[0].ID)
	})

	t.Run("index source propagated to records", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		pois, err := uc.LoadPOIsInRadius(context.Background(), 2.3522, 48.8566, 5, 0)
		require.NoError(t, err)
		assert.Equal(t, domain.SourcePOI, pois[0].Source)
		assert.Equal(t, domain.SourceHiking, pois[1].Source)
	})

	t.Run("limit truncates matches", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		pois, err := uc.LoadPOIsInRadius(context.Background(), 2.3522, 48.8566, 5, 1)
		require.NoError(t, err)
		require.Len(t, pois, 1)
		assert.Equal(t, "objects/center.json", pois[0].ID)
	})

	t.Run("failed record is skipped, not fatal", func(t *testing.T) {
		records := &stubRecordRepo{
			load: func(ctx context.Context, filePath, source string) (*domain.POIData, error) {
				if filePath == "objects/near.json" {
					return nil, fmt.Errorf("record corrupted")
				}
				return &domain.POIData{ID: filePath}, nil
			},
		}
		uc := newTestPOIUseCase(parisIndex(), records)

		pois, err := uc.LoadPOIsInRadius(context.Background(), 2.3522, 48.8566, 5, 0)
		require.NoError(t, err)
		require.Len(t, pois, 1)
		assert.Equal(t, "objects/center.json", pois[0].ID)
	})

	t.Run("invalid coordinates rejected", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		_, err := uc.LoadPOIsInRadius(context.Background(), 200, 48.85, 5, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})

	t.Run("invalid radius rejected", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		_, err := uc.LoadPOIsInRadius(context.Background(), 2.35, 48.85, -1, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidRadius)

		_, err = uc.LoadPOIsInRadius(context.Background(), 2.35, 48.85, 101, 0)
		assert.ErrorIs(t, err, errors.ErrInvalidRadius)
	})

	t.Run("index load failure degrades to empty result", func(t *testing.T) {
		failing := &stubIndexRepo{
			fetch: func(ctx context.Context) (*domain.POIIndex, error) {
				return nil, fmt.Errorf("host unreachable")
			},
		}
		uc := newTestPOIUseCase(failing, echoRecordRepo())

		pois, err := uc.LoadPOIsInRadius(context.Background(), 2.3522, 48.8566, 5, 0)
		require.NoError(t, err)
		assert.Empty(t, pois)
	})
}

func TestPOIUseCase_LoadAllPOIs(t *testing.T) {
	t.Run("no limit loads everything", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		pois, err := uc.LoadAllPOIs(context.Background(), 0)
		require.NoError(t, err)
		assert.Len(t, pois, 3)
	})

	t.Run("positive limit caps the load", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		pois, err := uc.LoadAllPOIs(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, pois, 2)
	})
}

func TestPOIUseCase_GetPOIStats(t *testing.T) {
	uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

	stats, err := uc.GetPOIStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, "2026-08-01T00:00:00Z", stats.GeneratedAt)
}

func TestPOIUseCase_LoadPOIByPath(t *testing.T) {
	t.Run("default source when empty", func(t *testing.T) {
		uc := newTestPOIUseCase(parisIndex(), echoRecordRepo())

		poi, err := uc.LoadPOIByPath(context.Background(), "objects/center.json", "")
		require.NoError(t, err)
		assert.Equal(t, domain.SourcePOI, poi.Source)
	})

	t.Run("load failure wrapped in app error", func(t *testing.T) {
		records := &stubRecordRepo{
			load: func(ctx context.Context, filePath, source string) (*domain.POIData, error) {
				return nil, fmt.Errorf("not found")
			},
		}
		uc := newTestPOIUseCase(parisIndex(), records)

		_, err := uc.LoadPOIByPath(context.Background(), "objects/absent.json", "")
		assert.ErrorIs(t, err, errors.ErrRecordUnavailable)
	})
}
