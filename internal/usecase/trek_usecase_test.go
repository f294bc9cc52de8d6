package usecase

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/pkg/errors"
	"go.uber.org/zap"
)

func newTestTrekUseCase(records *stubRecordRepo) *TrekUseCase {
	logger, _ := zap.NewDevelopment()
	pois := NewPOIUseCase(NewIndexCache(staticIndex(), logger), records, testPOIConfig(), logger)
	return NewTrekUseCase(pois, logger)
}

func TestTrekUseCase_GetTrekRoute(t *testing.T) {
	t.Run("route line from own geometry", func(t *testing.T) {
		records := &stubRecordRepo{
			load: func(ctx context.Context, filePath, source string) (*domain.POIData, error) {
				return &domain.POIData{
					ID:     "trek-1",
					Name:   "Sentier des crêtes",
					Source: source,
					RawData: map[string]any{
						"hasGeometry": []any{map[string]any{
							"geo:asWKT": "LINESTRING(6.86 45.92, 6.87 45.93, 6.88 45.94)",
						}},
					},
				}, nil
			},
		}
		uc := newTestTrekUseCase(records)

		fc, err := uc.GetTrekRoute(context.Background(), "objects/hiking_paths/1.json", domain.SourceHiking)
		require.NoError(t, err)
		require.Len(t, fc.Features, 1)

		feature := fc.Features[0]
		line, ok := feature.Geometry.(orb.LineString)
		require.True(t, ok)
		assert.Len(t, line, 3)
		assert.Equal(t, orb.Point{6.86, 45.92}, line[0])

		assert.Equal(t, "trek-1", feature.Properties["id"])
		assert.Equal(t, "Sentier des crêtes", feature.Properties["name"])
		assert.Equal(t, domain.SourceHiking, feature.Properties["source"])
		assert.Equal(t, true, feature.Properties["isTrek"])
	})

	t.Run("insufficient geometry", func(t *testing.T) {
		records := &stubRecordRepo{
			load: func(ctx context.Context, filePath, source string) (*domain.POIData, error) {
				return &domain.POIData{ID: "trek-2", RawData: map[string]any{}}, nil
			},
		}
		uc := newTestTrekUseCase(records)

		_, err := uc.GetTrekRoute(context.Background(), "objects/2.json", domain.SourceHiking)
		assert.ErrorIs(t, err, errors.ErrGeometryInsufficient)
	})

	t.Run("record load failure propagated", func(t *testing.T) {
		records := &stubRecordRepo{
			load: func(ctx context.Context, filePath, source string) (*domain.POIData, error) {
				return nil, assert.AnError
			},
		}
		uc := newTestTrekUseCase(records)

		_, err := uc.GetTrekRoute(context.Background(), "objects/absent.json", "")
		assert.ErrorIs(t, err, errors.ErrRecordUnavailable)
	})
}
