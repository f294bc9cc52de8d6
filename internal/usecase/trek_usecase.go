package usecase

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tourism-poi-service/internal/pkg/errors"
	"github.com/tourism-poi-service/internal/repository/datatourisme"
	"go.uber.org/zap"
)

// TrekUseCase достаёт собственную геометрию маршрута трека из его записи
type TrekUseCase struct {
	pois   *POIUseCase
	logger *zap.Logger
}

func NewTrekUseCase(pois *POIUseCase, logger *zap.Logger) *TrekUseCase {
	return &TrekUseCase{
		pois:   pois,
		logger: logger,
	}
}

// GetTrekRoute загружает запись трека и возвращает её линию маршрута как
// GeoJSON. Меньше двух точек геометрии - ErrGeometryInsufficient: маршрут не
// рисуется, предупреждение уходит вызывающему.
func (uc *TrekUseCase) GetTrekRoute(
	ctx context.Context,
	filePath, source string,
) (*geojson.FeatureCollection, error) {
	poi, err := uc.pois.LoadPOIByPath(ctx, filePath, source)
	if err != nil {
		return nil, err
	}

	coords := datatourisme.ExtractRouteCoordinates(poi)
	if len(coords) < 2 {
		uc.logger.Warn("Trek record carries insufficient route geometry",
			zap.String("file_path", filePath),
			zap.Int("points", len(coords)))
		return nil, errors.ErrGeometryInsufficient
	}

	line := make(orb.LineString, len(coords))
	for i, c := range coords {
		line[i] = orb.Point{c.Lng, c.Lat}
	}

	feature := geojson.NewFeature(line)
	feature.Properties = geojson.Properties{
		"id":     poi.ID,
		"name":   poi.Name,
		"source": poi.Source,
		"isTrek": datatourisme.IsTrek(poi),
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(feature)
	return fc, nil
}
