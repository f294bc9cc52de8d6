package repository

import (
	"github.com/paulmach/orb/geojson"
	"github.com/tourism-poi-service/internal/domain"
)

// MapSurface - внешняя поверхность рендеринга карты. Визуальная кластеризация,
// слои и стили живут на стороне карты; сервис только поставляет геометрию и
// управляет камерой.
type MapSurface interface {
	// SetSourceData создаёт или обновляет именованный GeoJSON-источник
	SetSourceData(sourceID string, fc *geojson.FeatureCollection)

	// RemoveSource удаляет источник вместе с его слоями
	RemoveSource(sourceID string)

	// HasSource сообщает, установлен ли источник
	HasSource(sourceID string) bool

	// ClusterExpansionZoom возвращает зум, на котором кластер распадается
	ClusterExpansionZoom(sourceID string, clusterID int64) (float64, error)

	// EaseTo перецентрирует карту с изменением зума
	EaseTo(center domain.Coordinate, zoom float64)

	SetCenter(center domain.Coordinate)
	SetBearing(bearing float64)
	Center() domain.Coordinate
	Zoom() float64

	// Repaint принудительно перерисовывает кадр без движения камеры
	Repaint()
}
