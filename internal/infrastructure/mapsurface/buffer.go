package mapsurface

import (
	"sync"

	"github.com/paulmach/orb/geojson"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/domain/repository"
	"go.uber.org/zap"
)

// Buffer - буферизованная реализация поверхности карты для тонких клиентов.
// Держит последнее состояние именованных GeoJSON-источников и камеры; клиент
// забирает снимок по HTTP и рисует его сам. Счётчик repaint позволяет клиенту
// дёшево определять устаревание кадра.
type Buffer struct {
	mu sync.RWMutex

	sources map[string]*geojson.FeatureCollection
	center  domain.Coordinate
	zoom    float64
	bearing float64
	repaint uint64

	clusterMaxZoom float64
	logger         *zap.Logger
}

// Snapshot - сериализуемый снимок состояния поверхности
type Snapshot struct {
	Sources map[string]*geojson.FeatureCollection `json:"sources"`
	Center  domain.Coordinate                     `json:"center"`
	Zoom    float64                               `json:"zoom"`
	Bearing float64                               `json:"bearing"`
	Repaint uint64                                `json:"repaint"`
}

// NewBuffer создает буферизованную поверхность с начальной камерой
func NewBuffer(center domain.Coordinate, zoom float64, clusterMaxZoom int, logger *zap.Logger) *Buffer {
	return &Buffer{
		sources:        make(map[string]*geojson.FeatureCollection),
		center:         center,
		zoom:           zoom,
		clusterMaxZoom: float64(clusterMaxZoom),
		logger:         logger,
	}
}

var _ repository.MapSurface = (*Buffer)(nil)

func (b *Buffer) SetSourceData(sourceID string, fc *geojson.FeatureCollection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources[sourceID] = fc
	b.repaint++
}

func (b *Buffer) RemoveSource(sourceID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.sources, sourceID)
	b.repaint++
}

func (b *Buffer) HasSource(sourceID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.sources[sourceID]
	return ok
}

// ClusterExpansionZoom - зум, на котором кластер распадается. Буфер не ведёт
// собственного кластерного индекса (визуальная кластеризация - на стороне
// карты), поэтому шагает к зуму за порогом кластеризации.
func (b *Buffer) ClusterExpansionZoom(sourceID string, clusterID int64) (float64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	next := b.zoom + 2
	if next > b.clusterMaxZoom+1 {
		next = b.clusterMaxZoom + 1
	}
	return next, nil
}

func (b *Buffer) EaseTo(center domain.Coordinate, zoom float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.center = center
	b.zoom = zoom
	b.repaint++
}

func (b *Buffer) SetCenter(center domain.Coordinate) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.center = center
	b.repaint++
}

func (b *Buffer) SetBearing(bearing float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bearing = bearing
	b.repaint++
}

func (b *Buffer) Center() domain.Coordinate {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.center
}

func (b *Buffer) Zoom() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.zoom
}

func (b *Buffer) Repaint() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.repaint++
}

// State возвращает снимок для выдачи клиенту
func (b *Buffer) State() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	sources := make(map[string]*geojson.FeatureCollection, len(b.sources))
	for id, fc := range b.sources {
		sources[id] = fc
	}

	return Snapshot{
		Sources: sources,
		Center:  b.center,
		Zoom:    b.zoom,
		Bearing: b.bearing,
		Repaint: b.repaint,
	}
}
