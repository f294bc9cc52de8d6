package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/domain/repository"
	"go.uber.org/zap"
)

// POISourceID - имя GeoJSON-источника с POI на поверхности карты
const POISourceID = "pois"

// Коллбеки взаимодействия с точками
type (
	POIClickHandler      func(poi *domain.POIData, coordinates domain.Coordinate)
	POIGroupClickHandler func(pois []*domain.POIData, coordinates domain.Coordinate)
)

// ClusterUseCase агрегирует POI в геометрию для карты: группирует по точному
// совпадению координат и раскладывает клики обратно в коллбеки. Визуальная
// кластеризация (радиусы, зумы, цвета) конфигурируется на поверхности карты,
// здесь не вычисляется.
type ClusterUseCase struct {
	cfg    *config.ClusterConfig
	logger *zap.Logger

	onPOIClick      POIClickHandler
	onPOIGroupClick POIGroupClickHandler
}

func NewClusterUseCase(cfg *config.ClusterConfig, logger *zap.Logger) *ClusterUseCase {
	return &ClusterUseCase{
		cfg:    cfg,
		logger: logger,
	}
}

// ToFeatureCollection превращает POI в коллекцию точечных фич. POI считаются
// "в одном месте" только при точном совпадении "lng,lat", без привязки с
// допуском. Группа из одного POI несёт сериализованный POI в poiData; группа
// крупнее - сериализованный массив в poiDataArray, id из id участников через
// запятую и имя "{n} événements".
func (uc *ClusterUseCase) ToFeatureCollection(pois []*domain.POIData) *geojson.FeatureCollection {
	grouped := make(map[string][]*domain.POIData)
	order := make([]string, 0, len(pois))

	for _, poi := range pois {
		key := coordinateKey(poi.Coordinates)
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], poi)
	}

	fc := geojson.NewFeatureCollection()

	for _, key := range order {
		group := grouped[key]
		point := orb.Point{group[0].Coordinates.Lng, group[0].Coordinates.Lat}

		feature := geojson.NewFeature(point)

		if len(group) == 1 {
			poi := group[0]
			payload, err := json.Marshal(poi)
			if err != nil {
				uc.logger.Warn("Failed to serialize POI", zap.String("id", poi.ID), zap.Error(err))
				continue
			}
			feature.Properties = geojson.Properties{
				"id":          poi.ID,
				"name":        poi.Name,
				"description": poi.Description,
				"type":        poi.Type,
				"poiData":     string(payload),
				"poiCount":    1,
				"source":      sourceOrDefault(poi.Source),
			}
		} else {
			payload, err := json.Marshal(group)
			if err != nil {
				uc.logger.Warn("Failed to serialize POI group", zap.String("key", key), zap.Error(err))
				continue
			}

			ids := make([]string, len(group))
			names := make([]string, len(group))
			for i, poi := range group {
				ids[i] = poi.ID
				names[i] = poi.Name
			}

			feature.Properties = geojson.Properties{
				"id":           strings.Join(ids, ","),
				"name":         fmt.Sprintf("%d événements", len(group)),
				"description":  strings.Join(names, ", "),
				"type":         group[0].Type,
				"poiDataArray": string(payload),
				"poiCount":     len(group),
				"source":       sourceOrDefault(group[0].Source),
			}
		}

		fc.Append(feature)
	}

	return fc
}

// Initialize устанавливает источник POI на поверхность и регистрирует
// коллбеки кликов. Повторная инициализация той же поверхности - no-op:
// проверяется наличие источника.
func (uc *ClusterUseCase) Initialize(
	surface repository.MapSurface,
	pois []*domain.POIData,
	onPOIClick POIClickHandler,
	onPOIGroupClick POIGroupClickHandler,
) {
	if surface.HasSource(POISourceID) {
		uc.logger.Debug("Clustering already initialized, skipping")
		return
	}

	uc.onPOIClick = onPOIClick
	uc.onPOIGroupClick = onPOIGroupClick

	surface.SetSourceData(POISourceID, uc.ToFeatureCollection(pois))

	uc.logger.Info("Clustering initialized",
		zap.Int("pois", len(pois)),
		zap.Int("cluster_max_zoom", uc.cfg.MaxZoom),
		zap.Int("cluster_radius", uc.cfg.Radius))
}

// UpdateData обновляет данные источника POI, если он установлен
func (uc *ClusterUseCase) UpdateData(surface repository.MapSurface, pois []*domain.POIData) {
	if !surface.HasSource(POISourceID) {
		return
	}
	surface.SetSourceData(POISourceID, uc.ToFeatureCollection(pois))
}

// HandleClusterClick раскрывает кластер: запрашивает у кластерного индекса
// поверхности зум распада и перецентрирует карту. Состояние агрегатора не
// меняется - это эффект на внешней поверхности.
func (uc *ClusterUseCase) HandleClusterClick(
	surface repository.MapSurface,
	clusterID int64,
	center domain.Coordinate,
) error {
	zoom, err := surface.ClusterExpansionZoom(POISourceID, clusterID)
	if err != nil {
		uc.logger.Error("Cluster expansion failed",
			zap.Int64("cluster_id", clusterID),
			zap.Error(err))
		return err
	}

	surface.EaseTo(center, zoom)
	return nil
}

// HandlePointClick различает форму полезной нагрузки фичи - групповую
// (poiDataArray) или одиночную (poiData) - и вызывает соответствующий коллбек
// с десериализованными POI и координатами клика
func (uc *ClusterUseCase) HandlePointClick(
	properties map[string]any,
	coordinates domain.Coordinate,
) error {
	if raw, ok := properties["poiDataArray"].(string); ok {
		var pois []*domain.POIData
		if err := json.Unmarshal([]byte(raw), &pois); err != nil {
			return fmt.Errorf("malformed poiDataArray payload: %w", err)
		}
		uc.logger.Debug("Grouped POI clicked", zap.Int("count", len(pois)))
		if uc.onPOIGroupClick != nil {
			uc.onPOIGroupClick(pois, coordinates)
		}
		return nil
	}

	if raw, ok := properties["poiData"].(string); ok {
		var poi domain.POIData
		if err := json.Unmarshal([]byte(raw), &poi); err != nil {
			return fmt.Errorf("malformed poiData payload: %w", err)
		}
		uc.logger.Debug("Single POI clicked", zap.String("name", poi.Name))
		if uc.onPOIClick != nil {
			uc.onPOIClick(&poi, coordinates)
		}
		return nil
	}

	return fmt.Errorf("feature carries no POI payload")
}

func coordinateKey(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}

func sourceOrDefault(source string) string {
	if source == "" {
		return domain.SourcePOI
	}
	return source
}
