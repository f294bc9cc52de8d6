package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/infrastructure/mapsurface"
	"go.uber.org/zap"
)

func newTestClusterUseCase() *ClusterUseCase {
	logger, _ := zap.NewDevelopment()
	return NewClusterUseCase(&config.ClusterConfig{MaxZoom: 14, Radius: 50}, logger)
}

func newTestSurface() *mapsurface.Buffer {
	logger, _ := zap.NewDevelopment()
	return mapsurface.NewBuffer(domain.Coordinate{Lng: 2.2137, Lat: 46.2276}, 6, 14, logger)
}

func TestClusterUseCase_ToFeatureCollection(t *testing.T) {
	uc := newTestClusterUseCase()

	t.Run("distinct coordinates make distinct features", func(t *testing.T) {
		fc := uc.ToFeatureCollection([]*domain.POIData{
			{ID: "a", Name: "A", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
			{ID: "b", Name: "B", Coordinates: domain.Coordinate{Lng: 2.36, Lat: 48.85}},
		})

		require.Len(t, fc.Features, 2)
		assert.Equal(t, "a", fc.Features[0].Properties["id"])
		assert.Equal(t, 1, fc.Features[0].Properties["poiCount"])
	})

	t.Run("exact coordinate match groups POIs", func(t *testing.T) {
		fc := uc.ToFeatureCollection([]*domain.POIData{
			{ID: "a", Name: "Concert", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
			{ID: "b", Name: "Expo", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
		})

		require.Len(t, fc.Features, 1)
		props := fc.Features[0].Properties
		assert.Equal(t, "a,b", props["id"])
		assert.Equal(t, "2 événements", props["name"])
		assert.Equal(t, "Concert, Expo", props["description"])
		assert.Equal(t, 2, props["poiCount"])

		var group []*domain.POIData
		require.NoError(t, json.Unmarshal([]byte(props["poiDataArray"].(string)), &group))
		require.Len(t, group, 2)
		assert.Equal(t, "Concert", group[0].Name)
	})

	t.Run("near misses are not grouped", func(t *testing.T) {
		fc := uc.ToFeatureCollection([]*domain.POIData{
			{ID: "a", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
			{ID: "b", Coordinates: domain.Coordinate{Lng: 2.3500001, Lat: 48.85}},
		})

		assert.Len(t, fc.Features, 2)
	})

	t.Run("single POI carries its own payload", func(t *testing.T) {
		fc := uc.ToFeatureCollection([]*domain.POIData{
			{
				ID:          "a",
				Name:        "Musée",
				Description: "Un musée.",
				Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85},
				Source:      domain.SourceHiking,
			},
		})

		require.Len(t, fc.Features, 1)
		props := fc.Features[0].Properties
		assert.Equal(t, "Musée", props["name"])
		assert.Equal(t, domain.SourceHiking, props["source"])

		var poi domain.POIData
		require.NoError(t, json.Unmarshal([]byte(props["poiData"].(string)), &poi))
		assert.Equal(t, "Un musée.", poi.Description)
	})

	t.Run("first appearance order preserved", func(t *testing.T) {
		fc := uc.ToFeatureCollection([]*domain.POIData{
			{ID: "b", Coordinates: domain.Coordinate{Lng: 2.36, Lat: 48.85}},
			{ID: "a1", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
			{ID: "a2", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
		})

		require.Len(t, fc.Features, 2)
		assert.Equal(t, "b", fc.Features[0].Properties["id"])
		assert.Equal(t, "a1,a2", fc.Features[1].Properties["id"])
	})

	t.Run("empty source defaults to poi", func(t *testing.T) {
		fc := uc.ToFeatureCollection([]*domain.POIData{
			{ID: "a", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
		})
		assert.Equal(t, domain.SourcePOI, fc.Features[0].Properties["source"])
	})
}

func TestClusterUseCase_Initialize(t *testing.T) {
	uc := newTestClusterUseCase()
	surface := newTestSurface()

	pois := []*domain.POIData{
		{ID: "a", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
	}

	uc.Initialize(surface, pois, nil, nil)
	assert.True(t, surface.HasSource(POISourceID))

	// Повторная инициализация - no-op
	repaint := surface.State().Repaint
	uc.Initialize(surface, pois, nil, nil)
	assert.Equal(t, repaint, surface.State().Repaint)
}

func TestClusterUseCase_UpdateData(t *testing.T) {
	uc := newTestClusterUseCase()
	surface := newTestSurface()

	pois := []*domain.POIData{
		{ID: "a", Coordinates: domain.Coordinate{Lng: 2.35, Lat: 48.85}},
	}

	// Без инициализации обновление игнорируется
	uc.UpdateData(surface, pois)
	assert.False(t, surface.HasSource(POISourceID))

	uc.Initialize(surface, pois, nil, nil)
	uc.UpdateData(surface, pois)
	assert.True(t, surface.HasSource(POISourceID))
}

func TestClusterUseCase_HandleClusterClick(t *testing.T) {
	uc := newTestClusterUseCase()
	surface := newTestSurface()

	center := domain.Coordinate{Lng: 2.35, Lat: 48.85}
	err := uc.HandleClusterClick(surface, 7, center)
	require.NoError(t, err)

	assert.Equal(t, center, surface.Center())
	assert.Equal(t, 8.0, surface.Zoom())
}

func TestClusterUseCase_HandlePointClick(t *testing.T) {
	uc := newTestClusterUseCase()
	click := domain.Coordinate{Lng: 2.35, Lat: 48.85}

	t.Run("single POI dispatches to point callback", func(t *testing.T) {
		var gotPOI *domain.POIData
		uc.onPOIClick = func(poi *domain.POIData, coordinates domain.Coordinate) {
			gotPOI = poi
		}
		uc.onPOIGroupClick = func(pois []*domain.POIData, coordinates domain.Coordinate) {
			t.Fatal("group callback must not fire for a single POI")
		}

		payload, _ := json.Marshal(&domain.POIData{ID: "a", Name: "Musée"})
		err := uc.HandlePointClick(map[string]any{"poiData": string(payload)}, click)

		require.NoError(t, err)
		require.NotNil(t, gotPOI)
		assert.Equal(t, "Musée", gotPOI.Name)
	})

	t.Run("group dispatches to group callback", func(t *testing.T) {
		var gotPOIs []*domain.POIData
		uc.onPOIClick = func(poi *domain.POIData, coordinates domain.Coordinate) {
			t.Fatal("point callback must not fire for a group")
		}
		uc.onPOIGroupClick = func(pois []*domain.POIData, coordinates domain.Coordinate) {
			gotPOIs = pois
		}

		payload, _ := json.Marshal([]*domain.POIData{{ID: "a"}, {ID: "b"}})
		err := uc.HandlePointClick(map[string]any{"poiDataArray": string(payload)}, click)

		require.NoError(t, err)
		assert.Len(t, gotPOIs, 2)
	})

	t.Run("missing payload is an error", func(t *testing.T) {
		err := uc.HandlePointClick(map[string]any{"name": "x"}, click)
		assert.Error(t, err)
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		err := uc.HandlePointClick(map[string]any{"poiData": "{broken"}, click)
		assert.Error(t, err)
	})
}
