package datatourisme

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/tourism-poi-service/internal/domain"
)

// Теги типов, по которым POI классифицируется как пеший маршрут
var trekTypes = []string{"WalkingTour", "CyclingTour", "Trek"}

var reLineString = regexp.MustCompile(`(?i)LINESTRING\s*\((.*?)\)`)

// IsTrek - классификатор "это пеший маршрут": по тегу источника hiking либо по
// тегам типа нормализованной сущности. Держится вне самой сущности.
func IsTrek(poi *domain.POIData) bool {
	if poi == nil {
		return false
	}
	if poi.Source == domain.SourceHiking {
		return true
	}
	for _, tag := range trekTypes {
		if containsString(poi.Type, tag) {
			return true
		}
	}
	return false
}

// ExtractPhotoURLs вытаскивает ссылки на фотографии из сырого документа
// (hasRepresentation -> ebucore:hasRelatedResource -> ebucore:locator)
func ExtractPhotoURLs(poi *domain.POIData) []string {
	var photos []string
	if poi == nil || poi.RawData == nil {
		return photos
	}

	doc := Document(poi.RawData)
	for _, rep := range doc.Slice("hasRepresentation") {
		for _, res := range AsDocument(rep).Slice("ebucore:hasRelatedResource") {
			if locator := AsDocument(res).StringAt("ebucore:locator", 0); locator != "" {
				photos = append(photos, locator)
			}
		}
	}
	return photos
}

// ExtractRouteCoordinates вытаскивает собственную геометрию маршрута трека из
// сырого документа. Источники в порядке приоритета: hasGeometry
// (geo:asWKT / geo:asGeoJSON), schema:geo как LineString, hasItinerary /
// hasTourRoute, варианты trekData. Возвращает nil, если геометрии нет.
func ExtractRouteCoordinates(poi *domain.POIData) []domain.Coordinate {
	if poi == nil || poi.RawData == nil {
		return nil
	}
	doc := Document(poi.RawData)

	if geometry := doc.ObjectAt("hasGeometry", 0); geometry != nil {
		if wkt := geometry.String("geo:asWKT"); wkt != "" {
			if coords := parseWKTLineString(wkt); coords != nil {
				return coords
			}
		}
		if raw := geometry.String("geo:asGeoJSON"); raw != "" {
			if coords := parseGeoJSONLineString([]byte(raw)); coords != nil {
				return coords
			}
		}
	}

	if geo := doc.Object("schema:geo"); geo.String("type") == "LineString" {
		if coords := coordinatePairs(geo.Slice("coordinates")); coords != nil {
			return coords
		}
	}

	for _, key := range []string{"hasItinerary", "hasTourRoute"} {
		if route := doc.Object(key); route != nil {
			if coords := coordinatePairs(route.Slice("coordinates")); coords != nil {
				return coords
			}
		}
	}

	if trekData := doc.Object("trekData"); trekData != nil {
		if coords := coordinatePairs(trekData.Slice("coordinates")); coords != nil {
			return coords
		}
		if geometry := trekData.Object("geometry"); geometry.String("type") == "LineString" {
			if coords := coordinatePairs(geometry.Slice("coordinates")); coords != nil {
				return coords
			}
		}
		for _, key := range []string{"path", "route"} {
			if coords := coordinatePairs(trekData.Slice(key)); coords != nil {
				return coords
			}
		}
	}

	return nil
}

// parseWKTLineString парсит "LINESTRING(lng lat, lng lat, ...)"
func parseWKTLineString(wkt string) []domain.Coordinate {
	match := reLineString.FindStringSubmatch(wkt)
	if match == nil {
		return nil
	}

	pairs := strings.Split(match[1], ",")
	coords := make([]domain.Coordinate, 0, len(pairs))
	for _, pair := range pairs {
		fields := strings.Fields(strings.TrimSpace(pair))
		if len(fields) < 2 {
			return nil
		}
		lng, okLng := asFloat(fields[0])
		lat, okLat := asFloat(fields[1])
		if !okLng || !okLat {
			return nil
		}
		coords = append(coords, domain.Coordinate{Lng: lng, Lat: lat})
	}
	if len(coords) == 0 {
		return nil
	}
	return coords
}

func parseGeoJSONLineString(raw []byte) []domain.Coordinate {
	var geom struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &geom); err != nil || geom.Type != "LineString" {
		return nil
	}
	coords := make([]domain.Coordinate, 0, len(geom.Coordinates))
	for _, pair := range geom.Coordinates {
		if len(pair) < 2 {
			return nil
		}
		coords = append(coords, domain.Coordinate{Lng: pair[0], Lat: pair[1]})
	}
	if len(coords) == 0 {
		return nil
	}
	return coords
}

// coordinatePairs принимает массив пар [lng,lat] либо массив объектов с полями
// lng/lat (или longitude/latitude)
func coordinatePairs(items []any) []domain.Coordinate {
	if len(items) == 0 {
		return nil
	}
	coords := make([]domain.Coordinate, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case []any:
			if len(v) < 2 {
				return nil
			}
			lng, okLng := asFloat(v[0])
			lat, okLat := asFloat(v[1])
			if !okLng || !okLat {
				return nil
			}
			coords = append(coords, domain.Coordinate{Lng: lng, Lat: lat})
		case map[string]any:
			point := Document(v)
			lng, okLng := point.Float("lng")
			if !okLng {
				lng, okLng = point.Float("longitude")
			}
			lat, okLat := point.Float("lat")
			if !okLat {
				lat, okLat = point.Float("latitude")
			}
			if !okLng || !okLat {
				return nil
			}
			coords = append(coords, domain.Coordinate{Lng: lng, Lat: lat})
		default:
			return nil
		}
	}
	return coords
}
