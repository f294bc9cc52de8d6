package datatourisme

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/tourism-poi-service/internal/domain"
)

// Плейсхолдеры нормализации
const (
	placeholderName = "POI sans nom"
	genericTrekText = "Itinéraire de randonnée."

	// Сентинел "описание требует синтеза": выставляется санацией, когда после
	// вычистки шаблонов от текста ничего содержательного не осталось
	needsSynthesis = "__GENERATE__"
)

// Шаблоны незаполненных описаний вида "Itinéraire de randonnée de ? à ?"
var (
	reFullTemplate    = regexp.MustCompile(`(?i)itinéraire\s+de\s+randonnées?\s+de\s+\?\s+à\s+\?\.?`)
	reTrailingToBlank = regexp.MustCompile(`(?i)\s+à\s+\?\s*\.?$`)
	reFromBlankTo     = regexp.MustCompile(`(?i)de\s+\?\s+à\s+`)
	reBlankPairFr     = regexp.MustCompile(`(?i)de\s+\?\s+à\s+\?`)
	reBlankPairEn     = regexp.MustCompile(`(?i)from\s+\?\s+to\s+\?`)
	reSpaces          = regexp.MustCompile(`\s+`)
	rePeriods         = regexp.MustCompile(`\.{2,}`)
)

// Теги типов, означающие пеший/велосипедный маршрут при синтезе описания
var synthesisTrekTypes = []string{"Trek", "Trail", "WalkingTour", "CyclingTour"}

// ParsePOI нормализует сырой linked-data документ DATAtourisme в POIData.
// Не падает на отсутствующих полях: каждое извлечение опционально, с
// документированным порядком fallback. Исходный документ сохраняется в RawData
// без изменений.
func ParsePOI(raw map[string]any) *domain.POIData {
	doc := Document(raw)

	name := doc.LangFirst("rdfs:label", "fr", "en")
	if name == "" {
		name = placeholderName
	}

	description := extractDescription(doc)
	if description != "" {
		description = sanitizeDescription(description)
	}

	descriptions := extractDescriptions(doc)

	location := doc.ObjectAt("isLocatedAt", 0)
	geo := location.Object("schema:geo")
	lng, _ := geo.Float("schema:longitude")
	lat, _ := geo.Float("schema:latitude")

	poi := &domain.POIData{
		ID:          doc.String("@id"),
		Name:        name,
		Description: description,
		Coordinates: domain.Coordinate{Lng: lng, Lat: lat},
		Type:        doc.StringSlice("@type"),
		Address:     extractAddress(location),
		TourType:    optional(doc.ObjectAt("hasTourType", 0).LangFirst("rdfs:label", "fr")),
		Duration:    extractDuration(doc),
		Distance:    extractDistance(doc),

		CreationDate:   optional(doc.String("creationDate")),
		LastUpdate:     optional(doc.String("lastUpdate")),
		Descriptions:   descriptions,
		PaymentMethods: extractPaymentMethods(doc),
		Source:         domain.SourcePOI,
		RawData:        raw,
	}

	if poi.Description == "" || poi.Description == needsSynthesis {
		poi.Description = synthesizeDescription(poi)
	}

	// Непустое описание всегда отражено хотя бы в одном языке карты
	if poi.Description != "" && len(poi.Descriptions) == 0 {
		poi.Descriptions = map[string]string{"fr": poi.Description}
	}

	return poi
}

// extractDescription - порядок fallback: длинное многоязычное описание
// (fr, en), короткий комментарий (fr, en), затем shortDescription и
// reducedMobilityAccess
func extractDescription(doc Document) string {
	description := doc.ObjectAt("hasDescription", 0).LangFirst("dc:description", "fr", "en")
	if description == "" {
		description = doc.LangFirst("rdfs:comment", "fr", "en")
	}
	if strings.TrimSpace(description) == "" {
		if s := doc.LangFirst("shortDescription", "fr"); s != "" {
			description = s
		} else if s := doc.LangFirst("reducedMobilityAccess", "fr"); s != "" {
			description = s
		}
	}
	return description
}

// sanitizeDescription вычищает незаполненные шаблоны "de ? à ?" из описаний.
// Если после вычистки остался только родовой текст, возвращается сентинел
// синтеза.
func sanitizeDescription(description string) string {
	// Полный шаблон "Itinéraire de randonnée de ? à ?" -> родовая фраза
	description = reFullTemplate.ReplaceAllString(description, genericTrekText)

	// Частичные шаблоны: висящее "à ?" в конце, ведущее "de ? à"
	description = reTrailingToBlank.ReplaceAllString(description, ".")
	description = reFromBlankTo.ReplaceAllString(description, "à ")

	// Оставшиеся пары "de ? à ?" / "from ? to ?"
	description = reBlankPairFr.ReplaceAllString(description, "")
	description = reBlankPairEn.ReplaceAllString(description, "")

	// Повторные пробелы и точки
	description = strings.TrimSpace(reSpaces.ReplaceAllString(description, " "))
	description = strings.TrimSpace(rePeriods.ReplaceAllString(description, "."))

	description = strings.TrimSpace(strings.TrimPrefix(description, "."))

	// Родовая фраза сама по себе бесполезна - пометить для синтеза
	if description == genericTrekText || description == strings.TrimSuffix(genericTrekText, ".") {
		return needsSynthesis
	}
	return description
}

// extractDescriptions собирает многоязычную карту описаний: приоритет длинному
// блоку hasDescription, иначе rdfs:comment
func extractDescriptions(doc Document) map[string]string {
	if m := doc.ObjectAt("hasDescription", 0).LangMap("dc:description"); m != nil {
		return m
	}
	return doc.LangMap("rdfs:comment")
}

// extractAddress извлекает адрес; город/департамент/регион предпочитают метки
// связанных сущностей плоским строкам
func extractAddress(location Document) *domain.Address {
	addressData := location.ObjectAt("schema:address", 0)
	if addressData == nil {
		return nil
	}

	cityData := addressData.Object("hasAddressCity")
	departmentData := cityData.Object("isPartOfDepartment")
	regionData := departmentData.Object("isPartOfRegion")

	locality := addressData.String("schema:addressLocality")

	city := cityData.LangFirst("rdfs:label", "fr", "en")
	if city == "" {
		city = locality
	}

	addr := &domain.Address{
		StreetAddress: optional(addressData.StringAt("schema:streetAddress", 0)),
		Locality:      optional(locality),
		PostalCode:    optional(addressData.String("schema:postalCode")),
		City:          optional(city),
		Department:    optional(departmentData.LangFirst("rdfs:label", "fr", "en")),
		Region:        optional(regionData.LangFirst("rdfs:label", "fr", "en")),
	}
	return addr
}

func extractPaymentMethods(doc Document) []string {
	methods := doc.ObjectAt("offers", 0).Slice("schema:acceptedPaymentMethod")
	if methods == nil {
		return nil
	}
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		if label := AsDocument(m).LangFirst("rdfs:label", "fr"); label != "" {
			out = append(out, label)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// extractDuration - порядок fallback: trekData.duration (часы),
// trekData.durationMinutes, плоское поле duration (минуты)
func extractDuration(doc Document) *string {
	trekData := doc.Object("trekData")

	if hours, ok := trekData.Float("duration"); ok {
		totalMinutes := int(math.Round(hours * 60))
		h := totalMinutes / 60
		m := totalMinutes % 60

		var duration string
		switch {
		case h > 0 && m > 0:
			duration = fmt.Sprintf("%dh %dmin", h, m)
		case h > 0:
			duration = fmt.Sprintf("%dh", h)
		default:
			duration = fmt.Sprintf("%dmin", m)
		}
		return &duration
	}

	if minutes := trekData.String("durationMinutes"); minutes != "" {
		duration := minutes + " min"
		return &duration
	}

	if minutes := doc.String("duration"); minutes != "" {
		duration := minutes + " min"
		return &duration
	}

	return nil
}

// extractDistance - порядок fallback: trekData.distance (метры),
// trekData.distanceKm, плоское поле tourDistance (только если парсится в
// положительное число)
func extractDistance(doc Document) *string {
	trekData := doc.Object("trekData")

	if meters, ok := trekData.Float("distance"); ok {
		var distance string
		if meters >= 1000 {
			distance = fmt.Sprintf("%.1f km", meters/1000)
		} else {
			distance = fmt.Sprintf("%.0f m", meters)
		}
		return &distance
	}

	if km, ok := trekData.Float("distanceKm"); ok {
		distance := fmt.Sprintf("%.1f km", km)
		return &distance
	}

	if meters, ok := doc.Float("tourDistance"); ok && meters > 0 {
		distance := fmt.Sprintf("%.1f km", meters/1000)
		return &distance
	}

	return nil
}

// synthesizeDescription строит описание из опциональных клауз, когда источник
// не дал текста: "Parcours de randonnée" + "de {distance}" + "sur une durée
// d'environ {duration}" + "à {city}" + "({tourType})". Пустая строка, если не
// применима ни одна клауза.
func synthesizeDescription(poi *domain.POIData) string {
	var parts []string

	for _, tag := range synthesisTrekTypes {
		if containsString(poi.Type, tag) {
			parts = append(parts, "Parcours de randonnée")
			break
		}
	}

	if poi.Distance != nil {
		parts = append(parts, "de "+*poi.Distance)
	}

	if poi.Duration != nil {
		if len(parts) > 1 {
			parts = append(parts, "sur une durée d'environ "+*poi.Duration)
		} else {
			parts = append(parts, "d'une durée d'environ "+*poi.Duration)
		}
	}

	// "France" в поле города - плейсхолдер набора данных, не настоящий город
	if poi.Address != nil && poi.Address.City != nil && *poi.Address.City != "France" {
		parts = append(parts, "à "+*poi.Address.City)
	}

	if poi.TourType != nil {
		parts = append(parts, "("+*poi.TourType+")")
	}

	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + "."
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
