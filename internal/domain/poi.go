package domain

// Источники данных POI
const (
	SourcePOI    = "poi"
	SourceHiking = "hiking"
)

// Coordinate - координата в десятичных градусах WGS84
type Coordinate struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// POIIndexEntry - запись лёгкого пространственного индекса, построенного офлайн-индексатором.
// Неизменяема после построения; id однозначно указывает на файл с полной записью.
type POIIndexEntry struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Coordinates Coordinate `json:"coordinates"`
	Types       []string   `json:"types"`
	FilePath    string     `json:"filePath"`
	Source      string     `json:"source,omitempty"`
}

// POIIndex - снимок индекса на весь процесс; заменяется целиком, никогда не мутируется
type POIIndex struct {
	POIs        []POIIndexEntry `json:"pois"`
	TotalCount  int             `json:"totalCount"`
	GeneratedAt string          `json:"generatedAt"`
}

// Address - почтовый адрес POI; все поля опциональны
type Address struct {
	StreetAddress *string `json:"streetAddress,omitempty"`
	Locality      *string `json:"locality,omitempty"`
	PostalCode    *string `json:"postalCode,omitempty"`
	City          *string `json:"city,omitempty"`
	Department    *string `json:"department,omitempty"`
	Region        *string `json:"region,omitempty"`
}

// POIData - нормализованная сущность POI, детерминированно построенная из одной
// linked-data записи DATAtourisme. Неизменяема после построения.
// RawData хранит исходный документ целиком для ленивого извлечения вторичных
// полей (фото, контакты, геометрия маршрута) потребителями.
type POIData struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Coordinates    Coordinate        `json:"coordinates"`
	Type           []string          `json:"type"`
	Duration       *string           `json:"duration,omitempty"`
	Distance       *string           `json:"distance,omitempty"`
	TourType       *string           `json:"tourType,omitempty"`
	Address        *Address          `json:"address,omitempty"`
	CreationDate   *string           `json:"creationDate,omitempty"`
	LastUpdate     *string           `json:"lastUpdate,omitempty"`
	Descriptions   map[string]string `json:"descriptions,omitempty"`
	PaymentMethods []string          `json:"paymentMethods,omitempty"`
	Source         string            `json:"source,omitempty"`
	RawData        map[string]any    `json:"rawData,omitempty"`
}

// IsUnlocated сообщает, что координаты отсутствовали в источнике.
// Такие POI не отфильтровываются молча - решение за вызывающим.
func (p *POIData) IsUnlocated() bool {
	return p.Coordinates.Lng == 0 && p.Coordinates.Lat == 0
}

// POIStats - метаданные индекса без загрузки тел POI
type POIStats struct {
	Total       int    `json:"total"`
	GeneratedAt string `json:"generated_at"`
}
