package repository

import (
	"context"

	"github.com/tourism-poi-service/internal/domain"
)

// IndexRepository - доступ к прекомпилированному пространственному индексу POI
type IndexRepository interface {
	// FetchIndex загружает индекс со статического хоста
	FetchIndex(ctx context.Context) (*domain.POIIndex, error)
}

// RecordRepository - доступ к полным linked-data записям POI
type RecordRepository interface {
	// LoadPOI загружает запись по относительному пути из индекса и
	// нормализует её; source проставляется из записи индекса
	LoadPOI(ctx context.Context, filePath, source string) (*domain.POIData, error)
}
