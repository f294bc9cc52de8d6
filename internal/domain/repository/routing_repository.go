package repository

import (
	"context"

	"github.com/tourism-poi-service/internal/domain"
)

// RoutingRepository - внешний пешеходный роутинг-сервис (OSRM-совместимый контракт)
type RoutingRepository interface {
	// CalculateRoute возвращает упорядоченную последовательность точек маршрута
	// от start к end. Ошибка означает недоступность сервиса или пустой ответ;
	// fallback на прямой отрезок - ответственность вызывающего.
	CalculateRoute(ctx context.Context, start, end domain.Coordinate) ([]domain.Coordinate, error)
}
