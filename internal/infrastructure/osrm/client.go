package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	logger     *zap.Logger
}

// routeResponse - контракт ответа OSRM route API
type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// NewClient создает клиент пешеходного роутинга с OSRM-совместимым контрактом
func NewClient(cfg *config.RoutingConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		profile: cfg.Profile,
		logger:  logger,
	}
}

// CalculateRoute запрашивает маршрут между двумя точками. Координаты кодируются
// как "lng,lat;lng,lat". Любой не-2xx ответ или пустой список routes - ошибка;
// fallback на прямой отрезок остаётся за вызывающим.
func (c *client) CalculateRoute(
	ctx context.Context,
	start, end domain.Coordinate,
) ([]domain.Coordinate, error) {
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL,
		c.profile,
		start.Lng, start.Lat,
		end.Lng, end.Lat,
	)

	c.logger.Debug("Calling routing service",
		zap.Float64("start_lng", start.Lng),
		zap.Float64("start_lat", start.Lat),
		zap.Float64("end_lng", end.Lng),
		zap.Float64("end_lat", end.Lat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute routing request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute routing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Routing service returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("routing service error: status %d", resp.StatusCode)
	}

	var routeResp routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&routeResp); err != nil {
		c.logger.Error("Failed to decode routing response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode routing response: %w", err)
	}

	if len(routeResp.Routes) == 0 {
		c.logger.Warn("Routing service returned no routes")
		return nil, fmt.Errorf("routing service returned no routes")
	}

	coordinates := routeResp.Routes[0].Geometry.Coordinates
	route := make([]domain.Coordinate, 0, len(coordinates))
	for _, pair := range coordinates {
		if len(pair) < 2 {
			return nil, fmt.Errorf("malformed route geometry")
		}
		route = append(route, domain.Coordinate{Lng: pair[0], Lat: pair[1]})
	}

	c.logger.Debug("Route calculated", zap.Int("points", len(route)))

	return route, nil
}
