package usecase

import (
	"context"
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tourism-poi-service/internal/config"
	"github.com/tourism-poi-service/internal/domain"
	"github.com/tourism-poi-service/internal/domain/repository"
	"go.uber.org/zap"
)

// RouteSourceID - имя GeoJSON-источника с линией маршрута на поверхности карты
const RouteSourceID = "route"

// NavigationSimulator ведёт аватара по рассчитанному маршруту: дискретные тики
// продвигают позицию к очереди точек маршрута со сглаживанием курса и
// детекцией прибытия. Состояние принадлежит симулятору и мутируется только
// тиком движения и явными вызовами NavigateToPOI/Stop.
type NavigationSimulator struct {
	routing repository.RoutingRepository
	surface repository.MapSurface
	cfg     *config.NavigationConfig
	logger  *zap.Logger

	mu            sync.Mutex
	sessionID     string
	phase         string
	position      domain.Coordinate
	routeQueue    []domain.Coordinate
	currentTarget *domain.Coordinate
	fullRoute     []domain.Coordinate
	isMoving      bool
	bearing       float64
	followMode    bool

	// Монотонный токен запроса: маршрут, разрешившийся после более нового
	// NavigateToPOI, отбрасывается - авторитетен последний вызов
	requestToken uint64

	onArrival func()
}

func NewNavigationSimulator(
	routing repository.RoutingRepository,
	surface repository.MapSurface,
	cfg *config.NavigationConfig,
	logger *zap.Logger,
) *NavigationSimulator {
	return &NavigationSimulator{
		routing:    routing,
		surface:    surface,
		cfg:        cfg,
		logger:     logger,
		sessionID:  uuid.NewString(),
		phase:      domain.NavIdle,
		followMode: true,
	}
}

// OnArrival регистрирует коллбек прибытия. Срабатывает ровно один раз на
// переход Following -> Idle из-за исчерпания очереди; явный Stop его не вызывает.
func (s *NavigationSimulator) OnArrival(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onArrival = fn
}

// SetFollowMode переключает следование камеры за аватаром
func (s *NavigationSimulator) SetFollowMode(follow bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followMode = follow
}

// NavigateToPOI запрашивает маршрут от текущей позиции к цели и переводит
// симулятор в режим следования. Любой отказ роутинга (сеть, не-2xx, пустой
// список маршрутов) деградирует в прямой отрезок [start, end] - навигация
// продолжается. Очередь получает маршрут без первой точки: она совпадает с
// текущей позицией.
func (s *NavigationSimulator) NavigateToPOI(
	ctx context.Context,
	current domain.Coordinate,
	targetLng, targetLat float64,
) domain.NavigationState {
	destination := domain.Coordinate{Lng: targetLng, Lat: targetLat}

	s.mu.Lock()
	s.requestToken++
	token := s.requestToken
	s.phase = domain.NavRouteRequested
	s.position = current
	s.mu.Unlock()

	s.logger.Info("Navigation requested",
		zap.Float64("target_lng", targetLng),
		zap.Float64("target_lat", targetLat))

	route, err := s.routing.CalculateRoute(ctx, current, destination)
	if err != nil || len(route) == 0 {
		s.logger.Warn("Routing failed, falling back to direct segment", zap.Error(err))
		route = []domain.Coordinate{current, destination}
	}

	s.mu.Lock()
	if token != s.requestToken {
		// Пока маршрут считался, пришёл более новый запрос - результат устарел
		s.logger.Debug("Discarding stale route result")
		state := s.snapshotLocked()
		s.mu.Unlock()
		return state
	}

	s.fullRoute = append([]domain.Coordinate(nil), route...)
	s.routeQueue = append([]domain.Coordinate(nil), route[1:]...)
	s.currentTarget = nil
	s.isMoving = true
	s.phase = domain.NavFollowing
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.displayRoute(route)

	s.logger.Info("Navigation started", zap.Int("route_points", len(route)))

	return state
}

// Stop безусловно очищает очередь, цель и маршрут и возвращает симулятор в
// Idle. Вызывается из любого состояния; коллбек прибытия не срабатывает.
func (s *NavigationSimulator) Stop() domain.NavigationState {
	s.mu.Lock()
	s.requestToken++
	s.routeQueue = nil
	s.currentTarget = nil
	s.fullRoute = nil
	s.isMoving = false
	s.phase = domain.NavIdle
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.surface.RemoveSource(RouteSourceID)

	s.logger.Info("Navigation stopped")

	return state
}

// Tick - один шаг движения. Выполняет ограниченный объём работы (векторная
// математика одной цели) и возвращается, не зацикливаясь внутри: кадровый цикл
// хоста не голодает. Вне режима следования - no-op.
func (s *NavigationSimulator) Tick() {
	s.mu.Lock()

	if !s.isMoving {
		s.mu.Unlock()
		return
	}

	if s.currentTarget == nil && len(s.routeQueue) > 0 {
		next := s.routeQueue[0]
		s.routeQueue = s.routeQueue[1:]
		s.currentTarget = &next
		s.logger.Debug("New target point",
			zap.Float64("lng", next.Lng),
			zap.Float64("lat", next.Lat))
	}

	if s.currentTarget == nil {
		s.mu.Unlock()
		return
	}

	target := *s.currentTarget
	dx := target.Lng - s.position.Lng
	dy := target.Lat - s.position.Lat
	distance := math.Sqrt(dx*dx + dy*dy)

	if distance > s.cfg.ArrivalThreshold {
		step := math.Min(s.cfg.Speed, distance)
		s.position.Lng += dx / distance * step
		s.position.Lat += dy / distance * step

		// Мгновенный курс из вектора движения, сглаживание к нему по
		// кратчайшей угловой дуге
		directionDegrees := math.Atan2(dx, dy) * 180 / math.Pi
		targetBearing := math.Mod(math.Mod(-directionDegrees, 360)+360, 360)

		diff := targetBearing - s.bearing
		for diff > 180 {
			diff -= 360
		}
		for diff <= -180 {
			diff += 360
		}
		s.bearing += diff * s.cfg.BearingSmoothing

		position := s.position
		bearing := s.bearing
		follow := s.followMode
		var remaining []domain.Coordinate
		if len(s.fullRoute) > 0 && len(s.routeQueue) > 0 {
			remaining = append([]domain.Coordinate{position}, s.routeQueue...)
		}
		s.mu.Unlock()

		// Оставшийся маршрут перерисовывается каждый тик - линия укорачивается
		if remaining != nil {
			s.displayRoute(remaining)
		}

		if follow {
			s.surface.SetCenter(position)
			s.surface.SetBearing(-bearing - s.cfg.CameraBearingOffset)
		} else {
			s.surface.Repaint()
		}
		return
	}

	// Прибытие к текущей точке: позиция прищёлкивается точно к цели
	s.position = target
	s.currentTarget = nil

	if len(s.routeQueue) > 0 {
		// Следующий тик возьмёт следующую точку очереди
		s.mu.Unlock()
		return
	}

	s.isMoving = false
	s.phase = domain.NavIdle
	s.fullRoute = nil
	arrived := s.onArrival
	s.mu.Unlock()

	s.surface.RemoveSource(RouteSourceID)
	s.logger.Info("Destination reached")

	if arrived != nil {
		arrived()
	}
}

// State возвращает снимок состояния навигации
func (s *NavigationSimulator) State() domain.NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *NavigationSimulator) snapshotLocked() domain.NavigationState {
	state := domain.NavigationState{
		SessionID:      s.sessionID,
		Phase:          s.phase,
		Position:       s.position,
		RouteQueue:     append([]domain.Coordinate(nil), s.routeQueue...),
		FullRoute:      append([]domain.Coordinate(nil), s.fullRoute...),
		IsMoving:       s.isMoving,
		CurrentBearing: s.bearing,
		FollowMode:     s.followMode,
	}
	if s.currentTarget != nil {
		target := *s.currentTarget
		state.CurrentTarget = &target
	}
	return state
}

// displayRoute рисует линию маршрута на поверхности. Меньше двух точек -
// маршрут не рисуется, существующая линия снимается.
func (s *NavigationSimulator) displayRoute(route []domain.Coordinate) {
	if len(route) < 2 {
		s.logger.Warn("Not enough route points to draw a route",
			zap.Int("points", len(route)))
		s.surface.RemoveSource(RouteSourceID)
		return
	}

	line := make(orb.LineString, len(route))
	for i, c := range route {
		line[i] = orb.Point{c.Lng, c.Lat}
	}

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(line))

	s.surface.SetSourceData(RouteSourceID, fc)
}
