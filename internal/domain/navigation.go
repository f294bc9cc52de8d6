package domain

// Фазы симулятора навигации
const (
	NavIdle           = "idle"
	NavRouteRequested = "route_requested"
	NavFollowing      = "following"
)

// NavigationState - снимок состояния симулятора навигации.
// Владеет состоянием исключительно симулятор: мутации происходят только в его
// тике движения и в явных вызовах navigate/stop.
type NavigationState struct {
	SessionID      string       `json:"session_id"`
	Phase          string       `json:"phase"`
	Position       Coordinate   `json:"position"`
	RouteQueue     []Coordinate `json:"route_queue"`
	CurrentTarget  *Coordinate  `json:"current_target,omitempty"`
	FullRoute      []Coordinate `json:"full_route"`
	IsMoving       bool         `json:"is_moving"`
	CurrentBearing float64      `json:"current_bearing"`
	FollowMode     bool         `json:"follow_mode"`
}
