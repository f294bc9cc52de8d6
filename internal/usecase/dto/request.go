package dto

// RadiusPOIRequest - запрос на загрузку POI в радиусе
type RadiusPOIRequest struct {
	Lng      float64 `json:"lng" validate:"min=-180,max=180"`
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	RadiusKm float64 `json:"radius_km" validate:"min=0,max=100"`
	Limit    int     `json:"limit" validate:"omitempty,min=1,max=500"`
}

// AllPOIRequest - запрос на загрузку POI без фильтра по радиусу
type AllPOIRequest struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=500"`
}

// ClusterFeaturesRequest - запрос геометрии кластеров для области
type ClusterFeaturesRequest struct {
	Lng      float64 `json:"lng" validate:"min=-180,max=180"`
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	RadiusKm float64 `json:"radius_km" validate:"min=0,max=100"`
	Limit    int     `json:"limit" validate:"omitempty,min=1,max=500"`
}

// NavigateRequest - запрос навигации аватара к цели
type NavigateRequest struct {
	Lng       float64 `json:"lng" validate:"min=-180,max=180"`
	Lat       float64 `json:"lat" validate:"min=-90,max=90"`
	TargetLng float64 `json:"target_lng" validate:"min=-180,max=180"`
	TargetLat float64 `json:"target_lat" validate:"min=-90,max=90"`
	Follow    *bool   `json:"follow,omitempty"`
}

// TrekRouteRequest - запрос геометрии маршрута трека из его записи
type TrekRouteRequest struct {
	FilePath string `json:"file_path" validate:"required"`
	Source   string `json:"source" validate:"omitempty,oneof=poi hiking"`
}
