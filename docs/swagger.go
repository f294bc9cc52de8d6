// Package docs Tourism POI Service API.
//
// Сервис для работы с точками интереса DATAtourisme.
// Предоставляет API для поиска POI в радиусе, агрегации точек с совпадающими
// координатами в кластерные фичи, навигации аватара по маршруту OSRM и
// извлечения геометрии треков.
//
// Основные возможности:
// - Поиск нормализованных POI в радиусе вокруг точки
// - Статистика пространственного индекса без загрузки записей
// - Кластерные GeoJSON-фичи для визуализации на карте
// - Симуляция движения аватара к цели со сглаживанием курса
// - Извлечение линии маршрута трека из его записи
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
