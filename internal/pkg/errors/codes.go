package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrIndexUnavailable = New(
		"INDEX_UNAVAILABLE",
		"POI index could not be loaded",
		http.StatusServiceUnavailable,
	)

	ErrRecordUnavailable = New(
		"RECORD_UNAVAILABLE",
		"POI record could not be loaded",
		http.StatusServiceUnavailable,
	)

	ErrParseFailure = New(
		"PARSE_FAILURE",
		"POI record could not be parsed",
		http.StatusUnprocessableEntity,
	)

	ErrRoutingUnavailable = New(
		"ROUTING_UNAVAILABLE",
		"Routing service unavailable",
		http.StatusServiceUnavailable,
	)

	ErrGeometryInsufficient = New(
		"GEOMETRY_INSUFFICIENT",
		"Not enough route points to draw a route",
		http.StatusUnprocessableEntity,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
