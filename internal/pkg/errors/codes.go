package errors

import "net/http"

// Тексты сообщений совпадают с прежним API, клиенты читают поле "error"
var (
	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Unauthorized",
		http.StatusUnauthorized,
	)

	ErrCityNotFound = New(
		"CITY_NOT_FOUND",
		"City not found",
		http.StatusNotFound,
	)

	ErrJobNotFound = New(
		"JOB_NOT_FOUND",
		"Job not found",
		http.StatusNotFound,
	)

	ErrResultNotReady = New(
		"RESULT_NOT_READY",
		"Result not found",
		http.StatusAccepted,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid distance value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrRateLimited = New(
		"RATE_LIMITED",
		"Too many requests",
		http.StatusTooManyRequests,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
