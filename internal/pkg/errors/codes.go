package errors

import "net/http"

var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"Request validation failed",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidID = New(
		"INVALID_ID",
		"Invalid identifier",
		http.StatusBadRequest,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrTourNotFound = New(
		"TOUR_NOT_FOUND",
		"Tour not found",
		http.StatusNotFound,
	)

	ErrPostNotFound = New(
		"POST_NOT_FOUND",
		"Blog post not found",
		http.StatusNotFound,
	)

	ErrReferenceInUse = New(
		"REFERENCE_IN_USE",
		"Cannot delete: record is still in use by at least one tour",
		http.StatusConflict,
	)

	ErrConflict = New(
		"CONFLICT",
		"Record conflicts with an existing one",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrStorageError = New(
		"STORAGE_ERROR",
		"File storage operation failed",
		http.StatusBadGateway,
	)

	ErrUnsupportedMedia = New(
		"UNSUPPORTED_MEDIA",
		"Unsupported file type",
		http.StatusUnsupportedMediaType,
	)

	ErrPayloadTooLarge = New(
		"PAYLOAD_TOO_LARGE",
		"File is too large",
		http.StatusRequestEntityTooLarge,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Authentication required",
		http.StatusUnauthorized,
	)

	ErrForbidden = New(
		"FORBIDDEN",
		"Administrator role required",
		http.StatusForbidden,
	)

	ErrRateLimited = New(
		"RATE_LIMITED",
		"Too many requests, try again later",
		http.StatusTooManyRequests,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
