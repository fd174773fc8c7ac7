package domain

import "errors"

var (
	// ErrDataSource is returned when the catalog source is unreadable or is
	// missing required columns. Individual malformed rows are coerced, not
	// rejected; this error means nothing usable could be loaded.
	ErrDataSource = errors.New("catalog data source unusable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
