package domain

import "errors"

var (
	// ErrCatalogFetchFailure is returned when the catalog API cannot be reached or answers with an error
	ErrCatalogFetchFailure = errors.New("catalog fetch failed")

	// ErrCatalogDecode is returned when the catalog API response cannot be parsed
	ErrCatalogDecode = errors.New("catalog response could not be decoded")

	// ErrPlantNotFound is returned when no plant with the given name is in the current catalog
	ErrPlantNotFound = errors.New("plant not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
