package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProductNotFound is returned when a product ID is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrIndexNotBuilt is returned when a text index is used before Build
	ErrIndexNotBuilt = errors.New("text index not built")

	// ErrEmptyVocabulary is returned when a corpus yields no terms after filtering
	ErrEmptyVocabulary = errors.New("text index vocabulary is empty")

	// ErrCatalogUnavailable is returned when no catalog snapshot has been loaded yet
	ErrCatalogUnavailable = errors.New("catalog snapshot unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
