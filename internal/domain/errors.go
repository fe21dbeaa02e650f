package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrFavoritesNotInitialized indicates a consumer asked for the favorites
	// store outside the scope of a provider
	ErrFavoritesNotInitialized = errors.New("favorites store not initialized: use favorites.WithStore or a Provider")

	// ErrItemNotFound indicates the requested title does not exist in the catalog
	ErrItemNotFound = errors.New("title not found")

	// ErrCatalogOffline indicates the catalog API is unreachable
	ErrCatalogOffline = errors.New("catalog API is unreachable")

	// ErrAuthFailed indicates the catalog API key was rejected
	ErrAuthFailed = errors.New("catalog API key is invalid")
)
