package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient fetches the full plant catalog from the remote API
type CatalogClient interface {
	FetchPlants(ctx context.Context) ([]PlantRecord, error)
}

// MetricsRecorder receives storefront events for instrumentation
type MetricsRecorder interface {
	CatalogFetched(source, result string, plants int)
	CartOperation(op string)
}
