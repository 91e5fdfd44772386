package catalog

import (
	"context"
	"fmt"

	"learnloop/internal/configs"
)

// Source fetches the catalog from wherever it is hosted.
type Source interface {
	// Fetch retrieves the full catalog. Implementations must not cache;
	// caching is layered on with NewCachedSource.
	Fetch(ctx context.Context) (Catalog, error)
}

// NewSource is the factory for catalog sources. The static catalog file is
// served either from the backend's static assets over HTTP or from object
// storage, depending on configuration.
func NewSource(cfg *configs.AppConfig) (Source, error) {
	switch cfg.CatalogSource {
	case configs.CatalogSourceHTTP:
		return NewHTTPSource(cfg.CatalogURL), nil
	case configs.CatalogSourceS3:
		return newS3Source(s3SourceConfig{
			BucketName:      cfg.S3BucketName,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			ObjectKey:       cfg.S3CatalogKey,
		})
	default:
		return nil, fmt.Errorf("unsupported catalog source %q", cfg.CatalogSource)
	}
}
