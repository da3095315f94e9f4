package storage

import (
	"context"
	"fmt"

	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	"github.com/maxwelladwale/coltech/internal/infrastructure/config"
	"go.uber.org/zap"
)

// New returns the document storage selected by storage.provider. The S3
// bucket is created on first use when missing.
func New(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (orderapp.DocumentStorage, error) {
	switch cfg.Provider {
	case "", "stub":
		logger.Info("Using in-memory document storage", zap.String("base_url", cfg.PublicBaseURL))
		return NewStubObjectStorage(cfg.PublicBaseURL), nil
	case "s3":
		s, err := NewS3ObjectStorage(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 document storage", zap.String("bucket", s.GetBucket()))
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
}
