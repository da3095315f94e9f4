package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/maxwelladwale/coltech/internal/domain/cart"
	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/infrastructure/cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyPrefix  = "catalog:"
	defaultCacheTTL = 5 * time.Minute
)

// ProductService fronts the backend catalog with a read-through cache.
// Concurrent misses for the same key share one backend call. Stock is
// never cached.
type ProductService struct {
	products catalog.ProductService
	carts    cart.CartService
	store    cache.Store
	ttl      time.Duration
	group    singleflight.Group
	logger   *zap.Logger
}

// ServiceOption configures a ProductService
type ServiceOption func(*ProductService)

// WithCache enables caching in store for ttl
func WithCache(store cache.Store, ttl time.Duration) ServiceOption {
	return func(s *ProductService) {
		s.store = store
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *ProductService) {
		s.logger = logger
	}
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductService, carts cart.CartService, opts ...ServiceOption) *ProductService {
	s := &ProductService{
		products: products,
		carts:    carts,
		ttl:      defaultCacheTTL,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cached returns the value under key, loading it once on a miss
func cached[T any](ctx context.Context, s *ProductService, key string, load func(context.Context) (T, error)) (T, error) {
	key = cacheKeyPrefix + key
	if s.store != nil {
		var hit T
		err := cache.GetJSON(ctx, s.store, key, &hit)
		if err == nil {
			return hit, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	// the load outlives the caller that started it; others may be waiting on it
	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (any, error) {
		val, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if s.store != nil {
			if err := cache.SetJSON(loadCtx, s.store, key, val, s.ttl); err != nil {
				s.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return val, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func filterKey(f catalog.ProductFilter) string {
	stock := "any"
	if f.InStock != nil {
		stock = strconv.FormatBool(*f.InStock)
	}
	return "products:" + string(f.Category) + ":" + strings.ToLower(strings.TrimSpace(f.Search)) + ":" + stock
}

// List returns products matching filter
func (s *ProductService) List(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	return cached(ctx, s, filterKey(filter), func(ctx context.Context) ([]catalog.Product, error) {
		return s.products.GetProducts(ctx, filter)
	})
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, id string) (*catalog.Product, error) {
	return cached(ctx, s, "product:"+id, func(ctx context.Context) (*catalog.Product, error) {
		return s.products.GetProductByID(ctx, id)
	})
}

// MDVRs returns the recorder range
func (s *ProductService) MDVRs(ctx context.Context) ([]catalog.MDVRProduct, error) {
	return cached(ctx, s, "mdvrs", s.products.GetMDVRProducts)
}

// Cameras returns the camera range
func (s *ProductService) Cameras(ctx context.Context) ([]catalog.Camera, error) {
	return cached(ctx, s, "cameras", s.products.GetCameras)
}

// Packages returns the recommended packages
func (s *ProductService) Packages(ctx context.Context) ([]catalog.Package, error) {
	return cached(ctx, s, "packages", s.products.GetRecommendedPackages)
}

// Search finds products by name or description. An empty query lists everything.
func (s *ProductService) Search(ctx context.Context, query string) ([]catalog.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx, catalog.ProductFilter{})
	}
	return cached(ctx, s, "search:"+strings.ToLower(query), func(ctx context.Context) ([]catalog.Product, error) {
		return s.products.SearchProducts(ctx, query)
	})
}

// Stock always asks the backend
func (s *ProductService) Stock(ctx context.Context, productID string) (*catalog.StockStatus, error) {
	return s.products.CheckStock(ctx, productID)
}

// BuildCustomPackage prices an MDVR with the chosen cameras and accessories
func (s *ProductService) BuildCustomPackage(ctx context.Context, req CustomPackageRequest) (*catalog.CustomPackage, error) {
	return s.carts.BuildCustomPackage(ctx, cart.CustomPackageRequest{
		MDVRID:       req.MDVRID,
		CameraIDs:    req.CameraIDs,
		AccessoryIDs: req.AccessoryIDs,
	})
}
