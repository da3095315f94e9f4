package catalog

import "context"

// ProductService is the backend contract for catalog reads
type ProductService interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetProductByID(ctx context.Context, id string) (*Product, error)
	GetRecommendedPackages(ctx context.Context) ([]Package, error)
	GetMDVRProducts(ctx context.Context) ([]MDVRProduct, error)
	GetCameras(ctx context.Context) ([]Camera, error)
	SearchProducts(ctx context.Context, query string) ([]Product, error)
	CheckStock(ctx context.Context, productID string) (*StockStatus, error)
}
