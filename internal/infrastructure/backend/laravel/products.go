package laravel

import (
	"context"
	"net/url"
	"strconv"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
)

var _ catalog.ProductService = (*ProductService)(nil)

// ProductService reads the catalog from the Laravel API
type ProductService struct {
	client *Client
}

// NewProductService creates a ProductService
func NewProductService(client *Client) *ProductService {
	return &ProductService{client: client}
}

func (s *ProductService) GetProducts(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", string(filter.Category))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.InStock != nil {
		query.Set("inStock", strconv.FormatBool(*filter.InStock))
	}
	var dtos []productDTO
	if err := s.client.get(ctx, "/products", query, &dtos); err != nil {
		return nil, err
	}
	return toProducts(dtos), nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	var dto productDTO
	if err := s.client.get(ctx, "/products/"+url.PathEscape(id), nil, &dto); err != nil {
		return nil, err
	}
	p := dto.toDomain()
	return &p, nil
}

func (s *ProductService) GetRecommendedPackages(ctx context.Context) ([]catalog.Package, error) {
	var dtos []packageDTO
	if err := s.client.get(ctx, "/packages", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]catalog.Package, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *ProductService) GetMDVRProducts(ctx context.Context) ([]catalog.MDVRProduct, error) {
	var dtos []mdvrDTO
	if err := s.client.get(ctx, "/products/mdvrs", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]catalog.MDVRProduct, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *ProductService) GetCameras(ctx context.Context) ([]catalog.Camera, error) {
	var dtos []cameraDTO
	if err := s.client.get(ctx, "/products/cameras", nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]catalog.Camera, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *ProductService) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	var dtos []productDTO
	if err := s.client.get(ctx, "/products/search", url.Values{"q": {query}}, &dtos); err != nil {
		return nil, err
	}
	return toProducts(dtos), nil
}

func (s *ProductService) CheckStock(ctx context.Context, productID string) (*catalog.StockStatus, error) {
	var status struct {
		Available bool `json:"available"`
		Quantity  int  `json:"quantity"`
	}
	if err := s.client.get(ctx, "/products/"+url.PathEscape(productID)+"/stock", nil, &status); err != nil {
		return nil, err
	}
	return &catalog.StockStatus{Available: status.Available, Quantity: status.Quantity}, nil
}

func toProducts(dtos []productDTO) []catalog.Product {
	out := make([]catalog.Product, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out
}
