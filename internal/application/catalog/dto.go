package catalog

import (
	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ListProductsQuery holds the product list filters
type ListProductsQuery struct {
	Category string `form:"category" binding:"omitempty,oneof=mdvr camera cable accessory installation license"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	InStock  *bool  `form:"in_stock"`
}

// Filter converts the query to a domain filter
func (q ListProductsQuery) Filter() catalog.ProductFilter {
	return catalog.ProductFilter{
		Category: catalog.ProductCategory(q.Category),
		Search:   q.Search,
		InStock:  q.InStock,
	}
}

// CustomPackageRequest selects products for a custom package
type CustomPackageRequest struct {
	MDVRID       string   `json:"mdvr_id" binding:"required"`
	CameraIDs    []string `json:"camera_ids" binding:"omitempty,dive,required"`
	AccessoryIDs []string `json:"accessory_ids" binding:"omitempty,dive,required"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description,omitempty"`
	Price            decimal.Decimal `json:"price"`
	ImageURL         string          `json:"image_url"`
	VideoURL         string          `json:"video_url,omitempty"`
	Specifications   map[string]any  `json:"specifications,omitempty"`
	InStock          bool            `json:"in_stock"`
	StockQuantity    *int            `json:"stock_quantity,omitempty"`
}

// MDVRResponse adds device details to a product
type MDVRResponse struct {
	ProductResponse
	IncludesFreeLicense   bool     `json:"includes_free_license"`
	LicenseType           string   `json:"license_type"`
	LicenseDurationMonths int      `json:"license_duration_months"`
	Channels              int      `json:"channels"`
	StorageOptions        []string `json:"storage_options"`
	Features              []string `json:"features"`
}

// CameraResponse adds camera details to a product
type CameraResponse struct {
	ProductResponse
	Channels       int      `json:"channels,omitempty"`
	StorageOptions []string `json:"storage_options,omitempty"`
	Features       []string `json:"features"`
}

// PackageItemResponse is one product in a package
type PackageItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PackageResponse represents a recommended package
type PackageResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	RecommendedFor  string                `json:"recommended_for"`
	TotalPrice      decimal.Decimal       `json:"total_price"`
	DiscountedPrice *decimal.Decimal      `json:"discounted_price,omitempty"`
	EffectivePrice  decimal.Decimal       `json:"effective_price"`
	Items           []PackageItemResponse `json:"items"`
}

// StockResponse reports availability
type StockResponse struct {
	ProductID string `json:"product_id"`
	Available bool   `json:"available"`
	Quantity  int    `json:"quantity"`
}

// PackageLineResponse is a product and its quantity within a custom package
type PackageLineResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
}

// CustomPackageResponse is a priced custom package
type CustomPackageResponse struct {
	MDVR        MDVRResponse          `json:"mdvr"`
	Cameras     []PackageLineResponse `json:"cameras"`
	Accessories []PackageLineResponse `json:"accessories"`
	TotalPrice  decimal.Decimal       `json:"total_price"`
}

// ToProductResponse converts a domain product
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID,
		Name:             p.Name,
		Category:         string(p.Category),
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		ImageURL:         p.ImageURL,
		VideoURL:         p.VideoURL,
		Specifications:   p.Specifications,
		InStock:          p.InStock,
		StockQuantity:    p.StockQuantity,
	}
}

// ToProductResponses converts a list of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

func storageStrings(opts []catalog.StorageOption) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = string(o)
	}
	return out
}

// ToMDVRResponse converts a domain MDVR
func ToMDVRResponse(m *catalog.MDVRProduct) MDVRResponse {
	return MDVRResponse{
		ProductResponse:       ToProductResponse(&m.Product),
		IncludesFreeLicense:   m.IncludesFreeLicense,
		LicenseType:           string(m.LicenseType),
		LicenseDurationMonths: m.LicenseDurationMonths,
		Channels:              m.Channels,
		StorageOptions:        storageStrings(m.StorageOptions),
		Features:              m.Features,
	}
}

// ToCameraResponse converts a domain camera
func ToCameraResponse(c *catalog.Camera) CameraResponse {
	return CameraResponse{
		ProductResponse: ToProductResponse(&c.Product),
		Channels:        c.Channels,
		StorageOptions:  storageStrings(c.StorageOptions),
		Features:        c.Features,
	}
}

// ToPackageResponse converts a domain package
func ToPackageResponse(p *catalog.Package) PackageResponse {
	items := make([]PackageItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = PackageItemResponse{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return PackageResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		RecommendedFor:  p.RecommendedFor,
		TotalPrice:      p.TotalPrice,
		DiscountedPrice: p.DiscountedPrice,
		EffectivePrice:  p.EffectivePrice(),
		Items:           items,
	}
}

func toLineResponses(lines []catalog.PackageLine) []PackageLineResponse {
	out := make([]PackageLineResponse, len(lines))
	for i := range lines {
		out[i] = PackageLineResponse{Product: ToProductResponse(&lines[i].Product), Quantity: lines[i].Quantity}
	}
	return out
}

// ToCustomPackageResponse converts a priced custom package
func ToCustomPackageResponse(p *catalog.CustomPackage) CustomPackageResponse {
	return CustomPackageResponse{
		MDVR:        ToMDVRResponse(&p.MDVR),
		Cameras:     toLineResponses(p.Cameras),
		Accessories: toLineResponses(p.Accessories),
		TotalPrice:  p.TotalPrice,
	}
}
