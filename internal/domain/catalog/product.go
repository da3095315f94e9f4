package catalog

import (
	"strings"

	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductCategory groups products on the storefront
type ProductCategory string

const (
	CategoryMDVR         ProductCategory = "mdvr"
	CategoryCamera       ProductCategory = "camera"
	CategoryCable        ProductCategory = "cable"
	CategoryAccessory    ProductCategory = "accessory"
	CategoryInstallation ProductCategory = "installation"
	CategoryLicense      ProductCategory = "license"
)

// IsValid checks if the category is one of the known categories
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryMDVR, CategoryCamera, CategoryCable, CategoryAccessory, CategoryInstallation, CategoryLicense:
		return true
	}
	return false
}

// LicenseType distinguishes AI (ADAS/DMS) platform licenses from basic ones
type LicenseType string

const (
	LicenseTypeAI    LicenseType = "ai"
	LicenseTypeNonAI LicenseType = "non-ai"
)

// IsValid checks if the license type is known
func (t LicenseType) IsValid() bool {
	return t == LicenseTypeAI || t == LicenseTypeNonAI
}

// StorageOption is a recording medium supported by a device
type StorageOption string

const (
	StorageHDD    StorageOption = "hdd"
	StorageSDCard StorageOption = "sd_card"
)

// Product is a sellable item as exposed by the backend
type Product struct {
	ID               string
	Name             string
	Category         ProductCategory
	Description      string
	ShortDescription string
	Price            decimal.Decimal
	ImageURL         string
	VideoURL         string
	Specifications   map[string]any
	InStock          bool
	StockQuantity    *int
}

// IsPurchasable reports whether the product can be added to a cart
func (p *Product) IsPurchasable() bool {
	if !p.InStock {
		return false
	}
	return p.StockQuantity == nil || *p.StockQuantity > 0
}

// Validate checks the invariants the storefront relies on
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	return nil
}

// MDVRProduct is a mobile digital video recorder
type MDVRProduct struct {
	Product
	IncludesFreeLicense   bool
	LicenseType           LicenseType
	LicenseDurationMonths int
	Channels              int
	StorageOptions        []StorageOption
	Features              []string
}

// SupportsAI reports whether the recorder ships with ADAS/DMS features
func (m *MDVRProduct) SupportsAI() bool {
	return m.LicenseType == LicenseTypeAI
}

// Camera is a vehicle camera
type Camera struct {
	Product
	Channels       int
	StorageOptions []StorageOption
	Features       []string
}

// LicenseProduct is a platform license sold as a product
type LicenseProduct struct {
	Product
	LicenseType        LicenseType
	DurationMonths     int
	AnnualRenewalPrice decimal.Decimal
	IsRenewal          bool
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	Category ProductCategory
	Search   string
	InStock  *bool
}

// Matches reports whether a product passes the filter
func (f ProductFilter) Matches(p *Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.InStock != nil && p.InStock != *f.InStock {
		return false
	}
	if f.Search != "" {
		return MatchesQuery(p, f.Search)
	}
	return true
}

// MatchesQuery performs a case-insensitive match on name and description
func MatchesQuery(p *Product, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

// StockStatus is the availability of a single product
type StockStatus struct {
	Available bool
	Quantity  int
}
