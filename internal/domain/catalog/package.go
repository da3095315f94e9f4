package catalog

import (
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PackageItem is one product line inside a recommended package
type PackageItem struct {
	ProductID string
	Quantity  int
}

// Package is a curated bundle of products
type Package struct {
	ID              string
	Name            string
	Description     string
	RecommendedFor  string
	TotalPrice      decimal.Decimal
	DiscountedPrice *decimal.Decimal
	Items           []PackageItem
}

// EffectivePrice returns the discounted price when one is set
func (p *Package) EffectivePrice() decimal.Decimal {
	if p.DiscountedPrice != nil && p.DiscountedPrice.LessThan(p.TotalPrice) {
		return *p.DiscountedPrice
	}
	return p.TotalPrice
}

// PackageLine is a product with a quantity inside a custom package
type PackageLine struct {
	Product  Product
	Quantity int
}

// StorageSelection is the storage chosen for a custom package
type StorageSelection struct {
	Type     StorageOption
	Capacity string
}

// CustomPackage is a customer-assembled bundle around one MDVR
type CustomPackage struct {
	MDVR        MDVRProduct
	Cameras     []PackageLine
	Storage     *StorageSelection
	Accessories []PackageLine
	TotalPrice  decimal.Decimal
}

// NewCustomPackage assembles a package and computes its total.
// Repeated ids collapse into one line with a higher quantity.
func NewCustomPackage(mdvr MDVRProduct, cameras, accessories []Product) (*CustomPackage, error) {
	if mdvr.Category != CategoryMDVR {
		return nil, shared.NewDomainError("INVALID_PACKAGE", "Custom package must be built around an MDVR")
	}
	if len(cameras) > 0 && mdvr.Channels > 0 && len(cameras) > mdvr.Channels {
		return nil, shared.NewDomainError("INVALID_PACKAGE", "Selected cameras exceed the MDVR channel count")
	}

	pkg := &CustomPackage{
		MDVR:        mdvr,
		Cameras:     groupLines(cameras),
		Accessories: groupLines(accessories),
	}

	total := mdvr.Price
	for _, line := range pkg.Cameras {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	for _, line := range pkg.Accessories {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	pkg.TotalPrice = total

	return pkg, nil
}

func groupLines(products []Product) []PackageLine {
	lines := make([]PackageLine, 0, len(products))
	index := make(map[string]int, len(products))
	for _, p := range products {
		if i, ok := index[p.ID]; ok {
			lines[i].Quantity++
			continue
		}
		index[p.ID] = len(lines)
		lines = append(lines, PackageLine{Product: p, Quantity: 1})
	}
	return lines
}
