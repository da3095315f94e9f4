package mock

import (
	"context"
	"sync"

	"github.com/maxwelladwale/coltech/internal/domain/catalog"
	"github.com/maxwelladwale/coltech/internal/domain/shared"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Catalog is an in-memory product catalog seeded with the COLTECH range.
// It also tracks stock so orders placed against the mock backend reserve units.
type Catalog struct {
	mu       sync.RWMutex
	products []catalog.Product
	index    map[string]int
	mdvrs    []catalog.MDVRProduct
	cameras  []catalog.Camera
	licenses []catalog.LicenseProduct
	packages []catalog.Package
}

var _ catalog.ProductService = (*Catalog)(nil)

// NewCatalog creates a seeded catalog
func NewCatalog() *Catalog {
	c := &Catalog{
		index:    make(map[string]int),
		mdvrs:    seedMDVRs(),
		cameras:  seedCameras(),
		licenses: seedLicenses(),
	}
	for _, m := range c.mdvrs {
		c.add(m.Product)
	}
	for _, cam := range c.cameras {
		c.add(cam.Product)
	}
	for _, p := range seedAccessories() {
		c.add(p)
	}
	for _, l := range c.licenses {
		c.add(l.Product)
	}
	for _, s := range seedPackages() {
		c.packages = append(c.packages, c.buildPackage(s))
	}
	return c
}

func (c *Catalog) add(p catalog.Product) {
	c.index[p.ID] = len(c.products)
	c.products = append(c.products, p)
}

func (c *Catalog) buildPackage(s packageSeed) catalog.Package {
	total := decimal.Zero
	for _, item := range s.items {
		if i, ok := c.index[item.ProductID]; ok {
			total = total.Add(c.products[i].Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	pkg := catalog.Package{
		ID:             s.id,
		Name:           s.name,
		Description:    s.description,
		RecommendedFor: s.recommendedFor,
		TotalPrice:     total,
		Items:          s.items,
	}
	if s.discounted > 0 {
		d := decimal.NewFromInt(s.discounted)
		pkg.DiscountedPrice = &d
	}
	return pkg
}

// GetProducts lists products matching the filter in catalog order
func (c *Catalog) GetProducts(_ context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]catalog.Product, 0, len(c.products))
	for i := range c.products {
		if filter.Matches(&c.products[i]) {
			result = append(result, c.products[i])
		}
	}
	return result, nil
}

// GetProductByID returns a product or shared.ErrNotFound
func (c *Catalog) GetProductByID(_ context.Context, id string) (*catalog.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	p := c.products[i]
	return &p, nil
}

// GetRecommendedPackages returns the curated bundles
func (c *Catalog) GetRecommendedPackages(context.Context) ([]catalog.Package, error) {
	out := make([]catalog.Package, len(c.packages))
	copy(out, c.packages)
	return out, nil
}

// GetMDVRProducts returns the recorders with current stock levels
func (c *Catalog) GetMDVRProducts(context.Context) ([]catalog.MDVRProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]catalog.MDVRProduct, len(c.mdvrs))
	for i, m := range c.mdvrs {
		m.Product = c.products[c.index[m.ID]]
		out[i] = m
	}
	return out, nil
}

// GetCameras returns the cameras with current stock levels
func (c *Catalog) GetCameras(context.Context) ([]catalog.Camera, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]catalog.Camera, len(c.cameras))
	for i, cam := range c.cameras {
		cam.Product = c.products[c.index[cam.ID]]
		out[i] = cam
	}
	return out, nil
}

// SearchProducts matches name and description case-insensitively
func (c *Catalog) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	return c.GetProducts(ctx, catalog.ProductFilter{Search: query})
}

// CheckStock reports the seeded quantity. Products without a tracked
// quantity (licenses, services) are always available.
func (c *Catalog) CheckStock(_ context.Context, productID string) (*catalog.StockStatus, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	p := c.products[i]
	if p.StockQuantity == nil {
		return &catalog.StockStatus{Available: p.InStock}, nil
	}
	return &catalog.StockStatus{Available: p.InStock && *p.StockQuantity > 0, Quantity: *p.StockQuantity}, nil
}

// MDVR returns the recorder with the given id
func (c *Catalog) MDVR(id string) (*catalog.MDVRProduct, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.mdvrs {
		if m.ID == id {
			m.Product = c.products[c.index[id]]
			return &m, true
		}
	}
	return nil, false
}

// LicenseTypeFor returns the license type bundled with a product, if any
func (c *Catalog) LicenseTypeFor(productID string) (catalog.LicenseType, bool) {
	for _, m := range c.mdvrs {
		if m.ID == productID {
			return m.LicenseType, true
		}
	}
	for _, l := range c.licenses {
		if l.ID == productID {
			return l.LicenseType, true
		}
	}
	return "", false
}

// Reserve prices the lines and takes them out of stock atomically.
// Nothing is reserved when any line fails.
func (c *Catalog) Reserve(lines []trade.CartLine) ([]trade.OrderItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]trade.OrderItem, 0, len(lines))
	wanted := make(map[string]int, len(lines))
	for _, line := range lines {
		i, ok := c.index[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError(shared.ErrNotFound.Code, "Product "+line.ProductID+" not found")
		}
		p := c.products[i]
		wanted[p.ID] += line.Quantity
		if !p.InStock || (p.StockQuantity != nil && *p.StockQuantity < wanted[p.ID]) {
			return nil, shared.NewDomainError(shared.ErrInsufficientStock.Code, p.Name+" is out of stock")
		}
		unit := p.Price
		items = append(items, trade.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unit,
			TotalPrice:  unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	for id, n := range wanted {
		p := &c.products[c.index[id]]
		if p.StockQuantity == nil {
			continue
		}
		left := *p.StockQuantity - n
		p.StockQuantity = &left
		if left == 0 {
			p.InStock = false
		}
	}
	return items, nil
}

// Release puts reserved quantities back on the shelf
func (c *Catalog) Release(items []trade.OrderItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		i, ok := c.index[item.ProductID]
		if !ok {
			continue
		}
		p := &c.products[i]
		if p.StockQuantity == nil {
			continue
		}
		left := *p.StockQuantity + item.Quantity
		p.StockQuantity = &left
		if left > 0 {
			p.InStock = true
		}
	}
}
