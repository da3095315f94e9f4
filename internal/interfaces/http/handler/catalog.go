package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/maxwelladwale/coltech/internal/application/catalog"
)

// CatalogHandler handles product and package endpoints
type CatalogHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(productService *catalogapp.ProductService) *CatalogHandler {
	return &CatalogHandler{productService: productService}
}

// SearchQuery is the product search query string
type SearchQuery struct {
	Q string `form:"q" binding:"max=100"`
}

// List godoc
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Param        category query string false "mdvr, camera, cable, accessory, installation or license"
// @Param        search   query string false "Free text filter"
// @Param        in_stock query bool   false "Only products in stock"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Router       /products [get]
func (h *CatalogHandler) List(c *gin.Context) {
	var query catalogapp.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	products, err := h.productService.List(c.Request.Context(), query.Filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogapp.ToProductResponses(products))
}

// Search godoc
// @Summary      Search products
// @Tags         catalog
// @Produce      json
// @Param        q query string false "Search text; empty returns every product"
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductResponse}
// @Router       /products/search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	products, err := h.productService.Search(c.Request.Context(), query.Q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogapp.ToProductResponses(products))
}

// Get godoc
// @Summary      Get product by ID
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogapp.ToProductResponse(product))
}

// MDVRs lists the recorders with their device details
func (h *CatalogHandler) MDVRs(c *gin.Context) {
	mdvrs, err := h.productService.MDVRs(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]catalogapp.MDVRResponse, len(mdvrs))
	for i := range mdvrs {
		out[i] = catalogapp.ToMDVRResponse(&mdvrs[i])
	}
	h.Success(c, out)
}

// Cameras lists the cameras
func (h *CatalogHandler) Cameras(c *gin.Context) {
	cameras, err := h.productService.Cameras(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]catalogapp.CameraResponse, len(cameras))
	for i := range cameras {
		out[i] = catalogapp.ToCameraResponse(&cameras[i])
	}
	h.Success(c, out)
}

// Stock godoc
// @Summary      Live stock for a product
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=catalogapp.StockResponse}
// @Router       /products/{id}/stock [get]
func (h *CatalogHandler) Stock(c *gin.Context) {
	id := c.Param("id")
	stock, err := h.productService.Stock(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogapp.StockResponse{ProductID: id, Available: stock.Available, Quantity: stock.Quantity})
}

// Packages lists the recommended bundles
func (h *CatalogHandler) Packages(c *gin.Context) {
	packages, err := h.productService.Packages(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	out := make([]catalogapp.PackageResponse, len(packages))
	for i := range packages {
		out[i] = catalogapp.ToPackageResponse(&packages[i])
	}
	h.Success(c, out)
}

// BuildCustomPackage godoc
// @Summary      Price a custom package
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CustomPackageRequest true "MDVR, cameras and accessories"
// @Success      200 {object} dto.Response{data=catalogapp.CustomPackageResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /packages/custom [post]
func (h *CatalogHandler) BuildCustomPackage(c *gin.Context) {
	var req catalogapp.CustomPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	pkg, err := h.productService.BuildCustomPackage(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, catalogapp.ToCustomPackageResponse(pkg))
}
