package handlers

import (
	"net/http"

	"dataware/internal/common"
	"dataware/internal/models"
	"dataware/internal/services"

	"github.com/labstack/echo/v4"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
	}
}

// RegisterRoutes mounts the product endpoints on g.
func (h *ProductHandlers) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListProducts)
	g.GET("/search", h.SearchProducts)
	g.GET("/:id", h.GetProductByID)
	g.POST("", h.CreateProduct)
	g.PUT("/:id", h.UpdateProduct)
	g.DELETE("/:id", h.DeleteProduct)
}

// CreateProduct handles POST /api/products
//
//	@Summary	Create a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		product	body		models.ProductRequest	true	"Product"
//	@Success	201		{object}	models.Product
//	@Failure	400		{object}	common.ErrorResponse
//	@Router		/api/products [post]
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product, err := h.productService.Create(c.Request().Context(), &req)
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// ListProducts handles GET /api/products
//
//	@Summary	List products
//	@Tags		products
//	@Produce	json
//	@Success	200	{array}	models.Product
//	@Router		/api/products [get]
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// SearchProducts handles GET /api/products/search?name=
//
//	@Summary	Search products by name
//	@Tags		products
//	@Produce	json
//	@Param		name	query	string	true	"Name fragment"
//	@Success	200		{array}	models.Product
//	@Failure	400		{object}	common.ErrorResponse
//	@Router		/api/products/search [get]
func (h *ProductHandlers) SearchProducts(c echo.Context) error {
	products, err := h.productService.SearchByName(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// GetProductByID handles GET /api/products/:id
//
//	@Summary	Get a product
//	@Tags		products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	models.Product
//	@Failure	400	{object}	common.ErrorResponse
//	@Failure	404	{object}	common.ErrorResponse
//	@Router		/api/products/{id} [get]
func (h *ProductHandlers) GetProductByID(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /api/products/:id. Absent fields are left unchanged.
//
//	@Summary	Update a product
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Product ID"
//	@Param		product	body		models.ProductRequest	true	"Fields to change"
//	@Success	200		{object}	models.Product
//	@Failure	400		{object}	common.ErrorResponse
//	@Failure	404		{object}	common.ErrorResponse
//	@Router		/api/products/{id} [put]
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	var req models.ProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product, err := h.productService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return sendServiceError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/:id
//
//	@Summary	Delete a product
//	@Tags		products
//	@Param		id	path	string	true	"Product ID"
//	@Success	204
//	@Failure	404	{object}	common.ErrorResponse
//	@Router		/api/products/{id} [delete]
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return sendServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
