package handler

import (
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	Handler
	products *service.ProductService
}

func NewProductHandler(s *server.Server, products *service.ProductService) *ProductHandler {
	return &ProductHandler{Handler: NewHandler(s), products: products}
}

func (h *ProductHandler) CreateProduct(c echo.Context, req *model.CreateProductRequest) (*model.CreateProductResponse, error) {
	id, err := h.products.Create(c.Request().Context(), req.ProductFields)
	if err != nil {
		return nil, err
	}
	return &model.CreateProductResponse{ID: id, Message: "Product created successfully"}, nil
}

// ListProducts supports ?category= as an exact-match filter.
func (h *ProductHandler) ListProducts(c echo.Context, req *model.ListProductsRequest) ([]model.Product, error) {
	return h.products.List(c.Request().Context(), req.Category)
}

func (h *ProductHandler) UpdateProduct(c echo.Context, req *model.UpdateProductRequest) (*model.MessageResponse, error) {
	if err := h.products.Update(c.Request().Context(), req.ID, req.ProductFields); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Product updated successfully"}, nil
}

func (h *ProductHandler) DeleteProduct(c echo.Context, req *model.ProductIDRequest) (*model.MessageResponse, error) {
	if err := h.products.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Product deleted successfully"}, nil
}
