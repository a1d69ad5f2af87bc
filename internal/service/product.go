package service

import (
	"context"
	"time"

	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/storeerr"
)

const productEntity = "product"

type ProductService struct {
	server   *server.Server
	products repository.Collection[model.Product]
}

func NewProductService(s *server.Server, products repository.Collection[model.Product]) *ProductService {
	return &ProductService{server: s, products: products}
}

func (s *ProductService) Create(ctx context.Context, fields model.ProductFields) (string, error) {
	now := time.Now().UTC()
	id, err := s.products.Set(ctx, "", model.Product{
		Name:        fields.Name,
		Description: fields.Description,
		Price:       fields.Price,
		ImageURL:    fields.ImageURL,
		Category:    fields.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return "", storeerr.HandleError(err, productEntity, "Failed to create product")
	}
	return id, nil
}

// List returns products newest first, restricted to category when it is
// not empty.
func (s *ProductService) List(ctx context.Context, category string) ([]model.Product, error) {
	var filter *repository.Filter
	if category != "" {
		filter = &repository.Filter{Field: "category", Equals: category}
	}

	products, err := s.products.ListOrdered(ctx, filter, "createdAt", repository.Desc)
	if err != nil {
		return nil, storeerr.HandleError(err, productEntity, "Failed to fetch products")
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

func (s *ProductService) Update(ctx context.Context, id string, fields model.ProductFields) error {
	err := s.products.Update(ctx, id, map[string]any{
		"name":        fields.Name,
		"description": fields.Description,
		"price":       fields.Price,
		"imageUrl":    fields.ImageURL,
		"category":    fields.Category,
		"updatedAt":   time.Now().UTC(),
	})
	if err != nil {
		return storeerr.HandleError(err, productEntity, "Failed to update product")
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return storeerr.HandleError(err, productEntity, "Failed to delete product")
	}
	return nil
}
