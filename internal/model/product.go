package model

import "github.com/deppfellow/portfolio-api/internal/validation"

// ProductFields are the editable fields of a product.
type ProductFields struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"imageUrl"`
	Category    string  `json:"category"`
}

func (ProductFields) Rules() validation.Rules {
	return validation.Rules{
		{
			Field:      "name",
			Checks:     []validation.Check{validation.NotEmpty("Name is required")},
			Sanitizers: []validation.Sanitizer{validation.Trim, validation.Escape},
		},
		{
			Field:  "description",
			Checks: []validation.Check{validation.NotEmpty("Description is required")},
		},
		{
			Field:      "price",
			Checks:     []validation.Check{validation.FloatMin(0, "Price must be a number greater than or equal to 0")},
			Sanitizers: []validation.Sanitizer{validation.ToFloat},
		},
		{
			Field:    "imageUrl",
			Optional: true,
			Checks:   []validation.Check{validation.IsURL("Invalid image URL")},
		},
		{
			Field:      "category",
			Checks:     []validation.Check{validation.NotEmpty("Category is required")},
			Sanitizers: []validation.Sanitizer{validation.Trim},
		},
	}
}

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	ProductFields
}

// UpdateProductRequest is the body of PUT /products/:id.
type UpdateProductRequest struct {
	ID string `param:"id" json:"-"`
	ProductFields
}

// ProductIDRequest addresses a single product.
type ProductIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (*ProductIDRequest) Rules() validation.Rules { return nil }

// ListProductsRequest filters the listing by category when set.
type ListProductsRequest struct {
	Category string `query:"category" json:"-"`
}

func (*ListProductsRequest) Rules() validation.Rules { return nil }

type CreateProductResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
