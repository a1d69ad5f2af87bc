package model

import "github.com/deppfellow/portfolio-api/internal/validation"

// BlogFields are the editable fields of a blog post.
type BlogFields struct {
	Title             string   `json:"title"`
	Content           string   `json:"content"`
	ImageURL          *string  `json:"imageUrl"`
	Author            string   `json:"author"`
	AuthorImage       *string  `json:"authorImage"`
	AuthorDescription *string  `json:"authorDescription"`
	Tags              []string `json:"tags"`
}

func (BlogFields) Rules() validation.Rules {
	return validation.Rules{
		{
			Field:      "title",
			Checks:     []validation.Check{validation.NotEmpty("Title is required")},
			Sanitizers: []validation.Sanitizer{validation.Trim, validation.Escape},
		},
		{
			Field:  "content",
			Checks: []validation.Check{validation.NotEmpty("Content is required")},
		},
		{
			Field:    "imageUrl",
			Optional: true,
			Checks:   []validation.Check{validation.IsURL("Invalid image URL")},
		},
		{
			Field:      "author",
			Checks:     []validation.Check{validation.NotEmpty("Author is required")},
			Sanitizers: []validation.Sanitizer{validation.Trim, validation.Escape},
		},
		{
			Field:    "authorImage",
			Optional: true,
			Checks:   []validation.Check{validation.IsURL("Invalid author image URL")},
		},
		{
			Field:      "authorDescription",
			Optional:   true,
			Checks:     []validation.Check{validation.IsString("Author description must be a string")},
			Sanitizers: []validation.Sanitizer{validation.Trim, validation.Escape},
		},
		{
			Field:      "tags",
			Optional:   true,
			Checks:     []validation.Check{validation.IsArray("Tags should be an array")},
			Sanitizers: []validation.Sanitizer{validation.ToStringSlice},
		},
	}
}

// CreateBlogRequest is the body of POST /blogs.
type CreateBlogRequest struct {
	BlogFields
}

// UpdateBlogRequest is the body of PUT /blogs/:id.
type UpdateBlogRequest struct {
	ID string `param:"id" json:"-"`
	BlogFields
}

// BlogIDRequest addresses a single blog post.
type BlogIDRequest struct {
	ID string `param:"id" json:"-"`
}

func (*BlogIDRequest) Rules() validation.Rules { return nil }

// ListBlogsRequest has no parameters.
type ListBlogsRequest struct{}

func (*ListBlogsRequest) Rules() validation.Rules { return nil }

type ListBlogsResponse struct {
	Blogs []Blog `json:"blogs"`
}

type CreateBlogResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Blog    Blog   `json:"blog"`
}

type UpdateBlogResponse struct {
	Message string `json:"message"`
	Blog    Blog   `json:"blog"`
}

// MessageResponse is the body of routes that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}
