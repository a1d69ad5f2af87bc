package service

import (
	"context"
	"time"

	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/storeerr"
)

const blogEntity = "blog post"

type BlogService struct {
	server *server.Server
	blogs  repository.Collection[model.Blog]
}

func NewBlogService(s *server.Server, blogs repository.Collection[model.Blog]) *BlogService {
	return &BlogService{server: s, blogs: blogs}
}

// Create stores a new post with zero views.
func (s *BlogService) Create(ctx context.Context, fields model.BlogFields) (*model.Blog, error) {
	now := time.Now().UTC()
	blog := model.Blog{
		Title:             fields.Title,
		Content:           fields.Content,
		ImageURL:          fields.ImageURL,
		Author:            fields.Author,
		AuthorImage:       fields.AuthorImage,
		AuthorDescription: fields.AuthorDescription,
		Tags:              tagsOrEmpty(fields.Tags),
		Views:             0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	id, err := s.blogs.Set(ctx, "", blog)
	if err != nil {
		return nil, storeerr.HandleError(err, blogEntity, "Failed to create blog post")
	}
	blog.ID = id

	return &blog, nil
}

// List returns every post, newest first.
func (s *BlogService) List(ctx context.Context) ([]model.Blog, error) {
	blogs, err := s.blogs.ListOrdered(ctx, nil, "createdAt", repository.Desc)
	if err != nil {
		return nil, storeerr.HandleError(err, blogEntity, "Failed to fetch blog posts")
	}
	if blogs == nil {
		blogs = []model.Blog{}
	}
	return blogs, nil
}

// Get counts a view and returns the post. The increment is atomic in the
// store, so concurrent readers never lose a view.
func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	if _, err := s.blogs.Increment(ctx, id, "views", 1); err != nil {
		return nil, storeerr.HandleError(err, blogEntity, "Failed to fetch blog post")
	}

	blog, err := s.blogs.Get(ctx, id)
	if err != nil {
		return nil, storeerr.HandleError(err, blogEntity, "Failed to fetch blog post")
	}
	return &blog, nil
}

// Update replaces every editable field; absent optional fields are cleared.
// Views and createdAt are kept.
func (s *BlogService) Update(ctx context.Context, id string, fields model.BlogFields) (*model.Blog, error) {
	err := s.blogs.Update(ctx, id, map[string]any{
		"title":             fields.Title,
		"content":           fields.Content,
		"imageUrl":          fields.ImageURL,
		"author":            fields.Author,
		"authorImage":       fields.AuthorImage,
		"authorDescription": fields.AuthorDescription,
		"tags":              tagsOrEmpty(fields.Tags),
		"updatedAt":         time.Now().UTC(),
	})
	if err != nil {
		return nil, storeerr.HandleError(err, blogEntity, "Failed to update blog post")
	}

	blog, err := s.blogs.Get(ctx, id)
	if err != nil {
		return nil, storeerr.HandleError(err, blogEntity, "Failed to update blog post")
	}
	return &blog, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	if err := s.blogs.Delete(ctx, id); err != nil {
		return storeerr.HandleError(err, blogEntity, "Failed to delete blog post")
	}
	return nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
