package handler

import (
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
	"github.com/labstack/echo/v4"
)

type BlogHandler struct {
	Handler
	blogs *service.BlogService
}

func NewBlogHandler(s *server.Server, blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{Handler: NewHandler(s), blogs: blogs}
}

func (h *BlogHandler) CreateBlog(c echo.Context, req *model.CreateBlogRequest) (*model.CreateBlogResponse, error) {
	blog, err := h.blogs.Create(c.Request().Context(), req.BlogFields)
	if err != nil {
		return nil, err
	}
	return &model.CreateBlogResponse{
		ID:      blog.ID,
		Message: "Blog post created successfully",
		Blog:    *blog,
	}, nil
}

func (h *BlogHandler) ListBlogs(c echo.Context, _ *model.ListBlogsRequest) (*model.ListBlogsResponse, error) {
	blogs, err := h.blogs.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return &model.ListBlogsResponse{Blogs: blogs}, nil
}

// GetBlog returns the post after counting the view.
func (h *BlogHandler) GetBlog(c echo.Context, req *model.BlogIDRequest) (*model.Blog, error) {
	return h.blogs.Get(c.Request().Context(), req.ID)
}

func (h *BlogHandler) UpdateBlog(c echo.Context, req *model.UpdateBlogRequest) (*model.UpdateBlogResponse, error) {
	blog, err := h.blogs.Update(c.Request().Context(), req.ID, req.BlogFields)
	if err != nil {
		return nil, err
	}
	return &model.UpdateBlogResponse{
		Message: "Blog post updated successfully",
		Blog:    *blog,
	}, nil
}

func (h *BlogHandler) DeleteBlog(c echo.Context, req *model.BlogIDRequest) (*model.MessageResponse, error) {
	if err := h.blogs.Delete(c.Request().Context(), req.ID); err != nil {
		return nil, err
	}
	return &model.MessageResponse{Message: "Blog post deleted successfully"}, nil
}
