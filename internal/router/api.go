package router

import (
	"net/http"

	"github.com/deppfellow/portfolio-api/internal/handler"
	"github.com/deppfellow/portfolio-api/internal/middleware"
	"github.com/deppfellow/portfolio-api/internal/model"
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/labstack/echo/v4"
)

// registerAPIRoutes mounts the resource routes under /api.
//
// Product mutations always need an admin token. Form listing and status
// updates need one only when auth.protect_forms is set. Public submission
// routes are rate limited per client IP.
func registerAPIRoutes(api *echo.Group, s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) {
	requireAdmin := mw.Auth.RequireAdmin

	formAdmin := []echo.MiddlewareFunc{}
	if s.Config.Auth.ProtectForms {
		formAdmin = append(formAdmin, requireAdmin)
	}

	blogs := api.Group("/blogs")
	blogs.GET("", handler.Handle(h.Blog.Handler, h.Blog.ListBlogs, http.StatusOK, &model.ListBlogsRequest{}))
	blogs.POST("", handler.Handle(h.Blog.Handler, h.Blog.CreateBlog, http.StatusCreated, &model.CreateBlogRequest{}))
	blogs.GET("/:id", handler.Handle(h.Blog.Handler, h.Blog.GetBlog, http.StatusOK, &model.BlogIDRequest{}))
	blogs.PUT("/:id", handler.Handle(h.Blog.Handler, h.Blog.UpdateBlog, http.StatusOK, &model.UpdateBlogRequest{}))
	blogs.DELETE("/:id", handler.Handle(h.Blog.Handler, h.Blog.DeleteBlog, http.StatusOK, &model.BlogIDRequest{}))

	products := api.Group("/products")
	products.GET("", handler.Handle(h.Product.Handler, h.Product.ListProducts, http.StatusOK, &model.ListProductsRequest{}))
	products.POST("", handler.Handle(h.Product.Handler, h.Product.CreateProduct, http.StatusCreated, &model.CreateProductRequest{}), requireAdmin)
	products.PUT("/:id", handler.Handle(h.Product.Handler, h.Product.UpdateProduct, http.StatusOK, &model.UpdateProductRequest{}), requireAdmin)
	products.DELETE("/:id", handler.Handle(h.Product.Handler, h.Product.DeleteProduct, http.StatusOK, &model.ProductIDRequest{}), requireAdmin)

	forms := api.Group("/forms")
	forms.POST("", handler.Handle(h.Form.Handler, h.Form.SubmitForm, http.StatusCreated, &model.SubmitFormRequest{}), mw.RateLimit.Limit("forms"))
	forms.GET("", handler.Handle(h.Form.Handler, h.Form.ListForms, http.StatusOK, &model.ListFormsRequest{}), formAdmin...)
	forms.PATCH("/:id/status", handler.Handle(h.Form.Handler, h.Form.UpdateFormStatus, http.StatusOK, &model.UpdateFormStatusRequest{}), formAdmin...)

	subscribe := api.Group("/subscribe")
	subscribe.POST("", handler.Handle(h.Subscription.Handler, h.Subscription.Subscribe, http.StatusCreated, &model.SubscribeRequest{}), mw.RateLimit.Limit("subscribe"))
	subscribe.GET("", handler.Handle(h.Subscription.Handler, h.Subscription.ListSubscribers, http.StatusOK, &model.ListSubscribersRequest{}))
	subscribe.DELETE("/:email", handler.Handle(h.Subscription.Handler, h.Subscription.Unsubscribe, http.StatusOK, &model.UnsubscribeRequest{}))

	api.GET("/checkVisitors", handler.Handle(h.Visitor.Handler, h.Visitor.CheckVisitors, http.StatusOK, &model.VisitorCountRequest{}))

	assets := api.Group("/assets-upload")
	assets.POST("/upload", handler.Handle(h.Asset.Handler, h.Asset.UploadAsset, http.StatusOK, &model.UploadAssetRequest{}))
	assets.GET("/file/:fileName", handler.Handle(h.Asset.Handler, h.Asset.GetAssetURL, http.StatusOK, &model.AssetNameRequest{}))
	assets.GET("/assets", handler.Handle(h.Asset.Handler, h.Asset.ListAssets, http.StatusOK, &model.ListAssetsRequest{}))
}
