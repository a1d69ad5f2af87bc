// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives validated
// payloads from the handlers, applies each resource's rules and talks to
// the document and blob stores. Store failures are mapped onto HTTP errors
// here, close to the call that failed.
package service

import (
	"github.com/deppfellow/portfolio-api/internal/repository"
	"github.com/deppfellow/portfolio-api/internal/server"
)

// Services groups every resource service.
type Services struct {
	Blog         *BlogService
	Product      *ProductService
	Form         *FormService
	Subscription *SubscriptionService
	Visitor      *VisitorService
	Asset        *AssetService
}

// NewServices wires the services to their collections. notifier may be nil,
// in which case form submissions send no email.
func NewServices(s *server.Server, repos *repository.Repositories, notifier Notifier) *Services {
	return &Services{
		Blog:         NewBlogService(s, repos.Blogs),
		Product:      NewProductService(s, repos.Products),
		Form:         NewFormService(s, repos.Forms, notifier),
		Subscription: NewSubscriptionService(s, repos.Subscribers),
		Visitor:      NewVisitorService(s, repos.Visitors),
		Asset:        NewAssetService(s, repos.Assets, s.Blobs),
	}
}
