package handler

import (
	"github.com/deppfellow/portfolio-api/internal/server"
	"github.com/deppfellow/portfolio-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health       *HealthHandler
	System       *SystemHandler
	Blog         *BlogHandler
	Product      *ProductHandler
	Form         *FormHandler
	Subscription *SubscriptionHandler
	Visitor      *VisitorHandler
	Asset        *AssetHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(s),
		System:       NewSystemHandler(s),
		Blog:         NewBlogHandler(s, services.Blog),
		Product:      NewProductHandler(s, services.Product),
		Form:         NewFormHandler(s, services.Form),
		Subscription: NewSubscriptionHandler(s, services.Subscription),
		Visitor:      NewVisitorHandler(s, services.Visitor),
		Asset:        NewAssetHandler(s, services.Asset),
	}
}
