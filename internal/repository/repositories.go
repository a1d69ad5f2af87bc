package repository

import (
	"cloud.google.com/go/firestore"
	"github.com/deppfellow/portfolio-api/internal/model"
)

// Collection names.
const (
	BlogsCollection       = "blogs"
	ProductsCollection    = "products"
	FormsCollection       = "forms"
	SubscribersCollection = "subscribers"
	VisitorsCollection    = "visitor_count"
	AssetsCollection      = "assets"
)

// Repositories groups one collection per resource.
type Repositories struct {
	Blogs       Collection[model.Blog]
	Products    Collection[model.Product]
	Forms       Collection[model.FormSubmission]
	Subscribers Collection[model.Subscriber]
	Visitors    Collection[model.VisitorCounter]
	Assets      Collection[model.Asset]
}

// NewRepositories binds every collection to the Firestore client.
func NewRepositories(client *firestore.Client) *Repositories {
	return &Repositories{
		Blogs:       NewFirestoreCollection[model.Blog](client, BlogsCollection),
		Products:    NewFirestoreCollection[model.Product](client, ProductsCollection),
		Forms:       NewFirestoreCollection[model.FormSubmission](client, FormsCollection),
		Subscribers: NewFirestoreCollection[model.Subscriber](client, SubscribersCollection),
		Visitors:    NewFirestoreCollection[model.VisitorCounter](client, VisitorsCollection),
		Assets:      NewFirestoreCollection[model.Asset](client, AssetsCollection),
	}
}
