// Package model holds the stored entities, the request payloads (each with
// its validation rules) and the response bodies of the API.
//
// Entities use identical `json` and `firestore` field names; the document key
// is carried in ID and never stored as a field.
package model

import "time"

// Blog is a blog post.
type Blog struct {
	ID                string    `json:"id" firestore:"-"`
	Title             string    `json:"title" firestore:"title"`
	Content           string    `json:"content" firestore:"content"`
	ImageURL          *string   `json:"imageUrl" firestore:"imageUrl"`
	Author            string    `json:"author" firestore:"author"`
	AuthorImage       *string   `json:"authorImage" firestore:"authorImage"`
	AuthorDescription *string   `json:"authorDescription" firestore:"authorDescription"`
	Tags              []string  `json:"tags" firestore:"tags"`
	Views             int64     `json:"views" firestore:"views"`
	CreatedAt         time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (b *Blog) SetID(id string) { b.ID = id }

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id" firestore:"-"`
	Name        string    `json:"name" firestore:"name"`
	Description string    `json:"description" firestore:"description"`
	Price       float64   `json:"price" firestore:"price"`
	ImageURL    *string   `json:"imageUrl" firestore:"imageUrl"`
	Category    string    `json:"category" firestore:"category"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

func (p *Product) SetID(id string) { p.ID = id }

// Form submission statuses.
const (
	FormStatusPending   = "pending"
	FormStatusProcessed = "processed"
	FormStatusCompleted = "completed"
)

// FormSubmission is a contact form entry.
type FormSubmission struct {
	ID        string     `json:"id" firestore:"-"`
	Name      string     `json:"name" firestore:"name"`
	Email     string     `json:"email" firestore:"email"`
	Number    string     `json:"number" firestore:"number"`
	Message   string     `json:"message" firestore:"message"`
	Subject   string     `json:"subject" firestore:"subject"`
	Status    string     `json:"status" firestore:"status"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

func (f *FormSubmission) SetID(id string) { f.ID = id }

// Subscriber is keyed by its email address.
type Subscriber struct {
	ID           string    `json:"id" firestore:"-"`
	Email        string    `json:"email" firestore:"email"`
	SubscribedAt time.Time `json:"subscribedAt" firestore:"subscribedAt"`
}

func (s *Subscriber) SetID(id string) { s.ID = id }

// VisitorCounterID is the key of the singleton counter document.
const VisitorCounterID = "counter"

// VisitorCounter is the site-wide visit count.
type VisitorCounter struct {
	Count int64 `json:"count" firestore:"count"`
}

// Asset is the metadata of an uploaded blob, keyed by the blob name.
type Asset struct {
	ID         string    `json:"-" firestore:"-"`
	FileName   string    `json:"fileName" firestore:"fileName"`
	FileURL    string    `json:"fileUrl" firestore:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt" firestore:"uploadedAt"`
}

func (a *Asset) SetID(id string) { a.ID = id }
